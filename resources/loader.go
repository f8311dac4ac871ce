// Package resources loads the classifier and the reference dataset once per process.
package resources

import (
	// Go Internal Packages
	"context"
	"sync"

	// Local Packages
	classifier "fraudwatch/classifier"
	dataset "fraudwatch/dataset"
	errors "fraudwatch/errors"

	// External Packages
	"go.uber.org/zap"
)

// Resources is the outcome of a load. Each resource is either present or
// paired with the ResourceLoadError that explains why it is not.
type Resources struct {
	Model      *classifier.Pipeline
	ModelErr   error
	Dataset    *dataset.Table
	DatasetErr error
}

// Ready reports whether both resources loaded.
func (r *Resources) Ready() bool {
	return r.ModelErr == nil && r.DatasetErr == nil
}

// Err returns the first load failure, nil when both resources loaded.
func (r *Resources) Err() error {
	if r.ModelErr != nil {
		return r.ModelErr
	}
	return r.DatasetErr
}

type Loader struct {
	modelPath   string
	datasetPath string
	logger      *zap.Logger

	once sync.Once
	res  *Resources
}

func NewLoader(modelPath, datasetPath string, logger *zap.Logger) *Loader {
	return &Loader{modelPath: modelPath, datasetPath: datasetPath, logger: logger}
}

// Load loads both resources on the first call and returns the cached result afterwards.
func (l *Loader) Load(ctx context.Context) *Resources {
	l.once.Do(func() {
		l.res = l.load(ctx)
	})
	return l.res
}

func (l *Loader) load(ctx context.Context) *Resources {
	res := &Resources{}

	if err := ctx.Err(); err != nil {
		res.ModelErr = errors.ResourceLoadErr("model", l.modelPath, err)
		res.DatasetErr = errors.ResourceLoadErr("data", l.datasetPath, err)
		return res
	}

	model, err := classifier.Load(l.modelPath)
	if err != nil {
		res.ModelErr = errors.ResourceLoadErr("model", l.modelPath, err)
		l.logger.Error("model load failed", zap.String("path", l.modelPath), zap.Error(err))
	} else {
		res.Model = model
		l.logger.Info("model loaded", zap.String("path", l.modelPath),
			zap.String("name", model.Name), zap.String("version", model.Version))
	}

	table, err := dataset.LoadCSV(l.datasetPath)
	if err == nil {
		err = table.Validate()
	}
	if err != nil {
		res.DatasetErr = errors.ResourceLoadErr("data", l.datasetPath, err)
		l.logger.Error("dataset load failed", zap.String("path", l.datasetPath), zap.Error(err))
	} else {
		res.Dataset = table
		l.logger.Info("dataset loaded", zap.String("path", l.datasetPath),
			zap.Int("rows", table.Len()), zap.Int("columns", len(table.Columns())))
	}

	return res
}

// Package classifier loads the pre-trained fraud model artifact.
//
// The artifact is a YAML document describing a fitted linear pipeline:
// standardised numeric columns, one-hot categorical columns and a logistic
// link. Callers should depend only on Predict and PredictProba.
package classifier

import (
	// Go Internal Packages
	"context"
	"fmt"
	"math"
	"os"

	// Local Packages
	models "fraudwatch/models"

	// External Packages
	"gopkg.in/yaml.v3"
)

const defaultThreshold = 0.5

// Handling of categories the model was not fit on.
const (
	UnknownError  = "error"
	UnknownIgnore = "ignore"
)

type NumericFeature struct {
	Column string  `yaml:"column"`
	Mean   float64 `yaml:"mean"`
	Scale  float64 `yaml:"scale"`
	Weight float64 `yaml:"weight"`
}

type CategoricalFeature struct {
	Column  string             `yaml:"column"`
	Unknown string             `yaml:"unknown"`
	Weights map[string]float64 `yaml:"weights"`
}

// Pipeline is a fitted model. It is read-only after Load and safe for concurrent use.
type Pipeline struct {
	Name        string               `yaml:"name"`
	Version     string               `yaml:"version"`
	Threshold   float64              `yaml:"threshold"`
	Intercept   float64              `yaml:"intercept"`
	Numeric     []NumericFeature     `yaml:"numeric"`
	Categorical []CategoricalFeature `yaml:"categorical"`
}

// Load reads and checks the artifact at path.
func Load(path string) (*Pipeline, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(raw)
}

// Parse decodes an artifact held in memory.
func Parse(raw []byte) (*Pipeline, error) {
	p := &Pipeline{}
	if err := yaml.Unmarshal(raw, p); err != nil {
		return nil, fmt.Errorf("corrupt model artifact: %w", err)
	}
	if p.Threshold == 0 {
		p.Threshold = defaultThreshold
	}
	if err := p.check(); err != nil {
		return nil, fmt.Errorf("corrupt model artifact: %w", err)
	}
	return p, nil
}

func (p *Pipeline) check() error {
	if len(p.Numeric)+len(p.Categorical) == 0 {
		return fmt.Errorf("no features")
	}
	if p.Threshold <= 0 || p.Threshold >= 1 {
		return fmt.Errorf("threshold %v outside (0, 1)", p.Threshold)
	}
	for i, f := range p.Numeric {
		if f.Column == "" {
			return fmt.Errorf("numeric feature %d has no column", i)
		}
		if f.Scale == 0 {
			p.Numeric[i].Scale = 1
		}
	}
	for i, f := range p.Categorical {
		if f.Column == "" {
			return fmt.Errorf("categorical feature %d has no column", i)
		}
		if len(f.Weights) == 0 {
			return fmt.Errorf("categorical feature %s has no categories", f.Column)
		}
		switch f.Unknown {
		case "":
			p.Categorical[i].Unknown = UnknownError
		case UnknownError, UnknownIgnore:
		default:
			return fmt.Errorf("categorical feature %s: unknown handling %q", f.Column, f.Unknown)
		}
	}
	return nil
}

// Columns lists the input columns the pipeline reads, numeric first.
func (p *Pipeline) Columns() []string {
	cols := make([]string, 0, len(p.Numeric)+len(p.Categorical))
	for _, f := range p.Numeric {
		cols = append(cols, f.Column)
	}
	for _, f := range p.Categorical {
		cols = append(cols, f.Column)
	}
	return cols
}

// Predict returns 1 for fraud and 0 for genuine.
func (p *Pipeline) Predict(ctx context.Context, rec models.TransactionRecord) (int, error) {
	proba, err := p.PredictProba(ctx, rec)
	if err != nil {
		return 0, err
	}
	if proba[1] >= p.Threshold {
		return 1, nil
	}
	return 0, nil
}

// PredictProba returns [p_genuine, p_fraud].
func (p *Pipeline) PredictProba(ctx context.Context, rec models.TransactionRecord) ([2]float64, error) {
	if err := ctx.Err(); err != nil {
		return [2]float64{}, err
	}
	z, err := p.decision(rec)
	if err != nil {
		return [2]float64{}, err
	}
	fraud := sigmoid(z)
	return [2]float64{1 - fraud, fraud}, nil
}

func (p *Pipeline) decision(rec models.TransactionRecord) (float64, error) {
	numeric := rec.Numeric()
	categorical := rec.Categorical()

	z := p.Intercept
	for _, f := range p.Numeric {
		x, ok := numeric[f.Column]
		if !ok {
			return 0, fmt.Errorf("columns are missing: {'%s'}", f.Column)
		}
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return 0, fmt.Errorf("input %s contains NaN or infinity", f.Column)
		}
		z += f.Weight * (x - f.Mean) / f.Scale
	}
	for _, f := range p.Categorical {
		v, ok := categorical[f.Column]
		if !ok {
			return 0, fmt.Errorf("columns are missing: {'%s'}", f.Column)
		}
		w, known := f.Weights[v]
		if !known && f.Unknown == UnknownError {
			return 0, fmt.Errorf("found unknown categories ['%s'] in column %s during transform", v, f.Column)
		}
		z += w
	}
	return z, nil
}

func sigmoid(z float64) float64 {
	return 1 / (1 + math.Exp(-z))
}

// Package migration copies the transactions CSV into the document store and back.
package migration

import (
	// Go Internal Packages
	"context"
	"fmt"

	// Local Packages
	dataset "fraudwatch/dataset"

	// External Packages
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

const verifyPreview = 5

type DocumentWriter interface {
	InsertDocuments(ctx context.Context, docs []interface{}) (int, error)
	Count(ctx context.Context) (int64, error)
	Head(ctx context.Context, n int64) ([]bson.D, error)
}

type Importer struct {
	Logger *zap.Logger
	Repo   DocumentWriter
}

func NewImporter(logger *zap.Logger, repo DocumentWriter) *Importer {
	return &Importer{Logger: logger, Repo: repo}
}

// Import inserts every row of the CSV at path as its own document and
// returns the number inserted.
func (i *Importer) Import(ctx context.Context, path string) (int, error) {
	table, err := dataset.LoadCSV(path)
	if err != nil {
		return 0, fmt.Errorf("cannot read csv %s: %w", path, err)
	}
	i.Logger.Info("csv loaded", zap.String("path", path),
		zap.Int("rows", table.Len()), zap.Int("columns", len(table.Columns())))

	docs := Documents(table)
	if len(docs) == 0 {
		i.Logger.Warn("no records to insert")
		return 0, nil
	}

	inserted, err := i.Repo.InsertDocuments(ctx, docs)
	if err != nil {
		return 0, fmt.Errorf("failed to insert documents: %w", err)
	}
	i.Logger.Info("csv data inserted", zap.Int("inserted", inserted))

	i.verify(ctx)
	return inserted, nil
}

// verify logs what the collection now holds. Failures here don't undo the import.
func (i *Importer) verify(ctx context.Context) {
	count, err := i.Repo.Count(ctx)
	if err != nil {
		i.Logger.Warn("cannot count documents", zap.Error(err))
		return
	}
	head, err := i.Repo.Head(ctx, verifyPreview)
	if err != nil {
		i.Logger.Warn("cannot read back documents", zap.Error(err))
		return
	}
	for n, doc := range head {
		i.Logger.Info("stored document", zap.Int("n", n), zap.Any("document", doc.Map()))
	}
	i.Logger.Info("collection verified", zap.Int64("documents", count))
}

// Documents converts each row to a document with typed values in column order.
func Documents(table *dataset.Table) []interface{} {
	columns := table.Columns()
	docs := make([]interface{}, table.Len())
	for r := range docs {
		doc := make(bson.D, len(columns))
		for c, col := range columns {
			doc[c] = bson.E{Key: col.Name, Value: table.Value(r, c)}
		}
		docs[r] = doc
	}
	return docs
}

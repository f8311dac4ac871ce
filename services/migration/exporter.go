package migration

import (
	// Go Internal Packages
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"time"

	// External Packages
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type DocumentReader interface {
	FindAll(ctx context.Context) ([]bson.D, error)
}

type Exporter struct {
	Logger *zap.Logger
	Repo   DocumentReader
}

func NewExporter(logger *zap.Logger, repo DocumentReader) *Exporter {
	return &Exporter{Logger: logger, Repo: repo}
}

// Export dumps the whole collection to a CSV at path. The file is written
// next to its destination and renamed into place, so a failed export leaves
// no partial file behind.
func (e *Exporter) Export(ctx context.Context, path string) (int, error) {
	docs, err := e.Repo.FindAll(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to scan collection: %w", err)
	}

	dir := filepath.Dir(path)
	if err = os.MkdirAll(dir, 0o755); err != nil {
		return 0, fmt.Errorf("cannot create %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, ".export-*.csv")
	if err != nil {
		return 0, err
	}
	defer os.Remove(tmp.Name())

	if err = WriteCSV(tmp, docs); err != nil {
		_ = tmp.Close()
		return 0, fmt.Errorf("failed to write csv: %w", err)
	}
	if err = tmp.Close(); err != nil {
		return 0, err
	}
	if err = os.Rename(tmp.Name(), path); err != nil {
		return 0, err
	}

	e.Logger.Info("collection exported", zap.Int("records", len(docs)), zap.String("path", path))
	return len(docs), nil
}

// WriteCSV writes docs with a header made of every key in first-seen order.
// Documents missing a key get an empty cell.
func WriteCSV(w io.Writer, docs []bson.D) error {
	var header []string
	index := map[string]int{}
	for _, doc := range docs {
		for _, elem := range doc {
			if _, ok := index[elem.Key]; !ok {
				index[elem.Key] = len(header)
				header = append(header, elem.Key)
			}
		}
	}

	writer := csv.NewWriter(w)
	if len(header) > 0 {
		if err := writer.Write(header); err != nil {
			return err
		}
	}
	for _, doc := range docs {
		row := make([]string, len(header))
		for _, elem := range doc {
			row[index[elem.Key]] = formatValue(elem.Value)
		}
		if err := writer.Write(row); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

func formatValue(v interface{}) string {
	switch val := v.(type) {
	case nil, primitive.Null, primitive.Undefined:
		return ""
	case string:
		return val
	case primitive.ObjectID:
		return val.Hex()
	case bool:
		if val {
			return "True"
		}
		return "False"
	case int32:
		return strconv.FormatInt(int64(val), 10)
	case int64:
		return strconv.FormatInt(val, 10)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case primitive.DateTime:
		return val.Time().UTC().Format(time.RFC3339)
	case primitive.Decimal128:
		return val.String()
	case bson.D:
		raw, err := bson.MarshalExtJSON(val, false, false)
		if err != nil {
			return fmt.Sprint(val)
		}
		return string(raw)
	}
	return fmt.Sprint(v)
}

package resources

import (
	// Go Internal Packages
	"context"
	"os"
	"path/filepath"
	"testing"

	// Local Packages
	errors "fraudwatch/errors"

	// External Packages
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const artifact = `
name: test
numeric:
  - column: transaction_amount
    weight: 0.001
`

const data = "transaction_amount,customer_location,is_fraud\n10,Urban,0\n20,Rural,1\n"

func writeFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadBoth(t *testing.T) {
	dir := t.TempDir()
	loader := NewLoader(writeFile(t, dir, "model.yml", artifact), writeFile(t, dir, "data.csv", data), zap.NewNop())

	res := loader.Load(context.Background())
	require.True(t, res.Ready())
	assert.NoError(t, res.Err())
	assert.Equal(t, "test", res.Model.Name)
	assert.Equal(t, 2, res.Dataset.Len())

	assert.Same(t, res, loader.Load(context.Background()))
}

func TestLoadDegradesPerResource(t *testing.T) {
	dir := t.TempDir()
	loader := NewLoader(filepath.Join(dir, "missing.yml"), writeFile(t, dir, "data.csv", data), zap.NewNop())

	res := loader.Load(context.Background())
	assert.False(t, res.Ready())
	assert.Nil(t, res.Model)
	assert.True(t, errors.Is(res.ModelErr, errors.ResourceLoad))
	assert.ErrorContains(t, res.ModelErr, "could not load model from")
	assert.NoError(t, res.DatasetErr)
	assert.NotNil(t, res.Dataset)
	assert.Equal(t, res.ModelErr, res.Err())
}

func TestLoadRejectsDatasetWithoutRequiredColumns(t *testing.T) {
	dir := t.TempDir()
	loader := NewLoader(writeFile(t, dir, "model.yml", artifact), writeFile(t, dir, "data.csv", "a,b\n1,2\n"), zap.NewNop())

	res := loader.Load(context.Background())
	assert.NoError(t, res.ModelErr)
	assert.True(t, errors.Is(res.DatasetErr, errors.ResourceLoad))
	assert.ErrorContains(t, res.DatasetErr, `missing required column "is_fraud"`)
}

func TestLoadCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res := NewLoader("m.yml", "d.csv", zap.NewNop()).Load(ctx)
	assert.ErrorIs(t, res.ModelErr, context.Canceled)
	assert.ErrorIs(t, res.DatasetErr, context.Canceled)
}

package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readDoc(t *testing.T, dir, name string) string {
	t.Helper()
	b, err := os.ReadFile(filepath.Join(dir, name))
	require.NoError(t, err)
	return string(b)
}

func TestGenerateSchemaDocs(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, generateSchemaDocs(dir))

	cfg := readDoc(t, dir, "configuration.md")
	assert.Contains(t, cfg, "# Configuration")
	assert.Contains(t, cfg, "`dataset.type`")
	assert.Contains(t, cfg, "`8765`")
	assert.Contains(t, cfg, "csv, duckdb")

	ds := readDoc(t, dir, "dataset.md")
	assert.Contains(t, ds, "`Employee_Name`")
	assert.Contains(t, ds, "`Termd`")
	assert.Contains(t, ds, "Number of Employees Hired per Year")
}

func TestGenerateCLIDocs(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, generateCLIDocs(dir))

	index := readDoc(t, dir, "index.md")
	assert.Contains(t, index, "# CLI Reference")
	assert.Contains(t, index, "`HRDASH_DATASET_PATH`")
	assert.Contains(t, index, "--dataset-path")

	summary := readDoc(t, dir, "summary.md")
	assert.Contains(t, summary, "hrdash summary")
	assert.Contains(t, summary, "--metrics-only")
}

func TestCleanExample(t *testing.T) {
	got := cleanExample("  # Everyone\n  hrdash summary\n\n    indented")
	assert.Equal(t, "# Everyone\nhrdash summary\n\n  indented", got)
}

func TestEnvName(t *testing.T) {
	assert.Equal(t, "HRDASH_UI_SESSION_SECRET", envName("ui.session_secret"))
}

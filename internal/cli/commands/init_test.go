package commands

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/leapstack-labs/hrdash/internal/cli/config"
)

func TestNewInitCommand(t *testing.T) {
	tests := []struct {
		name      string
		setupDir  func(t *testing.T, dir string) // setup before running
		args      []string
		wantErr   bool
		wantFiles []string
	}{
		{
			name:      "init empty directory",
			args:      []string{},
			wantErr:   false,
			wantFiles: []string{"hrdash.yaml"},
		},
		{
			name:      "init with example data",
			args:      []string{"--example"},
			wantErr:   false,
			wantFiles: []string{"hrdash.yaml", "HRDataset.csv", ".gitignore"},
		},
		{
			name:      "init into new directory",
			args:      []string{"reports"},
			wantErr:   false,
			wantFiles: []string{"reports/hrdash.yaml"},
		},
		{
			name: "init existing config without force",
			setupDir: func(_ *testing.T, dir string) {
				_ = os.WriteFile(filepath.Join(dir, "hrdash.yaml"), []byte("existing"), 0600)
			},
			args:    []string{},
			wantErr: true,
		},
		{
			name: "init existing config with force",
			setupDir: func(_ *testing.T, dir string) {
				_ = os.WriteFile(filepath.Join(dir, "hrdash.yaml"), []byte("existing"), 0600)
			},
			args:      []string{"--force"},
			wantErr:   false,
			wantFiles: []string{"hrdash.yaml"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Create temp directory and change to it
			tmpDir := t.TempDir()
			t.Chdir(tmpDir)
			config.ResetConfig()

			// Run setup if provided
			if tt.setupDir != nil {
				tt.setupDir(t, tmpDir)
			}

			cmd := NewInitCommand()
			buf := new(bytes.Buffer)
			cmd.SetOut(buf)
			cmd.SetErr(buf)
			cmd.SetArgs(tt.args)

			err := cmd.Execute()
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Contains(t, buf.String(), "hrdash project initialized!")

			// Check expected files exist
			for _, f := range tt.wantFiles {
				path := filepath.Join(tmpDir, f)
				_, err := os.Stat(path)
				assert.False(t, os.IsNotExist(err), "expected file %q to exist", f)
			}
		})
	}
}

func TestInitCommandMetadata(t *testing.T) {
	cmd := NewInitCommand()

	assert.Equal(t, "init [directory]", cmd.Use)
	assert.NotEmpty(t, cmd.Short, "Short should not be empty")
	assert.NotNil(t, cmd.Flags().Lookup("force"), "--force flag should exist")
	assert.NotNil(t, cmd.Flags().Lookup("example"), "--example flag should exist")
}

func TestInitCreatesLoadableConfig(t *testing.T) {
	tmpDir := t.TempDir()
	t.Chdir(tmpDir)
	config.ResetConfig()

	cmd := NewInitCommand()
	cmd.SetOut(new(bytes.Buffer))
	cmd.SetErr(new(bytes.Buffer))
	cmd.SetArgs([]string{"--dataset", "exports/hr.csv"})
	require.NoError(t, cmd.Execute())

	content, err := os.ReadFile("hrdash.yaml")
	require.NoError(t, err, "failed to read hrdash.yaml")

	var written projectFile
	require.NoError(t, yaml.Unmarshal(content, &written))
	assert.Equal(t, "csv", written.Dataset.Type)
	assert.Equal(t, "exports/hr.csv", written.Dataset.Path)
	assert.Equal(t, config.DefaultUIPort, written.UI.Port)

	// The loader reads it back with the path resolved against the project.
	cfg, err := config.LoadConfig(filepath.Join(tmpDir, "hrdash.yaml"), nil)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())
	assert.Equal(t, filepath.Join(tmpDir, "exports", "hr.csv"), cfg.Dataset.Path)
	config.ResetConfig()
}

func TestInitExampleDataLoads(t *testing.T) {
	tmpDir := t.TempDir()
	t.Chdir(tmpDir)

	cmd := NewInitCommand()
	cmd.SetOut(new(bytes.Buffer))
	cmd.SetErr(new(bytes.Buffer))
	cmd.SetArgs([]string{"--example"})
	require.NoError(t, cmd.Execute())

	config.ResetConfig()
	t.Setenv("HRDASH_DATASET_PATH", filepath.Join(tmpDir, "HRDataset.csv"))
	t.Setenv("HRDASH_OUTPUT", "markdown")

	sum := NewSummaryCommand()
	var buf bytes.Buffer
	sum.SetOut(&buf)
	sum.SetErr(new(bytes.Buffer))
	sum.SetArgs([]string{"--metrics-only"})
	require.NoError(t, sum.Execute())
	assert.Contains(t, buf.String(), "Showing 16 of 16 employees")
}

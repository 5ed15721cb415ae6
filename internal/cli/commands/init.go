package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/leapstack-labs/hrdash/internal/cli/config"
)

// projectFile is the hrdash.yaml that init writes.
type projectFile struct {
	Dataset  datasetSection `yaml:"dataset"`
	Output   string         `yaml:"output"`
	LogLevel string         `yaml:"log_level"`
	UI       uiSection      `yaml:"ui"`
}

type datasetSection struct {
	Type  string `yaml:"type"`
	Path  string `yaml:"path,omitempty"`
	DSN   string `yaml:"dsn,omitempty"`
	Table string `yaml:"table,omitempty"`
}

type uiSection struct {
	Port     int  `yaml:"port"`
	AutoOpen bool `yaml:"auto_open"`
	Watch    bool `yaml:"watch"`
}

func defaultProjectFile(datasetPath string) projectFile {
	return projectFile{
		Dataset:  datasetSection{Type: config.DefaultDatasetType, Path: datasetPath},
		Output:   config.DefaultOutput,
		LogLevel: config.DefaultLogLevel,
		UI: uiSection{
			Port:     config.DefaultUIPort,
			AutoOpen: true,
			Watch:    true,
		},
	}
}

// NewInitCommand creates the init command.
func NewInitCommand() *cobra.Command {
	var force bool
	var example bool
	var datasetPath string

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Initialize a new hrdash project",
		Long: `Initialize a new hrdash project by writing an hrdash.yaml configuration file.

Use --example to also write a small sample HRDataset.csv so every command
works straight away.`,
		Example: `  # Initialize in current directory
  hrdash init

  # Initialize with sample data
  hrdash init --example

  # Initialize in a new directory, pointing at an existing export
  hrdash init reports --dataset exports/HRDataset_v14.csv

  # Force overwrite existing config
  hrdash init --force`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}
			return runInit(NewCommandContext(cmd), dir, datasetPath, force, example)
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite existing configuration")
	cmd.Flags().BoolVar(&example, "example", false, "Also write a sample dataset")
	cmd.Flags().StringVar(&datasetPath, "dataset", config.DefaultDatasetPath, "Dataset path to record in the config")

	return cmd
}

func runInit(cc *CommandContext, dir, datasetPath string, force, example bool) error {
	r := cc.Renderer

	// Create directory if specified and doesn't exist
	if dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	// Check if config already exists
	configPath := filepath.Join(dir, config.DefaultConfigFile)
	if _, err := os.Stat(configPath); err == nil && !force {
		return fmt.Errorf("%s already exists. Use --force to overwrite", config.DefaultConfigFile)
	}

	content, err := yaml.Marshal(defaultProjectFile(datasetPath))
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := os.WriteFile(configPath, content, 0600); err != nil {
		return fmt.Errorf("failed to write %s: %w", configPath, err)
	}
	r.StatusLine(config.DefaultConfigFile, "success", "")

	if example {
		files, err := copyTemplate("example", dir, force)
		if err != nil {
			return fmt.Errorf("failed to write example data: %w", err)
		}
		for _, f := range files {
			r.StatusLine(f, "success", "")
		}
	}

	cc.Logger.Debug("project initialized", "dir", dir, "dataset", datasetPath, "example", example)

	r.Println("")
	r.Success("hrdash project initialized!")
	r.Println("")
	r.Println("Next steps:")
	if !example {
		r.Printf("  Copy your HR export to %s\n", datasetPath)
	}
	r.Println("  hrdash summary   Show metrics and charts in the terminal")
	r.Println("  hrdash explore   Change filters interactively")
	r.Println("  hrdash ui        Open the web dashboard")

	return nil
}

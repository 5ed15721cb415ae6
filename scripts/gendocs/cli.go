package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/leapstack-labs/hrdash/internal/cli"
	"github.com/leapstack-labs/hrdash/internal/pipeline"
)

// flagConfigKeys names the configuration key a flag overrides.
var flagConfigKeys = map[string]string{
	"dataset-type":  "dataset.type",
	"dataset-path":  "dataset.path",
	"dataset-dsn":   "dataset.dsn",
	"dataset-table": "dataset.table",
	"log-level":     "log_level",
	"output":        "output",
	"verbose":       "verbose",
	"year":          "filters.year",
	"status":        "filters.status",
	"source":        "filters.source",
	"port":          "ui.port",
	"watch":         "ui.watch",
}

// visibleCommands returns the subcommands worth a page.
func visibleCommands(root *cobra.Command) []*cobra.Command {
	var out []*cobra.Command
	for _, cmd := range root.Commands() {
		if cmd.Hidden || cmd.Name() == "help" || cmd.Name() == "__complete" {
			continue
		}
		out = append(out, cmd)
	}
	return out
}

// generateCLIDocs writes index.md plus one page per command.
func generateCLIDocs(outDir string) error {
	log.Printf("Generating CLI docs to %s", outDir)

	if err := os.MkdirAll(outDir, 0750); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	rootCmd := cli.NewRootCmd()

	if err := generateCLIIndex(rootCmd, outDir); err != nil {
		return fmt.Errorf("failed to generate index: %w", err)
	}
	log.Printf("  Generated index.md")

	for _, cmd := range visibleCommands(rootCmd) {
		if err := generateCommandPage(cmd, outDir); err != nil {
			return fmt.Errorf("failed to generate page for %s: %w", cmd.Name(), err)
		}
		log.Printf("  Generated %s.md", cmd.Name())
	}

	return nil
}

func generateCLIIndex(rootCmd *cobra.Command, outDir string) error {
	w := NewMarkdownWriter()

	w.Frontmatter("CLI Reference", "Command-line interface reference for hrdash")
	w.GeneratedMarker()

	w.Header(1, "CLI Reference")
	w.Paragraph("hrdash summarizes an HR employee dataset from the terminal, exports its charts as SVG and serves the interactive web dashboard.")

	w.Header(2, "Installation")
	w.CodeBlock("bash", "go install github.com/leapstack-labs/hrdash/cmd/hrdash@latest")

	w.Header(2, "Commands")
	var rows [][]string
	for _, cmd := range visibleCommands(rootCmd) {
		link := fmt.Sprintf("[%s](/cli/%s)", InlineCode(cmd.Name()), cmd.Name())
		rows = append(rows, []string{link, cleanDescription(cmd.Short)})
	}
	w.Table([]string{"Command", "Description"}, rows)

	w.Header(2, "Global Options")
	w.Paragraph("These flags are available for all commands:")
	writeFlagsTable(w, rootCmd.PersistentFlags())

	w.Header(2, "Environment Variables")
	w.Paragraph("Every configuration key can be set through an environment variable: prefix it with `HRDASH_`, upper-case it and replace dots with underscores.")

	var envRows [][]string
	for _, f := range getConfigSchema() {
		envRows = append(envRows, []string{InlineCode(envName(f.Name)), f.Description})
	}
	w.Table([]string{"Variable", "Description"}, envRows)

	w.Paragraph("Command-line flags take precedence over environment variables, which take precedence over `hrdash.yaml`.")

	w.Header(2, "Exit Codes")
	w.Table([]string{"Code", "Meaning"}, [][]string{
		{InlineCode("0"), "Success"},
		{InlineCode("1"), "Error (check stderr for details)"},
	})

	filename := filepath.Join(outDir, "index.md")
	return os.WriteFile(filename, w.Bytes(), 0600)
}

func generateCommandPage(cmd *cobra.Command, outDir string) error {
	w := NewMarkdownWriter()

	w.Frontmatter(cmd.Name(), cmd.Short)
	w.GeneratedMarker()

	w.Header(1, cmd.Name())
	desc := cmd.Long
	if desc == "" {
		desc = cmd.Short
	}
	w.Paragraph(desc)

	w.Header(2, "Usage")
	useLine := cmd.UseLine()
	if !strings.HasPrefix(useLine, "hrdash") {
		useLine = "hrdash " + useLine
	}
	w.CodeBlock("bash", useLine)

	if len(cmd.Aliases) > 0 {
		w.Header(2, "Aliases")
		aliases := make([]string, 0, len(cmd.Aliases))
		for _, alias := range cmd.Aliases {
			aliases = append(aliases, InlineCode(alias))
		}
		w.BulletList(aliases)
	}

	if cmd.HasLocalFlags() {
		w.Header(2, "Options")
		writeFlagsTable(w, cmd.LocalFlags())
	}

	if cmd.Flags().Lookup("year") != nil {
		w.Header(2, "Filters")
		w.Paragraph("`--year`, `--status` and `--source` each take one value from `hrdash options` or `All`. Unset flags fall back to the `filters` section of `hrdash.yaml`. A value that never occurs in the dataset is reported on stderr and matches no employees.")
	}

	if cmd.Name() == "chart" {
		w.Header(2, "Charts")
		var charts [][]string
		for _, name := range pipeline.ChartNames() {
			agg, _ := pipeline.Lookup(name)
			charts = append(charts, []string{InlineCode(name), agg.Title()})
		}
		w.Table([]string{"Name", "Title"}, charts)
	}

	if cmd.HasInheritedFlags() {
		w.Header(2, "Global Options")
		writeFlagsTable(w, cmd.InheritedFlags())
	}

	if cmd.Example != "" {
		w.Header(2, "Examples")
		w.CodeBlock("bash", cleanExample(cmd.Example))
	}

	filename := filepath.Join(outDir, cmd.Name()+".md")
	return os.WriteFile(filename, w.Bytes(), 0600)
}

func writeFlagsTable(w *MarkdownWriter, flags *pflag.FlagSet) {
	var rows [][]string
	flags.VisitAll(func(f *pflag.Flag) {
		if f.Hidden {
			return
		}

		short := ""
		if f.Shorthand != "" {
			short = "-" + f.Shorthand
		}

		defVal := f.DefValue
		if defVal != "" && f.Value.Type() == "string" {
			defVal = InlineCode(defVal)
		}

		key := "-"
		if k, ok := flagConfigKeys[f.Name]; ok {
			key = InlineCode(k)
		}

		rows = append(rows, []string{InlineCode("--" + f.Name), short, defVal, key, cleanDescription(f.Usage)})
	})
	w.Table([]string{"Option", "Short", "Default", "Config Key", "Description"}, rows)
}

// cleanExample strips the indentation shared by every non-empty line.
func cleanExample(example string) string {
	lines := strings.Split(example, "\n")

	minIndent := -1
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		indent := len(line) - len(strings.TrimLeft(line, " \t"))
		if minIndent == -1 || indent < minIndent {
			minIndent = indent
		}
	}
	if minIndent <= 0 {
		return strings.TrimSpace(example)
	}

	for i, line := range lines {
		if len(line) >= minIndent {
			lines[i] = line[minIndent:]
		} else {
			lines[i] = strings.TrimLeft(line, " \t")
		}
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}

// Package main provides tests for the hrdash CLI.
package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/leapstack-labs/hrdash/internal/cli"
	"github.com/leapstack-labs/hrdash/internal/cli/config"
	"github.com/leapstack-labs/hrdash/internal/testutil"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	config.ResetConfig()
	t.Chdir(t.TempDir())

	cmd := cli.NewRootCmd()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(t.Context())
	return buf.String(), err
}

func TestVersionCommand(t *testing.T) {
	output, err := run(t, "version")
	if err != nil {
		t.Errorf("version command error = %v", err)
	}
	if !strings.Contains(output, "hrdash") {
		t.Errorf("version output should contain 'hrdash', got: %s", output)
	}
}

func TestHelpCommand(t *testing.T) {
	output, err := run(t, "--help")
	if err != nil {
		t.Errorf("help command error = %v", err)
	}

	expectedCommands := []string{"summary", "chart", "options", "list", "explore", "ui", "doctor", "init"}
	for _, expected := range expectedCommands {
		if !strings.Contains(output, expected) {
			t.Errorf("help output should contain '%s', got: %s", expected, output)
		}
	}
}

func TestSummaryCommand(t *testing.T) {
	path := testutil.WriteSampleCSV(t)

	output, err := run(t, "summary", "--dataset-path", path, "--output", "markdown", "--metrics-only")
	if err != nil {
		t.Errorf("summary command error = %v", err)
	}
	if !strings.Contains(output, "Showing 6 of 6 employees") {
		t.Errorf("summary output should count every employee, got: %s", output)
	}
}

func TestListCommandJSON(t *testing.T) {
	path := testutil.WriteSampleCSV(t)

	output, err := run(t, "list", "--dataset-path", path, "--output", "json", "--year", "2014")
	if err != nil {
		t.Errorf("list command error = %v", err)
	}
	if !strings.Contains(output, `"Andreola, Colby"`) {
		t.Errorf("list output should contain the 2014 hire, got: %s", output)
	}
}

func TestMissingDataset(t *testing.T) {
	_, err := run(t, "summary", "--dataset-path", "does-not-exist.csv")
	if err == nil {
		t.Error("summary should fail when the dataset is missing")
	}
}

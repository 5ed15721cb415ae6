// Package main generates the markdown reference for the hrdash CLI, its
// configuration file and the dataset schema.
//
// Usage:
//
//	go run ./scripts/gendocs -gen=cli -outdir=docs/cli
//	go run ./scripts/gendocs -gen=schema -outdir=docs/reference
//	go run ./scripts/gendocs -gen=all
package main

import (
	"flag"
	"log"
	"os"
	"path/filepath"
)

var (
	genFlag    = flag.String("gen", "all", "what to generate: cli, schema, all")
	outDirFlag = flag.String("outdir", "", "output directory (defaults based on gen type)")
)

func main() {
	flag.Parse()

	validGenFlags := map[string]bool{"cli": true, "schema": true, "all": true}
	if !validGenFlags[*genFlag] {
		log.Fatalf("unknown -gen value: %s (use: cli, schema, all)", *genFlag)
	}

	// Find project root (where go.mod is)
	projectRoot, err := findProjectRoot()
	if err != nil {
		log.Fatalf("failed to find project root: %v", err)
	}

	log.Printf("Project root: %s", projectRoot)

	outDir := func(def string) string {
		if *outDirFlag != "" {
			return *outDirFlag
		}
		return filepath.Join(projectRoot, "docs", def)
	}

	switch *genFlag {
	case "cli":
		if err := generateCLIDocs(outDir("cli")); err != nil {
			log.Fatalf("failed to generate CLI docs: %v", err)
		}

	case "schema":
		if err := generateSchemaDocs(outDir("reference")); err != nil {
			log.Fatalf("failed to generate schema docs: %v", err)
		}

	case "all":
		if err := generateCLIDocs(filepath.Join(projectRoot, "docs", "cli")); err != nil {
			log.Fatalf("failed to generate CLI docs: %v", err)
		}
		if err := generateSchemaDocs(filepath.Join(projectRoot, "docs", "reference")); err != nil {
			log.Fatalf("failed to generate schema docs: %v", err)
		}
	}

	log.Println("Done!")
}

// findProjectRoot walks up from current directory to find go.mod.
func findProjectRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", os.ErrNotExist
		}
		dir = parent
	}
}

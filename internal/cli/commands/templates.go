package commands

import (
	"embed"
	"io/fs"
	"os"
	"path/filepath"
)

//go:embed all:templates
var templateFS embed.FS

// copyTemplate copies an embedded template directory to the target path and
// returns the files written, relative to targetDir. Existing files are kept
// unless force is set.
func copyTemplate(templateName, targetDir string, force bool) ([]string, error) {
	root := "templates/" + templateName
	var written []string

	err := fs.WalkDir(templateFS, root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		// Calculate relative path from template root
		relPath, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}

		// Skip root directory
		if relPath == "." {
			return nil
		}

		// Handle special file renames
		relPath = renameSpecialFiles(relPath)
		targetPath := filepath.Join(targetDir, relPath)

		if d.IsDir() {
			return os.MkdirAll(targetPath, 0750)
		}

		// Check if file exists
		if !force {
			if _, err := os.Stat(targetPath); err == nil {
				return nil // Skip existing files
			}
		}

		// Read and write file
		content, err := templateFS.ReadFile(path)
		if err != nil {
			return err
		}

		if err := os.WriteFile(targetPath, content, 0600); err != nil {
			return err
		}
		written = append(written, relPath)
		return nil
	})

	return written, err
}

// renameSpecialFiles handles files that need renaming (e.g., dotfiles).
func renameSpecialFiles(path string) string {
	// Rename "gitignore" to ".gitignore"
	base := filepath.Base(path)
	dir := filepath.Dir(path)

	switch base {
	case "gitignore":
		return filepath.Join(dir, ".gitignore")
	default:
		return path
	}
}

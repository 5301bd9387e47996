// Package finder discovers the source files to analyze. It is the
// filesystem-walking collaborator around the pure analysis core.
package finder

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/ritzau/layerlint/pkg/analysis"
)

// FindSourceFiles walks srcDir and returns every .rs file as an
// analysis input: Rel is slash-separated relative to srcDir and drives
// module identity, Path is the evidence path prefixed with srcDir's
// name relative to the workspace. Build output and VCS directories are
// skipped.
func FindSourceFiles(workspace, srcDir string) ([]analysis.SourceFile, error) {
	root := filepath.Join(workspace, srcDir)

	var files []analysis.SourceFile
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() {
			name := d.Name()
			if name == ".git" || name == "target" {
				return filepath.SkipDir
			}
			return nil
		}

		if filepath.Ext(path) != ".rs" {
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		text, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading %s: %w", path, err)
		}

		rel = filepath.ToSlash(rel)
		files = append(files, analysis.SourceFile{
			Rel:  rel,
			Path: filepath.ToSlash(filepath.Join(srcDir, rel)),
			Text: string(text),
		})
		return nil
	})

	return files, err
}

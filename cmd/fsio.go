package cmd

import (
	"os"
	"path/filepath"

	"github.com/gopasrc/pasrc/internal/sourcelayout"
)

// writeTree materializes files under root, creating parent directories as
// needed.
func writeTree(root string, files []sourcelayout.File) error {
	for _, f := range files {
		full := filepath.Join(root, filepath.FromSlash(f.Path))
		if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
			return err
		}
		if err := os.WriteFile(full, f.Bytes, 0o644); err != nil {
			return err
		}
	}
	return nil
}

// readTree walks root and returns every regular file as a sourcelayout.File
// with a Path relative to root, using forward slashes regardless of host OS.
func readTree(root string) ([]sourcelayout.File, error) {
	var files []sourcelayout.File
	err := filepath.Walk(root, func(p string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(root, p)
		if err != nil {
			return err
		}
		b, err := os.ReadFile(p)
		if err != nil {
			return err
		}
		files = append(files, sourcelayout.File{Path: filepath.ToSlash(rel), Bytes: b})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}

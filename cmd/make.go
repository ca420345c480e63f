package cmd

import (
	"archive/zip"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"

	"github.com/gopasrc/pasrc/internal/diagnostics"
	"github.com/gopasrc/pasrc/internal/model"
	"github.com/gopasrc/pasrc/internal/padsl"
	"github.com/gopasrc/pasrc/internal/pkgio"
	"github.com/gopasrc/pasrc/internal/templatestore"
)

var makeCmd = &cobra.Command{
	Use:   "make <pkg> <pkgsDir> <paFile>",
	Short: "Synthesize a new package from a text DSL file and stock templates",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		code, err := runMake(args[0], args[1], args[2])
		setExitCode(code)
		return err
	},
}

// runMake builds a fresh Document from paFile's single screen block against
// the built-in template table, bundling every file under pkgsDir as a
// LocalFile resource, and packs the result into pkgPath.
func runMake(pkgPath, pkgsDir, paFile string) (int, error) {
	src, err := os.ReadFile(paFile)
	if err != nil {
		return 2, fmt.Errorf("reading %s: %w", paFile, err)
	}
	block, err := padsl.Parse(string(src))
	if err != nil {
		return 1, fmt.Errorf("parsing %s: %w", paFile, err)
	}

	doc := model.New()
	doc.Templates = templatestore.Builtins()
	doc.Screens[block.Name.Identifier] = block
	doc.ScreenOrder = []string{block.Name.Identifier}

	if pkgsDir != "" {
		if err := bundleAssets(doc, pkgsDir); err != nil {
			return 2, fmt.Errorf("bundling %s: %w", pkgsDir, err)
		}
	}

	diags := diagnostics.NewContainer()
	out, err := os.Create(pkgPath)
	if err != nil {
		return 2, fmt.Errorf("creating %s: %w", pkgPath, err)
	}
	defer out.Close()

	zw := zip.NewWriter(out)
	diag := pkgio.Write(zw, doc, diags)
	if diag != nil {
		zw.Close()
		logDiagnostics(diags)
		return 1, diag
	}
	if err := zw.Close(); err != nil {
		return 1, fmt.Errorf("closing %s: %w", pkgPath, err)
	}

	logDiagnostics(diags)
	if diags.HasFatal() {
		return 1, nil
	}
	return 0, nil
}

// bundleAssets registers every regular file directly under pkgsDir (no
// recursion) as a LocalFile resource, keyed by its base name with the
// extension stripped.
func bundleAssets(doc *model.Document, pkgsDir string) error {
	entries, err := os.ReadDir(pkgsDir)
	if err != nil {
		return err
	}
	var names []string
	for _, e := range entries {
		if !e.IsDir() {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	rm := &model.ResourceManifest{}
	for _, name := range names {
		b, err := os.ReadFile(filepath.Join(pkgsDir, name))
		if err != nil {
			return err
		}
		resName := filepath.Base(name[:len(name)-len(filepath.Ext(name))])
		rm.Resources = append(rm.Resources, model.ResourceEntry{
			Name:     resName,
			Kind:     model.ResourceKindLocalFile,
			FileName: name,
		})
		doc.Assets[name] = &model.AssetBlob{Bytes: b}
	}
	doc.ResourcesManifest = rm
	return nil
}

package cmd

import (
	"archive/zip"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/gopasrc/pasrc/internal/diagnostics"
	"github.com/gopasrc/pasrc/internal/pkgio"
	"github.com/gopasrc/pasrc/internal/sourcelayout"
)

var packCmd = &cobra.Command{
	Use:   "pack <pkg> <srcDir>",
	Short: "Pack a source tree into a package",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		code, err := runPack(args[0], args[1])
		setExitCode(code)
		return err
	},
}

func runPack(pkgPath, srcDir string) (int, error) {
	files, err := readTree(srcDir)
	if err != nil {
		return 2, fmt.Errorf("reading %s: %w", srcDir, err)
	}

	diags := diagnostics.NewContainer()
	doc, err := sourcelayout.Read(files, diags)
	if err != nil {
		return 1, fmt.Errorf("reading source layout: %w", err)
	}

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

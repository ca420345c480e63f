package cmd

import (
	"archive/zip"
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gopasrc/pasrc/internal/diagnostics"
	"github.com/gopasrc/pasrc/internal/pkgio"
	"github.com/gopasrc/pasrc/internal/sourcelayout"
)

func cmdCtx() context.Context { return context.Background() }

var unpackCmd = &cobra.Command{
	Use:   "unpack <pkg> [<outDir>]",
	Short: "Unpack a package into a human-editable source tree",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		code, err := runUnpack(args)
		setExitCode(code)
		return err
	},
}

func inferOutDir(pkgPath string) string {
	base := filepath.Base(pkgPath)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	return base + appCfg.OutputDirSuffix
}

func runUnpack(args []string) (int, error) {
	pkgPath := args[0]
	outDir := ""
	if len(args) == 2 {
		outDir = args[1]
	} else {
		outDir = inferOutDir(pkgPath)
	}

	zr, err := zip.OpenReader(pkgPath)
	if err != nil {
		return 2, fmt.Errorf("opening %s: %w", pkgPath, err)
	}
	defer zr.Close()

	diags := diagnostics.NewContainer()
	doc, err := pkgio.Load(&zr.Reader, appLog, diags)
	if err != nil {
		logDiagnostics(diags)
		return 1, err
	}

	files, err := sourcelayout.Write(doc, diags)
	if err != nil {
		return 1, fmt.Errorf("writing source layout: %w", err)
	}
	if err := writeTree(outDir, files); err != nil {
		return 1, fmt.Errorf("writing %s: %w", outDir, err)
	}

	logDiagnostics(diags)
	if diags.HasFatal() {
		return 1, nil
	}
	return 0, nil
}

func logDiagnostics(diags *diagnostics.Container) {
	if appLog == nil {
		return
	}
	for _, d := range diags.All() {
		if d.IsFatal() {
			appLog.Error(cmdCtx(), d, d.Error())
		} else {
			appLog.Warn(cmdCtx(), nil, d.Error())
		}
	}
}

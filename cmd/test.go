package cmd

import (
	"archive/zip"
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gopasrc/pasrc/internal/diagnostics"
	"github.com/gopasrc/pasrc/internal/pkgio"
)

var testCmd = &cobra.Command{
	Use:   "test <pkg>",
	Short: "Round-trip one package in memory and verify its checksum survives",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		code, err := runTest(args[0])
		setExitCode(code)
		return err
	},
}

// roundTrip loads pkgPath, repacks the resulting Document into an in-memory
// archive, and reloads that archive, returning both checksums and any fatal
// diagnostic encountered along the way (spec P1).
func roundTrip(pkgPath string) (before, after string, diags *diagnostics.Container, err error) {
	zr, err := zip.OpenReader(pkgPath)
	if err != nil {
		return "", "", nil, fmt.Errorf("opening %s: %w", pkgPath, err)
	}
	defer zr.Close()

	diags = diagnostics.NewContainer()
	doc, err := pkgio.Load(&zr.Reader, appLog, diags)
	if err != nil {
		return "", "", diags, err
	}
	before = doc.Checksum

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	if diag := pkgio.Write(zw, doc, diags); diag != nil {
		return before, "", diags, diag
	}
	if err := zw.Close(); err != nil {
		return before, "", diags, err
	}

	zr2, err := zip.NewReader(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	if err != nil {
		return before, "", diags, err
	}
	doc2, err := pkgio.Load(zr2, appLog, diags)
	if err != nil {
		return before, "", diags, err
	}
	return before, doc2.Checksum, diags, nil
}

func runTest(pkgPath string) (int, error) {
	before, after, diags, err := roundTrip(pkgPath)
	if diags != nil {
		logDiagnostics(diags)
	}
	if err != nil {
		return 1, err
	}
	if diags.HasFatal() {
		return 1, nil
	}
	if before != after {
		return 1, fmt.Errorf("checksum mismatch for %s: %s != %s", pkgPath, before, after)
	}
	fmt.Println("ok", pkgPath, before)
	return 0, nil
}

var testallCmd = &cobra.Command{
	Use:   "testall <dir>",
	Short: "Round-trip every *.msapp in a directory (top-level only)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		code, err := runTestAll(args[0])
		setExitCode(code)
		return err
	},
}

func runTestAll(dir string) (int, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return 2, fmt.Errorf("reading %s: %w", dir, err)
	}

	var pkgs []string
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), ".msapp") {
			continue
		}
		pkgs = append(pkgs, filepath.Join(dir, e.Name()))
	}
	sort.Strings(pkgs)

	passed := 0
	anyFatal := false
	for _, p := range pkgs {
		before, after, diags, err := roundTrip(p)
		if diags != nil {
			logDiagnostics(diags)
		}
		switch {
		case err != nil:
			fmt.Println("FAIL", p, err)
			anyFatal = true
		case diags != nil && diags.HasFatal():
			fmt.Println("FAIL", p, "diagnostics carried fatal errors")
			anyFatal = true
		case before != after:
			fmt.Println("FAIL", p, "checksum mismatch")
			anyFatal = true
		default:
			fmt.Println("ok", p, before)
			passed++
		}
	}
	fmt.Printf("%d/%d passed\n", passed, len(pkgs))
	if anyFatal {
		return 1, nil
	}
	return 0, nil
}

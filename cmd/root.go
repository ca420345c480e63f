// Package cmd provides the command-line interface for pasrc, the
// pack/unpack conversion tool.
//
// Configuration System:
//
//	The CLI supports layered configuration with clear precedence:
//	1. Command-line flags (--output-dir-suffix, --log-level, etc.) - highest priority
//	2. PASRC_-prefixed environment variables
//	3. .pasrc.yml, searched upward from the working directory - lowest priority
//
// Verbs are the literal dash-prefixed tokens the conversion interface
// requires (-unpack, -pack, -make, -test, -testall). Cobra's own flag/arg
// splitter treats any single-dash multi-character token as a shorthand-flag
// cluster rather than a subcommand name, so dispatch() remaps the leading
// verb token to its dash-free form (matching each subcommand's Use) before
// handing argv to cobra.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/gopasrc/pasrc/internal/config"
	"github.com/gopasrc/pasrc/internal/logging"
)

var (
	appViper = viper.New()
	appCfg   config.Config
	appLog   logging.Logger
)

var rootCmd = &cobra.Command{
	Use:           "pasrc",
	Short:         "Convert between a compiled app package and an editable source tree",
	Long: `pasrc converts between a compiled application package (a ZIP archive of
JSON manifests, XML control templates, and asset blobs) and a human-editable
source tree, with byte-faithful round-tripping as the primary guarantee.

Verbs:
  pasrc -unpack <pkg> [<outDir>]        unpack a package into a source tree
  pasrc -pack <pkg> <srcDir>            pack a source tree into a package
  pasrc -make <pkg> <pkgsDir> <paFile>  synthesize a package from raw text DSL
  pasrc -test <pkg>                     round-trip one package, verify checksum
  pasrc -testall <dir>                  round-trip every *.msapp in a directory`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) > 0 {
			setExitCode(2)
			return fmt.Errorf("unrecognized verb %q", args[0])
		}
		return cmd.Help()
	},
}

// Execute runs the root command and returns the process exit code: 0 on
// success, 1 when diagnostics carried fatal errors, 2 on usage misuse.
func Execute() int {
	cobra.OnInitialize(initConfig)
	code, err := dispatch()
	if err != nil {
		fmt.Fprintln(os.Stderr, "pasrc:", err)
	}
	return code
}

// verbTokens maps each literal dash-prefixed verb the CLI accepts to the
// dash-free subcommand name cobra actually matches on.
var verbTokens = map[string]string{
	"-unpack":  "unpack",
	"-pack":    "pack",
	"-make":    "make",
	"-test":    "test",
	"-testall": "testall",
}

// remapVerb rewrites argv[0] from its dash-prefixed form to the dash-free
// subcommand name cobra's own arg splitter would otherwise treat as a
// shorthand-flag cluster and drop before subcommand matching ever runs.
// Anything else (flags, an unrecognized verb) passes through unchanged.
func remapVerb(args []string) []string {
	if len(args) == 0 {
		return args
	}
	name, ok := verbTokens[args[0]]
	if !ok {
		return args
	}
	out := make([]string, len(args))
	copy(out, args)
	out[0] = name
	return out
}

// dispatch runs rootCmd and recovers the exit code a verb's RunE stashed via
// setExitCode, defaulting to 2 (usage) for cobra-level argument errors and 0
// when no code was ever set.
func dispatch() (int, error) {
	exitCode = -1
	args := os.Args[1:]
	for _, a := range args {
		if a == "-help" {
			return 0, rootCmd.Help()
		}
	}
	rootCmd.SetArgs(remapVerb(args))
	err := rootCmd.Execute()
	if err != nil && exitCode == -1 {
		return 2, err
	}
	if exitCode == -1 {
		return 0, nil
	}
	return exitCode, err
}

// exitCode is set by a verb's RunE just before it returns, since cobra's
// RunE signature carries only an error. -1 means "not yet set".
var exitCode = -1

func setExitCode(c int) { exitCode = c }

func init() {
	config.BindFlags(rootCmd.PersistentFlags(), appViper)
	rootCmd.AddCommand(unpackCmd, packCmd, makeCmd, testCmd, testallCmd)
}

func initConfig() {
	cfg, err := config.Load(appViper)
	if err != nil {
		fmt.Fprintln(os.Stderr, "pasrc: config:", err)
		cfg = config.Default()
	}
	appCfg = cfg
	appLog = logging.New(logging.Config{Level: logging.ParseLevel(appCfg.LogLevel), Format: appCfg.LogFormat})
}

// Package config manages this tool's operator knobs using Viper: defaults
// set in code, overridable by a .pasrc.yml file searched upward from the
// working directory, PASRC_-prefixed environment variables, and pflag flags
// bound on the root command. Format-level constants the conversion
// specification pins down (the current FormatVersion, the fixed archive
// kind table) are deliberately not configurable here — making them operator
// knobs would let a misconfigured run silently violate I6/I7.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	yamlv2 "gopkg.in/yaml.v2"
)

// Config holds every operator-adjustable setting.
type Config struct {
	// OutputDirSuffix is appended to a PKG's base name to infer -unpack's
	// output directory when the caller omits one (spec §6 "<pkg>_src").
	OutputDirSuffix string `mapstructure:"output_dir_suffix"`

	// CanonicalizeOther is loaded and bound to --canonicalize-other, but no
	// other package reads it: sourcelayout.Write rewrites Other/ JSON
	// entries with sorted keys and fixed indentation whatever its value.
	CanonicalizeOther bool `mapstructure:"canonicalize_other"`

	// FormatVersionMajor/Minor are loaded but no other package reads them:
	// pkgio.Load accepts only model.CurrentFormatVersion.
	FormatVersionMajor int `mapstructure:"format_version_major"`
	FormatVersionMinor int `mapstructure:"format_version_minor"`

	// ChecksumAlgorithm is loaded but pkgio.Checksum does not read it; the
	// digest is always SHA-256.
	ChecksumAlgorithm string `mapstructure:"checksum_algorithm"`

	// LogLevel and LogFormat configure internal/logging's facade.
	LogLevel  string `mapstructure:"log_level"`
	LogFormat string `mapstructure:"log_format"`
}

// Default returns the configuration this tool starts with before any file,
// environment, or flag override is applied.
func Default() Config {
	return Config{
		OutputDirSuffix:   "_src",
		CanonicalizeOther: true,
		FormatVersionMajor: 0,
		FormatVersionMinor: 18,
		ChecksumAlgorithm: "sha256",
		LogLevel:          "info",
		LogFormat:         "text",
	}
}

// BindFlags registers this package's flags onto fs and binds them into v,
// mirroring the teacher's root-command flag wiring.
func BindFlags(fs *pflag.FlagSet, v *viper.Viper) {
	fs.String("output-dir-suffix", Default().OutputDirSuffix, "suffix appended to a PKG's base name for the inferred unpack output directory")
	fs.Bool("canonicalize-other", Default().CanonicalizeOther, "canonicalize JSON files under Other/ for stable diffs")
	fs.String("log-level", Default().LogLevel, "log level: debug, info, warn, error")
	fs.String("log-format", Default().LogFormat, "log format: text or json")

	v.BindPFlag("output_dir_suffix", fs.Lookup("output-dir-suffix"))
	v.BindPFlag("canonicalize_other", fs.Lookup("canonicalize-other"))
	v.BindPFlag("log_level", fs.Lookup("log-level"))
	v.BindPFlag("log_format", fs.Lookup("log-format"))
}

// Load builds a Viper instance layered as: code defaults, then .pasrc.yml
// (searched upward from the working directory), then PASRC_-prefixed
// environment variables, then whatever flags BindFlags bound, and decodes
// the result into a Config.
func Load(v *viper.Viper) (Config, error) {
	def := Default()
	v.SetDefault("output_dir_suffix", def.OutputDirSuffix)
	v.SetDefault("canonicalize_other", def.CanonicalizeOther)
	v.SetDefault("format_version_major", def.FormatVersionMajor)
	v.SetDefault("format_version_minor", def.FormatVersionMinor)
	v.SetDefault("checksum_algorithm", def.ChecksumAlgorithm)
	v.SetDefault("log_level", def.LogLevel)
	v.SetDefault("log_format", def.LogFormat)

	v.SetConfigName(".pasrc")
	v.SetConfigType("yaml")
	if dir, err := os.Getwd(); err == nil {
		for {
			v.AddConfigPath(dir)
			parent := filepath.Dir(dir)
			if parent == dir {
				break
			}
			dir = parent
		}
	} else {
		v.AddConfigPath(".")
	}
	v.SetEnvPrefix("PASRC")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		if _, notFound := err.(viper.ConfigFileNotFoundError); !notFound {
			if legacy, decodeErr := decodeLegacyV1(); decodeErr == nil {
				return legacy, nil
			}
			return Config{}, fmt.Errorf("config: reading .pasrc.yml: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("config: decoding: %w", err)
	}
	return cfg, nil
}

// legacyV1 is the schema an older .pasrc.yml used, before output_dir_suffix
// and the format-version override fields existed. decodeLegacyV1 keeps
// those files loading instead of failing outright, the same way the
// teacher's config package kept a v2-YAML fallback path alongside v3.
type legacyV1 struct {
	SrcSuffix string `yaml:"src_suffix"`
}

// decodeLegacyV1 is only reached when Viper's own decode already failed; it
// re-reads the working directory's .pasrc.yml directly and parses it with yaml.v2 against the older
// schema as a last resort, returning a Config translated from it.
func decodeLegacyV1() (Config, error) {
	raw, err := os.ReadFile(".pasrc.yml")
	if err != nil {
		return Config{}, err
	}
	var legacy legacyV1
	if err := yamlv2.Unmarshal(raw, &legacy); err != nil {
		return Config{}, err
	}
	cfg := Default()
	if legacy.SrcSuffix != "" {
		cfg.OutputDirSuffix = legacy.SrcSuffix
	}
	return cfg, nil
}

package config

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadAppliesDefaultsWithNoConfigFile(t *testing.T) {
	v := viper.New()
	v.AddConfigPath(t.TempDir())
	cfg, err := Load(v)
	require.NoError(t, err)
	assert.Equal(t, "_src", cfg.OutputDirSuffix)
	assert.True(t, cfg.CanonicalizeOther)
	assert.Equal(t, 18, cfg.FormatVersionMinor)
}

func TestLoadHonorsEnvironmentOverride(t *testing.T) {
	t.Setenv("PASRC_OUTPUT_DIR_SUFFIX", "_unpacked")
	v := viper.New()
	v.AddConfigPath(t.TempDir())
	cfg, err := Load(v)
	require.NoError(t, err)
	assert.Equal(t, "_unpacked", cfg.OutputDirSuffix)
}

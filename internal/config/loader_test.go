package config

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(afero.NewMemMapFs(), "/etc/hbnb")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadFromFile(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/etc/hbnb/config.yaml", []byte("output:\n  format: yaml\n  indent: 4\nlog:\n  level: debug\n"), 0o644))

	cfg, err := Load(fs, "/etc/hbnb")
	require.NoError(t, err)
	assert.Equal(t, "yaml", cfg.Output.Format)
	assert.Equal(t, 4, cfg.Output.Indent)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/srv/custom.yaml", []byte("output:\n  format: yaml\n"), 0o644))
	t.Setenv("HBNB_OUTPUT_FORMAT", "json")
	t.Setenv("HBNB_LOG_LEVEL", "warn")

	cfg, err := Load(fs, "/srv/custom.yaml")
	require.NoError(t, err)
	assert.Equal(t, "json", cfg.Output.Format)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, 2, cfg.Output.Indent)
}

func TestLoadExplicitMissingFile(t *testing.T) {
	_, err := Load(afero.NewMemMapFs(), "/srv/missing.yaml")
	assert.Error(t, err)
}

package config

import (
	"errors"
	"log/slog"
	"strings"

	pkgerrors "github.com/pkg/errors"
	"github.com/spf13/afero"
	"github.com/spf13/viper"
)

// Config holds the CLI settings
type Config struct {
	Output OutputConfig
	Log    LogConfig
}

// OutputConfig controls how documents are written.
type OutputConfig struct {
	Format string
	Indent int
}

type LogConfig struct {
	Level string
}

// DefaultConfig returns the settings used when nothing is configured
func DefaultConfig() Config {
	return Config{
		Output: OutputConfig{
			Format: "json",
			Indent: 2,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Load reads config.yaml from configPath (a directory, or a file path when it
// has an extension) and applies HBNB_* environment overrides on top of the
// defaults. A missing config.yaml in a directory is not an error.
func Load(fs afero.Fs, configPath string) (Config, error) {
	cfg := DefaultConfig()

	v := viper.New()
	v.SetFs(fs)
	if strings.HasSuffix(configPath, ".yaml") || strings.HasSuffix(configPath, ".yml") {
		exists, err := afero.Exists(fs, configPath)
		if err != nil {
			return Config{}, pkgerrors.WithStack(err)
		}
		if !exists {
			return Config{}, pkgerrors.Errorf("config file %s does not exist", configPath)
		}
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		if configPath != "" {
			v.AddConfigPath(configPath)
		}
		v.AddConfigPath(".")
	}
	v.SetEnvPrefix("HBNB") // HBNB_OUTPUT_FORMAT, HBNB_LOG_LEVEL, ...
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.BindEnv("output.format")
	v.BindEnv("output.indent")
	v.BindEnv("log.level")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, pkgerrors.Wrap(err, "could not read config file")
		}
		slog.Debug("no config.yaml found, using defaults and env vars")
	} else {
		slog.Debug("loaded config file", slog.String("path", v.ConfigFileUsed()))
	}

	// Override defaults if values exist
	if v.IsSet("output.format") {
		cfg.Output.Format = v.GetString("output.format")
	}
	if v.IsSet("output.indent") {
		cfg.Output.Indent = v.GetInt("output.indent")
	}
	if v.IsSet("log.level") {
		cfg.Log.Level = v.GetString("log.level")
	}

	return cfg, nil
}

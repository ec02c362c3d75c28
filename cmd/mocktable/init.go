package main

import (
	"log/slog"
	"os"
	"strings"

	"mocktable/pkg/config"
	"mocktable/pkg/fixture"
	"mocktable/pkg/table/mock"

	"github.com/goccy/go-yaml"
)

// initConfig loads the YAML config at path. A missing file yields config.Default().
func initConfig(path string) (config.Config, error) {
	cfg := config.Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			slog.Info("config file not found, using default config", "path", path)
			return cfg, nil
		}
		return cfg, err
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}

	return cfg, cfg.Validate()
}

// initLogger installs the global slog.Logger (JSON or text).
func initLogger(cfg *config.Config) {
	var level slog.Level
	switch strings.ToUpper(cfg.Logger.Level) {
	case "INFO":
		level = slog.LevelInfo
	case "WARN":
		level = slog.LevelWarn
	case "ERROR":
		level = slog.LevelError
	default:
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{AddSource: true, Level: level}

	var handler slog.Handler
	if cfg.Logger.JSON {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}
	logger := slog.New(handler)
	slog.SetDefault(logger)
	slog.Info("logger initialized", "level", cfg.Logger.Level, "json", cfg.Logger.JSON)
}

// initFactory creates the table factory and builds the configured fixture
// into the data dir. Fixture keys are internal keys, so the factory keeps
// the internal-key order that table lookups seek with.
func initFactory(cfg *config.Config) (*mock.Factory, error) {
	factory := mock.NewFactory(mock.Options{})

	if cfg.Fixture.Path == "" {
		return factory, nil
	}

	fx, err := fixture.Load(cfg.Fixture.Path)
	if err != nil {
		return nil, err
	}
	if _, err := fx.BuildDir(factory, cfg.Table.DataDir); err != nil {
		return nil, err
	}

	return factory, nil
}

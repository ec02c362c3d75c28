package config

import (
	"fmt"
	"strings"

	"mocktable/pkg/dberrors"
)

// Config is the root configuration of the mocktable inspection server.
type Config struct {
	Logger  LoggerConfig  `yaml:"logger"`
	Server  ServerConfig  `yaml:"http-server"`
	Table   TableConfig   `yaml:"table"`
	Fixture FixtureConfig `yaml:"fixture"`
}

type ServerConfig struct {
	Port int `yaml:"port"`
}

type TableConfig struct {
	// DataDir holds the table files whose headers name the sealed tables.
	DataDir string `yaml:"data_dir"`
}

// FixtureConfig points at a YAML list of tables built at startup.
type FixtureConfig struct {
	Path string `yaml:"path"`
}

type LoggerConfig struct {
	Level string `yaml:"level"`
	JSON  bool   `yaml:"json"`
}

// Default returns a baseline development config.
func Default() Config {
	return Config{
		Logger: LoggerConfig{
			Level: "DEBUG",
			JSON:  false,
		},
		Server: ServerConfig{
			Port: 8080,
		},
		Table: TableConfig{
			DataDir: "./data",
		},
	}
}

func (c *Config) Validate() error {
	switch strings.ToUpper(c.Logger.Level) {
	case "DEBUG", "INFO", "WARN", "ERROR":
	default:
		return fmt.Errorf("logger.level %q: %w", c.Logger.Level, dberrors.ErrInvalidArgument)
	}

	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("http-server.port %d: %w", c.Server.Port, dberrors.ErrInvalidArgument)
	}

	if c.Table.DataDir == "" {
		return fmt.Errorf("table.data_dir is empty: %w", dberrors.ErrInvalidArgument)
	}

	return nil
}

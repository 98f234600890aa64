// Package config resolves client configuration at the composition
// root. Environment lookup happens here and nowhere else; the client
// package receives explicit values.
package config

import (
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

type Config struct {
	API          APIConfig  `koanf:"api"`
	Organization string     `koanf:"organization"`
	Mock         MockConfig `koanf:"mock"`
}

type APIConfig struct {
	Key  string `koanf:"key"`
	Base string `koanf:"base"`
}

// MockConfig configures the local mock API server.
type MockConfig struct {
	Port   int    `koanf:"port"`
	DBPath string `koanf:"db_path"`
}

// Load reads an optional YAML config file, then layers OPENAI_*
// environment variables on top (OPENAI_API_KEY, OPENAI_API_BASE,
// OPENAI_ORGANIZATION, OPENAI_MOCK_PORT, OPENAI_MOCK_DB_PATH).
// Pass an empty path to skip the file layer.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, err
		}
	}

	if err := k.Load(env.Provider("OPENAI_", ".", func(s string) string {
		return strings.Replace(strings.ToLower(strings.TrimPrefix(s, "OPENAI_")), "_", ".", -1)
	}), nil); err != nil {
		return nil, err
	}

	// Defaults
	if !k.Exists("api.base") {
		k.Set("api.base", "https://api.openai.com")
	}
	if !k.Exists("mock.port") {
		k.Set("mock.port", 8181)
	}
	if !k.Exists("mock.db.path") {
		k.Set("mock.db.path", "./data/mockapi.db")
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, err
	}

	// OPENAI_MOCK_DB_PATH arrives as mock.db.path through the
	// underscore-to-dot mapping.
	if cfg.Mock.DBPath == "" {
		cfg.Mock.DBPath = k.String("mock.db.path")
	}

	return &cfg, nil
}

package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// expandEnvVars expands environment variables in the format ${VAR} or $VAR
func expandEnvVars(data []byte) []byte {
	return []byte(os.ExpandEnv(string(data)))
}

// Config is the studio tool configuration.
type Config struct {
	Backend     BackendConfig     `yaml:"backend"`
	Credentials CredentialsConfig `yaml:"credentials"`
	Server      ServerConfig      `yaml:"server"`
	Logging     LoggingConfig     `yaml:"logging"`
}

// BackendConfig points at the Pagecraft REST backend.
type BackendConfig struct {
	BaseURL string `yaml:"base_url"`
}

// CredentialsConfig selects where the credential pair is stored. When
// RedisAddr is set the Redis store is used, otherwise the file store.
type CredentialsConfig struct {
	Path      string `yaml:"path"`       // file store path, empty means the default location
	RedisAddr string `yaml:"redis_addr"` // e.g. localhost:6379
	RedisKey  string `yaml:"redis_key"`  // empty means the default key
}

// ServerConfig holds the local proxy server configuration.
type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
}

// DefaultConfigPaths defines the default locations to search for a
// configuration file.
var DefaultConfigPaths = []string{
	"./studio.yaml",
	"./studio.yml",
	"./configs/studio.yaml",
	"/etc/pagecraft/studio.yaml",
}

// Load loads the configuration from the specified file or, with an
// empty path, from the first default location that exists. A missing
// file is not an error; defaults apply.
func Load(configPath string) (*Config, error) {
	config := &Config{
		Backend: BackendConfig{
			BaseURL: "http://localhost:8080",
		},
		Server: ServerConfig{
			Host: "localhost",
			Port: 9878,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}

	paths := DefaultConfigPaths
	if configPath != "" {
		paths = []string{configPath}
	}

	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, fmt.Errorf("failed to read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(expandEnvVars(data), config); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
		return config, nil
	}

	if configPath != "" {
		return nil, fmt.Errorf("config file %s not found", configPath)
	}
	return config, nil
}

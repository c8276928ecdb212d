package config

import (
	"errors"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
)

const dotEnvFile = ".env"

// readDotEnv reads KEY=value pairs from path without touching the process
// environment. A missing file yields an empty map.
func readDotEnv(path string) (map[string]string, error) {
	values, err := godotenv.Read(path)
	if errors.Is(err, fs.ErrNotExist) {
		return map[string]string{}, nil
	}
	if err != nil {
		return nil, err
	}
	return values, nil
}

// loadFromEnv overrides config from environment variables. Values from
// the .env file apply only when the real variable is unset or empty.
func loadFromEnv(cfg *Config, dotenv map[string]string, sources map[string]ConfigSource) {
	for _, f := range configFields() {
		if v := os.Getenv(f.env); v != "" {
			*f.value(cfg) = v
			setSource(sources, f.key, SourceEnv)
			continue
		}
		if v := dotenv[f.env]; v != "" {
			*f.value(cfg) = v
			setSource(sources, f.key, SourceDotEnv)
		}
	}
}

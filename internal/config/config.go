package config

import (
	"io/fs"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/pkg/errors"
)

// Config holds the credentials and defaults read from the process
// environment at startup. Both credentials are required; the remaining
// fields have usable defaults.
type Config struct {
	APIKey         string        `env:"API_KEY,notEmpty"`
	SearchEngineID string        `env:"CSE_ID,notEmpty"`
	Endpoint       string        `env:"LINKSLEUTH_ENDPOINT"`
	Timeout        time.Duration `env:"LINKSLEUTH_TIMEOUT" envDefault:"30s"`
}

// Load reads the configuration from a .env file in the working directory,
// when present, then from the process environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, errors.Wrap(err, "could not load .env file")
	}

	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return nil, errors.Wrap(err, "invalid configuration")
	}

	return &cfg, nil
}

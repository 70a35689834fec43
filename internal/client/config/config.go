// Package config holds runtime settings for the FasalMitra CLI client.
package config

import (
	"flag"
	"fmt"

	"github.com/caarlos0/env/v6"
)

// DefaultBaseURL is the hosted backend used when nothing else is
// configured.
const DefaultBaseURL = "https://fasalmitra.ap-south-1.awsapprunner.com"

type Config struct {
	// BaseURL is the backend origin; the API lives under /api.
	BaseURL string `env:"FASALMITRA_API_URL"`
}

// Load builds the config: defaults, then environment, then flags. Later
// sources win.
func Load(args []string) (*Config, error) {
	cfg := &Config{BaseURL: DefaultBaseURL}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}

	fs := flag.NewFlagSet("fasalmitra", flag.ContinueOnError)
	fs.StringVar(&cfg.BaseURL, "s", cfg.BaseURL, "backend server origin")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	return cfg, nil
}

package configs

import (
	"fmt"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

type Config struct {
	App struct {
		Name     string `koanf:"name"`
		Env      string `koanf:"env"`
		HTTPAddr string `koanf:"http_addr"`
	} `koanf:"app"`

	HTTP struct {
		ReadTimeout     time.Duration `koanf:"read_timeout"`
		WriteTimeout    time.Duration `koanf:"write_timeout"`
		IdleTimeout     time.Duration `koanf:"idle_timeout"`
		ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
	} `koanf:"http"`

	Store struct {
		Seed               bool `koanf:"seed"`
		StrictAvailability bool `koanf:"strict_availability"`
		StrictTransitions  bool `koanf:"strict_transitions"`
		LowStockThreshold  int  `koanf:"low_stock_threshold"`
	} `koanf:"store"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	var cfg Config
	cfg.App.Name = "surfstore"
	cfg.App.Env = "dev"
	cfg.App.HTTPAddr = ":8080"
	cfg.HTTP.ReadTimeout = 5 * time.Second
	cfg.HTTP.WriteTimeout = 10 * time.Second
	cfg.HTTP.IdleTimeout = 60 * time.Second
	cfg.HTTP.ShutdownTimeout = 10 * time.Second
	cfg.Store.Seed = true
	cfg.Store.LowStockThreshold = 5
	return cfg
}

// Load reads the yaml file at path (optional for local runs) and applies
// environment overrides (prefix SURFSTORE_, nested keys with __), e.g.
// SURFSTORE_APP__HTTP_ADDR, SURFSTORE_STORE__STRICT_AVAILABILITY.
func Load(path string) (Config, error) {
	k := koanf.New(".")

	_ = k.Load(file.Provider(path), yaml.Parser())

	if err := k.Load(env.Provider("SURFSTORE_", ".", func(s string) string {
		s = strings.TrimPrefix(s, "SURFSTORE_")
		s = strings.ReplaceAll(s, "__", ".")
		return strings.ToLower(s)
	}), nil); err != nil {
		return Config{}, fmt.Errorf("env overlay: %w", err)
	}

	cfg := Default()
	if err := k.Unmarshal("", &cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if c.App.HTTPAddr == "" {
		return fmt.Errorf("app.http_addr required")
	}
	if c.Store.LowStockThreshold < 0 {
		return fmt.Errorf("store.low_stock_threshold must be zero or greater")
	}
	return nil
}

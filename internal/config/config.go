// Package config loads server configuration from the environment,
// optionally overlaid on a YAML file.
package config

import (
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config holds every tunable of the server process.
type Config struct {
	Port      int    `yaml:"port" env:"PORT" env-default:"8080"`
	PublicURL string `yaml:"public_url" env:"PUBLIC_URL" env-default:""`
	LogLevel  string `yaml:"log_level" env:"LOG_LEVEL" env-default:"info"`

	// Expansion enables pearls, adornments, wonders and train tickets
	// for every game created on this server.
	Expansion bool `yaml:"expansion" env:"EXPANSION" env-default:"true"`

	Redis RedisConfig `yaml:"redis"`
}

// RedisConfig configures the optional snapshot store. An empty Addr
// selects the in-memory store.
type RedisConfig struct {
	Addr        string        `yaml:"addr" env:"REDIS_ADDR" env-default:""`
	Password    string        `yaml:"password" env:"REDIS_PASSWORD" env-default:""`
	DB          int           `yaml:"db" env:"REDIS_DB" env-default:"0"`
	SnapshotTTL time.Duration `yaml:"snapshot_ttl" env:"REDIS_SNAPSHOT_TTL" env-default:"24h"`
}

// Load reads configuration from the environment only.
func Load() (*Config, error) {
	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadFile reads a YAML config file and applies environment overrides.
func LoadFile(path string) (*Config, error) {
	var cfg Config
	if err := cleanenv.ReadConfig(path, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

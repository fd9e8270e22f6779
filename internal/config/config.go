package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Server struct {
		Port string `yaml:"port"`
		Mode string `yaml:"mode"`
	} `yaml:"server"`
	Database struct {
		Driver   string `yaml:"driver"` // postgres or sqlite
		DSN      string `yaml:"dsn"`
		LogLevel string `yaml:"log_level"` // silent, error, warn, info
	} `yaml:"database"`
	Auth struct {
		Secret     string        `yaml:"secret"`
		AccessTTL  time.Duration `yaml:"access_ttl"`
		RefreshTTL time.Duration `yaml:"refresh_ttl"`
	} `yaml:"auth"`
	Media struct {
		Root string `yaml:"root"`
		URL  string `yaml:"url"`
	} `yaml:"media"`
}

// Default returns the configuration used when neither the YAML file nor the
// environment set a value.
func Default() *Config {
	cfg := &Config{}
	cfg.Server.Port = "8080"
	cfg.Server.Mode = "debug"
	cfg.Database.Driver = "postgres"
	cfg.Database.DSN = "host=localhost user=postgres password=postgres dbname=yatube port=5432 sslmode=disable"
	cfg.Database.LogLevel = "warn"
	cfg.Auth.Secret = "secret_key_change_me"
	cfg.Auth.AccessTTL = 24 * time.Hour
	cfg.Auth.RefreshTTL = 7 * 24 * time.Hour
	cfg.Media.Root = "./media"
	cfg.Media.URL = "/media/"
	return cfg
}

// Load reads the optional YAML file at path, then applies .env and process
// environment overrides. A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
			log.Printf("Config file %s not found, using defaults and environment", path)
		case err != nil:
			return nil, fmt.Errorf("read config %s: %w", path, err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parse config %s: %w", path, err)
			}
		}
	}

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, finding env vars from system")
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	setString(&c.Server.Port, "PORT")
	setString(&c.Server.Mode, "GIN_MODE")
	setString(&c.Database.Driver, "DB_DRIVER")
	setString(&c.Database.DSN, "DATABASE_URL")
	setString(&c.Database.LogLevel, "DB_LOG_LEVEL")
	setString(&c.Auth.Secret, "JWT_SECRET")
	setString(&c.Media.Root, "MEDIA_ROOT")
	setString(&c.Media.URL, "MEDIA_URL")

	if err := setDuration(&c.Auth.AccessTTL, "JWT_ACCESS_TTL"); err != nil {
		return err
	}
	return setDuration(&c.Auth.RefreshTTL, "JWT_REFRESH_TTL")
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setDuration(dst *time.Duration, key string) error {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fmt.Errorf("invalid %s: %w", key, err)
	}
	*dst = d
	return nil
}

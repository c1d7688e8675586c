package config

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	Env        string           `yaml:"env" env-default:"development"` // environment
	HTTPServer HTTPServerConfig `yaml:"http_server"`
	Database   DatabaseConfig   `yaml:"database"`
	Auth       AuthConfig       `yaml:"auth"`
	JWT        JWTConfig        `yaml:"jwt"`
	Migrations MigrationsConfig `yaml:"migrations"`
}

// HTTPServerConfig configures the HTTP listener
type HTTPServerConfig struct {
	Address     string        `yaml:"address" env-default:"localhost:8080"`
	Timeout     time.Duration `yaml:"timeout" env-default:"4s"`
	IdleTimeout time.Duration `yaml:"idle_timeout" env-default:"60s"`
}

// DatabaseConfig configures the Postgres connection
type DatabaseConfig struct {
	Host     string `yaml:"host" env-default:"localhost"`
	Port     int    `yaml:"port" env-default:"5432"`
	User     string `yaml:"user" env-required:"true"`
	Password string `yaml:"-" env:"DB_PASSWORD" env-required:"true"`
	Name     string `yaml:"name" env-required:"true"`
}

// Supported authentication modes.
const (
	AuthModeJWT          = "jwt"
	AuthModeSharedSecret = "shared_secret"
)

// AuthConfig selects the authentication mode. In shared_secret mode every
// protected request must carry APIKey in the APIKeyHeader header; in jwt
// mode a bearer token issued by /api/auth is required. Secrets come only
// from the environment, never from the yaml file.
type AuthConfig struct {
	Mode         string `yaml:"mode" env-default:"jwt"`
	APIKeyHeader string `yaml:"api_key_header" env-default:"X-API-Key"`
	APIKey       string `yaml:"-" env:"API_KEY"`
}

// JWTConfig configures token signing
type JWTConfig struct {
	Secret   string `yaml:"-" env:"JWT_SECRET"`
	TokenTTL int    `yaml:"token_ttl" env-default:"60"` // minutes
}

type MigrationsConfig struct {
	Path string `yaml:"path" env-default:"./migrations"`
}

// MustLoad - panics when the config cannot be loaded
func MustLoad() *Config {
	configPath := fetchConfigPath()
	if configPath == "" {
		log.Fatal("CONFIG_PATH not exists")
	}
	return MustLoadByPath(configPath)
}

func fetchConfigPath() string {
	var path string

	flag.StringVar(&path, "config", "", "path to config file")
	flag.Parse()

	if path == "" {
		path = os.Getenv("CONFIG_PATH")
	}
	return path
}

func MustLoadByPath(configPath string) *Config {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		panic("config file not found: " + configPath)
	}

	var cfg Config
	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		log.Fatalf("can't read config file %s", configPath)
	}

	if err := cfg.Auth.validate(cfg.JWT.Secret); err != nil {
		log.Fatalf("invalid auth config: %v", err)
	}

	return &cfg
}

// validate checks that the secret required by the selected mode is set.
func (a AuthConfig) validate(jwtSecret string) error {
	switch a.Mode {
	case AuthModeJWT:
		if jwtSecret == "" {
			return fmt.Errorf("JWT_SECRET environment variable is required")
		}
	case AuthModeSharedSecret:
		if a.APIKey == "" {
			return fmt.Errorf("API_KEY environment variable is required")
		}
	default:
		return fmt.Errorf("unknown auth mode: %s", a.Mode)
	}
	return nil
}

package config

import (
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// Config holds application level configuration.
//
// Values are resolved in three layers: the defaults below, an optional YAML
// file named by CONFIG_FILE, then environment variables.
type Config struct {
	ServerPort  string   `yaml:"server_port" env:"SERVER_PORT"`
	LogLevel    int      `yaml:"log_level" env:"LOG_LEVEL"`
	SwaggerHost string   `yaml:"swagger_host" env:"SWAGGER_HOST"`
	Database    Database `yaml:"database" envPrefix:"DATABASE_"`
	Redis       Redis    `yaml:"redis" envPrefix:"REDIS_"`
	Auth        Auth     `yaml:"auth" envPrefix:"AUTH_"`
	Mail        Mail     `yaml:"mail" envPrefix:"MAIL_"`
}

// Database contains database connection parameters.
type Database struct {
	// Driver is either "mysql" or "postgres".
	Driver string `yaml:"driver" env:"DRIVER"`
	DSN    string `yaml:"dsn" env:"DSN"`
	// Reset drops every table before migrating.
	Reset bool `yaml:"reset" env:"RESET"`
}

// Redis contains session cache parameters.
type Redis struct {
	Addr       string        `yaml:"addr" env:"ADDR"`
	Password   string        `yaml:"password" env:"PASSWORD"`
	DB         int           `yaml:"db" env:"DB"`
	SessionTTL time.Duration `yaml:"session_ttl" env:"SESSION_TTL"`
	SocietyTTL time.Duration `yaml:"society_ttl" env:"SOCIETY_TTL"`
}

// Auth contains token and password hashing parameters.
type Auth struct {
	TokenSecret string `yaml:"token_secret" env:"TOKEN_SECRET"`
	BcryptCost  int    `yaml:"bcrypt_cost" env:"BCRYPT_COST"`
}

// Mail contains reset-code delivery parameters.
type Mail struct {
	// Driver is either "log" or "smtp".
	Driver   string `yaml:"driver" env:"DRIVER"`
	From     string `yaml:"from" env:"FROM"`
	Host     string `yaml:"host" env:"HOST"`
	Port     int    `yaml:"port" env:"PORT"`
	Username string `yaml:"username" env:"USERNAME"`
	Password string `yaml:"password" env:"PASSWORD"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		ServerPort: "8080",
		Database: Database{
			Driver: "mysql",
			DSN:    "spark:spark@tcp(localhost:3306)/spark?charset=utf8mb4&parseTime=True&loc=UTC",
		},
		Redis: Redis{
			Addr:       "localhost:6379",
			SessionTTL: 10 * time.Minute,
			SocietyTTL: 5 * time.Minute,
		},
		Auth: Auth{
			TokenSecret: "change-me",
			BcryptCost:  10,
		},
		Mail: Mail{
			Driver: "log",
			From:   `"Spark" <noreply@spark.li>`,
			Port:   465,
		},
	}
}

// Load builds Config from defaults, an optional YAML file and the environment.
func Load() (*Config, error) {
	cfg := Default()

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := loadFile(path, cfg); err != nil {
			return nil, err
		}
	}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func loadFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}
	return nil
}

func (c *Config) validate() error {
	switch c.Database.Driver {
	case "mysql", "postgres":
	default:
		return fmt.Errorf("unsupported database driver %q", c.Database.Driver)
	}
	switch c.Mail.Driver {
	case "log", "smtp":
	default:
		return fmt.Errorf("unsupported mail driver %q", c.Mail.Driver)
	}
	return nil
}

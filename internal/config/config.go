// Package config loads server configuration from config.yml, falling back
// to environment variables when no config file is present.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all server settings.
type Config struct {
	Env  string // "development" or "production"
	Addr string // listen address

	Database struct {
		Path        string
		MaxOpenConn int
		MaxIdle     int
	}

	Email struct {
		ResendKey string
		From      string
	}

	Seed bool // seed demo data on startup
}

// Load reads config.yml from the working directory, or the environment
// (GYM_ prefixed, dots become underscores) when the file is absent.
// POST: Returns a Config with defaults applied
func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yml")
	viper.AddConfigPath(".")

	viper.SetDefault("env", "development")
	viper.SetDefault("addr", ":8080")
	viper.SetDefault("database.path", "gym.db")
	viper.SetDefault("database.max_open_conn", 25)
	viper.SetDefault("database.max_idle", 25)
	viper.SetDefault("email.from", "Gym Admin <noreply@gym.example.com>")
	viper.SetDefault("seed", true)

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("read config: %w", err)
		}
		viper.SetEnvPrefix("GYM")
		viper.AutomaticEnv()
		viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	}

	var cfg Config
	cfg.Env = viper.GetString("env")
	cfg.Addr = viper.GetString("addr")
	cfg.Database.Path = viper.GetString("database.path")
	cfg.Database.MaxOpenConn = viper.GetInt("database.max_open_conn")
	cfg.Database.MaxIdle = viper.GetInt("database.max_idle")
	cfg.Email.ResendKey = viper.GetString("email.resend_key")
	cfg.Email.From = viper.GetString("email.from")
	cfg.Seed = viper.GetBool("seed")
	return &cfg, nil
}

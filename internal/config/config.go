package config

import (
	"errors"
	"time"

	"github.com/spf13/viper"
)

var ErrEmptyToken = errors.New("error getting CW_TELEGRAM_TOKEN: variable not specified or contains an empty string")

type Config struct {
	Env           string // Env is the current environment: local, dev, prod.
	URL           string // URL is the catalog listing page to watch.
	CatalogID     string // CatalogID identifies the watched catalog in storage and logs.
	StoragePath   string // StoragePath is the SQLite database file location.
	CheckInterval time.Duration
	Tg            Telegram
}

type Telegram struct {
	Token   string        // Token is an unique telegram bot token.
	Timeout time.Duration // Timeout is a poller timeout duration.
}

// MustLoad loads the configuration from environment variables and returns a Config struct.
func MustLoad() *Config {
	// Automatically binds environment variables to config keys
	viper.SetEnvPrefix("CW")
	viper.AutomaticEnv()

	// optional args
	viper.SetDefault("ENV", "production")
	viper.SetDefault("CATALOG_ID", "default")
	viper.SetDefault("STORAGE_PATH", "catalogwatch.db")
	viper.SetDefault("CHECK_INTERVAL", "30m")
	viper.SetDefault("TELEGRAM_TIMEOUT", "15s")

	if viper.GetString("TELEGRAM_TOKEN") == "" {
		panic(ErrEmptyToken)
	}

	return &Config{
		Env:           viper.GetString("ENV"),
		URL:           viper.GetString("DEST_URL"),
		CatalogID:     viper.GetString("CATALOG_ID"),
		StoragePath:   viper.GetString("STORAGE_PATH"),
		CheckInterval: viper.GetDuration("CHECK_INTERVAL"),
		Tg: Telegram{
			Token:   viper.GetString("TELEGRAM_TOKEN"),
			Timeout: viper.GetDuration("TELEGRAM_TIMEOUT"),
		},
	}
}

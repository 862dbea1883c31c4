package config

import (
	"time"

	"github.com/spf13/viper"
)

// Config holds runtime configuration, defaults overridden by environment
// variables.
type Config struct {
	HTTPAddr        string        `mapstructure:"HTTP_ADDR"`
	CartStoreDriver string        `mapstructure:"CART_STORE_DRIVER"`
	CartStorePath   string        `mapstructure:"CART_STORE_PATH"`
	SQLiteDSN       string        `mapstructure:"SQLITE_DSN"`
	CatalogBaseURL  string        `mapstructure:"CATALOG_BASE_URL"`
	OrdersBaseURL   string        `mapstructure:"ORDERS_BASE_URL"`
	FundingBaseURL  string        `mapstructure:"FUNDING_BASE_URL"`
	RequestTimeout  time.Duration `mapstructure:"REQUEST_TIMEOUT"`
	ShutdownTimeout time.Duration `mapstructure:"SHUTDOWN_TIMEOUT"`
}

// Load builds Config from the environment.
func Load() (Config, error) {
	v := viper.New()
	v.SetDefault("HTTP_ADDR", ":8090")
	v.SetDefault("CART_STORE_DRIVER", "file")
	v.SetDefault("CART_STORE_PATH", "data/cart.json")
	v.SetDefault("SQLITE_DSN", "data/companion.db")
	v.SetDefault("CATALOG_BASE_URL", "http://localhost:8080/api")
	v.SetDefault("ORDERS_BASE_URL", "http://localhost:8080/api")
	v.SetDefault("FUNDING_BASE_URL", "http://localhost:8080/api")
	v.SetDefault("REQUEST_TIMEOUT", 10*time.Second)
	v.SetDefault("SHUTDOWN_TIMEOUT", 10*time.Second)
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

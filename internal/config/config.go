package config

import (
	"github.com/spf13/viper"
)

// Config holds the settings of the inventory service.
type Config struct {
	AppPort       string
	DatabasePath  string
	RabbitMQURL   string // empty disables broker notifications
	AuthSecret    string // empty leaves the HTTP API open
	SeedDummyData bool
}

// Load reads configuration from the environment on top of the defaults.
func Load() Config {
	return LoadFrom(viper.New())
}

// LoadFrom reads configuration through v, registering defaults first.
func LoadFrom(v *viper.Viper) Config {
	v.SetDefault("APP_PORT", ":8080")
	v.SetDefault("DATABASE_PATH", "inventory.db")
	v.SetDefault("RABBITMQ_URL", "")
	v.SetDefault("AUTH_SECRET", "")
	v.SetDefault("SEED_DUMMY_DATA", false)
	v.AutomaticEnv()

	return Config{
		AppPort:       v.GetString("APP_PORT"),
		DatabasePath:  v.GetString("DATABASE_PATH"),
		RabbitMQURL:   v.GetString("RABBITMQ_URL"),
		AuthSecret:    v.GetString("AUTH_SECRET"),
		SeedDummyData: v.GetBool("SEED_DUMMY_DATA"),
	}
}

package config

import (
	"github.com/spf13/viper"
)

// Config holds application configuration (env + Viper).
type Config struct {
	Env         string
	Port        string
	DatabaseURL string
	RedisURL    string
	FrontendURL string // CORS origin for the dashboard SPA
}

// Load loads config from env and an optional .env file.
func Load() (*Config, error) {
	viper.SetConfigFile(".env")
	_ = viper.ReadInConfig()

	viper.AutomaticEnv()

	port := viper.GetString("PORT")
	if port == "" {
		port = "5000"
	}
	env := viper.GetString("APP_ENV")
	if env == "" {
		env = "development"
	}
	frontend := viper.GetString("FRONTEND_URL")
	if frontend == "" {
		frontend = "http://localhost:5173"
	}

	return &Config{
		Env:         env,
		Port:        port,
		DatabaseURL: viper.GetString("DATABASE_URL"),
		RedisURL:    viper.GetString("REDIS_URL"),
		FrontendURL: frontend,
	}, nil
}

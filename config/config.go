package config

import (
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	Port           string
	AWSRegion      string
	AllowedOrigins []string

	// PresenceWindowSeconds is how long after a heartbeat a user still counts
	// as online.
	PresenceWindowSeconds int
}

// Load reads configuration from the environment with sensible defaults.
func Load() Config {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("PORT", "8080")
	v.SetDefault("AWS_REGION", "us-east-1")
	v.SetDefault("ALLOWED_ORIGINS", "*")
	v.SetDefault("PRESENCE_WINDOW_SECONDS", 300)

	return Config{
		Port:                  v.GetString("PORT"),
		AWSRegion:             v.GetString("AWS_REGION"),
		AllowedOrigins:        strings.Split(v.GetString("ALLOWED_ORIGINS"), ","),
		PresenceWindowSeconds: v.GetInt("PRESENCE_WINDOW_SECONDS"),
	}
}

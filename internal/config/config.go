package config

import (
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	ListenAddr  string
	DBPath      string
	UploadPath  string
	TokenSecret string
	TokenTTL    time.Duration
	LogLevel    string
	LogFile     string
	DevMode     bool
}

// Load reads configuration from the environment, falling back to defaults.
func Load() *Config {
	v := viper.New()
	v.SetDefault("listen_addr", ":8080")
	v.SetDefault("db_path", "/data/tagrapport.db")
	v.SetDefault("upload_path", "/data/uploads")
	v.SetDefault("token_secret", "")
	v.SetDefault("token_ttl", 24*time.Hour)
	v.SetDefault("log_level", "info")
	v.SetDefault("log_file", "")
	v.SetDefault("dev_mode", false)
	v.AutomaticEnv()

	return &Config{
		ListenAddr:  v.GetString("listen_addr"),
		DBPath:      v.GetString("db_path"),
		UploadPath:  v.GetString("upload_path"),
		TokenSecret: v.GetString("token_secret"),
		TokenTTL:    v.GetDuration("token_ttl"),
		LogLevel:    v.GetString("log_level"),
		LogFile:     v.GetString("log_file"),
		DevMode:     v.GetBool("dev_mode"),
	}
}

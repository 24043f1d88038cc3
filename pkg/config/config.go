// Package config loads application configuration from the environment and an
// optional .env file.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

type AppConfig struct {
	Port        string `mapstructure:"PORT"`
	BindAddress string `mapstructure:"BIND_ADDRESS"`
	DatabaseURL string `mapstructure:"DATABASE_URL"`
	LogLevel    string `mapstructure:"LOG_LEVEL"`

	CloudinaryCloudName    string `mapstructure:"CLOUDINARY_CLOUD_NAME"`
	CloudinaryAPIKey       string `mapstructure:"CLOUDINARY_API_KEY"`
	CloudinaryAPISecret    string `mapstructure:"CLOUDINARY_API_SECRET"`
	CloudinaryUploadFolder string `mapstructure:"CLOUDINARY_UPLOAD_FOLDER"`

	CORSAllowedOrigins string `mapstructure:"CORS_ALLOWED_ORIGINS"`
}

// Origins returns the CORS allowlist as a slice.
func (c *AppConfig) Origins() []string {
	var origins []string
	for _, o := range strings.Split(c.CORSAllowedOrigins, ",") {
		o = strings.TrimSpace(o)
		if o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}

func Read() *AppConfig {
	viper.SetConfigFile(".env")
	viper.SetConfigType("env")
	_ = viper.ReadInConfig()

	viper.AutomaticEnv()

	bindEnvVariables()
	setDefaults()

	var appConfig AppConfig
	if err := viper.Unmarshal(&appConfig); err != nil {
		panic(fmt.Errorf("fatal error unmarshalling config: %w", err))
	}

	return &appConfig
}

func bindEnvVariables() {
	_ = viper.BindEnv("PORT")
	_ = viper.BindEnv("BIND_ADDRESS")
	_ = viper.BindEnv("DATABASE_URL")
	_ = viper.BindEnv("LOG_LEVEL")
	_ = viper.BindEnv("CLOUDINARY_CLOUD_NAME")
	_ = viper.BindEnv("CLOUDINARY_API_KEY")
	_ = viper.BindEnv("CLOUDINARY_API_SECRET")
	_ = viper.BindEnv("CLOUDINARY_UPLOAD_FOLDER")
	_ = viper.BindEnv("CORS_ALLOWED_ORIGINS")
}

func setDefaults() {
	viper.SetDefault("PORT", "8000")
	viper.SetDefault("BIND_ADDRESS", "0.0.0.0")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("CLOUDINARY_UPLOAD_FOLDER", "itineraries")
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost,http://localhost:3000,http://localhost:3001")
}

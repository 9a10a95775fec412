/**
 * @description
 * This file handles the configuration management for the back-office service.
 * It uses the Viper library to read settings from environment variables or a
 * .env file.
 *
 * @dependencies
 * - github.com/spf13/viper: For configuration management.
 */
package config

import (
	"log"
	"strings"

	"github.com/spf13/viper"
)

// Config stores all configuration for the application.
type Config struct {
	DatabaseURL        string `mapstructure:"DATABASE_URL"`
	RedisURL           string `mapstructure:"REDIS_URL"`
	RabbitMQURL        string `mapstructure:"RABBITMQ_URL"`
	CoreBankAPIBaseURL string `mapstructure:"COREBANK_API_BASE_URL"`
	CoreBankAPIKey     string `mapstructure:"COREBANK_API_KEY"`
	JWTSecret          string `mapstructure:"JWT_SECRET"`
	TokenTTLMinutes    int    `mapstructure:"TOKEN_TTL_MINUTES"`
	ServerPort         string `mapstructure:"SERVER_PORT"`
	AllowedOrigins     string `mapstructure:"ALLOWED_ORIGINS"`
	RefreshSchedule    string `mapstructure:"ACCOUNT_REFRESH_SCHEDULE"`
}

// LoadConfig reads configuration from file or environment variables.
func LoadConfig() (*Config, error) {
	viper.AddConfigPath(".")
	viper.SetConfigName(".env")
	viper.SetConfigType("env")

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Set default values
	viper.SetDefault("SERVER_PORT", "8088")
	viper.SetDefault("TOKEN_TTL_MINUTES", 480)
	viper.SetDefault("ALLOWED_ORIGINS", "http://localhost:5173")
	viper.SetDefault("ACCOUNT_REFRESH_SCHEDULE", "*/10 * * * *")

	// Bind envs explicitly so containers pick them up reliably
	_ = viper.BindEnv("DATABASE_URL")
	_ = viper.BindEnv("REDIS_URL")
	_ = viper.BindEnv("RABBITMQ_URL")
	_ = viper.BindEnv("COREBANK_API_BASE_URL")
	_ = viper.BindEnv("COREBANK_API_KEY")
	_ = viper.BindEnv("JWT_SECRET")
	_ = viper.BindEnv("TOKEN_TTL_MINUTES")
	_ = viper.BindEnv("SERVER_PORT")
	_ = viper.BindEnv("ALLOWED_ORIGINS")
	_ = viper.BindEnv("ACCOUNT_REFRESH_SCHEDULE")

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			log.Printf("Warning: Error reading config file: %s", err)
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

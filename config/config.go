package config

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort           string `mapstructure:"APP_PORT"`
	DatabaseURL       string `mapstructure:"DATABASE_URL"`
	Env               string `mapstructure:"ENV"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`

	// JamAI Base credentials and table coordinates.
	JamaiBaseURL       string `mapstructure:"JAMAI_BASE_URL"`
	JamaiProjectID     string `mapstructure:"JAMAI_PROJECT_ID"`
	JamaiPAT           string `mapstructure:"JAMAI_PAT"`
	JamaiActionTableID string `mapstructure:"JAMAI_ACTION_TABLE_ID"`
	JamaiTimeoutSecs   int    `mapstructure:"JAMAI_TIMEOUT_SECONDS"`

	// Redis configuration.
	RedisAddr      string `mapstructure:"REDIS_ADDR"`
	RedisPassword  string `mapstructure:"REDIS_PASSWORD"`
	RedisSessionDB int    `mapstructure:"REDIS_SESSION_DB"`

	// Admin API access. Either the plain key or its bcrypt hash may be set;
	// the hash wins when both are present.
	AdminAPIKey     string `mapstructure:"ADMIN_API_KEY"`
	AdminAPIKeyHash string `mapstructure:"ADMIN_API_KEY_HASH"`

	// Google service account for voice note transcription.
	GoogleServiceAccountFile string `mapstructure:"GOOGLE_SERVICE_ACCOUNT_FILE"`
}

var AppConfig Config

func LoadConfig() {
	// Development credentials may live in a local .env file.
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on process environment")
	}

	// Look for a config file named "config.yaml" in the current and "config" directory.
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	// Automatically use environment variables where available.
	viper.AutomaticEnv()

	// Set default values.
	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("LOG_LEVEL", "")
	viper.SetDefault("MAX_REQUESTS_PER_MIN", 100)
	viper.SetDefault("JAMAI_BASE_URL", "https://api.jamaibase.com")
	viper.SetDefault("JAMAI_PROJECT_ID", "")
	viper.SetDefault("JAMAI_PAT", "")
	viper.SetDefault("JAMAI_ACTION_TABLE_ID", "")
	viper.SetDefault("JAMAI_TIMEOUT_SECONDS", 60)
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_SESSION_DB", 0)
	viper.SetDefault("DATABASE_URL", "mongodb://localhost:27017")
	viper.SetDefault("ADMIN_API_KEY", "")
	viper.SetDefault("ADMIN_API_KEY_HASH", "")
	viper.SetDefault("GOOGLE_SERVICE_ACCOUNT_FILE", "")

	if err := viper.ReadInConfig(); err != nil {
		log.Println("No config file found, using environment variables only")
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// The JamAI credentials have no meaningful defaults.
	if AppConfig.JamaiProjectID == "" || AppConfig.JamaiPAT == "" || AppConfig.JamaiActionTableID == "" {
		log.Fatalf("Missing JamAI configuration: JAMAI_PROJECT_ID, JAMAI_PAT and JAMAI_ACTION_TABLE_ID are required")
	}
}

func GetEnv() string {
	return AppConfig.Env
}

func IsProduction() bool {
	return GetEnv() == "production"
}

package config

import (
	"log"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort           string `mapstructure:"APP_PORT"`
	Env               string `mapstructure:"ENV"`
	JWTSecret         string `mapstructure:"JWT_SECRET"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`
	MetricsEnabled    bool   `mapstructure:"METRICS_ENABLED"`

	// Redis configuration.
	RedisAddr         string `mapstructure:"REDIS_ADDR"`
	RedisPassword     string `mapstructure:"REDIS_PASSWORD"`
	RedisSessionDB    int    `mapstructure:"REDIS_SESSION_DB"`
	RedisRateLimitDB  int    `mapstructure:"REDIS_RATE_LIMIT_DB"`
	SessionTTLMinutes int    `mapstructure:"SESSION_TTL_MINUTES"`

	// Orchestration API and its token endpoint.
	OrchestrationAPIURL     string `mapstructure:"ORCHESTRATION_API_URL"`
	OrchestrationAPITimeout int    `mapstructure:"ORCHESTRATION_API_TIMEOUT_SECONDS"`
	HmppsAuthTokenURL       string `mapstructure:"HMPPS_AUTH_TOKEN_URL"`
	ClientID                string `mapstructure:"CLIENT_ID"`
	ClientSecret            string `mapstructure:"CLIENT_SECRET"`

	// Rate limits.
	BookerRateLimitMax                int `mapstructure:"BOOKER_RATE_LIMIT_MAX"`
	BookerRateLimitWindowSeconds      int `mapstructure:"BOOKER_RATE_LIMIT_WINDOW_SECONDS"`
	PrisonerRateLimitMax              int `mapstructure:"PRISONER_RATE_LIMIT_MAX"`
	PrisonerRateLimitWindowSeconds    int `mapstructure:"PRISONER_RATE_LIMIT_WINDOW_SECONDS"`
	VisitorRequestRateLimitMax        int `mapstructure:"VISITOR_REQUEST_RATE_LIMIT_MAX"`
	VisitorRequestRateLimitWindowSecs int `mapstructure:"VISITOR_REQUEST_RATE_LIMIT_WINDOW_SECONDS"`
}

var AppConfig Config

func LoadConfig() {
	// Look for a config file named "config.yaml" in the current and "config" directory.
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	// Automatically use environment variables where available.
	viper.AutomaticEnv()

	// Set default values.
	viper.SetDefault("APP_PORT", "3000")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("JWT_SECRET", "")
	viper.SetDefault("MAX_REQUESTS_PER_MIN", 200)
	viper.SetDefault("METRICS_ENABLED", true)
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_SESSION_DB", 0)
	viper.SetDefault("REDIS_RATE_LIMIT_DB", 1)
	viper.SetDefault("SESSION_TTL_MINUTES", 120)
	viper.SetDefault("ORCHESTRATION_API_URL", "http://localhost:8080")
	viper.SetDefault("ORCHESTRATION_API_TIMEOUT_SECONDS", 10)
	viper.SetDefault("HMPPS_AUTH_TOKEN_URL", "http://localhost:9090/auth/oauth/token")
	viper.SetDefault("CLIENT_ID", "")
	viper.SetDefault("CLIENT_SECRET", "")
	viper.SetDefault("BOOKER_RATE_LIMIT_MAX", 10)
	viper.SetDefault("BOOKER_RATE_LIMIT_WINDOW_SECONDS", 86400)
	viper.SetDefault("PRISONER_RATE_LIMIT_MAX", 5)
	viper.SetDefault("PRISONER_RATE_LIMIT_WINDOW_SECONDS", 86400)
	viper.SetDefault("VISITOR_REQUEST_RATE_LIMIT_MAX", 5)
	viper.SetDefault("VISITOR_REQUEST_RATE_LIMIT_WINDOW_SECONDS", 86400)

	if err := viper.ReadInConfig(); err != nil {
		log.Println("No config file found, using environment variables only")
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
}

func GetEnv() string {
	return AppConfig.Env
}

func IsProduction() bool {
	return GetEnv() == "production"
}

// SessionTTL is how long an idle user session survives in redis.
func (c Config) SessionTTL() time.Duration {
	return time.Duration(c.SessionTTLMinutes) * time.Minute
}

// OrchestrationTimeout is the per-request timeout for orchestration API calls.
func (c Config) OrchestrationTimeout() time.Duration {
	return time.Duration(c.OrchestrationAPITimeout) * time.Second
}

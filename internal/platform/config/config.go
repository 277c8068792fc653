package config

import (
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const defaultJWTSecret = "a-very-secret-key-should-be-longer-and-random"

// Config holds application configuration.
type Config struct {
	DatabaseURL   string
	Port          string
	IsProduction  bool
	EnableDBCheck bool
	RunMigrations bool

	JWTSecret string
	JWTIssuer string

	// RateLimit uses the limiter "<limit>-<period>" format, e.g. "100-M".
	RateLimit          string
	CORSAllowedOrigins []string

	// Timezone is the IANA zone whose calendar date drives expiry.
	Timezone string

	CacheTTL  time.Duration
	CacheSize int

	// Change notifications are disabled when AMQPURL is empty.
	AMQPURL        string `mapstructure:"AMQP_URL"`
	AMQPExchange   string `mapstructure:"AMQP_EXCHANGE"`
	AMQPRoutingKey string `mapstructure:"AMQP_ROUTING_KEY"`
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("ENABLE_DB_CHECK", false)
	viper.SetDefault("RUN_MIGRATIONS", true)
	viper.SetDefault("JWT_SECRET", defaultJWTSecret)
	viper.SetDefault("JWT_ISSUER", "")
	viper.SetDefault("RATE_LIMIT", "100-M")
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")
	viper.SetDefault("TIMEZONE", "America/Sao_Paulo")
	viper.SetDefault("CACHE_TTL", "30s")
	viper.SetDefault("CACHE_SIZE", 128)
	viper.SetDefault("AMQP_URL", "")
	viper.SetDefault("AMQP_EXCHANGE", "credit_notes")
	viper.SetDefault("AMQP_ROUTING_KEY", "ledger.events")

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = viper.GetString("PORT")
	if cfg.Port == "" {
		cfg.Port = "8080"
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}

	cfg.JWTSecret = viper.GetString("JWT_SECRET")
	if cfg.JWTSecret == "" || cfg.JWTSecret == defaultJWTSecret {
		cfg.JWTSecret = defaultJWTSecret // !! CHANGE IN PRODUCTION !!
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
	}
	cfg.JWTIssuer = viper.GetString("JWT_ISSUER")

	cfg.RateLimit = viper.GetString("RATE_LIMIT")
	cfg.CORSAllowedOrigins = splitList(viper.GetString("CORS_ALLOWED_ORIGINS"))

	cfg.Timezone = viper.GetString("TIMEZONE")
	if _, err := time.LoadLocation(cfg.Timezone); err != nil {
		log.Printf("Warning: Invalid value for TIMEZONE ('%s'). Defaulting to UTC.\n", cfg.Timezone)
		cfg.Timezone = "UTC"
	}

	cacheTTLStr := viper.GetString("CACHE_TTL")
	cacheTTL, err := time.ParseDuration(cacheTTLStr)
	if err != nil || cacheTTL <= 0 {
		cacheTTL = 30 * time.Second
		log.Printf("Warning: Invalid value for CACHE_TTL ('%s'). Defaulting to %s.\n", cacheTTLStr, cacheTTL.String())
	}
	cfg.CacheTTL = cacheTTL

	cfg.CacheSize = viper.GetInt("CACHE_SIZE")
	if cfg.CacheSize <= 0 {
		cfg.CacheSize = 128
		log.Printf("Warning: Invalid value for CACHE_SIZE. Defaulting to %d.\n", cfg.CacheSize)
	}

	cfg.AMQPURL = viper.GetString("AMQP_URL")
	cfg.AMQPExchange = viper.GetString("AMQP_EXCHANGE")
	cfg.AMQPRoutingKey = viper.GetString("AMQP_ROUTING_KEY")
	if cfg.AMQPURL == "" {
		log.Println("Warning: AMQP_URL not set. Ledger change notifications are disabled.")
	}

	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")
	cfg.EnableDBCheck = viper.GetBool("ENABLE_DB_CHECK")
	cfg.RunMigrations = viper.GetBool("RUN_MIGRATIONS")

	return cfg, nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

package config

import (
	"fmt"
	"log"
	"time"

	"github.com/SscSPs/club_finance_app/internal/core/domain"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL       string
	Port              string
	IsProduction      bool
	EnableDBCheck     bool
	JWTSecret         string
	JWTExpiryDuration time.Duration
	JWTIssuer         string
	AllowedOrigins    []string
	LoginRateLimit    string // ulule limiter format, e.g. "5-M"
	MigrationsPath    string

	// Dues
	DuesAmount       decimal.Decimal
	DuesDueDay       int
	DuesStatusPolicy domain.StatusPolicy
	ClubLocation     *time.Location

	// Notifications. An empty AMQPURL logs events instead of publishing them.
	AMQPURL      string
	AMQPExchange string
}

// DuesCalendar returns the calendar configured for the club.
func (c *Config) DuesCalendar() domain.DuesCalendar {
	return domain.DuesCalendar{DueDay: c.DuesDueDay, Location: c.ClubLocation}
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	v := viper.New()
	v.SetDefault("PGSQL_URL", "")
	v.SetDefault("PORT", "8080")
	v.SetDefault("IS_PRODUCTION", false)
	v.SetDefault("ENABLE_DB_CHECK", false)
	v.SetDefault("JWT_SECRET", "")
	v.SetDefault("JWT_EXPIRY_DURATION", "1h")
	v.SetDefault("JWT_ISSUER", "club-finance-app")
	v.SetDefault("ALLOWED_ORIGINS", []string{"http://localhost:3000"})
	v.SetDefault("LOGIN_RATE_LIMIT", "5-M")
	v.SetDefault("MIGRATIONS_PATH", "file://migrations")
	v.SetDefault("DUES_AMOUNT", "0")
	v.SetDefault("DUES_DUE_DAY", domain.DefaultDueDay)
	v.SetDefault("DUES_STATUS_POLICY", string(domain.PolicyStrict))
	v.SetDefault("CLUB_TIMEZONE", "America/Sao_Paulo")
	v.SetDefault("AMQP_URL", "")
	v.SetDefault("AMQP_EXCHANGE", "club.events")
	v.AutomaticEnv()

	return fromViper(v)
}

func fromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		DatabaseURL:      v.GetString("PGSQL_URL"),
		Port:             v.GetString("PORT"),
		IsProduction:     v.GetBool("IS_PRODUCTION"),
		EnableDBCheck:    v.GetBool("ENABLE_DB_CHECK"),
		JWTSecret:        v.GetString("JWT_SECRET"),
		JWTIssuer:        v.GetString("JWT_ISSUER"),
		AllowedOrigins:   v.GetStringSlice("ALLOWED_ORIGINS"),
		LoginRateLimit:   v.GetString("LOGIN_RATE_LIMIT"),
		MigrationsPath:   v.GetString("MIGRATIONS_PATH"),
		DuesDueDay:       v.GetInt("DUES_DUE_DAY"),
		DuesStatusPolicy: domain.StatusPolicy(v.GetString("DUES_STATUS_POLICY")),
		AMQPURL:          v.GetString("AMQP_URL"),
		AMQPExchange:     v.GetString("AMQP_EXCHANGE"),
	}

	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}
	if cfg.Port == "" {
		cfg.Port = "8080"
	}

	if cfg.JWTSecret == "" {
		if cfg.IsProduction {
			return nil, fmt.Errorf("JWT_SECRET must be set in production")
		}
		cfg.JWTSecret = "a-very-secret-key-should-be-longer-and-random" // !! CHANGE IN PRODUCTION !!
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
	}

	jwtExpiryStr := v.GetString("JWT_EXPIRY_DURATION")
	jwtExpiryDuration, err := time.ParseDuration(jwtExpiryStr)
	if err != nil || jwtExpiryDuration <= 0 {
		jwtExpiryDuration = time.Hour
		log.Printf("Warning: Invalid value for JWT_EXPIRY_DURATION ('%s'). Defaulting to %s.\n", jwtExpiryStr, jwtExpiryDuration)
	}
	cfg.JWTExpiryDuration = jwtExpiryDuration

	amount, err := decimal.NewFromString(v.GetString("DUES_AMOUNT"))
	if err != nil {
		return nil, fmt.Errorf("invalid DUES_AMOUNT: %w", err)
	}
	if amount.IsNegative() {
		return nil, fmt.Errorf("DUES_AMOUNT cannot be negative")
	}
	if amount.IsZero() {
		log.Println("Warning: DUES_AMOUNT not set. Payments must carry an explicit amount.")
	}
	cfg.DuesAmount = amount

	if cfg.DuesDueDay < 1 || cfg.DuesDueDay > 31 {
		return nil, fmt.Errorf("DUES_DUE_DAY must be between 1 and 31, got %d", cfg.DuesDueDay)
	}

	if _, err := domain.ResolverForPolicy(cfg.DuesStatusPolicy); err != nil {
		return nil, fmt.Errorf("invalid DUES_STATUS_POLICY: %w", err)
	}

	loc, err := time.LoadLocation(v.GetString("CLUB_TIMEZONE"))
	if err != nil {
		return nil, fmt.Errorf("invalid CLUB_TIMEZONE: %w", err)
	}
	cfg.ClubLocation = loc

	return cfg, nil
}

package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Addr        string
	DatabaseURL string
	JWTSecret   string
	TokenTTL    time.Duration
	Environment string

	EmailEnabled bool
	EmailFrom    string
	SMTPPort     int
	SMTPUser     string
	SMTPPassword string
	SMTPUseTLS   bool

	// RelayTable maps a recipient email domain to the outbound SMTP relay
	// host used for it. Recipients on domains without an entry are skipped.
	RelayTable map[string]string

	MinimalSalary float64
	TaxThreshold  float64
	LowerTaxRate  float64
	HigherTaxRate float64

	SeedAdminEmail    string
	SeedAdminPassword string
	RunMigrations     bool
	RunSeed           bool
	MaxBodyBytes      int64
}

func Load() Config {
	_ = godotenv.Load()

	return Config{
		Addr:        getEnv("APP_ADDR", ":8080"),
		DatabaseURL: getEnv("DATABASE_URL", ""),
		JWTSecret:   getEnv("JWT_SECRET", ""),
		TokenTTL:    getEnvDuration("TOKEN_TTL", 12*time.Hour),
		Environment: getEnv("APP_ENV", "development"),

		EmailEnabled: getEnvBool("EMAIL_ENABLED", false),
		EmailFrom:    getEnv("EMAIL_FROM", "no-reply@example.com"),
		SMTPPort:     getEnvInt("SMTP_PORT", 587),
		SMTPUser:     getEnv("SMTP_USER", ""),
		SMTPPassword: getEnv("SMTP_PASSWORD", ""),
		SMTPUseTLS:   getEnvBool("SMTP_USE_TLS", true),

		RelayTable: parseRelayTable(getEnv("SMTP_RELAYS", "")),

		MinimalSalary: getEnvFloat("MINIMAL_SALARY", 970),
		TaxThreshold:  getEnvFloat("TAX_THRESHOLD", 5000),
		LowerTaxRate:  getEnvFloat("LOWER_TAX_RATE", 0.20),
		HigherTaxRate: getEnvFloat("HIGHER_TAX_RATE", 0.30),

		SeedAdminEmail:    getEnv("SEED_ADMIN_EMAIL", ""),
		SeedAdminPassword: getEnv("SEED_ADMIN_PASSWORD", ""),
		RunMigrations:     getEnvBool("RUN_MIGRATIONS", true),
		RunSeed:           getEnvBool("RUN_SEED", true),
		MaxBodyBytes:      int64(getEnvInt("MAX_BODY_BYTES", 1048576)),
	}
}

// defaultRelays is the built-in domain to relay table, used when SMTP_RELAYS
// is not set.
var defaultRelays = map[string]string{
	"gmail.com":     "smtp.gmail.com",
	"yahoo.com":     "smtp.mail.yahoo.com",
	"office365.com": "smtp.office365.com",
	"tvz.hr":        "smtp.office365.com",
}

// parseRelayTable reads "domain=host,domain=host" pairs.
func parseRelayTable(raw string) map[string]string {
	if strings.TrimSpace(raw) == "" {
		table := make(map[string]string, len(defaultRelays))
		for domain, host := range defaultRelays {
			table[domain] = host
		}
		return table
	}
	table := make(map[string]string)
	for _, pair := range strings.Split(raw, ",") {
		parts := strings.SplitN(strings.TrimSpace(pair), "=", 2)
		if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
			continue
		}
		table[parts[0]] = parts[1]
	}
	return table
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvFloat(key string, fallback float64) float64 {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.DatabaseURL) == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}
	if c.Environment == "production" {
		if strings.TrimSpace(c.JWTSecret) == "" {
			return fmt.Errorf("JWT_SECRET must be set to a strong value in production")
		}
		if c.RunSeed && strings.TrimSpace(c.SeedAdminPassword) == "" {
			return fmt.Errorf("SEED_ADMIN_PASSWORD must be changed or RUN_SEED disabled in production")
		}
	}
	if c.MaxBodyBytes < 1024 {
		return fmt.Errorf("MAX_BODY_BYTES must be at least 1024")
	}
	if c.EmailEnabled && c.SMTPUser == "" {
		return fmt.Errorf("SMTP_USER must be set when EMAIL_ENABLED is true")
	}
	if c.MinimalSalary < 0 || c.TaxThreshold < c.MinimalSalary {
		return fmt.Errorf("tax bracket bounds are inconsistent")
	}
	if c.LowerTaxRate < 0 || c.LowerTaxRate > 1 || c.HigherTaxRate < 0 || c.HigherTaxRate > 1 {
		return fmt.Errorf("tax rates must be between 0 and 1")
	}
	return nil
}

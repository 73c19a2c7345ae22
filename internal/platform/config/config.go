package config

import (
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// SheetsConfig holds the spreadsheet ingestion settings. The integration is
// disabled when the spreadsheet id or every credential source is absent.
type SheetsConfig struct {
	Enabled         bool
	SpreadsheetID   string
	CredentialsFile string
	ClientEmail     string
	PrivateKey      string
	SyncInterval    time.Duration
}

// Config holds application configuration. It is built once at startup and
// threaded into components by constructor injection.
type Config struct {
	DatabaseURL  string
	Port         string
	IsProduction bool

	CORSAllowedOrigins []string

	JWTSecret         string
	JWTExpiryDuration time.Duration
	JWTIssuer         string

	RefreshTokenExpiryDuration time.Duration

	// ReportTimezone is the IANA zone whose midnight partitions "today"
	// for the stock summary and trend windows.
	ReportTimezone string

	SeedDefaults         bool
	DefaultAdminEmail    string
	DefaultAdminPassword string

	Sheets SheetsConfig
}

// LoadConfig loads configuration from environment variables and a .env file
// if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:5173")
	viper.SetDefault("JWT_SECRET", "a-very-secret-key-should-be-longer-and-random")
	viper.SetDefault("JWT_EXPIRY_DURATION", "24h")
	viper.SetDefault("JWT_ISSUER", "portledger-backend")
	viper.SetDefault("REFRESH_TOKEN_EXPIRY_DURATION", "168h")
	viper.SetDefault("APP_TIMEZONE", "Asia/Makassar")
	viper.SetDefault("SEED_DEFAULTS", false)
	viper.SetDefault("DEFAULT_ADMIN_EMAIL", "admin@example.com")
	viper.SetDefault("DEFAULT_ADMIN_PASSWORD", "")
	viper.SetDefault("SHEETS_ENABLED", false)
	viper.SetDefault("SHEETS_SPREADSHEET_ID", "")
	viper.SetDefault("SHEETS_CREDENTIALS_FILE", "")
	viper.SetDefault("SHEETS_CLIENT_EMAIL", "")
	viper.SetDefault("SHEETS_PRIVATE_KEY", "")
	viper.SetDefault("SHEETS_SYNC_INTERVAL", "60s")

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = viper.GetString("PORT")
	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")

	cfg.CORSAllowedOrigins = splitAndTrim(viper.GetString("CORS_ALLOWED_ORIGINS"))

	cfg.JWTSecret = viper.GetString("JWT_SECRET")
	if !cfg.IsProduction && cfg.JWTSecret == "a-very-secret-key-should-be-longer-and-random" {
		log.Println("Warning: JWT_SECRET not set. Using default insecure key.")
	}
	cfg.JWTExpiryDuration = parseDurationOrDefault("JWT_EXPIRY_DURATION", 24*time.Hour)
	cfg.JWTIssuer = viper.GetString("JWT_ISSUER")

	cfg.RefreshTokenExpiryDuration = parseDurationOrDefault("REFRESH_TOKEN_EXPIRY_DURATION", 7*24*time.Hour)

	cfg.ReportTimezone = viper.GetString("APP_TIMEZONE")
	if _, err := time.LoadLocation(cfg.ReportTimezone); err != nil {
		log.Printf("Warning: invalid APP_TIMEZONE %q, falling back to Asia/Makassar: %v\n", cfg.ReportTimezone, err)
		cfg.ReportTimezone = "Asia/Makassar"
	}

	cfg.SeedDefaults = viper.GetBool("SEED_DEFAULTS")
	cfg.DefaultAdminEmail = viper.GetString("DEFAULT_ADMIN_EMAIL")
	cfg.DefaultAdminPassword = viper.GetString("DEFAULT_ADMIN_PASSWORD")

	cfg.Sheets = SheetsConfig{
		Enabled:         viper.GetBool("SHEETS_ENABLED"),
		SpreadsheetID:   viper.GetString("SHEETS_SPREADSHEET_ID"),
		CredentialsFile: viper.GetString("SHEETS_CREDENTIALS_FILE"),
		ClientEmail:     viper.GetString("SHEETS_CLIENT_EMAIL"),
		PrivateKey:      viper.GetString("SHEETS_PRIVATE_KEY"),
		SyncInterval:    parseDurationOrDefault("SHEETS_SYNC_INTERVAL", time.Minute),
	}
	if cfg.Sheets.Enabled && cfg.Sheets.SpreadsheetID == "" {
		log.Println("Warning: SHEETS_SPREADSHEET_ID not set, sheet ingestion will be disabled.")
	}

	return cfg, nil
}

func parseDurationOrDefault(key string, fallback time.Duration) time.Duration {
	raw := viper.GetString(key)
	d, err := time.ParseDuration(raw)
	if err != nil {
		if raw != "" {
			log.Printf("Warning: invalid value for %s (%q). Defaulting to %s.\n", key, raw, fallback)
		}
		return fallback
	}
	return d
}

func splitAndTrim(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

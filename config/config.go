package config

import (
	"strings"

	"github.com/spf13/viper"
)

// Settings carries all runtime configuration, bound from the environment.
type Settings struct {
	Port        string
	CORSOrigins []string

	DBDriver string // "mysql" or "sqlite"
	DBUser   string
	DBPass   string
	DBHost   string
	DBPort   string
	DBName   string
	// Path of the sqlite database file when DBDriver is "sqlite".
	SQLitePath string

	// When true, cards failing the Luhn check are rejected instead of
	// admitted with a warning.
	WalletStrictValidation bool
	// Starting balance seeded onto every guest's default card.
	DefaultCardBalance float64

	SMTPHost     string
	SMTPPort     string
	SMTPUsername string
	SMTPPassword string
	SMTPFromName string
}

// Load binds settings from environment variables with defaults.
func Load() *Settings {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("PORT", "8080")
	v.SetDefault("CORS_ORIGINS", "*")
	v.SetDefault("DB_DRIVER", "mysql")
	v.SetDefault("DB_USER", "root")
	v.SetDefault("DB_PASS", "")
	v.SetDefault("DB_HOST", "127.0.0.1")
	v.SetDefault("DB_PORT", "3306")
	v.SetDefault("DB_NAME", "horizon_hotel")
	v.SetDefault("SQLITE_PATH", "horizon_hotel.db")
	v.SetDefault("WALLET_STRICT_VALIDATION", false)
	v.SetDefault("DEFAULT_CARD_BALANCE", 100.00)
	v.SetDefault("SMTP_FROM_NAME", "Horizon Hotel")

	origins := make([]string, 0, 4)
	for _, part := range strings.Split(v.GetString("CORS_ORIGINS"), ",") {
		if origin := strings.TrimSpace(part); origin != "" {
			origins = append(origins, origin)
		}
	}
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	return &Settings{
		Port:                   v.GetString("PORT"),
		CORSOrigins:            origins,
		DBDriver:               strings.ToLower(v.GetString("DB_DRIVER")),
		DBUser:                 v.GetString("DB_USER"),
		DBPass:                 v.GetString("DB_PASS"),
		DBHost:                 v.GetString("DB_HOST"),
		DBPort:                 v.GetString("DB_PORT"),
		DBName:                 v.GetString("DB_NAME"),
		SQLitePath:             v.GetString("SQLITE_PATH"),
		WalletStrictValidation: v.GetBool("WALLET_STRICT_VALIDATION"),
		DefaultCardBalance:     v.GetFloat64("DEFAULT_CARD_BALANCE"),
		SMTPHost:               v.GetString("SMTP_HOST"),
		SMTPPort:               v.GetString("SMTP_PORT"),
		SMTPUsername:           v.GetString("SMTP_USERNAME"),
		SMTPPassword:           v.GetString("SMTP_PASSWORD"),
		SMTPFromName:           v.GetString("SMTP_FROM_NAME"),
	}
}

package initializers

import (
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type AppConfig struct {
	SecretKey                  string
	DatabaseURL                string
	ChristmasEvePrayerTime     string
	RequestsPerPage            int
	Port                       string
	LogLevel                   string
	ResendAPIKey               string
	EmailFrom                  string
	FirebaseServiceAccountPath string
	BootstrapAdminEmail        string
}

var Config = AppConfig{RequestsPerPage: 20}

// LoadEnv reads an optional .env file and resolves every setting from the
// environment, falling back to the hardcoded defaults below.
func LoadEnv() {
	if err := godotenv.Load(); err != nil {
		Log.Debug("no .env file found, using process environment")
	}

	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("SECRET_KEY", "dev-secret-key-change-in-production")
	v.SetDefault("DATABASE_URL", "postgres://localhost:5432/pray_noel?sslmode=disable")
	v.SetDefault("CHRISTMAS_EVE_PRAYER_TIME", "2025-12-24 20:00:00")
	v.SetDefault("REQUESTS_PER_PAGE", 20)
	v.SetDefault("PORT", "8080")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("RESEND_API_KEY", "")
	v.SetDefault("EMAIL_FROM", "Pray Noel <noreply@praynoel.com>")
	v.SetDefault("FIREBASE_SERVICE_ACCOUNT_PATH", "")
	v.SetDefault("BOOTSTRAP_ADMIN_EMAIL", "")

	Config = AppConfig{
		SecretKey:                  v.GetString("SECRET_KEY"),
		DatabaseURL:                v.GetString("DATABASE_URL"),
		ChristmasEvePrayerTime:     v.GetString("CHRISTMAS_EVE_PRAYER_TIME"),
		RequestsPerPage:            v.GetInt("REQUESTS_PER_PAGE"),
		Port:                       v.GetString("PORT"),
		LogLevel:                   v.GetString("LOG_LEVEL"),
		ResendAPIKey:               v.GetString("RESEND_API_KEY"),
		EmailFrom:                  v.GetString("EMAIL_FROM"),
		FirebaseServiceAccountPath: v.GetString("FIREBASE_SERVICE_ACCOUNT_PATH"),
		BootstrapAdminEmail:        v.GetString("BOOTSTRAP_ADMIN_EMAIL"),
	}

	if Config.RequestsPerPage <= 0 {
		Config.RequestsPerPage = 20
	}

	if Config.SecretKey == "dev-secret-key-change-in-production" {
		Log.Warn("SECRET_KEY not set, using the development default")
	}
}

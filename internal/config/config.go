package config

import (
	"fmt"
	"os"
	"strings"
	"time"
)

const (
	defaultDatabaseURL = "cinetrack.db"
	defaultJWTSecret   = "change-me-jwt-secret"
	defaultJWTTTL      = "168h" // 7 days
	defaultPort        = "3001"
	defaultBackupDir   = "backups"
	defaultFrontendURL = "http://localhost:3000"
	defaultSMTPHost    = "smtp.gmail.com"
	defaultSMTPPort    = "587"
)

type Config struct {
	AppEnv      string
	Port        string
	DatabaseURL string
	JWTSecret   string
	JWTTTL      time.Duration

	// Admin allow-list; comma-separated ADMIN_EMAILS in the environment.
	AdminEmails []string

	OMDbAPIKey string
	TMDBAPIKey string

	SMTPHost     string
	SMTPPort     string
	EmailUser    string
	EmailPass    string
	FrontendURL  string
	BackupDir    string
}

func Load() (*Config, error) {
	cfg := &Config{}

	appEnv := strings.TrimSpace(os.Getenv("APP_ENV"))
	if appEnv == "" {
		appEnv = "dev"
	}
	cfg.AppEnv = strings.ToLower(appEnv)

	cfg.Port = getEnv("PORT", defaultPort)
	cfg.DatabaseURL = getEnv("DATABASE_URL", defaultDatabaseURL)
	cfg.JWTSecret = strings.TrimSpace(getEnv("JWT_SECRET", defaultJWTSecret))

	var err error
	cfg.JWTTTL, err = parseDurationEnv("JWT_TTL", defaultJWTTTL)
	if err != nil {
		return nil, err
	}

	for _, e := range strings.Split(os.Getenv("ADMIN_EMAILS"), ",") {
		e = strings.ToLower(strings.TrimSpace(e))
		if e != "" {
			cfg.AdminEmails = append(cfg.AdminEmails, e)
		}
	}

	cfg.OMDbAPIKey = strings.TrimSpace(os.Getenv("OMDB_API_KEY"))
	cfg.TMDBAPIKey = strings.TrimSpace(os.Getenv("TMDB_API_KEY"))

	cfg.SMTPHost = getEnv("SMTP_HOST", defaultSMTPHost)
	cfg.SMTPPort = getEnv("SMTP_PORT", defaultSMTPPort)
	cfg.EmailUser = strings.TrimSpace(os.Getenv("EMAIL_USER"))
	cfg.EmailPass = os.Getenv("EMAIL_PASSWORD")
	cfg.FrontendURL = getEnv("FRONTEND_URL", defaultFrontendURL)
	cfg.BackupDir = getEnv("BACKUP_DIR", defaultBackupDir)

	if err := validateConfig(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

func validateConfig(cfg *Config) error {
	if cfg.JWTTTL <= 0 {
		return fmt.Errorf("JWT_TTL must be > 0")
	}
	if isProdLike(cfg.AppEnv) {
		if cfg.JWTSecret == "" || cfg.JWTSecret == defaultJWTSecret {
			return fmt.Errorf("in prod/release JWT_SECRET must be set and not default")
		}
	}
	return nil
}

func isProdLike(env string) bool {
	env = strings.ToLower(strings.TrimSpace(env))
	return env == "prod" || env == "production" || env == "release"
}

func parseDurationEnv(name, fallback string) (time.Duration, error) {
	value := strings.TrimSpace(getEnv(name, fallback))
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: %w", name, value, err)
	}
	return d, nil
}

func getEnv(name, fallback string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return fallback
}

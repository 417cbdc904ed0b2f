package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strings"
	"time"
)

// JWTConfig defines issuer/secret pair for auth verification.
type JWTConfig struct {
	Issuer string
	Secret []byte
}

// SheetsConfig selects the optional Google Sheets copy of each feedback.
type SheetsConfig struct {
	SpreadsheetID       string
	SheetName           string
	ServiceAccountEmail string
}

// Enabled reports whether a spreadsheet has been configured.
func (s SheetsConfig) Enabled() bool {
	return strings.TrimSpace(s.SpreadsheetID) != ""
}

// Config holds runtime configuration shared across the application.
type Config struct {
	Addr                         string
	MongoURI                     string
	MongoDatabase                string
	FeedbackCollection           string
	FailedNotificationCollection string
	Timeout                      time.Duration
	Timezone                     string
	ServerLog                    *log.Logger
	JWTConfigs                   []JWTConfig
	JWTAudience                  string
	MessengerEndpoint            string
	DiscordDestination           string
	SlackDestination             string
	MessengerTimeout             time.Duration
	AdminFeedbackBaseURL         string
	AllowedOrigins               []string
	Sheets                       SheetsConfig
	SinkTimeout                  time.Duration
}

// Load reads environment variables and returns a fully populated Config.
// Admin routes stay closed when no JWT secret is configured.
func Load() Config {
	jwtAudience := strings.TrimSpace(os.Getenv("AUTH_JWT_AUDIENCE"))
	if jwtAudience == "" {
		jwtAudience = strings.TrimSpace(os.Getenv("AUTH_ADMIN_JWT_AUDIENCE"))
	}

	var jwtConfigs []JWTConfig
	if secret := strings.TrimSpace(os.Getenv("AUTH_ADMIN_JWT_SECRET")); secret != "" {
		jwtConfigs = append(jwtConfigs, JWTConfig{
			Issuer: envOrDefault("AUTH_ADMIN_JWT_ISSUER", "vega-admin"),
			Secret: []byte(secret),
		})
	}

	cfg := Config{
		Addr:                         envOrDefault("HTTP_ADDR", ":8080"),
		MongoURI:                     envOrDefault("MONGO_URI", "mongodb://mongo:27017"),
		MongoDatabase:                envOrDefault("MONGO_DB", "vega-landing"),
		FeedbackCollection:           envOrDefault("FEEDBACK_COLLECTION", "feedback"),
		FailedNotificationCollection: envOrDefault("FAILED_NOTIFICATION_COLLECTION", "failed_notifications"),
		Timeout:                      durationOrDefault("MONGO_CONNECT_TIMEOUT", 10*time.Second),
		Timezone:                     envOrDefault("TIMEZONE", "Asia/Tokyo"),
		ServerLog:                    log.New(os.Stdout, "[vega-landing-api] ", log.LstdFlags|log.Lshortfile),
		JWTConfigs:                   jwtConfigs,
		JWTAudience:                  jwtAudience,
		MessengerEndpoint:            strings.TrimRight(envOrDefault("MESSENGER_GATEWAY_URL", "http://messenger-gateway:3000"), "/"),
		DiscordDestination:           strings.TrimSpace(os.Getenv("MESSENGER_DISCORD_INCOMING_DESTINATION")),
		SlackDestination:             strings.TrimSpace(os.Getenv("MESSENGER_SLACK_DESTINATION")),
		MessengerTimeout:             durationOrDefault("MESSENGER_GATEWAY_TIMEOUT", 3*time.Second),
		AdminFeedbackBaseURL:         strings.TrimSpace(os.Getenv("ADMIN_FEEDBACK_BASE_URL")),
		AllowedOrigins:               parseList("API_ALLOWED_ORIGINS", []string{"*"}),
		Sheets: SheetsConfig{
			SpreadsheetID:       strings.TrimSpace(os.Getenv("GOOGLE_SPREADSHEET_ID")),
			SheetName:           strings.TrimSpace(os.Getenv("GOOGLE_SHEET_NAME")),
			ServiceAccountEmail: strings.TrimSpace(os.Getenv("GCP_SERVICE_ACCOUNT_EMAIL")),
		},
		SinkTimeout: durationOrDefault("SHEETS_TIMEOUT", 10*time.Second),
	}

	cfg.ServerLog.Printf("loaded config: db=%q feedback=%q sheets=%t admin=%t discord=%q slack=%q",
		cfg.MongoDatabase, cfg.FeedbackCollection, cfg.Sheets.Enabled(), cfg.AdminEnabled(), cfg.DiscordDestination, cfg.SlackDestination)

	return cfg
}

// AdminEnabled reports whether any admin JWT secret was configured.
func (c Config) AdminEnabled() bool {
	return len(c.JWTConfigs) > 0
}

// Validate reports every setting the server cannot start without.
func (c Config) Validate() error {
	var errs []error
	if strings.TrimSpace(c.Addr) == "" {
		errs = append(errs, errors.New("HTTP_ADDR must not be empty"))
	}
	if strings.TrimSpace(c.MongoURI) == "" {
		errs = append(errs, errors.New("MONGO_URI must not be empty"))
	}
	if strings.TrimSpace(c.MongoDatabase) == "" {
		errs = append(errs, errors.New("MONGO_DB must not be empty"))
	}
	if strings.TrimSpace(c.FeedbackCollection) == "" {
		errs = append(errs, errors.New("FEEDBACK_COLLECTION must not be empty"))
	}
	if c.Timeout <= 0 {
		errs = append(errs, fmt.Errorf("MONGO_CONNECT_TIMEOUT must be positive, got %s", c.Timeout))
	}
	if (c.DiscordDestination != "" || c.SlackDestination != "") && c.MessengerEndpoint == "" {
		errs = append(errs, errors.New("MESSENGER_GATEWAY_URL is required when a notification destination is set"))
	}
	return errors.Join(errs...)
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func durationOrDefault(key string, fallback time.Duration) time.Duration {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}
	return parsed
}

func parseList(key string, fallback []string) []string {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}

	parts := strings.Split(raw, ",")
	values := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part != "" {
			values = append(values, part)
		}
	}

	if len(values) == 0 {
		return fallback
	}
	return values
}

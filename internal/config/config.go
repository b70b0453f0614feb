// Package config handles application configuration from environment variables.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Email holds SMTP digest delivery settings.
type Email struct {
	From     string
	Password string
	To       string
	SMTPHost string
	SMTPPort int
}

// Telegram holds Telegram digest delivery settings.
type Telegram struct {
	Token  string
	ChatID int64
}

// Config holds the application configuration.
type Config struct {
	Country        string
	Sectors        []string
	SeenBackend    string // "sqlite" or "json"
	DatabasePath   string
	SeenFilePath   string
	ExportDir      string
	ScanDelay      time.Duration
	ScoreThreshold float64
	ScanInterval   time.Duration
	LogLevel       string

	// Digest channels; nil when not configured.
	Email    *Email
	Telegram *Telegram
}

// Load reads configuration from environment variables. Digest channels
// are optional, but a partially configured channel is an error so a
// broken .env fails before the first scan rather than after it.
func Load() (*Config, error) {
	cfg := &Config{
		Country:        envOrDefault("COUNTRY", "Tanzania"),
		SeenBackend:    envOrDefault("SEEN_BACKEND", "sqlite"),
		DatabasePath:   envOrDefault("DATABASE_PATH", "./data/donorscan.db"),
		SeenFilePath:   envOrDefault("SEEN_FILE", "./data/seen_opportunities.json"),
		ExportDir:      envOrDefault("EXPORT_DIR", "."),
		ScanDelay:      500 * time.Millisecond,
		ScoreThreshold: 6,
		ScanInterval:   24 * time.Hour,
		LogLevel:       envOrDefault("LOG_LEVEL", "info"),
	}

	cfg.Sectors = splitList(envOrDefault("SECTORS", "children,education,health,food,agriculture"))
	if len(cfg.Sectors) == 0 {
		return nil, fmt.Errorf("SECTORS must name at least one sector")
	}
	if strings.TrimSpace(cfg.Country) == "" {
		return nil, fmt.Errorf("COUNTRY must not be empty")
	}

	switch cfg.SeenBackend {
	case "sqlite", "json":
	default:
		return nil, fmt.Errorf("invalid SEEN_BACKEND %q (want sqlite or json)", cfg.SeenBackend)
	}

	if raw := os.Getenv("SCAN_DELAY_MS"); raw != "" {
		ms, err := strconv.Atoi(raw)
		if err != nil || ms < 0 {
			return nil, fmt.Errorf("invalid SCAN_DELAY_MS %q", raw)
		}
		cfg.ScanDelay = time.Duration(ms) * time.Millisecond
	}

	if raw := os.Getenv("SCORE_THRESHOLD"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil || v < 0 || v > 10 {
			return nil, fmt.Errorf("invalid SCORE_THRESHOLD %q", raw)
		}
		cfg.ScoreThreshold = v
	}

	if raw := os.Getenv("SCAN_INTERVAL_HOURS"); raw != "" {
		h, err := strconv.Atoi(raw)
		if err != nil || h <= 0 {
			return nil, fmt.Errorf("invalid SCAN_INTERVAL_HOURS %q", raw)
		}
		cfg.ScanInterval = time.Duration(h) * time.Hour
	}

	email, err := loadEmail()
	if err != nil {
		return nil, err
	}
	cfg.Email = email

	tg, err := loadTelegram()
	if err != nil {
		return nil, err
	}
	cfg.Telegram = tg

	return cfg, nil
}

func loadEmail() (*Email, error) {
	to := os.Getenv("EMAIL_TO")
	if to == "" {
		return nil, nil
	}

	var missing []string
	from := os.Getenv("EMAIL_FROM")
	if from == "" {
		missing = append(missing, "EMAIL_FROM")
	}
	password := os.Getenv("EMAIL_PASSWORD")
	if password == "" {
		missing = append(missing, "EMAIL_PASSWORD")
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("EMAIL_TO is set but %s missing", strings.Join(missing, ", "))
	}

	port := 587
	if raw := os.Getenv("SMTP_PORT"); raw != "" {
		p, err := strconv.Atoi(raw)
		if err != nil || p <= 0 {
			return nil, fmt.Errorf("invalid SMTP_PORT %q", raw)
		}
		port = p
	}

	return &Email{
		From:     from,
		Password: password,
		To:       to,
		SMTPHost: envOrDefault("SMTP_HOST", "smtp.gmail.com"),
		SMTPPort: port,
	}, nil
}

func loadTelegram() (*Telegram, error) {
	token := os.Getenv("TELEGRAM_BOT_TOKEN")
	if token == "" {
		return nil, nil
	}

	raw := os.Getenv("TELEGRAM_CHAT_ID")
	if raw == "" {
		return nil, fmt.Errorf("TELEGRAM_BOT_TOKEN is set but TELEGRAM_CHAT_ID missing")
	}
	chatID, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid TELEGRAM_CHAT_ID %q: %w", raw, err)
	}

	return &Telegram{Token: token, ChatID: chatID}, nil
}

func splitList(raw string) []string {
	var out []string
	for _, s := range strings.Split(raw, ",") {
		s = strings.TrimSpace(s)
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

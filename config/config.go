package config

import (
	"os"
	"strconv"
	"time"

	"watchtracker/pkg/errors"
)

// Config represents the application configuration
type Config struct {
	// Redis configuration for the alert stream
	RedisAddr         string
	RedisDB           int
	RedisStream       string
	RedisStreamMaxLen int

	// Memcache configuration for fetch rate limiting
	MemcacheAddr string

	// Monitor configuration
	CheckInterval time.Duration
	RunOnce       bool

	// History and report output
	HistoryFile string
	ReportDir   string

	// Alert configuration
	AlertRecipient string
	SMTPAddr       string
	SMTPUsername   string
	SMTPPassword   string
	SMTPFrom       string

	// URLs for the retailer listing pages
	SamsungURL    string
	TakealotURL   string
	IncredibleURL string
	MakroURL      string
	OneDayOnlyURL string

	// Environment
	Environment string
}

// LoadConfig loads the configuration from environment variables with defaults
func LoadConfig() Config {
	redisDB, _ := strconv.Atoi(getEnv("REDIS_DB", "0"))
	streamMaxLen, _ := strconv.Atoi(getEnv("REDIS_STREAM_MAX_LENGTH", "500"))
	checkInterval, _ := strconv.Atoi(getEnv("CHECK_INTERVAL_SECONDS", "86400"))
	runOnce, _ := strconv.ParseBool(getEnv("RUN_ONCE", "false"))

	return Config{
		RedisAddr:         getEnv("REDIS_ADDR", "localhost:6379"),
		RedisDB:           redisDB,
		RedisStream:       getEnv("REDIS_STREAM", "watchdeals"),
		RedisStreamMaxLen: streamMaxLen,
		MemcacheAddr:      getEnv("MEMCACHE_ADDR", "localhost:11211"),
		CheckInterval:     time.Duration(checkInterval) * time.Second,
		RunOnce:           runOnce,
		HistoryFile:       getEnv("HISTORY_FILE", "price_history_za.json"),
		ReportDir:         getEnv("REPORT_DIR", "."),
		AlertRecipient:    getEnv("ALERT_RECIPIENT", ""),
		SMTPAddr:          getEnv("SMTP_ADDR", ""),
		SMTPUsername:      getEnv("SMTP_USERNAME", ""),
		SMTPPassword:      getEnv("SMTP_PASSWORD", ""),
		SMTPFrom:          getEnv("SMTP_FROM", ""),
		SamsungURL:        getEnv("SAMSUNG_URL", "https://www.samsung.com/za/watches/galaxy-watch/"),
		TakealotURL:       getEnv("TAKEALOT_URL", "https://www.takealot.com/all?qsearch=samsung+galaxy+watch"),
		IncredibleURL:     getEnv("INCREDIBLE_URL", "https://www.incredible.co.za/catalogsearch/result/?q=samsung+galaxy+watch"),
		MakroURL:          getEnv("MAKRO_URL", "https://www.makro.co.za/search/?text=samsung+galaxy+watch"),
		OneDayOnlyURL:     getEnv("ONEDAYONLY_URL", "https://www.onedayonly.co.za/search?query=samsung+galaxy+watch"),
		Environment:       getEnv("TRACKER_ENVIRONMENT", "development"),
	}
}

// Validate checks that the static configuration is usable and fails fast
// otherwise, since a tracker with a broken catalog degrades silently.
func (c *Config) Validate() error {
	if c.CheckInterval <= 0 {
		return errors.NewConfiguration("check interval must be positive", nil)
	}

	catalog := Catalog()
	if len(catalog) == 0 {
		return errors.NewConfiguration("catalog is empty", nil)
	}
	for _, entry := range catalog {
		if entry.Model == "" {
			return errors.NewConfiguration("catalog entry with empty model name", nil)
		}
		if entry.NormalPrice <= 0 || entry.DealThreshold <= 0 {
			return errors.NewConfiguration("catalog prices must be positive for "+entry.Model, nil)
		}
		if entry.DealThreshold > entry.NormalPrice {
			return errors.NewConfiguration("deal threshold exceeds normal price for "+entry.Model, nil)
		}
	}

	retailers := c.Retailers()
	if len(retailers) == 0 {
		return errors.NewConfiguration("no retailers configured", nil)
	}
	for _, r := range retailers {
		if r.Name == "" || r.URL == "" {
			return errors.NewConfiguration("retailer with empty name or URL", nil)
		}
		if r.Selectors.Card == "" || r.Selectors.Title == "" || r.Selectors.Price == "" {
			return errors.NewConfiguration("incomplete selectors for retailer "+r.Name, nil)
		}
	}

	return nil
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

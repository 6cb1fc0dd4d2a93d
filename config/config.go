package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"
)

// DefaultScriptURL is the Apps Script web app that backs the registration sheet.
const DefaultScriptURL = "https://script.google.com/macros/s/AKfycbz13tv7z6OY3afFPyaf3zHHD0LwMU_t3RbOnA5urk6T3mnsR2DPm-v9ccRZgvIWdm5r/exec"

// Config holds application configuration loaded from environment variables
// Provide sane defaults for local development.
type Config struct {
	AppName string
	Env     string // development, staging, production
	Port    string
	GinMode string

	// Remote spreadsheet endpoint
	SheetsScriptURL string
	SheetsTimeout   time.Duration
	// SheetsLenient treats a non-JSON answer to a write as success
	SheetsLenient bool

	// How long a result banner stays visible
	BannerTTL time.Duration

	// Redis; empty address keeps banners in memory and disables rate limiting
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	// Submissions per minute per IP (0 disables)
	SubmitRateLimit int

	// Cookies
	CookieSecure bool

	// CORS
	CORSAllowedOrigins string // comma-separated

	// Mailgun
	MailgunDomain string
	MailgunAPIKey string
	MailgunSender string

	// RabbitMQ; empty URL disables receipt emails
	RabbitMQURL        string
	RabbitMQEmailQueue string

	// Elasticsearch; empty addresses disable search
	ElasticsearchAddrs   string // comma-separated
	ElasticsearchUser    string
	ElasticsearchPass    string
	ESRegistrationsIndex string

	// Receipt email branding
	CompanyName string
	LogoURL     string
	SupportURL  string

	// Email sending toggle
	MailSendEnabled bool

	// HTTP access log toggle (Gin logger)
	HTTPLogEnabled bool
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getbool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			log.Printf("invalid boolean for %s: %v, using default %v", key, err, def)
			return def
		}
		return b
	}
	return def
}

func getint(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		i, err := strconv.Atoi(v)
		if err != nil {
			log.Printf("invalid int for %s: %v, using default %d", key, err, def)
			return def
		}
		return i
	}
	return def
}

func getdur(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			log.Printf("invalid duration for %s: %v, using default %v", key, err, def)
			return def
		}
		return d
	}
	return def
}

// Load loads configuration from environment variables
func Load() *Config {
	return &Config{
		AppName: getenv("APP_NAME", "actualizacion-datos"),
		Env:     getenv("APP_ENV", "development"),
		Port:    getenv("PORT", "8080"),
		GinMode: getenv("GIN_MODE", "release"),

		SheetsScriptURL: getenv("SHEETS_SCRIPT_URL", DefaultScriptURL),
		SheetsTimeout:   getdur("SHEETS_TIMEOUT", 15*time.Second),
		SheetsLenient:   getbool("SHEETS_LENIENT", true),

		BannerTTL: getdur("BANNER_TTL", 5*time.Second),

		RedisAddr:     getenv("REDIS_ADDR", ""),
		RedisPassword: getenv("REDIS_PASSWORD", ""),
		RedisDB:       getint("REDIS_DB", 0),

		SubmitRateLimit: getint("SUBMIT_RATE_LIMIT", 10),

		CookieSecure: getbool("COOKIE_SECURE", false),

		CORSAllowedOrigins: getenv("CORS_ALLOWED_ORIGINS", ""),

		MailgunDomain: getenv("MAILGUN_DOMAIN", ""),
		MailgunAPIKey: getenv("MAILGUN_API_KEY", ""),
		MailgunSender: getenv("MAILGUN_SENDER", ""),

		RabbitMQURL:        getenv("RABBITMQ_URL", ""),
		RabbitMQEmailQueue: getenv("RABBITMQ_EMAIL_QUEUE", "registration_receipts"),

		ElasticsearchAddrs:   getenv("ELASTICSEARCH_ADDRS", ""),
		ElasticsearchUser:    getenv("ELASTICSEARCH_USERNAME", ""),
		ElasticsearchPass:    getenv("ELASTICSEARCH_PASSWORD", ""),
		ESRegistrationsIndex: getenv("ES_REGISTRATIONS_INDEX", "registrations"),

		CompanyName: getenv("COMPANY_NAME", "Mutualidad del Magisterio Nacional"),
		LogoURL:     getenv("LOGO_URL", ""),
		SupportURL:  getenv("SUPPORT_URL", ""),

		// receipts are opt-in
		MailSendEnabled: getbool("MAIL_SEND_ENABLED", false),

		// HTTP access log toggle (default false; enable when needed)
		HTTPLogEnabled: getbool("HTTP_LOG_ENABLED", false),
	}
}

// CORSOrigins returns the allowed origins as slice
func (c *Config) CORSOrigins() []string {
	return splitList(c.CORSAllowedOrigins)
}

// ESAddrs returns Elasticsearch addresses as a slice
func (c *Config) ESAddrs() []string {
	return splitList(c.ElasticsearchAddrs)
}

func splitList(s string) []string {
	parts := strings.Split(s, ",")
	res := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			res = append(res, p)
		}
	}
	return res
}

package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	Port               string
	LogLevel           string
	PublicBaseURL      string
	AnvayaAPIURL       string
	AnvayaTimeout      time.Duration
	DateLayout         string
	FooterMode         string
	CORSAllowedOrigins []string
	FormRateLimit      int
	AMQPURL            string
	ActivityEmail      string
	MailHost           string
	MailPort           int
	MailUser           string
	MailPassword       string
	MailFrom           string
}

// Load reads configuration from environment variables, after merging a local
// .env file when one exists.
func Load() *Config {
	_ = godotenv.Load()

	port := getEnv("PORT", "8080")
	return &Config{
		Port:               port,
		LogLevel:           getEnv("LOG_LEVEL", "info"),
		PublicBaseURL:      getEnv("PUBLIC_BASE_URL", "http://localhost:"+port),
		AnvayaAPIURL:       getEnv("ANVAYA_API_URL", "https://anvaya-backend-gilt.vercel.app"),
		AnvayaTimeout:      getEnvAsDuration("ANVAYA_TIMEOUT", 0),
		DateLayout:         getEnv("DATE_LAYOUT", "1/2/2006"),
		FooterMode:         getEnv("DASHBOARD_FOOTER_MODE", "derived"),
		CORSAllowedOrigins: getEnvAsList("CORS_ALLOWED_ORIGINS", []string{"*"}),
		FormRateLimit:      getEnvAsInt("FORM_RATE_LIMIT", 30),
		AMQPURL:            getEnv("AMQP_URL", ""),
		ActivityEmail:      getEnv("ACTIVITY_NOTIFY_EMAIL", ""),
		MailHost:           getEnv("MAIL_HOST", "smtp.gmail.com"),
		MailPort:           getEnvAsInt("MAIL_PORT", 587),
		MailUser:           getEnv("MAIL_USER", ""),
		MailPassword:       getEnv("MAIL_PASS", ""),
		MailFrom:           getEnv("MAIL_FROM", ""),
	}
}

// ActivityMailEnabled reports whether activity digests should be mailed.
func (c *Config) ActivityMailEnabled() bool {
	return c.AMQPURL != "" && c.ActivityEmail != "" && c.MailUser != ""
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt retrieves an environment variable as an integer or returns a default value
func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	if value, err := time.ParseDuration(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsList(key string, defaultValue []string) []string {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	var out []string
	for _, v := range strings.Split(valueStr, ",") {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}

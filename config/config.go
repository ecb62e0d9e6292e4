package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port        string
	Environment string
	ServiceName string
	// Contact backend. Fixed for the lifetime of the process.
	ContactAPIBaseURL string
	FrontendURL       string
	AllowedOrigins    []string
	// Redis/Upstash Configuration (rate limiting store)
	UpstashRedisURL      string
	UpstashRedisPassword string
	// Rate Limiting Configuration
	RateLimitWindowSeconds    int
	RateLimitContactThreshold int
	RateLimitGlobalThreshold  int
	// Form sessions
	FormSessionTTLMinutes int
	FormSessionMax        int
	AuditLogEnabled       bool
}

func LoadConfig() (*Config, error) {
	// Only effective locally; in production the file is usually absent
	_ = godotenv.Load()

	frontendURL := strings.TrimRight(getEnv("FRONTEND_URL", "http://localhost:3000"), "/")

	cfg := &Config{
		Port:              getEnv("PORT", "8080"),
		Environment:       getEnv("APP_ENV", environmentFromGinMode()),
		ServiceName:       getEnv("SERVICE_NAME", "agentic-landing-site"),
		ContactAPIBaseURL: contactAPIBaseURL(),
		FrontendURL:       frontendURL,
		AllowedOrigins:    getEnvList("ALLOWED_ORIGINS", []string{frontendURL}),
		// Redis/Upstash Configuration
		UpstashRedisURL:      getEnv("UPSTASH_REDIS_URL", ""),
		UpstashRedisPassword: getEnv("UPSTASH_REDIS_PASSWORD", ""),
		// Rate Limiting Configuration (with sensible defaults)
		RateLimitWindowSeconds:    getEnvInt("RATE_LIMIT_WINDOW_SECONDS", 60),    // 1 minute window
		RateLimitContactThreshold: getEnvInt("RATE_LIMIT_CONTACT_THRESHOLD", 5),  // 5 submits per window
		RateLimitGlobalThreshold:  getEnvInt("RATE_LIMIT_GLOBAL_THRESHOLD", 100), // 100 requests per window
		// Form sessions
		FormSessionTTLMinutes: getEnvInt("FORM_SESSION_TTL_MINUTES", 30),
		FormSessionMax:        getEnvInt("FORM_SESSION_MAX", 10000),
		AuditLogEnabled:       getEnvBool("AUDIT_LOG_ENABLED", true),
	}

	if cfg.ContactAPIBaseURL == "" {
		log.Println("WARNING: CONTACT_API_BASE_URL is missing. Contact submissions will fail.")
	}

	if cfg.UpstashRedisURL == "" {
		log.Println("WARNING: UPSTASH_REDIS_URL not configured. Rate limiting will use in-memory fallback.")
	}

	return cfg, nil
}

// LoadContactAPIBaseURL reads only the contact backend base URL (used by the CLI)
func LoadContactAPIBaseURL() string {
	_ = godotenv.Load()
	return contactAPIBaseURL()
}

// contactAPIBaseURL strips the trailing slash so the API path does not get a double slash
func contactAPIBaseURL() string {
	return strings.TrimRight(getEnv("CONTACT_API_BASE_URL", getEnv("BASE_URL", "")), "/")
}

// RateLimitWindow returns the window as a duration
func (c *Config) RateLimitWindow() time.Duration {
	return time.Duration(c.RateLimitWindowSeconds) * time.Second
}

// FormSessionTTL returns the idle lifetime of a form session
func (c *Config) FormSessionTTL() time.Duration {
	return time.Duration(c.FormSessionTTLMinutes) * time.Minute
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

// getEnvInt returns an integer environment variable or fallback if not set/invalid
func getEnvInt(key string, fallback int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return fallback
}

// getEnvBool returns a boolean environment variable or fallback if not set/invalid
func getEnvBool(key string, fallback bool) bool {
	if value, exists := os.LookupEnv(key); exists {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return fallback
}

// getEnvList splits a comma separated variable, dropping empty entries and trailing slashes
func getEnvList(key string, fallback []string) []string {
	value, exists := os.LookupEnv(key)
	if !exists {
		return fallback
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		part = strings.TrimRight(strings.TrimSpace(part), "/")
		if part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}

func environmentFromGinMode() string {
	if os.Getenv("GIN_MODE") == "release" {
		return "production"
	}
	return "development"
}

package config

import (
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	// MinJWTSecretLength is the minimum required length for the token secret in production
	MinJWTSecretLength = 32
)

type Config struct {
	ServerPort  string
	Environment string
	// Database
	DBDriver    string // "sqlite" or "postgres"
	DBPath      string
	DatabaseURL string
	// Auth
	JWTSecret    string
	ServiceToken string // Bearer token used by background jobs against sibling services
	// Sibling services
	EmployeesServiceURL  string
	BusinessServiceURL   string
	UsersServiceURL      string
	ParametersServiceURL string
	UpstreamTimeout      time.Duration
	// Email (Resend)
	ResendAPIKey  string
	EmailFrom     string
	EmailFromName string
	EmailTestMode bool // When true, emails are logged instead of sent
	// Other
	AllowedOrigins []string
	ReminderCron   string
	Timezone       string
}

func Load() *Config {
	// Load .env file (ignore error if not present - use system env vars)
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	environment := getEnv("ENVIRONMENT", "development")
	jwtSecret := getEnv("JWT_SECRET", "")
	ValidateJWTSecret(jwtSecret, environment)

	return &Config{
		ServerPort:           getEnv("SERVER_PORT", "8080"),
		Environment:          environment,
		DBDriver:             getEnv("DB_DRIVER", "sqlite"),
		DBPath:               getEnv("DB_PATH", "db/social_cases.db"),
		DatabaseURL:          getEnv("DATABASE_URL", ""),
		JWTSecret:            jwtSecret,
		ServiceToken:         getEnv("SERVICE_TOKEN", ""),
		EmployeesServiceURL:  getEnv("EMPLOYEES_SERVICE_URL", "http://localhost:5001/api/v1"),
		BusinessServiceURL:   getEnv("BUSINESS_SERVICE_URL", "http://localhost:5002/api/v1"),
		UsersServiceURL:      getEnv("USERS_SERVICE_URL", "http://localhost:5003/api/v1"),
		ParametersServiceURL: getEnv("PARAMETERS_SERVICE_URL", "http://localhost:5004/api/v1"),
		UpstreamTimeout:      getEnvDuration("UPSTREAM_TIMEOUT", 30*time.Second),
		ResendAPIKey:         getEnv("RESEND_API_KEY", ""),
		EmailFrom:            getEnv("EMAIL_FROM", "noreply@casos-sociales.cl"),
		EmailFromName:        getEnv("EMAIL_FROM_NAME", "Casos Sociales"),
		EmailTestMode:        getEnvBool("EMAIL_TEST_MODE", true), // Default true for safety
		AllowedOrigins:       strings.Split(getEnv("ALLOWED_ORIGINS", "*"), ","),
		ReminderCron:         getEnv("REMINDER_CRON", "0 7 * * *"),
		Timezone:             getEnv("TIMEZONE", "America/Santiago"),
	}
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	// Accept common boolean representations
	switch strings.ToLower(value) {
	case "true", "1", "yes", "on":
		return true
	case "false", "0", "no", "off":
		return false
	default:
		return defaultValue
	}
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(value)
	if err != nil || d <= 0 {
		log.Printf("[WARNING] Invalid duration for %s (%q), using %s", key, value, defaultValue)
		return defaultValue
	}
	return d
}

// ValidateJWTSecret checks the bearer token secret.
// In production it must be at least 32 bytes and not a known insecure default.
func ValidateJWTSecret(secret string, environment string) {
	insecureDefaults := []string{
		"change-me",
		"secret",
		"development",
		"test",
		"",
	}

	for _, insecure := range insecureDefaults {
		if strings.EqualFold(secret, insecure) {
			if environment == "production" {
				log.Fatal("[CRITICAL] JWT_SECRET is empty or set to an insecure default value")
			}
			log.Printf("[WARNING] JWT_SECRET is empty or insecure. This is acceptable only in development.")
			return
		}
	}

	if environment == "production" && len(secret) < MinJWTSecretLength {
		log.Fatalf("[CRITICAL] JWT_SECRET must be at least %d characters in production (current: %d)", MinJWTSecretLength, len(secret))
	}
}

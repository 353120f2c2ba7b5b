package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	Port string

	DBUser                 string
	DBPass                 string
	DBName                 string
	InstanceConnectionName string
	UseMemoryStore         bool

	SendGridAPIKey string
	EmailSender    string

	JWTKey      string
	DisableAuth bool

	WebhookToken             string
	DisableWebhookValidation bool
	Environment              string

	DefaultPropertyID int64
	DefaultTotalRooms int
}

// AppConfig is a global variable to access configuration
var AppConfig *Config

// LoadConfig initializes configuration from environment variables or defaults
func LoadConfig() {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found. Using system environment variables.")
	}

	AppConfig = &Config{
		Port: getEnv("PORT", "8080"),

		DBUser:                 getEnv("DB_USER", "postgres"),
		DBPass:                 getEnv("DB_PASS", ""),
		DBName:                 getEnv("DB_NAME", "hk_miami"),
		InstanceConnectionName: getEnv("INSTANCE_CONNECTION_NAME", ""),
		UseMemoryStore:         getEnvBool("USE_MEMORY_STORE", false),

		SendGridAPIKey: getEnv("SENDGRID_API_KEY", ""),
		EmailSender:    getEnv("EMAIL_SENDER", "me.shovon@gmail.com"),

		JWTKey:      getEnv("JWT_SECRET_KEY", "defaultSecret"),
		DisableAuth: getEnvBool("DISABLE_AUTH", false),

		WebhookToken:             getEnv("WEBHOOK_TOKEN", ""),
		DisableWebhookValidation: getEnvBool("DISABLE_WEBHOOK_VALIDATION", false),
		Environment:              getEnv("ENVIRONMENT", "development"),

		DefaultPropertyID: getEnvInt64("DEFAULT_PROPERTY_ID", 279646),
		DefaultTotalRooms: getEnvInt("DEFAULT_TOTAL_ROOMS", 45),
	}

	if AppConfig.JWTKey == "defaultSecret" {
		log.Println("Warning: Using default JWT_SECRET_KEY. Update it in your environment.")
	}
	if AppConfig.SendGridAPIKey == "" {
		log.Println("Warning: SENDGRID_API_KEY not set - OTP emails will fail to send.")
	}
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// getEnvInt retrieves an environment variable as an integer or returns the default value
func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	intValue, err := strconv.Atoi(value)
	if err != nil {
		log.Printf("Error converting environment variable %s to int: %v", key, err)
		return defaultValue
	}
	return intValue
}

func getEnvInt64(key string, defaultValue int64) int64 {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	intValue, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		log.Printf("Error converting environment variable %s to int64: %v", key, err)
		return defaultValue
	}
	return intValue
}

func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value == "true" || value == "1"
}

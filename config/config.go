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

	DBHost     string
	DBUser     string
	DBPassword string
	DBName     string
	DBPort     string

	// Comma-separated list of emails allowed to use admin operations.
	AdminEmails string

	// Shared secret used to verify tokens minted by the identity provider.
	IdentityJWTSecret string

	CloudinaryCloudName string
	CloudinaryAPIKey    string
	CloudinaryAPISecret string

	EmailSender   string
	EmailPassword string // SMTP password

	// Set to "off" to disable the daily stale-issue digest.
	StaleDigest string

	PageSize int
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
		Port: getEnv("PORT", "3000"),

		DBHost:     getEnv("DB_HOST", "localhost"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", ""),
		DBName:     getEnv("DB_NAME", "civicvoice"),
		DBPort:     getEnv("DB_PORT", "5432"),

		AdminEmails: getEnv("ADMIN_EMAILS", ""),

		IdentityJWTSecret: getEnv("IDENTITY_JWT_SECRET", "defaultSecret"),

		CloudinaryCloudName: getEnv("CLOUDINARY_CLOUD_NAME", ""),
		CloudinaryAPIKey:    getEnv("CLOUDINARY_API_KEY", ""),
		CloudinaryAPISecret: getEnv("CLOUDINARY_API_SECRET", ""),

		EmailSender:   getEnv("EMAIL_SENDER", ""),
		EmailPassword: getEnv("EMAIL_PASSWORD", ""),

		StaleDigest: getEnv("STALE_DIGEST_CRON", "on"),

		PageSize: getEnvInt("PAGE_SIZE", 10),
	}

	if AppConfig.IdentityJWTSecret == "defaultSecret" {
		log.Println("Warning: Using default IDENTITY_JWT_SECRET. Update it in your environment.")
	}
	if AppConfig.AdminEmails == "" {
		log.Println("Warning: ADMIN_EMAILS is empty. No one will pass the admin check.")
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

// getEnvInt retrieves an environment variable as an integer or returns the default integer value
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

package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	Port      string
	JWTKey    string
	SaltRound int

	DBHost     string
	DBUser     string
	DBPassword string
	DBName     string
	DBPort     string

	ClientURL  string
	CRMSyncURL string

	EmailSender string
	Password    string // SMTP App Password

	AgoraAppID       string
	AgoraCertificate string
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
		Port:      getEnv("PORT", "3000"),
		JWTKey:    os.Getenv("JWT_SECRET"),
		SaltRound: getEnvInt("SALT_ROUND", 10),

		DBHost:     getEnv("DB_HOST", "localhost"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", ""),
		DBName:     getEnv("DB_NAME", "saathi"),
		DBPort:     getEnv("DB_PORT", "5432"),

		ClientURL:  getEnv("CLIENT_URL", "http://localhost:5173"),
		CRMSyncURL: getEnv("CRM_SYNC_URL", ""),

		EmailSender: getEnv("EMAIL_SENDER", ""),
		Password:    getEnv("PASSWORD", ""),

		AgoraAppID:       getEnv("AGORA_APP_ID", ""),
		AgoraCertificate: getEnv("AGORA_APP_CERTIFICATE", ""),
	}

	// A missing signing key must never silently fall back to a baked-in default
	if AppConfig.JWTKey == "" {
		log.Fatal("JWT_SECRET is not set. Refusing to start with an empty signing key.")
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

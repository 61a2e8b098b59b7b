package config

import (
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	// Server Settings
	AppPort string
	HOST    string

	// Database Settings
	DBHost     string
	DBPort     string
	DBName     string
	DBUser     string
	DBPassword string
	DBReset    bool

	// JWT Settings
	JWTSecret     string
	JWTExpiration time.Duration

	// Upload Settings
	UploadDir string
	S3Bucket  string
	AWSRegion string

	// CORS Settings
	CORSAllowOrigins []string
	CORSAllowMethods []string
	CORSAllowHeaders []string
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func LoadConfig() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	expiration, err := time.ParseDuration(getEnv("JWT_EXPIRES_IN", "168h"))
	if err != nil {
		log.Printf("Invalid JWT_EXPIRES_IN, using 7 days: %v", err)
		expiration = 7 * 24 * time.Hour
	}

	config := &Config{
		AppPort: getEnv("PORT", "5000"),
		HOST:    os.Getenv("HOST"),

		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "3306"),
		DBName:     getEnv("DB_NAME", "unitrade"),
		DBUser:     getEnv("DB_USER", "root"),
		DBPassword: os.Getenv("DB_PASSWORD"),
		DBReset:    os.Getenv("DB_RESET") == "true",

		JWTSecret:     getEnv("JWT_SECRET", "secret"),
		JWTExpiration: expiration,

		UploadDir: getEnv("UPLOAD_DIR", "./uploads"),
		S3Bucket:  os.Getenv("S3_BUCKET"),
		AWSRegion: getEnv("AWS_REGION", "us-east-1"),

		CORSAllowOrigins: strings.Split(getEnv("CORS_ALLOW_ORIGINS", "*"), ","),
		CORSAllowMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		CORSAllowHeaders: []string{"Origin", "Content-Type", "Accept", "Authorization"},
	}

	if config.JWTSecret == "secret" {
		log.Println("⚠️  JWT_SECRET is not set, using an insecure default")
	}

	return config
}

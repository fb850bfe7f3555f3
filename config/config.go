package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	JWTSecret  string
	Port       string
	AppEnv     string
	// reCAPTCHA v3 settings
	RecaptchaSecretKey string
	RecaptchaVerifyURL string
	// File upload settings
	UploadDir     string
	UploadBaseURL string
	// Redis settings
	RedisAddr     string
	RedisPassword string
}

func LoadConfig() *Config {
	err := godotenv.Load()
	if err != nil {
		log.Println("No .env file found, using environment variables")
	}
	return &Config{
		DBHost:             os.Getenv("DB_HOST"),
		DBPort:             os.Getenv("DB_PORT"),
		DBUser:             os.Getenv("DB_USER"),
		DBPassword:         os.Getenv("DB_PASSWORD"),
		DBName:             os.Getenv("DB_NAME"),
		JWTSecret:          os.Getenv("JWT_SECRET"),
		Port:               getenvOrDefault("PORT", "8080"),
		AppEnv:             getenvOrDefault("APP_ENV", "development"),
		RecaptchaSecretKey: os.Getenv("RECAPTCHA_SECRET_KEY"),
		RecaptchaVerifyURL: getenvOrDefault("RECAPTCHA_VERIFY_URL", "https://www.google.com/recaptcha/api/siteverify"),
		UploadDir:          getenvOrDefault("UPLOAD_DIR", "uploads"),
		UploadBaseURL:      getenvOrDefault("UPLOAD_BASE_URL", "/uploads"),
		RedisAddr:          getenvOrDefault("REDIS_ADDR", "localhost:6379"),
		RedisPassword:      os.Getenv("REDIS_PASSWORD"),
	}
}

// getenvOrDefault returns the environment variable value if set, otherwise returns def
func getenvOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

package config

import (
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	Port string

	MongoURI string
	MongoDB  string

	TokenSecret      string
	PaymentSecretKey string

	MailSenderName     string
	MailSenderAddress  string
	MailSenderPassword string
	SMTPHost           string
	SMTPPort           string
	AdminAlertAddress  string

	MinioEndpoint       string
	MinioAccessKey      string
	MinioSecretKey      string
	MinioPublicEndpoint string

	CORSOrigins string
	LogLevel    string
}

// Load reads configuration from the environment. A .env file in the working
// directory is applied first when present, without overriding existing variables.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		Port: getEnv("PORT", "8080"),

		MongoURI: getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDB:  getEnv("MONGO_DB", "cyco"),

		TokenSecret:      getEnv("ACCESS_TOKEN_SECRET", ""),
		PaymentSecretKey: getEnv("PAYMENT_SECRET_KEY", ""),

		MailSenderName:     getEnv("MAIL_SENDER_NAME", "CYCO"),
		MailSenderAddress:  getEnv("MAIL_SENDER_ADDRESS", ""),
		MailSenderPassword: getEnv("MAIL_SENDER_PASSWORD", ""),
		SMTPHost:           getEnv("SMTP_HOST", "smtp.gmail.com"),
		SMTPPort:           getEnv("SMTP_PORT", "587"),
		AdminAlertAddress:  getEnv("ADMIN_ALERT_ADDRESS", ""),

		MinioEndpoint:       getEnv("MINIO_ENDPOINT", "localhost:9000"),
		MinioAccessKey:      getEnv("MINIO_ACCESS_KEY", ""),
		MinioSecretKey:      getEnv("MINIO_SECRET_KEY", ""),
		MinioPublicEndpoint: getEnv("MINIO_PUBLIC_ENDPOINT", "http://localhost:9000"),

		CORSOrigins: getEnv("CORS_ORIGINS", "http://localhost:5173"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

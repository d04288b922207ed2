package configs

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Config is loaded once at process start and passed into components at
// construction time; nothing reads the environment after that.
type Config struct {
	Port           string
	DataDir        string
	AllowedOrigins []string

	JWTSecret   string
	AdminEmails []string

	DefaultBorrowDays int

	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	EmailFrom    string

	OCRAPIKey   string
	OCREndpoint string

	CloudinaryCloudName string
	CloudinaryAPIKey    string
	CloudinaryAPISecret string
}

func LoadConfig() Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	smtpPort := 465
	if val := os.Getenv("SMTP_PORT"); val != "" {
		if _, err := fmt.Sscanf(val, "%d", &smtpPort); err != nil {
			log.Fatalf("Invalid SMTP_PORT: %v", err)
		}
	}

	borrowDays := 7
	if val := os.Getenv("DEFAULT_BORROW_DAYS"); val != "" {
		if _, err := fmt.Sscanf(val, "%d", &borrowDays); err != nil {
			log.Fatalf("Invalid DEFAULT_BORROW_DAYS: %v", err)
		}
	}

	return Config{
		Port:           envOr("PORT", "5001"),
		DataDir:        envOr("DATA_DIR", "data"),
		AllowedOrigins: splitList(envOr("ALLOWED_ORIGINS", "http://localhost:3000,http://127.0.0.1:3000")),

		JWTSecret:   os.Getenv("JWT_SECRET"),
		AdminEmails: splitList(envOr("ADMIN_EMAILS", "admin@libranct.us.to")),

		DefaultBorrowDays: borrowDays,

		SMTPHost:     envOr("SMTP_HOST", "smtp.gmail.com"),
		SMTPPort:     smtpPort,
		SMTPUsername: os.Getenv("EMAIL_ADDRESS"),
		SMTPPassword: os.Getenv("EMAIL_PASSWORD"),
		EmailFrom:    os.Getenv("EMAIL_ADDRESS"),

		OCRAPIKey:   os.Getenv("OCR_SPACE_API_KEY"),
		OCREndpoint: os.Getenv("OCR_SPACE_URL"),

		CloudinaryCloudName: os.Getenv("CLOUDINARY_CLOUD_NAME"),
		CloudinaryAPIKey:    os.Getenv("CLOUDINARY_API_KEY"),
		CloudinaryAPISecret: os.Getenv("CLOUDINARY_API_SECRET"),
	}
}

func envOr(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func splitList(val string) []string {
	parts := strings.Split(val, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

package config

import (
	"database/sql"
	"fmt"
	"log"
	"os"
	"strconv"

	_ "github.com/lib/pq"
)

type Config struct {
	DB           *sql.DB
	SMTP         SMTPConfig
	AI           AIConfig
	S3           S3Config
	DefaultScope string
}

type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

type AIConfig struct {
	APIKey string
	Model  string
}

type S3Config struct {
	Region    string
	Bucket    string
	AccessKey string
	SecretKey string
}

var AppConfig *Config

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getenvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func InitDB() {
	psqlInfo := os.Getenv("DATABASE_URL")
	if psqlInfo == "" {
		psqlInfo = fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
			getenv("DB_HOST", "localhost"),
			getenv("DB_PORT", "5432"),
			getenv("DB_USER", "postgres"),
			os.Getenv("DB_PASSWORD"),
			getenv("DB_NAME", "funded"),
			getenv("DB_SSLMODE", "disable"),
		)
	}

	db, err := sql.Open("postgres", psqlInfo)
	if err != nil {
		log.Fatal("Failed to open database connection:", err)
	}

	// Set connection pool settings
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)

	log.Println("Testing database connection...")
	if err = db.Ping(); err != nil {
		log.Fatal("Cannot establish database connection: ", err)
	}

	AppConfig = &Config{
		DB: db,
		SMTP: SMTPConfig{
			Host:     getenv("SMTP_HOST", "smtp.gmail.com"),
			Port:     getenvInt("SMTP_PORT", 587),
			Username: os.Getenv("GMAIL_EMAIL"),
			Password: os.Getenv("GMAIL_APP_PASSWORD"),
			From:     getenv("SMTP_FROM", os.Getenv("GMAIL_EMAIL")),
		},
		AI: AIConfig{
			APIKey: os.Getenv("GEMINI_API_KEY"),
			Model:  getenv("GEMINI_MODEL", "gemini-2.0-flash"),
		},
		S3: S3Config{
			Region:    getenv("AWS_REGION", "ap-south-1"),
			Bucket:    os.Getenv("AWS_S3_BUCKET"),
			AccessKey: os.Getenv("AWS_ACCESS_KEY_ID"),
			SecretKey: os.Getenv("AWS_SECRET_ACCESS_KEY"),
		},
		DefaultScope: getenv("DEFAULT_SCOPE", "default"),
	}
	log.Println("Database connected successfully")
	log.Println("Email configuration initialized")
}

func GetDB() *sql.DB {
	return AppConfig.DB
}

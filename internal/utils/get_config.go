package utils

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"
)

type Config struct {
	// Application
	AppPort string `yaml:"APP_PORT" env:"APP_PORT"`
	AppURL  string `yaml:"APP_URL" env:"APP_URL"`

	// Database configuration
	DBUser     string `yaml:"DB_USER" env:"DB_USER"`
	DBName     string `yaml:"DB_NAME" env:"DB_NAME"`
	DBPassword string `yaml:"DB_PASSWORD" env:"DB_PASSWORD"`
	DBPort     string `yaml:"DB_PORT" env:"DB_PORT"`
	DBHost     string `yaml:"DB_HOST" env:"DB_HOST"`
	DBSSLMode  string `yaml:"DB_SSLMODE" env:"DB_SSLMODE"`

	// JWT
	JWTSecret     string `yaml:"JWT_SECRET" env:"JWT_SECRET"`
	JWTTTLMinutes int    `yaml:"JWT_TTL_MINUTES" env:"JWT_TTL_MINUTES"`

	// Logging
	LogLevel  string `yaml:"LOG_LEVEL" env:"LOG_LEVEL"`
	LogFormat string `yaml:"LOG_FORMAT" env:"LOG_FORMAT"`
	LogFile   string `yaml:"LOG_FILE" env:"LOG_FILE"`

	// HTTP limits
	RateLimitMax           int      `yaml:"RATE_LIMIT_MAX" env:"RATE_LIMIT_MAX"`
	RateLimitWindowSeconds int      `yaml:"RATE_LIMIT_WINDOW_SECONDS" env:"RATE_LIMIT_WINDOW_SECONDS"`
	CORSOrigins            []string `yaml:"CORS_ORIGINS" env:"CORS_ORIGINS" envSeparator:","`

	// Mailing configuration
	SMTPHost         string `yaml:"SMTP_HOST" env:"SMTP_HOST"`
	SMTPPort         string `yaml:"SMTP_PORT" env:"SMTP_PORT"`
	SMTPSenderName   string `yaml:"SMTP_SENDER_NAME" env:"SMTP_SENDER_NAME"`
	SMTPAuthEmail    string `yaml:"SMTP_AUTH_EMAIL" env:"SMTP_AUTH_EMAIL"`
	SMTPAuthPassword string `yaml:"SMTP_AUTH_PASSWORD" env:"SMTP_AUTH_PASSWORD"`

	// AWS S3 configuration
	AWSS3Bucket   string `yaml:"AWS_S3_BUCKET" env:"AWS_S3_BUCKET"`
	AWSS3Region   string `yaml:"AWS_S3_REGION" env:"AWS_S3_REGION"`
	AWSAccessKey  string `yaml:"AWS_ACCESS_KEY" env:"AWS_ACCESS_KEY"`
	AWSSecretKey  string `yaml:"AWS_SECRET_KEY" env:"AWS_SECRET_KEY"`
	AWSS3Endpoint string `yaml:"AWS_S3_ENDPOINT" env:"AWS_S3_ENDPOINT"`
}

var (
	config Config
	mu     sync.RWMutex
)

// LoadConfig reads config.yaml, then .env, then the process environment.
// Later sources win. Missing files are not an error.
func LoadConfig(path string) (*Config, error) {
	cfg := Config{}

	file, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(file, &cfg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	case !errors.Is(err, fs.ErrNotExist):
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(); err != nil {
			return nil, fmt.Errorf("load .env: %w", err)
		}
	}

	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}

	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	SetConfig(cfg)
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.AppPort == "" {
		c.AppPort = "8080"
	}
	if c.AppURL == "" {
		c.AppURL = "http://localhost:" + c.AppPort
	}
	c.AppURL = strings.TrimRight(c.AppURL, "/")
	if c.DBPort == "" {
		c.DBPort = "5432"
	}
	if c.DBSSLMode == "" {
		c.DBSSLMode = "disable"
	}
	if c.JWTTTLMinutes <= 0 {
		c.JWTTTLMinutes = 120
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if c.LogFormat == "" {
		c.LogFormat = "json"
	}
	if c.RateLimitMax <= 0 {
		c.RateLimitMax = 20
	}
	if c.RateLimitWindowSeconds <= 0 {
		c.RateLimitWindowSeconds = 1
	}
}

func (c *Config) Validate() error {
	if c.JWTSecret == "" {
		return errors.New("JWT_SECRET must be set")
	}
	if _, err := strconv.Atoi(c.AppPort); err != nil {
		return fmt.Errorf("APP_PORT must be numeric: %w", err)
	}
	return nil
}

// SetConfig replaces the process-wide config read by GetConfig.
func SetConfig(cfg Config) {
	mu.Lock()
	defer mu.Unlock()
	config = cfg
}

func GetConfig(key string) string {
	mu.RLock()
	defer mu.RUnlock()

	switch key {
	case "APP_PORT":
		return config.AppPort
	case "APP_URL":
		return config.AppURL
	case "DB_USER":
		return config.DBUser
	case "DB_NAME":
		return config.DBName
	case "DB_PASSWORD":
		return config.DBPassword
	case "DB_PORT":
		return config.DBPort
	case "DB_HOST":
		return config.DBHost
	case "DB_SSLMODE":
		return config.DBSSLMode
	case "JWT_SECRET":
		return config.JWTSecret
	case "LOG_LEVEL":
		return config.LogLevel
	case "LOG_FORMAT":
		return config.LogFormat
	case "LOG_FILE":
		return config.LogFile
	case "SMTP_HOST":
		return config.SMTPHost
	case "SMTP_PORT":
		return config.SMTPPort
	case "SMTP_SENDER_NAME":
		return config.SMTPSenderName
	case "SMTP_AUTH_EMAIL":
		return config.SMTPAuthEmail
	case "SMTP_AUTH_PASSWORD":
		return config.SMTPAuthPassword
	case "AWS_S3_BUCKET":
		return config.AWSS3Bucket
	case "AWS_S3_REGION":
		return config.AWSS3Region
	case "AWS_ACCESS_KEY":
		return config.AWSAccessKey
	case "AWS_SECRET_KEY":
		return config.AWSSecretKey
	case "AWS_S3_ENDPOINT":
		return config.AWSS3Endpoint
	default:
		return ""
	}
}

package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config represents the application configuration
type Config struct {
	Server       ServerConfig       `json:"server"`
	Database     DatabaseConfig     `json:"database"`
	Security     SecurityConfig     `json:"security"`
	Uploads      UploadsConfig      `json:"uploads"`
	Verification VerificationConfig `json:"verification"`
	SMS          SMSConfig          `json:"sms"`
	Logging      LoggingConfig      `json:"logging"`
}

// ServerConfig represents server configuration
type ServerConfig struct {
	Host         string        `json:"host"`
	Port         int           `json:"port"`
	ReadTimeout  time.Duration `json:"read_timeout"`
	WriteTimeout time.Duration `json:"write_timeout"`
}

// DatabaseConfig represents database configuration
type DatabaseConfig struct {
	Host           string `json:"host"`
	Port           int    `json:"port"`
	User           string `json:"user"`
	Password       string `json:"password"`
	DBName         string `json:"db_name"`
	SSLMode        string `json:"ssl_mode"`
	MaxConnections int    `json:"max_connections"`
	MaxIdleConns   int    `json:"max_idle_conns"`
}

// SecurityConfig
type SecurityConfig struct {
	JWTSecret          string `json:"jwt_secret"`
	TokenExpiryMinutes int    `json:"token_expiry_minutes"`
}

// UploadsConfig controls where case documents land
type UploadsConfig struct {
	Dir      string `json:"dir"`
	S3Bucket string `json:"s3_bucket"`
	S3Region string `json:"s3_region"`
}

// VerificationConfig carries document-verification policy
type VerificationConfig struct {
	// AllowPartialAadhaar enables the last-4-digit identifier tolerance.
	// A fraud-protection tradeoff; keep off in production.
	AllowPartialAadhaar     bool   `json:"allow_partial_aadhaar"`
	TransliterationEndpoint string `json:"transliteration_endpoint"`
}

// SMSConfig for the notification provider; simulate mode when empty
type SMSConfig struct {
	AccountSID          string `json:"account_sid"`
	AuthToken           string `json:"auth_token"`
	MessagingServiceSID string `json:"messaging_service_sid"`
}

// LoggingConfig
type LoggingConfig struct {
	Level string `json:"level"`
}

// LoadConfig loads configuration from file and environment variables
func LoadConfig(configPath string) (*Config, error) {
	// .env is optional; env vars win either way
	_ = godotenv.Load()

	config := &Config{
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: 8080,
		},
		Database: DatabaseConfig{
			Host:           "localhost",
			Port:           5432,
			User:           os.Getenv("USER"),
			DBName:         "fairclaim",
			SSLMode:        "disable",
			MaxConnections: 25,
			MaxIdleConns:   5,
		},
		Security: SecurityConfig{
			TokenExpiryMinutes: 1440,
		},
		Uploads: UploadsConfig{
			Dir: "uploads",
		},
	}

	// Load from file if exists
	if configPath != "" {
		if data, err := os.ReadFile(configPath); err == nil {
			if err := json.Unmarshal(data, config); err != nil {
				return nil, fmt.Errorf("failed to parse config file: %w", err)
			}
		}
	}

	overrideWithEnv(config)

	if config.Security.JWTSecret == "" {
		config.Security.JWTSecret = "change-this-in-production"
	}

	return config, nil
}

func overrideWithEnv(config *Config) {
	if host := os.Getenv("SERVER_HOST"); host != "" {
		config.Server.Host = host
	}
	if port := os.Getenv("SERVER_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			config.Server.Port = p
		}
	}
	if dbHost := os.Getenv("DATABASE_HOST"); dbHost != "" {
		config.Database.Host = dbHost
	}
	if dbPort := os.Getenv("DATABASE_PORT"); dbPort != "" {
		if p, err := strconv.Atoi(dbPort); err == nil {
			config.Database.Port = p
		}
	}
	if dbUser := os.Getenv("DATABASE_USER"); dbUser != "" {
		config.Database.User = dbUser
	}
	if dbPass := os.Getenv("DATABASE_PASSWORD"); dbPass != "" {
		config.Database.Password = dbPass
	}
	if dbName := os.Getenv("DATABASE_DBNAME"); dbName != "" {
		config.Database.DBName = dbName
	}
	if secret := os.Getenv("SECRET_KEY"); secret != "" {
		config.Security.JWTSecret = secret
	}
	if expiry := os.Getenv("ACCESS_TOKEN_EXPIRE_MINUTES"); expiry != "" {
		if m, err := strconv.Atoi(expiry); err == nil {
			config.Security.TokenExpiryMinutes = m
		}
	}
	if dir := os.Getenv("VERIFY_UPLOAD_DIR"); dir != "" {
		config.Uploads.Dir = dir
	}
	if bucket := os.Getenv("UPLOADS_S3_BUCKET"); bucket != "" {
		config.Uploads.S3Bucket = bucket
	}
	if region := os.Getenv("UPLOADS_S3_REGION"); region != "" {
		config.Uploads.S3Region = region
	}
	if v := os.Getenv("VERIFY_ALLOW_PARTIAL_AADHAAR"); v != "" {
		config.Verification.AllowPartialAadhaar = v == "1" || v == "true"
	}
	if ep := os.Getenv("TRANSLITERATION_ENDPOINT"); ep != "" {
		config.Verification.TransliterationEndpoint = ep
	}
	if sid := os.Getenv("TWILIO_ACCOUNT_SID"); sid != "" {
		config.SMS.AccountSID = sid
	}
	if token := os.Getenv("TWILIO_AUTH_TOKEN"); token != "" {
		config.SMS.AuthToken = token
	}
	if msid := os.Getenv("TWILIO_MESSAGING_SERVICE_SID"); msid != "" {
		config.SMS.MessagingServiceSID = msid
	}
}

// GetDatabaseURL returns the database connection string
func (c *DatabaseConfig) GetDatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.User, c.Password, c.Host, c.Port, c.DBName, c.SSLMode)
}

// GetServerAddr returns the server address
func (c *ServerConfig) GetServerAddr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

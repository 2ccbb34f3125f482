package config

import (
	"os"      // For environment variables
	"strconv" // For string to int conversion
	"strings" // For splitting list values

	"github.com/joho/godotenv" // For loading .env files
)

// Config holds the application configuration
type Config struct {
	AppPort     string   // Application port
	DBUser      string   // Database user
	DBPassword  string   // Database password
	DBHost      string   // Database host; empty selects the SQLite fallback
	DBPort      string   // Database port
	DBName      string   // Database name
	SQLitePath  string   // SQLite file used when no MySQL host is configured
	JWTSecret   string   // JWT secret key
	UsersFile   string   // Path of the JSON identity store
	RedisAddr   string   // Redis server address
	RedisPass   string   // Redis password
	RedisDB     int      // Redis database number
	SMTPHost    string   // SMTP server host
	SMTPPort    int      // SMTP server port
	SMTPUser    string   // SMTP username
	SMTPPass    string   // SMTP password
	SMTPFrom    string   // Sender address for outgoing mail
	CORSOrigins []string // Allowed CORS origins for the frontend
	IsProd      bool     // Is production environment
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	_ = godotenv.Load() // Load .env file if present
	redisDB, _ := strconv.Atoi(os.Getenv("REDIS_DB"))
	smtpPort, _ := strconv.Atoi(os.Getenv("SMTP_PORT"))
	if smtpPort == 0 {
		smtpPort = 587 // STARTTLS default
	}
	return &Config{
		AppPort:     getenv("APP_PORT", "5000"),                  // Application port
		DBUser:      os.Getenv("DB_USER"),                        // Database user
		DBPassword:  os.Getenv("DB_PASSWORD"),                    // Database password
		DBHost:      os.Getenv("DB_HOST"),                        // Database host
		DBPort:      getenv("DB_PORT", "3306"),                   // Database port
		DBName:      os.Getenv("DB_NAME"),                        // Database name
		SQLitePath:  getenv("SQLITE_PATH", "udyog_saarthi.db"),   // Zero-config local database
		JWTSecret:   os.Getenv("JWT_SECRET"),                     // JWT secret key
		UsersFile:   getenv("USERS_FILE", "users.json"),          // Identity store path
		RedisAddr:   os.Getenv("REDIS_ADDR"),                     // Redis server address
		RedisPass:   os.Getenv("REDIS_PASS"),                     // Redis password
		RedisDB:     redisDB,                                     // Redis database number
		SMTPHost:    os.Getenv("SMTP_HOST"),                      // SMTP server host
		SMTPPort:    smtpPort,                                    // SMTP server port
		SMTPUser:    os.Getenv("SMTP_USER"),                      // SMTP username
		SMTPPass:    os.Getenv("SMTP_PASS"),                      // SMTP password
		SMTPFrom:    getenv("SMTP_FROM", os.Getenv("SMTP_USER")), // Sender address
		CORSOrigins: splitList(getenv("CORS_ORIGINS", "http://localhost:3000,http://127.0.0.1:3000")),
		IsProd:      os.Getenv("IS_PROD") == "true", // Is production environment
	}
}

// getenv returns the environment value or a default when unset
func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// splitList splits a comma separated env value into trimmed entries
func splitList(v string) []string {
	var out []string
	for _, p := range strings.Split(v, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

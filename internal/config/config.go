package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration.
type Config struct {
	ServerPort string
	GinMode    string
	LogLevel   string
	LogFormat  string

	MongoURI    string
	MongoDBName string
	RedisURL    string

	JWTSecret  string
	BcryptCost int

	// OTP settings. The admin flow historically uses a wider code than the
	// student/faculty flows; both widths are kept configurable.
	OTPTTL         time.Duration
	OTPDigits      int
	AdminOTPDigits int

	// Token lifetimes per issuance path.
	SessionTTL    time.Duration // plain login
	RememberedTTL time.Duration // login with remember-me
	VerifiedTTL   time.Duration // issued after OTP verification / password reset
	AdminTTL      time.Duration

	// CourseCacheTTL bounds staleness of the Redis course-catalog cache.
	CourseCacheTTL time.Duration

	SMTPHost string
	SMTPPort string
	SMTPUser string
	SMTPPass string
	SMTPFrom string

	// AdminEmail/AdminPassword enable the fixed-credential admin OTP login.
	// The flow stays disabled unless both are set.
	AdminEmail    string
	AdminPassword string

	// AllowedOrigins controls HTTP CORS. Empty slice means all origins are
	// permitted (dev default).
	AllowedOrigins []string
}

// Load reads configuration from environment variables with sensible defaults.
// It loads .env file if present but does not fail if missing.
func Load() *Config {
	_ = godotenv.Load() // .env is optional

	return &Config{
		ServerPort: getEnv("SERVER_PORT", "8080"),
		GinMode:    getEnv("GIN_MODE", "debug"),
		LogLevel:   getEnv("LOG_LEVEL", "info"),
		LogFormat:  getEnv("LOG_FORMAT", "pretty"),

		MongoURI:    getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDBName: getEnv("MONGO_DB", "eduport"),
		RedisURL:    getEnv("REDIS_URL", "redis://localhost:6379/0"),

		JWTSecret:  getEnv("JWT_SECRET", "change-this-to-a-secure-random-string"),
		BcryptCost: getEnvInt("BCRYPT_COST", 10),

		OTPTTL:         time.Duration(getEnvInt("OTP_TTL_MINUTES", 10)) * time.Minute,
		OTPDigits:      getEnvInt("OTP_DIGITS", 5),
		AdminOTPDigits: getEnvInt("ADMIN_OTP_DIGITS", 6),

		SessionTTL:    time.Duration(getEnvInt("SESSION_TTL_HOURS", 24)) * time.Hour,
		RememberedTTL: time.Duration(getEnvInt("REMEMBERED_TTL_DAYS", 180)) * 24 * time.Hour,
		VerifiedTTL:   time.Duration(getEnvInt("VERIFIED_TTL_DAYS", 7)) * 24 * time.Hour,
		AdminTTL:      time.Duration(getEnvInt("ADMIN_TTL_HOURS", 1)) * time.Hour,

		CourseCacheTTL: time.Duration(getEnvInt("COURSE_CACHE_TTL_MINUTES", 10)) * time.Minute,

		SMTPHost: getEnv("SMTP_HOST", ""),
		SMTPPort: getEnv("SMTP_PORT", "587"),
		SMTPUser: getEnv("SMTP_USER", ""),
		SMTPPass: getEnv("SMTP_PASS", ""),
		SMTPFrom: getEnv("SMTP_FROM", ""),

		AdminEmail:    getEnv("ADMIN_EMAIL", ""),
		AdminPassword: getEnv("ADMIN_PASSWORD", ""),

		AllowedOrigins: parseOrigins(getEnv("ALLOWED_ORIGINS", "")),
	}
}

// AdminEnabled reports whether the fixed-credential admin login may be used.
func (c *Config) AdminEnabled() bool {
	return c.AdminEmail != "" && c.AdminPassword != ""
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

// parseOrigins splits a comma-separated origins string into a trimmed slice.
// Returns nil (allow-all) if the input is empty.
func parseOrigins(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	return origins
}

package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	CacheDriverRedis  = "redis"
	CacheDriverBadger = "badger"
	CacheDriverNone   = "none"
)

type Config struct {
	AppPort        string
	DbHost         string
	DbPort         string
	DbUser         string
	DbPassword     string
	DbName         string
	DbParams       string
	DbDSN          string
	DbAutoMigrate  bool
	TrustedProxies []string

	CacheDriver string
	RedisURL    string
	BadgerPath  string
	CacheTTL    time.Duration

	JWTSecret    string
	JWTExpiresIn time.Duration

	SMTPHost     string
	SMTPPort     int
	SMTPUser     string
	SMTPPassword string
	SMTPFrom     string
	SMTPUseTLS   bool

	FrontendURL       string
	RateLimitRequests int
	RateLimitWindow   time.Duration
	TranslationFolder string
}

func LoadConfig() *Config {
	_ = godotenv.Load(".env")

	return &Config{
		AppPort:        getEnv("APP_PORT", "8080"),
		DbHost:         getEnv("MYSQL_HOST", "db"),
		DbPort:         getEnv("MYSQL_PORT", "3306"),
		DbUser:         getEnv("MYSQL_USER", "tasktracker"),
		DbPassword:     getEnv("MYSQL_PASSWORD", "tasktracker"),
		DbName:         getEnv("MYSQL_DATABASE", "tasktracker"),
		DbParams:       getEnv("MYSQL_PARAMS", "parseTime=true&multiStatements=true"),
		DbDSN:          os.Getenv("MYSQL_DSN"),
		DbAutoMigrate:  getEnvBool("DB_AUTO_MIGRATE", true),
		TrustedProxies: parseTrustedProxies(os.Getenv("TRUSTED_PROXIES")),

		CacheDriver: strings.ToLower(getEnv("CACHE_DRIVER", CacheDriverRedis)),
		RedisURL:    getEnv("REDIS_URL", "redis://localhost:6379"),
		BadgerPath:  os.Getenv("BADGER_PATH"),
		CacheTTL:    getEnvDuration("CACHE_TTL", 5*time.Minute),

		JWTSecret:    getEnv("JWT_SECRET", "change_me_to_a_strong_secret"),
		JWTExpiresIn: getEnvDuration("JWT_EXPIRES_IN", 7*24*time.Hour),

		SMTPHost:     os.Getenv("SMTP_HOST"),
		SMTPPort:     getEnvInt("SMTP_PORT", 587),
		SMTPUser:     os.Getenv("SMTP_USER"),
		SMTPPassword: os.Getenv("SMTP_PASSWORD"),
		SMTPFrom:     getEnv("SMTP_FROM", "no-reply@tasktracker.local"),
		SMTPUseTLS:   getEnvBool("SMTP_TLS", true),

		FrontendURL:       strings.TrimRight(getEnv("FRONTEND_URL", "http://localhost:3000"), "/"),
		RateLimitRequests: getEnvInt("RATE_LIMIT_REQUESTS", 100),
		RateLimitWindow:   getEnvDuration("RATE_LIMIT_WINDOW", 15*time.Minute),
		TranslationFolder: getEnv("TRANSLATION_FOLDER", "pkg/translator/translation"),
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value, err := strconv.Atoi(strings.TrimSpace(os.Getenv(key)))
	if err != nil {
		return fallback
	}
	return value
}

func getEnvBool(key string, fallback bool) bool {
	value, err := strconv.ParseBool(strings.TrimSpace(os.Getenv(key)))
	if err != nil {
		return fallback
	}
	return value
}

// getEnvDuration accepts Go durations ("15m", "168h") or a bare number of
// seconds.
func getEnvDuration(key string, fallback time.Duration) time.Duration {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}
	if seconds, err := strconv.Atoi(raw); err == nil {
		return time.Duration(seconds) * time.Second
	}
	value, err := time.ParseDuration(raw)
	if err != nil || value <= 0 {
		return fallback
	}
	return value
}

func parseTrustedProxies(value string) []string {
	if strings.TrimSpace(value) == "" {
		return nil
	}

	parts := strings.Split(value, ",")
	proxies := make([]string, 0, len(parts))
	for _, part := range parts {
		proxy := strings.TrimSpace(part)
		if proxy == "" {
			continue
		}
		proxies = append(proxies, proxy)
	}

	if len(proxies) == 0 {
		return nil
	}

	return proxies
}

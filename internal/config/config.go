package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
	EnvTest        = "test"

	StoreMongo  = "mongo"
	StoreMySQL  = "mysql"
	StoreMemory = "memory"
)

type Config struct {
	AppPort         string
	AppEnv          string
	AppName         string
	AppVersion      string
	StoreDriver     string
	MongoURI        string
	MongoDatabase   string
	DbHost          string
	DbPort          string
	DbUser          string
	DbPassword      string
	DbName          string
	DbParams        string
	JWTSecret       string
	JWTExpiresIn    time.Duration
	JWTIssuer       string
	BcryptCost      int
	CorsOrigins     []string
	TrustedProxies  []string
	RedisAddr       string
	RedisPassword   string
	RedisDB         int
	AuthRateLimit   int
	AuthRateWindow  time.Duration
	ShutdownTimeout time.Duration
}

func LoadConfig() *Config {
	_ = godotenv.Load(".env")

	return &Config{
		AppPort:         getEnv("APP_PORT", "5000"),
		AppEnv:          getEnv("APP_ENV", EnvProduction),
		AppName:         getEnv("APP_NAME", "task-manager"),
		AppVersion:      getEnv("APP_VERSION", "dev"),
		StoreDriver:     strings.ToLower(getEnv("STORE_DRIVER", StoreMongo)),
		MongoURI:        getEnv("MONGODB_URI", "mongodb://localhost:27017"),
		MongoDatabase:   getEnv("MONGODB_DATABASE", "task-manager"),
		DbHost:          getEnv("MYSQL_HOST", "db"),
		DbPort:          getEnv("MYSQL_PORT", "3306"),
		DbUser:          getEnv("MYSQL_USER", "taskmanager"),
		DbPassword:      getEnv("MYSQL_PASSWORD", "taskmanager"),
		DbName:          getEnv("MYSQL_DATABASE", "taskmanager"),
		DbParams:        getEnv("MYSQL_PARAMS", "parseTime=true&multiStatements=true"),
		JWTSecret:       os.Getenv("JWT_SECRET"),
		JWTExpiresIn:    getEnvDuration("JWT_EXPIRES_IN", 7*24*time.Hour),
		JWTIssuer:       getEnv("JWT_ISSUER", "task-manager"),
		BcryptCost:      getEnvInt("BCRYPT_COST", 12),
		CorsOrigins:     parseList(getEnv("CORS_ORIGINS", "*")),
		TrustedProxies:  parseList(os.Getenv("TRUSTED_PROXIES")),
		RedisAddr:       os.Getenv("REDIS_ADDR"),
		RedisPassword:   os.Getenv("REDIS_PASSWORD"),
		RedisDB:         getEnvInt("REDIS_DB", 0),
		AuthRateLimit:   getEnvInt("AUTH_RATE_LIMIT", 20),
		AuthRateWindow:  getEnvDuration("AUTH_RATE_WINDOW", 15*time.Minute),
		ShutdownTimeout: getEnvDuration("SHUTDOWN_TIMEOUT", 30*time.Second),
	}
}

// IsDevelopment reports whether error details may be returned to clients.
func (c *Config) IsDevelopment() bool {
	return c.AppEnv == EnvDevelopment
}

// Validate rejects configurations the server must not start with.
func (c *Config) Validate() error {
	switch c.StoreDriver {
	case StoreMongo, StoreMySQL, StoreMemory:
	default:
		return errors.New("STORE_DRIVER must be one of mongo, mysql, memory")
	}
	if c.JWTSecret == "" {
		if c.AppEnv != EnvDevelopment && c.AppEnv != EnvTest {
			return errors.New("JWT_SECRET is required")
		}
		c.JWTSecret = "development-secret-change-me"
	}
	if c.JWTExpiresIn <= 0 {
		return errors.New("JWT_EXPIRES_IN must be positive")
	}
	return nil
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value, exists := os.LookupEnv(key)
	if !exists {
		return fallback
	}
	parsed, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return fallback
	}
	return parsed
}

// getEnvDuration accepts Go durations ("15m") and the "7d" day shorthand.
func getEnvDuration(key string, fallback time.Duration) time.Duration {
	value, exists := os.LookupEnv(key)
	if !exists {
		return fallback
	}
	value = strings.TrimSpace(value)
	if days, found := strings.CutSuffix(value, "d"); found {
		n, err := strconv.Atoi(days)
		if err != nil {
			return fallback
		}
		return time.Duration(n) * 24 * time.Hour
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func parseList(value string) []string {
	if strings.TrimSpace(value) == "" {
		return nil
	}

	parts := strings.Split(value, ",")
	items := make([]string, 0, len(parts))
	for _, part := range parts {
		item := strings.TrimSpace(part)
		if item == "" {
			continue
		}
		items = append(items, item)
	}

	if len(items) == 0 {
		return nil
	}

	return items
}

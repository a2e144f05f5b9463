package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type Config struct {
	Port     string
	AppEnv   string
	LogLevel string

	// Remote cafeteria API
	APIBaseURL      string
	UpstreamTimeout time.Duration

	CORSAllowOrigins []string

	// Token verification
	AuthIssuer           string
	AuthAudience         string
	AuthHS256Secret      string
	AuthRSAPublicKeyFile string
	AuthRolesClaim       string

	// Optional infra; empty disables it
	RedisAddr     string
	RedisPassword string
	MenuCacheTTL  time.Duration
	RabbitMQURL   string

	SessionCookieSecure  bool
	SessionIdleTimeout   time.Duration
	SessionSweepInterval time.Duration
}

// Load reads the environment, after merging a .env file when one exists.
// Variables already set in the environment win over the file.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		Port:     getenv("PORT", "8080"),
		AppEnv:   getenv("APP_ENV", "prod"),
		LogLevel: getenv("LOG_LEVEL", "info"),

		APIBaseURL:      getenv("API_BASE_URL", "http://localhost:4000"),
		UpstreamTimeout: parseDuration(getenv("UPSTREAM_TIMEOUT", "10s"), 10*time.Second),

		CORSAllowOrigins: splitCSV(getenv("CORS_ALLOW_ORIGINS", "*")),

		AuthIssuer:           getenv("AUTH_ISSUER", ""),
		AuthAudience:         getenv("AUTH_AUDIENCE", ""),
		AuthHS256Secret:      getenv("AUTH_HS256_SECRET", ""),
		AuthRSAPublicKeyFile: getenv("AUTH_RSA_PUBLIC_KEY_FILE", ""),
		AuthRolesClaim:       getenv("AUTH_ROLES_CLAIM", "https://cafeteria.com/roles"),

		RedisAddr:     getenv("REDIS_ADDR", ""),
		RedisPassword: getenv("REDIS_PASSWORD", ""),
		MenuCacheTTL:  parseDuration(getenv("MENU_CACHE_TTL", "60s"), time.Minute),
		RabbitMQURL:   getenv("RABBITMQ_URL", ""),

		SessionCookieSecure:  parseBool(getenv("SESSION_COOKIE_SECURE", "false")),
		SessionIdleTimeout:   parseDuration(getenv("SESSION_IDLE_TIMEOUT", "2h"), 2*time.Hour),
		SessionSweepInterval: parseDuration(getenv("SESSION_SWEEP_INTERVAL", "5m"), 5*time.Minute),
	}
}

// Validate reports settings the service cannot start without.
func (c Config) Validate() error {
	if c.AuthHS256Secret == "" && c.AuthRSAPublicKeyFile == "" {
		return fmt.Errorf("one of AUTH_HS256_SECRET or AUTH_RSA_PUBLIC_KEY_FILE is required")
	}
	if c.APIBaseURL == "" {
		return fmt.Errorf("API_BASE_URL is required")
	}
	return nil
}

func (c Config) IsDev() bool { return c.AppEnv == "dev" }

// NewLogger builds the process logger: development encoding in dev,
// JSON otherwise, at LOG_LEVEL.
func (c Config) NewLogger() (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(c.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("LOG_LEVEL: %w", err)
	}

	zc := zap.NewProductionConfig()
	if c.IsDev() {
		zc = zap.NewDevelopmentConfig()
	}
	zc.Level = zap.NewAtomicLevelAt(level)
	return zc.Build()
}

func getenv(k, def string) string {
	if v := os.Getenv(k); strings.TrimSpace(v) != "" {
		return v
	}
	return def
}

func splitCSV(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return []string{"*"}
	}
	return out
}

func parseDuration(v string, def time.Duration) time.Duration {
	d, err := time.ParseDuration(v)
	if err != nil {
		return def
	}
	return d
}

func parseBool(v string) bool {
	b, _ := strconv.ParseBool(strings.TrimSpace(v))
	return b
}

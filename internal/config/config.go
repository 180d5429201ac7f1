package config

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Password comparison modes.
const (
	PasswordModePlain  = "plain"
	PasswordModeBcrypt = "bcrypt"
)

// Config aggregates runtime configuration for the service. It is built once by Load
// and treated as read-only afterwards.
type Config struct {
	App      AppConfig
	Postgres PostgresConfig
	Redis    RedisConfig
	Logger   LoggerConfig
	Auth     AuthConfig
	Login    LoginConfig
}

// AppConfig controls server level behavior.
type AppConfig struct {
	Name                  string
	Env                   string
	Host                  string
	Port                  string
	Version               string
	Lang                  string
	RequestTimeoutSeconds int
	CORSAllowOrigins      string
}

// PostgresConfig holds DB connection values.
type PostgresConfig struct {
	DSN            string
	MaxConns       int32
	MinConns       int32
	RunMigrations  bool
	MigrationsDir  string
	ConnMaxIdleSec int32
	ConnMaxLifeSec int32
}

// RedisConfig holds Redis connection values. An empty Addr disables Redis.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// LoggerConfig configures logging behavior.
type LoggerConfig struct {
	Level string
}

// AuthConfig defines authentication parameters.
type AuthConfig struct {
	JWTSecret     string
	TokenLifetime time.Duration
	PasswordMode  string
	BcryptCost    int
}

// LoginConfig throttles login attempts.
type LoginConfig struct {
	MaxFailures         int
	FailureWindowSecond int
	RatePerSecond       float64
	RateBurst           int
}

// Load reads configuration from environment variables, applying defaults where possible.
func Load() (*Config, error) {
	_ = godotenv.Load()
	return FromEnv(os.Getenv)
}

// FromEnv builds a Config from the given lookup function and validates it.
func FromEnv(getenv func(string) string) (*Config, error) {
	env := envReader{getenv: getenv}

	redisDB, err := strconv.Atoi(env.get("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}

	lifetime, err := ParseLifetime(env.get("JWT_EXPIRES_IN", "1h"))
	if err != nil {
		return nil, fmt.Errorf("invalid JWT_EXPIRES_IN: %w", err)
	}

	cfg := &Config{
		App: AppConfig{
			Name:                  env.get("APP_NAME", "citizen-backend"),
			Env:                   env.get("APP_ENV", "development"),
			Host:                  env.get("APP_HOST", "0.0.0.0"),
			Port:                  env.get("APP_PORT", "5000"),
			Version:               env.get("APP_VERSION", "dev"),
			Lang:                  env.get("APP_LANG", "vi"),
			RequestTimeoutSeconds: env.getInt("HTTP_REQUEST_TIMEOUT_SECONDS", 30),
			CORSAllowOrigins:      env.get("CORS_ALLOW_ORIGINS", "*"),
		},
		Postgres: PostgresConfig{
			DSN:            getenv("POSTGRES_DSN"),
			MaxConns:       int32(env.getInt("POSTGRES_MAX_CONNS", 10)),
			MinConns:       int32(env.getInt("POSTGRES_MIN_CONNS", 2)),
			RunMigrations:  env.getBool("POSTGRES_RUN_MIGRATIONS", false),
			MigrationsDir:  env.get("POSTGRES_MIGRATIONS_DIR", "migrations"),
			ConnMaxIdleSec: int32(env.getInt("POSTGRES_CONN_MAX_IDLE_SECONDS", 30)),
			ConnMaxLifeSec: int32(env.getInt("POSTGRES_CONN_MAX_LIFE_SECONDS", 300)),
		},
		Redis: RedisConfig{
			Addr:     getenv("REDIS_ADDR"),
			Password: getenv("REDIS_PASSWORD"),
			DB:       redisDB,
		},
		Logger: LoggerConfig{
			Level: env.get("LOG_LEVEL", "info"),
		},
		Auth: AuthConfig{
			JWTSecret:     getenv("JWT_SECRET"),
			TokenLifetime: lifetime,
			PasswordMode:  strings.ToLower(env.get("AUTH_PASSWORD_MODE", PasswordModePlain)),
			BcryptCost:    env.getInt("AUTH_BCRYPT_COST", 12),
		},
		Login: LoginConfig{
			MaxFailures:         env.getInt("LOGIN_MAX_FAILURES", 5),
			FailureWindowSecond: env.getInt("LOGIN_FAILURE_WINDOW_SECONDS", 900),
			RatePerSecond:       env.getFloat("LOGIN_RATE_PER_SECOND", 5),
			RateBurst:           env.getInt("LOGIN_RATE_BURST", 10),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects configurations the service must not start with.
func (c *Config) Validate() error {
	var errs []error
	if strings.TrimSpace(c.Auth.JWTSecret) == "" {
		errs = append(errs, errors.New("JWT_SECRET is required"))
	}
	if strings.TrimSpace(c.Postgres.DSN) == "" {
		errs = append(errs, errors.New("POSTGRES_DSN is required"))
	}
	switch c.Auth.PasswordMode {
	case PasswordModePlain, PasswordModeBcrypt:
	default:
		errs = append(errs, fmt.Errorf("unknown AUTH_PASSWORD_MODE %q", c.Auth.PasswordMode))
	}
	return errors.Join(errs...)
}

var lifetimePattern = regexp.MustCompile(`^(\d+(?:\.\d+)?)\s*([a-z]+)$`)

var lifetimeUnits = map[string]time.Duration{
	"s": time.Second, "sec": time.Second, "secs": time.Second, "second": time.Second, "seconds": time.Second,
	"m": time.Minute, "min": time.Minute, "mins": time.Minute, "minute": time.Minute, "minutes": time.Minute,
	"h": time.Hour, "hr": time.Hour, "hrs": time.Hour, "hour": time.Hour, "hours": time.Hour,
	"d": 24 * time.Hour, "day": 24 * time.Hour, "days": 24 * time.Hour,
	"w": 7 * 24 * time.Hour, "week": 7 * 24 * time.Hour, "weeks": 7 * 24 * time.Hour,
	"y": 8766 * time.Hour, "yr": 8766 * time.Hour, "yrs": 8766 * time.Hour, "year": 8766 * time.Hour, "years": 8766 * time.Hour,
}

// ParseLifetime accepts a Go duration ("1h30m"), a bare number of seconds, or a
// number with a unit such as "7d", "2 days" or "1y".
func ParseLifetime(raw string) (time.Duration, error) {
	raw = strings.TrimSpace(raw)
	if secs, err := strconv.Atoi(raw); err == nil {
		if secs <= 0 {
			return 0, fmt.Errorf("lifetime must be positive, got %d", secs)
		}
		return time.Duration(secs) * time.Second, nil
	}

	d, err := time.ParseDuration(raw)
	if err != nil {
		match := lifetimePattern.FindStringSubmatch(strings.ToLower(raw))
		if match == nil {
			return 0, err
		}
		unit, ok := lifetimeUnits[match[2]]
		if !ok {
			return 0, fmt.Errorf("unknown lifetime unit %q", match[2])
		}
		n, perr := strconv.ParseFloat(match[1], 64)
		if perr != nil {
			return 0, perr
		}
		d = time.Duration(n * float64(unit))
	}
	if d <= 0 {
		return 0, fmt.Errorf("lifetime must be positive, got %s", d)
	}
	return d, nil
}

// Addr returns the HTTP bind address.
func (a AppConfig) Addr() string {
	return fmt.Sprintf("%s:%s", a.Host, a.Port)
}

// RequestTimeout returns the configured request timeout duration.
func (a AppConfig) RequestTimeout() time.Duration {
	if a.RequestTimeoutSeconds <= 0 {
		return 0
	}
	return time.Duration(a.RequestTimeoutSeconds) * time.Second
}

// FailureWindow returns the throttle window duration.
func (l LoginConfig) FailureWindow() time.Duration {
	if l.FailureWindowSecond <= 0 {
		return 0
	}
	return time.Duration(l.FailureWindowSecond) * time.Second
}

type envReader struct {
	getenv func(string) string
}

func (e envReader) get(key, fallback string) string {
	if val := e.getenv(key); val != "" {
		return val
	}
	return fallback
}

func (e envReader) getInt(key string, fallback int) int {
	val := e.getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return fallback
	}
	return parsed
}

func (e envReader) getFloat(key string, fallback float64) float64 {
	val := e.getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.ParseFloat(val, 64)
	if err != nil {
		return fallback
	}
	return parsed
}

func (e envReader) getBool(key string, fallback bool) bool {
	val := e.getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(val)
	if err != nil {
		return fallback
	}
	return parsed
}

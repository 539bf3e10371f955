package config // package config loads application configuration from environment variables

import (
	"errors"
	"fmt"
	"os"      // os provides access to environment variables
	"strconv" // strconv converts strings to other types
	"strings"
	"time"
)

// Config holds all runtime configuration values. Each field corresponds to
// an environment variable.
type Config struct {
	Env            string        // application environment (e.g. "dev", "prod")
	Port           string        // HTTP port to listen on
	DBDriver       string        // "mysql" or "memory"
	DBUser         string        // database username
	DBPass         string        // database password (optional)
	DBHost         string        // database host address
	DBPort         string        // database port number
	DBName         string        // database name
	DBMigrate      bool          // apply embedded migrations at startup
	TokenSecret    string        // secret used to sign session tokens
	TokenTTL       time.Duration // session token lifetime, 0 = no expiry
	BcryptCost     int           // bcrypt cost for password hashing
	PasswordMinLen int           // minimum accepted password length
	LogLevel       string        // debug | info | warn | error
	LogFormat      string        // json | text
}

// Load reads configuration values from environment variables. Every missing
// required variable is reported in the returned error.
func Load() (Config, error) {
	var l loader
	cfg := Config{
		Env:            envStr("APP_ENV", "dev"),
		Port:           l.must("APP_PORT"),
		DBDriver:       strings.ToLower(envStr("DB_DRIVER", "mysql")),
		DBPass:         os.Getenv("DB_PASS"), // empty allowed
		DBMigrate:      envBool("DB_MIGRATE", true),
		TokenSecret:    l.must("TOKEN_SECRET"),
		TokenTTL:       time.Duration(l.intOr("TOKEN_TTL_HOURS", 0)) * time.Hour,
		BcryptCost:     l.intOr("BCRYPT_COST", 10),
		PasswordMinLen: l.intOr("PASSWORD_MIN_LEN", 5),
		LogLevel:       envStr("LOG_LEVEL", "info"),
		LogFormat:      envStr("LOG_FORMAT", "json"),
	}
	switch cfg.DBDriver {
	case "mysql":
		cfg.DBUser = l.must("DB_USER")
		cfg.DBHost = l.must("DB_HOST")
		cfg.DBPort = envStr("DB_PORT", "3306")
		cfg.DBName = l.must("DB_NAME")
	case "memory":
	default:
		l.errs = append(l.errs, fmt.Errorf("unsupported DB_DRIVER %q", cfg.DBDriver))
	}
	if cfg.TokenTTL < 0 {
		l.errs = append(l.errs, errors.New("TOKEN_TTL_HOURS must not be negative"))
	}
	if err := errors.Join(l.errs...); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// loader collects errors so a misconfigured deployment sees all of them at once.
type loader struct{ errs []error }

// must retrieves the value of a required environment variable.
func (l *loader) must(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		l.errs = append(l.errs, fmt.Errorf("missing required env var: %s", key))
	}
	return v
}

// intOr parses an optional integer, recording an error when it is malformed.
func (l *loader) intOr(key string, def int) int {
	s := os.Getenv(key)
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		l.errs = append(l.errs, fmt.Errorf("invalid int for %s: %q", key, s))
		return def
	}
	return n
}

package config // package config loads application configuration from environment variables

import (
	"log"
	"os"
	"strconv"
)

// Config holds all runtime configuration values. Each field corresponds
// to an environment variable. Secrets (JWT signing key, admin
// credential) are configured once at startup and never rotated during a
// run; every component receives its configuration explicitly at
// construction instead of reading globals.
type Config struct {
	Env               string // application environment (e.g. "dev", "prod")
	Port              string // HTTP port to listen on
	DBUser            string // database username
	DBPass            string // database password (optional)
	DBHost            string // database host address
	DBPort            string // database port number
	DBName            string // database name
	JWTSecret         string // secret used to sign admission and session tokens
	AdminPassword     string // shared gate administrator password (plain, dev fallback)
	AdminPasswordHash string // bcrypt hash of the admin password (preferred over plain)
	AdmissionTTLDays  int    // admission token lifetime; long enough to outlive the event
	SessionTTLDays    int    // admin session lifetime
	ViewsDir          string // directory holding the static HTML pages
}

// Load reads configuration from the environment. Required variables are
// enforced by must() and missing values abort startup with a fatal log
// message; optional values fall back to sensible defaults.
func Load() Config {
	cfg := Config{
		Env:               must("APP_ENV"),
		Port:              must("APP_PORT"),
		DBUser:            must("DB_USER"),
		DBPass:            os.Getenv("DB_PASS"),
		DBHost:            must("DB_HOST"),
		DBPort:            must("DB_PORT"),
		DBName:            must("DB_NAME"),
		JWTSecret:         must("JWT_SECRET"),
		AdminPassword:     os.Getenv("ADMIN_PASSWORD"),
		AdminPasswordHash: os.Getenv("ADMIN_PASSWORD_HASH"),
		AdmissionTTLDays:  envInt("ADMISSION_TOKEN_TTL_DAYS", 365),
		SessionTTLDays:    envInt("ADMIN_SESSION_TTL_DAYS", 7),
		ViewsDir:          envStr("VIEWS_DIR", "web/views"),
	}
	if cfg.AdminPassword == "" && cfg.AdminPasswordHash == "" {
		log.Fatal("set ADMIN_PASSWORD_HASH (or ADMIN_PASSWORD for dev)")
	}
	return cfg
}

// must retrieves the value of a required environment variable. If the
// variable is unset or empty, the application logs a fatal error and
// exits.
func must(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		log.Fatalf("missing required env var: %s", key)
	}
	return v
}

func envStr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Fatalf("invalid int for %s: %q", key, v)
	}
	return n
}

package config // package config loads application configuration from environment variables

import (
	"log"     // log is used to report configuration errors and halt execution
	"os"      // os provides access to environment variables
	"strconv" // strconv converts strings to other types
)

// Config holds all runtime configuration values. Each field corresponds
// to an environment variable. Strings for identifiers, secrets and
// paths, ints for durations and limits.
type Config struct {
	Env          string // application environment (e.g. "dev", "prod")
	Port         string // HTTP port to listen on
	DBPath       string // path of the SQLite database file (":memory:" allowed)
	JWTSecret    string // secret used to sign JWTs
	AccessTTLMin int    // access token time-to-live in minutes
	BcryptCost   int    // bcrypt cost for password hashing
	AuditCap     int    // maximum number of audit rows retained
	RemoteURL    string // base URL of the remote persistence gateway (empty disables mirroring)
	RemoteKey    string // API key for the remote gateway
	QueueURL     string // AMQP broker URL (empty disables the audit event pipeline)
}

// Load reads configuration from the environment. Required variables
// are enforced by must() and missing values cause the program to exit
// with a fatal log message. The remote gateway and the message broker
// are optional: leaving their URLs unset runs the platform in
// local-only mode.
func Load() Config {
	cfg := Config{
		Env:          must("APP_ENV"),
		Port:         must("APP_PORT"),
		DBPath:       must("DB_PATH"),
		JWTSecret:    must("JWT_SECRET"),
		AccessTTLMin: mustInt("ACCESS_TOKEN_TTL_MIN"),
		BcryptCost:   mustInt("BCRYPT_COST"),
		AuditCap:     envInt("AUDIT_LOG_CAP", 1000),
		RemoteURL:    os.Getenv("REMOTE_GATEWAY_URL"),
		RemoteKey:    os.Getenv("REMOTE_GATEWAY_KEY"),
		QueueURL:     os.Getenv("RABBITMQ_URL"),
	}
	if cfg.AuditCap < 1 {
		cfg.AuditCap = 1
	}
	return cfg
}

// must retrieves the value of a required environment variable. If the
// variable is unset or empty, the application logs a fatal error and exits.
func must(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		log.Fatalf("missing required env var: %s", key)
	}
	return v
}

// mustInt is like must() but converts the retrieved string into an integer.
func mustInt(key string) int {
	s := must(key)
	n, err := strconv.Atoi(s)
	if err != nil {
		log.Fatalf("invalid int for %s: %q", key, s)
	}
	return n
}

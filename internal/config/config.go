package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	PostgresAddress  string
	PostgresPort     string
	PostgresDB       string
	PostgresUsername string
	PostgresPassword string

	HTTPPort        string
	OperatorWorkers int
	PostingRetries  int
	StoreTimeout    time.Duration
	DisplayTimezone string
}

func ProcessEnvironmentVariables() (*Config, error) {
	// In all cases the default behavior should be for the docker compose setup
	env := Config{
		PostgresAddress:  "localhost",
		PostgresPort:     "5433",
		PostgresDB:       "postgres",
		PostgresUsername: "postgres",
		PostgresPassword: "testpassword",

		HTTPPort:        "9446",
		OperatorWorkers: 4,
		PostingRetries:  3,
		StoreTimeout:    5 * time.Second,
		DisplayTimezone: "UTC",
	}

	envPostgresAddress := os.Getenv("POSTGRES_ADDRESS")
	envPostgresPort := os.Getenv("POSTGRES_PORT")
	envPostgresDB := os.Getenv("POSTGRES_DB")
	envPostgresUsername := os.Getenv("POSTGRES_USERNAME")
	envPostgresPassword := os.Getenv("POSTGRES_PASSWORD")

	if len(envPostgresAddress) != 0 {
		env.PostgresAddress = envPostgresAddress
	}

	if len(envPostgresPort) != 0 {
		env.PostgresPort = envPostgresPort
	}

	if len(envPostgresDB) != 0 {
		env.PostgresDB = envPostgresDB
	}

	if len(envPostgresUsername) != 0 {
		env.PostgresUsername = envPostgresUsername
	}

	if len(envPostgresPassword) != 0 {
		env.PostgresPassword = envPostgresPassword
	}

	if port := os.Getenv("LEDGER_HTTP_PORT"); len(port) != 0 {
		env.HTTPPort = port
	}

	if workers, err := strconv.Atoi(os.Getenv("LEDGER_OPERATOR_WORKERS")); err == nil && workers > 0 {
		env.OperatorWorkers = workers
	}

	if retries, err := strconv.Atoi(os.Getenv("LEDGER_POSTING_RETRIES")); err == nil && retries >= 0 {
		env.PostingRetries = retries
	}

	if timeoutMs, err := strconv.Atoi(os.Getenv("LEDGER_STORE_TIMEOUT_MS")); err == nil && timeoutMs > 0 {
		env.StoreTimeout = time.Duration(timeoutMs) * time.Millisecond
	}

	if tz := os.Getenv("LEDGER_DISPLAY_TIMEZONE"); len(tz) != 0 {
		env.DisplayTimezone = tz
	}

	return &env, nil
}

// ConnectionString builds the Postgres DSN used by both the server and the
// migration runner.
func (c *Config) ConnectionString() string {
	return "postgres://" + c.PostgresUsername + ":" +
		c.PostgresPassword + "@" + c.PostgresAddress + ":" +
		c.PostgresPort + "/" + c.PostgresDB + "?sslmode=disable"
}

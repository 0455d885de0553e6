package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	PostgresAddress  string
	PostgresPort     string
	PostgresDB       string
	PostgresUsername string
	PostgresPassword string

	HTTPPort string

	// AmqpURL enables best-effort notification push when set; empty
	// disables the publisher entirely.
	AmqpURL      string
	AmqpExchange string

	RecurringInterval time.Duration
}

func ProcessEnvironmentVariables() (*Config, error) {
	// Optional .env overlay; absence is not an error.
	_ = godotenv.Load()

	// In all cases the default behavior should be for the docker compose setup
	env := Config{
		PostgresAddress:   "localhost",
		PostgresPort:      "5433",
		PostgresDB:        "postgres",
		PostgresUsername:  "postgres",
		PostgresPassword:  "testpassword",
		HTTPPort:          "9446",
		AmqpExchange:      "finance.notifications",
		RecurringInterval: 24 * time.Hour,
	}

	if v := os.Getenv("POSTGRES_ADDRESS"); v != "" {
		env.PostgresAddress = v
	}
	if v := os.Getenv("POSTGRES_PORT"); v != "" {
		env.PostgresPort = v
	}
	if v := os.Getenv("POSTGRES_DB"); v != "" {
		env.PostgresDB = v
	}
	if v := os.Getenv("POSTGRES_USERNAME"); v != "" {
		env.PostgresUsername = v
	}
	if v := os.Getenv("POSTGRES_PASSWORD"); v != "" {
		env.PostgresPassword = v
	}
	if v := os.Getenv("HTTP_PORT"); v != "" {
		env.HTTPPort = v
	}
	if v := os.Getenv("AMQP_URL"); v != "" {
		env.AmqpURL = v
	}
	if v := os.Getenv("AMQP_EXCHANGE"); v != "" {
		env.AmqpExchange = v
	}
	if v := os.Getenv("RECURRING_INTERVAL"); v != "" {
		interval, err := time.ParseDuration(v)
		if err != nil {
			return nil, err
		}
		env.RecurringInterval = interval
	}

	return &env, nil
}

// ConnectionString assembles the Postgres DSN used by both the server and
// the migration runner.
func (c *Config) ConnectionString() string {
	return "postgres://" + c.PostgresUsername + ":" +
		c.PostgresPassword + "@" + c.PostgresAddress + ":" +
		c.PostgresPort + "/" + c.PostgresDB + "?sslmode=disable"
}

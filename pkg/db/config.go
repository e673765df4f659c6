package db

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
)

type PostgresConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// LoadPostgresConfig reads DB_* variables. DB_PORT defaults to 5432 and
// DB_SSLMODE to "disable".
func LoadPostgresConfig() (PostgresConfig, error) {
	port := 5432
	if raw := os.Getenv("DB_PORT"); raw != "" {
		p, err := strconv.Atoi(raw)
		if err != nil {
			return PostgresConfig{}, fmt.Errorf("invalid DB_PORT %q: %w", raw, err)
		}
		port = p
	}
	sslMode := os.Getenv("DB_SSLMODE")
	if sslMode == "" {
		sslMode = "disable"
	}

	return PostgresConfig{
		Host:     os.Getenv("DB_HOST"),
		Port:     port,
		User:     os.Getenv("DB_USER"),
		Password: os.Getenv("DB_PASSWORD"),
		DBName:   os.Getenv("DB_NAME"),
		SSLMode:  sslMode,
	}, nil
}

// Enabled reports whether a database host was configured.
func (c PostgresConfig) Enabled() bool {
	return c.Host != ""
}

// DSN builds the lib/pq connection URL.
func (c PostgresConfig) DSN() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     fmt.Sprintf("%s:%d", c.Host, c.Port),
		Path:     "/" + c.DBName,
		RawQuery: url.Values{"sslmode": []string{c.SSLMode}}.Encode(),
	}
	return u.String()
}

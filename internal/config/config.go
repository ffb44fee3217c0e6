// Package config provides configuration for the application.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/starquake/quizcli/internal/logging"
)

// ErrDBUriNotSetInProduction is returned when DB_URI is not set in production. We need this to prevent accidental
// production use against a throwaway database file.
var ErrDBUriNotSetInProduction = errors.New("DB_URI must be set in production")

const (
	// AppEnvironmentDefault is the default application environment.
	AppEnvironmentDefault = "development"

	// DBDriverDefault is the default database driver. Currently, only sqlite is supported.
	DBDriverDefault = "sqlite"
	// DBURIDefault is the default database URI. Default is quizzes.sqlite in the current directory.
	DBURIDefault = "file:quizzes.sqlite?_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)&_pragma=synchronous(NORMAL)&_pragma=busy_timeout(5000)"
	// DBMaxOpenConnsDefault is the default maximum number of open database connections.
	DBMaxOpenConnsDefault = 1
	// DBMaxIdleConnsDefault is the default maximum number of idle database connections.
	DBMaxIdleConnsDefault = 1
	// DBConnMaxLifetimeDefault is the default maximum lifetime of a database connection.
	DBConnMaxLifetimeDefault = 5 * time.Minute

	// LogLevelDefault keeps the shell quiet unless something goes wrong.
	LogLevelDefault = "warn"
	// SeedDefault controls whether an empty store gets the default quizzes.
	SeedDefault = true

	// FileEnv names the environment variable holding the path of the optional TOML config file.
	FileEnv = "QUIZ_CONFIG"
)

// Config represents the application configuration.
type Config struct {
	AppEnvironment string

	DBDriver string
	DBURI    string

	DBMaxOpenConns    int
	DBMaxIdleConns    int
	DBConnMaxLifetime time.Duration

	LogLevel logging.Level
	Seed     bool
}

// IsProduction reports whether the application runs in production.
func (c *Config) IsProduction() bool {
	return c.AppEnvironment == "production"
}

// fileConfig mirrors the optional TOML configuration file pointed to by QUIZ_CONFIG.
type fileConfig struct {
	AppEnv   string `toml:"app_env"`
	Database struct {
		Driver          string `toml:"driver"`
		URI             string `toml:"uri"`
		MaxOpenConns    int    `toml:"max_open_conns"`
		MaxIdleConns    int    `toml:"max_idle_conns"`
		ConnMaxLifetime string `toml:"conn_max_lifetime"`
	} `toml:"database"`
	Log struct {
		Level string `toml:"level"`
	} `toml:"log"`
	Seed *bool `toml:"seed"`
}

// Parse parses the optional config file and environment variables into the config.
// Precedence is defaults, then the file named by QUIZ_CONFIG, then environment variables.
func Parse(getenv func(string) string) (*Config, error) {
	c := Config{
		AppEnvironment:    AppEnvironmentDefault,
		DBDriver:          DBDriverDefault,
		DBURI:             DBURIDefault,
		DBMaxOpenConns:    DBMaxOpenConnsDefault,
		DBMaxIdleConns:    DBMaxIdleConnsDefault,
		DBConnMaxLifetime: DBConnMaxLifetimeDefault,
		Seed:              SeedDefault,
	}
	var err error
	if c.LogLevel, err = logging.ParseLevel(LogLevelDefault); err != nil {
		return nil, fmt.Errorf("invalid default log level: %w", err)
	}

	uriSet := false
	if path := getenv(FileEnv); path != "" {
		if uriSet, err = c.applyFile(path); err != nil {
			return nil, err
		}
	}

	// Overwrite with environment variables.
	if val := getenv("APP_ENV"); val != "" {
		c.AppEnvironment = val
	}
	if val := getenv("DB_DRIVER"); val != "" {
		c.DBDriver = val
	}
	if val := getenv("DB_URI"); val != "" {
		c.DBURI = val
		uriSet = true
	}

	// Strict validation for types
	if val := getenv("DB_MAX_OPEN_CONNS"); val != "" {
		c.DBMaxOpenConns, err = strconv.Atoi(val)
		if err != nil {
			return nil, fmt.Errorf("invalid DB_MAX_OPEN_CONNS: %q, err: %w", val, err)
		}
	}

	if val := getenv("DB_MAX_IDLE_CONNS"); val != "" {
		c.DBMaxIdleConns, err = strconv.Atoi(val)
		if err != nil {
			return nil, fmt.Errorf("invalid DB_MAX_IDLE_CONNS: %q, err: %w", val, err)
		}
	}

	if val := getenv("DB_CONN_MAX_LIFETIME"); val != "" {
		c.DBConnMaxLifetime, err = time.ParseDuration(val)
		if err != nil {
			return nil, fmt.Errorf("invalid DB_CONN_MAX_LIFETIME: %q, err: %w", val, err)
		}
	}

	if val := getenv("LOG_LEVEL"); val != "" {
		c.LogLevel, err = logging.ParseLevel(val)
		if err != nil {
			return nil, fmt.Errorf("invalid LOG_LEVEL: %q, err: %w", val, err)
		}
	}

	if val := getenv("SEED"); val != "" {
		c.Seed, err = strconv.ParseBool(val)
		if err != nil {
			return nil, fmt.Errorf("invalid SEED: %q, err: %w", val, err)
		}
	}

	// Mandatory fields
	if c.IsProduction() && !uriSet {
		return nil, ErrDBUriNotSetInProduction
	}

	return &c, nil
}

// applyFile reads a TOML config file and applies the values it sets. It reports whether the file set a DB URI.
func (c *Config) applyFile(path string) (bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return false, fmt.Errorf("error reading config file %q: %w", path, err)
	}

	var fc fileConfig
	if err = toml.Unmarshal(data, &fc); err != nil {
		return false, fmt.Errorf("error decoding config file %q: %w", path, err)
	}

	if fc.AppEnv != "" {
		c.AppEnvironment = fc.AppEnv
	}
	if fc.Database.Driver != "" {
		c.DBDriver = fc.Database.Driver
	}
	if fc.Database.URI != "" {
		c.DBURI = fc.Database.URI
	}
	if fc.Database.MaxOpenConns != 0 {
		c.DBMaxOpenConns = fc.Database.MaxOpenConns
	}
	if fc.Database.MaxIdleConns != 0 {
		c.DBMaxIdleConns = fc.Database.MaxIdleConns
	}
	if fc.Database.ConnMaxLifetime != "" {
		if c.DBConnMaxLifetime, err = time.ParseDuration(fc.Database.ConnMaxLifetime); err != nil {
			return false, fmt.Errorf("invalid database.conn_max_lifetime: %q, err: %w", fc.Database.ConnMaxLifetime, err)
		}
	}
	if fc.Log.Level != "" {
		if c.LogLevel, err = logging.ParseLevel(fc.Log.Level); err != nil {
			return false, fmt.Errorf("invalid log.level: %q, err: %w", fc.Log.Level, err)
		}
	}
	if fc.Seed != nil {
		c.Seed = *fc.Seed
	}

	return fc.Database.URI != "", nil
}

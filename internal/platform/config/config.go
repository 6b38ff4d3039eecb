package config

import (
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

const (
	EnvLocal = "local"
	EnvDev   = "dev"
	EnvProd  = "prod"

	DriverPostgres = "pgx"
	DriverSQLite   = "sqlite"
)

type Config struct {
	Env             string        `env:"ENV" env-default:"dev"`
	LogLevel        string        `env:"LOG_LEVEL"`
	APIPort         string        `env:"API_PORT" env-default:"8080"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" env-default:"15s"`

	// Username -> password pairs accepted by the API's Basic auth gate.
	Credentials map[string]string `env:"BASIC_AUTH_CREDENTIALS" env-separator:","`

	Database DatabaseConfig
	Redis    RedisConfig
}

type DatabaseConfig struct {
	Driver     string `env:"DB_DRIVER" env-default:"pgx"`
	Host       string `env:"DB_HOST" env-default:"localhost"`
	Port       string `env:"DB_PORT" env-default:"5432"`
	User       string `env:"DB_USER" env-default:"user"`
	Password   string `env:"DB_PASSWORD" env-default:"password"`
	Name       string `env:"DB_NAME" env-default:"taskboard"`
	SslMode    string `env:"DB_SSLMODE" env-default:"disable"`
	SQLitePath string `env:"SQLITE_PATH" env-default:"taskboard.db"`
}

type RedisConfig struct {
	Addr      string `env:"REDIS_ADDR"`
	Password  string `env:"REDIS_PASSWORD"`
	DB        int    `env:"REDIS_DB" env-default:"0"`
	QueueName string `env:"ACTIVITY_QUEUE_NAME" env-default:"task_activity_queue"`
}

// DSN returns the connection string handed to the configured driver.
func (c DatabaseConfig) DSN() string {
	if c.Driver == DriverSQLite {
		return c.SQLitePath
	}
	return "host=" + c.Host +
		" port=" + c.Port +
		" user=" + c.User +
		" password=" + c.Password +
		" dbname=" + c.Name +
		" sslmode=" + c.SslMode
}

// Enabled reports whether the activity queue should be started.
func (c RedisConfig) Enabled() bool {
	return c.Addr != ""
}

// Load reads an optional .env file and then the process environment.
// The returned bool is false when no .env file was found.
func Load() (*Config, bool, error) {
	dotenv := godotenv.Load() == nil

	cfg := new(Config)
	if err := cleanenv.ReadEnv(cfg); err != nil {
		return nil, dotenv, fmt.Errorf("reading environment: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, dotenv, err
	}
	return cfg, dotenv, nil
}

func (c *Config) validate() error {
	switch c.Env {
	case EnvLocal, EnvDev, EnvProd:
	default:
		return fmt.Errorf("unknown env: %s", c.Env)
	}
	switch c.Database.Driver {
	case DriverPostgres, DriverSQLite:
	default:
		return fmt.Errorf("unsupported DB_DRIVER: %s", c.Database.Driver)
	}
	return nil
}

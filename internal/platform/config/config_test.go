package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("BASIC_AUTH_CREDENTIALS", "")

	cfg, _, err := Load()
	require.NoError(t, err)

	assert.Equal(t, EnvDev, cfg.Env)
	assert.Equal(t, "8080", cfg.APIPort)
	assert.Equal(t, 15*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, DriverPostgres, cfg.Database.Driver)
	assert.False(t, cfg.Redis.Enabled())
	assert.Empty(t, cfg.Credentials)
}

func TestLoadCredentials(t *testing.T) {
	t.Setenv("BASIC_AUTH_CREDENTIALS", "admin:s3cret,viewer:readonly")

	cfg, _, err := Load()
	require.NoError(t, err)

	assert.Equal(t, map[string]string{
		"admin":  "s3cret",
		"viewer": "readonly",
	}, cfg.Credentials)
}

func TestLoadRejectsUnknownDriver(t *testing.T) {
	t.Setenv("DB_DRIVER", "mysql")

	_, _, err := Load()
	assert.ErrorContains(t, err, "unsupported DB_DRIVER")
}

func TestDatabaseDSN(t *testing.T) {
	pg := DatabaseConfig{
		Driver:   DriverPostgres,
		Host:     "db",
		Port:     "5432",
		User:     "u",
		Password: "p",
		Name:     "tasks",
		SslMode:  "disable",
	}
	assert.Equal(t, "host=db port=5432 user=u password=p dbname=tasks sslmode=disable", pg.DSN())

	lite := DatabaseConfig{Driver: DriverSQLite, SQLitePath: "/tmp/t.db"}
	assert.Equal(t, "/tmp/t.db", lite.DSN())
}

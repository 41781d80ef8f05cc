package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/sma-transcript-api/pkg/config"
)

func TestDSNPostgres(t *testing.T) {
	driver, dsn, err := DSN(config.DatabaseConfig{Host: "db", Port: 5432, User: "u", Password: "p", Name: "enroll", SSLMode: "disable"})
	require.NoError(t, err)
	assert.Equal(t, "postgres", driver)
	assert.Equal(t, "host=db port=5432 user=u password=p dbname=enroll sslmode=disable", dsn)
}

func TestDSNPgx(t *testing.T) {
	driver, _, err := DSN(config.DatabaseConfig{Driver: config.DriverPgx, Host: "db", Port: 5432})
	require.NoError(t, err)
	assert.Equal(t, "pgx", driver)
}

func TestDSNMySQL(t *testing.T) {
	driver, dsn, err := DSN(config.DatabaseConfig{Driver: config.DriverMySQL, Host: "db", Port: 3306, User: "root", Password: "secret", Name: "enrollment_system"})
	require.NoError(t, err)
	assert.Equal(t, "mysql", driver)
	assert.Contains(t, dsn, "root:secret@tcp(db:3306)/enrollment_system")
	assert.Contains(t, dsn, "parseTime=true")
}

func TestDSNUnsupported(t *testing.T) {
	_, _, err := DSN(config.DatabaseConfig{Driver: "oracle"})
	assert.Error(t, err)
}

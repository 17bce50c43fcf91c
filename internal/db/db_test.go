package db

import (
	"io/fs"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/usersdb/usersdb/config"
)

func TestDSN(t *testing.T) {
	dsn := DSN(config.DatabaseConfig{
		Host:     "db.internal",
		Port:     6543,
		User:     "app",
		Password: "p@ss/word",
		DBName:   "appdb",
	})

	u, err := url.Parse(dsn)
	require.NoError(t, err)
	assert.Equal(t, "postgres", u.Scheme)
	assert.Equal(t, "db.internal:6543", u.Host)
	assert.Equal(t, "app", u.User.Username())
	password, ok := u.User.Password()
	require.True(t, ok)
	assert.Equal(t, "p@ss/word", password)
	assert.Equal(t, "/appdb", u.Path)
	assert.Equal(t, "disable", u.Query().Get("sslmode"))
}

func TestDSNRequiresSSLWhenEnabled(t *testing.T) {
	dsn := DSN(config.DatabaseConfig{Host: "h", Port: 5432, User: "u", DBName: "d", UseSSL: true})

	u, err := url.Parse(dsn)
	require.NoError(t, err)
	assert.Equal(t, "require", u.Query().Get("sslmode"))
}

func TestMigrationsAreEmbeddedInPairs(t *testing.T) {
	ups, err := fs.Glob(migrationFiles, "migrations/*.up.sql")
	require.NoError(t, err)
	downs, err := fs.Glob(migrationFiles, "migrations/*.down.sql")
	require.NoError(t, err)

	require.NotEmpty(t, ups)
	assert.Len(t, downs, len(ups))

	body, err := fs.ReadFile(migrationFiles, "migrations/000001_create_users_table.up.sql")
	require.NoError(t, err)
	assert.Contains(t, string(body), "CREATE TABLE IF NOT EXISTS users")
}

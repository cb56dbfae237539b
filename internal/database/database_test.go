package database

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Additional-Code/padoca/internal/config"
)

func openTemp(t *testing.T) *Connections {
	t.Helper()

	conns, err := Open(config.Database{
		Driver:    "sqlite",
		WriterDSN: "file:" + filepath.Join(t.TempDir(), "bakery.db"),
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = conns.Close() })
	return conns
}

func TestOpenSQLiteSharesPool(t *testing.T) {
	conns := openTemp(t)

	require.NoError(t, conns.Ping(context.Background()))
	assert.Same(t, conns.Writer, conns.Reader)
	assert.Equal(t, 1, conns.Writer.DB.Stats().MaxOpenConnections)
}

func TestOpenRejectsUnknownDriver(t *testing.T) {
	_, err := Open(config.Database{Driver: "oracle", WriterDSN: "x"})
	assert.Error(t, err)

	_, err = Open(config.Database{Driver: "sqlite"})
	assert.Error(t, err)
}

func TestIsUniqueViolationSQLite(t *testing.T) {
	conns := openTemp(t)
	ctx := context.Background()

	_, err := conns.Writer.ExecContext(ctx, `CREATE TABLE customers (id INTEGER PRIMARY KEY, email TEXT UNIQUE)`)
	require.NoError(t, err)
	_, err = conns.Writer.ExecContext(ctx, `INSERT INTO customers (email) VALUES (?)`, "a@x.com")
	require.NoError(t, err)

	_, err = conns.Writer.ExecContext(ctx, `INSERT INTO customers (email) VALUES (?)`, "a@x.com")
	require.Error(t, err)
	assert.True(t, IsUniqueViolation(err))

	_, err = conns.Writer.ExecContext(ctx, `INSERT INTO missing_table (email) VALUES (?)`, "b@x.com")
	require.Error(t, err)
	assert.False(t, IsUniqueViolation(err))

	assert.False(t, IsUniqueViolation(nil))
	assert.False(t, IsUniqueViolation(errors.New("UNIQUE constraint failed")))
}

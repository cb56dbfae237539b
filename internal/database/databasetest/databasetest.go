// Package databasetest opens migrated throwaway SQLite databases for tests.
package databasetest

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Additional-Code/padoca/internal/config"
	"github.com/Additional-Code/padoca/internal/database"
	"github.com/Additional-Code/padoca/internal/migration"
)

// Config returns a configuration pointing at a fresh SQLite file.
func Config(t testing.TB) config.Config {
	t.Helper()

	return config.Config{
		Database: config.Database{
			Driver:    "sqlite",
			WriterDSN: "file:" + filepath.Join(t.TempDir(), "bakery.db") + "?_pragma=busy_timeout(5000)",
		},
	}
}

// Open returns connections to a new database with the bakery schema applied.
func Open(t testing.TB) *database.Connections {
	t.Helper()

	cfg := Config(t)
	conns, err := database.Open(cfg.Database)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conns.Close() })

	mig, err := migration.New(cfg, conns, zap.NewNop())
	require.NoError(t, err)
	require.NoError(t, mig.Up(context.Background()))

	return conns
}

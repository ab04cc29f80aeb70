package clickhouse

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewConnWithDatabase(t *testing.T) {
	dsn, terminate := startTestContainer(t)
	defer terminate()

	ctx := context.Background()

	// An admin connection with no database selected can create one the
	// DSN points at before it exists.
	admin, err := NewConnWithDatabase(ctx, dsn, "")
	require.NoError(t, err)
	require.NoError(t, admin.Exec(ctx, "CREATE DATABASE IF NOT EXISTS analytics"))
	require.NoError(t, admin.Close())

	conn, err := NewConnWithDatabase(ctx, dsn, "analytics")
	require.NoError(t, err)
	defer conn.Close()

	var current string
	require.NoError(t, conn.QueryRow(ctx, "SELECT currentDatabase()").Scan(&current))
	require.Equal(t, "analytics", current)
}

func TestNewConnWithDatabaseInvalidDSN(t *testing.T) {
	_, err := NewConnWithDatabase(context.Background(), "://not-a-dsn", "test")
	require.Error(t, err)
}

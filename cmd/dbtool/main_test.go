package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestImportIntoSqlite(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("SQLITE_PATH", filepath.Join(dir, "marathon.db"))

	export := filepath.Join(dir, "results.json")
	require.NoError(t, os.WriteFile(export, []byte(`[
		{"chat_id": 1, "name": "Olena", "distance_km": 11.12},
		{"chat_id": 2, "name": "Ivan", "distance_km": 5}
	]`), 0o600))

	conn, err := open("sqlite")
	require.NoError(t, err)
	defer conn.Close()
	require.NoError(t, initSchema(conn, "sqlite"))

	n, err := importResults(context.Background(), resultRepo(conn, "sqlite"), export)
	require.NoError(t, err)
	require.Equal(t, 2, n)

	var count int
	require.NoError(t, conn.QueryRow(`SELECT COUNT(*) FROM marathon_results`).Scan(&count))
	require.Equal(t, 2, count)

	_, err = open("oracle")
	require.Error(t, err)
}

package dataset

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func seedSQLite(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "ops.db")
	db, err := sql.Open("sqlite", path)
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	_, err = db.Exec(`CREATE TABLE tickets (id TEXT, subject TEXT, priority TEXT, hours REAL, reopened INTEGER, note BLOB)`)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO tickets VALUES
		('T-1', 'Broken bed rail', 'high', 1.5, 0, x'6f6b'),
		('T-2', 'Printer jam', 'low', 0.25, 2, NULL)`)
	require.NoError(t, err)
	return path
}

func TestSQLiteSource_LoadsRows(t *testing.T) {
	path := seedSQLite(t)

	src, err := NewSQLiteSource("tickets", path, "tickets")
	require.NoError(t, err)
	data, err := src.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, data, 2)

	byID := map[string]int{}
	for i, rec := range data {
		byID[rec.Field("id")] = i
	}
	first := data[byID["T-1"]]
	require.Equal(t, "Broken bed rail", first.Field("subject"))
	require.Equal(t, "1.5", first.Field("hours"))
	require.Equal(t, "ok", first.Field("note"))

	second := data[byID["T-2"]]
	require.Equal(t, "2", second.Field("reopened"))
	require.Equal(t, "", second.Field("note"))
}

func TestSQLiteSource_OpenFromSpec(t *testing.T) {
	path := seedSQLite(t)
	src, err := Open("support", "sqlite://"+path+"?table=tickets")
	require.NoError(t, err)
	data, err := src.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, data, 2)
}

func TestSQLiteSource_Errors(t *testing.T) {
	_, err := NewSQLiteSource("x", "ops.db", "")
	require.ErrorIs(t, err, ErrBadTable)
	_, err = NewSQLiteSource("x", "ops.db", "tickets; DROP TABLE tickets")
	require.ErrorIs(t, err, ErrBadTable)

	src, err := NewSQLiteSource("x", filepath.Join(t.TempDir(), "missing.db"), "tickets")
	require.NoError(t, err)
	_, err = src.Load(context.Background())
	require.ErrorIs(t, err, ErrNotFound)

	src, err = NewSQLiteSource("x", seedSQLite(t), "no_such_table")
	require.NoError(t, err)
	_, err = src.Load(context.Background())
	require.Error(t, err)
}

package database

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/gzreplay/gzr/internal/config"
	"github.com/gzreplay/gzr/internal/model"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostgresDSN(t *testing.T) {
	dsn := PostgresDSN(config.DBConfig{
		Host:     "db",
		Port:     "5433",
		Username: "u",
		Password: "p",
		Database: "gzr",
	})
	assert.Equal(t, "host=db port=5433 user=u password=p dbname=gzr sslmode=disable", dsn)
}

func TestGetSqliteDB_InMemorySetup(t *testing.T) {
	db, err := GetSqliteDB("")
	require.NoError(t, err)

	require.NoError(t, Setup(db, zerolog.Nop()))

	for _, m := range model.DatabaseModels {
		assert.True(t, db.Migrator().HasTable(m), "missing table for %T", m)
	}
}

func TestGetSqliteDB_InMemoryDatabasesAreIsolated(t *testing.T) {
	a, err := GetSqliteDB("")
	require.NoError(t, err)
	b, err := GetSqliteDB("")
	require.NoError(t, err)

	require.NoError(t, Setup(a, zerolog.Nop()))
	require.NoError(t, a.Create(&model.ReplayRecord{ID: "only-in-a"}).Error)

	assert.False(t, b.Migrator().HasTable(&model.ReplayRecord{}))
}

func TestDumpMemoryDBToDisk(t *testing.T) {
	db, err := GetSqliteDB("")
	require.NoError(t, err)
	require.NoError(t, Setup(db, zerolog.Nop()))
	require.NoError(t, db.Create(&model.ReplayRecord{ID: "r1", StageName: "Stage"}).Error)

	path := filepath.Join(t.TempDir(), "dump.db")
	require.NoError(t, os.WriteFile(path, []byte("stale"), 0644))

	require.NoError(t, DumpMemoryDBToDisk(db, path, zerolog.Nop()))

	disk, err := GetSqliteDB(path)
	require.NoError(t, err)
	var got model.ReplayRecord
	require.NoError(t, disk.First(&got, "id = ?", "r1").Error)
	assert.Equal(t, "Stage", got.StageName)
}

func TestDumpMemoryDBToDisk_NoPath(t *testing.T) {
	db, err := GetSqliteDB("")
	require.NoError(t, err)

	err = DumpMemoryDBToDisk(db, "", zerolog.Nop())
	assert.EqualError(t, err, "sqlite file path not set")
}

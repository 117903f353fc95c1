package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFileName), []byte(body), 0644))
	return dir
}

func TestLoad_WithValidConfigFile(t *testing.T) {
	t.Cleanup(viper.Reset)

	dir := writeConfig(t, `{
		"logLevel": "debug",
		"decode": { "workers": 8 },
		"db": { "host": "10.0.0.1", "port": "5433" }
	}`)

	err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, "debug", viper.GetString("logLevel"))
	assert.Equal(t, 8, viper.GetInt("decode.workers"))
	assert.Equal(t, "10.0.0.1", viper.GetString("db.host"))
	assert.Equal(t, "5433", viper.GetString("db.port"))
	assert.Equal(t, "postgres", viper.GetString("db.username"), "unset keys keep defaults")
}

func TestLoad_DefaultValues(t *testing.T) {
	t.Cleanup(viper.Reset)

	require.NoError(t, Load(writeConfig(t, `{}`)))

	assert.Equal(t, "info", viper.GetString("logLevel"))
	assert.Equal(t, "./gzrlogs", viper.GetString("logsDir"))
	assert.Equal(t, false, viper.GetBool("graylog.enabled"))
	assert.Equal(t, "localhost:12201", viper.GetString("graylog.address"))
	assert.Equal(t, 4, viper.GetInt("decode.workers"))
	assert.Equal(t, true, viper.GetBool("decode.tracks"))
	assert.Equal(t, "memory", viper.GetString("storage.type"))
	assert.Equal(t, "./exports", viper.GetString("storage.memory.outputDir"))
	assert.Equal(t, true, viper.GetBool("storage.memory.compressOutput"))
	assert.Equal(t, "gzip", viper.GetString("storage.memory.codec"))
	assert.Equal(t, "./gzr.db", viper.GetString("storage.sqlite.path"))
	assert.Equal(t, "localhost", viper.GetString("db.host"))
	assert.Equal(t, "5432", viper.GetString("db.port"))
	assert.Equal(t, "postgres", viper.GetString("db.username"))
	assert.Equal(t, "postgres", viper.GetString("db.password"))
	assert.Equal(t, "gzr", viper.GetString("db.database"))
	assert.Equal(t, false, viper.GetBool("influx.enabled"))
	assert.Equal(t, "8086", viper.GetString("influx.port"))
	assert.Equal(t, "gzr", viper.GetString("influx.org"))
	assert.Equal(t, "replay_events", viper.GetString("influx.bucket"))
	assert.Equal(t, "./gzr_influx_backup.lp.gz", viper.GetString("influx.backupPath"))
	assert.Equal(t, false, viper.GetBool("otel.enabled"))
}

func TestLoad_MissingFile(t *testing.T) {
	t.Cleanup(viper.Reset)

	err := Load("/nonexistent/path")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error reading config file")

	// defaults are in place even without a file
	assert.Equal(t, "memory", viper.GetString("storage.type"))
}

func TestGetString(t *testing.T) {
	t.Cleanup(viper.Reset)
	viper.Set("testKey", "testValue")
	assert.Equal(t, "testValue", GetString("testKey"))
}

func TestGetInt(t *testing.T) {
	t.Cleanup(viper.Reset)
	viper.Set("testInt", 42)
	assert.Equal(t, 42, GetInt("testInt"))
}

func TestGetBool(t *testing.T) {
	t.Cleanup(viper.Reset)
	viper.Set("testBool", true)
	assert.Equal(t, true, GetBool("testBool"))
}

func TestGetStorageConfig_Defaults(t *testing.T) {
	t.Cleanup(viper.Reset)

	require.NoError(t, Load(writeConfig(t, `{}`)))

	cfg := GetStorageConfig()
	assert.Equal(t, "memory", cfg.Type)
	assert.Equal(t, "./exports", cfg.Memory.OutputDir)
	assert.Equal(t, true, cfg.Memory.CompressOutput)
	assert.Equal(t, "gzip", cfg.Memory.Codec)
	assert.Equal(t, "./gzr.db", cfg.SQLite.Path)
}

func TestGetStorageConfig_Override(t *testing.T) {
	t.Cleanup(viper.Reset)

	dir := writeConfig(t, `{
		"storage": {
			"type": "sqlite",
			"memory": { "outputDir": "/tmp/out", "compressOutput": false, "codec": "zstd" },
			"sqlite": { "path": "/data/replays.db" }
		}
	}`)
	require.NoError(t, Load(dir))

	sc := GetStorageConfig()
	assert.Equal(t, "sqlite", sc.Type)
	assert.Equal(t, "/tmp/out", sc.Memory.OutputDir)
	assert.Equal(t, false, sc.Memory.CompressOutput)
	assert.Equal(t, "zstd", sc.Memory.Codec)
	assert.Equal(t, "/data/replays.db", sc.SQLite.Path)
}

func TestGetDBConfig(t *testing.T) {
	t.Cleanup(viper.Reset)

	require.NoError(t, Load(writeConfig(t, `{"db": {"database": "matches"}}`)))

	db := GetDBConfig()
	assert.Equal(t, "localhost", db.Host)
	assert.Equal(t, "5432", db.Port)
	assert.Equal(t, "matches", db.Database)
}

func TestGetInfluxConfig(t *testing.T) {
	t.Cleanup(viper.Reset)

	require.NoError(t, Load(writeConfig(t, `{"influx": {"enabled": true, "token": "abc"}}`)))

	ic := GetInfluxConfig()
	assert.True(t, ic.Enabled)
	assert.Equal(t, "abc", ic.Token)
	assert.Equal(t, "http", ic.Protocol)
	assert.Equal(t, "replay_events", ic.Bucket)
}

func TestApplyEnv(t *testing.T) {
	t.Cleanup(viper.Reset)

	require.NoError(t, Load(writeConfig(t, `{"logLevel": "warn"}`)))

	t.Setenv("GZR_LOG_LEVEL", "trace")
	t.Setenv("GZR_STORAGE_TYPE", "postgres")
	t.Setenv("GZR_DECODE_WORKERS", "2")
	t.Setenv("GZR_DB_PASSWORD", "hunter2")

	require.NoError(t, ApplyEnv())

	assert.Equal(t, "trace", viper.GetString("logLevel"))
	assert.Equal(t, "postgres", GetStorageConfig().Type)
	assert.Equal(t, 2, viper.GetInt("decode.workers"))
	assert.Equal(t, "hunter2", GetDBConfig().Password)
	assert.Equal(t, "localhost", GetDBConfig().Host, "unset variables leave config alone")
}

func TestApplyEnv_BadValue(t *testing.T) {
	t.Cleanup(viper.Reset)
	SetDefaults()

	t.Setenv("GZR_DECODE_WORKERS", "many")
	err := ApplyEnv()
	require.Error(t, err)
	assert.Equal(t, 4, viper.GetInt("decode.workers"))
}

func TestGetOTelConfig(t *testing.T) {
	t.Cleanup(viper.Reset)
	SetDefaults()

	cfg := GetOTelConfig()
	assert.False(t, cfg.Enabled)
	assert.Equal(t, "gzr", cfg.ServiceName)

	viper.Set("otel.enabled", true)
	assert.True(t, GetOTelConfig().Enabled)
}

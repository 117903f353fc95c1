package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/spf13/viper"
)

// ConfigFileName is looked up in the directory passed to Load.
const ConfigFileName = "gzr.cfg.json"

// MemoryConfig holds in-memory/JSON storage backend settings
type MemoryConfig struct {
	OutputDir      string `json:"outputDir" mapstructure:"outputDir"`
	CompressOutput bool   `json:"compressOutput" mapstructure:"compressOutput"`
	Codec          string `json:"codec" mapstructure:"codec"`
}

// SQLiteConfig holds settings for the file-backed sqlite backend
type SQLiteConfig struct {
	Path string `json:"path" mapstructure:"path"`
}

// StorageConfig selects and configures the storage backend
type StorageConfig struct {
	Type   string       `json:"type" mapstructure:"type"`
	Memory MemoryConfig `json:"memory" mapstructure:"memory"`
	SQLite SQLiteConfig `json:"sqlite" mapstructure:"sqlite"`
}

// DBConfig holds postgres connection settings
type DBConfig struct {
	Host     string `json:"host" mapstructure:"host"`
	Port     string `json:"port" mapstructure:"port"`
	Username string `json:"username" mapstructure:"username"`
	Password string `json:"password" mapstructure:"password"`
	Database string `json:"database" mapstructure:"database"`
}

// InfluxConfig holds InfluxDB connection settings
type InfluxConfig struct {
	Enabled    bool   `json:"enabled" mapstructure:"enabled"`
	Host       string `json:"host" mapstructure:"host"`
	Port       string `json:"port" mapstructure:"port"`
	Protocol   string `json:"protocol" mapstructure:"protocol"`
	Token      string `json:"token" mapstructure:"token"`
	Org        string `json:"org" mapstructure:"org"`
	Bucket     string `json:"bucket" mapstructure:"bucket"`
	BackupPath string `json:"backupPath" mapstructure:"backupPath"`
}

// Load reads configuration from JSON file and sets default values.
// configDir is the directory containing the config file.
func Load(configDir string) error {
	SetDefaults()

	viper.SetConfigName(ConfigFileName)
	viper.AddConfigPath(configDir)
	viper.SetConfigType("json")

	err := viper.ReadInConfig()
	if err != nil {
		return fmt.Errorf("error reading config file: %v", err)
	}

	return nil
}

// SetDefaults installs the default value of every key.
func SetDefaults() {
	viper.SetDefault("logLevel", "info")
	viper.SetDefault("logsDir", "./gzrlogs")

	viper.SetDefault("graylog.enabled", false)
	viper.SetDefault("graylog.address", "localhost:12201")

	viper.SetDefault("decode.workers", 4)
	viper.SetDefault("decode.tracks", true)

	viper.SetDefault("storage.type", "memory")
	viper.SetDefault("storage.memory.outputDir", "./exports")
	viper.SetDefault("storage.memory.compressOutput", true)
	viper.SetDefault("storage.memory.codec", "gzip")
	viper.SetDefault("storage.sqlite.path", "./gzr.db")

	viper.SetDefault("db.host", "localhost")
	viper.SetDefault("db.port", "5432")
	viper.SetDefault("db.username", "postgres")
	viper.SetDefault("db.password", "postgres")
	viper.SetDefault("db.database", "gzr")

	viper.SetDefault("influx.enabled", false)
	viper.SetDefault("influx.host", "localhost")
	viper.SetDefault("influx.port", "8086")
	viper.SetDefault("influx.protocol", "http")
	viper.SetDefault("influx.token", "")
	viper.SetDefault("influx.org", "gzr")
	viper.SetDefault("influx.bucket", "replay_events")
	viper.SetDefault("influx.backupPath", "./gzr_influx_backup.lp.gz")

	viper.SetDefault("otel.enabled", false)
	viper.SetDefault("otel.serviceName", "gzr")
}

// envOverrides holds GZR_* environment values. Unset variables stay at their zero value.
type envOverrides struct {
	LogLevel       string `env:"GZR_LOG_LEVEL"`
	LogsDir        string `env:"GZR_LOGS_DIR"`
	Workers        int    `env:"GZR_DECODE_WORKERS"`
	StorageType    string `env:"GZR_STORAGE_TYPE"`
	OutputDir      string `env:"GZR_OUTPUT_DIR"`
	Codec          string `env:"GZR_EXPORT_CODEC"`
	SQLitePath     string `env:"GZR_SQLITE_PATH"`
	DBHost         string `env:"GZR_DB_HOST"`
	DBPort         string `env:"GZR_DB_PORT"`
	DBUser         string `env:"GZR_DB_USERNAME"`
	DBPassword     string `env:"GZR_DB_PASSWORD"`
	DBName         string `env:"GZR_DB_DATABASE"`
	InfluxToken    string `env:"GZR_INFLUX_TOKEN"`
	GraylogAddress string `env:"GZR_GRAYLOG_ADDRESS"`
}

// ApplyEnv overlays non-empty GZR_* environment variables onto the loaded configuration.
func ApplyEnv() error {
	var e envOverrides
	if err := env.Parse(&e); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}

	for key, val := range map[string]string{
		"logLevel":                 e.LogLevel,
		"logsDir":                  e.LogsDir,
		"storage.type":             e.StorageType,
		"storage.memory.outputDir": e.OutputDir,
		"storage.memory.codec":     e.Codec,
		"storage.sqlite.path":      e.SQLitePath,
		"db.host":                  e.DBHost,
		"db.port":                  e.DBPort,
		"db.username":              e.DBUser,
		"db.password":              e.DBPassword,
		"db.database":              e.DBName,
		"influx.token":             e.InfluxToken,
		"graylog.address":          e.GraylogAddress,
	} {
		if val != "" {
			viper.Set(key, val)
		}
	}
	if e.Workers > 0 {
		viper.Set("decode.workers", e.Workers)
	}
	return nil
}

// GetStorageConfig returns the storage section.
func GetStorageConfig() StorageConfig {
	return StorageConfig{
		Type: viper.GetString("storage.type"),
		Memory: MemoryConfig{
			OutputDir:      viper.GetString("storage.memory.outputDir"),
			CompressOutput: viper.GetBool("storage.memory.compressOutput"),
			Codec:          viper.GetString("storage.memory.codec"),
		},
		SQLite: SQLiteConfig{
			Path: viper.GetString("storage.sqlite.path"),
		},
	}
}

// GetDBConfig returns the postgres connection section.
func GetDBConfig() DBConfig {
	return DBConfig{
		Host:     viper.GetString("db.host"),
		Port:     viper.GetString("db.port"),
		Username: viper.GetString("db.username"),
		Password: viper.GetString("db.password"),
		Database: viper.GetString("db.database"),
	}
}

// GetInfluxConfig returns the InfluxDB section.
func GetInfluxConfig() InfluxConfig {
	return InfluxConfig{
		Enabled:    viper.GetBool("influx.enabled"),
		Host:       viper.GetString("influx.host"),
		Port:       viper.GetString("influx.port"),
		Protocol:   viper.GetString("influx.protocol"),
		Token:      viper.GetString("influx.token"),
		Org:        viper.GetString("influx.org"),
		Bucket:     viper.GetString("influx.bucket"),
		BackupPath: viper.GetString("influx.backupPath"),
	}
}

// OTelConfig controls the in-process decoder counters.
type OTelConfig struct {
	Enabled     bool   `json:"enabled" mapstructure:"enabled"`
	ServiceName string `json:"serviceName" mapstructure:"serviceName"`
}

// GetOTelConfig returns the otel section.
func GetOTelConfig() OTelConfig {
	return OTelConfig{
		Enabled:     viper.GetBool("otel.enabled"),
		ServiceName: viper.GetString("otel.serviceName"),
	}
}

// GetString returns a string config value.
func GetString(key string) string {
	return viper.GetString(key)
}

// GetInt returns an int config value.
func GetInt(key string) int {
	return viper.GetInt(key)
}

// GetBool returns a bool config value.
func GetBool(key string) bool {
	return viper.GetBool(key)
}

package main

import (
	"errors"
	"fmt"

	"github.com/gzreplay/gzr/internal/config"
	"github.com/gzreplay/gzr/internal/influx"
	"github.com/gzreplay/gzr/internal/storage"
	"github.com/gzreplay/gzr/internal/storage/memory"
	pgstorage "github.com/gzreplay/gzr/internal/storage/postgres"
	sqlitestorage "github.com/gzreplay/gzr/internal/storage/sqlite"

	"github.com/rs/zerolog"
)

func createStorageBackend(storageCfg config.StorageConfig, dbCfg config.DBConfig, log zerolog.Logger) (storage.Backend, error) {
	switch storageCfg.Type {
	case "postgres":
		log.Info().Str("host", dbCfg.Host).Str("database", dbCfg.Database).Msg("Postgres storage backend selected")
		return pgstorage.New(dbCfg, log), nil

	case "sqlite":
		backend, err := sqlitestorage.New(storageCfg.SQLite, log)
		if err != nil {
			return nil, fmt.Errorf("failed to create SQLite backend: %w", err)
		}
		log.Info().Str("path", storageCfg.SQLite.Path).Msg("SQLite storage backend selected")
		return backend, nil

	case "memory", "":
		log.Info().Str("outputDir", storageCfg.Memory.OutputDir).Msg("Memory storage backend selected")
		return memory.New(storageCfg.Memory, log), nil

	default:
		return nil, fmt.Errorf("unknown storage type %q", storageCfg.Type)
	}
}

// openBackends creates and initializes the configured storage backend plus
// the InfluxDB sink when it is enabled.
func openBackends(storageCfg config.StorageConfig, dbCfg config.DBConfig, influxCfg config.InfluxConfig, log zerolog.Logger) ([]storage.Backend, error) {
	backend, err := createStorageBackend(storageCfg, dbCfg, log)
	if err != nil {
		return nil, err
	}
	if err := backend.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize %s backend: %w", storageCfg.Type, err)
	}
	backends := []storage.Backend{backend}

	influxManager := influx.NewManager(influxCfg, log)
	switch err := influxManager.Init(); {
	case errors.Is(err, influx.ErrDisabled):
	case err != nil:
		log.Error().Err(err).Msg("Failed to initialize InfluxDB, continuing without it")
	default:
		backends = append(backends, influxManager)
	}

	return backends, nil
}

func closeBackends(backends []storage.Backend, log zerolog.Logger) {
	for _, b := range backends {
		if err := b.Close(); err != nil {
			log.Error().Err(err).Msgf("Failed to close %T", b)
		}
		if exp, ok := b.(storage.Exporter); ok && exp.LastExportPath() != "" {
			log.Info().Str("path", exp.LastExportPath()).Msg("Last export written")
		}
	}
}

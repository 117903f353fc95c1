package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/gzreplay/gzr/internal/config"
	"github.com/gzreplay/gzr/internal/loader"
	"github.com/gzreplay/gzr/internal/logging"
	intOtel "github.com/gzreplay/gzr/internal/otel"
	"github.com/gzreplay/gzr/internal/versions"
	"github.com/gzreplay/gzr/internal/worker"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"
)

// module defs - BuildDate can be set at build time via ldflags
var (
	CurrentVersion string = "0.0.1"
	BuildDate      string = "unknown"

	ToolName string = "gzrparse"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	sessionStart := time.Now()

	opts, err := parseFlags(args, stderr)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 2
	}
	if opts.version {
		fmt.Fprintf(stdout, "%s %s (%s)\n", ToolName, CurrentVersion, BuildDate)
		return 0
	}

	// load config
	configErr := config.Load(opts.configDir)
	if err := config.ApplyEnv(); err != nil {
		fmt.Fprintln(stderr, err)
		return 2
	}
	opts.apply()

	logFile, logFilePath, err := openLogFile(sessionStart)
	if err != nil {
		fmt.Fprintf(stderr, "Failed to create log file: %v\n", err)
	}
	if logFile != nil {
		defer logFile.Close()
	}

	graylogAddress := ""
	if viper.GetBool("graylog.enabled") {
		graylogAddress = viper.GetString("graylog.address")
	}
	logManager := logging.Setup(logging.Options{
		Level:          viper.GetString("logLevel"),
		Console:        stderr,
		File:           fileWriter(logFile),
		GraylogAddress: graylogAddress,
	})
	defer logManager.Close()
	logger := logManager.Logger

	if configErr != nil {
		logger.Warn().Err(configErr).Msg("Failed to load config, using defaults!")
	} else {
		logger.Info().Msg("Loaded config")
	}
	if logFilePath != "" {
		logger.Info().Str("path", logFilePath).Msg("Logging to file")
	}

	// counters must be registered before the dispatcher is built
	otelCfg := config.GetOTelConfig()
	otelProvider, err := intOtel.New(intOtel.Config{
		Enabled:     otelCfg.Enabled,
		ServiceName: otelCfg.ServiceName,
	})
	if err != nil {
		logger.Error().Err(err).Msg("Failed to initialize OTel provider")
		otelProvider, _ = intOtel.New(intOtel.Config{})
	}
	otelProvider.Install()

	inputs, err := collectInputs(opts.paths)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to list inputs")
		return 1
	}
	if len(inputs) == 0 {
		logger.Error().Strs("paths", opts.paths).Msg("No replay files found")
		return 1
	}

	decoder, err := loader.New(versions.NewRegistry(), logger, opts.verbose)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to create decoder")
		return 1
	}

	backends, err := openBackends(config.GetStorageConfig(), config.GetDBConfig(), config.GetInfluxConfig(), logger)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to initialize storage")
		return 1
	}
	defer closeBackends(backends, logger)

	workerManager := worker.NewManager(worker.Dependencies{
		Decoder: decoder,
		Logger:  logger,
		Workers: viper.GetInt("decode.workers"),
		Tracks:  viper.GetBool("decode.tracks"),
	}, backends...)
	workerManager.Enqueue(inputs...)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	logger.Info().Int("files", len(inputs)).Int("workers", viper.GetInt("decode.workers")).Msg("Decoding replays")
	results := workerManager.Run(ctx)

	printSummary(stdout, results)
	if opts.dumpUnknown {
		for _, res := range results {
			if res.Item != nil {
				dumpUnknown(stdout, res.Path, res.Item.Replay)
			}
		}
	}

	logger.Info().
		Int("processed", workerManager.Processed.Value()).
		Int("failed", workerManager.Failed.Value()).
		Dur("lastWrite", workerManager.GetLastDBWriteDuration()).
		Msg("Done")
	logCounters(ctx, otelProvider, logger)
	if err := otelProvider.Shutdown(context.Background()); err != nil {
		logger.Warn().Err(err).Msg("Failed to shut down OTel provider")
	}

	if workerManager.Failed.Value() > 0 || ctx.Err() != nil {
		return 1
	}
	return 0
}

// openLogFile creates logsDir if needed and opens this session's log file.
// An existing file of the same name is moved aside to <name>.old.
func openLogFile(sessionStart time.Time) (*os.File, string, error) {
	logsDir := viper.GetString("logsDir")
	if logsDir == "" {
		return nil, "", nil
	}
	if err := os.MkdirAll(logsDir, 0755); err != nil {
		return nil, "", err
	}

	path := logging.LogFilePath(logsDir, ToolName, sessionStart)
	if _, err := os.Stat(path); err == nil {
		os.Rename(path, path+".old")
	}

	f, err := os.OpenFile(filepath.Clean(path), os.O_RDWR|os.O_CREATE|os.O_APPEND, 0666)
	if err != nil {
		return nil, "", err
	}
	return f, path, nil
}

// fileWriter keeps a nil *os.File from becoming a non-nil io.Writer.
func fileWriter(f *os.File) io.Writer {
	if f == nil {
		return nil
	}
	return f
}

func logCounters(ctx context.Context, p *intOtel.Provider, log zerolog.Logger) {
	totals, err := p.Totals(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("Failed to collect decoder counters")
		return
	}
	for _, t := range totals {
		log.Info().Str("counter", t.Name).Int64("value", t.Value).Msg("Decoder counter")
	}
}

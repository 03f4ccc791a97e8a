package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/rs/zerolog"

	"github.com/shoplytics/shoplytics/internal/config"
	"github.com/shoplytics/shoplytics/internal/dataset"
	"github.com/shoplytics/shoplytics/internal/metrics"
	"github.com/shoplytics/shoplytics/internal/server"
	"github.com/shoplytics/shoplytics/internal/version"
)

const shutdownTimeout = 10 * time.Second

func main() {
	versionFlag := flag.Bool("v", false, "Print version and exit")
	flag.BoolVar(versionFlag, "version", false, "Print version and exit") // alias
	configFlag := flag.String("config", "", "Path to a YAML configuration file")
	dataFlag := flag.String("data", "", "Directory containing the dataset CSV files")
	addrFlag := flag.String("addr", "", "HTTP listen address")
	flag.Parse()

	if *versionFlag {
		fmt.Println(version.Info().Short())
		return
	}

	if err := run(*configFlag, *dataFlag, *addrFlag); err != nil {
		fmt.Fprintf(os.Stderr, "shoplytics: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath, dataDir, addr string) error {
	cfg := config.NewConfig()
	if configPath != "" {
		loaded, err := config.LoadFromFile(configPath)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		cfg = loaded
	}
	cfg = config.LoadFromEnv(cfg)
	if dataDir != "" {
		cfg.Data.Dir = dataDir
	}
	if addr != "" {
		cfg.Server.Addr = addr
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	logger := newLogger(cfg.Logging.Level)
	logger.Info().Str("version", version.Info().Short()).Msg("starting")

	reg := metrics.NewRegistry()

	loader := dataset.NewLoader(cfg.Data.Dir, cfg.Data.Sources, memory.NewGoAllocator())
	started := time.Now()
	snap, err := dataset.NewSnapshot(loader)
	if err != nil {
		return fmt.Errorf("loading dataset from %s: %w", cfg.Data.Dir, err)
	}
	loadSeconds := time.Since(started).Seconds()
	reg.SnapshotLoadSeconds.Set(loadSeconds)
	logger.Info().
		Str("dir", cfg.Data.Dir).
		Int("orders", snap.Orders.Len()).
		Int("order_item_rows", snap.OrderItemRows.Len()).
		Float64("seconds", loadSeconds).
		Msg("dataset loaded")

	srv := server.New(snap, cfg, logger, reg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info().Str("addr", cfg.Server.Addr).Msg("listening")
		errCh <- srv.Start()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server: %w", err)
		}
	case <-ctx.Done():
		logger.Info().Msg("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
	}
	return nil
}

func newLogger(level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		lvl = zerolog.InfoLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
		Level(lvl).
		With().Timestamp().Logger()
}

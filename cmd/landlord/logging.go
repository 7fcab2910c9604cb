package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/lox/landlord/internal/config"
	"github.com/lox/landlord/internal/fileutil"
	"github.com/lox/landlord/internal/tui"
)

// setup loads the configuration and builds the logger. Flags override the
// config file. The returned closer releases the log file, if any.
func (g *Globals) setup(fallback io.Writer) (*config.Config, *log.Logger, func(), error) {
	if g.NoColor {
		tui.DisableColor()
	}

	cfg, err := config.Load(g.Config)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("loading config: %w", err)
	}
	if g.LogLevel != "" {
		cfg.LogLevel = g.LogLevel
	}

	level, err := log.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("invalid log level %q: %w", cfg.LogLevel, err)
	}

	out, closer := fallback, func() {}
	if g.LogFile != "" {
		f, err := fileutil.OpenAppend(g.LogFile)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("opening log file: %w", err)
		}
		out, closer = f, func() { _ = f.Close() }
	}

	logger := log.NewWithOptions(out, log.Options{
		Level:           level,
		ReportTimestamp: true,
	})
	return cfg, logger, closer, nil
}

// signalContext creates a context that is cancelled on interrupt signals
func signalContext(logger *log.Logger) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		select {
		case sig := <-sigChan:
			logger.Info("Received signal, shutting down", "signal", sig.String())
			cancel()
		case <-ctx.Done():
		}
		signal.Stop(sigChan)
	}()

	return ctx, cancel
}

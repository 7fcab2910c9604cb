package main

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/lox/landlord/internal/bot"
	"github.com/lox/landlord/internal/config"
	"github.com/lox/landlord/internal/fileutil"
	"github.com/lox/landlord/internal/simulator"
)

// SimulateCmd plays a batch of bot-only games.
type SimulateCmd struct {
	Games      int           `short:"n" help:"Number of games (overrides config)"`
	Seed       *int64        `help:"Base seed (overrides config)"`
	Workers    int           `short:"w" help:"Games played in parallel (overrides config)"`
	Timeout    time.Duration `default:"0s" help:"Abort a single game after this long (0 disables)"`
	OutcomeLog string        `help:"Append one outcome line per game to this file (overrides config)"`
	RecordDir  string        `help:"Write one TOML record per game to this directory (overrides config)"`
	Summary    string        `help:"Also write the summary to this file"`
}

func (c *SimulateCmd) Run(g *Globals) error {
	cfg, logger, closeLog, err := g.setup(os.Stderr)
	if err != nil {
		return err
	}
	defer closeLog()

	if c.Games > 0 {
		cfg.Games = c.Games
	}
	if c.Seed != nil {
		cfg.Seed = *c.Seed
	}
	if c.Workers > 0 {
		cfg.Workers = c.Workers
	}
	if c.OutcomeLog != "" {
		cfg.OutcomeLog = c.OutcomeLog
	}
	if c.RecordDir != "" {
		cfg.RecordDir = c.RecordDir
	}
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	landlord, farmer, err := sideConfigs(cfg)
	if err != nil {
		return err
	}

	simConfig := simulator.Config{
		Games:     cfg.Games,
		Seed:      cfg.Seed,
		Workers:   cfg.Workers,
		Landlord:  landlord,
		Farmer:    farmer,
		Timeout:   c.Timeout,
		RecordDir: cfg.RecordDir,
		Logger:    logger,
	}

	if cfg.OutcomeLog != "" {
		f, err := fileutil.OpenAppend(cfg.OutcomeLog)
		if err != nil {
			return fmt.Errorf("opening outcome log: %w", err)
		}
		defer f.Close()
		simConfig.Outcomes = f
	}

	ctx, cancel := signalContext(logger)
	defer cancel()

	stats, err := simulator.New(simConfig).Run(ctx)
	if err != nil {
		return err
	}

	var summary bytes.Buffer
	simulator.PrintSummary(&summary, stats, landlord.Spec(), farmer.Spec())
	fmt.Fprintf(&summary, "Seed: %d\n", cfg.Seed)

	if _, err := os.Stdout.Write(summary.Bytes()); err != nil {
		return err
	}
	if c.Summary != "" {
		err := fileutil.WriteAtomic(c.Summary, 0o644, func(w io.Writer) error {
			_, err := w.Write(summary.Bytes())
			return err
		})
		if err != nil {
			return fmt.Errorf("writing summary: %w", err)
		}
	}
	return nil
}

// sideConfigs resolves the landlord and farmer strategies from cfg.
func sideConfigs(cfg *config.Config) (landlord, farmer simulator.SideConfig, err error) {
	heuristic, err := cfg.BuildHeuristic()
	if err != nil {
		return landlord, farmer, err
	}
	if landlord, err = sideConfig(cfg.Landlord, heuristic, cfg.Heuristic.Name); err != nil {
		return landlord, farmer, fmt.Errorf("landlord: %w", err)
	}
	if farmer, err = sideConfig(cfg.Farmer, heuristic, cfg.Heuristic.Name); err != nil {
		return landlord, farmer, fmt.Errorf("farmer: %w", err)
	}
	return landlord, farmer, nil
}

func sideConfig(ac config.AgentConfig, h bot.Heuristic, name string) (simulator.SideConfig, error) {
	kind, err := bot.ParseKind(ac.Kind)
	if err != nil {
		return simulator.SideConfig{}, err
	}
	return simulator.SideConfig{
		Kind:          kind,
		Depth:         ac.Depth,
		Workers:       ac.Workers,
		Heuristic:     h,
		HeuristicName: name,
	}, nil
}

package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/lox/landlord/internal/bot"
	"github.com/lox/landlord/internal/combo"
	"github.com/lox/landlord/internal/config"
	"github.com/lox/landlord/internal/game"
	"github.com/lox/landlord/internal/gameid"
	"github.com/lox/landlord/internal/randutil"
	"github.com/lox/landlord/internal/record"
	"github.com/lox/landlord/internal/tui"
	"github.com/mattn/go-isatty"
)

// PlayCmd plays a single game. One seat is human unless --watch is set.
type PlayCmd struct {
	Seat   string `short:"s" default:"landlord" enum:"landlord,farmer1,farmer2" help:"Seat to play (landlord|farmer1|farmer2)"`
	Seed   *int64 `help:"Deal seed (random if unset)"`
	Watch  bool   `help:"Let bots play every seat and print the game"`
	Plain  bool   `help:"Use line-based input instead of the full-screen interface"`
	Reveal bool   `help:"Show every starting hand in watch mode"`
}

func (c *PlayCmd) Run(g *Globals) error {
	seat, err := game.ParseSeat(c.Seat)
	if err != nil {
		return err
	}
	fullscreen := !c.Watch && !c.Plain && isatty.IsTerminal(os.Stdin.Fd()) && isatty.IsTerminal(os.Stdout.Fd())

	// The full-screen interface owns the terminal, so logs only go to --log-file.
	var fallback io.Writer = os.Stderr
	if fullscreen {
		fallback = io.Discard
	}
	cfg, logger, closeLog, err := g.setup(fallback)
	if err != nil {
		return err
	}
	defer closeLog()

	seed := time.Now().UnixNano()
	if c.Seed != nil {
		seed = *c.Seed
	} else if cfg.Seed != 0 {
		seed = cfg.Seed
	}

	cat := combo.NewCatalog()
	state, err := game.Deal(cat, randutil.New(seed))
	if err != nil {
		return err
	}
	engine := game.NewEngine(logger, nil)

	var (
		prompter bot.Prompter
		session  *tui.Session
	)
	switch {
	case c.Watch:
		var reveal []game.Seat
		if c.Reveal {
			reveal = game.Seats[:]
		}
		engine.Subscribe(tui.NewPrinter(os.Stdout, reveal...))
	case fullscreen:
		session = tui.NewSession(seat, logger, tea.WithAltScreen())
		session.Start()
		engine.Subscribe(session)
		prompter = session
	default:
		engine.Subscribe(tui.NewPrinter(os.Stdout, seat))
		prompter = tui.NewLinePrompter(os.Stdin, os.Stdout)
	}

	agents, err := buildAgents(cfg, seed, seat, prompter, logger)
	if err != nil {
		if session != nil {
			_ = session.Close()
		}
		return err
	}

	res, err := engine.Play(state, agents)
	if session != nil {
		if err != nil {
			_ = session.Close()
		} else if werr := session.Wait(); werr != nil {
			return werr
		}
	}
	if errors.Is(err, tui.ErrQuit) {
		fmt.Println("Game abandoned.")
		return nil
	}
	if err != nil {
		return err
	}

	if session != nil {
		// the alternate screen is gone, so repeat the result
		for _, line := range tui.FormatEvent(game.GameEndEvent{Winner: res.Winner, Finisher: res.Finisher, Moves: len(res.Moves)}) {
			fmt.Println(line)
		}
	}
	fmt.Printf("Seed: %d\n", seed)

	if cfg.RecordDir != "" {
		landlord, farmer, err := playSpecs(cfg, seat, prompter != nil)
		if err != nil {
			return err
		}
		rec := record.New(gameid.Generate(), seed, landlord, farmer, res, time.Now())
		path, err := record.WriteFile(cfg.RecordDir, rec)
		if err != nil {
			return fmt.Errorf("writing record: %w", err)
		}
		logger.Info("Recorded game", "path", path)
	}
	return nil
}

// buildAgents creates an agent per seat. The human seat gets an interactive
// agent when prompter is set; every other seat plays its side's configured
// strategy.
func buildAgents(cfg *config.Config, seed int64, human game.Seat, prompter bot.Prompter, logger *log.Logger) ([game.NumSeats]game.Agent, error) {
	var agents [game.NumSeats]game.Agent

	heuristic, err := cfg.BuildHeuristic()
	if err != nil {
		return agents, err
	}

	for _, seat := range game.Seats {
		if prompter != nil && seat == human {
			agents[seat] = bot.NewHumanAgent(seat, prompter, logger)
			continue
		}
		ac := cfg.Farmer
		if seat == game.Landlord {
			ac = cfg.Landlord
		}
		kind, err := bot.ParseKind(ac.Kind)
		if err != nil {
			return agents, fmt.Errorf("%s: %w", seat, err)
		}
		if kind == bot.Interactive {
			return agents, fmt.Errorf("%s: only the player's own seat can be human", seat)
		}
		agents[seat], err = bot.New(kind, seat, bot.Options{
			Depth:     ac.Depth,
			Workers:   ac.Workers,
			Heuristic: heuristic,
			Rng:       randutil.New(randutil.Derive(seed, int(seat)+1)),
			Logger:    logger,
		})
		if err != nil {
			return agents, fmt.Errorf("%s: %w", seat, err)
		}
	}
	return agents, nil
}

// playSpecs describes both sides for the game record.
func playSpecs(cfg *config.Config, human game.Seat, interactive bool) (landlord, farmer record.AgentSpec, err error) {
	l, f, err := sideConfigs(cfg)
	if err != nil {
		return landlord, farmer, err
	}
	landlord, farmer = l.Spec(), f.Spec()
	if interactive {
		h := record.AgentSpec{Kind: bot.Interactive.String(), Heuristic: "none"}
		if human == game.Landlord {
			landlord = h
		} else {
			farmer = h
		}
	}
	return landlord, farmer, nil
}

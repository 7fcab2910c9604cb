package simulator

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/lox/landlord/internal/bot"
	"github.com/lox/landlord/internal/combo"
	"github.com/lox/landlord/internal/game"
	"github.com/lox/landlord/internal/gameid"
	"github.com/lox/landlord/internal/randutil"
	"github.com/lox/landlord/internal/record"
	"github.com/lox/landlord/internal/statistics"
	"golang.org/x/sync/errgroup"
)

// SideConfig selects the agent that plays one side.
type SideConfig struct {
	Kind    bot.Kind
	Depth   int
	Workers int
	// Heuristic and HeuristicName configure search agents; the name is
	// only used in outcome lines and records.
	Heuristic     bot.Heuristic
	HeuristicName string
}

// Spec describes the side for outcome logs and records.
func (c SideConfig) Spec() record.AgentSpec {
	name := c.HeuristicName
	if name == "" {
		name = "weighted"
	}
	return record.AgentSpec{Kind: c.Kind.String(), Heuristic: name, Depth: c.Depth}
}

// Config holds configuration for running simulations
type Config struct {
	Games    int
	Seed     int64
	Workers  int // games played in parallel
	Landlord SideConfig
	Farmer   SideConfig
	// Timeout bounds a single game; zero means no limit.
	Timeout time.Duration
	// Outcomes receives one outcome line per game when set.
	Outcomes io.Writer
	// RecordDir receives one TOML record per game when set.
	RecordDir string
	Catalog   *combo.Catalog
	Clock     quartz.Clock
	Logger    *log.Logger
}

// Simulator plays batches of self-play games
type Simulator struct {
	config  Config
	catalog *combo.Catalog
	ids     *gameid.Generator
	logger  *log.Logger

	mu    sync.Mutex
	stats *statistics.Statistics
}

// New creates a new simulator with the given configuration
func New(config Config) *Simulator {
	if config.Workers < 1 {
		config.Workers = 1
	}
	if config.Clock == nil {
		config.Clock = quartz.NewReal()
	}
	if config.Logger == nil {
		config.Logger = log.Default()
	}
	catalog := config.Catalog
	if catalog == nil {
		catalog = combo.NewCatalog()
	}
	return &Simulator{
		config:  config,
		catalog: catalog,
		ids:     gameid.NewGenerator(nil),
		logger:  config.Logger.WithPrefix("simulator"),
	}
}

// GameSeed returns the seed game i is dealt and played with.
func (s *Simulator) GameSeed(i int) int64 {
	return randutil.Derive(s.config.Seed, i)
}

// Run plays all games and returns the aggregated results. Each game is fully
// determined by its seed, so results do not depend on the worker count.
func (s *Simulator) Run(ctx context.Context) (*statistics.Statistics, error) {
	for _, side := range []SideConfig{s.config.Landlord, s.config.Farmer} {
		if side.Kind == bot.Interactive {
			return nil, errors.New("simulations cannot include human agents")
		}
	}
	if s.config.Games < 1 {
		return nil, fmt.Errorf("games must be positive, got %d", s.config.Games)
	}

	s.stats = &statistics.Statistics{}
	start := s.config.Clock.Now()
	s.logger.Info("Starting simulation",
		"games", s.config.Games,
		"workers", s.config.Workers,
		"landlord", s.config.Landlord.Spec(),
		"farmer", s.config.Farmer.Spec(),
		"seed", s.config.Seed)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.config.Workers)
	for i := range s.config.Games {
		if ctx.Err() != nil {
			break
		}
		g.Go(func() error {
			seed := s.GameSeed(i)
			res, err := s.playGameWithTimeout(ctx, seed)
			if err != nil {
				return fmt.Errorf("game %d (seed %d): %w", i+1, seed, err)
			}
			return s.collect(i, seed, res)
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if err := s.stats.Validate(); err != nil {
		return nil, fmt.Errorf("statistics validation failed: %w", err)
	}

	s.logger.Info("Simulation complete",
		"games", s.stats.Games,
		"landlordWinRate", fmt.Sprintf("%.3f", s.stats.LandlordWinRate()),
		"elapsed", s.config.Clock.Since(start))
	return s.stats, nil
}

// playGameWithTimeout runs a single game with timeout protection. Agents are
// not interruptible, so a timed-out game finishes in the background and is
// discarded.
func (s *Simulator) playGameWithTimeout(ctx context.Context, seed int64) (*game.Result, error) {
	if s.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.config.Timeout)
		defer cancel()
	}

	type outcome struct {
		res *game.Result
		err error
	}
	done := make(chan outcome, 1)
	go func() {
		res, err := s.PlayGame(seed)
		done <- outcome{res, err}
	}()

	select {
	case o := <-done:
		return o.res, o.err
	case <-ctx.Done():
		return nil, fmt.Errorf("game abandoned: %w", ctx.Err())
	}
}

// PlayGame deals and plays one game from seed.
func (s *Simulator) PlayGame(seed int64) (*game.Result, error) {
	dealRng := randutil.New(seed)
	state, err := game.Deal(s.catalog, dealRng)
	if err != nil {
		return nil, err
	}

	var agents [game.NumSeats]game.Agent
	for _, seat := range game.Seats {
		side := s.config.Farmer
		if seat == game.Landlord {
			side = s.config.Landlord
		}
		agents[seat], err = bot.New(side.Kind, seat, bot.Options{
			Depth:     side.Depth,
			Workers:   side.Workers,
			Heuristic: side.Heuristic,
			Rng:       randutil.New(randutil.Derive(seed, int(seat)+1)),
			Clock:     s.config.Clock,
			Logger:    s.config.Logger,
		})
		if err != nil {
			return nil, fmt.Errorf("%s agent: %w", seat, err)
		}
	}

	return game.NewEngine(s.config.Logger, s.config.Clock).Play(state, agents)
}

// collect folds a finished game into the statistics and writes its outcome
// line and record.
func (s *Simulator) collect(i int, seed int64, res *game.Result) error {
	result := statistics.GameResult{
		Winner:   res.Winner,
		Finisher: res.Finisher,
		Moves:    len(res.Moves),
		Seed:     seed,
		Duration: res.Duration,
	}
	for _, m := range res.Moves {
		if m.Action.Type.IsBomb() {
			result.Bombs++
		}
	}

	s.logger.Debug("Game finished", "game", i+1, "seed", seed, "winner", res.Winner, "moves", len(res.Moves))

	landlord, farmer := s.config.Landlord.Spec(), s.config.Farmer.Spec()
	if s.config.RecordDir != "" {
		id, err := s.ids.Generate()
		if err != nil {
			return err
		}
		rec := record.New(id, seed, landlord, farmer, res, s.config.Clock.Now())
		if _, err := record.WriteFile(s.config.RecordDir, rec); err != nil {
			return fmt.Errorf("write record: %w", err)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.stats.Add(result)
	if s.config.Outcomes != nil {
		o := record.Outcome{Landlord: landlord, Farmer: farmer, Winner: res.Winner}
		if err := record.WriteOutcome(s.config.Outcomes, o); err != nil {
			return fmt.Errorf("write outcome: %w", err)
		}
	}
	return nil
}

// PrintSummary prints a summary of simulation results
func PrintSummary(w io.Writer, stats *statistics.Statistics, landlord, farmer record.AgentSpec) {
	low, high := stats.WinRateInterval95()

	fmt.Fprintf(w, "\n=== RESULTS: landlord %s vs farmers %s ===\n", landlord, farmer)
	fmt.Fprintf(w, "Games played: %d\n", stats.Games)

	fmt.Fprintf(w, "\n=== WIN RATES ===\n")
	fmt.Fprintf(w, "Landlord: %d wins (%.1f%%)\n", stats.Landlord.Wins, stats.LandlordWinRate()*100)
	fmt.Fprintf(w, "Farmers:  %d wins (%.1f%%)\n", stats.Farmers.Wins, stats.FarmerWinRate()*100)
	fmt.Fprintf(w, "Landlord 95%% CI: [%.1f%%, %.1f%%]\n", low*100, high*100)
	fmt.Fprintf(w, "Went out: landlord %d, farmer1 %d, farmer2 %d\n",
		stats.Finishers[game.Landlord], stats.Finishers[game.FarmerOne], stats.Finishers[game.FarmerTwo])

	fmt.Fprintf(w, "\n=== GAME LENGTH ===\n")
	fmt.Fprintf(w, "Mean: %.1f moves (std dev %.1f)\n", stats.MeanMoves(), stats.StdDev())
	fmt.Fprintf(w, "Percentiles: P5=%.0f, P25=%.0f, P50=%.0f, P75=%.0f, P95=%.0f\n",
		stats.Percentile(0.05), stats.Percentile(0.25), stats.Median(), stats.Percentile(0.75), stats.Percentile(0.95))
	fmt.Fprintf(w, "Bombs played: %d (%.2f per game)\n", stats.Bombs, float64(stats.Bombs)/float64(max(stats.Games, 1)))
	fmt.Fprintf(w, "Time per game: mean %v, max %v\n", stats.MeanDuration().Round(time.Millisecond), stats.MaxDuration.Round(time.Millisecond))
}

// Package bot provides the agents that play a seat: an alpha-beta search
// agent, a uniform random agent and an interactive human agent.
package bot

import (
	"errors"
	"fmt"
	rand "math/rand/v2"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/lox/landlord/internal/game"
)

// ErrNoActions is returned when an agent is asked to move with no legal action.
var ErrNoActions = errors.New("no legal actions")

// Kind enumerates the available agent strategies.
type Kind int

const (
	Random Kind = iota
	AlphaBeta
	Interactive
)

func (k Kind) String() string {
	switch k {
	case Random:
		return "random"
	case AlphaBeta:
		return "alphabeta"
	case Interactive:
		return "human"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// ParseKind parses an agent kind name.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "random", "rand":
		return Random, nil
	case "alphabeta", "alpha-beta", "search":
		return AlphaBeta, nil
	case "human", "interactive", "manual":
		return Interactive, nil
	}
	return 0, fmt.Errorf("unknown agent kind %q", s)
}

// Options configures the agent built by New. Fields not used by a kind are ignored.
type Options struct {
	// Depth is the search depth in rounds (AlphaBeta).
	Depth int
	// Workers > 1 evaluates root moves in parallel (AlphaBeta).
	Workers int
	// Heuristic scores non-terminal leaves (AlphaBeta); defaults to DefaultHeuristic.
	Heuristic Heuristic
	// Rng drives random choices (Random).
	Rng *rand.Rand
	// Prompter collects input (Interactive).
	Prompter Prompter
	Clock    quartz.Clock
	Logger   *log.Logger
}

// New builds an agent of the given kind for seat.
func New(kind Kind, seat game.Seat, opts Options) (game.Agent, error) {
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}

	switch kind {
	case Random:
		if opts.Rng == nil {
			return nil, errors.New("random agent needs an rng")
		}
		return NewRandomBot(seat, opts.Rng, logger), nil
	case AlphaBeta:
		if opts.Depth < 1 {
			return nil, fmt.Errorf("search depth must be at least 1, got %d", opts.Depth)
		}
		b := NewAlphaBetaBot(seat, opts.Depth, opts.Heuristic, logger)
		if opts.Workers > 1 {
			b.workers = opts.Workers
		}
		if opts.Clock != nil {
			b.clock = opts.Clock
		}
		return b, nil
	case Interactive:
		if opts.Prompter == nil {
			return nil, errors.New("interactive agent needs a prompter")
		}
		return NewHumanAgent(seat, opts.Prompter, logger), nil
	}
	return nil, fmt.Errorf("unknown agent kind %v", kind)
}

package bot

import (
	"fmt"
	"math"
	"sync/atomic"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/lox/landlord/internal/combo"
	"github.com/lox/landlord/internal/game"
	"golang.org/x/sync/errgroup"
)

const (
	// WinScore is the value of a finished game won by the searching seat's side.
	WinScore = 1000
	// LossScore is the value of a finished game lost by the searching seat's side.
	LossScore = -1000
)

// AlphaBetaBot searches a bounded number of rounds ahead with alpha-beta
// pruning. Its seat maximizes; the two other seats form one minimizing layer,
// whichever of them is to move. A round ends each time play returns to the
// searching seat.
type AlphaBetaBot struct {
	seat      game.Seat
	depth     int
	heuristic Heuristic
	workers   int
	clock     quartz.Clock
	logger    *log.Logger
}

// NewAlphaBetaBot creates a search agent. A nil heuristic selects DefaultHeuristic.
func NewAlphaBetaBot(seat game.Seat, depth int, heuristic Heuristic, logger *log.Logger) *AlphaBetaBot {
	if heuristic == nil {
		heuristic = DefaultHeuristic()
	}
	return &AlphaBetaBot{
		seat:      seat,
		depth:     depth,
		heuristic: heuristic,
		workers:   1,
		clock:     quartz.NewReal(),
		logger:    logger.WithPrefix("alphabeta"),
	}
}

// Evaluate scores s for the bot's seat: WinScore or LossScore once the game
// is over, the heuristic over the seat's hand otherwise.
func (b *AlphaBetaBot) Evaluate(s game.State) int {
	switch {
	case s.IsWin(b.seat):
		return WinScore
	case s.IsLoss(b.seat):
		return LossScore
	}
	return b.heuristic(s.Hand(b.seat))
}

// ChooseAction returns the first action reaching the best guaranteed value.
func (b *AlphaBetaBot) ChooseAction(s game.State) (combo.Combination, error) {
	actions := s.Actions(b.seat)
	if len(actions) == 0 {
		return combo.Combination{}, ErrNoActions
	}

	start := b.clock.Now()
	sr := &search{bot: b, position: s.Position(b.seat)}

	children := make([]game.State, len(actions))
	for i, a := range actions {
		child, err := s.Next(a)
		if err != nil {
			return combo.Combination{}, fmt.Errorf("apply %s: %w", a, err)
		}
		children[i] = child
	}

	var values []int
	if b.workers > 1 && len(children) > 1 {
		values = sr.parallelRoot(children, b.workers)
	} else {
		values = sr.sequentialRoot(children)
	}

	best := 0
	for i, v := range values {
		if v > values[best] {
			best = i
		}
	}

	b.logger.Debug("Search complete",
		"seat", b.seat,
		"action", actions[best],
		"value", values[best],
		"options", len(actions),
		"nodes", sr.nodes.Load(),
		"elapsed", b.clock.Since(start))
	return actions[best], nil
}

type search struct {
	bot      *AlphaBetaBot
	position int
	nodes    atomic.Int64
}

// sequentialRoot evaluates root moves in order, narrowing alpha as it goes.
// Values of moves that cannot beat the running best may be upper bounds.
func (sr *search) sequentialRoot(children []game.State) []int {
	values := make([]int, len(children))
	alpha := math.MinInt
	best := math.MinInt
	for i, child := range children {
		values[i] = sr.value(child, 0, alpha, math.MaxInt)
		if values[i] > best {
			best = values[i]
		}
		alpha = max(alpha, best)
	}
	return values
}

// parallelRoot evaluates each root subtree with a full window. The states are
// immutable and the catalog is read-only, so subtrees share nothing mutable.
func (sr *search) parallelRoot(children []game.State, workers int) []int {
	values := make([]int, len(children))
	var g errgroup.Group
	g.SetLimit(workers)
	for i, child := range children {
		g.Go(func() error {
			values[i] = sr.value(child, 0, math.MinInt, math.MaxInt)
			return nil
		})
	}
	_ = g.Wait()
	return values
}

func (sr *search) value(s game.State, depth, alpha, beta int) int {
	sr.nodes.Add(1)
	if s.IsTerminal() || depth >= sr.bot.depth {
		return sr.bot.Evaluate(s)
	}
	actions := s.Actions(s.Turn())
	if len(actions) == 0 {
		return sr.bot.Evaluate(s)
	}

	maximizing := s.TurnPosition() == sr.position
	best := math.MaxInt
	if maximizing {
		best = math.MinInt
	}

	for _, a := range actions {
		child, err := s.Next(a)
		if err != nil {
			panic(fmt.Sprintf("legal action %s rejected: %v", a, err))
		}
		childDepth := depth
		if child.TurnPosition() == sr.position {
			childDepth++
		}
		v := sr.value(child, childDepth, alpha, beta)

		if maximizing {
			best = max(best, v)
			if best > beta {
				return best
			}
			alpha = max(alpha, best)
		} else {
			best = min(best, v)
			if best < alpha {
				return best
			}
			beta = min(beta, best)
		}
	}
	return best
}

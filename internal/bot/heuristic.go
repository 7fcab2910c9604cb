package bot

import (
	"fmt"
	"strings"

	"github.com/lox/landlord/internal/deck"
)

// Heuristic scores a non-terminal hand from its holder's point of view.
// Higher is better. Scores must stay well inside (LossScore, WinScore).
type Heuristic func(hand deck.Hand) int

// DefaultWeights values each held rank: low cards are liabilities, high
// cards and jokers are control.
var DefaultWeights = [deck.NumRanks]int{-4, -3, -3, -2, -2, -1, -1, 0, 0, 1, 1, 2, 3, 4, 5}

// DefaultBaseline is the hand size the progress term counts down from.
const DefaultBaseline = 24

// Weighted sums per-rank weights over the hand and adds baseline minus the
// hand size, rewarding progress towards an empty hand.
func Weighted(weights [deck.NumRanks]int, baseline int) Heuristic {
	return func(hand deck.Hand) int {
		score := baseline - hand.Len()
		for r, n := range hand {
			score += weights[r] * int(n)
		}
		return score
	}
}

// Progress only rewards shedding cards.
func Progress(baseline int) Heuristic {
	return func(hand deck.Hand) int {
		return baseline - hand.Len()
	}
}

// DefaultHeuristic is Weighted with the default weights and baseline.
func DefaultHeuristic() Heuristic {
	return Weighted(DefaultWeights, DefaultBaseline)
}

// ScoreBound returns the largest magnitude Weighted(weights, baseline) can
// reach on a hand of at most deck.LandlordHandSize cards.
func ScoreBound(weights [deck.NumRanks]int, baseline int) int {
	heaviest := 0
	for _, w := range weights {
		heaviest = max(heaviest, abs(w))
	}
	return heaviest*deck.LandlordHandSize + abs(baseline) + deck.LandlordHandSize
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// ParseHeuristic resolves an evaluation name: "weighted" or "progress".
func ParseHeuristic(name string, weights [deck.NumRanks]int, baseline int) (Heuristic, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "weighted", "evaluation":
		return Weighted(weights, baseline), nil
	case "progress":
		return Progress(baseline), nil
	}
	return nil, fmt.Errorf("unknown heuristic %q", name)
}

package statistics

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/lox/landlord/internal/game"
)

// GameResult represents the outcome of a single game
type GameResult struct {
	Winner   game.Side
	Finisher game.Seat
	Moves    int           // Actions taken, passes included
	Bombs    int           // Bombs and king bombs played
	Seed     int64         // RNG seed for this game (for replay)
	Duration time.Duration // Wall time including agent thinking
}

// SideStats tracks results for games won by one side
type SideStats struct {
	Wins     int
	SumMoves int
}

// Statistics aggregates simulation results from the landlord's point of view
type Statistics struct {
	Games     int
	SumMoves  float64
	SumMoves2 float64   // Sum of squares for variance calculation
	Values    []float64 // Game lengths for median/percentile calculation

	Landlord SideStats
	Farmers  SideStats

	// Which seat emptied its hand
	Finishers [game.NumSeats]int

	Bombs         int
	TotalDuration time.Duration
	MaxDuration   time.Duration
}

// Add incorporates a new game result into the statistics
func (s *Statistics) Add(result GameResult) {
	moves := float64(result.Moves)
	s.Games++
	s.SumMoves += moves
	s.SumMoves2 += moves * moves
	s.Values = append(s.Values, moves)

	switch result.Winner {
	case game.LandlordSide:
		s.Landlord.Wins++
		s.Landlord.SumMoves += result.Moves
	case game.FarmerSide:
		s.Farmers.Wins++
		s.Farmers.SumMoves += result.Moves
	}
	if int(result.Finisher) < game.NumSeats {
		s.Finishers[result.Finisher]++
	}

	s.Bombs += result.Bombs
	s.TotalDuration += result.Duration
	if result.Duration > s.MaxDuration {
		s.MaxDuration = result.Duration
	}
}

// Merge folds the results collected by another worker into s
func (s *Statistics) Merge(other *Statistics) {
	s.Games += other.Games
	s.SumMoves += other.SumMoves
	s.SumMoves2 += other.SumMoves2
	s.Values = append(s.Values, other.Values...)
	s.Landlord.Wins += other.Landlord.Wins
	s.Landlord.SumMoves += other.Landlord.SumMoves
	s.Farmers.Wins += other.Farmers.Wins
	s.Farmers.SumMoves += other.Farmers.SumMoves
	for i := range s.Finishers {
		s.Finishers[i] += other.Finishers[i]
	}
	s.Bombs += other.Bombs
	s.TotalDuration += other.TotalDuration
	s.MaxDuration = max(s.MaxDuration, other.MaxDuration)
}

// LandlordWinRate returns the fraction of games won by the landlord
func (s *Statistics) LandlordWinRate() float64 {
	if s.Games == 0 {
		return 0
	}
	return float64(s.Landlord.Wins) / float64(s.Games)
}

// FarmerWinRate returns the fraction of games won by the farmers
func (s *Statistics) FarmerWinRate() float64 {
	if s.Games == 0 {
		return 0
	}
	return float64(s.Farmers.Wins) / float64(s.Games)
}

// WinRateInterval95 returns the Wilson score 95% interval for the landlord
// win rate.
func (s *Statistics) WinRateInterval95() (float64, float64) {
	return WilsonInterval95(s.Landlord.Wins, s.Games)
}

// WilsonInterval95 returns the Wilson score 95% interval for wins out of n
// trials. It stays inside [0, 1] even for small samples.
func WilsonInterval95(wins, n int) (float64, float64) {
	if n == 0 {
		return 0, 1
	}
	const z = 1.96
	fn := float64(n)
	p := float64(wins) / fn
	denom := 1 + z*z/fn
	centre := (p + z*z/(2*fn)) / denom
	margin := z * math.Sqrt(p*(1-p)/fn+z*z/(4*fn*fn)) / denom
	return math.Max(0, centre-margin), math.Min(1, centre+margin)
}

// MeanMoves returns the average game length in moves
func (s *Statistics) MeanMoves() float64 {
	if s.Games == 0 {
		return 0
	}
	return s.SumMoves / float64(s.Games)
}

// Variance returns the sample variance of game lengths
func (s *Statistics) Variance() float64 {
	if s.Games < 2 {
		return 0
	}
	mean := s.MeanMoves()
	return (s.SumMoves2 - float64(s.Games)*mean*mean) / float64(s.Games-1)
}

// StdDev returns the sample standard deviation of game lengths
func (s *Statistics) StdDev() float64 {
	return math.Sqrt(s.Variance())
}

// MeanDuration returns the average wall time per game
func (s *Statistics) MeanDuration() time.Duration {
	if s.Games == 0 {
		return 0
	}
	return s.TotalDuration / time.Duration(s.Games)
}

// Median returns the median game length
func (s *Statistics) Median() float64 {
	return s.Percentile(0.5)
}

// Percentile returns the game length at the given percentile (0.0 to 1.0)
func (s *Statistics) Percentile(p float64) float64 {
	if len(s.Values) == 0 {
		return 0
	}
	sorted := make([]float64, len(s.Values))
	copy(sorted, s.Values)
	sort.Float64s(sorted)

	index := p * float64(len(sorted)-1)
	lower := int(index)
	upper := lower + 1

	if upper >= len(sorted) {
		return sorted[len(sorted)-1]
	}

	weight := index - float64(lower)
	return sorted[lower]*(1-weight) + sorted[upper]*weight
}

// Validate performs consistency checks on the collected data
func (s *Statistics) Validate() error {
	if s.Games <= 0 {
		return fmt.Errorf("invalid games count: %d", s.Games)
	}

	if len(s.Values) != s.Games {
		return fmt.Errorf("values array length (%d) does not match games count (%d)",
			len(s.Values), s.Games)
	}

	if wins := s.Landlord.Wins + s.Farmers.Wins; wins != s.Games {
		return fmt.Errorf("wins (%d) do not match games (%d)", wins, s.Games)
	}

	// The landlord wins exactly when the landlord goes out
	if s.Finishers[game.Landlord] != s.Landlord.Wins {
		return fmt.Errorf("landlord finished %d games but won %d",
			s.Finishers[game.Landlord], s.Landlord.Wins)
	}
	if farmers := s.Finishers[game.FarmerOne] + s.Finishers[game.FarmerTwo]; farmers != s.Farmers.Wins {
		return fmt.Errorf("farmers finished %d games but won %d", farmers, s.Farmers.Wins)
	}

	return nil
}

package bot

import (
	rand "math/rand/v2"

	"github.com/charmbracelet/log"
	"github.com/lox/landlord/internal/combo"
	"github.com/lox/landlord/internal/game"
)

// RandomBot picks uniformly among the legal actions
type RandomBot struct {
	seat   game.Seat
	rng    *rand.Rand
	logger *log.Logger
}

// NewRandomBot creates a new RandomBot instance. rng is not shared with other goroutines.
func NewRandomBot(seat game.Seat, rng *rand.Rand, logger *log.Logger) *RandomBot {
	return &RandomBot{seat: seat, rng: rng, logger: logger.WithPrefix("random")}
}

func (r *RandomBot) ChooseAction(s game.State) (combo.Combination, error) {
	actions := s.Actions(r.seat)
	if len(actions) == 0 {
		return combo.Combination{}, ErrNoActions
	}
	action := actions[r.rng.IntN(len(actions))]
	r.logger.Debug("Random choice", "seat", r.seat, "action", action, "options", len(actions))
	return action, nil
}

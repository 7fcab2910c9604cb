package bot

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/lox/landlord/internal/combo"
	"github.com/lox/landlord/internal/deck"
	"github.com/lox/landlord/internal/game"
	"github.com/lox/landlord/internal/rules"
)

// PassKeyword is the input that passes instead of naming cards.
const PassKeyword = "pass"

// PromptRequest is what a human sees when asked for a move.
type PromptRequest struct {
	Seat     game.Seat
	Hand     deck.Hand
	Previous combo.Combination
	CanPass  bool
	Kitty    deck.Hand
}

// Prompter collects raw input for a human player.
type Prompter interface {
	// Prompt returns one line of input. An error ends the game.
	Prompt(req PromptRequest) (string, error)
	// Reject tells the player why the last input was refused.
	Reject(reason string)
}

// HumanAgent asks a Prompter for moves until the input classifies to a legal action.
type HumanAgent struct {
	seat     game.Seat
	prompter Prompter
	logger   *log.Logger
}

// NewHumanAgent creates a new human agent with a prompter
func NewHumanAgent(seat game.Seat, prompter Prompter, logger *log.Logger) *HumanAgent {
	return &HumanAgent{seat: seat, prompter: prompter, logger: logger.WithPrefix("human")}
}

func (h *HumanAgent) ChooseAction(s game.State) (combo.Combination, error) {
	req := PromptRequest{
		Seat:     h.seat,
		Hand:     s.Hand(h.seat),
		Previous: s.PreviousPlay(),
		CanPass:  !s.PreviousPlay().IsPass(),
		Kitty:    s.Kitty(),
	}

	for {
		line, err := h.prompter.Prompt(req)
		if err != nil {
			return combo.Combination{}, err
		}

		action, err := ParseAction(s, h.seat, line)
		if err == nil {
			return action, nil
		}
		h.logger.Warn("Rejected play", "seat", h.seat, "input", line, "error", err)
		h.prompter.Reject(err.Error())
	}
}

// ParseAction turns a line of text into a legal action for seat: either the
// pass keyword or a comma/space separated rank list. Failures wrap
// rules.ErrInvalidPlay.
func ParseAction(s game.State, seat game.Seat, line string) (combo.Combination, error) {
	var selection []deck.Rank
	if !strings.EqualFold(strings.TrimSpace(line), PassKeyword) {
		ranks, err := deck.ParseRanks(line)
		if err != nil {
			return combo.Combination{}, fmt.Errorf("%w: %v", rules.ErrInvalidPlay, err)
		}
		selection = ranks
	}
	return rules.Classify(s.PreviousPlay(), selection, s.Hand(seat), s.Candidates(seat))
}

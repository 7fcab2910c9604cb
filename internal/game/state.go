package game

import (
	"errors"
	"fmt"
	rand "math/rand/v2"

	"github.com/lox/landlord/internal/combo"
	"github.com/lox/landlord/internal/deck"
	"github.com/lox/landlord/internal/rules"
)

var (
	// ErrIllegalAction reports an action the acting seat cannot make.
	ErrIllegalAction = errors.New("illegal action")
	// ErrGameOver reports a transition attempted on a finished game.
	ErrGameOver = errors.New("game is over")
)

// Setup describes a table before the first move.
type Setup struct {
	Hands [NumSeats]deck.Hand
	// Kitty holds the face-up cards the landlord picked up; they are already part of Hands[Landlord].
	Kitty deck.Hand
	// Order is the turn order. Landlord must come first.
	Order [NumSeats]Seat
}

// State is an immutable snapshot of a game. Next returns a new State and
// never modifies its receiver, so any number of hypothetical futures can be
// explored from the same ancestor. Candidate caches are shared between all
// states derived from one deal.
type State struct {
	hands      [NumSeats]deck.Hand
	candidates *[NumSeats][]*combo.Combination
	kitty      deck.Hand
	discard    deck.Hand
	order      [NumSeats]Seat
	position   [NumSeats]int
	turn       int
	previous   combo.Combination
	passes     int
	terminal   bool
	winner     Side
}

// NewState validates setup and analyzes each seat's hand against cat.
func NewState(cat *combo.Catalog, setup Setup) (State, error) {
	var s State
	if setup.Order[0] != Landlord {
		return s, fmt.Errorf("turn order must start with the landlord, got %s", setup.Order[0])
	}
	var seen [NumSeats]bool
	for i, seat := range setup.Order {
		if int(seat) >= NumSeats || seen[seat] {
			return s, fmt.Errorf("invalid turn order %v", setup.Order)
		}
		seen[seat] = true
		s.position[seat] = i
	}
	for _, seat := range Seats {
		if err := setup.Hands[seat].Validate(); err != nil {
			return s, fmt.Errorf("%s: %w", seat, err)
		}
	}

	candidates := new([NumSeats][]*combo.Combination)
	for _, seat := range Seats {
		candidates[seat] = rules.Analyze(cat, setup.Hands[seat])
	}

	s.hands = setup.Hands
	s.candidates = candidates
	s.kitty = setup.Kitty
	s.order = setup.Order
	return s, nil
}

// Deal shuffles a fresh deck with rng, gives the kitty to the landlord and
// randomizes the order of the two farmers.
func Deal(cat *combo.Catalog, rng *rand.Rand) (State, error) {
	d := deck.DealGame(rng)

	order := [NumSeats]Seat{Landlord, FarmerOne, FarmerTwo}
	if rng.IntN(2) == 1 {
		order[1], order[2] = order[2], order[1]
	}

	return NewState(cat, Setup{
		Hands: [NumSeats]deck.Hand{
			Landlord:  d.Piles[0].Add(d.Kitty),
			FarmerOne: d.Piles[1],
			FarmerTwo: d.Piles[2],
		},
		Kitty: d.Kitty,
		Order: order,
	})
}

// Turn returns the seat to act.
func (s State) Turn() Seat {
	return s.order[s.turn]
}

// TurnPosition returns the turn-order index of the seat to act.
func (s State) TurnPosition() int {
	return s.turn
}

// Position returns seat's fixed index in the turn order.
func (s State) Position(seat Seat) int {
	return s.position[seat]
}

// Order returns the turn order fixed at deal time.
func (s State) Order() [NumSeats]Seat {
	return s.order
}

// Hand returns a copy of seat's remaining cards.
func (s State) Hand(seat Seat) deck.Hand {
	return s.hands[seat]
}

// Candidates returns seat's cached realizable combinations. The slice is shared and read-only.
func (s State) Candidates(seat Seat) []*combo.Combination {
	if s.candidates == nil {
		return nil
	}
	return s.candidates[seat]
}

// Kitty returns the three face-up cards the landlord picked up.
func (s State) Kitty() deck.Hand {
	return s.kitty
}

// Discard returns every card played so far.
func (s State) Discard() deck.Hand {
	return s.discard
}

// PreviousPlay returns the play to beat; a pass means the seat to act leads.
func (s State) PreviousPlay() combo.Combination {
	return s.previous
}

// PassCount returns the number of consecutive passes, 0 or 1.
func (s State) PassCount() int {
	return s.passes
}

// IsTerminal reports whether some seat has emptied its hand.
func (s State) IsTerminal() bool {
	return s.terminal
}

// Winner returns the winning side, or NoSide while the game is running.
func (s State) Winner() Side {
	return s.winner
}

// IsWin reports whether the game is over and seat's side won.
func (s State) IsWin(seat Seat) bool {
	return s.terminal && s.winner == seat.Side()
}

// IsLoss reports whether the game is over and seat's side lost.
func (s State) IsLoss(seat Seat) bool {
	return s.terminal && s.winner != seat.Side()
}

// CardCount returns the number of cards in hands plus the discard pile. It is
// 54 for every state reached from Deal.
func (s State) CardCount() int {
	n := s.discard.Len()
	for _, h := range s.hands {
		n += h.Len()
	}
	return n
}

// Actions returns the legal actions for seat, or nil once the game is over.
func (s State) Actions(seat Seat) []combo.Combination {
	if s.terminal {
		return nil
	}
	return rules.Successors(s.previous, s.hands[seat], s.Candidates(seat))
}

// Next applies action for the seat to act and returns the resulting state.
// The first of two consecutive passes only moves the turn on; the second
// clears the table so the next seat must lead.
func (s State) Next(action combo.Combination) (State, error) {
	if s.terminal {
		return s, ErrGameOver
	}
	seat := s.Turn()
	rest, ok := s.hands[seat].Sub(action.Cards())
	if !ok {
		return s, fmt.Errorf("%w: %s does not hold %s", ErrIllegalAction, seat, action)
	}

	next := s
	if rest.IsEmpty() {
		next.terminal = true
		next.winner = seat.Side()
	}
	next.turn = (s.turn + 1) % NumSeats

	if action.IsPass() && s.passes < 1 {
		next.passes++
		return next, nil
	}
	if !action.IsPass() {
		next.passes = 0
		next.discard = s.discard.Add(action.Cards())
	}
	next.previous = action
	next.hands[seat] = rest
	return next, nil
}

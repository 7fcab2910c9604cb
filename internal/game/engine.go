package game

import (
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/lox/landlord/internal/deck"
)

// maxMoves bounds a game; every trick removes at least one card, so a real
// game ends far sooner.
const maxMoves = deck.DeckSize * NumSeats * 2

// Engine runs the game loop shared by interactive play and simulation.
type Engine struct {
	logger    *log.Logger
	clock     quartz.Clock
	observers []Observer
}

// NewEngine creates a game engine. A nil clock selects the real clock.
func NewEngine(logger *log.Logger, clock quartz.Clock) *Engine {
	if clock == nil {
		clock = quartz.NewReal()
	}
	return &Engine{logger: logger.WithPrefix("engine"), clock: clock}
}

// Subscribe registers an observer for all subsequent games.
func (e *Engine) Subscribe(o Observer) {
	e.observers = append(e.observers, o)
}

func (e *Engine) publish(ev Event) {
	for _, o := range e.observers {
		o.OnEvent(ev)
	}
}

// Result contains the results of a completed game
type Result struct {
	Winner   Side
	Finisher Seat
	Initial  State
	Final    State
	Moves    []Move
	Duration time.Duration
}

// Play runs a game from s until a seat empties its hand. Each agent must
// return one of the legal actions for its seat; an agent error or an
// illegal choice stops the game.
func (e *Engine) Play(s State, agents [NumSeats]Agent) (*Result, error) {
	for _, seat := range Seats {
		if agents[seat] == nil {
			return nil, fmt.Errorf("no agent for %s", seat)
		}
	}

	start := e.clock.Now()
	result := &Result{Initial: s}
	e.logger.Debug("Starting game", "order", s.Order(), "kitty", s.Kitty())
	e.publish(GameStartEvent{State: s, Kitty: s.Kitty(), Order: s.Order(), timestamp: e.clock.Now()})

	for !s.IsTerminal() {
		if len(result.Moves) >= maxMoves {
			return nil, fmt.Errorf("game exceeded %d moves", maxMoves)
		}

		seat := s.Turn()
		legal := s.Actions(seat)
		action, err := agents[seat].ChooseAction(s)
		if err != nil {
			return nil, fmt.Errorf("%s failed to choose an action: %w", seat, err)
		}
		if !containsAction(legal, action) {
			return nil, fmt.Errorf("%w: %s chose %s against %s", ErrIllegalAction, seat, action, s.PreviousPlay())
		}

		move := Move{Seat: seat, Action: action, Leading: s.PreviousPlay().IsPass()}
		next, err := s.Next(action)
		if err != nil {
			return nil, err
		}
		result.Moves = append(result.Moves, move)

		e.logger.Debug("Player action",
			"seat", seat,
			"action", action,
			"cardsLeft", next.Hand(seat).Len())
		e.publish(MoveEvent{Move: move, After: next, timestamp: e.clock.Now()})

		if next.IsTerminal() {
			result.Finisher = seat
		}
		s = next
	}

	result.Winner = s.Winner()
	result.Final = s
	result.Duration = e.clock.Since(start)
	e.logger.Debug("Game complete", "winner", result.Winner, "finisher", result.Finisher, "moves", len(result.Moves))
	e.publish(GameEndEvent{Winner: result.Winner, Finisher: result.Finisher, Moves: len(result.Moves), timestamp: e.clock.Now()})
	return result, nil
}

package game

import (
	"time"

	"github.com/lox/landlord/internal/combo"
	"github.com/lox/landlord/internal/deck"
)

// EventType represents a game event type with type safety
type EventType string

const (
	EventTypeGameStart EventType = "game_start"
	EventTypeMove      EventType = "move"
	EventTypeGameEnd   EventType = "game_end"
)

func (et EventType) String() string {
	return string(et)
}

// Event is anything the engine reports while a game runs.
type Event interface {
	EventType() EventType
	Timestamp() time.Time
}

// Observer receives engine events synchronously.
type Observer interface {
	OnEvent(Event)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(Event)

func (f ObserverFunc) OnEvent(e Event) { f(e) }

// GameStartEvent is published before the first move.
type GameStartEvent struct {
	State     State
	Kitty     deck.Hand
	Order     [NumSeats]Seat
	timestamp time.Time
}

func (e GameStartEvent) EventType() EventType { return EventTypeGameStart }
func (e GameStartEvent) Timestamp() time.Time { return e.timestamp }

// MoveEvent is published after each applied action.
type MoveEvent struct {
	Move      Move
	After     State
	timestamp time.Time
}

func (e MoveEvent) EventType() EventType { return EventTypeMove }
func (e MoveEvent) Timestamp() time.Time { return e.timestamp }

// GameEndEvent is published once the game reaches a terminal state.
type GameEndEvent struct {
	Winner    Side
	Finisher  Seat
	Moves     int
	timestamp time.Time
}

func (e GameEndEvent) EventType() EventType { return EventTypeGameEnd }
func (e GameEndEvent) Timestamp() time.Time { return e.timestamp }

// Move records one action taken during a game.
type Move struct {
	Seat   Seat
	Action combo.Combination
	// Leading is true when the seat faced an empty table.
	Leading bool
}

package game

import "github.com/lox/landlord/internal/combo"

// Agent picks moves for one seat.
// Agents receive immutable state and return one of s.Actions(seat); returning
// anything else is a programming error and aborts the game.
type Agent interface {
	ChooseAction(s State) (combo.Combination, error)
}

// AgentFunc adapts a function to the Agent interface.
type AgentFunc func(s State) (combo.Combination, error)

// ChooseAction calls f(s).
func (f AgentFunc) ChooseAction(s State) (combo.Combination, error) {
	return f(s)
}

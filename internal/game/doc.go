// Package game implements the landlord card game state machine.
//
// The main type is State, an immutable snapshot of a table: three hands, the
// fixed turn order, the play to beat and the consecutive pass count. Next
// applies an action and returns a new State, leaving the receiver untouched,
// which lets search agents branch over many futures from one ancestor.
//
// # Basic Usage
//
// Deal a game and play it out with agents:
//
//	cat := combo.NewCatalog()
//	s, err := game.Deal(cat, randutil.New(42))
//	engine := game.NewEngine(logger, nil)
//	result, err := engine.Play(s, agents)
//
// Or drive the state machine directly:
//
//	actions := s.Actions(s.Turn())
//	s, err = s.Next(actions[0])
//
// # Trick Reset
//
// Two consecutive passes overwrite the previous play with a pass, so the seat
// that made the last real play faces an empty table and must lead again.
package game

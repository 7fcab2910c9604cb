package tui

import (
	"errors"
	"io"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/lox/landlord/internal/bot"
	"github.com/lox/landlord/internal/game"
)

// ErrQuit is returned from Prompt once the player closes the UI.
var ErrQuit = errors.New("player quit")

// Session runs a Model in a Bubble Tea program and bridges it to the game
// loop: it is the human seat's bot.Prompter and an engine observer.
type Session struct {
	program *tea.Program
	model   *Model
	seat    game.Seat

	done    chan struct{}
	runErr  error
	started sync.Once
}

var (
	_ bot.Prompter  = (*Session)(nil)
	_ game.Observer = (*Session)(nil)
)

// NewSession creates a session for the human at seat.
func NewSession(seat game.Seat, logger *log.Logger, opts ...tea.ProgramOption) *Session {
	model := NewModel(seat, logger)
	return &Session{
		program: tea.NewProgram(model, opts...),
		model:   model,
		seat:    seat,
		done:    make(chan struct{}),
	}
}

// Start runs the program in the background.
func (s *Session) Start() {
	s.started.Do(func() {
		go func() {
			_, s.runErr = s.program.Run()
			close(s.done)
		}()
	})
}

// Prompt shows req and blocks until the player submits a line. It returns
// ErrQuit when the player quits.
func (s *Session) Prompt(req bot.PromptRequest) (string, error) {
	s.program.Send(promptMsg{req: req})
	select {
	case r := <-s.model.inputs:
		if r.quit {
			return "", ErrQuit
		}
		return r.line, nil
	case <-s.done:
		return "", ErrQuit
	}
}

// Reject shows why the last line was refused.
func (s *Session) Reject(reason string) {
	s.program.Send(rejectMsg{reason: reason})
}

// OnEvent renders engine events into the game log.
func (s *Session) OnEvent(ev game.Event) {
	s.program.Send(logMsg{lines: FormatEvent(ev, s.seat)})

	var state game.State
	switch e := ev.(type) {
	case game.GameStartEvent:
		state = e.State
	case game.MoveEvent:
		state = e.After
	default:
		return
	}
	var counts [game.NumSeats]int
	for _, seat := range game.Seats {
		counts[seat] = state.Hand(seat).Len()
	}
	s.program.Send(countsMsg{counts: counts})
}

// Wait marks the game finished and blocks until the player dismisses it.
func (s *Session) Wait() error {
	s.program.Send(finishMsg{})
	select {
	case <-s.model.inputs:
	case <-s.done:
	}
	return s.Close()
}

// Close stops the program and restores the terminal.
func (s *Session) Close() error {
	s.program.Send(QuitMsg{})
	<-s.done
	if s.runErr != nil && !errors.Is(s.runErr, tea.ErrProgramKilled) {
		return s.runErr
	}
	return nil
}

// Printer writes engine events as plain lines, for non-interactive output.
type Printer struct {
	w      io.Writer
	reveal []game.Seat
}

// NewPrinter creates an observer that reveals the starting hands of the
// given seats.
func NewPrinter(w io.Writer, reveal ...game.Seat) *Printer {
	return &Printer{w: w, reveal: reveal}
}

func (p *Printer) OnEvent(ev game.Event) {
	for _, line := range FormatEvent(ev, p.reveal...) {
		_, _ = io.WriteString(p.w, line+"\n")
	}
}

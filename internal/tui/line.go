package tui

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/lox/landlord/internal/bot"
)

// LinePrompter reads moves line by line, for terminals without a TUI and
// for scripted input.
type LinePrompter struct {
	in  *bufio.Scanner
	out io.Writer
}

var _ bot.Prompter = (*LinePrompter)(nil)

// NewLinePrompter creates a prompter reading from r and writing prompts to w.
func NewLinePrompter(r io.Reader, w io.Writer) *LinePrompter {
	return &LinePrompter{in: bufio.NewScanner(r), out: w}
}

// Prompt prints the hand and the play to beat, then reads one line. "quit"
// or end of input returns ErrQuit.
func (p *LinePrompter) Prompt(req bot.PromptRequest) (string, error) {
	fmt.Fprintf(p.out, "Your hand: %s\n", FormatHand(req.Hand))
	if req.CanPass {
		fmt.Fprintf(p.out, "To beat: %s (or 'pass')\n", FormatCombination(req.Previous))
	} else {
		fmt.Fprintln(p.out, "You lead.")
	}
	fmt.Fprint(p.out, "> ")

	if !p.in.Scan() {
		if err := p.in.Err(); err != nil {
			return "", err
		}
		return "", ErrQuit
	}
	line := strings.TrimSpace(p.in.Text())
	if strings.EqualFold(line, "quit") || strings.EqualFold(line, "q") {
		return "", ErrQuit
	}
	return line, nil
}

func (p *LinePrompter) Reject(reason string) {
	fmt.Fprintln(p.out, ErrorStyle.Render(reason))
}

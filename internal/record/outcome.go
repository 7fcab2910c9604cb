package record

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/lox/landlord/internal/game"
)

// AgentSpec describes how one side was played: agent kind, leaf evaluation
// and search depth.
type AgentSpec struct {
	Kind      string
	Heuristic string
	Depth     int
}

// String renders a as kind-heuristic-depth, e.g. alphabeta-weighted-2.
func (a AgentSpec) String() string {
	return fmt.Sprintf("%s-%s-%d", a.Kind, a.Heuristic, a.Depth)
}

// ParseAgentSpec parses the String form.
func ParseAgentSpec(s string) (AgentSpec, error) {
	parts := strings.Split(s, "-")
	if len(parts) != 3 {
		return AgentSpec{}, fmt.Errorf("malformed agent spec %q", s)
	}
	depth, err := strconv.Atoi(parts[2])
	if err != nil {
		return AgentSpec{}, fmt.Errorf("malformed agent depth in %q: %w", s, err)
	}
	return AgentSpec{Kind: parts[0], Heuristic: parts[1], Depth: depth}, nil
}

// Outcome is one line of the outcome log.
type Outcome struct {
	Landlord AgentSpec
	Farmer   AgentSpec
	Winner   game.Side
}

// String renders the outcome line:
//
//	[landlord]alphabeta-weighted-2::[farmer]random-weighted-2::[winner]landlord||
func (o Outcome) String() string {
	return fmt.Sprintf("[landlord]%s::[farmer]%s::[winner]%s||", o.Landlord, o.Farmer, o.Winner)
}

// ParseOutcome parses one outcome line.
func ParseOutcome(line string) (Outcome, error) {
	body, ok := strings.CutSuffix(strings.TrimSpace(line), "||")
	if !ok {
		return Outcome{}, fmt.Errorf("outcome line missing terminator: %q", line)
	}
	fields := strings.Split(body, "::")
	if len(fields) != 3 {
		return Outcome{}, fmt.Errorf("outcome line has %d fields: %q", len(fields), line)
	}

	var o Outcome
	values := make([]string, 3)
	for i, tag := range []string{"[landlord]", "[farmer]", "[winner]"} {
		v, ok := strings.CutPrefix(fields[i], tag)
		if !ok {
			return Outcome{}, fmt.Errorf("outcome field %d missing %s: %q", i+1, tag, line)
		}
		values[i] = v
	}

	var err error
	if o.Landlord, err = ParseAgentSpec(values[0]); err != nil {
		return Outcome{}, err
	}
	if o.Farmer, err = ParseAgentSpec(values[1]); err != nil {
		return Outcome{}, err
	}
	switch values[2] {
	case game.LandlordSide.String():
		o.Winner = game.LandlordSide
	case game.FarmerSide.String():
		o.Winner = game.FarmerSide
	default:
		return Outcome{}, fmt.Errorf("unknown winner %q", values[2])
	}
	return o, nil
}

// WriteOutcome appends one outcome line to w.
func WriteOutcome(w io.Writer, o Outcome) error {
	_, err := io.WriteString(w, o.String()+"\n")
	return err
}

// ReadOutcomes parses every non-blank line of an outcome log.
func ReadOutcomes(r io.Reader) ([]Outcome, error) {
	var out []Outcome
	scanner := bufio.NewScanner(r)
	for n := 1; scanner.Scan(); n++ {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		o, err := ParseOutcome(line)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", n, err)
		}
		out = append(out, o)
	}
	return out, scanner.Err()
}

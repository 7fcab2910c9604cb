// Package record persists finished games: a TOML record per game that can be
// replayed move by move, and a one-line-per-game outcome log.
package record

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/lox/landlord/internal/combo"
	"github.com/lox/landlord/internal/deck"
	"github.com/lox/landlord/internal/fileutil"
	"github.com/lox/landlord/internal/game"
)

// GameRecord is the archived form of one game.
type GameRecord struct {
	ID       string            `toml:"id"`
	Seed     int64             `toml:"seed"`
	Time     time.Time         `toml:"time"`
	Landlord string            `toml:"landlord_agent"`
	Farmer   string            `toml:"farmer_agent"`
	Order    []string          `toml:"order"`
	Kitty    string            `toml:"kitty"`
	Hands    map[string]string `toml:"hands"`
	Moves    []string          `toml:"moves"`
	Winner   string            `toml:"winner"`
	Finisher string            `toml:"finisher"`
	Duration string            `toml:"duration,omitempty"`
}

// New builds the record of a finished game.
func New(id string, seed int64, landlord, farmer AgentSpec, res *game.Result, at time.Time) *GameRecord {
	r := &GameRecord{
		ID:       id,
		Seed:     seed,
		Time:     at.UTC().Truncate(time.Second),
		Landlord: landlord.String(),
		Farmer:   farmer.String(),
		Kitty:    formatHand(res.Initial.Kitty()),
		Hands:    make(map[string]string, game.NumSeats),
		Winner:   res.Winner.String(),
		Finisher: res.Finisher.String(),
	}
	if res.Duration > 0 {
		r.Duration = res.Duration.Round(time.Millisecond).String()
	}
	for _, seat := range res.Initial.Order() {
		r.Order = append(r.Order, seat.String())
	}
	for _, seat := range game.Seats {
		r.Hands[seat.String()] = formatHand(res.Initial.Hand(seat))
	}
	for _, m := range res.Moves {
		r.Moves = append(r.Moves, formatMove(m))
	}
	return r
}

func formatHand(h deck.Hand) string {
	return deck.FormatRanks(h.Ranks())
}

// formatMove renders a move as "<seat> <type> <ranks>", or "<seat> pass".
func formatMove(m game.Move) string {
	if m.Action.IsPass() {
		return m.Seat.String() + " pass"
	}
	return fmt.Sprintf("%s %s %s", m.Seat, m.Action.Type, deck.FormatRanks(m.Action.Ranks))
}

// Encode writes the record in TOML.
func Encode(w io.Writer, r *GameRecord) error {
	if r == nil {
		return fmt.Errorf("record: game record is nil")
	}
	enc := toml.NewEncoder(w)
	enc.Indent = "\t"
	return enc.Encode(r)
}

// Decode reads a TOML record.
func Decode(rd io.Reader) (*GameRecord, error) {
	var r GameRecord
	if _, err := toml.NewDecoder(rd).Decode(&r); err != nil {
		return nil, fmt.Errorf("record: %w", err)
	}
	return &r, nil
}

// WriteFile atomically writes the record to dir/<id>.toml and returns the path.
func WriteFile(dir string, r *GameRecord) (string, error) {
	path := filepath.Join(dir, r.ID+".toml")
	err := fileutil.WriteAtomic(path, 0o644, func(w io.Writer) error {
		return Encode(w, r)
	})
	return path, err
}

// ReadFile loads a record written by WriteFile.
func ReadFile(path string) (*GameRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Decode(f)
}

// Replay rebuilds the game from the recorded deal and applies every move,
// checking each against the rules. It returns the final state.
func (r *GameRecord) Replay(cat *combo.Catalog) (game.State, error) {
	var setup game.Setup
	if len(r.Order) != game.NumSeats {
		return game.State{}, fmt.Errorf("record: order has %d seats", len(r.Order))
	}
	for i, name := range r.Order {
		seat, err := game.ParseSeat(name)
		if err != nil {
			return game.State{}, fmt.Errorf("record: %w", err)
		}
		setup.Order[i] = seat
	}
	for _, seat := range game.Seats {
		hand, err := parseHand(r.Hands[seat.String()])
		if err != nil {
			return game.State{}, fmt.Errorf("record: %s hand: %w", seat, err)
		}
		setup.Hands[seat] = hand
	}
	kitty, err := parseHand(r.Kitty)
	if err != nil {
		return game.State{}, fmt.Errorf("record: kitty: %w", err)
	}
	setup.Kitty = kitty

	s, err := game.NewState(cat, setup)
	if err != nil {
		return game.State{}, fmt.Errorf("record: %w", err)
	}

	for i, line := range r.Moves {
		seat, action, err := parseMove(cat, line)
		if err != nil {
			return s, fmt.Errorf("record: move %d: %w", i+1, err)
		}
		if seat != s.Turn() {
			return s, fmt.Errorf("record: move %d: %s moved out of turn", i+1, seat)
		}
		legal := false
		for _, a := range s.Actions(seat) {
			if a.Equal(action) {
				legal = true
				break
			}
		}
		if !legal {
			return s, fmt.Errorf("record: move %d: %w: %s", i+1, game.ErrIllegalAction, line)
		}
		if s, err = s.Next(action); err != nil {
			return s, fmt.Errorf("record: move %d: %w", i+1, err)
		}
	}

	if !s.IsTerminal() {
		return s, fmt.Errorf("record: game did not finish after %d moves", len(r.Moves))
	}
	if got := s.Winner().String(); got != r.Winner {
		return s, fmt.Errorf("record: replay winner %s, recorded %s", got, r.Winner)
	}
	return s, nil
}

func parseHand(s string) (deck.Hand, error) {
	if strings.TrimSpace(s) == "" {
		return deck.Hand{}, nil
	}
	ranks, err := deck.ParseRanks(s)
	if err != nil {
		return deck.Hand{}, err
	}
	return deck.NewHand(ranks...), nil
}

func parseMove(cat *combo.Catalog, line string) (game.Seat, combo.Combination, error) {
	fields := strings.Fields(line)
	if len(fields) < 2 {
		return 0, combo.Combination{}, fmt.Errorf("malformed move %q", line)
	}
	seat, err := game.ParseSeat(fields[0])
	if err != nil {
		return 0, combo.Combination{}, err
	}
	if fields[1] == combo.Pass.String() {
		return seat, combo.Combination{}, nil
	}
	if len(fields) != 3 {
		return 0, combo.Combination{}, fmt.Errorf("malformed move %q", line)
	}
	t, err := combo.ParseType(fields[1])
	if err != nil {
		return 0, combo.Combination{}, err
	}
	hand, err := parseHand(fields[2])
	if err != nil {
		return 0, combo.Combination{}, err
	}
	entry, ok := cat.Lookup(hand)
	if !ok || entry.Type != t {
		return 0, combo.Combination{}, fmt.Errorf("no %s made of %s", t, fields[2])
	}
	return seat, *entry, nil
}

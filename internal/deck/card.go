package deck

import (
	"fmt"
	"strings"
)

// Rank is a card face value. Suits carry no meaning in the game, so a card
// is identified by its rank alone.
type Rank uint8

// Ranks in strict ascending order of strength.
const (
	Three Rank = iota
	Four
	Five
	Six
	Seven
	Eight
	Nine
	Ten
	Jack
	Queen
	King
	Ace
	Two
	SmallJoker
	BigJoker
)

const (
	// NumRanks is the size of the rank domain.
	NumRanks = 15
	// NumStandardRanks counts the ranks that come in four copies (3 through 2).
	NumStandardRanks = 13
	// NumChainRanks counts the ranks allowed in chains and airplanes (3 through A).
	NumChainRanks = 12
	// DeckSize is the number of physical cards in a full deck.
	DeckSize = NumStandardRanks*4 + 2
)

var rankNames = [NumRanks]string{"3", "4", "5", "6", "7", "8", "9", "10", "J", "Q", "K", "A", "2", "SJ", "BJ"}

// String returns the short name of a rank (e.g. "10", "J", "SJ")
func (r Rank) String() string {
	if int(r) < NumRanks {
		return rankNames[r]
	}
	return "?"
}

// IsStandard reports whether the rank has four copies in the deck.
func (r Rank) IsStandard() bool {
	return r < SmallJoker
}

// IsJoker reports whether the rank is one of the two jokers.
func (r Rank) IsJoker() bool {
	return r == SmallJoker || r == BigJoker
}

// CanChain reports whether the rank may appear in a chain, pairs chain or airplane.
func (r Rank) CanChain() bool {
	return r <= Ace
}

// MaxCopies returns how many physical cards of the rank exist.
func (r Rank) MaxCopies() int {
	if r.IsStandard() {
		return 4
	}
	return 1
}

// AllRanks returns every rank in ascending order.
func AllRanks() []Rank {
	ranks := make([]Rank, NumRanks)
	for i := range ranks {
		ranks[i] = Rank(i)
	}
	return ranks
}

// ParseRank parses a single rank token. It accepts the names produced by
// String, case-insensitively, plus a few common aliases ("T", "1", "0", "x"/"d" for jokers).
func ParseRank(s string) (Rank, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "3":
		return Three, nil
	case "4":
		return Four, nil
	case "5":
		return Five, nil
	case "6":
		return Six, nil
	case "7":
		return Seven, nil
	case "8":
		return Eight, nil
	case "9":
		return Nine, nil
	case "10", "T", "0":
		return Ten, nil
	case "J":
		return Jack, nil
	case "Q":
		return Queen, nil
	case "K":
		return King, nil
	case "A", "1":
		return Ace, nil
	case "2":
		return Two, nil
	case "SJ", "X", "SMALLJOKER":
		return SmallJoker, nil
	case "BJ", "D", "BIGJOKER":
		return BigJoker, nil
	}
	return 0, fmt.Errorf("invalid rank %q", s)
}

// ParseRanks parses a list of ranks separated by commas and/or whitespace.
func ParseRanks(s string) ([]Rank, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t'
	})
	if len(fields) == 0 {
		return nil, fmt.Errorf("no ranks in %q", s)
	}

	ranks := make([]Rank, 0, len(fields))
	for _, f := range fields {
		r, err := ParseRank(f)
		if err != nil {
			return nil, err
		}
		ranks = append(ranks, r)
	}
	return ranks, nil
}

// FormatRanks renders ranks as a comma separated list.
func FormatRanks(ranks []Rank) string {
	parts := make([]string, len(ranks))
	for i, r := range ranks {
		parts[i] = r.String()
	}
	return strings.Join(parts, ",")
}

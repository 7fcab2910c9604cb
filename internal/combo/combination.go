package combo

import (
	"fmt"

	"github.com/lox/landlord/internal/deck"
)

// Combination is a typed, legally shaped set of cards. Ranks are sorted
// ascending. Key is the rank compared when two combinations of the same type
// and length meet: the body rank for trios and quads with attachments, the
// lowest rank for chains and airplanes, the rank itself otherwise.
//
// The zero value is the pass sentinel. Combinations are values; their Ranks
// slice is shared with the catalog and must not be modified.
type Combination struct {
	Type  Type
	Key   deck.Rank
	Ranks []deck.Rank
	cards deck.Hand
}

// New builds a combination of type t from ranks, computing its key. It does
// not check that the ranks form a legal shape for t; catalog entries and
// rules.Classify produce only legal ones.
func New(t Type, ranks ...deck.Rank) Combination {
	if t == Pass {
		return Combination{}
	}
	cards := deck.NewHand(ranks...)
	return Combination{
		Type:  t,
		Key:   keyRank(t, cards),
		Ranks: cards.Ranks(),
		cards: cards,
	}
}

// keyRank finds the rank that decides precedence between same-shaped plays.
func keyRank(t Type, cards deck.Hand) deck.Rank {
	body := 1
	switch t {
	case Pair, PairsChain:
		body = 2
	case Trio, TrioSingle, TrioPair, Airplane, AirplaneSmall, AirplaneLarge:
		body = 3
	case Bomb, FourWithTwo, FourWithPairs:
		body = 4
	case KingBomb:
		return deck.BigJoker
	}
	for r := deck.Three; r <= deck.BigJoker; r++ {
		if cards.Count(r) >= body {
			return r
		}
	}
	return 0
}

// IsPass reports whether c is the pass sentinel.
func (c Combination) IsPass() bool {
	return c.Type == Pass
}

// Len returns the number of physical cards in the combination.
func (c Combination) Len() int {
	return len(c.Ranks)
}

// Cards returns the combination as a multiset.
func (c Combination) Cards() deck.Hand {
	return c.cards
}

// Equal reports whether two combinations have the same type and cards.
func (c Combination) Equal(other Combination) bool {
	return c.Type == other.Type && c.cards == other.cards
}

func (c Combination) String() string {
	if c.IsPass() {
		return "pass"
	}
	return fmt.Sprintf("%s(%s)", c.Type, deck.FormatRanks(c.Ranks))
}

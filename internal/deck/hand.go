package deck

import "fmt"

// Hand is a multiset of ranks stored as per-rank counts. It is a value type:
// every operation returns a new Hand and never modifies its receiver.
// Hand is comparable and can be used as a map key.
type Hand [NumRanks]uint8

// NewHand builds a hand from a list of ranks.
func NewHand(ranks ...Rank) Hand {
	var h Hand
	for _, r := range ranks {
		h[r]++
	}
	return h
}

// MustParseHand parses a rank list and panics on error. Intended for tests and fixtures.
func MustParseHand(s string) Hand {
	ranks, err := ParseRanks(s)
	if err != nil {
		panic(err)
	}
	return NewHand(ranks...)
}

// Count returns the number of copies of r in the hand.
func (h Hand) Count(r Rank) int {
	return int(h[r])
}

// Len returns the total number of cards.
func (h Hand) Len() int {
	n := 0
	for _, c := range h {
		n += int(c)
	}
	return n
}

// IsEmpty reports whether the hand holds no cards.
func (h Hand) IsEmpty() bool {
	return h == Hand{}
}

// Contains reports whether other is a sub-multiset of h.
func (h Hand) Contains(other Hand) bool {
	for i := range h {
		if other[i] > h[i] {
			return false
		}
	}
	return true
}

// Add returns the multiset union-sum of h and other.
func (h Hand) Add(other Hand) Hand {
	for i := range h {
		h[i] += other[i]
	}
	return h
}

// Sub returns h minus other. ok is false when other is not contained in h,
// in which case the returned hand is meaningless.
func (h Hand) Sub(other Hand) (rest Hand, ok bool) {
	for i := range h {
		if other[i] > h[i] {
			return Hand{}, false
		}
		h[i] -= other[i]
	}
	return h, true
}

// Ranks expands the hand into a sorted rank slice.
func (h Hand) Ranks() []Rank {
	ranks := make([]Rank, 0, h.Len())
	for i, c := range h {
		for j := uint8(0); j < c; j++ {
			ranks = append(ranks, Rank(i))
		}
	}
	return ranks
}

// Validate checks per-rank copy limits.
func (h Hand) Validate() error {
	for i, c := range h {
		if int(c) > Rank(i).MaxCopies() {
			return fmt.Errorf("hand holds %d copies of %s (max %d)", c, Rank(i), Rank(i).MaxCopies())
		}
	}
	return nil
}

// String renders the hand as a sorted comma separated list.
func (h Hand) String() string {
	return FormatRanks(h.Ranks())
}

package combo

import (
	"github.com/lox/landlord/internal/deck"
)

const (
	// MaxCards caps the size of any single play: no hand ever holds more than 20 cards.
	MaxCards = deck.LandlordHandSize

	minChainLength      = 5
	minPairsChainLength = 3
	minAirplaneLength   = 2
)

// Catalog holds every syntactically valid combination, independent of any
// dealt hand. It is built once and never modified; consumers keep pointers
// into it rather than copies.
type Catalog struct {
	byType [numTypes][]Combination
	index  map[deck.Hand]*Combination
	pass   Combination
	size   int
}

// NewCatalog enumerates all combinations. Construction cannot fail.
func NewCatalog() *Catalog {
	c := &Catalog{}
	b := &builder{cat: c}

	b.singles()
	b.pairs()
	b.trios()
	b.chains(Chain, minChainLength, 1)
	b.chains(PairsChain, minPairsChainLength, 2)
	b.trioWith(TrioSingle, 1)
	b.trioWith(TrioPair, 2)
	b.airplanes()
	b.airplanesWithWings(AirplaneSmall, 1)
	b.airplanesWithWings(AirplaneLarge, 2)
	b.fourWith(FourWithTwo, 1)
	b.fourWith(FourWithPairs, 2)
	b.bombs()
	b.add(KingBomb, deck.SmallJoker, deck.BigJoker)

	c.buildIndex()
	return c
}

// Of returns the entries of one type. The slice is shared and must not be modified.
func (c *Catalog) Of(t Type) []Combination {
	if t >= numTypes {
		return nil
	}
	return c.byType[t]
}

// Len returns the total number of entries, excluding the pass sentinel.
func (c *Catalog) Len() int {
	return c.size
}

// Pass returns the catalog's pass entry.
func (c *Catalog) Pass() *Combination {
	return &c.pass
}

// Each calls fn for every entry in catalog order until fn returns false.
func (c *Catalog) Each(fn func(*Combination) bool) {
	for _, t := range Types {
		entries := c.byType[t]
		for i := range entries {
			if !fn(&entries[i]) {
				return
			}
		}
	}
}

// Lookup finds the entry whose cards are exactly cards.
func (c *Catalog) Lookup(cards deck.Hand) (*Combination, bool) {
	entry, ok := c.index[cards]
	return entry, ok
}

func (c *Catalog) buildIndex() {
	c.index = make(map[deck.Hand]*Combination, c.size)
	c.Each(func(entry *Combination) bool {
		// First type in catalog order wins if two shapes ever share a multiset.
		if _, exists := c.index[entry.cards]; !exists {
			c.index[entry.cards] = entry
		}
		return true
	})
}

type builder struct {
	cat *Catalog
}

func (b *builder) add(t Type, ranks ...deck.Rank) {
	if len(ranks) > MaxCards {
		return
	}
	b.cat.byType[t] = append(b.cat.byType[t], New(t, ranks...))
	b.cat.size++
}

func repeat(r deck.Rank, n int) []deck.Rank {
	out := make([]deck.Rank, n)
	for i := range out {
		out[i] = r
	}
	return out
}

// span returns the consecutive ranks [start, start+length), each repeated n times.
func span(start deck.Rank, length, n int) []deck.Rank {
	out := make([]deck.Rank, 0, length*n)
	for r := start; r < start+deck.Rank(length); r++ {
		out = append(out, repeat(r, n)...)
	}
	return out
}

func (b *builder) singles() {
	for r := deck.Three; r <= deck.BigJoker; r++ {
		b.add(Single, r)
	}
}

func (b *builder) pairs() {
	for r := deck.Three; r <= deck.Two; r++ {
		b.add(Pair, repeat(r, 2)...)
	}
}

func (b *builder) trios() {
	for r := deck.Three; r <= deck.Two; r++ {
		b.add(Trio, repeat(r, 3)...)
	}
}

func (b *builder) bombs() {
	for r := deck.Three; r <= deck.Two; r++ {
		b.add(Bomb, repeat(r, 4)...)
	}
}

// chains adds every contiguous range of chain ranks at least minLen long,
// each rank repeated n times.
func (b *builder) chains(t Type, minLen, n int) {
	for length := minLen; length <= deck.NumChainRanks; length++ {
		for start := 0; start+length <= deck.NumChainRanks; start++ {
			b.add(t, span(deck.Rank(start), length, n)...)
		}
	}
}

// trioWith attaches one other rank, n copies, to each trio.
func (b *builder) trioWith(t Type, n int) {
	last := deck.BigJoker
	if n > 1 {
		last = deck.Two
	}
	for body := deck.Three; body <= deck.Two; body++ {
		for kicker := deck.Three; kicker <= last; kicker++ {
			if kicker == body {
				continue
			}
			b.add(t, append(repeat(body, 3), repeat(kicker, n)...)...)
		}
	}
}

// fourWith attaches two distinct further ranks, n copies each, to each quad.
func (b *builder) fourWith(t Type, n int) {
	pool := kickerPool(n)
	for quad := deck.Three; quad <= deck.Two; quad++ {
		candidates := without(pool, quad, quad)
		combinations(candidates, 2, func(kickers []deck.Rank) {
			ranks := repeat(quad, 4)
			for _, k := range kickers {
				ranks = append(ranks, repeat(k, n)...)
			}
			b.add(t, ranks...)
		})
	}
}

func (b *builder) airplanes() {
	for length := minAirplaneLength; length <= deck.NumChainRanks; length++ {
		if length*3 > MaxCards {
			break
		}
		for start := 0; start+length <= deck.NumChainRanks; start++ {
			b.add(Airplane, span(deck.Rank(start), length, 3)...)
		}
	}
}

// airplanesWithWings attaches, for each airplane body of length k, every
// choice of k distinct ranks outside the body with n copies each.
func (b *builder) airplanesWithWings(t Type, n int) {
	pool := kickerPool(n)
	for length := minAirplaneLength; length <= deck.NumChainRanks; length++ {
		if length*(3+n) > MaxCards {
			break
		}
		for start := 0; start+length <= deck.NumChainRanks; start++ {
			first := deck.Rank(start)
			body := span(first, length, 3)
			candidates := without(pool, first, first+deck.Rank(length-1))
			combinations(candidates, length, func(wings []deck.Rank) {
				ranks := append([]deck.Rank(nil), body...)
				for _, w := range wings {
					ranks = append(ranks, repeat(w, n)...)
				}
				b.add(t, ranks...)
			})
		}
	}
}

// kickerPool returns the ranks that can be attached n at a time: any rank
// for singles, standard ranks only for pairs.
func kickerPool(n int) []deck.Rank {
	if n == 1 {
		return deck.AllRanks()
	}
	return deck.AllRanks()[:deck.NumStandardRanks]
}

// without returns pool minus the inclusive rank range [lo, hi].
func without(pool []deck.Rank, lo, hi deck.Rank) []deck.Rank {
	out := make([]deck.Rank, 0, len(pool))
	for _, r := range pool {
		if r < lo || r > hi {
			out = append(out, r)
		}
	}
	return out
}

// combinations calls fn with every k-subset of pool in lexicographic order.
// The slice passed to fn is reused between calls.
func combinations(pool []deck.Rank, k int, fn func([]deck.Rank)) {
	if k > len(pool) {
		return
	}
	idx := make([]int, k)
	for i := range idx {
		idx[i] = i
	}
	pick := make([]deck.Rank, k)
	for {
		for i, j := range idx {
			pick[i] = pool[j]
		}
		fn(pick)

		i := k - 1
		for i >= 0 && idx[i] == len(pool)-k+i {
			i--
		}
		if i < 0 {
			return
		}
		idx[i]++
		for j := i + 1; j < k; j++ {
			idx[j] = idx[j-1] + 1
		}
	}
}

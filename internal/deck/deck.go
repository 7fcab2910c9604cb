package deck

import rand "math/rand/v2"

const (
	// KittySize is the number of set-aside cards the landlord picks up.
	KittySize = 3
	// FarmerHandSize is the number of cards dealt to each seat before the kitty.
	FarmerHandSize = 17
	// LandlordHandSize is the landlord's hand size after taking the kitty.
	LandlordHandSize = FarmerHandSize + KittySize
)

// Deck is an ordered set of physical cards.
type Deck struct {
	cards []Rank
}

// NewDeck creates a full 54-card deck in rank order
func NewDeck() *Deck {
	d := &Deck{cards: make([]Rank, 0, DeckSize)}
	for r := Three; r <= BigJoker; r++ {
		for i := 0; i < r.MaxCopies(); i++ {
			d.cards = append(d.cards, r)
		}
	}
	return d
}

// Shuffle randomizes the order of cards in the deck using rng
func (d *Deck) Shuffle(rng *rand.Rand) {
	rng.Shuffle(len(d.cards), func(i, j int) {
		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	})
}

// Len returns the number of cards left in the deck
func (d *Deck) Len() int {
	return len(d.cards)
}

// DealN removes n cards from the top of the deck and returns them as a hand
func (d *Deck) DealN(n int) Hand {
	if n > len(d.cards) {
		n = len(d.cards)
	}
	h := NewHand(d.cards[:n]...)
	d.cards = d.cards[n:]
	return h
}

// Deal is the outcome of dealing a shuffled deck: the face-up kitty and three 17-card piles.
type Deal struct {
	Kitty Hand
	Piles [3]Hand
}

// DealGame shuffles a fresh deck and splits it into the kitty and three piles.
func DealGame(rng *rand.Rand) Deal {
	d := NewDeck()
	d.Shuffle(rng)

	var deal Deal
	deal.Kitty = d.DealN(KittySize)
	for i := range deal.Piles {
		deal.Piles[i] = d.DealN(FarmerHandSize)
	}
	return deal
}

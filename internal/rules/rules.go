// Package rules maps hands onto catalog combinations and decides which plays
// may follow a previous play.
package rules

import (
	"errors"
	"fmt"

	"github.com/lox/landlord/internal/combo"
	"github.com/lox/landlord/internal/deck"
)

// ErrInvalidPlay reports a card selection that matches no legal response.
var ErrInvalidPlay = errors.New("invalid play")

// Analyze returns the catalog entries realizable from hand, followed by the
// pass entry. The result is an upper bound used as a seat's candidate cache:
// it is computed once per deal and re-filtered against the current hand by
// Successors.
func Analyze(cat *combo.Catalog, hand deck.Hand) []*combo.Combination {
	var out []*combo.Combination
	cat.Each(func(c *combo.Combination) bool {
		if hand.Contains(c.Cards()) {
			out = append(out, c)
		}
		return true
	})
	return append(out, cat.Pass())
}

// Beats reports whether c may be played on top of prev. A pass prev means
// the player is leading, so any real combination is allowed.
func Beats(c, prev combo.Combination) bool {
	if c.IsPass() {
		return false
	}
	if prev.IsPass() {
		return true
	}

	switch c.Type {
	case combo.KingBomb:
		return prev.Type != combo.KingBomb
	case combo.Bomb:
		switch prev.Type {
		case combo.KingBomb:
			return false
		case combo.Bomb:
			return c.Key > prev.Key
		default:
			return true
		}
	}
	return c.Type == prev.Type && c.Len() == prev.Len() && c.Key > prev.Key
}

// Successors lists the legal responses to prev for a player holding hand.
// Candidates no longer realizable from hand are skipped. Pass is appended
// last when the player is not leading; a leader may not pass.
func Successors(prev combo.Combination, hand deck.Hand, candidates []*combo.Combination) []combo.Combination {
	var out []combo.Combination
	for _, c := range candidates {
		if c.IsPass() || !hand.Contains(c.Cards()) {
			continue
		}
		if Beats(*c, prev) {
			out = append(out, *c)
		}
	}
	if !prev.IsPass() {
		out = append(out, combo.Combination{})
	}
	return out
}

// Classify types a card selection as a legal response to prev. The selection
// must come from hand and match a candidate successor of the same size;
// otherwise the error wraps ErrInvalidPlay. An empty selection is a pass,
// which is only legal when not leading.
func Classify(prev combo.Combination, selection []deck.Rank, hand deck.Hand, candidates []*combo.Combination) (combo.Combination, error) {
	if len(selection) > combo.MaxCards {
		return combo.Combination{}, fmt.Errorf("%w: %d cards is more than any play", ErrInvalidPlay, len(selection))
	}
	picked := deck.NewHand(selection...)
	if picked.Len() != len(selection) {
		return combo.Combination{}, fmt.Errorf("%w: selection holds impossible rank counts", ErrInvalidPlay)
	}
	if picked.IsEmpty() {
		if prev.IsPass() {
			return combo.Combination{}, fmt.Errorf("%w: cannot pass when leading", ErrInvalidPlay)
		}
		return combo.Combination{}, nil
	}
	if !hand.Contains(picked) {
		return combo.Combination{}, fmt.Errorf("%w: %s is not in hand", ErrInvalidPlay, picked)
	}

	for _, s := range Successors(prev, picked, candidates) {
		if s.Len() == len(selection) {
			return s, nil
		}
	}
	return combo.Combination{}, fmt.Errorf("%w: %s does not answer %s", ErrInvalidPlay, picked, prev)
}

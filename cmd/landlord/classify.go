package main

import (
	"fmt"
	"io"
	"os"

	"github.com/lox/landlord/internal/combo"
	"github.com/lox/landlord/internal/deck"
	"github.com/lox/landlord/internal/rules"
)

// ClassifyCmd types a selection of cards, optionally as an answer to a
// previous play.
type ClassifyCmd struct {
	Cards    string `arg:"" help:"Cards to classify, e.g. '3,3,3,4'"`
	Previous string `short:"p" help:"Cards of the play to beat (leading if empty)"`
}

func (c *ClassifyCmd) Run(g *Globals) error {
	return c.run(os.Stdout)
}

func (c *ClassifyCmd) run(w io.Writer) error {
	cat := combo.NewCatalog()

	var prev combo.Combination
	if c.Previous != "" {
		var err error
		if prev, err = classify(cat, combo.Combination{}, c.Previous); err != nil {
			return fmt.Errorf("previous play: %w", err)
		}
	}

	play, err := classify(cat, prev, c.Cards)
	if err != nil {
		return err
	}
	if prev.IsPass() {
		fmt.Fprintf(w, "%s leads\n", play)
	} else {
		fmt.Fprintf(w, "%s beats %s\n", play, prev)
	}
	return nil
}

// classify treats s as a whole hand and types it against prev.
func classify(cat *combo.Catalog, prev combo.Combination, s string) (combo.Combination, error) {
	ranks, err := deck.ParseRanks(s)
	if err != nil {
		return combo.Combination{}, err
	}
	hand := deck.NewHand(ranks...)
	if err := hand.Validate(); err != nil {
		return combo.Combination{}, err
	}
	return rules.Classify(prev, ranks, hand, rules.Analyze(cat, hand))
}

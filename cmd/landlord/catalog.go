package main

import (
	"fmt"
	"io"
	"os"

	"github.com/lox/landlord/internal/combo"
	"github.com/lox/landlord/internal/deck"
	"github.com/lox/landlord/internal/rules"
)

// CatalogCmd summarizes the catalog, lists the entries of one type, or
// analyzes a hand.
type CatalogCmd struct {
	Type string `short:"t" help:"List every combination of this type (e.g. trio_pair)"`
	Hand string `help:"List the combinations a hand can form (e.g. '3,3,4,5,6,7,7,SJ')"`
}

func (c *CatalogCmd) Run(g *Globals) error {
	return c.run(os.Stdout)
}

func (c *CatalogCmd) run(w io.Writer) error {
	cat := combo.NewCatalog()

	switch {
	case c.Hand != "":
		ranks, err := deck.ParseRanks(c.Hand)
		if err != nil {
			return err
		}
		hand := deck.NewHand(ranks...)
		if err := hand.Validate(); err != nil {
			return err
		}
		candidates := rules.Analyze(cat, hand)
		fmt.Fprintf(w, "%s forms %d combinations\n", hand, len(candidates))
		for _, cand := range candidates {
			fmt.Fprintln(w, cand)
		}
	case c.Type != "":
		t, err := combo.ParseType(c.Type)
		if err != nil {
			return err
		}
		entries := cat.Of(t)
		for _, entry := range entries {
			fmt.Fprintln(w, entry)
		}
		fmt.Fprintf(w, "%d %s combinations\n", len(entries), t)
	default:
		for _, t := range combo.Types {
			fmt.Fprintf(w, "%-16s %6d\n", t, len(cat.Of(t)))
		}
		fmt.Fprintf(w, "%-16s %6d\n", "total", cat.Len())
	}
	return nil
}

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/lox/landlord/internal/combo"
	"github.com/lox/landlord/internal/record"
)

// ReplayCmd checks a saved game record against the rules and prints it.
type ReplayCmd struct {
	Files []string `arg:"" type:"existingfile" help:"Game record files (TOML)"`
	Quiet bool     `short:"q" help:"Only report whether each record is valid"`
}

func (c *ReplayCmd) Run(g *Globals) error {
	cat := combo.NewCatalog()
	var failed int
	for _, path := range c.Files {
		if err := c.replay(cat, path, os.Stdout); err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", path, err)
			failed++
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d records failed to replay", failed, len(c.Files))
	}
	return nil
}

func (c *ReplayCmd) replay(cat *combo.Catalog, path string, w io.Writer) error {
	rec, err := record.ReadFile(path)
	if err != nil {
		return err
	}
	if _, err := rec.Replay(cat); err != nil {
		return err
	}
	if c.Quiet {
		fmt.Fprintf(w, "%s: ok\n", path)
		return nil
	}

	fmt.Fprintf(w, "Game %s (seed %d, %s)\n", rec.ID, rec.Seed, rec.Time.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(w, "Landlord %s vs farmers %s\n", rec.Landlord, rec.Farmer)
	fmt.Fprintf(w, "Kitty: %s\n", rec.Kitty)
	for _, seat := range rec.Order {
		fmt.Fprintf(w, "%-8s %s\n", seat+":", rec.Hands[seat])
	}
	for i, move := range rec.Moves {
		fmt.Fprintf(w, "%3d. %s\n", i+1, move)
	}
	fmt.Fprintf(w, "%s side wins, %s went out\n", rec.Winner, rec.Finisher)
	return nil
}

package main

import (
	"fmt"
	"io"
	"os"
	"slices"

	"github.com/lox/landlord/internal/game"
	"github.com/lox/landlord/internal/record"
	"github.com/lox/landlord/internal/statistics"
)

// ReportCmd aggregates an outcome log by matchup.
type ReportCmd struct {
	File string `arg:"" optional:"" type:"existingfile" help:"Outcome log to read (defaults to the configured outcome_log)"`
}

func (c *ReportCmd) Run(g *Globals) error {
	file := c.File
	if file == "" {
		cfg, _, closeLog, err := g.setup(os.Stderr)
		if err != nil {
			return err
		}
		closeLog()
		file = cfg.OutcomeLog
	}

	f, err := os.Open(file)
	if err != nil {
		return err
	}
	defer f.Close()
	return report(f, os.Stdout)
}

type matchup struct {
	landlord, farmer record.AgentSpec
}

func report(r io.Reader, w io.Writer) error {
	outcomes, err := record.ReadOutcomes(r)
	if err != nil {
		return err
	}
	if len(outcomes) == 0 {
		fmt.Fprintln(w, "No outcomes recorded.")
		return nil
	}

	games := make(map[matchup]int)
	wins := make(map[matchup]int)
	var order []matchup
	for _, o := range outcomes {
		m := matchup{o.Landlord, o.Farmer}
		if _, ok := games[m]; !ok {
			order = append(order, m)
		}
		games[m]++
		if o.Winner == game.LandlordSide {
			wins[m]++
		}
	}
	slices.SortStableFunc(order, func(a, b matchup) int {
		return games[b] - games[a]
	})

	fmt.Fprintf(w, "%-24s %-24s %7s %9s %17s\n", "LANDLORD", "FARMER", "GAMES", "LANDLORD", "95% CI")
	for _, m := range order {
		n, k := games[m], wins[m]
		low, high := statistics.WilsonInterval95(k, n)
		fmt.Fprintf(w, "%-24s %-24s %7d %8.1f%% [%5.1f%%, %5.1f%%]\n",
			m.landlord, m.farmer, n, 100*float64(k)/float64(n), low*100, high*100)
	}
	return nil
}

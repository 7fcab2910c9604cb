package tui

import (
	"fmt"
	"strings"

	"github.com/lox/landlord/internal/combo"
	"github.com/lox/landlord/internal/deck"
	"github.com/lox/landlord/internal/game"
)

// FormatRank renders a rank, highlighting jokers and the ranks above A.
func FormatRank(r deck.Rank) string {
	switch {
	case r.IsJoker():
		return JokerStyle.Render(r.String())
	case r >= deck.Ace:
		return HighCardStyle.Render(r.String())
	}
	return CardStyle.Render(r.String())
}

// FormatHand renders a hand in rank order, e.g. [3 3 4 J 2 BJ].
func FormatHand(h deck.Hand) string {
	ranks := h.Ranks()
	parts := make([]string, len(ranks))
	for i, r := range ranks {
		parts[i] = FormatRank(r)
	}
	return "[" + strings.Join(parts, " ") + "]"
}

// FormatCombination renders a play as its type and cards.
func FormatCombination(c combo.Combination) string {
	if c.IsPass() {
		return InfoStyle.Render("pass")
	}
	parts := make([]string, len(c.Ranks))
	for i, r := range c.Ranks {
		parts[i] = FormatRank(r)
	}
	return fmt.Sprintf("%s %s", c.Type, "["+strings.Join(parts, " ")+"]")
}

// FormatSeat renders a seat in its side's color.
func FormatSeat(s game.Seat) string {
	if s.Side() == game.LandlordSide {
		return LandlordStyle.Render(s.String())
	}
	return FarmerStyle.Render(s.String())
}

// FormatEvent renders an engine event as log lines. Starting hands are
// shown for the reveal seats only.
func FormatEvent(ev game.Event, reveal ...game.Seat) []string {
	switch e := ev.(type) {
	case game.GameStartEvent:
		order := make([]string, len(e.Order))
		for i, s := range e.Order {
			order[i] = FormatSeat(s)
		}
		lines := []string{
			HeaderStyle.Render(" New game "),
			fmt.Sprintf("Kitty: %s", FormatHand(e.Kitty)),
			fmt.Sprintf("Order: %s", strings.Join(order, " → ")),
		}
		for _, s := range reveal {
			lines = append(lines, fmt.Sprintf("%s holds %s", FormatSeat(s), FormatHand(e.State.Hand(s))))
		}
		return lines

	case game.MoveEvent:
		m := e.Move
		left := e.After.Hand(m.Seat).Len()
		line := fmt.Sprintf("%s: %s (%d left)", FormatSeat(m.Seat), FormatCombination(m.Action), left)
		if m.Leading {
			line = fmt.Sprintf("%s: leads %s (%d left)", FormatSeat(m.Seat), FormatCombination(m.Action), left)
		}
		lines := []string{line}
		if !m.Action.IsPass() && left > 0 && left <= 2 {
			lines = append(lines, WarningStyle.Render(fmt.Sprintf("%s has %d card(s) left!", m.Seat, left)))
		}
		if m.Action.IsPass() && !e.After.IsTerminal() && e.After.PreviousPlay().IsPass() {
			lines = append(lines, InfoStyle.Render(fmt.Sprintf("Table cleared, %s leads", e.After.Turn())))
		}
		return lines

	case game.GameEndEvent:
		style := FarmerStyle
		if e.Winner == game.LandlordSide {
			style = LandlordStyle
		}
		return []string{
			style.Render(fmt.Sprintf("%s side wins", e.Winner)) +
				fmt.Sprintf(" (%s went out after %d moves)", e.Finisher, e.Moves),
		}
	}
	return nil
}

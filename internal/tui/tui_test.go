package tui

import (
	"bytes"
	"io"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/lox/landlord/internal/bot"
	"github.com/lox/landlord/internal/combo"
	"github.com/lox/landlord/internal/deck"
	"github.com/lox/landlord/internal/game"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testCatalog = combo.NewCatalog()

func init() {
	DisableColor()
}

func quietLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{Level: log.ErrorLevel})
}

func newTestState(t *testing.T, landlord, farmer1, farmer2 string) game.State {
	t.Helper()
	s, err := game.NewState(testCatalog, game.Setup{
		Hands: [game.NumSeats]deck.Hand{
			game.Landlord:  deck.MustParseHand(landlord),
			game.FarmerOne: deck.MustParseHand(farmer1),
			game.FarmerTwo: deck.MustParseHand(farmer2),
		},
		Order: [game.NumSeats]game.Seat{game.Landlord, game.FarmerOne, game.FarmerTwo},
	})
	require.NoError(t, err)
	return s
}

func TestModelPromptFlow(t *testing.T) {
	m := NewModel(game.FarmerOne, quietLogger())

	// Enter with no pending prompt is ignored
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Empty(t, m.inputs)

	m.Update(promptMsg{req: bot.PromptRequest{Seat: game.FarmerOne, Hand: deck.MustParseHand("3,3,K")}})
	require.NotNil(t, m.request)

	m.actionInput.SetValue(" 3,3 ")
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	require.Len(t, m.inputs, 1)
	r := <-m.inputs
	assert.Equal(t, "3,3", r.line)
	assert.False(t, r.quit)
	assert.Nil(t, m.request)
	assert.Empty(t, m.actionInput.Value())
}

func TestModelRejectAndQuit(t *testing.T) {
	m := NewModel(game.Landlord, quietLogger())
	m.Update(promptMsg{req: bot.PromptRequest{Seat: game.Landlord}})
	m.Update(rejectMsg{reason: "not in hand"})
	assert.Equal(t, "not in hand", m.status)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	assert.True(t, m.quitting)
	r := <-m.inputs
	assert.True(t, r.quit)
}

func TestModelFinishedEnterExits(t *testing.T) {
	m := NewModel(game.Landlord, quietLogger())
	m.Update(finishMsg{})
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	r := <-m.inputs
	assert.True(t, r.quit)
}

func TestModelView(t *testing.T) {
	m := NewModel(game.Landlord, quietLogger())
	assert.Equal(t, "Loading...", m.View())

	m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	m.Update(logMsg{lines: []string{"landlord: leads single [3] (19 left)"}})
	m.Update(countsMsg{counts: [game.NumSeats]int{19, 17, 17}})
	m.Update(promptMsg{req: bot.PromptRequest{Hand: deck.MustParseHand("3,4,SJ")}})

	view := m.View()
	assert.Contains(t, view, "leads single")
	assert.Contains(t, view, "Your hand: [3 4 SJ]")
	assert.Contains(t, view, "You lead")
	assert.Contains(t, view, "farmer1: 17")
	assert.Equal(t, []string{"landlord: leads single [3] (19 left)"}, m.Log())
}

func TestFormatHandAndCombination(t *testing.T) {
	assert.Equal(t, "[3 3 10 A 2 SJ BJ]", FormatHand(deck.MustParseHand("BJ,2,3,A,10,SJ,3")))
	assert.Equal(t, "pass", FormatCombination(combo.Combination{}))

	entry, ok := testCatalog.Lookup(deck.MustParseHand("3,3,3,4"))
	require.True(t, ok)
	assert.Equal(t, "trio_single [3 3 3 4]", FormatCombination(*entry))
}

func TestFormatEvent(t *testing.T) {
	s := newTestState(t, "3,4", "5,6", "7,8")

	start := FormatEvent(game.GameStartEvent{State: s, Order: s.Order()}, game.FarmerOne)
	joined := strings.Join(start, "\n")
	assert.Contains(t, joined, "farmer1 holds [5 6]")
	assert.NotContains(t, joined, "landlord holds")

	three, _ := testCatalog.Lookup(deck.MustParseHand("3"))
	after, err := s.Next(*three)
	require.NoError(t, err)
	lines := FormatEvent(game.MoveEvent{Move: game.Move{Seat: game.Landlord, Action: *three, Leading: true}, After: after})
	require.Len(t, lines, 2)
	assert.Equal(t, "landlord: leads single [3] (1 left)", lines[0])
	assert.Contains(t, lines[1], "1 card(s) left")

	end := FormatEvent(game.GameEndEvent{Winner: game.FarmerSide, Finisher: game.FarmerTwo, Moves: 7})
	assert.Equal(t, []string{"farmer side wins (farmer2 went out after 7 moves)"}, end)
}

func TestFormatEventTableCleared(t *testing.T) {
	s := newTestState(t, "2,4", "5,6", "7,8")
	two, _ := testCatalog.Lookup(deck.MustParseHand("2"))
	s, err := s.Next(*two)
	require.NoError(t, err)
	s, err = s.Next(combo.Combination{})
	require.NoError(t, err)
	after, err := s.Next(combo.Combination{})
	require.NoError(t, err)

	lines := FormatEvent(game.MoveEvent{Move: game.Move{Seat: game.FarmerTwo}, After: after})
	require.Len(t, lines, 2)
	assert.Equal(t, "farmer2: pass (2 left)", lines[0])
	assert.Equal(t, "Table cleared, landlord leads", lines[1])
}

func TestPrinter(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)
	p.OnEvent(game.GameEndEvent{Winner: game.LandlordSide, Finisher: game.Landlord, Moves: 3})
	assert.Equal(t, "landlord side wins (landlord went out after 3 moves)\n", buf.String())
}

func TestLinePrompter(t *testing.T) {
	var out bytes.Buffer
	p := NewLinePrompter(strings.NewReader("3,3\n  pass \nquit\n"), &out)
	req := bot.PromptRequest{Hand: deck.MustParseHand("3,3,4")}

	line, err := p.Prompt(req)
	require.NoError(t, err)
	assert.Equal(t, "3,3", line)
	assert.Contains(t, out.String(), "Your hand: [3 3 4]")
	assert.Contains(t, out.String(), "You lead.")

	line, err = p.Prompt(req)
	require.NoError(t, err)
	assert.Equal(t, "pass", line)

	_, err = p.Prompt(req)
	assert.ErrorIs(t, err, ErrQuit)

	_, err = p.Prompt(req)
	assert.ErrorIs(t, err, ErrQuit, "end of input")

	p.Reject("bad play")
	assert.Contains(t, out.String(), "bad play\n")
}

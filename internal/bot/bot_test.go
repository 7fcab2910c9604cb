package bot

import (
	"errors"
	"io"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/lox/landlord/internal/combo"
	"github.com/lox/landlord/internal/deck"
	"github.com/lox/landlord/internal/game"
	"github.com/lox/landlord/internal/randutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testCatalog = combo.NewCatalog()

func quietLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{Level: log.WarnLevel})
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

func play(t *testing.T, s string) combo.Combination {
	t.Helper()
	entry, ok := testCatalog.Lookup(deck.MustParseHand(s))
	require.True(t, ok, "no catalog entry for %s", s)
	return *entry
}

func TestParseKind(t *testing.T) {
	tests := []struct {
		input string
		want  Kind
	}{
		{"random", Random},
		{"RAND", Random},
		{"alphabeta", AlphaBeta},
		{"alpha-beta", AlphaBeta},
		{"human", Interactive},
		{" interactive ", Interactive},
	}
	for _, tt := range tests {
		got, err := ParseKind(tt.input)
		require.NoError(t, err, tt.input)
		assert.Equal(t, tt.want, got, tt.input)
	}

	_, err := ParseKind("oracle")
	assert.Error(t, err)

	for _, k := range []Kind{Random, AlphaBeta, Interactive} {
		parsed, err := ParseKind(k.String())
		require.NoError(t, err)
		assert.Equal(t, k, parsed)
	}
}

func TestNewValidatesOptions(t *testing.T) {
	logger := quietLogger()

	_, err := New(Random, game.Landlord, Options{Logger: logger})
	assert.Error(t, err, "random needs an rng")

	_, err = New(AlphaBeta, game.Landlord, Options{Depth: 0, Logger: logger})
	assert.Error(t, err, "depth must be positive")

	_, err = New(Interactive, game.Landlord, Options{Logger: logger})
	assert.Error(t, err, "human needs a prompter")

	agent, err := New(AlphaBeta, game.FarmerOne, Options{Depth: 2, Workers: 4, Logger: logger})
	require.NoError(t, err)
	ab, ok := agent.(*AlphaBetaBot)
	require.True(t, ok)
	assert.Equal(t, 2, ab.depth)
	assert.Equal(t, 4, ab.workers)

	agent, err = New(Random, game.FarmerTwo, Options{Rng: randutil.New(1), Logger: logger})
	require.NoError(t, err)
	assert.IsType(t, &RandomBot{}, agent)
}

func TestRandomBotChoosesLegalAction(t *testing.T) {
	rng := randutil.New(42)
	s, err := game.Deal(testCatalog, rng)
	require.NoError(t, err)

	b := NewRandomBot(game.Landlord, rng, quietLogger())
	for range 50 {
		a, err := b.ChooseAction(s)
		require.NoError(t, err)
		assert.False(t, a.IsPass(), "landlord leads the first trick")
		assert.True(t, s.Hand(game.Landlord).Contains(a.Cards()))
	}
}

func TestRandomBotNoActions(t *testing.T) {
	s := newTestState(t, "3", "4", "5")
	s, err := s.Next(play(t, "3"))
	require.NoError(t, err)
	require.True(t, s.IsTerminal())

	_, err = NewRandomBot(game.FarmerOne, randutil.New(1), quietLogger()).ChooseAction(s)
	assert.ErrorIs(t, err, ErrNoActions)
}

func TestEngineRandomGamesComplete(t *testing.T) {
	for seed := range int64(10) {
		rng := randutil.New(seed)
		s, err := game.Deal(testCatalog, rng)
		require.NoError(t, err)

		var agents [game.NumSeats]game.Agent
		for _, seat := range game.Seats {
			agents[seat] = NewRandomBot(seat, rng, quietLogger())
		}
		res, err := game.NewEngine(quietLogger(), nil).Play(s, agents)
		require.NoError(t, err)
		assert.True(t, res.Final.IsTerminal())
		assert.NotEqual(t, game.NoSide, res.Winner)
		assert.Equal(t, deck.DeckSize, res.Final.CardCount())
	}
}

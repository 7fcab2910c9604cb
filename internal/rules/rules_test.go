package rules

import (
	"errors"
	"testing"

	"github.com/lox/landlord/internal/combo"
	"github.com/lox/landlord/internal/deck"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testCatalog = combo.NewCatalog()

func mustCombo(t *testing.T, s string) combo.Combination {
	t.Helper()
	entry, ok := testCatalog.Lookup(deck.MustParseHand(s))
	require.True(t, ok, "no catalog entry for %s", s)
	return *entry
}

func containsAction(actions []combo.Combination, want combo.Combination) bool {
	for _, a := range actions {
		if a.Equal(want) {
			return true
		}
	}
	return false
}

func TestAnalyze(t *testing.T) {
	hand := deck.MustParseHand("3,3,3,4")
	candidates := Analyze(testCatalog, hand)

	var types []combo.Type
	for _, c := range candidates {
		assert.True(t, hand.Contains(c.Cards()), "%s not realizable", c)
		types = append(types, c.Type)
	}
	// single 3, single 4, pair 3, trio 3, trio_single 3334, pass
	assert.Len(t, candidates, 6)
	assert.Equal(t, combo.Pass, types[len(types)-1], "pass is always last")
	assert.Same(t, testCatalog.Pass(), candidates[len(candidates)-1])
}

func TestAnalyzeSharesCatalogEntries(t *testing.T) {
	candidates := Analyze(testCatalog, deck.MustParseHand("7,7,7,7"))
	bombs := testCatalog.Of(combo.Bomb)
	found := false
	for _, c := range candidates {
		if c.Type == combo.Bomb {
			assert.Same(t, &bombs[deck.Seven], c)
			found = true
		}
	}
	assert.True(t, found)
}

func TestSuccessorsLeading(t *testing.T) {
	hand := deck.MustParseHand("3,3,3,4")
	actions := Successors(combo.Combination{}, hand, Analyze(testCatalog, hand))

	assert.True(t, containsAction(actions, mustCombo(t, "3,3,3,4")))
	assert.True(t, containsAction(actions, mustCombo(t, "3,3,3")))
	assert.True(t, containsAction(actions, mustCombo(t, "3")))
	assert.True(t, containsAction(actions, mustCombo(t, "4")))
	assert.True(t, containsAction(actions, mustCombo(t, "3,3")), "three 3s remain so the pair is listed")
	assert.False(t, containsAction(actions, combo.Combination{}), "leader may not pass")
}

func TestSuccessorsRefilterAgainstCurrentHand(t *testing.T) {
	dealt := deck.MustParseHand("3,3,3,4")
	candidates := Analyze(testCatalog, dealt)
	current := deck.MustParseHand("3,4")

	actions := Successors(combo.Combination{}, current, candidates)
	assert.Len(t, actions, 2)
	assert.False(t, containsAction(actions, mustCombo(t, "3,3")))
	assert.False(t, containsAction(actions, mustCombo(t, "3,3,3")))
}

func TestSuccessorsAgainstBomb(t *testing.T) {
	hand := deck.MustParseHand("5,5,5,5,9,9,9,9,SJ,BJ,K")
	candidates := Analyze(testCatalog, hand)
	actions := Successors(mustCombo(t, "7,7,7,7"), hand, candidates)

	assert.True(t, containsAction(actions, mustCombo(t, "9,9,9,9")))
	assert.True(t, containsAction(actions, mustCombo(t, "SJ,BJ")))
	assert.False(t, containsAction(actions, mustCombo(t, "5,5,5,5")), "lower bomb")
	assert.True(t, containsAction(actions, combo.Combination{}))
	for _, a := range actions {
		if a.IsPass() {
			continue
		}
		assert.True(t, a.Type.IsBomb(), "non-bomb %s answered a bomb", a)
	}
}

func TestSuccessorsAgainstKingBomb(t *testing.T) {
	hand := deck.MustParseHand("9,9,9,9,2,2,2,2,3")
	actions := Successors(mustCombo(t, "SJ,BJ"), hand, Analyze(testCatalog, hand))
	require.Len(t, actions, 1)
	assert.True(t, actions[0].IsPass())
}

func TestSuccessorsBombsBeatNonBombs(t *testing.T) {
	hand := deck.MustParseHand("4,4,4,4,6,6,6,6")
	candidates := Analyze(testCatalog, hand)
	for _, prev := range []string{"2", "A,A", "3,4,5,6,7", "K,K,K,Q"} {
		actions := Successors(mustCombo(t, prev), hand, candidates)
		assert.True(t, containsAction(actions, mustCombo(t, "4,4,4,4")), "vs %s", prev)
		assert.True(t, containsAction(actions, mustCombo(t, "6,6,6,6")), "vs %s", prev)
	}
}

func TestSuccessorsSameShape(t *testing.T) {
	hand := deck.MustParseHand("5,6,7,8,9,10,J,Q,Q,Q,K")
	candidates := Analyze(testCatalog, hand)

	actions := Successors(mustCombo(t, "4,5,6,7,8"), hand, candidates)
	assert.True(t, containsAction(actions, mustCombo(t, "5,6,7,8,9")))
	assert.True(t, containsAction(actions, mustCombo(t, "8,9,10,J,Q")))
	assert.False(t, containsAction(actions, mustCombo(t, "5,6,7,8,9,10")), "length must match")

	actions = Successors(mustCombo(t, "J,J,J,3"), hand, candidates)
	assert.True(t, containsAction(actions, mustCombo(t, "Q,Q,Q,K")))
	assert.True(t, containsAction(actions, mustCombo(t, "Q,Q,Q,5")))
	assert.False(t, containsAction(actions, mustCombo(t, "Q,Q,Q")), "trio does not answer trio_single")
}

func TestBeats(t *testing.T) {
	tests := []struct {
		name     string
		play     string
		prev     string
		expected bool
	}{
		{"higher single", "2", "A", true},
		{"lower single", "3", "4", false},
		{"equal single", "5", "5", false},
		{"joker single", "BJ", "SJ", true},
		{"bomb beats chain", "3,3,3,3", "10,J,Q,K,A", true},
		{"higher bomb", "4,4,4,4", "3,3,3,3", true},
		{"lower bomb", "3,3,3,3", "4,4,4,4", false},
		{"bomb vs king bomb", "2,2,2,2", "SJ,BJ", false},
		{"king bomb vs bomb", "SJ,BJ", "2,2,2,2", true},
		{"trio pair by body", "5,5,5,3,3", "4,4,4,K,K", true},
		{"type mismatch", "5,5", "4", false},
		{"four with two vs bomb", "5,5,5,5,3,4", "4,4,4,4", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Beats(mustCombo(t, tt.play), mustCombo(t, tt.prev)))
		})
	}
	assert.False(t, Beats(combo.Combination{}, mustCombo(t, "3")))
	assert.True(t, Beats(mustCombo(t, "3"), combo.Combination{}))
}

func TestClassify(t *testing.T) {
	hand := deck.MustParseHand("3,3,3,4,8,8,8,8,SJ,BJ")
	candidates := Analyze(testCatalog, hand)

	tests := []struct {
		name     string
		prev     combo.Combination
		input    string
		expected combo.Type
		wantErr  bool
	}{
		{name: "lead trio single", input: "3,4,3,3", expected: combo.TrioSingle},
		{name: "lead bomb", input: "8,8,8,8", expected: combo.Bomb},
		{name: "lead four with two", input: "8,8,8,8,3,4", expected: combo.FourWithTwo},
		{name: "king bomb answers bomb", prev: mustCombo(t, "9,9,9,9"), input: "SJ,BJ", expected: combo.KingBomb},
		{name: "single answers single", prev: mustCombo(t, "7"), input: "8", expected: combo.Single},
		{name: "too low", prev: mustCombo(t, "9"), input: "8", wantErr: true},
		{name: "not a shape", input: "3,4", wantErr: true},
		{name: "not in hand", input: "5", wantErr: true},
		{name: "wrong shape for prev", prev: mustCombo(t, "5,5"), input: "8,8,8", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Classify(tt.prev, mustRanks(t, tt.input), hand, candidates)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrInvalidPlay))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got.Type)
			assert.Equal(t, len(mustRanks(t, tt.input)), got.Len())
		})
	}
}

func TestClassifyPass(t *testing.T) {
	hand := deck.MustParseHand("3,4")
	candidates := Analyze(testCatalog, hand)

	got, err := Classify(mustCombo(t, "5"), nil, hand, candidates)
	require.NoError(t, err)
	assert.True(t, got.IsPass())

	_, err = Classify(combo.Combination{}, nil, hand, candidates)
	assert.ErrorIs(t, err, ErrInvalidPlay)
}

func TestClassifyRejectsOversizedSelection(t *testing.T) {
	hand := deck.MustParseHand("3,4")
	candidates := Analyze(testCatalog, hand)

	// 256 copies of one rank overflow the per-rank count back to zero
	wrapped := make([]deck.Rank, 256)
	_, err := Classify(mustCombo(t, "5"), wrapped, hand, candidates)
	assert.ErrorIs(t, err, ErrInvalidPlay, "must not be read as a pass")

	_, err = Classify(combo.Combination{}, wrapped, hand, candidates)
	assert.ErrorIs(t, err, ErrInvalidPlay)

	tooMany := make([]deck.Rank, combo.MaxCards+1)
	for i := range tooMany {
		tooMany[i] = deck.Rank(i % deck.NumStandardRanks)
	}
	_, err = Classify(mustCombo(t, "5"), tooMany, deck.NewHand(tooMany...), candidates)
	assert.ErrorIs(t, err, ErrInvalidPlay)
}

func mustRanks(t *testing.T, s string) []deck.Rank {
	t.Helper()
	ranks, err := deck.ParseRanks(s)
	require.NoError(t, err)
	return ranks
}

package main

import (
	"bytes"
	"context"
	"io"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/lox/landlord/internal/bot"
	"github.com/lox/landlord/internal/combo"
	"github.com/lox/landlord/internal/config"
	"github.com/lox/landlord/internal/game"
	"github.com/lox/landlord/internal/rules"
	"github.com/lox/landlord/internal/simulator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quietLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{Level: log.WarnLevel})
}

type nopPrompter struct{}

func (nopPrompter) Prompt(bot.PromptRequest) (string, error) { return "pass", nil }
func (nopPrompter) Reject(string)                            {}

func TestCatalogSummary(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, (&CatalogCmd{}).run(&buf))

	out := buf.String()
	assert.Contains(t, out, "king_bomb")
	assert.Contains(t, out, "total")
	lines := strings.Split(strings.TrimSpace(out), "\n")
	assert.Len(t, lines, len(combo.Types)+1)
}

func TestCatalogByType(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, (&CatalogCmd{Type: "bomb"}).run(&buf))
	assert.Contains(t, buf.String(), "bomb(3,3,3,3)")
	assert.Contains(t, buf.String(), "13 bomb combinations")

	assert.Error(t, (&CatalogCmd{Type: "straight_flush"}).run(&buf))
}

func TestCatalogHand(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, (&CatalogCmd{Hand: "3,3,4"}).run(&buf))
	out := buf.String()
	assert.Contains(t, out, "single(4)")
	assert.Contains(t, out, "pair(3,3)")
	assert.NotContains(t, out, "trio")

	assert.Error(t, (&CatalogCmd{Hand: "3,3,3,3,3"}).run(&buf), "five of a rank")
}

func TestClassify(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, (&ClassifyCmd{Cards: "6,6,6,3", Previous: "5,5,5,4"}).run(&buf))
	assert.Equal(t, "trio_single(3,6,6,6) beats trio_single(4,5,5,5)\n", buf.String())

	buf.Reset()
	require.NoError(t, (&ClassifyCmd{Cards: "7,8,9,10,J"}).run(&buf))
	assert.Equal(t, "chain(7,8,9,10,J) leads\n", buf.String())
}

func TestClassifyRejects(t *testing.T) {
	var buf bytes.Buffer
	err := (&ClassifyCmd{Cards: "3,4"}).run(&buf)
	assert.ErrorIs(t, err, rules.ErrInvalidPlay)

	err = (&ClassifyCmd{Cards: "4", Previous: "5"}).run(&buf)
	assert.ErrorIs(t, err, rules.ErrInvalidPlay)

	err = (&ClassifyCmd{Cards: "4", Previous: "5,6"}).run(&buf)
	assert.ErrorContains(t, err, "previous play")

	err = (&ClassifyCmd{Cards: strings.Repeat("3,", 256), Previous: "5"}).run(&buf)
	assert.ErrorIs(t, err, rules.ErrInvalidPlay)
}

func TestReport(t *testing.T) {
	input := strings.Join([]string{
		"[landlord]alphabeta-weighted-2::[farmer]random-weighted-0::[winner]landlord||",
		"[landlord]random-weighted-0::[farmer]random-weighted-0::[winner]farmer||",
		"",
		"[landlord]alphabeta-weighted-2::[farmer]random-weighted-0::[winner]farmer||",
	}, "\n")

	var buf bytes.Buffer
	require.NoError(t, report(strings.NewReader(input), &buf))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[0], "LANDLORD")
	assert.True(t, strings.HasPrefix(lines[1], "alphabeta-weighted-2"), lines[1])
	assert.Contains(t, lines[1], "50.0%")
	assert.Contains(t, lines[2], "0.0%")
}

func TestReportEmptyAndMalformed(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, report(strings.NewReader(""), &buf))
	assert.Equal(t, "No outcomes recorded.\n", buf.String())

	err := report(strings.NewReader("not an outcome\n"), &buf)
	assert.ErrorContains(t, err, "line 1")
}

func TestBuildAgents(t *testing.T) {
	cfg := config.Default()

	agents, err := buildAgents(cfg, 7, game.Landlord, nil, quietLogger())
	require.NoError(t, err)
	assert.IsType(t, &bot.AlphaBetaBot{}, agents[game.Landlord])
	assert.IsType(t, &bot.RandomBot{}, agents[game.FarmerOne])
	assert.IsType(t, &bot.RandomBot{}, agents[game.FarmerTwo])

	agents, err = buildAgents(cfg, 7, game.FarmerTwo, nopPrompter{}, quietLogger())
	require.NoError(t, err)
	assert.IsType(t, &bot.AlphaBetaBot{}, agents[game.Landlord])
	assert.IsType(t, &bot.HumanAgent{}, agents[game.FarmerTwo])

	cfg.Farmer.Kind = "human"
	_, err = buildAgents(cfg, 7, game.Landlord, nopPrompter{}, quietLogger())
	assert.ErrorContains(t, err, "only the player's own seat")
}

func TestPlaySpecs(t *testing.T) {
	cfg := config.Default()

	landlord, farmer, err := playSpecs(cfg, game.FarmerOne, true)
	require.NoError(t, err)
	assert.Equal(t, "alphabeta-weighted-2", landlord.String())
	assert.Equal(t, "human-none-0", farmer.String())

	landlord, _, err = playSpecs(cfg, game.Landlord, false)
	require.NoError(t, err)
	assert.Equal(t, "alphabeta-weighted-2", landlord.String())
}

func TestReplayRecords(t *testing.T) {
	dir := t.TempDir()
	cfg := config.Default()
	cfg.Landlord.Kind = "random"
	landlord, farmer, err := sideConfigs(cfg)
	require.NoError(t, err)

	_, err = simulator.New(simulator.Config{
		Games:     2,
		Seed:      11,
		Landlord:  landlord,
		Farmer:    farmer,
		RecordDir: dir,
		Logger:    quietLogger(),
	}).Run(context.Background())
	require.NoError(t, err)

	files, err := filepath.Glob(filepath.Join(dir, "*.toml"))
	require.NoError(t, err)
	require.Len(t, files, 2)

	cmd := &ReplayCmd{}
	var buf bytes.Buffer
	require.NoError(t, cmd.replay(combo.NewCatalog(), files[0], &buf))
	assert.Contains(t, buf.String(), "Landlord random-weighted-2 vs farmers random-weighted-2")
	assert.Contains(t, buf.String(), "side wins")

	buf.Reset()
	cmd.Quiet = true
	require.NoError(t, cmd.replay(combo.NewCatalog(), files[1], &buf))
	assert.Equal(t, files[1]+": ok\n", buf.String())
}

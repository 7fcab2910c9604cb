package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/lox/landlord/internal/bot"
	"github.com/lox/landlord/internal/deck"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "landlord.hcl")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	config, err := Load(filepath.Join(t.TempDir(), "missing.hcl"))
	require.NoError(t, err)
	assert.Equal(t, Default(), config)
	require.NoError(t, config.Validate())
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, `
seed        = 42
games       = 500
workers     = 8
outcome_log = "runs/outcomes.log"

landlord {
  kind  = "alphabeta"
  depth = 3
}

farmer {
  kind = "alphabeta"
}

heuristic {
  name     = "progress"
  baseline = 20
}
`)
	config, err := Load(path)
	require.NoError(t, err)
	require.NoError(t, config.Validate())

	assert.Equal(t, int64(42), config.Seed)
	assert.Equal(t, 500, config.Games)
	assert.Equal(t, 8, config.Workers)
	assert.Equal(t, DefaultLogLevel, config.LogLevel)
	assert.Equal(t, "runs/outcomes.log", config.OutcomeLog)
	assert.Equal(t, AgentConfig{Kind: "alphabeta", Depth: 3, Workers: 1}, config.Landlord)
	assert.Equal(t, DefaultDepth, config.Farmer.Depth)

	h, err := config.BuildHeuristic()
	require.NoError(t, err)
	assert.Equal(t, 17, h(deck.MustParseHand("3,4,5")))
}

func TestLoadCustomWeights(t *testing.T) {
	path := writeConfig(t, `
heuristic {
  weights = [0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 10, 10, 10]
}
`)
	config, err := Load(path)
	require.NoError(t, err)
	h, err := config.BuildHeuristic()
	require.NoError(t, err)
	assert.Equal(t, bot.DefaultBaseline-1+10, h(deck.MustParseHand("2")))
}

func TestLoadInvalidHCL(t *testing.T) {
	_, err := Load(writeConfig(t, `games = `))
	assert.Error(t, err)

	_, err = Load(writeConfig(t, `unknown = 1`))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
	}{
		{"no games", func(c *Config) { c.Games = 0 }},
		{"no workers", func(c *Config) { c.Workers = 0 }},
		{"unknown kind", func(c *Config) { c.Farmer.Kind = "oracle" }},
		{"zero depth", func(c *Config) { c.Landlord.Depth = 0 }},
		{"short weights", func(c *Config) { c.Heuristic.Weights = []int{1, 2} }},
		{"unknown heuristic", func(c *Config) { c.Heuristic.Name = "vibes" }},
		{"weights rival a win", func(c *Config) { c.Heuristic.Weights[deck.BigJoker] = 50 }},
		{"negative weights rival a loss", func(c *Config) { c.Heuristic.Weights[deck.Three] = -49 }},
		{"baseline rivals a win", func(c *Config) { c.Heuristic.Baseline = 1000 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := Default()
			tt.modify(config)
			assert.Error(t, config.Validate())
		})
	}

	config := Default()
	config.Farmer = AgentConfig{Kind: "human"}
	assert.NoError(t, config.Validate(), "depth is only checked for search agents")

	config = Default()
	config.Heuristic.Weights[deck.BigJoker] = 40
	assert.NoError(t, config.Validate(), "40*20 + 24 + 20 stays below a win")
}

func TestLoadExampleConfig(t *testing.T) {
	cfg, err := Load(filepath.Join("..", "..", "landlord.example.hcl"))
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, 1000, cfg.Games)
	assert.Equal(t, 4, cfg.Landlord.Workers)
	assert.Equal(t, "random", cfg.Farmer.Kind)
	assert.Equal(t, bot.DefaultWeights[:], cfg.Heuristic.Weights)
}

// Package config loads match configuration from HCL files.
package config

import (
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/lox/landlord/internal/bot"
	"github.com/lox/landlord/internal/deck"
)

// Config represents a complete match configuration
type Config struct {
	Seed       int64           `hcl:"seed,optional"`
	Games      int             `hcl:"games,optional"`
	Workers    int             `hcl:"workers,optional"`
	LogLevel   string          `hcl:"log_level,optional"`
	OutcomeLog string          `hcl:"outcome_log,optional"`
	RecordDir  string          `hcl:"record_dir,optional"`
	Landlord   AgentConfig     `hcl:"landlord,block"`
	Farmer     AgentConfig     `hcl:"farmer,block"`
	Heuristic  HeuristicConfig `hcl:"heuristic,block"`
}

// AgentConfig selects the strategy for one side.
type AgentConfig struct {
	Kind    string `hcl:"kind,optional"`
	Depth   int    `hcl:"depth,optional"`
	Workers int    `hcl:"workers,optional"`
}

// HeuristicConfig tunes the search agent's leaf evaluation.
type HeuristicConfig struct {
	Name     string `hcl:"name,optional"`
	Weights  []int  `hcl:"weights,optional"`
	Baseline int    `hcl:"baseline,optional"`
}

// partial mirrors Config with optional blocks, so a file may omit any of them.
type partial struct {
	Seed       int64            `hcl:"seed,optional"`
	Games      int              `hcl:"games,optional"`
	Workers    int              `hcl:"workers,optional"`
	LogLevel   string           `hcl:"log_level,optional"`
	OutcomeLog string           `hcl:"outcome_log,optional"`
	RecordDir  string           `hcl:"record_dir,optional"`
	Landlord   *AgentConfig     `hcl:"landlord,block"`
	Farmer     *AgentConfig     `hcl:"farmer,block"`
	Heuristic  *HeuristicConfig `hcl:"heuristic,block"`
}

const (
	DefaultGames      = 100
	DefaultDepth      = 2
	DefaultLogLevel   = "info"
	DefaultOutcomeLog = "outcomes.log"
)

// Default returns the default configuration: a depth-2 search landlord
// against random farmers.
func Default() *Config {
	return &Config{
		Games:      DefaultGames,
		Workers:    1,
		LogLevel:   DefaultLogLevel,
		OutcomeLog: DefaultOutcomeLog,
		Landlord:   AgentConfig{Kind: bot.AlphaBeta.String(), Depth: DefaultDepth, Workers: 1},
		Farmer:     AgentConfig{Kind: bot.Random.String(), Depth: DefaultDepth, Workers: 1},
		Heuristic: HeuristicConfig{
			Name:     "weighted",
			Weights:  append([]int(nil), bot.DefaultWeights[:]...),
			Baseline: bot.DefaultBaseline,
		},
	}
}

// Load reads configuration from an HCL file. A missing file yields Default().
func Load(filename string) (*Config, error) {
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return Default(), nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var raw partial
	diags = gohcl.DecodeBody(file.Body, nil, &raw)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	config := Default()
	config.Seed = raw.Seed
	if raw.Games != 0 {
		config.Games = raw.Games
	}
	if raw.Workers != 0 {
		config.Workers = raw.Workers
	}
	if raw.LogLevel != "" {
		config.LogLevel = raw.LogLevel
	}
	if raw.OutcomeLog != "" {
		config.OutcomeLog = raw.OutcomeLog
	}
	config.RecordDir = raw.RecordDir
	if raw.Landlord != nil {
		config.Landlord = mergeAgent(config.Landlord, *raw.Landlord)
	}
	if raw.Farmer != nil {
		config.Farmer = mergeAgent(config.Farmer, *raw.Farmer)
	}
	if h := raw.Heuristic; h != nil {
		if h.Name != "" {
			config.Heuristic.Name = h.Name
		}
		if len(h.Weights) > 0 {
			config.Heuristic.Weights = h.Weights
		}
		if h.Baseline != 0 {
			config.Heuristic.Baseline = h.Baseline
		}
	}

	return config, nil
}

func mergeAgent(base, over AgentConfig) AgentConfig {
	if over.Kind != "" {
		base.Kind = over.Kind
	}
	if over.Depth != 0 {
		base.Depth = over.Depth
	}
	if over.Workers != 0 {
		base.Workers = over.Workers
	}
	return base
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Games < 1 {
		return fmt.Errorf("games must be positive, got %d", c.Games)
	}
	if c.Workers < 1 {
		return fmt.Errorf("workers must be positive, got %d", c.Workers)
	}
	for _, side := range []struct {
		name  string
		agent AgentConfig
	}{{"landlord", c.Landlord}, {"farmer", c.Farmer}} {
		kind, err := bot.ParseKind(side.agent.Kind)
		if err != nil {
			return fmt.Errorf("%s: %w", side.name, err)
		}
		if kind == bot.AlphaBeta && side.agent.Depth < 1 {
			return fmt.Errorf("%s: search depth must be at least 1, got %d", side.name, side.agent.Depth)
		}
		if side.agent.Workers < 0 {
			return fmt.Errorf("%s: workers must not be negative", side.name)
		}
	}
	if _, err := c.BuildHeuristic(); err != nil {
		return err
	}
	var weights [deck.NumRanks]int
	copy(weights[:], c.Heuristic.Weights)
	if bound := bot.ScoreBound(weights, c.Heuristic.Baseline); bound >= bot.WinScore {
		return fmt.Errorf("heuristic: weights and baseline can score %d, must stay below %d", bound, bot.WinScore)
	}
	return nil
}

// BuildHeuristic resolves the configured leaf evaluation.
func (c *Config) BuildHeuristic() (bot.Heuristic, error) {
	if len(c.Heuristic.Weights) != deck.NumRanks {
		return nil, fmt.Errorf("heuristic: need %d weights, got %d", deck.NumRanks, len(c.Heuristic.Weights))
	}
	var weights [deck.NumRanks]int
	copy(weights[:], c.Heuristic.Weights)
	return bot.ParseHeuristic(c.Heuristic.Name, weights, c.Heuristic.Baseline)
}

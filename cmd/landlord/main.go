package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"
)

// version is set by ldflags during build
var version = "dev"

// Globals are flags shared by every command.
type Globals struct {
	Config   string `short:"c" default:"landlord.hcl" env:"LANDLORD_CONFIG" help:"Path to HCL configuration file"`
	LogLevel string `short:"l" env:"LANDLORD_LOG_LEVEL" help:"Log level: debug|info|warn|error (overrides config)"`
	LogFile  string `env:"LANDLORD_LOG_FILE" help:"Write logs to this file instead of stderr"`
	NoColor  bool   `env:"NO_COLOR" help:"Disable colored output"`
}

type CLI struct {
	Globals

	Version  kong.VersionFlag `short:"v" help:"Show version"`
	Play     PlayCmd          `cmd:"" default:"withargs" help:"Play a game, interactively or bot against bot"`
	Simulate SimulateCmd      `cmd:"" help:"Run a batch of self-play games and report win rates"`
	Report   ReportCmd        `cmd:"" help:"Summarize an outcome log"`
	Replay   ReplayCmd        `cmd:"" help:"Validate and print saved game records"`
	Catalog  CatalogCmd       `cmd:"" help:"Inspect the combination catalog"`
	Classify ClassifyCmd      `cmd:"" help:"Classify a card selection against a previous play"`
}

func main() {
	// .env is optional; it only seeds LANDLORD_* variables
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "Error loading .env: %v\n", err)
		os.Exit(1)
	}

	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("landlord"),
		kong.Description("Three-player landlord card game with search-based bots"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version": version,
		},
	)
	err := ctx.Run(&cli.Globals)
	ctx.FatalIfErrorf(err)
}

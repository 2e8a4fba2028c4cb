package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/omkarkhatavkar/pytest-picked/internal/cli"
	"github.com/omkarkhatavkar/pytest-picked/internal/cli/commands"
	"github.com/omkarkhatavkar/pytest-picked/internal/config"

	"github.com/spf13/cobra"
)

var version = "dev"

func main() {
	// Create root command
	rootCmd := &cobra.Command{
		Use:     "picked",
		Short:   "Run the pytest tests related to your git changes",
		Long:    `Select the pytest tests affected by unstaged changes, a branch diff or the changed hunks of a diff, and run them on their own or first.`,
		Version: version,
	}

	// Create initial config with defaults, loaded once flags are parsed
	cfg := config.New()

	// Create flags struct (will be populated by command flags)
	var flags cli.Flags

	// Create commands with dependencies
	cmds := commands.NewCommands(cfg)

	// Register all commands
	cmds.Register(rootCmd, &flags, cfg)

	// Execute root command
	if err := rootCmd.Execute(); err != nil {
		var exitErr *commands.ExitError
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.Code)
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

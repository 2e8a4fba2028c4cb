package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/omkarkhatavkar/pytest-picked/internal/cli"
	"github.com/omkarkhatavkar/pytest-picked/internal/config"
	"github.com/omkarkhatavkar/pytest-picked/internal/execution"
	"github.com/omkarkhatavkar/pytest-picked/internal/modes"
	"github.com/omkarkhatavkar/pytest-picked/internal/parser"
	"github.com/omkarkhatavkar/pytest-picked/internal/storage"
	"github.com/omkarkhatavkar/pytest-picked/internal/ui"
)

// Commands holds all CLI commands
type Commands struct {
	Run  *RunCommand
	List *ListCommand
	Last *LastCommand
}

// NewCommands creates all commands with dependencies.
// Dependencies read cfg when they run, so it may be loaded after construction.
func NewCommands(cfg *config.Config) *Commands {
	pytestParser := parser.NewPytestParser()
	runner := execution.NewRunner(cfg, os.Stdout, pytestParser)
	jsonStorage := storage.NewJSONStorage(cfg)
	formatter := ui.NewFormatter(cfg, os.Stdout)
	selector := NewSelector(cfg, nil)

	return &Commands{
		Run:  NewRunCommand(cfg, selector, runner, runner, pytestParser, jsonStorage, formatter),
		List: NewListCommand(cfg, selector, formatter),
		Last: NewLastCommand(cfg, jsonStorage, formatter),
	}
}

// Register registers all commands with cobra
func (c *Commands) Register(rootCmd *cobra.Command, flags *cli.Flags, cfg *config.Config) {
	rootCmd.SilenceUsage = true
	rootCmd.SilenceErrors = true
	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		if flags.Verbose {
			slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
				Level: slog.LevelDebug,
			})))
		}

		loaded, err := config.Load(flags.ToConfigFlags())
		if err != nil {
			return err
		}
		*cfg = *loaded
		slog.Debug("configuration loaded",
			"project", cfg.ProjectPath,
			"mode", cfg.Mode,
			"picked", cfg.Picked,
			"conventions_source", cfg.ConventionsSource,
		)
		return nil
	}

	rootCmd.PersistentFlags().StringVar(&flags.ProjectPath, "project-path", "", "Path to the project (git repository) root")
	rootCmd.PersistentFlags().StringVar(&flags.GitPath, "git", "", "git binary to use")
	rootCmd.PersistentFlags().BoolVarP(&flags.Verbose, "verbose", "v", false, "Enable debug logging")

	modeUsage := fmt.Sprintf("Change detection mode. Options: %s", strings.Join(modes.Names, ", "))
	branchUsage := "The main branch of your repo (master, main, trunk, etc)"
	filterUsage := "Filter affected tests by name pattern (supports wildcards, e.g., 'test_user*' or '*payment*')"

	// Run command
	runCmd := &cobra.Command{
		Use:   "run [-- pytest args...]",
		Short: "Run the tests related to the changed files",
		Long:  "Run the tests related to the changed files either on their own, or first",
		Args:  cobra.ArbitraryArgs,
		RunE:  c.Run.Execute,
	}
	runCmd.Flags().StringVar(&flags.Picked, "picked", "", fmt.Sprintf("How to run the affected tests. Options: %s", strings.Join(config.PickedTypes, ", ")))
	runCmd.Flags().StringVarP(&flags.Mode, "mode", "m", "", modeUsage)
	runCmd.Flags().StringVar(&flags.ParentBranch, "parent-branch", "", branchUsage)
	runCmd.Flags().StringVarP(&flags.NameFilter, "filter", "f", "", filterUsage)
	runCmd.Flags().StringVar(&flags.RunnerPath, "runner", "", "pytest binary to run")
	runCmd.Flags().BoolVar(&flags.DryRun, "dry-run", false, "Print the pytest command instead of running it")
	rootCmd.AddCommand(runCmd)

	// List command
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List the tests related to the changed files",
		Long:  "Detect the affected tests without executing them",
		Args:  cobra.NoArgs,
		RunE:  c.List.Execute,
	}
	listCmd.Flags().StringVarP(&flags.Mode, "mode", "m", "", modeUsage)
	listCmd.Flags().StringVar(&flags.ParentBranch, "parent-branch", "", branchUsage)
	listCmd.Flags().StringVarP(&flags.NameFilter, "filter", "f", "", filterUsage)
	listCmd.Flags().BoolVarP(&flags.TestCases, "test-cases", "c", false, "List the test cases of every affected file")
	listCmd.Flags().BoolVar(&flags.ExpandFolders, "expand-folders", false, "List the test files inside affected folders")
	rootCmd.AddCommand(listCmd)

	// Last command
	lastCmd := &cobra.Command{
		Use:   "last",
		Short: "Show the report of the last run",
		Long:  "Display the affected tests and statistics saved by the last picked run",
		Args:  cobra.NoArgs,
		RunE:  c.Last.Execute,
	}
	rootCmd.AddCommand(lastCmd)
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

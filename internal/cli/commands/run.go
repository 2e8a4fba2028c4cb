package commands

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/omkarkhatavkar/pytest-picked/internal/config"
	"github.com/omkarkhatavkar/pytest-picked/internal/domain"
	"github.com/omkarkhatavkar/pytest-picked/internal/execution"
	"github.com/omkarkhatavkar/pytest-picked/internal/modes"
	"github.com/omkarkhatavkar/pytest-picked/internal/parser"
	"github.com/omkarkhatavkar/pytest-picked/internal/storage"
	"github.com/omkarkhatavkar/pytest-picked/internal/ui"
)

// RunCommand handles the run command
type RunCommand struct {
	config    *config.Config
	selector  *Selector
	executor  execution.Executor
	collector execution.Collector
	parser    parser.Parser
	storage   storage.Storage
	formatter *ui.Formatter
}

// NewRunCommand creates a new RunCommand
func NewRunCommand(
	cfg *config.Config,
	selector *Selector,
	executor execution.Executor,
	collector execution.Collector,
	p parser.Parser,
	st storage.Storage,
	formatter *ui.Formatter,
) *RunCommand {
	return &RunCommand{
		config:    cfg,
		selector:  selector,
		executor:  executor,
		collector: collector,
		parser:    p,
		storage:   st,
		formatter: formatter,
	}
}

// Execute runs the command; args are passed through to pytest
func (rc *RunCommand) Execute(cmd *cobra.Command, args []string) error {
	ctx := commandContext(cmd)
	affected, err := rc.selector.Select(ctx)
	if err != nil {
		return err
	}
	rc.formatter.PrintAffected(affected)

	var runArgs []string
	switch rc.config.Picked {
	case config.PickedFirst:
		runArgs = rc.firstArgs(ctx, affected, args)
	default:
		if affected.Empty() {
			color.Yellow("No affected tests to run")
			return nil
		}
		runArgs = append(append([]string{}, args...), affected.Targets()...)
	}

	if rc.config.Flags.DryRun {
		rc.formatter.PrintCommand(rc.executor.Command(runArgs))
		return nil
	}

	result := rc.executor.Execute(ctx, runArgs)
	if result.Error != nil {
		return fmt.Errorf("run tests: %w", result.Error)
	}

	report := rc.report(affected, result)
	if err := rc.storage.Save(report); err != nil {
		return fmt.Errorf("failed to save run report: %w", err)
	}
	rc.formatter.PrintRunStats(report)

	if result.ExitCode != 0 {
		return &ExitError{Code: result.ExitCode}
	}
	return nil
}

// firstArgs collects the suite and orders affected node ids first. When
// nothing is affected or collection yields nothing the suite runs unchanged.
func (rc *RunCommand) firstArgs(ctx context.Context, affected domain.Affected, args []string) []string {
	if affected.Empty() {
		return args
	}

	spinner := ui.NewSpinner(os.Stderr, "Collecting tests...")
	ids, err := rc.collector.Collect(ctx, args)
	spinner.Finish()
	if err != nil {
		color.Yellow("Could not collect tests, running without reordering: %v", err)
		return args
	}
	if len(ids) == 0 {
		return args
	}

	ordered := execution.NewPriorityScheduler(affected).Schedule(ids)
	return append(rc.withoutPaths(args), ordered...)
}

// withoutPaths drops test path arguments, the collected node ids replace them
func (rc *RunCommand) withoutPaths(args []string) []string {
	kept := make([]string, 0, len(args))
	for i, arg := range args {
		if arg == "--" {
			kept = append(kept, args[i:]...)
			break
		}
		if !strings.HasPrefix(arg, "-") && rc.isTestPath(arg) {
			continue
		}
		kept = append(kept, arg)
	}
	return kept
}

func (rc *RunCommand) isTestPath(arg string) bool {
	if strings.Contains(arg, "::") {
		return true
	}
	p := arg
	if !filepath.IsAbs(p) {
		p = filepath.Join(rc.config.ProjectPath, p)
	}
	_, err := os.Stat(p)
	return err == nil
}

func (rc *RunCommand) report(affected domain.Affected, result domain.RunResult) domain.RunReport {
	counts := rc.parser.ParseTestCounts(result)
	meta := domain.RunMeta{
		Mode:            rc.config.Mode,
		Picked:          rc.config.Picked,
		ExitCode:        result.ExitCode,
		Passed:          counts.Passed,
		Failed:          counts.Failed,
		Skipped:         counts.Skipped,
		Errors:          counts.Errors,
		Duration:        result.Duration.String(),
		DurationSeconds: result.Duration.Seconds(),
		Timestamp:       time.Now().Format(time.RFC3339),
	}
	if rc.config.Mode == modes.Branch {
		meta.ParentBranch = rc.config.ParentBranch
	}
	return domain.RunReport{Meta: meta, Affected: affected}
}

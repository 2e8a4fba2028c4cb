package execution

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os/exec"
	"time"

	"github.com/omkarkhatavkar/pytest-picked/internal/config"
	"github.com/omkarkhatavkar/pytest-picked/internal/domain"
	"github.com/omkarkhatavkar/pytest-picked/internal/parser"
)

// Runner executes pytest in the project directory
type Runner struct {
	config *config.Config
	out    io.Writer
	parser *parser.PytestParser
}

var (
	_ Executor  = (*Runner)(nil)
	_ Collector = (*Runner)(nil)
)

// NewRunner creates a new Runner streaming run output to out
func NewRunner(cfg *config.Config, out io.Writer, pytestParser *parser.PytestParser) *Runner {
	return &Runner{config: cfg, out: out, parser: pytestParser}
}

// Command returns the full argv of a run with args
func (r *Runner) Command(args []string) []string {
	return append([]string{r.config.GetRunnerPath()}, args...)
}

// Execute runs pytest with args. Output is streamed and captured; a non-zero
// exit is reported through ExitCode, Error is only set when pytest could not start.
func (r *Runner) Execute(ctx context.Context, args []string) domain.RunResult {
	var captured bytes.Buffer
	w := io.MultiWriter(r.out, &captured)

	cmd := exec.CommandContext(ctx, r.config.GetRunnerPath(), args...)
	cmd.Dir = r.config.ProjectPath
	cmd.Stdout = w
	cmd.Stderr = w

	slog.Debug("running tests", "argv", cmd.Args, "dir", cmd.Dir)
	start := time.Now()
	err := cmd.Run()

	result := domain.RunResult{
		Args:     args,
		Success:  err == nil,
		Output:   captured.String(),
		Duration: time.Since(start),
	}
	result.ExitCode, result.Error = exitStatus(err)
	return result
}

// Collect runs `pytest --collect-only -q` with args and returns the node ids.
// An empty collection is not an error.
func (r *Runner) Collect(ctx context.Context, args []string) ([]string, error) {
	argv := append([]string{"--collect-only", "-q"}, args...)
	cmd := exec.CommandContext(ctx, r.config.GetRunnerPath(), argv...)
	cmd.Dir = r.config.ProjectPath

	slog.Debug("collecting tests", "argv", cmd.Args, "dir", cmd.Dir)
	output, err := cmd.Output()
	code, startErr := exitStatus(err)
	if startErr != nil {
		return nil, fmt.Errorf("collect tests: %w", startErr)
	}
	if code != 0 && code != parser.ExitNoTestsCollected {
		return nil, fmt.Errorf("collect tests: %s exited with code %d", r.config.GetRunnerPath(), code)
	}
	return r.parser.ParseCollected(string(output)), nil
}

func exitStatus(err error) (int, error) {
	if err == nil {
		return 0, nil
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode(), nil
	}
	return -1, err
}

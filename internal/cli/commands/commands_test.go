package commands

import (
	"bytes"
	"context"
	"testing"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/omkarkhatavkar/pytest-picked/internal/config"
	"github.com/omkarkhatavkar/pytest-picked/internal/domain"
	"github.com/omkarkhatavkar/pytest-picked/internal/parser"
	"github.com/omkarkhatavkar/pytest-picked/internal/storage"
	"github.com/omkarkhatavkar/pytest-picked/internal/ui"
)

type fakeCommander struct {
	output string
	argv   [][]string
}

func (f *fakeCommander) Run(_ context.Context, argv []string) ([]byte, error) {
	f.argv = append(f.argv, argv)
	return []byte(f.output), nil
}

type fakeExecutor struct {
	result domain.RunResult
	args   []string
	calls  int
}

func (f *fakeExecutor) Command(args []string) []string {
	return append([]string{"pytest"}, args...)
}

func (f *fakeExecutor) Execute(_ context.Context, args []string) domain.RunResult {
	f.calls++
	f.args = args
	result := f.result
	result.Args = args
	return result
}

type fakeCollector struct {
	ids   []string
	err   error
	args  []string
	calls int
}

func (f *fakeCollector) Collect(_ context.Context, args []string) ([]string, error) {
	f.calls++
	f.args = args
	return f.ids, f.err
}

// harness wires commands to fakes over a temporary project
type harness struct {
	cfg       *config.Config
	git       *fakeCommander
	executor  *fakeExecutor
	collector *fakeCollector
	storage   *storage.JSONStorage
	out       *bytes.Buffer
	run       *RunCommand
	list      *ListCommand
	last      *LastCommand
}

func newHarness(t *testing.T, gitOutput string) *harness {
	t.Helper()
	noColor := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = noColor })

	cfg := config.New()
	cfg.ProjectPath = t.TempDir()

	h := &harness{
		cfg:       cfg,
		git:       &fakeCommander{output: gitOutput},
		executor:  &fakeExecutor{result: domain.RunResult{Success: true, Output: "== 2 passed in 0.10s =="}},
		collector: &fakeCollector{},
		storage:   storage.NewJSONStorage(cfg),
		out:       &bytes.Buffer{},
	}
	selector := NewSelector(cfg, h.git)
	formatter := ui.NewFormatter(cfg, h.out)
	h.run = NewRunCommand(cfg, selector, h.executor, h.collector, parser.NewPytestParser(), h.storage, formatter)
	h.list = NewListCommand(cfg, selector, formatter)
	h.last = NewLastCommand(cfg, h.storage, formatter)
	return h
}

func testCommand() *cobra.Command {
	return &cobra.Command{}
}

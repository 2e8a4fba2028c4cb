// Package modes implements the change-detection strategies that turn git
// output into the set of affected tests.
//
// Each mode runs one git command, parses its output line by line and
// classifies the resulting paths with the pytest naming conventions.
// Any git failure is treated as empty output.
package modes

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/omkarkhatavkar/pytest-picked/internal/discovery"
	"github.com/omkarkhatavkar/pytest-picked/internal/domain"
	"github.com/omkarkhatavkar/pytest-picked/internal/gitcmd"
)

// Mode names accepted by New.
const (
	Unstaged    = "unstaged"
	Branch      = "branch"
	OnlyChanged = "onlychanged"
)

// DefaultParentBranch is the branch diffed against by the branch mode.
const DefaultParentBranch = "master"

// Names lists the valid mode names in display order.
var Names = []string{Unstaged, Branch, OnlyChanged}

// ErrInvalidMode is matched by every InvalidModeError.
var ErrInvalidMode = errors.New("invalid mode")

// InvalidModeError reports an unknown mode selector.
type InvalidModeError struct {
	Mode  string
	Valid []string
}

func (e *InvalidModeError) Error() string {
	return fmt.Sprintf("invalid mode %q. Options: `%s`", e.Mode, strings.Join(e.Valid, ", "))
}

// Is makes errors.Is(err, ErrInvalidMode) succeed.
func (e *InvalidModeError) Is(target error) bool {
	return target == ErrInvalidMode
}

// Strategy is implemented by every change-detection mode.
type Strategy interface {
	// Name returns the selector the strategy is registered under.
	Name() string
	// Command returns the git argv the strategy runs.
	Command() []string
	// Parse extracts the useful part of one output line, "" to ignore it.
	Parse(line string) string
	// Collect classifies captured git output into affected tests.
	Collect(output string) domain.Affected
	// AffectedTests runs the git command and collects its output.
	AffectedTests(ctx context.Context) domain.Affected
}

// Options configures the strategies.
type Options struct {
	Conventions  domain.Conventions
	ParentBranch string           // Base branch for the branch mode
	GitPath      string           // git binary, "git" when empty
	Commander    gitcmd.Commander // Command execution, os/exec when nil
}

// New returns the strategy registered under name.
func New(name string, opts Options) (Strategy, error) {
	base := newMode(opts)
	switch name {
	case Unstaged:
		return &UnstagedMode{mode: base}, nil
	case Branch:
		return &BranchMode{mode: base, parentBranch: opts.ParentBranch}, nil
	case OnlyChanged:
		return &OnlyChangedMode{mode: base, onlyModifiedTests: true}, nil
	default:
		return nil, &InvalidModeError{Mode: name, Valid: Names}
	}
}

// mode holds what all strategies share.
type mode struct {
	filter    *discovery.Filter
	gitPath   string
	commander gitcmd.Commander
}

func newMode(opts Options) mode {
	gitPath := opts.GitPath
	if gitPath == "" {
		gitPath = "git"
	}
	commander := opts.Commander
	if commander == nil {
		commander = gitcmd.NewExecCommander("")
	}
	return mode{
		filter:    discovery.NewFilter(opts.Conventions),
		gitPath:   gitPath,
		commander: commander,
	}
}

// gitOutput runs argv and returns its stdout as text, "" on any failure.
func (m mode) gitOutput(ctx context.Context, argv []string) string {
	slog.Debug("running git", "argv", argv)
	out, err := m.commander.Run(ctx, argv)
	if err != nil {
		slog.Debug("git command failed, treating output as empty", "argv", argv, "error", err)
		return ""
	}
	return string(out)
}

// classify splits parsed paths into test files and folders, dropping the rest.
func (m mode) classify(output string, parse func(string) string) domain.Affected {
	var affected domain.Affected
	for _, line := range splitLines(output) {
		p := parse(line)
		if p == "" {
			continue
		}
		switch {
		case discovery.IsFolder(p):
			affected.Folders = append(affected.Folders, p)
		case m.filter.IsTestFile(p):
			affected.Files = append(affected.Files, p)
		}
	}
	return affected
}

func splitLines(output string) []string {
	output = strings.ReplaceAll(output, "\r\n", "\n")
	return strings.Split(output, "\n")
}

// hasDeleteCode reports whether a git status code marks a deletion.
func hasDeleteCode(code string) bool {
	return strings.ContainsRune(code, 'D')
}

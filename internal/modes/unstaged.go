package modes

import (
	"context"
	"strconv"
	"strings"

	"github.com/omkarkhatavkar/pytest-picked/internal/domain"
)

// UnstagedMode selects tests from the working tree status.
//
//	 M tests/test_api.py
//	R  tests/old.py -> tests/test_new.py
//	?? tests/integration/
type UnstagedMode struct {
	mode
}

// Name returns "unstaged"
func (u *UnstagedMode) Name() string {
	return Unstaged
}

// Command returns git status --short
func (u *UnstagedMode) Command() []string {
	return []string{u.gitPath, "status", "--short"}
}

// Parse returns the path of a status line, the new path for renames,
// and "" for deletions and lines without a path.
func (u *UnstagedMode) Parse(line string) string {
	fields := strings.Fields(line)
	if len(fields) < 2 {
		return ""
	}
	code := fields[0]
	if hasDeleteCode(code) {
		return ""
	}

	rest := strings.TrimLeft(line, " \t")
	rest = strings.TrimSpace(rest[len(code):])
	if i := strings.LastIndex(rest, " -> "); i >= 0 {
		rest = rest[i+len(" -> "):]
	}
	return unquotePath(rest)
}

// Collect classifies git status output
func (u *UnstagedMode) Collect(output string) domain.Affected {
	return u.classify(output, u.Parse)
}

// AffectedTests runs git status and collects its output
func (u *UnstagedMode) AffectedTests(ctx context.Context) domain.Affected {
	return u.Collect(u.gitOutput(ctx, u.Command()))
}

// unquotePath undoes git's C-style quoting of unusual paths.
func unquotePath(p string) string {
	if len(p) >= 2 && strings.HasPrefix(p, `"`) && strings.HasSuffix(p, `"`) {
		if unquoted, err := strconv.Unquote(p); err == nil {
			return unquoted
		}
		return p[1 : len(p)-1]
	}
	return p
}

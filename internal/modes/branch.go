package modes

import (
	"context"
	"strings"

	"github.com/omkarkhatavkar/pytest-picked/internal/domain"
)

// BranchMode selects tests changed relative to a parent branch.
//
//	M	tests/test_api.py
//	R098	tests/test_old.py	tests/test_new.py
type BranchMode struct {
	mode
	parentBranch string
}

// Name returns "branch"
func (b *BranchMode) Name() string {
	return Branch
}

// ParentBranch returns the branch the diff is taken against
func (b *BranchMode) ParentBranch() string {
	if b.parentBranch == "" {
		return DefaultParentBranch
	}
	return b.parentBranch
}

// Command returns git diff --name-status --relative <branch>
func (b *BranchMode) Command() []string {
	return []string{b.gitPath, "diff", "--name-status", "--relative", b.ParentBranch()}
}

// Parse returns the final path of a name-status line, "" for deletions.
func (b *BranchMode) Parse(line string) string {
	var fields []string
	if strings.Contains(line, "\t") {
		for _, f := range strings.Split(line, "\t") {
			if f = strings.TrimSpace(f); f != "" {
				fields = append(fields, f)
			}
		}
	} else {
		fields = strings.Fields(line)
	}
	if len(fields) < 2 {
		return ""
	}
	if hasDeleteCode(fields[0]) {
		return ""
	}
	return unquotePath(fields[len(fields)-1])
}

// Collect classifies git diff --name-status output
func (b *BranchMode) Collect(output string) domain.Affected {
	return b.classify(output, b.Parse)
}

// AffectedTests runs the branch diff and collects its output
func (b *BranchMode) AffectedTests(ctx context.Context) domain.Affected {
	return b.Collect(b.gitOutput(ctx, b.Command()))
}

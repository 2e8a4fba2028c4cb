package commands

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/omkarkhatavkar/pytest-picked/internal/config"
	"github.com/omkarkhatavkar/pytest-picked/internal/discovery"
	"github.com/omkarkhatavkar/pytest-picked/internal/domain"
	"github.com/omkarkhatavkar/pytest-picked/internal/gitcmd"
	"github.com/omkarkhatavkar/pytest-picked/internal/modes"
)

// Selector resolves the affected tests of the configured mode
type Selector struct {
	config    *config.Config
	commander gitcmd.Commander
}

// NewSelector creates a Selector. A nil commander runs git in the project path.
func NewSelector(cfg *config.Config, commander gitcmd.Commander) *Selector {
	return &Selector{config: cfg, commander: commander}
}

// Select runs the configured mode and applies the name filter
func (s *Selector) Select(ctx context.Context) (domain.Affected, error) {
	commander := s.commander
	if commander == nil {
		commander = gitcmd.NewExecCommander(s.config.ProjectPath)
	}

	strategy, err := modes.New(s.config.Mode, modes.Options{
		Conventions:  s.config.Conventions,
		ParentBranch: s.config.ParentBranch,
		GitPath:      s.config.GitPath,
		Commander:    commander,
	})
	if err != nil {
		return domain.Affected{}, err
	}

	affected := s.withoutOutputDir(strategy.AffectedTests(ctx))
	filter := discovery.NewFilter(s.config.Conventions)
	return filter.FilterAffected(affected, s.config.Flags.NameFilter), nil
}

// withoutOutputDir drops the report directory picked writes itself
func (s *Selector) withoutOutputDir(affected domain.Affected) domain.Affected {
	dir := strings.Trim(filepath.ToSlash(s.config.OutputJSONDir), "/")
	if dir == "" || dir == "." {
		return affected
	}
	keep := func(paths []string) []string {
		var kept []string
		for _, p := range paths {
			clean := strings.TrimPrefix(p, "./")
			if clean == dir || strings.HasPrefix(clean, dir+"/") {
				continue
			}
			kept = append(kept, p)
		}
		return kept
	}
	affected.Files = keep(affected.Files)
	affected.Folders = keep(affected.Folders)
	return affected
}

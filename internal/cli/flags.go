package cli

import "github.com/omkarkhatavkar/pytest-picked/internal/config"

// Flags holds command-line flags
type Flags struct {
	ProjectPath   string
	Mode          string
	ParentBranch  string
	Picked        string
	NameFilter    string
	RunnerPath    string
	GitPath       string
	DryRun        bool
	TestCases     bool
	ExpandFolders bool
	Verbose       bool
}

// ToConfigFlags converts CLI flags to config flags
func (f *Flags) ToConfigFlags() config.Flags {
	return config.Flags{
		ProjectPath:   f.ProjectPath,
		Mode:          f.Mode,
		ParentBranch:  f.ParentBranch,
		Picked:        f.Picked,
		NameFilter:    f.NameFilter,
		RunnerPath:    f.RunnerPath,
		GitPath:       f.GitPath,
		DryRun:        f.DryRun,
		TestCases:     f.TestCases,
		ExpandFolders: f.ExpandFolders,
		Verbose:       f.Verbose,
	}
}

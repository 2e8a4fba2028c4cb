package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"

	"github.com/omkarkhatavkar/pytest-picked/internal/domain"
)

// Config holds all configuration for the application
type Config struct {
	// Project settings
	ProjectPath string

	// Selection settings
	Mode         string
	ParentBranch string
	Picked       string
	Conventions  domain.Conventions
	// ConventionsSource is the pytest config file the conventions came from, "" for defaults
	ConventionsSource string

	// External binaries
	RunnerPath string
	GitPath    string

	// Output settings
	OutputJSONFile string
	OutputJSONDir  string

	// Paths to ignore when expanding folders
	PathsToIgnore []string

	// Command flags
	Flags Flags
}

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

// New creates a new Config with defaults
func New() *Config {
	cfg := &Config{
		ProjectPath:    DefaultProjectPath,
		Mode:           DefaultMode,
		ParentBranch:   DefaultParentBranch,
		Picked:         DefaultPicked,
		RunnerPath:     DefaultRunner,
		GitPath:        DefaultGit,
		OutputJSONFile: DefaultOutputJSONFile,
		OutputJSONDir:  DefaultOutputJSONDir,
		Conventions: domain.Conventions{
			Files:     append([]string(nil), DefaultFileConventions...),
			Classes:   append([]string(nil), DefaultClassConventions...),
			Functions: append([]string(nil), DefaultFunctionConventions...),
		},
	}
	// Copy default paths to ignore
	cfg.PathsToIgnore = make([]string, len(DefaultPathsToIgnore))
	copy(cfg.PathsToIgnore, DefaultPathsToIgnore)
	return cfg
}

// Load creates a config and applies, in order: the project .env file and
// PICKED_* environment, the pytest naming conventions of the project, and flags.
func Load(flags Flags) (*Config, error) {
	cfg := New()
	cfg.Flags = flags
	if flags.ProjectPath != "" {
		cfg.ProjectPath = flags.ProjectPath
	}

	// .env file might not exist, that's okay - use environment variables
	_ = godotenv.Load(filepath.Join(cfg.ProjectPath, ".env"))
	cfg.applyEnv()

	conventions, source, err := LoadConventions(cfg.ProjectPath)
	if err != nil {
		return nil, err
	}
	cfg.mergeConventions(conventions)
	cfg.ConventionsSource = source

	cfg.applyFlags(flags)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv("PICKED_MODE"); v != "" {
		c.Mode = v
	}
	if v := os.Getenv("PICKED_PARENT_BRANCH"); v != "" {
		c.ParentBranch = v
	}
	if v := os.Getenv("PICKED_TYPE"); v != "" {
		c.Picked = v
	}
	if v := os.Getenv("PICKED_RUNNER"); v != "" {
		c.RunnerPath = v
	}
	if v := os.Getenv("PICKED_GIT"); v != "" {
		c.GitPath = v
	}
}

// mergeConventions replaces only the convention lists the project configures
func (c *Config) mergeConventions(conventions domain.Conventions) {
	if len(conventions.Files) > 0 {
		c.Conventions.Files = conventions.Files
	}
	if len(conventions.Classes) > 0 {
		c.Conventions.Classes = conventions.Classes
	}
	if len(conventions.Functions) > 0 {
		c.Conventions.Functions = conventions.Functions
	}
}

func (c *Config) applyFlags(flags Flags) {
	if flags.Mode != "" {
		c.Mode = flags.Mode
	}
	if flags.ParentBranch != "" {
		c.ParentBranch = flags.ParentBranch
	}
	if flags.Picked != "" {
		c.Picked = flags.Picked
	}
	if flags.RunnerPath != "" {
		c.RunnerPath = flags.RunnerPath
	}
	if flags.GitPath != "" {
		c.GitPath = flags.GitPath
	}
}

// Validate checks values that are not validated by the mode registry
func (c *Config) Validate() error {
	for _, p := range PickedTypes {
		if c.Picked == p {
			return nil
		}
	}
	return fmt.Errorf("invalid picked type %q. Options: `%s`", c.Picked, strings.Join(PickedTypes, ", "))
}

// GetOutputPath returns the full path to the output JSON file.
// Resolves to an absolute path so run and last always read/write the same file regardless of cwd.
func (c *Config) GetOutputPath() string {
	p := filepath.Join(c.ProjectPath, c.OutputJSONDir, c.OutputJSONFile)
	if abs, err := filepath.Abs(p); err == nil {
		return abs
	}
	return p
}

// GetRunnerPath returns the test runner binary; a relative path containing a
// separator is resolved against the project path
func (c *Config) GetRunnerPath() string {
	if filepath.IsAbs(c.RunnerPath) || !strings.ContainsRune(c.RunnerPath, filepath.Separator) {
		return c.RunnerPath
	}
	return filepath.Join(c.ProjectPath, c.RunnerPath)
}

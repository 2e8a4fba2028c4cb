package config

const (
	// DefaultProjectPath is the default project path
	DefaultProjectPath = "."
	// DefaultMode is the default change-detection mode
	DefaultMode = "unstaged"
	// DefaultParentBranch is the branch the branch mode diffs against
	DefaultParentBranch = "master"
	// DefaultPicked runs only the affected tests
	DefaultPicked = "only"
	// DefaultRunner is the default test runner binary
	DefaultRunner = "pytest"
	// DefaultGit is the default git binary
	DefaultGit = "git"
	// DefaultOutputJSONFile is the default output JSON file name
	DefaultOutputJSONFile = "last-run.json"
	// DefaultOutputJSONDir is the default output directory
	DefaultOutputJSONDir = ".picked"
)

// Picked types
const (
	PickedOnly  = "only"
	PickedFirst = "first"
)

// PickedTypes lists the valid --picked values
var PickedTypes = []string{PickedOnly, PickedFirst}

// Default pytest naming conventions (python_files, python_classes, python_functions)
var (
	DefaultFileConventions     = []string{"test_*.py", "*_test.py"}
	DefaultClassConventions    = []string{"Test"}
	DefaultFunctionConventions = []string{"test"}
)

// DefaultPathsToIgnore are the directories skipped when expanding folders into test files
var DefaultPathsToIgnore = []string{
	"__pycache__",
	"node_modules",
	"venv",
	"build",
	"dist",
	"site-packages",
}

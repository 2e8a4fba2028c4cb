package domain

// Conventions holds the pytest naming conventions used to recognise tests
type Conventions struct {
	Files     []string `json:"files"`     // python_files globs, e.g. "test_*.py"
	Classes   []string `json:"classes"`   // python_classes prefixes or globs
	Functions []string `json:"functions"` // python_functions prefixes or globs
}

// TestCase represents a single test case found inside a test file
type TestCase struct {
	Name     string // Function name
	Class    string // Enclosing class, empty for module-level functions
	FilePath string // Path to the test file containing this case
}

// ID returns the pytest node id of the test case
func (tc TestCase) ID() string {
	if tc.Class == "" {
		return tc.FilePath + "::" + tc.Name
	}
	return tc.FilePath + "::" + tc.Class + "::" + tc.Name
}

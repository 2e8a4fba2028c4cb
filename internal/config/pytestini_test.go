package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/omkarkhatavkar/pytest-picked/internal/domain"
)

func TestLoadConventions(t *testing.T) {
	tests := []struct {
		name     string
		files    map[string]string
		expected domain.Conventions
		source   string
	}{
		{
			name:   "no config files",
			files:  map[string]string{},
			source: "",
		},
		{
			name: "pytest.ini multi-line values",
			files: map[string]string{
				"pytest.ini": "[pytest]\npython_files =\n    test_*.py\n    check_*.py\npython_classes = Test Check\npython_functions = test check_*\n",
			},
			expected: domain.Conventions{
				Files:     []string{"test_*.py", "check_*.py"},
				Classes:   []string{"Test", "Check"},
				Functions: []string{"test", "check_*"},
			},
			source: "pytest.ini",
		},
		{
			name: "pytest.ini wins even without a section",
			files: map[string]string{
				"pytest.ini": "# empty\n",
				"tox.ini":    "[pytest]\npython_files = tox_*.py\n",
			},
			source: "pytest.ini",
		},
		{
			name: "pyproject array",
			files: map[string]string{
				"pyproject.toml": "[tool.pytest.ini_options]\npython_files = [\"spec_*.py\"]\npython_classes = \"Describe\"\n",
				"setup.cfg":      "[tool:pytest]\npython_files = cfg_*.py\n",
			},
			expected: domain.Conventions{
				Files:   []string{"spec_*.py"},
				Classes: []string{"Describe"},
			},
			source: "pyproject.toml",
		},
		{
			name: "pyproject without pytest table is skipped",
			files: map[string]string{
				"pyproject.toml": "[tool.black]\nline-length = 100\n",
				"tox.ini":        "[pytest]\npython_functions = should_\n",
			},
			expected: domain.Conventions{Functions: []string{"should_"}},
			source:   "tox.ini",
		},
		{
			name: "tox.ini without pytest section is skipped",
			files: map[string]string{
				"tox.ini":   "[tox]\nenvlist = py312\n",
				"setup.cfg": "[tool:pytest]\npython_files = cfg_*.py\n",
			},
			expected: domain.Conventions{Files: []string{"cfg_*.py"}},
			source:   "setup.cfg",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			for name, content := range tt.files {
				writeFile(t, dir, name, content)
			}

			conventions, source, err := LoadConventions(dir)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, conventions)
			if tt.source == "" {
				assert.Empty(t, source)
			} else {
				assert.Equal(t, filepath.Join(dir, tt.source), source)
			}
		})
	}
}

func TestLoadConventions_MalformedPyproject(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "pyproject.toml", "[tool.pytest.ini_options\n")

	_, _, err := LoadConventions(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "pyproject.toml")
}

package ui

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/omkarkhatavkar/pytest-picked/internal/config"
	"github.com/omkarkhatavkar/pytest-picked/internal/domain"
)

func newFormatter(t *testing.T) (*Formatter, *bytes.Buffer, *config.Config) {
	t.Helper()
	noColor := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = noColor })

	cfg := config.New()
	cfg.ProjectPath = t.TempDir()
	var out bytes.Buffer
	return NewFormatter(cfg, &out), &out, cfg
}

func writeTestFile(t *testing.T, root, rel, content string) {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestFormatter_PrintAffected(t *testing.T) {
	f, out, _ := newFormatter(t)

	f.PrintAffected(domain.Affected{
		Files:   []string{"test_flows.py", "test_serializers.py"},
		Folders: []string{"tests/"},
	})

	assert.Equal(t, "\n"+
		"Changed test files... 2. ['test_flows.py', 'test_serializers.py']\n"+
		"Changed test folders... 1. ['tests/']\n", out.String())
}

func TestFormatter_PrintAffectedEmptyAndTests(t *testing.T) {
	f, out, _ := newFormatter(t)

	f.PrintAffected(domain.Affected{})
	assert.Contains(t, out.String(), "Changed test files... 0. []")
	assert.NotContains(t, out.String(), "Changed tests...")

	out.Reset()
	f.PrintAffected(domain.Affected{Tests: []string{"tests/test_a.py::TestA"}})
	assert.Contains(t, out.String(), "Changed tests... 1. ['tests/test_a.py::TestA']")
}

func TestFormatter_PrintTestList(t *testing.T) {
	f, out, cfg := newFormatter(t)
	writeTestFile(t, cfg.ProjectPath, "tests/test_api.py", "class TestUsers:\n    def test_create(self):\n        pass\n\ndef test_get():\n    pass\n")
	writeTestFile(t, cfg.ProjectPath, "api/test_views.py", "def test_index():\n    pass\n")
	writeTestFile(t, cfg.ProjectPath, "api/helpers.py", "def test_not_collected():\n    pass\n")

	require.NoError(t, f.PrintTestList(domain.Affected{
		Files:   []string{"tests/test_api.py"},
		Folders: []string{"api/"},
	}, true, true))

	assert.Equal(t, "Found 2 affected test path(s):\n\n"+
		"├── tests/test_api.py\n"+
		"│   ├── TestUsers::test_create\n"+
		"│   └── test_get\n"+
		"└── api/\n"+
		"    └── api/test_views.py\n"+
		"        └── test_index\n", out.String())
}

func TestFormatter_PrintTestListPlain(t *testing.T) {
	f, out, _ := newFormatter(t)

	require.NoError(t, f.PrintTestList(domain.Affected{
		Files: []string{"tests/test_missing.py"},
		Tests: []string{"tests/test_a.py::test_b"},
	}, false, false))

	assert.Equal(t, "Found 2 affected test path(s):\n\n"+
		"├── tests/test_missing.py\n"+
		"└── tests/test_a.py::test_b\n", out.String())
}

func TestFormatter_PrintTestListMissingFolder(t *testing.T) {
	f, out, _ := newFormatter(t)

	err := f.PrintTestList(domain.Affected{Folders: []string{"gone/"}}, false, true)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "expand folder gone/")
	assert.Empty(t, out.String())
}

func TestFormatter_PrintTestListMissingFile(t *testing.T) {
	f, out, _ := newFormatter(t)

	require.NoError(t, f.PrintTestList(domain.Affected{Files: []string{"tests/test_missing.py"}}, true, false))

	assert.Contains(t, out.String(), "error reading test file")
}

func TestFormatter_PrintRunStats(t *testing.T) {
	f, out, _ := newFormatter(t)

	f.PrintRunStats(domain.RunReport{
		Meta: domain.RunMeta{
			Mode:            "unstaged",
			Picked:          "only",
			ExitCode:        1,
			Passed:          3,
			Failed:          1,
			DurationSeconds: 0.5,
			Timestamp:       "2026-01-02T03:04:05Z",
		},
		Affected: domain.Affected{Files: []string{"tests/test_a.py"}},
	})

	s := out.String()
	assert.Contains(t, s, "Picked Run Statistics")
	assert.Contains(t, s, "│ Mode                            │ unstaged")
	assert.Contains(t, s, "0.50s")
	assert.NotContains(t, s, "Parent Branch")
	assert.Contains(t, s, "✗ 1 test(s) failed, 0 error(s)")
}

func TestFormatter_PrintCommand(t *testing.T) {
	f, out, _ := newFormatter(t)

	f.PrintCommand([]string{"pytest", "-k", "a and b", "tests/test_a.py"})

	assert.Equal(t, "Would run: pytest -k \"a and b\" tests/test_a.py\n", out.String())
}

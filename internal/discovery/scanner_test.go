package discovery

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/omkarkhatavkar/pytest-picked/internal/domain"
)

func writeProject(t *testing.T, files []string) string {
	t.Helper()
	root := t.TempDir()
	for _, file := range files {
		fullPath := filepath.Join(root, filepath.FromSlash(file))
		if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
			t.Fatalf("failed to create dir for %s: %v", file, err)
		}
		if err := os.WriteFile(fullPath, []byte("test"), 0644); err != nil {
			t.Fatalf("failed to create file %s: %v", file, err)
		}
	}
	return root
}

func TestScanner_Scan(t *testing.T) {
	root := writeProject(t, []string{
		"tests/unit/test_user.py",
		"tests/unit/test_payment.py",
		"tests/integration/order_test.py",
		"tests/unit/conftest.py",
		"tests/__pycache__/test_user.cpython-312.pyc",
		"tests/.hidden/test_secret.py",
		".venv/lib/test_site.py",
		"node_modules/some/test_file.py",
		"not_a_test.py",
	})
	scanner := NewScanner(NewFilter(pytestConventions()), root, []string{"node_modules", "__pycache__"})

	tests := []struct {
		name     string
		folder   string
		expected []string
	}{
		{
			name:   "project root",
			folder: ".",
			expected: []string{
				"tests/integration/order_test.py",
				"tests/unit/test_payment.py",
				"tests/unit/test_user.py",
			},
		},
		{
			name:     "git folder with trailing slash",
			folder:   "tests/unit/",
			expected: []string{"tests/unit/test_payment.py", "tests/unit/test_user.py"},
		},
		{
			name:     "dot slash prefix",
			folder:   "./tests/integration",
			expected: []string{"tests/integration/order_test.py"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			results, err := scanner.Scan(tt.folder)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(results) != len(tt.expected) {
				t.Fatalf("expected %v, got %v", tt.expected, results)
			}
			for i := range results {
				if results[i] != tt.expected[i] {
					t.Errorf("expected %v, got %v", tt.expected, results)
				}
			}
		})
	}

	t.Run("returns error for non-existent directory", func(t *testing.T) {
		if _, err := scanner.Scan("missing/"); err == nil {
			t.Error("expected error for non-existent directory")
		}
	})

	t.Run("returns error for file instead of directory", func(t *testing.T) {
		if _, err := scanner.Scan("not_a_test.py"); err == nil {
			t.Error("expected error for file path")
		}
	})

	t.Run("returns error outside the project", func(t *testing.T) {
		if _, err := scanner.Scan("../elsewhere"); err == nil {
			t.Error("expected error for a path outside the project")
		}
	})
}

func TestScanner_PathConventionsAreProjectRelative(t *testing.T) {
	root := writeProject(t, []string{
		"tests/api/test_users.py",
		"tests/test_root.py",
	})
	filter := NewFilter(domain.Conventions{Files: []string{"tests/api/test_*.py"}})
	scanner := NewScanner(filter, root, nil)

	results, err := scanner.Scan("tests/")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 1 || results[0] != "tests/api/test_users.py" {
		t.Errorf("expected [tests/api/test_users.py], got %v", results)
	}
}

package discovery

import (
	"path"
	"strings"

	"github.com/bmatcuk/doublestar"

	"github.com/omkarkhatavkar/pytest-picked/internal/domain"
)

// Filter classifies paths and names against the pytest naming conventions
type Filter struct {
	conventions domain.Conventions
}

// NewFilter creates a new Filter for the given conventions
func NewFilter(conventions domain.Conventions) *Filter {
	return &Filter{conventions: conventions}
}

// Conventions returns the conventions the filter matches against
func (f *Filter) Conventions() domain.Conventions {
	return f.conventions
}

// IsFolder reports whether git reported the path as a directory
func IsFolder(p string) bool {
	return strings.HasSuffix(p, "/")
}

// IsTestFile reports whether the path names a test module.
// Patterns are matched against the basename unless they contain a slash.
func (f *Filter) IsTestFile(p string) bool {
	p = strings.ReplaceAll(p, "\\", "/")
	base := path.Base(p)
	for _, pattern := range f.conventions.Files {
		name := base
		if strings.Contains(pattern, "/") {
			name = p
		}
		if matched, err := doublestar.Match(pattern, name); err == nil && matched {
			return true
		}
	}
	return false
}

// IsTestClass reports whether a class name is collected as a test class
func (f *Filter) IsTestClass(name string) bool {
	return matchesPrefixOrGlob(name, f.conventions.Classes)
}

// IsTestFunction reports whether a function name is collected as a test
func (f *Filter) IsTestFunction(name string) bool {
	return matchesPrefixOrGlob(name, f.conventions.Functions)
}

// matchesPrefixOrGlob follows pytest: a pattern is a name prefix, or a glob
// when it contains a wildcard character.
func matchesPrefixOrGlob(name string, patterns []string) bool {
	if name == "" {
		return false
	}
	for _, pattern := range patterns {
		if strings.HasPrefix(name, pattern) {
			return true
		}
		if strings.ContainsAny(pattern, "*?[") {
			if matched, err := doublestar.Match(pattern, name); err == nil && matched {
				return true
			}
		}
	}
	return false
}

// FilterByName filters test paths by name pattern using wildcard matching
// Supports patterns like "test_user*" or "*payment*"
func (f *Filter) FilterByName(tests []string, pattern string) []string {
	if pattern == "" {
		return tests
	}

	var filtered []string

	for _, test := range tests {
		// Identifiers carry a "::Name" suffix, match on the file part
		filePart, _, _ := strings.Cut(test, "::")
		testName := path.Base(strings.TrimSuffix(filePart, "/"))

		if matched, err := doublestar.Match(pattern, testName); err == nil && matched {
			filtered = append(filtered, test)
			continue
		}

		if strings.Contains(pattern, "*") {
			if containsAllParts(testName, strings.Split(pattern, "*")) {
				filtered = append(filtered, test)
			}
			continue
		}

		// If no wildcards, do a simple contains check
		if !strings.Contains(pattern, "?") && strings.Contains(testName, pattern) {
			filtered = append(filtered, test)
		}
	}

	return filtered
}

// FilterAffected applies FilterByName to every list of an affected set
func (f *Filter) FilterAffected(affected domain.Affected, pattern string) domain.Affected {
	if pattern == "" {
		return affected
	}
	return domain.Affected{
		Files:   f.FilterByName(affected.Files, pattern),
		Folders: f.FilterByName(affected.Folders, pattern),
		Tests:   f.FilterByName(affected.Tests, pattern),
	}
}

// containsAllParts reports whether every non-empty part occurs in name
// and at least one part is non-empty.
func containsAllParts(name string, parts []string) bool {
	nonEmpty := false
	for _, part := range parts {
		if part == "" {
			continue
		}
		nonEmpty = true
		if !strings.Contains(name, part) {
			return false
		}
	}
	return nonEmpty
}

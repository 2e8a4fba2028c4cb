package discovery

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"strings"
)

// Scanner expands project folders into the test files they contain
type Scanner struct {
	filter   *Filter
	project  fs.FS
	skipDirs map[string]bool
}

// NewScanner creates a Scanner over projectPath skipping the named directories
func NewScanner(filter *Filter, projectPath string, skipDirs []string) *Scanner {
	skip := make(map[string]bool, len(skipDirs))
	for _, dir := range skipDirs {
		skip[dir] = true
	}
	return &Scanner{filter: filter, project: os.DirFS(projectPath), skipDirs: skip}
}

// Scan returns the test files under folder, a slash path relative to the
// project as git reports it. Results are project relative, in lexical order,
// and matched against the file conventions in that form.
func (s *Scanner) Scan(folder string) ([]string, error) {
	root := path.Clean(strings.TrimPrefix(folder, "./"))
	if !fs.ValidPath(root) {
		return nil, fmt.Errorf("folder is outside the project: %s", folder)
	}

	info, err := fs.Stat(s.project, root)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return nil, fmt.Errorf("folder does not exist: %s", folder)
	case err != nil:
		return nil, fmt.Errorf("stat %s: %w", folder, err)
	case !info.IsDir():
		return nil, fmt.Errorf("not a directory: %s", folder)
	}

	var files []string
	err = fs.WalkDir(s.project, root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if p != root && (strings.HasPrefix(d.Name(), ".") || s.skipDirs[d.Name()]) {
				return fs.SkipDir
			}
			return nil
		}
		if s.filter.IsTestFile(p) {
			files = append(files, p)
		}
		return nil
	})
	return files, err
}

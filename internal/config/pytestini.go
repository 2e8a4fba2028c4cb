package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-ini/ini"
	"github.com/pelletier/go-toml/v2"

	"github.com/omkarkhatavkar/pytest-picked/internal/domain"
)

// pytest ini keys holding the naming conventions
const (
	keyPythonFiles     = "python_files"
	keyPythonClasses   = "python_classes"
	keyPythonFunctions = "python_functions"
)

// iniSource is an ini style pytest config file and the section pytest reads.
type iniSource struct {
	file    string
	section string
	// required means the file only counts when the section exists
	required bool
}

// LoadConventions reads the naming conventions from the first pytest config
// file found in projectPath, in pytest's order: pytest.ini, pyproject.toml,
// tox.ini, setup.cfg. It returns the path of that file, or "" when none
// configures pytest. Lists the file leaves unset stay empty.
func LoadConventions(projectPath string) (domain.Conventions, string, error) {
	pytestIni := iniSource{file: "pytest.ini", section: "pytest"}
	if conventions, ok, err := loadIni(projectPath, pytestIni); err != nil || ok {
		return conventions, sourcePath(projectPath, pytestIni.file, ok), err
	}

	if conventions, ok, err := loadPyproject(projectPath); err != nil || ok {
		return conventions, sourcePath(projectPath, "pyproject.toml", ok), err
	}

	for _, src := range []iniSource{
		{file: "tox.ini", section: "pytest", required: true},
		{file: "setup.cfg", section: "tool:pytest", required: true},
	} {
		if conventions, ok, err := loadIni(projectPath, src); err != nil || ok {
			return conventions, sourcePath(projectPath, src.file, ok), err
		}
	}

	return domain.Conventions{}, "", nil
}

func sourcePath(projectPath, file string, ok bool) string {
	if !ok {
		return ""
	}
	return filepath.Join(projectPath, file)
}

func loadIni(projectPath string, src iniSource) (domain.Conventions, bool, error) {
	path := filepath.Join(projectPath, src.file)
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return domain.Conventions{}, false, nil
		}
		return domain.Conventions{}, false, fmt.Errorf("stat %s: %w", path, err)
	}

	file, err := ini.LoadSources(ini.LoadOptions{
		AllowPythonMultilineValues: true,
		SkipUnrecognizableLines:    true,
	}, path)
	if err != nil {
		return domain.Conventions{}, false, fmt.Errorf("parse %s: %w", path, err)
	}

	section, err := file.GetSection(src.section)
	if err != nil {
		// pytest.ini is used even without a [pytest] section
		return domain.Conventions{}, !src.required, nil
	}

	read := func(key string) []string {
		if !section.HasKey(key) {
			return nil
		}
		return strings.Fields(section.Key(key).String())
	}
	return domain.Conventions{
		Files:     read(keyPythonFiles),
		Classes:   read(keyPythonClasses),
		Functions: read(keyPythonFunctions),
	}, true, nil
}

type pyproject struct {
	Tool struct {
		Pytest struct {
			IniOptions map[string]any `toml:"ini_options"`
		} `toml:"pytest"`
	} `toml:"tool"`
}

func loadPyproject(projectPath string) (domain.Conventions, bool, error) {
	path := filepath.Join(projectPath, "pyproject.toml")
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return domain.Conventions{}, false, nil
		}
		return domain.Conventions{}, false, fmt.Errorf("read %s: %w", path, err)
	}

	var doc pyproject
	if err := toml.Unmarshal(data, &doc); err != nil {
		return domain.Conventions{}, false, fmt.Errorf("parse %s: %w", path, err)
	}
	options := doc.Tool.Pytest.IniOptions
	if options == nil {
		return domain.Conventions{}, false, nil
	}

	return domain.Conventions{
		Files:     tomlList(options[keyPythonFiles]),
		Classes:   tomlList(options[keyPythonClasses]),
		Functions: tomlList(options[keyPythonFunctions]),
	}, true, nil
}

// tomlList accepts both `key = "a b"` and `key = ["a", "b"]`.
func tomlList(v any) []string {
	switch value := v.(type) {
	case string:
		return strings.Fields(value)
	case []any:
		var list []string
		for _, item := range value {
			if s, ok := item.(string); ok && s != "" {
				list = append(list, s)
			}
		}
		return list
	default:
		return nil
	}
}

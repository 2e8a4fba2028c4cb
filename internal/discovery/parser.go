package discovery

import (
	"bufio"
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/omkarkhatavkar/pytest-picked/internal/domain"
)

var (
	// class TestUser:  /  class TestUser(Base):
	classDefPattern = regexp.MustCompile(`^class\s+([A-Za-z_]\w*)`)
	// def test_x(  /  async def test_x(
	funcDefPattern = regexp.MustCompile(`^(?:async\s+)?def\s+([A-Za-z_]\w*)\s*\(`)
)

// ClassName returns the class defined by a source line, or "" if the
// line is not a class statement. Leading whitespace must be stripped first.
func ClassName(line string) string {
	if m := classDefPattern.FindStringSubmatch(line); m != nil {
		return m[1]
	}
	return ""
}

// FunctionName returns the function defined by a source line, or "".
// Leading whitespace must be stripped first.
func FunctionName(line string) string {
	if m := funcDefPattern.FindStringSubmatch(line); m != nil {
		return m[1]
	}
	return ""
}

// Parser parses python test files to extract test cases
type Parser struct {
	filter *Filter
}

// NewParser creates a new Parser
func NewParser(filter *Filter) *Parser {
	return &Parser{filter: filter}
}

// FindTestCases finds all test cases in a test file, in source order.
// Methods are only reported for classes matching the class conventions.
func (p *Parser) FindTestCases(filePath string) ([]domain.TestCase, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("error reading file %s: %w", filePath, err)
	}
	defer file.Close()

	var testCases []domain.TestCase
	var currentClass string
	inTestClass := false

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := scanner.Text()
		trimmed := strings.TrimLeft(line, " \t")
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}
		indented := len(trimmed) != len(line)

		if name := ClassName(trimmed); name != "" {
			if !indented {
				currentClass = name
				inTestClass = p.filter.IsTestClass(name)
			}
			continue
		}

		if name := FunctionName(trimmed); name != "" {
			if !indented {
				currentClass, inTestClass = "", false
			}
			if !p.filter.IsTestFunction(name) {
				continue
			}
			switch {
			case !indented:
				testCases = append(testCases, domain.TestCase{Name: name, FilePath: filePath})
			case inTestClass:
				testCases = append(testCases, domain.TestCase{Name: name, Class: currentClass, FilePath: filePath})
			}
			continue
		}

		// Any other top-level statement ends the class body
		if !indented && !strings.HasPrefix(trimmed, "@") && !strings.HasPrefix(trimmed, ")") {
			currentClass, inTestClass = "", false
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading file %s: %w", filePath, err)
	}

	return testCases, nil
}

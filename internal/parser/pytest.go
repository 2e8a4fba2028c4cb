package parser

import (
	"bufio"
	"regexp"
	"strconv"
	"strings"

	"github.com/omkarkhatavkar/pytest-picked/internal/domain"
)

// ExitNoTestsCollected is the pytest exit code for an empty collection
const ExitNoTestsCollected = 5

var (
	// "3 passed, 1 failed, 2 skipped in 0.12s", optionally framed by "="
	summaryLinePattern = regexp.MustCompile(`\b\d+ (?:passed|failed|skipped|errors?|xfailed|xpassed|deselected|warnings?)\b.* in [\d.]+s`)
	outcomePattern     = regexp.MustCompile(`\b(\d+) (passed|failed|skipped|errors?)\b`)
)

// PytestParser parses pytest output
type PytestParser struct{}

// NewPytestParser creates a new PytestParser
func NewPytestParser() *PytestParser {
	return &PytestParser{}
}

// ParseCollected returns the node ids printed by `pytest --collect-only -q`,
// in collection order.
func (p *PytestParser) ParseCollected(output string) []string {
	var ids []string
	scanner := bufio.NewScanner(strings.NewReader(output))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "=") || strings.HasPrefix(line, "-") {
			continue
		}
		// summary, warnings and errors never contain "::"
		if !strings.Contains(line, "::") {
			continue
		}
		ids = append(ids, line)
	}
	return ids
}

// ParseTestCounts extracts outcome counts from the last pytest summary line.
// Output without a summary yields zero counts.
func (p *PytestParser) ParseTestCounts(result domain.RunResult) Counts {
	lines := strings.Split(result.Output, "\n")
	for i := len(lines) - 1; i >= 0; i-- {
		line := lines[i]
		if !summaryLinePattern.MatchString(line) {
			continue
		}

		var counts Counts
		for _, match := range outcomePattern.FindAllStringSubmatch(line, -1) {
			n, err := strconv.Atoi(match[1])
			if err != nil {
				continue
			}
			switch match[2] {
			case "passed":
				counts.Passed += n
			case "failed":
				counts.Failed += n
			case "skipped":
				counts.Skipped += n
			default:
				counts.Errors += n
			}
		}
		return counts
	}
	return Counts{}
}

package parser

import "github.com/omkarkhatavkar/pytest-picked/internal/domain"

// Parser extracts structured data from test runner output
type Parser interface {
	ParseCollected(output string) []string
	ParseTestCounts(result domain.RunResult) Counts
}

// Counts holds the outcome totals of a run
type Counts struct {
	Passed  int
	Failed  int
	Skipped int
	Errors  int
}

// Total returns the number of tests that produced an outcome
func (c Counts) Total() int {
	return c.Passed + c.Failed + c.Skipped + c.Errors
}

package execution

import (
	"context"

	"github.com/omkarkhatavkar/pytest-picked/internal/domain"
)

// Executor invokes the test runner once with the given arguments
type Executor interface {
	// Command returns the argv Execute would run
	Command(args []string) []string
	Execute(ctx context.Context, args []string) domain.RunResult
}

// Collector lists the node ids the test runner would run
type Collector interface {
	Collect(ctx context.Context, args []string) ([]string, error)
}

package commands

import "fmt"

// ExitError carries a failing pytest exit code up to main
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("pytest exited with code %d", e.Code)
}

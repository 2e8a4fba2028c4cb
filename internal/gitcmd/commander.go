// Package gitcmd provides the command execution capability used to query git.
package gitcmd

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// Commander runs an external command and returns its captured stdout.
// Tests substitute a fake to feed canned git output to the modes.
type Commander interface {
	Run(ctx context.Context, argv []string) ([]byte, error)
}

// ExecCommander implements Commander using os/exec
type ExecCommander struct {
	Dir string // Working directory, current directory when empty
}

// NewExecCommander creates an ExecCommander running commands in dir
func NewExecCommander(dir string) *ExecCommander {
	return &ExecCommander{Dir: dir}
}

// Run executes argv[0] with the remaining arguments and returns stdout.
// Stderr is folded into the returned error.
func (c *ExecCommander) Run(ctx context.Context, argv []string) ([]byte, error) {
	if len(argv) == 0 {
		return nil, errors.New("empty command")
	}

	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	if c.Dir != "" {
		cmd.Dir = c.Dir
	}

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	out, err := cmd.Output()
	if err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg != "" {
			return out, fmt.Errorf("%s: %w: %s", strings.Join(argv, " "), err, msg)
		}
		return out, fmt.Errorf("%s: %w", strings.Join(argv, " "), err)
	}
	return out, nil
}

// Verify ExecCommander implements Commander at compile time.
var _ Commander = (*ExecCommander)(nil)

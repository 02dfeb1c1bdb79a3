package converter

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// maxStderrTail bounds how much converter output is kept in an error.
const maxStderrTail = 2048

// CommandRunner executes an external command and returns its stderr.
type CommandRunner interface {
	Run(ctx context.Context, name string, args ...string) (stderr string, err error)
}

// ExecRunner runs commands with os/exec.
type ExecRunner struct{}

// Run executes name with args. A non-zero exit is returned as *InvocationError.
func (ExecRunner) Run(ctx context.Context, name string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	err := cmd.Run()
	text := tail(stderr.String(), maxStderrTail)
	if err != nil {
		if ctx.Err() != nil {
			err = fmt.Errorf("%w: %w", ctx.Err(), err)
		}
		return text, &InvocationError{Command: name, Args: args, Stderr: text, Err: err}
	}
	return text, nil
}

// InvocationError describes a failed external command.
type InvocationError struct {
	Command string
	Args    []string
	Stderr  string
	Err     error
}

func (e *InvocationError) Error() string {
	if e.Stderr != "" {
		return e.Stderr
	}
	return fmt.Sprintf("%s: %v", e.Command, e.Err)
}

// Is reports whether the underlying process error matches target. InvocationError
// does not unwrap so that the captured stderr stays the innermost message.
func (e *InvocationError) Is(target error) bool {
	return errors.Is(e.Err, target)
}

func tail(s string, n int) string {
	s = strings.TrimSpace(s)
	if len(s) <= n {
		return s
	}
	return s[len(s)-n:]
}

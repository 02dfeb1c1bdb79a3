package converter

import (
	"context"
	"errors"
	"strings"
	"sync"
)

type invocation struct {
	name string
	args []string
}

// fakeRunner records invocations and fails those whose joined command line
// contains any of failOn.
type fakeRunner struct {
	mu     sync.Mutex
	calls  []invocation
	failOn []string
	stderr string
}

func (f *fakeRunner) Run(_ context.Context, name string, args ...string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, invocation{name: name, args: append([]string(nil), args...)})

	line := name + " " + strings.Join(args, " ")
	for _, pattern := range f.failOn {
		if strings.Contains(line, pattern) {
			return f.stderr, &InvocationError{Command: name, Args: args, Stderr: f.stderr, Err: errors.New("exit status 1")}
		}
	}
	return "", nil
}

func (f *fakeRunner) commandLines() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	lines := make([]string, 0, len(f.calls))
	for _, c := range f.calls {
		lines = append(lines, strings.TrimSpace(c.name+" "+strings.Join(c.args, " ")))
	}
	return lines
}

func lookPathOnly(available ...string) func(string) (string, error) {
	return func(name string) (string, error) {
		for _, a := range available {
			if a == name {
				return "/usr/bin/" + name, nil
			}
		}
		return "", errors.New("executable file not found in $PATH")
	}
}

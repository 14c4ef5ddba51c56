// Package executortest provides a scripted Executor for tests.
package executortest

import (
	"context"
	"sync"
)

// Call records one Execute invocation.
type Call struct {
	Name string
	Args []string
}

// Fake dispatches every Execute call to Handle and records it.
type Fake struct {
	Handle func(ctx context.Context, name string, args ...string) (string, error)

	mu    sync.Mutex
	calls []Call
}

// Execute implements executor.Executor.
func (f *Fake) Execute(ctx context.Context, name string, args ...string) (string, error) {
	f.mu.Lock()
	f.calls = append(f.calls, Call{Name: name, Args: append([]string(nil), args...)})
	f.mu.Unlock()

	if f.Handle == nil {
		return "", nil
	}
	return f.Handle(ctx, name, args...)
}

// Calls returns a copy of the recorded invocations.
func (f *Fake) Calls() []Call {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]Call(nil), f.calls...)
}

// Count returns how many times name was executed.
func (f *Fake) Count(name string) int {
	n := 0
	for _, c := range f.Calls() {
		if c.Name == name {
			n++
		}
	}
	return n
}

// ArgValue returns the value following flag in args, or "".
func ArgValue(args []string, flag string) string {
	for i := 0; i+1 < len(args); i++ {
		if args[i] == flag {
			return args[i+1]
		}
	}
	return ""
}

package stage

import (
	"context"
	"io"
)

// Deps carries the process streams a stage may write diagnostics or output to.
type Deps struct {
	Stdout io.Writer
	Stderr io.Writer
}

// Runner executes one step of a greeting run and returns the envelope for
// the next step.
type Runner func(ctx context.Context, in Envelope, deps Deps) (Envelope, error)

var registry = map[string]Runner{}

// Register adds a stage runner. The greeting stages (validate-input,
// normalize-lists, compile-format, resolve-sink, render-lines,
// write-summary) register themselves from init.
func Register(name string, r Runner) {
	registry[name] = r
}

// Run executes a registered stage by name. An unregistered name yields
// ErrUnknown without touching the envelope.
func Run(ctx context.Context, name string, in Envelope, deps Deps) (Envelope, error) {
	r, ok := registry[name]
	if !ok {
		return Envelope{}, ErrUnknown{name: name}
	}
	return r(ctx, in, deps)
}

// ErrUnknown is returned when a stage is not found.
type ErrUnknown struct{ name string }

func (e ErrUnknown) Error() string { return "unknown stage: " + e.name }

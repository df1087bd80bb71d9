package root

import (
	"context"

	"github.com/flarebyte/salve/internal/ctxlog"
	"github.com/flarebyte/salve/internal/stage"
)

// greetingStages run in order; every fatal check happens before resolve-sink
// opens the destination.
var greetingStages = []string{
	"validate-input",
	"normalize-lists",
	"compile-format",
	"resolve-sink",
	"render-lines",
	"write-summary",
}

// executePipeline runs the greeting stages and releases the sink afterwards.
func executePipeline(ctx context.Context, runID string, args stage.Args, deps stage.Deps) (err error) {
	in := stage.Envelope{RunID: runID, Args: args}
	out, err := runStages(ctx, in, greetingStages, deps)
	if rerr := stage.Release(out); rerr != nil && err == nil {
		err = rerr
	}
	return err
}

// runStages executes the provided list of stage names in order. On failure it
// returns the envelope produced by the last successful stage so held
// resources can still be released.
func runStages(ctx context.Context, in stage.Envelope, stages []string, deps stage.Deps) (stage.Envelope, error) {
	log := ctxlog.FromContext(ctx)
	out := in
	for _, name := range stages {
		log.Debug("stage started", "stage", name)
		next, err := stage.Run(ctx, name, out, deps)
		if err != nil {
			log.Debug("stage failed", "stage", name, "error", err)
			return out, err
		}
		out = next
	}
	return out, nil
}

package stage

import (
	"context"

	"github.com/flarebyte/salve/internal/ctxlog"
	"github.com/flarebyte/salve/internal/summary"
)

const writeSummaryStage = "write-summary"

func summaryFromEnvelope(in Envelope) summary.Summary {
	return summary.Summary{
		RunID:     in.RunID,
		Names:     in.Names,
		Greetings: in.Greetings,
		Repeat:    in.Args.Repeat,
		Lines:     in.Lines,
		Output:    in.SinkPath,
	}
}

func writeSummaryRunner(ctx context.Context, in Envelope, _ Deps) (Envelope, error) {
	if in.Args.Summary == "" {
		return in, nil
	}
	if err := summary.Write(in.Args.Summary, summaryFromEnvelope(in)); err != nil {
		return Envelope{}, ioWriteError(writeSummaryStage, err)
	}
	ctxlog.FromContext(ctx).Debug("summary written", "path", in.Args.Summary)
	return in, nil
}

func init() { Register(writeSummaryStage, writeSummaryRunner) }

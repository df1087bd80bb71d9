package stage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/flarebyte/salve/internal/ctxlog"
)

const resolveSinkStage = "resolve-sink"

// StdoutPath labels standard output in logs and summaries. It is never read
// back as a path: "-o -" creates a file named "-".
const StdoutPath = "-"

// OpenSink returns the destination for rendered lines. When no path was
// supplied the sink is stdout, which is never closed. A supplied path is
// always created or truncated, even when empty; missing parent directories
// are an error.
func OpenSink(path string, supplied bool, stdout io.Writer) (io.Writer, io.Closer, error) {
	if !supplied {
		return stdout, nil, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, &Error{
			Kind:    SinkCreationError,
			Stage:   resolveSinkStage,
			Token:   path,
			Message: fmt.Sprintf("cannot create output file '%s': %v", path, unwrapPathError(err)),
			Err:     err,
		}
	}
	return f, f, nil
}

func unwrapPathError(err error) error {
	var pe *os.PathError
	if errors.As(err, &pe) {
		return pe.Err
	}
	return err
}

func resolveSinkRunner(ctx context.Context, in Envelope, deps Deps) (Envelope, error) {
	w, c, err := OpenSink(in.Args.Output, in.Args.HasOutput, deps.Stdout)
	if err != nil {
		return Envelope{}, err
	}
	in.Sink = w
	in.sinkCloser = c
	in.SinkPath = StdoutPath
	if in.Args.HasOutput {
		in.SinkPath = in.Args.Output
	}
	ctxlog.FromContext(ctx).Debug("sink resolved", "path", in.SinkPath)
	return in, nil
}

// Release closes the file sink and the line formatter held by env. A failed
// close of the sink is reported as IoWriteError since buffered data may be lost.
func Release(env Envelope) error {
	if env.Formatter != nil {
		env.Formatter.Close()
	}
	if env.sinkCloser == nil {
		return nil
	}
	if err := env.sinkCloser.Close(); err != nil {
		return ioWriteError(resolveSinkStage, err)
	}
	return nil
}

func init() { Register(resolveSinkStage, resolveSinkRunner) }

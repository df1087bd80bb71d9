package stage

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/flarebyte/salve/internal/ctxlog"
)

const renderLinesStage = "render-lines"

// Pair returns the greeting and name used for line i. Both lists wrap around
// independently, so lists of different lengths still pair deterministically.
func Pair(greetings, names []string, i int) (greeting, name string) {
	return greetings[i%len(greetings)], names[i%len(names)]
}

// quoteList renders items as ["a", "b"].
func quoteList(items []string) string {
	quoted := make([]string, len(items))
	for i, s := range items {
		quoted[i] = strconv.Quote(s)
	}
	return "[" + strings.Join(quoted, ", ") + "]"
}

// WriteVerboseHeader writes the run summary printed before the lines in
// verbose mode.
func WriteVerboseHeader(w io.Writer, repeat int, greetings, names []string) error {
	header := []string{
		"Verbose mode enabled.",
		"Repeat count: " + strconv.Itoa(repeat),
		"Greetings: " + quoteList(greetings),
		"Names: " + quoteList(names),
	}
	for _, line := range header {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// RenderLines writes repeat lines to w in index order and returns how many
// were written. It stops at the first failure.
func RenderLines(w io.Writer, f LineFormatter, greetings, names []string, repeat int) (int, error) {
	if f == nil {
		f = DefaultFormatter{}
	}
	for i := 0; i < repeat; i++ {
		greeting, name := Pair(greetings, names, i)
		line, err := f.Format(i, greeting, name)
		if err != nil {
			return i, &Error{
				Kind:    FormatError,
				Stage:   renderLinesStage,
				Message: fmt.Sprintf("format.lua: line %d: %v", i, err),
				Err:     err,
			}
		}
		if _, err := io.WriteString(w, line+"\n"); err != nil {
			return i, ioWriteError(renderLinesStage, err)
		}
	}
	return repeat, nil
}

func renderLinesRunner(ctx context.Context, in Envelope, _ Deps) (Envelope, error) {
	log := ctxlog.FromContext(ctx)
	if in.Args.Verbose {
		if err := WriteVerboseHeader(in.Sink, in.Args.Repeat, in.Greetings, in.Names); err != nil {
			return Envelope{}, ioWriteError(renderLinesStage, err)
		}
	}
	n, err := RenderLines(in.Sink, in.Formatter, in.Greetings, in.Names, in.Args.Repeat)
	log.Debug("lines rendered", "lines", n, "sink", in.SinkPath)
	if err != nil {
		return Envelope{}, err
	}
	in.Lines = n
	return in, nil
}

func init() { Register(renderLinesStage, renderLinesRunner) }

package stage

import (
	"context"
	"fmt"
	"strings"

	"github.com/flarebyte/salve/internal/ctxlog"
)

const normalizeListsStage = "normalize-lists"

// Normalize splits raw on commas, trims every piece and drops the empty ones.
// Order of the surviving pieces follows the input.
func Normalize(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		out = append(out, p)
	}
	return out
}

// NormalizeList is Normalize with the empty result reported as EmptyList.
func NormalizeList(raw, label string) ([]string, error) {
	out := Normalize(raw)
	if len(out) == 0 {
		return nil, newError(EmptyList, normalizeListsStage, "%s list is empty or whitespace-only", label)
	}
	return out, nil
}

func normalizeListsRunner(ctx context.Context, in Envelope, deps Deps) (Envelope, error) {
	names, err := NormalizeList(in.Args.Names, "name")
	if err != nil {
		return Envelope{}, err
	}
	greetings, err := NormalizeList(in.Args.Greetings, "greeting")
	if err != nil {
		return Envelope{}, err
	}
	if len(names) != len(greetings) {
		ctxlog.FromContext(ctx).Debug("list length mismatch", "names", len(names), "greetings", len(greetings))
		if deps.Stderr != nil {
			_, _ = fmt.Fprintf(deps.Stderr,
				"warning: number of names (%d) and greetings (%d) differ; pairing them cyclically\n",
				len(names), len(greetings))
		}
	}
	in.Names = names
	in.Greetings = greetings
	return in, nil
}

func init() { Register(normalizeListsStage, normalizeListsRunner) }

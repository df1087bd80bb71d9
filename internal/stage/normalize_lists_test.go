package stage

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestNormalize(t *testing.T) {
	cases := []struct {
		raw  string
		want []string
	}{
		{raw: "Mario,Anna", want: []string{"Mario", "Anna"}},
		{raw: "  Mario ,  Anna  ", want: []string{"Mario", "Anna"}},
		{raw: "Mario,,Anna,", want: []string{"Mario", "Anna"}},
		{raw: "Mario Rossi", want: []string{"Mario Rossi"}},
		{raw: " , ,", want: []string{}},
		{raw: "", want: []string{}},
	}
	for _, tc := range cases {
		got := Normalize(tc.raw)
		if diff := cmp.Diff(tc.want, got); diff != "" {
			t.Fatalf("Normalize(%q) mismatch (-want +got):\n%s", tc.raw, diff)
		}
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	for _, raw := range []string{"Mario,Anna", " a , b ,, c ", "x"} {
		once := Normalize(raw)
		twice := Normalize(strings.Join(once, ","))
		if diff := cmp.Diff(once, twice); diff != "" {
			t.Fatalf("not idempotent for %q (-once +twice):\n%s", raw, diff)
		}
	}
}

func TestNormalizeList_Empty(t *testing.T) {
	_, err := NormalizeList(" , ", "name")
	if got := kindOf(t, err); got != EmptyList {
		t.Fatalf("want EmptyList, got %s", got)
	}
	if err.Error() != "name list is empty or whitespace-only" {
		t.Fatalf("unexpected message: %v", err)
	}
}

func TestNormalizeListsRunner_MismatchWarns(t *testing.T) {
	var stderr bytes.Buffer
	in := Envelope{Args: Args{Names: "Mario,Anna", Greetings: "Salve"}}
	out, err := Run(context.Background(), normalizeListsStage, in, Deps{Stderr: &stderr})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if diff := cmp.Diff([]string{"Mario", "Anna"}, out.Names); diff != "" {
		t.Fatalf("names (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"Salve"}, out.Greetings); diff != "" {
		t.Fatalf("greetings (-want +got):\n%s", diff)
	}
	want := "warning: number of names (2) and greetings (1) differ; pairing them cyclically\n"
	if stderr.String() != want {
		t.Fatalf("want %q, got %q", want, stderr.String())
	}
}

func TestNormalizeListsRunner_EqualLengthsQuiet(t *testing.T) {
	var stderr bytes.Buffer
	in := Envelope{Args: Args{Names: "Mario,Anna", Greetings: "Salve,Ciao"}}
	if _, err := Run(context.Background(), normalizeListsStage, in, Deps{Stderr: &stderr}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stderr.Len() != 0 {
		t.Fatalf("unexpected warning: %q", stderr.String())
	}
}

package main

import (
	"errors"
	"os"

	"github.com/flarebyte/salve/cmd/salve/root"
	"github.com/flarebyte/salve/internal/stage"
)

type exitCoder interface {
	ExitCode() int
}

func main() {
	if err := root.Execute(os.Args[1:]); err != nil {
		// One line on stderr, no usage text.
		_, _ = os.Stderr.WriteString("error: " + stage.SanitizeMessage(err.Error()) + "\n")
		code := 1
		var ec exitCoder
		if errors.As(err, &ec) {
			if c := ec.ExitCode(); c != 0 {
				code = c
			}
		}
		os.Exit(code)
	}
}

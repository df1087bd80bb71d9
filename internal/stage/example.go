package stage

import (
	"fmt"
	"io"
)

var exampleLines = []string{
	"Usage examples:",
	`  salve --names "Mario,Anna" --greetings "Salve,Ciao" --repeat 3`,
	`  salve --names "Mario,Anna" --greetings "Salve,Ciao" --repeat 3 --output greetings.txt`,
}

// WriteExamples prints the usage examples shown by --example.
func WriteExamples(w io.Writer) error {
	for _, l := range exampleLines {
		if _, err := fmt.Fprintln(w, l); err != nil {
			return err
		}
	}
	return nil
}

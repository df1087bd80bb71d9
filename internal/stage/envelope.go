package stage

import "io"

// Args holds the resolved arguments of one run. It is filled once before the
// first stage and never modified afterwards.
type Args struct {
	Names        string
	HasNames     bool
	Greetings    string
	HasGreetings bool
	Repeat       int
	Output       string
	HasOutput    bool
	Summary      string
	Verbose      bool
	FormatLua    string
}

// Envelope is the state passed between stages. Each stage fills in the
// fields it owns and hands the envelope to the next one.
type Envelope struct {
	RunID string
	Args  Args

	Names     []string
	Greetings []string

	Formatter LineFormatter

	Sink       io.Writer
	SinkPath   string
	sinkCloser io.Closer

	Lines int
}

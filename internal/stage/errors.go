package stage

import "fmt"

// Kind classifies a fatal run error.
type Kind string

const (
	ArgumentMissing    Kind = "ArgumentMissing"
	InvalidRepeatValue Kind = "InvalidRepeatValue"
	InvalidCharacters  Kind = "InvalidCharacters"
	TooShort           Kind = "TooShort"
	TooLong            Kind = "TooLong"
	EmptyList          Kind = "EmptyList"
	SinkCreationError  Kind = "SinkCreationError"
	IoWriteError       Kind = "IoWriteError"
	ConfigError        Kind = "ConfigError"
	FormatError        Kind = "FormatError"
)

const exitCodeFailure = 1

// Error is the single error type returned by stages. Every Kind is fatal.
type Error struct {
	Kind    Kind
	Stage   string
	Token   string
	Message string
	Err     error
}

func (e *Error) Error() string { return sanitizeErrorMessage(e.Message) }

func (e *Error) Unwrap() error { return e.Err }

// ExitCode reports the process exit code for e.
func (e *Error) ExitCode() int { return exitCodeFailure }

func newError(kind Kind, stage, format string, args ...any) *Error {
	return &Error{Kind: kind, Stage: stage, Message: fmt.Sprintf(format, args...)}
}

// NewConfigError wraps a failure to load the defaults file.
func NewConfigError(path string, err error) *Error {
	return &Error{
		Kind:    ConfigError,
		Stage:   "load-config",
		Message: fmt.Sprintf("config '%s': %v", path, err),
		Err:     err,
	}
}

func ioWriteError(stage string, err error) *Error {
	return &Error{
		Kind:    IoWriteError,
		Stage:   stage,
		Message: fmt.Sprintf("write output: %v", err),
		Err:     err,
	}
}

package stage

import (
	"context"
	"regexp"
	"strings"

	"github.com/flarebyte/salve/internal/ctxlog"
)

const validateInputStage = "validate-input"

const (
	// MinTokenLength is the shortest accepted name or greeting.
	MinTokenLength = 2
	// MaxTokenLength is the longest accepted name or greeting.
	MaxTokenLength = 50
)

// ASCII letters, digits and the space character only.
var tokenPattern = regexp.MustCompile(`^[A-Za-z0-9 ]+$`)

// ValidateTokens checks every comma-separated segment of raw and returns the
// first violation found. Checks run in order: characters, minimum length,
// maximum length.
func ValidateTokens(raw, label string) error {
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if !tokenPattern.MatchString(part) {
			return &Error{
				Kind:  InvalidCharacters,
				Stage: validateInputStage,
				Token: part,
				Message: label + " '" + part + "' contains invalid characters: " +
					"only letters, digits and spaces are allowed",
			}
		}
		if len(part) < MinTokenLength {
			e := newError(TooShort, validateInputStage,
				"%s '%s' is too short: minimum length is %d characters", label, part, MinTokenLength)
			e.Token = part
			return e
		}
		if len(part) > MaxTokenLength {
			e := newError(TooLong, validateInputStage,
				"%s '%s' is too long: maximum length is %d characters", label, part, MaxTokenLength)
			e.Token = part
			return e
		}
	}
	return nil
}

// ValidateRepeat rejects non-positive repeat counts.
func ValidateRepeat(n int) error {
	if n <= 0 {
		return newError(InvalidRepeatValue, validateInputStage,
			"--repeat must be a positive number, got %d", n)
	}
	return nil
}

func validateInputRunner(ctx context.Context, in Envelope, _ Deps) (Envelope, error) {
	log := ctxlog.FromContext(ctx)
	if err := ValidateRepeat(in.Args.Repeat); err != nil {
		return Envelope{}, err
	}
	if !in.Args.HasNames {
		return Envelope{}, newError(ArgumentMissing, validateInputStage, "missing required flag: --names")
	}
	if !in.Args.HasGreetings {
		return Envelope{}, newError(ArgumentMissing, validateInputStage, "missing required flag: --greetings")
	}
	if err := ValidateTokens(in.Args.Names, "name"); err != nil {
		return Envelope{}, err
	}
	if err := ValidateTokens(in.Args.Greetings, "greeting"); err != nil {
		return Envelope{}, err
	}
	log.Debug("input validated", "repeat", in.Args.Repeat)
	return in, nil
}

func init() { Register(validateInputStage, validateInputRunner) }

package stage

import (
	"context"
	"strings"

	"github.com/flarebyte/salve/internal/ctxlog"
)

const compileFormatStage = "compile-format"

// LineFormatter turns one pairing into the text of an output line, without
// the line terminator.
type LineFormatter interface {
	Format(index int, greeting, name string) (string, error)
	Close()
}

// DefaultFormatter renders "<greeting> <name>!".
type DefaultFormatter struct{}

func (DefaultFormatter) Format(_ int, greeting, name string) (string, error) {
	return greeting + " " + name + "!", nil
}

func (DefaultFormatter) Close() {}

// NewLineFormatter returns the Lua formatter for code, or DefaultFormatter
// when code is blank.
func NewLineFormatter(code string) (LineFormatter, error) {
	if strings.TrimSpace(code) == "" {
		return DefaultFormatter{}, nil
	}
	f, err := newLuaFormatter(code, defaultLuaTimeout)
	if err != nil {
		return nil, &Error{
			Kind:    FormatError,
			Stage:   compileFormatStage,
			Message: "format.lua: " + err.Error(),
			Err:     err,
		}
	}
	return f, nil
}

func compileFormatRunner(ctx context.Context, in Envelope, _ Deps) (Envelope, error) {
	f, err := NewLineFormatter(in.Args.FormatLua)
	if err != nil {
		return Envelope{}, err
	}
	_, custom := f.(*luaFormatter)
	ctxlog.FromContext(ctx).Debug("line formatter ready", "lua", custom)
	in.Formatter = f
	return in, nil
}

func init() { Register(compileFormatStage, compileFormatRunner) }

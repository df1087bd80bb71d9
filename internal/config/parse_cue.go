package config

import (
	"fmt"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
)

func parseCUE(data []byte) (Defaults, error) {
	ctx := cuecontext.New()
	v := ctx.CompileBytes(data)
	if err := v.Err(); err != nil {
		return Defaults{}, fmt.Errorf("invalid config: %v", err)
	}
	var d Defaults
	var err error
	if _, err = optionalString(v, "configVersion", &d.ConfigVersion); err != nil {
		return Defaults{}, err
	}
	if d.HasNames, err = optionalString(v, "names", &d.Names); err != nil {
		return Defaults{}, err
	}
	if d.HasGreetings, err = optionalString(v, "greetings", &d.Greetings); err != nil {
		return Defaults{}, err
	}
	if d.HasRepeat, err = optionalInt(v, "repeat", &d.Repeat); err != nil {
		return Defaults{}, err
	}
	if d.HasOutput, err = optionalString(v, "output", &d.Output); err != nil {
		return Defaults{}, err
	}
	if d.HasSummary, err = optionalString(v, "summary", &d.Summary); err != nil {
		return Defaults{}, err
	}
	if d.HasVerbose, err = optionalBool(v, "verbose", &d.Verbose); err != nil {
		return Defaults{}, err
	}
	if d.HasFormatLua, err = optionalString(v, "format.lua", &d.FormatLua); err != nil {
		return Defaults{}, err
	}
	return d, nil
}

func lookup(v cue.Value, name string, kind cue.Kind, expected string) (cue.Value, bool, error) {
	f := v.LookupPath(cue.ParsePath(name))
	if !f.Exists() {
		return f, false, nil
	}
	if f.IncompleteKind()&kind == 0 {
		return f, false, fmt.Errorf("invalid type for field: %s (expected %s)", name, expected)
	}
	return f, true, nil
}

func optionalString(v cue.Value, name string, dst *string) (bool, error) {
	f, ok, err := lookup(v, name, cue.StringKind, "string")
	if !ok || err != nil {
		return false, err
	}
	if err := f.Decode(dst); err != nil {
		return false, fmt.Errorf("invalid value for %s: %v", name, err)
	}
	return true, nil
}

func optionalInt(v cue.Value, name string, dst *int) (bool, error) {
	f, ok, err := lookup(v, name, cue.IntKind, "int")
	if !ok || err != nil {
		return false, err
	}
	if err := f.Decode(dst); err != nil {
		return false, fmt.Errorf("invalid value for %s: %v", name, err)
	}
	return true, nil
}

func optionalBool(v cue.Value, name string, dst *bool) (bool, error) {
	f, ok, err := lookup(v, name, cue.BoolKind, "bool")
	if !ok || err != nil {
		return false, err
	}
	if err := f.Decode(dst); err != nil {
		return false, fmt.Errorf("invalid value for %s: %v", name, err)
	}
	return true, nil
}

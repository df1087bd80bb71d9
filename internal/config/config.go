// Package config loads the optional defaults file for a salve run. The file
// format is chosen by extension: .cue, .yaml/.yml or .hcl. Every field is
// optional; the Has* flags record which ones were present.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Defaults holds the values read from a defaults file.
type Defaults struct {
	ConfigVersion string

	Names        string
	HasNames     bool
	Greetings    string
	HasGreetings bool
	Repeat       int
	HasRepeat    bool
	Output       string
	HasOutput    bool
	Summary      string
	HasSummary   bool
	Verbose      bool
	HasVerbose   bool
	FormatLua    string
	HasFormatLua bool
}

// fileDoc is the shape shared by the YAML and HCL decoders. Pointer fields
// distinguish absent from zero.
type fileDoc struct {
	ConfigVersion *string
	Names         *string
	Greetings     *string
	Repeat        *int
	Output        *string
	Summary       *string
	Verbose       *bool
	FormatLua     *string
}

func (d fileDoc) defaults() Defaults {
	var out Defaults
	if d.ConfigVersion != nil {
		out.ConfigVersion = *d.ConfigVersion
	}
	if d.Names != nil {
		out.Names, out.HasNames = *d.Names, true
	}
	if d.Greetings != nil {
		out.Greetings, out.HasGreetings = *d.Greetings, true
	}
	if d.Repeat != nil {
		out.Repeat, out.HasRepeat = *d.Repeat, true
	}
	if d.Output != nil {
		out.Output, out.HasOutput = *d.Output, true
	}
	if d.Summary != nil {
		out.Summary, out.HasSummary = *d.Summary, true
	}
	if d.Verbose != nil {
		out.Verbose, out.HasVerbose = *d.Verbose, true
	}
	if d.FormatLua != nil {
		out.FormatLua, out.HasFormatLua = *d.FormatLua, true
	}
	return out
}

var errUnsupportedFormat = errors.New("unsupported config format: expected .cue, .yaml, .yml or .hcl")

// Load reads and decodes the defaults file at path.
func Load(path string) (Defaults, error) {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".cue", ".yaml", ".yml", ".hcl":
	default:
		return Defaults{}, errUnsupportedFormat
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Defaults{}, fmt.Errorf("failed to read config: %w", err)
	}

	var d Defaults
	switch ext {
	case ".cue":
		d, err = parseCUE(data)
	case ".hcl":
		d, err = parseHCL(data, path)
	default:
		d, err = parseYAML(data)
	}
	if err != nil {
		return Defaults{}, err
	}
	if err := checkConfigVersion(d.ConfigVersion); err != nil {
		return Defaults{}, err
	}
	return d, nil
}

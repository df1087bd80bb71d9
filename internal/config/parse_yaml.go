package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

type yamlDoc struct {
	ConfigVersion *string `yaml:"configVersion"`
	Names         *string `yaml:"names"`
	Greetings     *string `yaml:"greetings"`
	Repeat        *int    `yaml:"repeat"`
	Output        *string `yaml:"output"`
	Summary       *string `yaml:"summary"`
	Verbose       *bool   `yaml:"verbose"`
	Format        *struct {
		Lua *string `yaml:"lua"`
	} `yaml:"format"`
}

func parseYAML(data []byte) (Defaults, error) {
	var doc yamlDoc
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
		return Defaults{}, fmt.Errorf("invalid config: %v", err)
	}
	fd := fileDoc{
		ConfigVersion: doc.ConfigVersion,
		Names:         doc.Names,
		Greetings:     doc.Greetings,
		Repeat:        doc.Repeat,
		Output:        doc.Output,
		Summary:       doc.Summary,
		Verbose:       doc.Verbose,
	}
	if doc.Format != nil {
		fd.FormatLua = doc.Format.Lua
	}
	return fd.defaults(), nil
}

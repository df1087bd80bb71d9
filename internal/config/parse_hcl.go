package config

import (
	"fmt"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
)

type hclDoc struct {
	ConfigVersion *string    `hcl:"configVersion,optional"`
	Names         *string    `hcl:"names,optional"`
	Greetings     *string    `hcl:"greetings,optional"`
	Repeat        *int       `hcl:"repeat,optional"`
	Output        *string    `hcl:"output,optional"`
	Summary       *string    `hcl:"summary,optional"`
	Verbose       *bool      `hcl:"verbose,optional"`
	Format        *hclFormat `hcl:"format,block"`
}

type hclFormat struct {
	Lua *string `hcl:"lua,optional"`
}

func parseHCL(data []byte, filename string) (Defaults, error) {
	parser := hclparse.NewParser()
	f, diags := parser.ParseHCL(data, filename)
	if diags.HasErrors() {
		return Defaults{}, fmt.Errorf("invalid config: %s", diags.Error())
	}
	var doc hclDoc
	if diags := gohcl.DecodeBody(f.Body, nil, &doc); diags.HasErrors() {
		return Defaults{}, fmt.Errorf("invalid config: %s", diags.Error())
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

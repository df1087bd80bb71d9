package root

import (
	"github.com/flarebyte/salve/internal/config"
	"github.com/flarebyte/salve/internal/stage"
	"github.com/spf13/cobra"
)

// resolveArgs merges the defaults file with the command line. A flag given
// explicitly always wins over the file.
func resolveArgs(cmd *cobra.Command, opts *options) (stage.Args, error) {
	f := cmd.Flags()
	args := stage.Args{
		Names:        opts.names,
		HasNames:     f.Changed("names"),
		Greetings:    opts.greetings,
		HasGreetings: f.Changed("greetings"),
		Repeat:       opts.repeat,
		Output:       opts.output,
		HasOutput:    f.Changed("output"),
		Summary:      opts.summary,
		Verbose:      opts.verbose,
	}
	if opts.configPath == "" {
		return args, nil
	}

	d, err := config.Load(opts.configPath)
	if err != nil {
		return stage.Args{}, stage.NewConfigError(opts.configPath, err)
	}
	if d.HasNames && !args.HasNames {
		args.Names, args.HasNames = d.Names, true
	}
	if d.HasGreetings && !args.HasGreetings {
		args.Greetings, args.HasGreetings = d.Greetings, true
	}
	if d.HasRepeat && !f.Changed("repeat") {
		args.Repeat = d.Repeat
	}
	if d.HasOutput && !args.HasOutput {
		args.Output, args.HasOutput = d.Output, true
	}
	if d.HasSummary && !f.Changed("summary") {
		args.Summary = d.Summary
	}
	if d.HasVerbose && !f.Changed("verbose") {
		args.Verbose = d.Verbose
	}
	if d.HasFormatLua {
		args.FormatLua = d.FormatLua
	}
	return args, nil
}

package root

import (
	"context"
	"io"
	"os"

	"github.com/flarebyte/salve/cmd/salve/version"
	"github.com/flarebyte/salve/internal/ctxlog"
	"github.com/flarebyte/salve/internal/logging"
	"github.com/flarebyte/salve/internal/stage"
	"github.com/spf13/cobra"
)

const exitCodeUsage = 2

// usageError reports a command line the flag parser rejected.
type usageError struct{ err error }

func (e usageError) Error() string { return e.err.Error() }
func (e usageError) Unwrap() error { return e.err }
func (e usageError) ExitCode() int { return exitCodeUsage }

type options struct {
	names     string
	greetings string
	repeat    int
	output    string
	verbose   bool
	example   bool

	configPath string
	summary    string
	logLevel   string
	logFormat  string
}

// NewRootCmd creates the root command for salve.
func NewRootCmd() *cobra.Command {
	opts := &options{}
	cmd := &cobra.Command{
		Use:   "salve",
		Short: "Pair names with greetings and print every combination",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.example {
				return stage.WriteExamples(cmd.OutOrStdout())
			}
			return run(cmd, opts)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return usageError{err: err}
	})

	f := cmd.Flags()
	f.StringVarP(&opts.names, "names", "n", "", `Comma-separated names, e.g. "Mario,Anna"`)
	f.StringVarP(&opts.greetings, "greetings", "g", "", `Comma-separated greetings, e.g. "Salve,Ciao"`)
	f.IntVarP(&opts.repeat, "repeat", "r", 1, "Number of lines to print")
	f.StringVarP(&opts.output, "output", "o", "", "Write lines to this file instead of stdout")
	f.BoolVarP(&opts.verbose, "verbose", "v", false, "Print the run settings before the lines")
	f.BoolVarP(&opts.example, "example", "e", false, "Print usage examples and exit")
	f.StringVarP(&opts.configPath, "config", "c", "", "Defaults file (.cue, .yaml, .yml or .hcl)")
	f.StringVar(&opts.summary, "summary", "", "Write a YAML run summary to this file")
	f.StringVar(&opts.logLevel, "log-level", "warn", "Log level: debug, info, warn or error")
	f.StringVar(&opts.logFormat, "log-format", "text", "Log format: text or json")

	cmd.AddCommand(version.NewCmd())
	return cmd
}

func run(cmd *cobra.Command, opts *options) error {
	stderr := cmd.ErrOrStderr()
	logger, runID, err := logging.New(logging.Config{Level: opts.logLevel, Format: opts.logFormat}, stderr)
	if err != nil {
		return usageError{err: err}
	}
	ctx := ctxlog.WithLogger(cmd.Context(), logger)

	args, err := resolveArgs(cmd, opts)
	if err != nil {
		return err
	}
	logger.Info("run started", "repeat", args.Repeat, "output", args.Output, "config", opts.configPath)
	return executePipeline(ctx, runID, args, stage.Deps{Stdout: cmd.OutOrStdout(), Stderr: stderr})
}

// Execute runs the root command with provided args on the process streams.
func Execute(args []string) error {
	return ExecuteWith(args, os.Stdout, os.Stderr)
}

// ExecuteWith runs the root command with provided args and streams.
func ExecuteWith(args []string, stdout, stderr io.Writer) error {
	cmd := NewRootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	return cmd.ExecuteContext(context.Background())
}

package version

import (
	"encoding/json"
	"fmt"
	"io"
	"runtime"

	"github.com/flarebyte/salve/internal/buildinfo"
	"github.com/spf13/cobra"
)

// NewCmd creates the `salve version` command.
func NewCmd() *cobra.Command {
	var short, asJSON bool
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print the CLI version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if short || !asJSON {
				_, err := fmt.Fprintf(cmd.OutOrStdout(), "salve %s\n", buildinfo.Summary())
				return err
			}
			// JSON goes to stdout, the human friendly line to stderr.
			_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "salve version: %s\n", buildinfo.Summary())
			return encodeJSON(cmd.OutOrStdout(), map[string]any{
				"version":  buildinfo.Version,
				"commit":   buildinfo.Commit,
				"date":     buildinfo.Date,
				"built_by": buildinfo.BuiltBy,
				"go":       runtime.Version(),
				"go_os":    runtime.GOOS,
				"go_arch":  runtime.GOARCH,
			})
		},
	}
	cmd.Flags().BoolVar(&short, "short", false, "Print only the version string")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print detailed JSON version info")
	return cmd
}

func encodeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

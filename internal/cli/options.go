package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wesleyorama2/jsonreq/internal/http"
	"github.com/wesleyorama2/jsonreq/internal/output"
)

func newOptionsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "options [URL]",
		Short: "Show the transport options a request would be sent with",
		Long: `Builds the request exactly as send would (host, path, protocol, port,
method, headers including the computed Content-Length, and the JSON payload)
and prints it without opening a connection.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runOptions,
	}

	addRequestFlags(cmd)

	return cmd
}

func runOptions(cmd *cobra.Command, args []string) error {
	req, err := buildRequest(cmd, args)
	if err != nil {
		return err
	}

	opts, payload, err := http.BuildOptions(req)
	if err != nil {
		return err
	}

	formatter, err := newFormatter(cmd)
	if err != nil {
		return err
	}

	fmt.Fprint(cmd.OutOrStdout(), formatter.FormatOptions(opts, payload))
	return nil
}

func newFormatter(cmd *cobra.Command) (output.FormatProvider, error) {
	name, _ := cmd.Flags().GetString("output")
	format, err := output.ParseFormat(name)
	if err != nil {
		return nil, &usageError{err}
	}

	verbose, _ := cmd.Flags().GetBool("verbose")
	noColor, _ := cmd.Flags().GetBool("no-color")

	return output.GetFormatter(format, verbose, output.NoColorFor(cmd.OutOrStdout(), noColor)), nil
}

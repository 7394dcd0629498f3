package cli

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var version = "0.1.0"

// NewRootCmd builds the command tree
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "jsonreq",
		Short:   "Send one HTTP request and print the normalized response",
		Version: version,
		Long: `jsonreq sends a single HTTP(S) request built from a URL, method, headers
and an optional JSON body. Responses whose content type mentions json are
decoded, everything else is shown as raw text.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().Bool("debug", false, "Write diagnostic logs to stderr")

	rootCmd.AddCommand(newSendCmd())
	rootCmd.AddCommand(newOptionsCmd())

	return rootCmd
}

// Execute runs the root command with the process arguments
func Execute() error {
	return NewRootCmd().Execute()
}

// newLogger returns a development logger when --debug is set and a no-op
// logger otherwise.
func newLogger(cmd *cobra.Command) (*zap.Logger, error) {
	debug, _ := cmd.Flags().GetBool("debug")
	if !debug {
		return zap.NewNop(), nil
	}

	cfg := zap.NewDevelopmentConfig()
	cfg.OutputPaths = []string{"stderr"}
	return cfg.Build()
}

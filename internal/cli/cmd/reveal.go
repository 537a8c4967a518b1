package cmd

import (
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/ThanathonTH/godspeed-downloader/internal/platform"
)

func newRevealCmd() *cobra.Command {
	return &cobra.Command{
		Use:           "reveal <path>",
		Short:         "Show a downloaded file in the system file browser",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			abs, err := filepath.Abs(args[0])
			if err != nil {
				return &ExitError{Code: ExitCLIError, Err: err}
			}
			if err := platform.New().Reveal(abs); err != nil {
				return &ExitError{Code: ExitCLIError, Err: err}
			}
			return nil
		},
	}
}

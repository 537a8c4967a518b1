package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ThanathonTH/godspeed-downloader/internal/appupdate"
	"github.com/ThanathonTH/godspeed-downloader/internal/platform"
)

func newUpgradeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "upgrade",
		Short:         "Check for a newer app release",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE:          runUpgrade,
	}
	cmd.Flags().Bool("install", false, "Download the installer and open it")
	return cmd
}

func runUpgrade(cmd *cobra.Command, _ []string) error {
	client := &appupdate.Client{}

	info, err := client.Check(cmd.Context(), Version)
	if err != nil {
		return &ExitError{Code: ExitUpdateError, Err: err}
	}
	if !info.UpdateAvailable {
		fmt.Printf("Up to date (version %s)\n", Version)
		return nil
	}

	fmt.Printf("Update available: %s (running %s)\n", info.LatestVersion, Version)

	install, _ := cmd.Flags().GetBool("install")
	if !install {
		fmt.Println("Run \"godspeed upgrade --install\" to download and open the installer.")
		return nil
	}

	fmt.Println("Downloading installer...")
	path, err := client.Download(cmd.Context(), info.DownloadURL)
	if err != nil {
		return &ExitError{Code: ExitUpdateError, Err: err}
	}
	fmt.Printf("Installer saved: %s\n", path)

	if err := platform.New().OpenPath(path); err != nil {
		return &ExitError{Code: ExitUpdateError, Err: fmt.Errorf("could not open installer: %w", err)}
	}
	return nil
}

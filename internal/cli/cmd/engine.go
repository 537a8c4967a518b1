package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ThanathonTH/godspeed-downloader/internal/engine"
	"github.com/ThanathonTH/godspeed-downloader/internal/logging"
	"github.com/ThanathonTH/godspeed-downloader/internal/notify"
	"github.com/ThanathonTH/godspeed-downloader/internal/platform"
	"github.com/ThanathonTH/godspeed-downloader/internal/util/format"
)

func newEngineCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "engine",
		Short: "Manage the bundled media binaries",
	}
	cmd.AddCommand(newEngineUpdateCmd())
	cmd.AddCommand(newEngineStatusCmd())
	return cmd
}

func newEngineUpdateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "update <package-url>",
		Short:         "Download an engine package and replace the binaries",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.ExactArgs(1),
		RunE:          runEngineUpdate,
	}
	cmd.Flags().Bool("no-notify", false, "Suppress desktop notifications")
	return cmd
}

func runEngineUpdate(cmd *cobra.Command, args []string) error {
	verbose := getPersistentBool(cmd, "verbose", false)
	log := logging.New(verbose)
	ops := platform.New()

	if noNotify, _ := cmd.Flags().GetBool("no-notify"); noNotify {
		notify.Enabled = false
	}

	u := &engine.Updater{
		Binaries: platform.EngineBinaries(ops),
		Dir:      getPersistentString(cmd, "engine-dir", ""),
		Log:      log,
	}

	fmt.Println("Updating engine...")
	report, err := u.Update(cmd.Context(), args[0])
	if err != nil {
		for _, f := range report.Failures {
			fmt.Fprintf(cmd.ErrOrStderr(), "  failed: %s (%s)\n", f.Name, f.Reason)
		}
		return &ExitError{Code: ExitUpdateError, Err: err}
	}

	fmt.Printf("Engine updated successfully! %d binaries installed to %s\n", len(report.Replaced), report.Dir)
	for _, name := range report.Replaced {
		fmt.Printf("  installed: %s\n", name)
	}
	notify.EngineUpdated(len(report.Replaced))
	return nil
}

func newEngineStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:           "status",
		Short:         "Show the installed engine binaries",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE:          runEngineStatus,
	}
}

func runEngineStatus(cmd *cobra.Command, _ []string) error {
	ops := platform.New()
	dir := getPersistentString(cmd, "engine-dir", "")
	if dir == "" {
		dir = engine.BinariesDir()
	}

	fmt.Printf("Engine directory: %s\n", dir)
	var missing int
	for _, st := range engine.Status(cmd.Context(), dir, platform.EngineBinaries(ops)) {
		switch {
		case !st.Present:
			missing++
			fmt.Printf("  %-40s missing\n", st.Name)
		case st.Locked:
			detail := "locked"
			if len(st.Holders) > 0 {
				detail += " by " + strings.Join(st.Holders, ", ")
			}
			fmt.Printf("  %-40s %s (%s)\n", st.Name, format.HumanizeBytes(st.Size), detail)
		default:
			fmt.Printf("  %-40s %s\n", st.Name, format.HumanizeBytes(st.Size))
		}
	}
	if missing > 0 {
		return &ExitError{
			Code: ExitMissingDep,
			Err:  fmt.Errorf("%d engine binaries missing; run \"godspeed engine update <package-url>\"", missing),
		}
	}
	return nil
}

package cmd

import (
	"context"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/ThanathonTH/godspeed-downloader/internal/config"
	"github.com/ThanathonTH/godspeed-downloader/internal/dirs"
)

const (
	ExitOK            = 0
	ExitCLIError      = 1
	ExitMissingDep    = 2
	ExitDownloadError = 3
	ExitUpdateError   = 4
)

// Version is stamped at build time via -ldflags.
var Version = "dev"

// ExitError wraps an error with a process exit code.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	if e.Err == nil {
		return ""
	}
	return e.Err.Error()
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "godspeed",
		Short:         "High-quality MP3 downloads at godspeed",
		Long:          "Godspeed turns video links into high-quality MP3 files. It drives a managed set of media binaries (yt-dlp, aria2c, ffmpeg), keeps them up to date, and shows live progress while they work.",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Persistent flags available to all subcommands
	root.PersistentFlags().StringP("out-dir", "o", "", "Output directory (default: your Downloads folder)")
	root.PersistentFlags().BoolP("verbose", "v", false, "Show full subprocess commands/output")
	root.PersistentFlags().String("engine-dir", "", "Directory holding the engine binaries (default: auto-detected)")
	root.PersistentFlags().Int("jobs", 2, "Max concurrent downloads in TUI")

	// Subcommands
	root.AddCommand(newGetCmd())
	root.AddCommand(newEngineCmd())
	root.AddCommand(newUpgradeCmd())
	root.AddCommand(newRevealCmd())
	root.AddCommand(newCompletionCmd())

	_ = config.Init(root)

	return root
}

// Execute runs the CLI with the provided context.
func Execute(ctx context.Context) error {
	root := newRootCmd()
	return root.ExecuteContext(ctx)
}

// Helpers
func getPersistentString(cmd *cobra.Command, name, def string) string {
	v, err := cmd.InheritedFlags().GetString(name)
	if err != nil || v == "" {
		return def
	}
	return v
}

func getPersistentBool(cmd *cobra.Command, name string, def bool) bool {
	v, err := cmd.InheritedFlags().GetBool(name)
	if err != nil {
		return def
	}
	return v
}

func getPersistentInt(cmd *cobra.Command, name string, def int) int {
	v, err := cmd.InheritedFlags().GetInt(name)
	if err != nil {
		return def
	}
	return v
}

func resolveOutDir(cmd *cobra.Command) string {
	if out := getPersistentString(cmd, "out-dir", ""); out != "" {
		return filepath.Clean(out)
	}
	if d, err := dirs.DefaultOutputDir(); err == nil {
		return d
	}
	return "."
}

func ensureDir(path string) error {
	if path == "" {
		path = "."
	}
	return os.MkdirAll(filepath.Clean(path), 0o755)
}

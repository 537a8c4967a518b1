// Package notify raises desktop notifications. Failures are swallowed;
// a missing notification daemon must never affect a download.
package notify

import (
	"fmt"
	"path/filepath"

	"github.com/gen2brain/beeep"
)

const appTitle = "Godspeed"

// Enabled gates all notifications; the CLI turns it off for headless runs.
var Enabled = true

// DownloadComplete announces a finished download.
func DownloadComplete(outputPath string) {
	if outputPath == "" {
		send("Download completed!")
		return
	}
	send("Download completed: " + filepath.Base(outputPath))
}

// DownloadFailed announces a download that could not run.
func DownloadFailed(reason string) {
	send("Download failed: " + reason)
}

// EngineUpdated announces a finished engine update.
func EngineUpdated(count int) {
	send(fmt.Sprintf("Engine updated: %d binaries installed", count))
}

func send(message string) {
	if !Enabled {
		return
	}
	_ = beeep.Notify(appTitle, message, "")
}

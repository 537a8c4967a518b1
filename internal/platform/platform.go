// Package platform isolates the per-OS details: the names the engine
// binaries ship under and how to surface a file in the system file browser.
package platform

import "runtime"

// Ops abstracts OS-specific behavior so the rest of the app stays portable
// and tests can substitute a fake.
type Ops interface {
	// FetchToolName is the file name of the yt-dlp binary in the engine dir.
	FetchToolName() string
	// AcceleratorName is the file name of the aria2c binary.
	AcceleratorName() string
	// TranscoderName is the file name of the ffmpeg binary.
	TranscoderName() string
	// Reveal shows path highlighted in the system file browser.
	Reveal(path string) error
	// OpenPath opens path with its default handler.
	OpenPath(path string) error
}

// EngineBinaries lists the file names the update pipeline manages.
func EngineBinaries(ops Ops) []string {
	return []string{ops.FetchToolName(), ops.AcceleratorName(), ops.TranscoderName()}
}

// New returns the Ops implementation for the running OS.
func New() Ops {
	switch runtime.GOOS {
	case "windows":
		return windowsOps{}
	case "darwin":
		return darwinOps{}
	default:
		return linuxOps{}
	}
}

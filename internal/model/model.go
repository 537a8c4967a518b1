package model

// AudioQuality is a named MP3 quality selecting the bitrate the transcoder
// targets during audio extraction.
type AudioQuality string

const (
	Quality128 AudioQuality = "128k"
	Quality192 AudioQuality = "192k"
	Quality256 AudioQuality = "256k"
	Quality320 AudioQuality = "320k"
)

// Qualities lists the supported selectors from lowest to highest.
func Qualities() []AudioQuality {
	return []AudioQuality{Quality128, Quality192, Quality256, Quality320}
}

// BitrateArg maps a quality selector to the bitrate argument handed to the
// fetch tool. Unrecognized input falls back to the highest bitrate rather
// than failing the job.
func (q AudioQuality) BitrateArg() string {
	switch q {
	case Quality128:
		return "128K"
	case Quality192:
		return "192K"
	case Quality256:
		return "256K"
	default:
		return "320K"
	}
}

// Valid reports whether q is one of the supported selectors.
func (q AudioQuality) Valid() bool {
	switch q {
	case Quality128, Quality192, Quality256, Quality320:
		return true
	}
	return false
}

// CLIOptions holds user-configurable runtime options as parsed from flags.
type CLIOptions struct {
	OutDir    string
	Quality   AudioQuality
	EngineDir string // Optional explicit path to the engine binaries directory.
	Verbose   bool

	NoUI bool // Disable TUI when true
	Jobs int  // Max concurrent jobs for TUI
}

// DownloadJob represents a single URL download with runtime-resolved paths.
type DownloadJob struct {
	ID        string
	URL       string
	CLIOpts   CLIOptions
	FetchTool string // Path to the yt-dlp binary driving the job.
}

// BinaryFailure records one engine binary that could not be replaced.
type BinaryFailure struct {
	Name   string
	Reason string
}

// UpdateReport summarizes an engine update run.
type UpdateReport struct {
	Dir      string // Directory the binaries were installed into.
	Replaced []string
	Failures []BinaryFailure
}

// UpdateInfo describes the outcome of an application release check.
type UpdateInfo struct {
	UpdateAvailable bool
	LatestVersion   string
	DownloadURL     string
}

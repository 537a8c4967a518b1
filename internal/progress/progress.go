package progress

import "time"

// Stage identifies a high-level step of a supervised download.
type Stage string

const (
	StageDeps        Stage = "deps"
	StageStarting    Stage = "starting"
	StageDownloading Stage = "downloading"
	StageExtracting  Stage = "extracting"
	StageCompleted   Stage = "completed"
	StageError       Stage = "error"
)

// Event names shared with any embedding shell listening on the side channel.
const (
	EventDownloadProgress = "download-progress"
	EventDownloadComplete = "download-complete"
)

// LogStream indicates which stream produced a log line.
type LogStream int

const (
	StreamStdout LogStream = iota
	StreamStderr
)

// Update conveys progress or stage changes for a job.
// Percent is 0..100 when known; set to a negative value (e.g., -1) to mean unknown.
type Update struct {
	JobID   string
	Stage   Stage
	Percent float64 // 0..100, or <0 if unknown

	ETA     *time.Duration // optional
	Speed   *string        // optional, e.g., "2.5MiB/s"
	Message string         // short human-friendly status line
}

// Log is a structured log line associated with a job.
type Log struct {
	JobID  string
	Stream LogStream
	Line   string
}

// Result is emitted once per job when it completes or fails.
type Result struct {
	JobID      string
	OutputPath string
	Err        error // nil on success
}

// Reporter is implemented by UI or any observer interested in progress events.
type Reporter interface {
	Update(u Update)
	Log(l Log)
	Result(r Result)
}

// Discard is a Reporter that drops every event.
var Discard Reporter = discard{}

type discard struct{}

func (discard) Update(Update) {}
func (discard) Log(Log)       {}
func (discard) Result(Result) {}

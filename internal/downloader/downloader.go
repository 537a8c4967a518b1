// Package downloader supervises fetch-tool processes: it builds the
// argument list, relays output lines as progress events, and captures the
// final audio path from the tool's own reporting.
package downloader

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/ThanathonTH/godspeed-downloader/internal/apperr"
	"github.com/ThanathonTH/godspeed-downloader/internal/model"
	"github.com/ThanathonTH/godspeed-downloader/internal/progress"
	"github.com/ThanathonTH/godspeed-downloader/internal/util"
)

// CompletedFallback is returned when the tool exits cleanly but never
// reported a final destination.
const CompletedFallback = "Download completed"

// acceleratorArgs tunes the external accelerator: 16 connections,
// 1 MiB split size.
const acceleratorArgs = "-x 16 -k 1M"

// Options controls a supervised download.
type Options struct {
	FetchTool   string             // Path to the yt-dlp binary. Required.
	Accelerator string             // aria2c path or name; empty means "aria2c".
	OutDir      string             // Directory the audio file lands in.
	Quality     model.AudioQuality // Bitrate selector; zero value means highest.

	JobID    string
	Reporter progress.Reporter // nil drops all events.
	Runner   util.CmdRunner    // nil uses the os/exec runner.
}

// BuildArgs assembles the fixed fetch-tool argument list for url.
func BuildArgs(url string, opts Options) []string {
	accelerator := opts.Accelerator
	if accelerator == "" {
		accelerator = "aria2c"
	}
	return []string{
		"--no-playlist",
		"--windows-filenames",
		"--trim-filenames", "200",
		"-o", filepath.Join(opts.OutDir, "%(title)s.%(ext)s"),
		"--extract-audio",
		"--audio-format", "mp3",
		"--audio-quality", opts.Quality.BitrateArg(),
		"--external-downloader", accelerator,
		"--external-downloader-args", acceleratorArgs,
		url,
	}
}

// Run downloads url to an MP3 file under opts.OutDir. It returns the path
// the tool reported for the finished file, or CompletedFallback when the
// tool exited cleanly without reporting one. A non-zero exit is relayed
// through the reporter as a progress line and a failed Result; the
// returned error stays nil. Only failing to run the tool at all returns
// an error.
func Run(ctx context.Context, url string, opts Options) (string, error) {
	if opts.FetchTool == "" {
		return "", apperr.New(apperr.Logic, "fetch tool path is required")
	}
	reporter := opts.Reporter
	if reporter == nil {
		reporter = progress.Discard
	}
	runner := opts.Runner
	if runner == nil {
		runner = util.NewDefaultRunner()
	}

	s := &session{jobID: opts.JobID, reporter: reporter}

	reporter.Update(progress.Update{
		JobID:   opts.JobID,
		Stage:   progress.StageStarting,
		Percent: -1,
		Message: "Starting download",
	})

	// The reporter owns all terminal output, so the runner stays quiet
	// even in verbose mode.
	res, runErr := runner.Run(ctx, util.CmdSpec{
		Path:       opts.FetchTool,
		Args:       BuildArgs(url, opts),
		StdoutLine: func(line string) { s.handleLine(progress.StreamStdout, line) },
		StderrLine: func(line string) { s.handleLine(progress.StreamStderr, line) },
	})

	if ctx.Err() != nil {
		err := apperr.Wrap(apperr.ExternalTool, "download canceled", ctx.Err())
		reporter.Result(progress.Result{JobID: opts.JobID, Err: err})
		return "", err
	}
	if runErr != nil && res.Code < 0 {
		// The tool never ran; that is an error, unlike a tool that ran
		// and failed.
		err := apperr.Wrap(apperr.ExternalTool, "failed to run fetch tool", runErr)
		reporter.Result(progress.Result{JobID: opts.JobID, Err: err})
		return "", err
	}

	if res.Code != 0 {
		// The tool ran and failed: relay the exit code as progress, never
		// as a returned error. The completion notice stays suppressed.
		reporter.Update(progress.Update{
			JobID:   opts.JobID,
			Stage:   progress.StageDownloading,
			Percent: -1,
			Message: fmt.Sprintf("[ERROR] Process exited with code: %d", res.Code),
		})
		reporter.Result(progress.Result{
			JobID: opts.JobID,
			Err:   apperr.Newf(apperr.ExternalTool, "fetch tool exited with code %d", res.Code),
		})
		return CompletedFallback, nil
	}

	if s.finalPath == "" {
		reporter.Log(progress.Log{
			JobID:  opts.JobID,
			Stream: progress.StreamStderr,
			Line:   "no final destination reported; check the output directory",
		})
	}

	reporter.Update(progress.Update{
		JobID:   opts.JobID,
		Stage:   progress.StageCompleted,
		Percent: 100,
		Message: "Download completed!",
	})
	reporter.Result(progress.Result{JobID: opts.JobID, OutputPath: s.finalPath})

	if s.finalPath == "" {
		return CompletedFallback, nil
	}
	return s.finalPath, nil
}

// session tracks per-job state while output streams in.
type session struct {
	jobID     string
	reporter  progress.Reporter
	finalPath string
}

// handleLine relays one output line. Every non-blank line becomes a log
// event; destination and percent lines additionally update state.
func (s *session) handleLine(stream progress.LogStream, line string) {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return
	}
	s.reporter.Log(progress.Log{JobID: s.jobID, Stream: stream, Line: trimmed})

	if path, ok := ParseDestination(trimmed); ok && IsFinalOutput(path) {
		// Later destinations win; the tool reports the MP3 last, after
		// any intermediate formats.
		s.finalPath = path
		s.reporter.Update(progress.Update{
			JobID:   s.jobID,
			Stage:   progress.StageExtracting,
			Percent: -1,
			Message: "Extracting audio",
		})
		return
	}
	if u, ok := ParseProgress(trimmed, s.jobID); ok {
		s.reporter.Update(u)
	}
}

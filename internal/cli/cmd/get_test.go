package cmd

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/ThanathonTH/godspeed-downloader/internal/model"
	"github.com/ThanathonTH/godspeed-downloader/internal/progress"
)

func TestAssembleGetOptionsQuality(t *testing.T) {
	tests := []struct {
		quality string
		want    model.AudioQuality
		wantErr bool
	}{
		{quality: "320k", want: model.Quality320},
		{quality: "128K", want: model.Quality128},
		{quality: "192k", want: model.Quality192},
		{quality: "lossless", wantErr: true},
		{quality: "64k", wantErr: true},
	}
	for _, tt := range tests {
		cmd := newGetCmd()
		if err := cmd.Flags().Set("quality", tt.quality); err != nil {
			t.Fatal(err)
		}
		opts, err := assembleGetOptions(cmd)
		if tt.wantErr {
			if err == nil {
				t.Errorf("quality %q accepted, want error", tt.quality)
			}
			continue
		}
		if err != nil {
			t.Errorf("quality %q: %v", tt.quality, err)
			continue
		}
		if opts.Quality != tt.want {
			t.Errorf("quality %q parsed as %q, want %q", tt.quality, opts.Quality, tt.want)
		}
	}
}

func TestJSONReporterEvents(t *testing.T) {
	var buf bytes.Buffer
	rep := &jsonReporter{out: &buf}

	pct := "1.2MiB/s"
	rep.Update(progress.Update{JobID: "j1", Stage: progress.StageDownloading, Percent: 42.5, Speed: &pct})
	rep.Result(progress.Result{JobID: "j1", OutputPath: "/music/Song.mp3"})

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte{'\n'})
	if len(lines) != 2 {
		t.Fatalf("got %d events, want 2:\n%s", len(lines), buf.String())
	}

	var first jsonEvent
	if err := json.Unmarshal(lines[0], &first); err != nil {
		t.Fatal(err)
	}
	if first.Event != progress.EventDownloadProgress || first.Percent != 42.5 || first.Speed != "1.2MiB/s" {
		t.Errorf("first event = %+v", first)
	}

	var second jsonEvent
	if err := json.Unmarshal(lines[1], &second); err != nil {
		t.Fatal(err)
	}
	if second.Event != progress.EventDownloadComplete || second.Output != "/music/Song.mp3" {
		t.Errorf("second event = %+v", second)
	}
	if rep.OutputPath() != "/music/Song.mp3" {
		t.Errorf("OutputPath = %q", rep.OutputPath())
	}
}

func TestReportersCaptureFailedResult(t *testing.T) {
	resErr := errors.New("fetch tool exited with code 1")

	plain := &plainReporter{}
	plain.Result(progress.Result{JobID: "j1", Err: resErr})
	if plain.ResultErr() == nil {
		t.Error("plainReporter dropped the failed result")
	}

	var buf bytes.Buffer
	jr := &jsonReporter{out: &buf}
	jr.Result(progress.Result{JobID: "j1", Err: resErr})
	if jr.ResultErr() == nil {
		t.Error("jsonReporter dropped the failed result")
	}
	// The complete event only ever announces a finished file.
	if buf.Len() != 0 {
		t.Errorf("complete event emitted for a failed job: %s", buf.String())
	}
}

func TestExitErrorUnwrapsMessage(t *testing.T) {
	inner := errors.New("boom")
	ee := &ExitError{Code: ExitDownloadError, Err: inner}
	if ee.Error() != "boom" {
		t.Errorf("Error() = %q", ee.Error())
	}
	empty := &ExitError{Code: ExitCLIError}
	if empty.Error() != "" {
		t.Errorf("empty Error() = %q", empty.Error())
	}
}

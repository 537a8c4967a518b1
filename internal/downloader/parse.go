package downloader

import (
	"strconv"
	"strings"
	"time"

	"github.com/ThanathonTH/godspeed-downloader/internal/progress"
)

// FinalExt is the extension of the finished audio file. Destination lines
// for any other extension name intermediate artifacts and are ignored.
const FinalExt = ".mp3"

const destinationMarker = "Destination:"

// ParseDestination extracts the output path from a fetch-tool line such as
// "[ExtractAudio] Destination: /music/Song Title.mp3". The marker may
// appear anywhere in the line; everything after it is the path.
func ParseDestination(line string) (string, bool) {
	idx := strings.Index(line, destinationMarker)
	if idx < 0 {
		return "", false
	}
	path := strings.TrimSpace(line[idx+len(destinationMarker):])
	if path == "" {
		return "", false
	}
	return path, true
}

// IsFinalOutput reports whether path names the finished audio file rather
// than an intermediate download artifact.
func IsFinalOutput(path string) bool {
	return strings.HasSuffix(strings.ToLower(path), FinalExt)
}

// ParseProgress parses fetch-tool progress lines like
// "[download]  45.2% of 10.00MiB at 1.50MiB/s ETA 00:04".
// Returns ok=false for lines carrying no progress information.
func ParseProgress(line, jobID string) (u progress.Update, ok bool) {
	line = strings.TrimSpace(line)
	if !strings.HasPrefix(line, "[download]") {
		return progress.Update{}, false
	}

	rest := strings.TrimSpace(strings.TrimPrefix(line, "[download]"))

	percent := -1.0
	if idx := strings.Index(rest, "%"); idx != -1 {
		if p, err := strconv.ParseFloat(strings.TrimSpace(rest[:idx]), 64); err == nil {
			percent = p
		}
	}
	if percent < 0 {
		// "[download] Destination: ..." and similar carry no percent.
		return progress.Update{}, false
	}

	var speed *string
	if idx := strings.Index(rest, " at "); idx != -1 {
		speedPart := strings.TrimSpace(rest[idx+4:])
		if idx2 := strings.IndexByte(speedPart, ' '); idx2 != -1 {
			speedPart = speedPart[:idx2]
		}
		if speedPart != "" {
			speed = &speedPart
		}
	}

	var eta *time.Duration
	if idx := strings.Index(rest, "ETA "); idx != -1 {
		etaStr := strings.TrimSpace(rest[idx+4:])
		if idx2 := strings.IndexByte(etaStr, ' '); idx2 != -1 {
			etaStr = etaStr[:idx2]
		}
		if d, err := parseETA(etaStr); err == nil {
			eta = &d
		}
	}

	return progress.Update{
		JobID:   jobID,
		Stage:   progress.StageDownloading,
		Percent: percent,
		Speed:   speed,
		ETA:     eta,
		Message: "Downloading",
	}, true
}

// parseETA parses duration strings like "00:04" or "01:23:45".
func parseETA(s string) (time.Duration, error) {
	parts := strings.Split(s, ":")
	switch len(parts) {
	case 2:
		m, err1 := strconv.Atoi(parts[0])
		sec, err2 := strconv.Atoi(parts[1])
		if err1 != nil || err2 != nil {
			return 0, errParse(err1, err2)
		}
		return time.Duration(m)*time.Minute + time.Duration(sec)*time.Second, nil
	case 3:
		h, err1 := strconv.Atoi(parts[0])
		m, err2 := strconv.Atoi(parts[1])
		sec, err3 := strconv.Atoi(parts[2])
		if err1 != nil || err2 != nil || err3 != nil {
			return 0, errParse(err1, err2, err3)
		}
		return time.Duration(h)*time.Hour + time.Duration(m)*time.Minute + time.Duration(sec)*time.Second, nil
	default:
		sec, err := strconv.Atoi(s)
		if err != nil {
			return 0, err
		}
		return time.Duration(sec) * time.Second, nil
	}
}

func errParse(errs ...error) error {
	for _, e := range errs {
		if e != nil {
			return e
		}
	}
	return nil
}

// Package logging builds the application logger. Log lines go to a file
// under the state dir so they never fight the TUI for the terminal;
// verbose runs additionally stream to stderr.
package logging

import (
	"io"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"github.com/ThanathonTH/godspeed-downloader/internal/dirs"
)

// New returns a configured logger. A missing or unwritable log file
// degrades to stderr (verbose) or silence rather than failing startup.
func New(verbose bool) *logrus.Logger {
	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})
	if verbose {
		log.SetLevel(logrus.DebugLevel)
	} else {
		log.SetLevel(logrus.InfoLevel)
	}

	var writers []io.Writer
	if f := openLogFile(); f != nil {
		writers = append(writers, f)
	}
	if verbose {
		writers = append(writers, os.Stderr)
	}
	switch len(writers) {
	case 0:
		log.SetOutput(io.Discard)
	case 1:
		log.SetOutput(writers[0])
	default:
		log.SetOutput(io.MultiWriter(writers...))
	}
	return log
}

func openLogFile() *os.File {
	path, err := dirs.LogFile()
	if err != nil {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil
	}
	return f
}

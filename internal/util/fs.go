package util

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

// EnsureDir creates the directory path if it does not exist.
func EnsureDir(path string) error {
	if path == "" {
		return errors.New("empty path")
	}
	return os.MkdirAll(path, 0o755)
}

// RemoveIfExists deletes the file if present.
func RemoveIfExists(path string) error {
	if _, err := os.Stat(path); err == nil {
		return os.Remove(path)
	} else if os.IsNotExist(err) {
		return nil
	} else {
		return err
	}
}

// MakeScratchDir creates a uniquely named directory under base using the
// given prefix. Callers own removal.
func MakeScratchDir(base, prefix string) (string, error) {
	if err := os.MkdirAll(base, 0o755); err != nil {
		return "", err
	}
	dir := filepath.Join(base, prefix+"-"+uuid.NewString())
	if err := os.Mkdir(dir, 0o755); err != nil {
		return "", err
	}
	return dir, nil
}

// RemoveStaleScratch removes leftover scratch directories with the given
// prefix under base, typically debris from an interrupted earlier run.
func RemoveStaleScratch(base, prefix string) {
	entries, err := os.ReadDir(base)
	if err != nil {
		return
	}
	for _, e := range entries {
		if e.IsDir() && len(e.Name()) > len(prefix) && e.Name()[:len(prefix)+1] == prefix+"-" {
			_ = os.RemoveAll(filepath.Join(base, e.Name()))
		}
	}
}

// FindFileByName walks root recursively and returns the full path of the
// first regular file whose base name matches name exactly.
func FindFileByName(root, name string) (string, bool) {
	var found string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if !d.IsDir() && d.Name() == name {
			found = path
			return fs.SkipAll
		}
		return nil
	})
	if err != nil || found == "" {
		return "", false
	}
	return found, true
}

// Pause between attempts when the destination is held open elsewhere.
const copyRetryDelay = 500 * time.Millisecond

// CopyFileRetry copies src over dst, preserving the source's permission
// bits. A sharing violation on the destination is retried up to
// maxAttempts times with a short pause; any other failure aborts
// immediately.
func CopyFileRetry(src, dst string, maxAttempts int) error {
	return copyFileRetry(src, dst, maxAttempts, copyRetryDelay)
}

func copyFileRetry(src, dst string, maxAttempts int, delay time.Duration) error {
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		lastErr = copyFile(src, dst)
		if lastErr == nil {
			return nil
		}
		if !IsSharingViolation(lastErr) {
			return lastErr
		}
		if attempt < maxAttempts {
			time.Sleep(delay)
		}
	}
	return fmt.Errorf("file still in use after %d attempts: %w", maxAttempts, lastErr)
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return err
	}
	mode := info.Mode().Perm()
	if mode == 0 {
		mode = 0o755
	}

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, mode)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

//go:build windows

package util

import (
	"errors"

	"golang.org/x/sys/windows"
)

// IsSharingViolation reports whether err means another process holds the
// file open in a way that blocks writing. Permission errors are not
// sharing violations; callers that care about them check separately.
func IsSharingViolation(err error) bool {
	if err == nil {
		return false
	}
	var errno windows.Errno
	if errors.As(err, &errno) {
		return errno == windows.ERROR_SHARING_VIOLATION || errno == windows.ERROR_LOCK_VIOLATION
	}
	return false
}

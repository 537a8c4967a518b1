//go:build !windows

package util

import (
	"errors"

	"golang.org/x/sys/unix"
)

// IsSharingViolation reports whether err means another process holds the
// file open in a way that blocks writing. On Unix that is a busy text
// file (a binary currently executing) or a busy resource. Permission
// errors are not sharing violations; callers that care about them check
// separately.
func IsSharingViolation(err error) bool {
	if err == nil {
		return false
	}
	return errors.Is(err, unix.ETXTBSY) || errors.Is(err, unix.EBUSY)
}

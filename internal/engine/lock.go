package engine

import (
	"errors"
	"os"

	"github.com/ThanathonTH/godspeed-downloader/internal/util"
)

// Locked reports whether the binary at path cannot currently be replaced.
// A missing file is not locked. The probe opens the file for writing
// without creating or truncating it; only a denial or a sharing violation
// counts as locked, so unrelated errors never block an update.
func Locked(path string) bool {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return false
	}
	f, err := os.OpenFile(path, os.O_WRONLY, 0)
	if err == nil {
		f.Close()
		return false
	}
	return errors.Is(err, os.ErrPermission) || util.IsSharingViolation(err)
}

package engine

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// FindBinary locates an engine binary. An explicit customPath wins; next
// the managed binaries dir is checked for the platform file name; finally
// PATH is searched under the tool's generic name.
func FindBinary(dir, platformName, customPath string) (string, error) {
	if customPath != "" {
		if _, err := os.Stat(customPath); err == nil {
			return customPath, nil
		}
		if p, err := exec.LookPath(customPath); err == nil {
			return p, nil
		}
		return "", fmt.Errorf("could not find binary at %q", customPath)
	}

	managed := filepath.Join(dir, platformName)
	if _, err := os.Stat(managed); err == nil {
		return managed, nil
	}

	generic := genericName(platformName)
	if p, err := exec.LookPath(generic); err == nil {
		return p, nil
	}
	return "", fmt.Errorf("could not find %s in %s or PATH; run \"godspeed engine update\" to install it", generic, dir)
}

// genericName strips the platform suffix from an installed binary name,
// e.g. "yt-dlp-x86_64-pc-windows-msvc.exe" becomes "yt-dlp".
func genericName(platformName string) string {
	n := strings.TrimSuffix(platformName, filepath.Ext(platformName))
	if i := strings.Index(n, "-x86_64"); i > 0 {
		n = n[:i]
	}
	return n
}

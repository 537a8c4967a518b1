package platform

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
)

type windowsOps struct{}

func (windowsOps) FetchToolName() string   { return "yt-dlp-x86_64-pc-windows-msvc.exe" }
func (windowsOps) AcceleratorName() string { return "aria2c-x86_64-pc-windows-msvc.exe" }
func (windowsOps) TranscoderName() string  { return "ffmpeg-x86_64-pc-windows-msvc.exe" }

func (windowsOps) Reveal(path string) error {
	if err := checkExists(path); err != nil {
		return err
	}
	// explorer exits non-zero even on success, so only the spawn matters.
	return exec.Command("explorer", "/select,", path).Start()
}

func (windowsOps) OpenPath(path string) error {
	return exec.Command("rundll32", "url.dll,FileProtocolHandler", path).Start()
}

type darwinOps struct{}

func (darwinOps) FetchToolName() string   { return "yt-dlp" }
func (darwinOps) AcceleratorName() string { return "aria2c" }
func (darwinOps) TranscoderName() string  { return "ffmpeg" }

func (darwinOps) Reveal(path string) error {
	if err := checkExists(path); err != nil {
		return err
	}
	return exec.Command("open", "-R", path).Run()
}

func (darwinOps) OpenPath(path string) error {
	return exec.Command("open", path).Run()
}

type linuxOps struct{}

func (linuxOps) FetchToolName() string   { return "yt-dlp" }
func (linuxOps) AcceleratorName() string { return "aria2c" }
func (linuxOps) TranscoderName() string  { return "ffmpeg" }

// Reveal falls back to opening the containing directory; selecting a file
// is not portable across Linux file managers.
func (linuxOps) Reveal(path string) error {
	if err := checkExists(path); err != nil {
		return err
	}
	return exec.Command("xdg-open", filepath.Dir(path)).Start()
}

func (linuxOps) OpenPath(path string) error {
	return exec.Command("xdg-open", path).Start()
}

func checkExists(path string) error {
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("cannot reveal %q: %w", path, err)
	}
	return nil
}

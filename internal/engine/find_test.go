package engine

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFindBinaryPrefersManagedDir(t *testing.T) {
	dir := t.TempDir()
	managed := filepath.Join(dir, "yt-dlp-x86_64-pc-windows-msvc.exe")
	if err := os.WriteFile(managed, []byte("bin"), 0o755); err != nil {
		t.Fatal(err)
	}

	got, err := FindBinary(dir, "yt-dlp-x86_64-pc-windows-msvc.exe", "")
	if err != nil {
		t.Fatalf("FindBinary: %v", err)
	}
	if got != managed {
		t.Errorf("FindBinary = %q, want %q", got, managed)
	}
}

func TestFindBinaryCustomPath(t *testing.T) {
	custom := filepath.Join(t.TempDir(), "my-yt-dlp")
	if err := os.WriteFile(custom, []byte("bin"), 0o755); err != nil {
		t.Fatal(err)
	}

	got, err := FindBinary(t.TempDir(), "yt-dlp", custom)
	if err != nil {
		t.Fatalf("FindBinary: %v", err)
	}
	if got != custom {
		t.Errorf("FindBinary = %q, want %q", got, custom)
	}
}

func TestFindBinaryMissing(t *testing.T) {
	_, err := FindBinary(t.TempDir(), "no-such-tool-anywhere", "")
	if err == nil {
		t.Fatal("expected error for missing binary")
	}
}

func TestFindBinaryBadCustomPath(t *testing.T) {
	_, err := FindBinary(t.TempDir(), "yt-dlp", filepath.Join(t.TempDir(), "absent"))
	if err == nil {
		t.Fatal("expected error for bad custom path")
	}
}

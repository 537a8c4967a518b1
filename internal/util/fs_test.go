package util

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"
)

func TestFindFileByName(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "bundle", "bin")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}
	want := filepath.Join(nested, "aria2c")
	if err := os.WriteFile(want, []byte("bin"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(root, "README.txt"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	got, ok := FindFileByName(root, "aria2c")
	if !ok || got != want {
		t.Fatalf("FindFileByName = %q, %v; want %q, true", got, ok, want)
	}

	if _, ok := FindFileByName(root, "ffmpeg"); ok {
		t.Fatal("FindFileByName found a file that does not exist")
	}
}

func TestFindFileByNameIgnoresDirectories(t *testing.T) {
	root := t.TempDir()
	if err := os.MkdirAll(filepath.Join(root, "yt-dlp"), 0o755); err != nil {
		t.Fatal(err)
	}
	if _, ok := FindFileByName(root, "yt-dlp"); ok {
		t.Fatal("FindFileByName matched a directory")
	}
}

func TestCopyFileRetryOverwritesDestination(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src")
	dst := filepath.Join(dir, "dst")
	if err := os.WriteFile(src, []byte("new contents"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(dst, []byte("old contents that are longer"), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := CopyFileRetry(src, dst, 3); err != nil {
		t.Fatalf("CopyFileRetry: %v", err)
	}
	got, err := os.ReadFile(dst)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "new contents" {
		t.Errorf("dst = %q, want %q", got, "new contents")
	}
}

func TestCopyFileRetryFailsFastOnMissingSource(t *testing.T) {
	dir := t.TempDir()
	err := copyFileRetry(filepath.Join(dir, "absent"), filepath.Join(dir, "dst"), 3, 0)
	if err == nil {
		t.Fatal("expected error for missing source")
	}
	if strings.Contains(err.Error(), "attempts") {
		t.Errorf("missing source was retried: %v", err)
	}
}

func TestCopyFileRetryFailsFastOnPermissionDenied(t *testing.T) {
	if runtime.GOOS != "windows" && os.Geteuid() == 0 {
		t.Skip("root bypasses file permissions")
	}
	dir := t.TempDir()
	src := filepath.Join(dir, "src")
	if err := os.WriteFile(src, []byte("bin"), 0o755); err != nil {
		t.Fatal(err)
	}
	sealed := filepath.Join(dir, "sealed")
	if err := os.Mkdir(sealed, 0o555); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chmod(sealed, 0o755) })

	start := time.Now()
	err := copyFileRetry(src, filepath.Join(sealed, "dst"), 3, 10*time.Second)
	if err == nil {
		t.Fatal("expected error for unwritable destination")
	}
	if strings.Contains(err.Error(), "attempts") {
		t.Errorf("permission denial was retried: %v", err)
	}
	if elapsed := time.Since(start); elapsed > 5*time.Second {
		t.Errorf("copy slept before giving up: %v", elapsed)
	}
}

func TestMakeScratchDirUnique(t *testing.T) {
	base := filepath.Join(t.TempDir(), "scratch")
	a, err := MakeScratchDir(base, "engine-update")
	if err != nil {
		t.Fatal(err)
	}
	b, err := MakeScratchDir(base, "engine-update")
	if err != nil {
		t.Fatal(err)
	}
	if a == b {
		t.Fatalf("scratch dirs collide: %q", a)
	}
}

func TestRemoveStaleScratch(t *testing.T) {
	base := filepath.Join(t.TempDir(), "scratch")
	stale, err := MakeScratchDir(base, "engine-update")
	if err != nil {
		t.Fatal(err)
	}
	other := filepath.Join(base, "keep-me")
	if err := os.Mkdir(other, 0o755); err != nil {
		t.Fatal(err)
	}

	RemoveStaleScratch(base, "engine-update")

	if _, err := os.Stat(stale); !os.IsNotExist(err) {
		t.Errorf("stale dir survived: %v", err)
	}
	if _, err := os.Stat(other); err != nil {
		t.Errorf("unrelated dir removed: %v", err)
	}
}

package archive

import (
	"archive/zip"
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

func writeZip(t *testing.T, entries map[string]string) string {
	t.Helper()
	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	for name, body := range entries {
		f, err := w.Create(name)
		if err != nil {
			t.Fatal(err)
		}
		if _, err := f.Write([]byte(body)); err != nil {
			t.Fatal(err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(t.TempDir(), "pkg.zip")
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestExtractZip(t *testing.T) {
	zipPath := writeZip(t, map[string]string{
		"yt-dlp":         "fetch tool",
		"tools/aria2c":   "accelerator",
		"tools/ffmpeg":   "transcoder",
		"docs/README.md": "docs",
	})
	dest := t.TempDir()

	if err := ExtractZip(zipPath, dest); err != nil {
		t.Fatalf("ExtractZip: %v", err)
	}

	for rel, want := range map[string]string{
		"yt-dlp":       "fetch tool",
		"tools/aria2c": "accelerator",
		"tools/ffmpeg": "transcoder",
	} {
		got, err := os.ReadFile(filepath.Join(dest, filepath.FromSlash(rel)))
		if err != nil {
			t.Fatalf("read %s: %v", rel, err)
		}
		if string(got) != want {
			t.Errorf("%s = %q, want %q", rel, got, want)
		}
	}
}

func TestExtractZipSkipsTraversal(t *testing.T) {
	zipPath := writeZip(t, map[string]string{
		"../escape.txt": "outside",
		"inside.txt":    "inside",
	})
	parent := t.TempDir()
	dest := filepath.Join(parent, "out")

	if err := ExtractZip(zipPath, dest); err != nil {
		t.Fatalf("ExtractZip: %v", err)
	}

	if _, err := os.Stat(filepath.Join(parent, "escape.txt")); !os.IsNotExist(err) {
		t.Error("traversal entry escaped the extraction root")
	}
	if _, err := os.Stat(filepath.Join(dest, "inside.txt")); err != nil {
		t.Errorf("legitimate entry missing: %v", err)
	}
}

func TestExtractZipRejectsGarbage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "not-a-zip")
	if err := os.WriteFile(path, []byte("plain text"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := ExtractZip(path, t.TempDir()); err == nil {
		t.Fatal("expected error for non-zip input")
	}
}

package engine

import (
	"os"
	"path/filepath"
	"testing"
)

func noEnv(string) string { return "" }

func TestResolveInstalledLayout(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "Program Files", "Godspeed")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	if got := resolveFrom(dir, noEnv); got != dir {
		t.Errorf("resolveFrom = %q, want exe dir %q", got, dir)
	}
}

func TestResolveBuildTreeFindsEngineDir(t *testing.T) {
	root := t.TempDir()
	exeDir := filepath.Join(root, "target", "debug")
	engineDir := filepath.Join(root, "engine")
	for _, d := range []string{exeDir, engineDir} {
		if err := os.MkdirAll(d, 0o755); err != nil {
			t.Fatal(err)
		}
	}
	if got := resolveFrom(exeDir, noEnv); got != engineDir {
		t.Errorf("resolveFrom = %q, want %q", got, engineDir)
	}
}

func TestResolveBuildTreeEnvFallback(t *testing.T) {
	root := t.TempDir()
	exeDir := filepath.Join(root, "build", "release")
	if err := os.MkdirAll(exeDir, 0o755); err != nil {
		t.Fatal(err)
	}
	getenv := func(key string) string {
		if key == ProjectRootEnv {
			return "/srv/godspeed"
		}
		return ""
	}
	want := filepath.Join("/srv/godspeed", devDirName)
	if got := resolveFrom(exeDir, getenv); got != want {
		t.Errorf("resolveFrom = %q, want %q", got, want)
	}
}

func TestResolveBuildTreeNoMatchKeepsExeDir(t *testing.T) {
	root := t.TempDir()
	exeDir := filepath.Join(root, "target", "release")
	if err := os.MkdirAll(exeDir, 0o755); err != nil {
		t.Fatal(err)
	}
	if got := resolveFrom(exeDir, noEnv); got != exeDir {
		t.Errorf("resolveFrom = %q, want %q", got, exeDir)
	}
}

func TestInBuildTree(t *testing.T) {
	tests := []struct {
		dir  string
		want bool
	}{
		{filepath.FromSlash("/home/dev/proj/target/debug"), true},
		{filepath.FromSlash("/home/dev/proj/build/release/bin"), true},
		{filepath.FromSlash("/usr/local/bin"), false},
		{filepath.FromSlash("/home/dev/target-practice"), false},
	}
	for _, tt := range tests {
		if got := inBuildTree(tt.dir); got != tt.want {
			t.Errorf("inBuildTree(%q) = %v, want %v", tt.dir, got, tt.want)
		}
	}
}

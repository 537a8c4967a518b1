// Package engine manages the external media binaries the app depends on:
// locating them, probing whether they are replaceable, and installing
// updates from a downloaded package.
package engine

import (
	"os"
	"path/filepath"
	"strings"
)

// ProjectRootEnv overrides the binaries directory during development when
// the build-tree heuristic cannot find it.
const ProjectRootEnv = "GODSPEED_PROJECT_ROOT"

// devDirName is the directory dev checkouts keep the engine binaries in.
const devDirName = "engine"

// BinariesDir resolves the directory holding the engine binaries. Installed
// builds keep them next to the executable. Dev builds run from a build
// output tree, so the resolver walks up from there looking for the
// checkout's engine directory, then falls back to ProjectRootEnv.
func BinariesDir() string {
	exe, err := os.Executable()
	if err != nil {
		wd, _ := os.Getwd()
		return wd
	}
	return resolveFrom(filepath.Dir(exe), os.Getenv)
}

func resolveFrom(exeDir string, getenv func(string) string) string {
	if !inBuildTree(exeDir) {
		return exeDir
	}
	dir := exeDir
	for i := 0; i < 5; i++ {
		candidate := filepath.Join(dir, devDirName)
		if fi, err := os.Stat(candidate); err == nil && fi.IsDir() {
			return candidate
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	if root := getenv(ProjectRootEnv); root != "" {
		return filepath.Join(root, devDirName)
	}
	return exeDir
}

// inBuildTree reports whether dir looks like compiler output rather than
// an installed location.
func inBuildTree(dir string) bool {
	norm := filepath.ToSlash(dir)
	for _, marker := range []string{"/target/debug", "/target/release", "/build/debug", "/build/release"} {
		if strings.Contains(norm, marker) {
			return true
		}
	}
	return false
}

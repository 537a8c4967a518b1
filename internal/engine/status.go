package engine

import (
	"context"
	"os"
	"path/filepath"
)

// BinaryStatus describes one managed binary for diagnostics.
type BinaryStatus struct {
	Name    string
	Path    string
	Present bool
	Size    int64
	Locked  bool
	Holders []string
}

// Status inspects each managed binary in dir.
func Status(ctx context.Context, dir string, binaries []string) []BinaryStatus {
	out := make([]BinaryStatus, 0, len(binaries))
	for _, name := range binaries {
		path := filepath.Join(dir, name)
		st := BinaryStatus{Name: name, Path: path}
		if info, err := os.Stat(path); err == nil {
			st.Present = true
			st.Size = info.Size()
			st.Locked = Locked(path)
			if st.Locked {
				st.Holders = RunningHolders(ctx, name)
			}
		}
		out = append(out, st)
	}
	return out
}

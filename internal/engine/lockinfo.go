package engine

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/shirou/gopsutil/v4/process"
)

// RunningHolders lists running processes whose executable name matches the
// given engine binary. A live yt-dlp or ffmpeg process is the usual reason
// a binary is locked, so this gives actionable diagnostics.
func RunningHolders(ctx context.Context, binaryName string) []string {
	procs, err := process.ProcessesWithContext(ctx)
	if err != nil {
		return nil
	}
	base := strings.ToLower(strings.TrimSuffix(binaryName, filepath.Ext(binaryName)))
	// Installed names carry a platform suffix; match on the tool name.
	if i := strings.Index(base, "-x86_64"); i > 0 {
		base = base[:i]
	}

	var holders []string
	for _, p := range procs {
		name, err := p.NameWithContext(ctx)
		if err != nil {
			continue
		}
		n := strings.ToLower(strings.TrimSuffix(name, filepath.Ext(name)))
		if n == base || strings.HasPrefix(n, base+"-") {
			holders = append(holders, fmt.Sprintf("%s (pid %d)", name, p.Pid))
		}
	}
	return holders
}

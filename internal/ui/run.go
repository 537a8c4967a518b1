package ui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ThanathonTH/godspeed-downloader/internal/model"
	"github.com/ThanathonTH/godspeed-downloader/internal/notify"
)

// Run launches the TUI and supervises the given URLs with the resolved
// engine binaries.
func Run(ctx context.Context, urls []string, opts model.CLIOptions, fetchTool, accelerator string) error {
	m := NewModel(ctx, urls, opts, fetchTool, accelerator)
	prog := tea.NewProgram(m, tea.WithContext(ctx))
	final, err := prog.Run()
	if err != nil {
		return err
	}
	if fm, ok := final.(Model); ok {
		var failed []string
		for _, id := range fm.jobOrder {
			js := fm.jobs[id]
			if js == nil {
				continue
			}
			if js.err != nil {
				if js.url != "" {
					failed = append(failed, fmt.Sprintf("- %s: %s", js.url, js.err))
				} else {
					failed = append(failed, "- "+js.err.Error())
				}
				continue
			}
			if js.done && js.outputPath != "" {
				notify.DownloadComplete(js.outputPath)
			}
		}
		if len(failed) > 0 {
			return fmt.Errorf("%d job(s) failed:\n%s", len(failed), strings.Join(failed, "\n"))
		}
	}
	return nil
}

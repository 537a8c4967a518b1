package ui

import (
	"fmt"
	"strings"

	"github.com/ThanathonTH/godspeed-downloader/internal/progress"
)

func (m Model) viewHeader() string {
	done, total := 0, len(m.jobOrder)
	for _, id := range m.jobOrder {
		if m.jobs[id].done {
			done++
		}
	}
	title := m.styles.Title.Render("Godspeed — link to MP3")
	sub := m.styles.Subtitle.Render(fmt.Sprintf("Jobs: %d/%d done • l: logs • q: quit", done, total))
	return title + "\n" + sub
}

func (m Model) viewJobs() string {
	var b strings.Builder
	for _, id := range m.jobOrder {
		js := m.jobs[id]
		b.WriteString(m.viewJob(js))
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) viewJob(js *jobState) string {
	stageStyle := m.styles.JobInfo
	switch js.stage {
	case progress.StageStarting:
		stageStyle = m.styles.StageStart
	case progress.StageDownloading:
		stageStyle = m.styles.StageDL
	case progress.StageExtracting:
		stageStyle = m.styles.StageExtract
	case progress.StageCompleted:
		stageStyle = m.styles.Success
	case progress.StageError:
		stageStyle = m.styles.Error
	}

	left := m.styles.JobTitle.Render(truncate(js.url, 48))
	stage := stageStyle.Render(string(js.stage))

	var right string
	if js.percent >= 0 && js.percent <= 100 {
		right = fmt.Sprintf("%s %5.1f%%", js.bar.ViewAs(js.percent/100.0), js.percent)
		if js.speed != "" && !js.done {
			right += "  " + m.styles.Faint.Render(js.speed)
		}
	} else if js.done && js.err == nil {
		right = m.styles.Success.Render("✓ done")
	} else if js.err != nil {
		right = m.styles.Error.Render("✗ error")
	} else {
		right = m.styles.Spinner.Render(js.spinner.View()) + " " + m.styles.Faint.Render("waiting")
	}

	line1 := fmt.Sprintf("%s  %s", left, stage)
	line2 := m.styles.JobInfo.Render(js.status)
	body := line1 + "\n" + right + "\n" + line2
	if m.showLogs {
		if tail := m.viewLogTail(js); tail != "" {
			body += "\n" + tail
		}
	}
	return m.styles.Box.Render(body)
}

// viewLogTail shows the last few fetch-tool lines for a job.
func (m Model) viewLogTail(js *jobState) string {
	const tail = 4
	if len(js.logsRing) == 0 {
		return ""
	}
	start := len(js.logsRing) - tail
	if start < 0 {
		start = 0
	}
	var b strings.Builder
	for _, line := range js.logsRing[start:] {
		b.WriteString(m.styles.Faint.Render("  " + truncate(line, 76)))
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func (m Model) viewSummary() string {
	var completed []string
	for _, id := range m.jobOrder {
		js := m.jobs[id]
		if js.done && js.err == nil && js.outputPath != "" {
			completed = append(completed, js.outputPath)
		}
	}

	if len(completed) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString(m.styles.Subtitle.Render("✓ Saved Files:"))
	b.WriteString("\n")
	for _, path := range completed {
		b.WriteString(m.styles.Success.Render("  • " + path))
		b.WriteString("\n")
	}
	return b.String()
}

func truncate(s string, n int) string {
	if n <= 0 {
		return s
	}
	rs := []rune(s)
	if len(rs) <= n {
		return s
	}
	return string(rs[:n-1]) + "…"
}

package ui

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ThanathonTH/godspeed-downloader/internal/downloader"
	"github.com/ThanathonTH/godspeed-downloader/internal/model"
	"github.com/ThanathonTH/godspeed-downloader/internal/progress"
	"github.com/ThanathonTH/godspeed-downloader/internal/util/format"
)

type Model struct {
	ctx    context.Context
	cancel context.CancelFunc

	// Resolved engine binaries.
	fetchTool   string
	accelerator string

	// Jobs
	urls     []string
	opts     model.CLIOptions
	jobOrder []string
	jobs     map[string]*jobState
	workers  int
	running  int
	next     int // next index in urls to start

	// UI
	width, height int
	styles        Styles
	showLogs      bool

	// Internal event channel used by reporter to feed tea messages
	eventCh chan tea.Msg
}

func NewModel(ctx context.Context, urls []string, opts model.CLIOptions, fetchTool, accelerator string) Model {
	c, cancel := context.WithCancel(ctx)
	sty := defaultStyles()

	jobs := make(map[string]*jobState, len(urls))
	order := make([]string, 0, len(urls))
	for i, u := range urls {
		id := "job-" + strconv.Itoa(i)
		js := newJobState(id, u, sty)
		jobs[id] = &js
		order = append(order, id)
	}

	workers := opts.Jobs
	if workers <= 0 {
		workers = 2
	}

	return Model{
		ctx:         c,
		cancel:      cancel,
		fetchTool:   fetchTool,
		accelerator: accelerator,
		urls:        urls,
		opts:        opts,
		jobs:        jobs,
		jobOrder:    order,
		workers:     workers,
		styles:      sty,
		eventCh:     make(chan tea.Msg, 256),
	}
}

func (m Model) Init() tea.Cmd {
	var cmds []tea.Cmd
	for _, id := range m.jobOrder {
		sp := m.jobs[id].spinner
		cmds = append(cmds, sp.Tick)
	}
	// Listen for reporter events
	cmds = append(cmds, m.listenEventsCmd())
	// Kick off the first batch of downloads via Update so the counter
	// changes land on the live model.
	cmds = append(cmds, func() tea.Msg { return startMsg{} })
	return tea.Batch(cmds...)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			m.cancel()
			return m, tea.Quit
		case "l":
			m.showLogs = !m.showLogs
		}
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height

	case startMsg:
		return m.startJobs()

	case jobUpdateMsg:
		u := msg.U
		if js, ok := m.jobs[u.JobID]; ok {
			js.stage = u.Stage
			js.percent = u.Percent
			js.status = u.Message
			if u.Speed != nil {
				js.speed = *u.Speed
			}
		}
	case jobLogMsg:
		l := msg.L
		if js, ok := m.jobs[l.JobID]; ok {
			line := strings.TrimRight(l.Line, "\r\n")
			if len(js.logsRing) > 200 {
				js.logsRing = js.logsRing[1:]
			}
			js.logsRing = append(js.logsRing, line)
		}
	case jobResultMsg:
		r := msg.R
		if js, ok := m.jobs[r.JobID]; ok && !js.done {
			js.done = true
			js.err = r.Err
			if r.Err == nil {
				js.stage = progress.StageCompleted
				js.percent = 100
				js.outputPath = r.OutputPath
				if r.OutputPath != "" {
					if info, err := os.Stat(r.OutputPath); err == nil {
						js.bytes = info.Size()
					}
					name := filepath.Base(r.OutputPath)
					if js.bytes > 0 {
						js.status = fmt.Sprintf("Saved: %s (%s)", name, format.HumanizeBytes(js.bytes))
					} else {
						js.status = "Saved: " + name
					}
				} else {
					js.status = "Completed"
				}
			} else {
				js.stage = progress.StageError
				js.status = r.Err.Error()
				js.percent = -1
			}
			m.running--
			return m.startJobs()
		}
	case allDoneMsg:
		return m, tea.Quit
	}

	// Update per-job components (spinner)
	var cmds []tea.Cmd
	for _, id := range m.jobOrder {
		js := m.jobs[id]
		var c tea.Cmd
		js.spinner, c = js.spinner.Update(msg)
		if c != nil {
			cmds = append(cmds, c)
		}
	}
	// Keep listening for events
	cmds = append(cmds, m.listenEventsCmd())
	return m, tea.Batch(cmds...)
}

func (m Model) View() string {
	summary := m.viewSummary()
	if summary != "" {
		return m.viewHeader() + "\n\n" + m.viewJobs() + "\n" + summary
	}
	return m.viewHeader() + "\n\n" + m.viewJobs()
}

func (m Model) listenEventsCmd() tea.Cmd {
	return func() tea.Msg {
		select {
		case <-m.ctx.Done():
			return allDoneMsg{}
		case msg := <-m.eventCh:
			return msg
		}
	}
}

// startJobs launches queued downloads up to the worker limit and returns
// the model with updated counters.
func (m Model) startJobs() (Model, tea.Cmd) {
	select {
	case <-m.ctx.Done():
		return m, func() tea.Msg { return allDoneMsg{} }
	default:
	}

	for m.running < m.workers && m.next < len(m.urls) {
		idx := m.next
		jobID := m.jobOrder[idx]
		url := m.urls[idx]
		m.next++
		m.running++
		if js := m.jobs[jobID]; js != nil {
			js.started = true
			js.status = "Starting"
			js.stage = progress.StageStarting
		}
		go m.runJob(jobID, url)
	}

	if m.next >= len(m.urls) && m.running == 0 {
		return m, func() tea.Msg { return allDoneMsg{} }
	}
	// Re-arm the event listener since this path returns early.
	return m, m.listenEventsCmd()
}

// runJob supervises one download. The supervisor emits every event through
// the reporter, including the final Result, so nothing else is needed here.
func (m Model) runJob(jobID, url string) {
	rep := teaReporter{ch: m.eventCh}
	_, _ = downloader.Run(m.ctx, url, downloader.Options{
		FetchTool:   m.fetchTool,
		Accelerator: m.accelerator,
		OutDir:      m.opts.OutDir,
		Quality:     m.opts.Quality,
		JobID:       jobID,
		Reporter:    rep,
	})
}

type teaReporter struct {
	ch chan tea.Msg
}

func (r teaReporter) Update(u progress.Update) {
	// Block on completion messages to ensure they're delivered
	if u.Stage == progress.StageCompleted || u.Stage == progress.StageError {
		r.ch <- jobUpdateMsg{U: u}
		return
	}
	select {
	case r.ch <- jobUpdateMsg{U: u}:
	default:
	}
}

func (r teaReporter) Log(l progress.Log) {
	select {
	case r.ch <- jobLogMsg{L: l}:
	default:
	}
}

func (r teaReporter) Result(res progress.Result) {
	// Always block on Result messages - they're critical
	r.ch <- jobResultMsg{R: res}
}

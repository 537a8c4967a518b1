package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"golang.org/x/term"

	"github.com/ThanathonTH/godspeed-downloader/internal/downloader"
	"github.com/ThanathonTH/godspeed-downloader/internal/engine"
	"github.com/ThanathonTH/godspeed-downloader/internal/logging"
	"github.com/ThanathonTH/godspeed-downloader/internal/model"
	"github.com/ThanathonTH/godspeed-downloader/internal/notify"
	"github.com/ThanathonTH/godspeed-downloader/internal/platform"
	"github.com/ThanathonTH/godspeed-downloader/internal/progress"
	"github.com/ThanathonTH/godspeed-downloader/internal/ui"
	"github.com/ThanathonTH/godspeed-downloader/internal/util"
)

func newGetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "get [urls...]",
		Short:         "Download one or more links as MP3",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.MinimumNArgs(1),
		RunE:          runGet,
	}
	bindGetFlags(cmd.Flags())
	return cmd
}

func bindGetFlags(fs *pflag.FlagSet) {
	fs.StringP("quality", "q", string(model.Quality320), "Audio quality: 128k, 192k, 256k, 320k")
	fs.Bool("no-ui", false, "Disable TUI; use plain textual output")
	fs.Bool("json", false, "Emit progress as JSON events on stdout (implies --no-ui)")
	fs.Bool("no-notify", false, "Suppress desktop notifications")
	fs.Bool("reveal", false, "Reveal the finished file in the file browser")
}

func runGet(cmd *cobra.Command, args []string) error {
	opts, err := assembleGetOptions(cmd)
	if err != nil {
		return &ExitError{Code: ExitCLIError, Err: err}
	}

	urls := make([]string, 0, len(args))
	for _, raw := range args {
		u, err := util.NormalizeURL(raw)
		if err != nil {
			return &ExitError{Code: ExitCLIError, Err: err}
		}
		urls = append(urls, u)
	}

	if err := ensureDir(opts.OutDir); err != nil {
		return &ExitError{Code: ExitCLIError, Err: fmt.Errorf("failed to create output dir: %v", err)}
	}

	ops := platform.New()
	engineDir := opts.EngineDir
	if engineDir == "" {
		engineDir = engine.BinariesDir()
	}
	fetchTool, err := engine.FindBinary(engineDir, ops.FetchToolName(), "")
	if err != nil {
		return &ExitError{Code: ExitMissingDep, Err: err}
	}
	// The accelerator is optional; the fetch tool resolves the plain name
	// from PATH if the managed copy is missing.
	accelerator, aerr := engine.FindBinary(engineDir, ops.AcceleratorName(), "")
	if aerr != nil {
		accelerator = ""
	}

	if noNotify, _ := cmd.Flags().GetBool("no-notify"); noNotify {
		notify.Enabled = false
	}
	revealDone, _ := cmd.Flags().GetBool("reveal")

	jsonEvents, _ := cmd.Flags().GetBool("json")
	if jsonEvents {
		opts.NoUI = true
	}
	if !opts.NoUI && isTerminal() {
		return runGetTUI(cmd, urls, opts, fetchTool, accelerator)
	}
	return runGetPlain(cmd, urls, opts, fetchTool, accelerator, ops, revealDone, jsonEvents)
}

func assembleGetOptions(cmd *cobra.Command) (model.CLIOptions, error) {
	quality, _ := cmd.Flags().GetString("quality")
	quality = strings.ToLower(quality)
	q := model.AudioQuality(quality)
	if !q.Valid() {
		return model.CLIOptions{}, fmt.Errorf("invalid --quality: %q (valid: 128k|192k|256k|320k)", quality)
	}
	noUI, _ := cmd.Flags().GetBool("no-ui")

	jobs := getPersistentInt(cmd, "jobs", 2)
	if jobs <= 0 {
		jobs = 2
	}

	return model.CLIOptions{
		OutDir:    resolveOutDir(cmd),
		Quality:   q,
		EngineDir: getPersistentString(cmd, "engine-dir", ""),
		Verbose:   getPersistentBool(cmd, "verbose", false),
		NoUI:      noUI,
		Jobs:      jobs,
	}, nil
}

func runGetTUI(cmd *cobra.Command, urls []string, opts model.CLIOptions, fetchTool, accelerator string) error {
	if err := ui.Run(cmd.Context(), urls, opts, fetchTool, accelerator); err != nil {
		return &ExitError{Code: ExitCLIError, Err: err}
	}
	return nil
}

func runGetPlain(cmd *cobra.Command, urls []string, opts model.CLIOptions, fetchTool, accelerator string, ops platform.Ops, revealDone, jsonEvents bool) error {
	log := logging.New(opts.Verbose)
	var failed int
	for _, rawURL := range urls {
		jobID := uuid.NewString()
		var rep capturingReporter = &plainReporter{verbose: opts.Verbose}
		if jsonEvents {
			rep = &jsonReporter{out: os.Stdout}
		}

		saved, err := downloader.Run(cmd.Context(), rawURL, downloader.Options{
			FetchTool:   fetchTool,
			Accelerator: accelerator,
			OutDir:      opts.OutDir,
			Quality:     opts.Quality,
			JobID:       jobID,
			Reporter:    rep,
			Runner:      util.NewDefaultRunner(),
		})
		// A tool that ran and exited non-zero reports through the Result,
		// not the returned error.
		if err == nil {
			err = rep.ResultErr()
		}
		if err != nil {
			failed++
			log.WithField("url", rawURL).WithError(err).Error("download failed")
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			notify.DownloadFailed(err.Error())
			continue
		}
		log.WithField("url", rawURL).WithField("output", saved).Info("download finished")
		if !jsonEvents {
			fmt.Printf("Saved: %s\n", saved)
		}
		notify.DownloadComplete(rep.OutputPath())
		if revealDone && rep.OutputPath() != "" {
			if err := ops.Reveal(rep.OutputPath()); err != nil {
				fmt.Fprintf(os.Stderr, "warning: could not reveal file: %v\n", err)
			}
		}
	}
	if failed > 0 {
		return &ExitError{Code: ExitDownloadError, Err: fmt.Errorf("%d of %d downloads failed", failed, len(urls))}
	}
	return nil
}

func isTerminal() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// capturingReporter is a progress sink that remembers how the job ended.
type capturingReporter interface {
	progress.Reporter
	OutputPath() string
	ResultErr() error
}

// plainReporter prints progress to the terminal for non-TUI runs.
type plainReporter struct {
	verbose    bool
	outputPath string
	resultErr  error
	lastWhole  int
}

func (r *plainReporter) Update(u progress.Update) {
	switch {
	case u.Message == "Download completed!":
		fmt.Println(u.Message)
	case strings.HasPrefix(u.Message, "[ERROR]"):
		fmt.Fprintln(os.Stderr, u.Message)
	case u.Percent >= 0:
		// One line per whole percent keeps plain output readable.
		if whole := int(u.Percent); whole > r.lastWhole {
			r.lastWhole = whole
			if u.Speed != nil {
				fmt.Printf("%3d%%  %s\n", whole, *u.Speed)
			} else {
				fmt.Printf("%3d%%\n", whole)
			}
		}
	}
}

func (r *plainReporter) Log(l progress.Log) {
	if r.verbose {
		fmt.Fprintln(os.Stderr, l.Line)
	}
}

func (r *plainReporter) Result(res progress.Result) {
	r.resultErr = res.Err
	if res.OutputPath != "" {
		r.outputPath = res.OutputPath
	}
}

func (r *plainReporter) OutputPath() string { return r.outputPath }
func (r *plainReporter) ResultErr() error   { return r.resultErr }

// jsonReporter writes one JSON event per line so an embedding shell can
// follow along.
type jsonReporter struct {
	out        io.Writer
	outputPath string
	resultErr  error
}

type jsonEvent struct {
	Event   string  `json:"event"`
	JobID   string  `json:"job_id,omitempty"`
	Stage   string  `json:"stage,omitempty"`
	Percent float64 `json:"percent,omitempty"`
	Speed   string  `json:"speed,omitempty"`
	Message string  `json:"message,omitempty"`
	Line    string  `json:"line,omitempty"`
	Output  string  `json:"output,omitempty"`
}

func (r *jsonReporter) Update(u progress.Update) {
	ev := jsonEvent{
		Event:   progress.EventDownloadProgress,
		JobID:   u.JobID,
		Stage:   string(u.Stage),
		Percent: u.Percent,
		Message: u.Message,
	}
	if u.Speed != nil {
		ev.Speed = *u.Speed
	}
	r.emit(ev)
}

func (r *jsonReporter) Log(l progress.Log) {
	r.emit(jsonEvent{Event: progress.EventDownloadProgress, JobID: l.JobID, Line: l.Line})
}

func (r *jsonReporter) Result(res progress.Result) {
	r.resultErr = res.Err
	if res.OutputPath != "" {
		r.outputPath = res.OutputPath
	}
	// Failures already went out as an [ERROR] progress line; the complete
	// event only ever announces a finished file.
	if res.Err == nil && res.OutputPath != "" {
		r.emit(jsonEvent{Event: progress.EventDownloadComplete, JobID: res.JobID, Output: res.OutputPath})
	}
}

func (r *jsonReporter) OutputPath() string { return r.outputPath }
func (r *jsonReporter) ResultErr() error   { return r.resultErr }

func (r *jsonReporter) emit(ev jsonEvent) {
	b, err := json.Marshal(ev)
	if err != nil {
		return
	}
	b = append(b, '\n')
	_, _ = r.out.Write(b)
}

package engine

import (
	"context"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/ThanathonTH/godspeed-downloader/internal/apperr"
	"github.com/ThanathonTH/godspeed-downloader/internal/archive"
	"github.com/ThanathonTH/godspeed-downloader/internal/dirs"
	"github.com/ThanathonTH/godspeed-downloader/internal/model"
	"github.com/ThanathonTH/godspeed-downloader/internal/util"
)

const (
	// DownloadTimeout bounds the whole package download.
	DownloadTimeout = 10 * time.Minute

	scratchPrefix = "engine-update"
	packageName   = "engine.zip"

	// copyAttempts bounds the in-place swap of a binary Windows may still
	// be releasing.
	copyAttempts = 3
)

// Updater downloads an engine package and swaps the managed binaries in
// place. Zero-value fields fall back to production defaults, so tests can
// point every side effect somewhere else.
type Updater struct {
	Binaries    []string     // Platform file names to install.
	Dir         string       // Target directory; empty resolves via BinariesDir.
	ScratchBase string       // Scratch parent; empty resolves via dirs.ScratchBaseDir.
	Client      *http.Client // HTTP client; nil gets one with DownloadTimeout.
	Log         logrus.FieldLogger
}

// Update runs the full pipeline: resolve the target dir, refuse if any
// binary is in use, download and extract the package, then copy each
// bundled binary over its installed counterpart. Scratch space is removed
// on every path out.
func (u *Updater) Update(ctx context.Context, rawURL string) (model.UpdateReport, error) {
	log := u.log()
	if strings.TrimSpace(rawURL) == "" {
		return model.UpdateReport{}, apperr.New(apperr.Logic, "no engine update URL provided")
	}
	if len(u.Binaries) == 0 {
		return model.UpdateReport{}, apperr.New(apperr.Logic, "no engine binaries configured")
	}

	dir := u.Dir
	if dir == "" {
		dir = BinariesDir()
	}
	report := model.UpdateReport{Dir: dir}

	if err := util.EnsureDir(dir); err != nil {
		return report, apperr.Wrap(apperr.IO, "create binaries directory", err)
	}

	// Refuse before touching the network so a busy engine never costs a
	// download.
	for _, name := range u.Binaries {
		if Locked(filepath.Join(dir, name)) {
			msg := "cannot update: " + name + " is currently in use"
			if holders := RunningHolders(ctx, name); len(holders) > 0 {
				msg += " by " + strings.Join(holders, ", ")
			}
			return report, apperr.New(apperr.Logic, msg)
		}
	}

	scratchBase := u.ScratchBase
	if scratchBase == "" {
		sb, err := dirs.ScratchBaseDir()
		if err != nil {
			return report, apperr.Wrap(apperr.IO, "resolve scratch directory", err)
		}
		scratchBase = sb
	}
	util.RemoveStaleScratch(scratchBase, scratchPrefix)

	scratch, err := util.MakeScratchDir(scratchBase, scratchPrefix)
	if err != nil {
		return report, apperr.Wrap(apperr.IO, "create scratch directory", err)
	}
	defer os.RemoveAll(scratch)

	zipPath := filepath.Join(scratch, packageName)
	log.WithField("url", rawURL).Info("downloading engine package")
	if err := u.download(ctx, rawURL, zipPath); err != nil {
		return report, err
	}

	extractDir := filepath.Join(scratch, "extracted")
	if err := archive.ExtractZip(zipPath, extractDir); err != nil {
		return report, apperr.Wrap(apperr.Archive, "extract engine package", err)
	}

	for _, name := range u.Binaries {
		src, ok := util.FindFileByName(extractDir, name)
		if !ok {
			log.WithField("binary", name).Debug("not present in package, skipping")
			continue
		}
		if err := util.CopyFileRetry(src, filepath.Join(dir, name), copyAttempts); err != nil {
			log.WithField("binary", name).WithError(err).Warn("install failed")
			report.Failures = append(report.Failures, model.BinaryFailure{Name: name, Reason: err.Error()})
			continue
		}
		log.WithField("binary", name).Info("installed")
		report.Replaced = append(report.Replaced, name)
	}

	if len(report.Replaced) == 0 && len(report.Failures) == 0 {
		return report, apperr.New(apperr.Logic, "no engine binaries found in the update package")
	}
	if len(report.Failures) > 0 {
		names := make([]string, 0, len(report.Failures))
		for _, f := range report.Failures {
			names = append(names, f.Name)
		}
		return report, apperr.Newf(apperr.IO, "installed %d of %d binaries; failed: %s",
			len(report.Replaced), len(report.Replaced)+len(report.Failures), strings.Join(names, ", "))
	}
	return report, nil
}

func (u *Updater) download(ctx context.Context, rawURL, dest string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return apperr.Wrap(apperr.Logic, "build download request", err)
	}

	client := u.Client
	if client == nil {
		client = &http.Client{Timeout: DownloadTimeout}
	}
	resp, err := client.Do(req)
	if err != nil {
		return apperr.Wrap(apperr.Network, "download engine package", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return apperr.Newf(apperr.Network, "engine package download failed with status: %s", resp.Status)
	}

	out, err := os.Create(dest)
	if err != nil {
		return apperr.Wrap(apperr.IO, "create package file", err)
	}
	if _, err := io.Copy(out, resp.Body); err != nil {
		out.Close()
		return apperr.Wrap(apperr.Network, "read engine package", err)
	}
	if err := out.Close(); err != nil {
		return apperr.Wrap(apperr.IO, "write package file", err)
	}
	return nil
}

func (u *Updater) log() logrus.FieldLogger {
	if u.Log != nil {
		return u.Log
	}
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

// Package appupdate checks GitHub releases for a newer application build
// and fetches its installer.
package appupdate

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ThanathonTH/godspeed-downloader/internal/apperr"
	"github.com/ThanathonTH/godspeed-downloader/internal/model"
)

const (
	defaultReleaseURL = "https://api.github.com/repos/ThanathonTH/godspeed-downloader/releases/latest"
	userAgent         = "godspeed-app"
	installerName     = "Godspeed_Update.msi"

	checkTimeout    = 30 * time.Second
	installTimeout  = 10 * time.Minute
	installerSuffix = ".msi"
)

type release struct {
	TagName string  `json:"tag_name"`
	Assets  []asset `json:"assets"`
}

type asset struct {
	Name               string `json:"name"`
	BrowserDownloadURL string `json:"browser_download_url"`
}

// Client talks to the release feed. The zero value uses production
// endpoints and timeouts.
type Client struct {
	HTTP       *http.Client
	ReleaseURL string
	// DownloadDir receives the fetched installer; empty uses the user
	// cache dir.
	DownloadDir string
}

// Check fetches the latest release and compares it against currentVersion.
// Any difference counts as an available update; version history is linear
// enough that ordering is not worth parsing.
func (c *Client) Check(ctx context.Context, currentVersion string) (model.UpdateInfo, error) {
	url := c.ReleaseURL
	if url == "" {
		url = defaultReleaseURL
	}
	ctx, cancel := context.WithTimeout(ctx, checkTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return model.UpdateInfo{}, apperr.Wrap(apperr.Logic, "build release request", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.http().Do(req)
	if err != nil {
		return model.UpdateInfo{}, apperr.Wrap(apperr.Network, "check for updates", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return model.UpdateInfo{}, apperr.Newf(apperr.Network, "release check failed with status: %s", resp.Status)
	}

	var rel release
	if err := json.NewDecoder(resp.Body).Decode(&rel); err != nil {
		return model.UpdateInfo{}, apperr.Wrap(apperr.Network, "decode release", err)
	}

	latest := strings.TrimPrefix(rel.TagName, "v")
	current := strings.TrimPrefix(currentVersion, "v")

	info := model.UpdateInfo{LatestVersion: latest}
	if latest == "" || latest == current {
		return info, nil
	}

	// The update exists even when the release carries no installer yet; the
	// download URL just stays empty.
	info.UpdateAvailable = true
	for _, a := range rel.Assets {
		if strings.HasSuffix(strings.ToLower(a.Name), installerSuffix) {
			info.DownloadURL = a.BrowserDownloadURL
			break
		}
	}
	return info, nil
}

// Download fetches the installer at url and returns its saved path.
func (c *Client) Download(ctx context.Context, url string) (string, error) {
	if strings.TrimSpace(url) == "" {
		return "", apperr.New(apperr.Logic, "no installer URL provided")
	}
	ctx, cancel := context.WithTimeout(ctx, installTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", apperr.Wrap(apperr.Logic, "build installer request", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.http().Do(req)
	if err != nil {
		return "", apperr.Wrap(apperr.Network, "download installer", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", apperr.Newf(apperr.Network, "installer download failed with status: %s", resp.Status)
	}

	dir := c.DownloadDir
	if dir == "" {
		cache, err := os.UserCacheDir()
		if err != nil {
			return "", apperr.Wrap(apperr.IO, "resolve download directory", err)
		}
		dir = cache
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", apperr.Wrap(apperr.IO, "create download directory", err)
	}

	dest := filepath.Join(dir, installerName)
	out, err := os.Create(dest)
	if err != nil {
		return "", apperr.Wrap(apperr.IO, "create installer file", err)
	}
	if _, err := io.Copy(out, resp.Body); err != nil {
		out.Close()
		return "", apperr.Wrap(apperr.Network, "read installer", err)
	}
	if err := out.Close(); err != nil {
		return "", apperr.Wrap(apperr.IO, "write installer file", err)
	}
	return dest, nil
}

func (c *Client) http() *http.Client {
	if c.HTTP != nil {
		return c.HTTP
	}
	return http.DefaultClient
}

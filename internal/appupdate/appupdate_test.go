package appupdate

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/ThanathonTH/godspeed-downloader/internal/apperr"
)

func releaseServer(t *testing.T, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(rw http.ResponseWriter, r *http.Request) {
		if r.Header.Get("User-Agent") != "godspeed-app" {
			t.Errorf("User-Agent = %q, want godspeed-app", r.Header.Get("User-Agent"))
		}
		rw.Header().Set("Content-Type", "application/json")
		_, _ = rw.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestCheckUpdateAvailable(t *testing.T) {
	srv := releaseServer(t, `{
		"tag_name": "v1.2.0",
		"assets": [
			{"name": "Godspeed_1.2.0_x64.msi", "browser_download_url": "https://example.com/g.msi"},
			{"name": "checksums.txt", "browser_download_url": "https://example.com/sums"}
		]
	}`)

	c := &Client{ReleaseURL: srv.URL}
	info, err := c.Check(context.Background(), "1.1.0")
	if err != nil {
		t.Fatalf("Check: %v", err)
	}
	if !info.UpdateAvailable {
		t.Error("UpdateAvailable = false, want true")
	}
	if info.LatestVersion != "1.2.0" {
		t.Errorf("LatestVersion = %q, want 1.2.0", info.LatestVersion)
	}
	if info.DownloadURL != "https://example.com/g.msi" {
		t.Errorf("DownloadURL = %q", info.DownloadURL)
	}
}

func TestCheckUpToDate(t *testing.T) {
	srv := releaseServer(t, `{"tag_name": "v1.1.0", "assets": []}`)

	c := &Client{ReleaseURL: srv.URL}
	info, err := c.Check(context.Background(), "v1.1.0")
	if err != nil {
		t.Fatalf("Check: %v", err)
	}
	if info.UpdateAvailable {
		t.Error("UpdateAvailable = true for matching versions")
	}
}

func TestCheckNoInstallerAsset(t *testing.T) {
	srv := releaseServer(t, `{"tag_name": "v2.0.0", "assets": [{"name": "notes.txt", "browser_download_url": "u"}]}`)

	c := &Client{ReleaseURL: srv.URL}
	info, err := c.Check(context.Background(), "1.0.0")
	if err != nil {
		t.Fatalf("Check: %v", err)
	}
	// A newer release counts as an update even before its installer is
	// uploaded.
	if !info.UpdateAvailable {
		t.Error("UpdateAvailable = false for a newer release")
	}
	if info.DownloadURL != "" {
		t.Errorf("DownloadURL = %q, want empty without an installer asset", info.DownloadURL)
	}
}

func TestCheckServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(rw http.ResponseWriter, _ *http.Request) {
		http.Error(rw, "rate limited", http.StatusForbidden)
	}))
	defer srv.Close()

	c := &Client{ReleaseURL: srv.URL}
	if _, err := c.Check(context.Background(), "1.0.0"); !apperr.Is(err, apperr.Network) {
		t.Fatalf("err = %v, want Network kind", err)
	}
}

func TestDownloadSavesInstaller(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(rw http.ResponseWriter, _ *http.Request) {
		_, _ = rw.Write([]byte("msi bytes"))
	}))
	defer srv.Close()

	dir := t.TempDir()
	c := &Client{DownloadDir: dir}
	path, err := c.Download(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("Download: %v", err)
	}
	if filepath.Base(path) != "Godspeed_Update.msi" {
		t.Errorf("installer saved as %q", filepath.Base(path))
	}
	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "msi bytes" {
		t.Errorf("installer contents = %q", got)
	}
}

func TestDownloadEmptyURL(t *testing.T) {
	c := &Client{}
	if _, err := c.Download(context.Background(), ""); !apperr.Is(err, apperr.Logic) {
		t.Fatalf("err = %v, want Logic kind", err)
	}
}

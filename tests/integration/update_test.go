package integration

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/distantorigin/launchpad/internal/launcher"
	testutil "github.com/distantorigin/launchpad/testing"
)

// TestNormalUpdate_OverwritesChangedFiles tests an update over an existing install
func TestNormalUpdate_OverwritesChangedFiles(t *testing.T) {
	env := SetupTestEnvironment(t)
	env.CreateFile("h2m-mod.exe", "MZ v1")
	env.CreateFile("h2m-mod/zone/patch.ff", "fastfile v1")
	env.CreateFile("players2/config.cfg", "user settings")
	env.SetInstalledVersion("1.2.3")

	env.Publish("1.2.4", []testutil.ZipEntry{
		{Name: "h2m-mod.exe", Content: "MZ v2"},
		{Name: "h2m-mod/zone/patch.ff", Content: "fastfile v2"},
	})

	ctrl := env.Controller()
	if ctrl.State().Status != launcher.StatusReady {
		t.Fatalf("initial status = %v, want Ready", ctrl.State().Status)
	}

	if err := ctrl.CheckForUpdates(context.Background()); err != nil {
		t.Fatalf("CheckForUpdates() error = %v", err)
	}

	testutil.AssertFileContent(t, env.InstallPath("h2m-mod.exe"), "MZ v2")
	testutil.AssertFileContent(t, env.InstallPath("h2m-mod/zone/patch.ff"), "fastfile v2")
	// Files absent from the archive are left alone
	testutil.AssertFileContent(t, env.InstallPath("players2/config.cfg"), "user settings")
	env.AssertInstalledVersion("1.2.4")

	if got := env.Recorder.Statuses()[0]; got != launcher.StatusDownloadingUpdate {
		t.Errorf("first status = %v, want DownloadingUpdate", got)
	}
	if ctrl.State().Version != "1.2.4" {
		t.Errorf("Version = %q, want 1.2.4", ctrl.State().Version)
	}
}

// TestNormalUpdate_UpToDate tests that equal versions skip the download
func TestNormalUpdate_UpToDate(t *testing.T) {
	env := SetupTestEnvironment(t)
	env.CreateFile("h2m-mod.exe", "MZ v1")
	env.SetInstalledVersion("1.2.3")
	env.Publish(" 1.2.3 \r\n", []testutil.ZipEntry{{Name: "h2m-mod.exe", Content: "MZ v2"}})

	ctrl := env.Controller()
	if err := ctrl.CheckForUpdates(context.Background()); err != nil {
		t.Fatalf("CheckForUpdates() error = %v", err)
	}

	if n := env.Server.GetRequestCount(testutil.ArchivePath); n != 0 {
		t.Errorf("archive requested %d times, want 0", n)
	}
	testutil.AssertFileContent(t, env.InstallPath("h2m-mod.exe"), "MZ v1")
	if ctrl.State().Status != launcher.StatusReady {
		t.Errorf("status = %v, want Ready", ctrl.State().Status)
	}
}

// TestNormalUpdate_VersionServerDown tests that a failed check leaves the install untouched
func TestNormalUpdate_VersionServerDown(t *testing.T) {
	env := SetupTestEnvironment(t)
	env.CreateFile("h2m-mod.exe", "MZ v1")
	env.SetInstalledVersion("1.2.3")
	env.Server.SetError(testutil.VersionPath, 503)

	ctrl := env.Controller()
	err := ctrl.CheckForUpdates(context.Background())
	if launcher.KindOf(err) != launcher.KindNetwork {
		t.Fatalf("KindOf = %v, want network", launcher.KindOf(err))
	}

	env.AssertInstalledVersion("1.2.3")
	testutil.AssertFileContent(t, env.InstallPath("h2m-mod.exe"), "MZ v1")

	s := ctrl.State()
	if s.Status != launcher.StatusFailed || s.ActionLabel != "Download Failed - Retry" {
		t.Errorf("state = %+v", s)
	}

	// Retry once the server recovers
	env.Publish("1.2.3", nil)
	if err := ctrl.CheckForUpdates(context.Background()); err != nil {
		t.Fatalf("retry error = %v", err)
	}
	if ctrl.State().Status != launcher.StatusReady {
		t.Errorf("status after retry = %v, want Ready", ctrl.State().Status)
	}
}

// TestNormalUpdate_CorruptLocalVersion tests that an unreadable local version forces a reinstall
func TestNormalUpdate_CorruptLocalVersion(t *testing.T) {
	env := SetupTestEnvironment(t)
	env.CreateFile("h2m-mod.exe", "MZ old")
	env.SetInstalledVersion("not a version")
	env.Publish("0.0.0", []testutil.ZipEntry{{Name: "h2m-mod.exe", Content: "MZ fresh"}})

	ctrl := env.Controller()
	if err := ctrl.CheckForUpdates(context.Background()); err != nil {
		t.Fatalf("CheckForUpdates() error = %v", err)
	}

	env.AssertInstalledVersion("0.0.0")
	testutil.AssertFileContent(t, env.InstallPath("h2m-mod.exe"), "MZ fresh")
}

// TestNormalUpdate_TraversalRejected tests that a malicious archive cannot escape the install dir
func TestNormalUpdate_TraversalRejected(t *testing.T) {
	env := SetupTestEnvironment(t)
	env.CreateFile("h2m-mod.exe", "MZ v1")
	env.SetInstalledVersion("1.0.0")
	env.Publish("1.0.1", []testutil.ZipEntry{
		{Name: "../../outside.txt", Content: "evil"},
	})

	ctrl := env.Controller()
	err := ctrl.CheckForUpdates(context.Background())
	if launcher.KindOf(err) != launcher.KindExtraction {
		t.Fatalf("KindOf = %v, want extraction", launcher.KindOf(err))
	}
	testutil.AssertFileNotExists(t, filepath.Join(filepath.Dir(env.BaseDir), "outside.txt"))
	env.AssertInstalledVersion("1.0.0")
}

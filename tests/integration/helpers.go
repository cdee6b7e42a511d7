package integration

import (
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/distantorigin/launchpad/internal/cache"
	"github.com/distantorigin/launchpad/internal/download"
	"github.com/distantorigin/launchpad/internal/install"
	"github.com/distantorigin/launchpad/internal/launcher"
	"github.com/distantorigin/launchpad/internal/target"
	testutil "github.com/distantorigin/launchpad/testing"
)

// TestEnvironment is a launcher wired to a mock release server
type TestEnvironment struct {
	T          *testing.T
	BaseDir    string
	InstallDir string
	Server     *testutil.MockReleaseServer
	Cache      *cache.Store
	Target     target.Target
	Starter    *RecordingStarter
	Recorder   *Recorder
}

// RecordingStarter records launches instead of starting a process
type RecordingStarter struct {
	mu      sync.Mutex
	Exe     string
	WorkDir string
	Calls   int
}

func (s *RecordingStarter) Start(exePath, workDir string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Exe, s.WorkDir = exePath, workDir
	s.Calls++
	return nil
}

// Recorder collects controller notifications
type Recorder struct {
	mu       sync.Mutex
	States   []launcher.State
	Progress []int
}

func (r *Recorder) OnTransition(s launcher.State) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.States = append(r.States, s)
}

func (r *Recorder) OnProgress(p int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Progress = append(r.Progress, p)
}

// Statuses returns the recorded status sequence
func (r *Recorder) Statuses() []launcher.Status {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]launcher.Status, len(r.States))
	for i, s := range r.States {
		out[i] = s.Status
	}
	return out
}

// SetupTestEnvironment creates a complete test environment
func SetupTestEnvironment(t *testing.T) *TestEnvironment {
	t.Helper()

	baseDir := t.TempDir()
	installDir := filepath.Join(baseDir, "game")
	server := testutil.NewMockReleaseServer(t)
	store := cache.New(filepath.Join(baseDir, cache.DefaultDir))

	layout := target.DefaultLayout()
	layout.VersionFile = store.VersionFile()
	layout.VersionURL = server.VersionURL()
	layout.ArchiveURL = server.ArchiveURL()

	return &TestEnvironment{
		T:          t,
		BaseDir:    baseDir,
		InstallDir: installDir,
		Server:     server,
		Cache:      store,
		Target:     target.Derive(installDir, layout),
		Starter:    &RecordingStarter{},
		Recorder:   &Recorder{},
	}
}

// Controller builds a controller over the real fetcher and extractor
func (e *TestEnvironment) Controller(opts ...launcher.Option) *launcher.Controller {
	e.T.Helper()
	opts = append([]launcher.Option{
		launcher.WithObserver(e.Recorder),
		launcher.WithPathStore(e.Cache),
	}, opts...)
	fetcher := download.NewFetcher(download.WithPollInterval(5 * time.Millisecond))
	return launcher.New(e.Target, fetcher, &install.Extractor{}, e.Starter, opts...)
}

// Publish serves version and an archive of entries
func (e *TestEnvironment) Publish(version string, entries []testutil.ZipEntry) {
	e.T.Helper()
	e.Server.SetVersion(version)
	e.Server.SetArchive(testutil.BuildZip(e.T, entries))
}

// CreateFile creates a file relative to the install directory
func (e *TestEnvironment) CreateFile(relativePath, content string) {
	e.T.Helper()
	testutil.WriteFile(e.T, filepath.Join(e.InstallDir, relativePath), content)
}

// InstallPath returns the absolute path of a file in the install directory
func (e *TestEnvironment) InstallPath(relativePath string) string {
	return filepath.Join(e.InstallDir, filepath.FromSlash(relativePath))
}

// SetInstalledVersion writes the local version file
func (e *TestEnvironment) SetInstalledVersion(v string) {
	e.T.Helper()
	testutil.WriteFile(e.T, e.Target.VersionFile, v)
}

// AssertInstalledVersion checks the local version file
func (e *TestEnvironment) AssertInstalledVersion(want string) {
	e.T.Helper()
	testutil.AssertFileContent(e.T, e.Target.VersionFile, want)
}

// FileExists checks if a file exists in the install directory
func (e *TestEnvironment) FileExists(relativePath string) bool {
	_, err := os.Stat(e.InstallPath(relativePath))
	return err == nil
}

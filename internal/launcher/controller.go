// Package launcher drives the update-check, download, extract and launch
// workflow. A Controller owns the workflow state; presentation layers
// subscribe as Observers and never mutate it.
//
// Operations block the calling goroutine, so hosts run them off their UI
// loop. Only one check or install may run at a time; overlapping calls are
// rejected with ErrBusy.
package launcher

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sync"
	"sync/atomic"

	"github.com/distantorigin/launchpad/internal/download"
	"github.com/distantorigin/launchpad/internal/logging"
	"github.com/distantorigin/launchpad/internal/paths"
	"github.com/distantorigin/launchpad/internal/target"
	"github.com/distantorigin/launchpad/internal/version"
)

// Fetcher retrieves the remote version and archive
type Fetcher interface {
	FetchText(ctx context.Context, url string) (string, error)
	FetchBinary(ctx context.Context, url, destPath string, onProgress download.ProgressCallback) error
}

// Installer unpacks a downloaded archive
type Installer interface {
	Extract(archivePath, destDir string) error
}

// Starter starts the installed executable
type Starter interface {
	Start(exePath, workDir string) error
}

// PathStore persists the chosen install directory
type PathStore interface {
	SaveInstallPath(dir string) error
}

// Controller is the launcher state machine
type Controller struct {
	fetcher     Fetcher
	installer   Installer
	starter     Starter
	pathStore   PathStore
	log         *logging.Logger
	freshStatus Status
	labels      Labels

	mu        sync.Mutex
	target    target.Target
	state     State
	observers []Observer
	running   bool

	progress atomic.Int32
}

// Option configures a Controller.
type Option func(*Controller)

// WithObserver subscribes o before the initial state is computed
func WithObserver(o Observer) Option {
	return func(c *Controller) {
		c.observers = append(c.observers, o)
	}
}

// WithLogger sets the controller's logger
func WithLogger(l *logging.Logger) Option {
	return func(c *Controller) {
		if l != nil {
			c.log = l
		}
	}
}

// WithFreshInstallStatus sets the status used when nothing is installed yet.
// DLC deployments use StatusDownloadingDLC.
func WithFreshInstallStatus(s Status) Option {
	return func(c *Controller) {
		if s.Downloading() {
			c.freshStatus = s
		}
	}
}

// WithLabels replaces the status and button text. Empty fields keep the
// default wording.
func WithLabels(l Labels) Option {
	return func(c *Controller) {
		c.labels = l.merge(DefaultLabels())
	}
}

// WithPathStore enables SelectInstallDirectory
func WithPathStore(s PathStore) Option {
	return func(c *Controller) {
		c.pathStore = s
	}
}

// New creates a controller for t. The initial status is Ready when the
// executable exists and Idle otherwise.
func New(t target.Target, fetcher Fetcher, installer Installer, starter Starter, opts ...Option) *Controller {
	c := &Controller{
		fetcher:     fetcher,
		installer:   installer,
		starter:     starter,
		log:         logging.Discard(),
		freshStatus: StatusDownloadingGame,
		labels:      DefaultLabels(),
		target:      t,
	}
	for _, opt := range opts {
		opt(c)
	}

	initial := StatusIdle
	if paths.Exists(t.Executable) {
		initial = StatusReady
	}
	c.state = c.stateFor(initial)
	c.state.Version = c.installedVersionLabel()

	c.log.Debugf("Launcher starting in %s (install dir %s)", initial, t.InstallDir)
	return c
}

// State returns the current state snapshot
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	s := c.state
	s.Progress = int(c.progress.Load())
	return s
}

// Progress returns the last reported download percentage
func (c *Controller) Progress() int {
	return int(c.progress.Load())
}

// Target returns the current install target
func (c *Controller) Target() target.Target {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.target
}

// Subscribe adds an observer and immediately sends it the current state
func (c *Controller) Subscribe(o Observer) {
	c.mu.Lock()
	c.observers = append(c.observers, o)
	s := c.state
	c.mu.Unlock()

	s.Progress = int(c.progress.Load())
	o.OnTransition(s)
}

// CheckForUpdates compares the installed version with the remote one and
// installs when they differ or nothing is installed. Failures leave the
// controller in StatusFailed and are also returned.
func (c *Controller) CheckForUpdates(ctx context.Context) error {
	if err := c.begin(); err != nil {
		return err
	}
	defer c.end()

	return c.checkForUpdates(ctx)
}

// Install downloads and extracts the archive and records v as installed.
func (c *Controller) Install(ctx context.Context, v version.Code) error {
	if err := c.begin(); err != nil {
		return err
	}
	defer c.end()

	return c.install(ctx, v, StatusDownloadingUpdate)
}

// SelectInstallDirectory records dir as the install root, re-derives the
// target and checks for updates. Only valid while Idle.
func (c *Controller) SelectInstallDirectory(ctx context.Context, dir string) error {
	if c.pathStore == nil {
		return ErrNoPathStorage
	}

	c.mu.Lock()
	switch {
	case c.running:
		c.mu.Unlock()
		return ErrBusy
	case c.state.Status != StatusIdle:
		c.mu.Unlock()
		return ErrNotIdle
	}
	c.running = true
	c.mu.Unlock()
	defer c.end()

	abs, err := paths.Resolve(dir)
	if err != nil {
		return c.fail(KindFilesystem, opSelect, err)
	}
	if err := c.pathStore.SaveInstallPath(abs); err != nil {
		return c.fail(KindFilesystem, opSelect, err)
	}

	c.mu.Lock()
	c.target = c.target.WithInstallDir(abs)
	c.mu.Unlock()
	c.log.Printf("Install directory set to %s", abs)

	return c.checkForUpdates(ctx)
}

// Launch starts the executable. The host should exit after a nil return.
// Checks and installs are rejected with ErrBusy while the process starts.
func (c *Controller) Launch() error {
	c.mu.Lock()
	if c.running || c.state.Status != StatusReady {
		c.mu.Unlock()
		return ErrNotReady
	}
	c.running = true
	t := c.target
	c.mu.Unlock()
	defer c.end()

	if !paths.Exists(t.Executable) {
		return c.fail(KindConsistency, opLaunch, fmt.Errorf("%w: %s", ErrExecutableMissing, t.Executable))
	}

	c.log.Printf("Launching %s in %s", t.Executable, t.WorkDir)
	if err := c.starter.Start(t.Executable, t.WorkDir); err != nil {
		return c.fail(KindFilesystem, opLaunch, err)
	}
	return nil
}

func (c *Controller) checkForUpdates(ctx context.Context) error {
	t := c.Target()

	local, err := version.LoadFile(t.VersionFile)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		c.log.Printf("No local version file, installing fresh")
		c.transition(c.stateFor(c.freshStatus), true)

		remote, err := c.fetchRemoteVersion(ctx, t)
		if err != nil {
			return err
		}
		return c.install(ctx, remote, c.freshStatus)

	case errors.Is(err, version.ErrMalformed):
		// An unreadable version is unknown, not 0.0.0; it never matches the remote.
		c.log.Printf("Local version unreadable, forcing reinstall: %v", err)
		c.setVersionLabel(labelUnknown)

		remote, err := c.fetchRemoteVersion(ctx, t)
		if err != nil {
			return err
		}
		return c.install(ctx, remote, StatusDownloadingUpdate)

	case err != nil:
		return c.fail(KindFilesystem, opCheck, err)
	}

	c.setVersionLabel(local.String())

	remote, err := c.fetchRemoteVersion(ctx, t)
	if err != nil {
		return err
	}

	if remote.DiffersFrom(local) {
		c.log.Printf("Update available: %s -> %s", local, remote)
		return c.install(ctx, remote, StatusDownloadingUpdate)
	}

	c.log.Printf("Up to date at %s", local)
	c.transition(c.stateFor(StatusReady), false)
	return nil
}

func (c *Controller) fetchRemoteVersion(ctx context.Context, t target.Target) (version.Code, error) {
	text, err := c.fetcher.FetchText(ctx, t.VersionURL)
	if err != nil {
		return version.Zero, c.fail(KindNetwork, opCheck, err)
	}

	remote, err := version.ParseStrict(text)
	if err != nil {
		return version.Zero, c.fail(KindParse, opCheck, fmt.Errorf("remote version: %w", err))
	}

	c.log.Debugf("Remote version %s", remote)
	return remote, nil
}

func (c *Controller) install(ctx context.Context, v version.Code, status Status) error {
	t := c.Target()

	if c.State().Status != status {
		c.transition(c.stateFor(status), true)
	}

	c.log.Printf("Downloading %s to %s", t.ArchiveURL, t.ArchivePath)
	err := c.fetcher.FetchBinary(ctx, t.ArchiveURL, t.ArchivePath, c.reportProgress)
	if err != nil {
		return c.fail(KindNetwork, opInstall, err)
	}

	extracting := c.stateFor(status)
	extracting.StatusLabel = c.labels.Extracting
	c.transition(extracting, false)

	c.log.Printf("Extracting %s into %s", t.ArchivePath, t.ExtractDir)
	if err := c.installer.Extract(t.ArchivePath, t.ExtractDir); err != nil {
		return c.fail(KindExtraction, opFinish, err)
	}

	if err := os.Remove(t.ArchivePath); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return c.fail(KindFilesystem, opFinish, fmt.Errorf("failed to remove archive: %w", err))
	}

	if err := version.SaveFile(t.VersionFile, v); err != nil {
		return c.fail(KindFilesystem, opFinish, err)
	}

	c.setVersionLabel(v.String())
	c.log.Printf("Installed version %s", v)
	c.transition(c.stateFor(StatusReady), false)
	return nil
}

func (c *Controller) stateFor(status Status) State {
	return newState(status, c.labels)
}

func (c *Controller) begin() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.running {
		return ErrBusy
	}
	c.running = true
	return nil
}

func (c *Controller) end() {
	c.mu.Lock()
	c.running = false
	c.mu.Unlock()
}

// transition replaces the state, keeping the version label, and notifies observers.
func (c *Controller) transition(next State, resetProgress bool) {
	if resetProgress {
		c.progress.Store(0)
	}

	c.mu.Lock()
	next.Version = c.state.Version
	c.state = next
	observers := append([]Observer(nil), c.observers...)
	c.mu.Unlock()

	next.Progress = int(c.progress.Load())
	c.log.Debugf("State -> %s (%s)", next.Status, next.StatusLabel)
	for _, o := range observers {
		o.OnTransition(next)
	}
}

func (c *Controller) setVersionLabel(label string) {
	c.mu.Lock()
	c.state.Version = label
	c.mu.Unlock()
}

func (c *Controller) reportProgress(percent int) {
	c.progress.Store(int32(percent))

	c.mu.Lock()
	observers := append([]Observer(nil), c.observers...)
	c.mu.Unlock()

	for _, o := range observers {
		o.OnProgress(percent)
	}
}

func (c *Controller) fail(kind Kind, op string, err error) error {
	e := &Error{Kind: kind, Op: op, Err: err}
	c.log.Printf("%v", e)

	failed := c.stateFor(StatusFailed)
	failed.Message = e.Error()
	c.transition(failed, false)
	return e
}

func (c *Controller) installedVersionLabel() string {
	v, err := version.LoadFile(c.target.VersionFile)
	switch {
	case err == nil:
		return v.String()
	case errors.Is(err, fs.ErrNotExist):
		return ""
	default:
		return labelUnknown
	}
}

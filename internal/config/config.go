// Package config loads launcher settings with the precedence
// defaults < config file < LAUNCHER_* environment < overrides.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/distantorigin/launchpad/internal/cache"
	"github.com/distantorigin/launchpad/internal/launcher"
	"github.com/distantorigin/launchpad/internal/paths"
	"github.com/distantorigin/launchpad/internal/target"
)

const (
	KeyCacheDir      = "cache-dir"
	KeyInstallDir    = "install-dir"
	KeyVersionURL    = "version-url"
	KeyArchiveURL    = "archive-url"
	KeyExecutable    = "executable"
	KeyArchiveName   = "archive-name"
	KeyExtractSubdir = "extract-subdir"
	KeyWorkSubdir    = "work-subdir"
	KeyCheckOnStart  = "check-on-start"
	KeyDLC           = "dlc"
	KeyHTTPTimeout   = "http-timeout"
	KeyQuiet         = "quiet"
	KeyVerbose       = "verbose"
)

// KeySelectDirectory false skips the Idle directory prompt and installs into
// the working dir on first run.
const KeySelectDirectory = "select-directory"

// KeyLabels holds status and button text keyed as in labelFields.
const KeyLabels = "labels"

const (
	// FileName is looked up in the cache dir, then the working dir
	FileName           = "launcher.yaml"
	DefaultHTTPTimeout = 30 * time.Second
	envPrefix          = "LAUNCHER"
)

// Config is the resolved launcher configuration
type Config struct {
	CacheDir      string
	InstallDir    string // empty means "use the recorded path, else the working dir"
	VersionURL    string
	ArchiveURL    string
	Executable    string
	ArchiveName   string
	ExtractSubdir string
	WorkSubdir    string
	CheckOnStart  bool
	DLC           bool
	HTTPTimeout   time.Duration
	Quiet         bool
	Verbose       bool

	SelectDirectory bool
	LabelOverrides  map[string]string

	// Files lists the config files that were merged, in order
	Files []string
}

type loadSettings struct {
	workingDir string
	configPath string
	overrides  map[string]any
}

// Option configures Load.
type Option func(*loadSettings)

// WithWorkingDir overrides the directory used for config discovery and relative defaults
func WithWorkingDir(dir string) Option {
	return func(s *loadSettings) {
		s.workingDir = dir
	}
}

// WithConfigFile loads path instead of discovering launcher.yaml. The file must exist.
func WithConfigFile(path string) Option {
	return func(s *loadSettings) {
		s.configPath = path
	}
}

// WithOverrides injects values typically coming from CLI flags.
func WithOverrides(overrides map[string]any) Option {
	return func(s *loadSettings) {
		if s.overrides == nil {
			s.overrides = make(map[string]any, len(overrides))
		}
		for k, v := range overrides {
			s.overrides[k] = v
		}
	}
}

// Load resolves the configuration.
func Load(opts ...Option) (*Config, error) {
	settings := loadSettings{}
	for _, opt := range opts {
		opt(&settings)
	}

	workingDir := strings.TrimSpace(settings.workingDir)
	if workingDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("determine working directory: %w", err)
		}
		workingDir = wd
	}

	v := viper.New()
	v.SetConfigType("yaml")
	setDefaults(v, workingDir)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	var files []string
	if explicit := strings.TrimSpace(settings.configPath); explicit != "" {
		if _, err := os.Stat(explicit); err != nil {
			return nil, fmt.Errorf("config file: %w", err)
		}
		merged, err := mergeConfigFile(v, explicit)
		if err != nil {
			return nil, err
		}
		if merged {
			files = append(files, explicit)
		}
	} else {
		for _, candidate := range discoveryPaths(v, workingDir, settings.overrides) {
			merged, err := mergeConfigFile(v, candidate)
			if err != nil {
				return nil, err
			}
			if merged {
				files = append(files, candidate)
			}
		}
	}

	for k, val := range settings.overrides {
		v.Set(k, val)
	}

	cfg := &Config{
		CacheDir:      absFrom(workingDir, v.GetString(KeyCacheDir)),
		InstallDir:    strings.TrimSpace(v.GetString(KeyInstallDir)),
		VersionURL:    strings.TrimSpace(v.GetString(KeyVersionURL)),
		ArchiveURL:    strings.TrimSpace(v.GetString(KeyArchiveURL)),
		Executable:    strings.TrimSpace(v.GetString(KeyExecutable)),
		ArchiveName:   strings.TrimSpace(v.GetString(KeyArchiveName)),
		ExtractSubdir: strings.TrimSpace(v.GetString(KeyExtractSubdir)),
		WorkSubdir:    strings.TrimSpace(v.GetString(KeyWorkSubdir)),
		CheckOnStart:  v.GetBool(KeyCheckOnStart),
		DLC:           v.GetBool(KeyDLC),
		HTTPTimeout:   v.GetDuration(KeyHTTPTimeout),
		Quiet:         v.GetBool(KeyQuiet),
		Verbose:       v.GetBool(KeyVerbose),
		Files:         files,

		SelectDirectory: v.GetBool(KeySelectDirectory),
		LabelOverrides:  v.GetStringMapString(KeyLabels),
	}
	if cfg.InstallDir != "" {
		cfg.InstallDir = absFrom(workingDir, cfg.InstallDir)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Layout converts the configuration into an install layout
func (c *Config) Layout() target.Layout {
	return target.Layout{
		Executable:    layoutPath(c.Executable),
		ArchiveName:   layoutPath(c.ArchiveName),
		ExtractSubdir: layoutPath(c.ExtractSubdir),
		WorkSubdir:    layoutPath(c.WorkSubdir),
		VersionFile:   cache.New(c.CacheDir).VersionFile(),
		VersionURL:    c.VersionURL,
		ArchiveURL:    c.ArchiveURL,
	}
}

// labelFields maps the keys under labels: to launcher.Labels fields
var labelFields = map[string]func(*launcher.Labels) *string{
	"idle":               func(l *launcher.Labels) *string { return &l.Idle },
	"select-directory":   func(l *launcher.Labels) *string { return &l.SelectDirectory },
	"ready":              func(l *launcher.Labels) *string { return &l.Ready },
	"play":               func(l *launcher.Labels) *string { return &l.Play },
	"failed":             func(l *launcher.Labels) *string { return &l.Failed },
	"failed-action":      func(l *launcher.Labels) *string { return &l.FailedAction },
	"downloading-game":   func(l *launcher.Labels) *string { return &l.DownloadingGame },
	"downloading-update": func(l *launcher.Labels) *string { return &l.DownloadingUpdate },
	"downloading-dlc":    func(l *launcher.Labels) *string { return &l.DownloadingDLC },
	"extracting":         func(l *launcher.Labels) *string { return &l.Extracting },
	"wait":               func(l *launcher.Labels) *string { return &l.Wait },
}

// Labels returns the configured wording; keys left out are empty and take
// the launcher defaults.
func (c *Config) Labels() launcher.Labels {
	var l launcher.Labels
	for k, text := range c.LabelOverrides {
		if field, ok := labelFields[k]; ok {
			*field(&l) = strings.TrimSpace(text)
		}
	}
	return l
}

func (c *Config) validate() error {
	var missing []string
	if c.VersionURL == "" {
		missing = append(missing, KeyVersionURL)
	}
	if c.ArchiveURL == "" {
		missing = append(missing, KeyArchiveURL)
	}
	if c.Executable == "" {
		missing = append(missing, KeyExecutable)
	}
	if c.ArchiveName == "" {
		missing = append(missing, KeyArchiveName)
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required settings: %s", strings.Join(missing, ", "))
	}
	if c.HTTPTimeout <= 0 {
		return fmt.Errorf("%s must be positive, got %s", KeyHTTPTimeout, c.HTTPTimeout)
	}
	for k := range c.LabelOverrides {
		if _, ok := labelFields[k]; !ok {
			return fmt.Errorf("unknown %s key %q", KeyLabels, k)
		}
	}
	return nil
}

func setDefaults(v *viper.Viper, workingDir string) {
	layout := target.DefaultLayout()

	v.SetDefault(KeyCacheDir, filepath.Join(workingDir, cache.DefaultDir))
	v.SetDefault(KeyInstallDir, "")
	v.SetDefault(KeyVersionURL, layout.VersionURL)
	v.SetDefault(KeyArchiveURL, layout.ArchiveURL)
	v.SetDefault(KeyExecutable, layout.Executable)
	v.SetDefault(KeyArchiveName, layout.ArchiveName)
	v.SetDefault(KeyExtractSubdir, layout.ExtractSubdir)
	v.SetDefault(KeyWorkSubdir, layout.WorkSubdir)
	v.SetDefault(KeyCheckOnStart, true)
	v.SetDefault(KeyDLC, false)
	v.SetDefault(KeyHTTPTimeout, DefaultHTTPTimeout)
	v.SetDefault(KeyQuiet, false)
	v.SetDefault(KeyVerbose, false)
	v.SetDefault(KeySelectDirectory, true)
}

// discoveryPaths returns launcher.yaml in the cache dir, then the working dir.
// A cache-dir override is honoured so the file next to the cache is found.
func discoveryPaths(v *viper.Viper, workingDir string, overrides map[string]any) []string {
	cacheDir := v.GetString(KeyCacheDir)
	if o, ok := overrides[KeyCacheDir].(string); ok && strings.TrimSpace(o) != "" {
		cacheDir = o
	}
	cacheDir = absFrom(workingDir, cacheDir)

	paths := []string{filepath.Join(workingDir, FileName)}
	inCache := filepath.Join(cacheDir, FileName)
	if inCache != paths[0] {
		// Working dir is merged last so it wins
		paths = append([]string{inCache}, paths...)
	}
	return paths
}

func mergeConfigFile(v *viper.Viper, path string) (bool, error) {
	info, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("stat %s: %w", path, err)
	}
	if info.IsDir() {
		return false, fmt.Errorf("config path %s is a directory", path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return false, fmt.Errorf("read %s: %w", path, err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return false, nil
	}
	if err := v.MergeConfig(bytes.NewReader(data)); err != nil {
		return false, fmt.Errorf("parse %s: %w", path, err)
	}
	return true, nil
}

// layoutPath puts a relative install path in slash form; empty stays empty
func layoutPath(p string) string {
	if p == "" {
		return ""
	}
	return paths.Normalize(p)
}

func absFrom(base, p string) string {
	p = strings.TrimSpace(p)
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(base, p)
}

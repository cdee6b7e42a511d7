package target

import (
	"path/filepath"
)

// Layout names the files of an install relative to its directory, plus the
// remote endpoints they come from.
type Layout struct {
	Executable    string // relative to the install dir, e.g. "h2m-mod.exe" or "h1_full_files/h2m-mod.exe"
	ArchiveName   string // download location inside the install dir
	ExtractSubdir string // extraction root relative to the install dir; empty extracts in place
	WorkSubdir    string // working directory relative to the install dir; empty uses the install dir
	VersionFile   string // absolute or cwd-relative path of the local version file
	VersionURL    string
	ArchiveURL    string
}

// DefaultLayout mirrors the H2M mod distribution
func DefaultLayout() Layout {
	return Layout{
		Executable:  "h2m-mod.exe",
		ArchiveName: "h2m-mod.zip",
		VersionFile: filepath.Join("LauncherCache", "Version.txt"),
		VersionURL:  "https://spyderrock.com/pniQ3212-Version.txt",
		ArchiveURL:  "https://spyderrock.com/gN584506-h2m-mod.zip",
	}
}

// Target is the set of paths and URLs derived from one install directory.
// It is immutable; choosing another directory derives a new Target.
type Target struct {
	InstallDir  string
	Executable  string
	ArchivePath string
	ExtractDir  string
	WorkDir     string
	VersionFile string
	VersionURL  string
	ArchiveURL  string
	layout      Layout
}

// Derive builds the Target for installDir
func Derive(installDir string, layout Layout) Target {
	dir := filepath.Clean(installDir)
	return Target{
		InstallDir:  dir,
		Executable:  filepath.Join(dir, filepath.FromSlash(layout.Executable)),
		ArchivePath: filepath.Join(dir, filepath.FromSlash(layout.ArchiveName)),
		ExtractDir:  filepath.Join(dir, filepath.FromSlash(layout.ExtractSubdir)),
		WorkDir:     filepath.Join(dir, filepath.FromSlash(layout.WorkSubdir)),
		VersionFile: layout.VersionFile,
		VersionURL:  layout.VersionURL,
		ArchiveURL:  layout.ArchiveURL,
		layout:      layout,
	}
}

// WithInstallDir re-derives every dependent path for a new install directory
func (t Target) WithInstallDir(installDir string) Target {
	return Derive(installDir, t.layout)
}

// Layout returns the layout t was derived from
func (t Target) Layout() Layout {
	return t.layout
}

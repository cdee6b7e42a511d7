package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"

	"github.com/distantorigin/launchpad/internal/prompt"
	"github.com/distantorigin/launchpad/internal/target"
	"github.com/distantorigin/launchpad/internal/version"
)

// textFetcher is the part of download.Fetcher the check subcommand needs
type textFetcher interface {
	FetchText(ctx context.Context, url string) (string, error)
}

// runCheckCommand prints the versions and, when someone can answer, offers to
// install an available update.
func runCheckCommand(ctx context.Context, a *app, pcfg prompt.Config, w io.Writer) error {
	available, err := runCheck(ctx, a.target, a.fetcher, w)
	if err != nil || !available || pcfg.NonInteractive {
		return err
	}
	if pcfg.Out == nil {
		pcfg.Out = w
	}
	if !prompt.Confirm("Download it now?", pcfg) {
		return nil
	}
	return runHeadless(ctx, a.ctrl, false)
}

// runCheck prints the installed and available versions without downloading.
// It reports whether an update is available.
func runCheck(ctx context.Context, t target.Target, fetcher textFetcher, w io.Writer) (bool, error) {
	installed := "not installed"
	local, localErr := version.LoadFile(t.VersionFile)
	switch {
	case localErr == nil:
		installed = local.String()
	case errors.Is(localErr, version.ErrMalformed):
		installed = "unknown"
	case !errors.Is(localErr, fs.ErrNotExist):
		return false, fmt.Errorf("read installed version: %w", localErr)
	}

	text, err := fetcher.FetchText(ctx, t.VersionURL)
	if err != nil {
		return false, fmt.Errorf("check for game updates: %w", err)
	}
	remote, err := version.ParseStrict(text)
	if err != nil {
		return false, fmt.Errorf("remote version: %w", err)
	}

	fmt.Fprintf(w, "Game directory:    %s\n", t.InstallDir)
	fmt.Fprintf(w, "Installed version: %s\n", installed)
	fmt.Fprintf(w, "Available version: %s\n", remote)

	if localErr == nil && !remote.DiffersFrom(local) {
		fmt.Fprintln(w, "Up to date.")
		return false, nil
	}
	fmt.Fprintln(w, "Update available.")
	return true, nil
}

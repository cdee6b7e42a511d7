package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"strings"

	"github.com/distantorigin/launchpad/internal/audio"
	"github.com/distantorigin/launchpad/internal/cache"
	"github.com/distantorigin/launchpad/internal/config"
	"github.com/distantorigin/launchpad/internal/console"
	"github.com/distantorigin/launchpad/internal/download"
	"github.com/distantorigin/launchpad/internal/embedded"
	"github.com/distantorigin/launchpad/internal/install"
	"github.com/distantorigin/launchpad/internal/launcher"
	"github.com/distantorigin/launchpad/internal/logging"
	"github.com/distantorigin/launchpad/internal/process"
	"github.com/distantorigin/launchpad/internal/prompt"
	"github.com/distantorigin/launchpad/internal/target"
	"github.com/distantorigin/launchpad/internal/tui"
)

const title = "H2M-Mod Launcher"

// Set with -ldflags "-X main.launcherVersion=..."
var launcherVersion = "dev"

var (
	configFlag     string
	installDirFlag string
	nonInteractive bool
	launchFlag     bool
	quietFlag      bool
	verboseFlag    bool
	versionFlag    bool
	dlcFlag        bool
)

func main() {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "\nOops, something broke: %v\n", r)
			fmt.Fprintln(os.Stderr, "Let the developers know what happened.")
			os.Exit(1)
		}
	}()

	log.SetFlags(0)

	var subcommand string
	args := os.Args[1:]
	if len(args) > 0 && !strings.HasPrefix(args[0], "-") {
		subcommand = args[0]
		args = args[1:]
	}

	flag.StringVar(&configFlag, "config", "", "Path to a launcher.yaml config file")
	flag.StringVar(&installDirFlag, "install-dir", "", "Game directory (saved for next time)")
	flag.BoolVar(&nonInteractive, "non-interactive", false, "Run the update check without the launcher screen")
	flag.BoolVar(&launchFlag, "launch", false, "Start the game after a successful non-interactive update")
	flag.BoolVar(&quietFlag, "quiet", false, "Suppress output and sounds")
	flag.BoolVar(&verboseFlag, "verbose", false, "Show detailed output")
	flag.BoolVar(&versionFlag, "version", false, "Show launcher version and exit")
	flag.BoolVar(&dlcFlag, "dlc", false, "Report fresh installs as DLC downloads")
	flag.CommandLine.Parse(args)

	if versionFlag {
		fmt.Printf("%s v%s\n", title, launcherVersion)
		return
	}

	switch subcommand {
	case "", "check":
	default:
		fmt.Printf("Unknown subcommand: %s\n", subcommand)
		fmt.Println("\nAvailable subcommands:")
		fmt.Println("  check    Compare installed and available versions without downloading")
		fmt.Println("\nOr run without subcommand to open the launcher")
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, subcommand, flagOverrides()); err != nil {
		reportFailure(os.Stderr, err, promptConfig())
		stop()
		os.Exit(1)
	}
}

// promptConfig answers prompts only on a terminal and never with -non-interactive
func promptConfig() prompt.Config {
	return prompt.Config{NonInteractive: nonInteractive || !console.Interactive()}
}

// reportFailure prints err and keeps a console window open until Enter, so a
// launcher started by double-click does not close before it can be read.
func reportFailure(w io.Writer, err error, pcfg prompt.Config) {
	fmt.Fprintf(w, "%v\n", err)
	if pcfg.Out == nil {
		pcfg.Out = w
	}
	prompt.WaitForKey("\nPress Enter to exit...", pcfg)
}

// flagOverrides returns only the flags set on the command line, so config
// files and the environment still apply to the rest.
func flagOverrides() map[string]any {
	overrides := map[string]any{}
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "install-dir":
			overrides[config.KeyInstallDir] = installDirFlag
		case "quiet":
			overrides[config.KeyQuiet] = quietFlag
		case "verbose":
			overrides[config.KeyVerbose] = verboseFlag
		case "dlc":
			overrides[config.KeyDLC] = dlcFlag
		}
	})
	return overrides
}

func run(ctx context.Context, subcommand string, overrides map[string]any) error {
	opts := []config.Option{config.WithOverrides(overrides)}
	if configFlag != "" {
		opts = append(opts, config.WithConfigFile(configFlag))
	}
	cfg, err := config.Load(opts...)
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}

	console.Init(cfg.Quiet)
	headless := nonInteractive || subcommand != ""

	logger := logging.New(os.Stderr, cfg.Verbose)
	store := cache.New(cfg.CacheDir)
	if !headless {
		fileLogger, err := logging.OpenFile(store.LogFile(), cfg.Verbose)
		if err != nil {
			// Writing to stderr would tear the screen
			logger = logging.Discard()
		} else {
			logger = fileLogger
			defer fileLogger.Close()
		}
		console.SetTitle(title)
	} else if cfg.Quiet {
		logger = logging.New(io.Discard, false)
	}

	if len(cfg.Files) > 0 {
		logger.Debugf("Config files: %s", strings.Join(cfg.Files, ", "))
	} else {
		logger.Debugf("No config file, using defaults")
	}

	app, err := newApp(cfg, store, logger)
	if err != nil {
		return err
	}

	switch {
	case subcommand == "check":
		err = runCheckCommand(ctx, app, promptConfig(), os.Stdout)
		app.finish(false)
		return err
	case headless:
		err = runHeadless(ctx, app.ctrl, launchFlag)
		app.finish(launchFlag && err == nil)
		return err
	default:
		launched, err := runInteractive(ctx, app, cfg)
		app.finish(launched)
		return err
	}
}

type app struct {
	target  target.Target
	fetcher launcher.Fetcher
	ctrl    *launcher.Controller
	player  *audio.Player
	cues    *audio.Cues
}

// finish lets the launch cue play out before the process exits; otherwise it
// cuts off whatever is still playing.
func (a *app) finish(launched bool) {
	if a.player == nil {
		return
	}
	if launched {
		a.player.Wait(audio.CueSuccess)
		return
	}
	a.player.StopAll()
}

func newApp(cfg *config.Config, store *cache.Store, logger *logging.Logger) (*app, error) {
	installDir := cfg.InstallDir
	if installDir != "" {
		if err := store.SaveInstallPath(installDir); err != nil {
			return nil, fmt.Errorf("save game directory: %w", err)
		}
	} else {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("determine working directory: %w", err)
		}
		installDir, err = store.EnsureInstallPath(wd)
		if err != nil {
			return nil, fmt.Errorf("read game directory: %w", err)
		}
	}

	t := target.Derive(installDir, cfg.Layout())

	var fetcher launcher.Fetcher = download.NewFetcher(
		download.WithTimeout(cfg.HTTPTimeout),
		download.WithUserAgent("h2m-launcher/"+launcherVersion),
	)
	if bundle := embedded.New(); bundle != nil {
		logger.Printf("Using bundled release instead of %s", t.ArchiveURL)
		fetcher = bundle
	}
	extractor := &install.Extractor{}
	if logger.Verbose() {
		extractor.Progress = func(current, total int, name string) {
			logger.Printf("Extracting (%d/%d) %s", current, total, name)
		}
	}

	opts := []launcher.Option{
		launcher.WithLogger(logger),
		launcher.WithPathStore(store),
		launcher.WithLabels(cfg.Labels()),
	}
	if cfg.DLC {
		opts = append(opts, launcher.WithFreshInstallStatus(launcher.StatusDownloadingDLC))
	}

	ctrl := launcher.New(t, fetcher, extractor, &process.Starter{}, opts...)
	player := audio.New(cfg.Quiet, -2, logger)
	cues := audio.NewCues(player)
	ctrl.Subscribe(cues)

	return &app{target: t, fetcher: fetcher, ctrl: ctrl, player: player, cues: cues}, nil
}

// runInteractive shows the launcher screen and reports whether the game was started
func runInteractive(ctx context.Context, a *app, cfg *config.Config) (bool, error) {
	opts := tui.Options{
		Title:           title,
		CheckOnStart:    cfg.CheckOnStart,
		BeforeCheck:     a.cues.Checking,
		InstallFromIdle: !cfg.SelectDirectory,
	}
	if prompt.HasFolderDialog {
		opts.PickFolder = func(defaultPath string) (string, error) {
			return prompt.SelectFolder(defaultPath, prompt.Config{Title: "Select your game directory", Owner: console.Window})
		}
	}

	return tui.Run(ctx, a.ctrl, opts)
}

// runHeadless checks for updates, printing progress, and optionally launches
func runHeadless(ctx context.Context, ctrl *launcher.Controller, launch bool) error {
	// -10 so the first report, even 0%, starts a new step
	lastPercent := -10
	ctrl.Subscribe(launcher.ObserverFuncs{
		Transition: func(s launcher.State) {
			if s.Status == launcher.StatusFailed {
				return
			}
			console.Log("%s", s.StatusLabel)
		},
		Progress: func(percent int) {
			// 10% steps
			if percent/10 != lastPercent/10 {
				console.Log("Downloading... %d%%", percent)
			}
			lastPercent = percent
		},
	})

	if err := ctrl.CheckForUpdates(ctx); err != nil {
		return err
	}
	console.Log("Installed version %s", ctrl.State().Version)

	if !launch {
		return nil
	}
	if err := ctrl.Launch(); err != nil {
		if errors.Is(err, launcher.ErrNotReady) {
			return fmt.Errorf("start game: %w", err)
		}
		return err
	}
	console.Log("Game started")
	return nil
}

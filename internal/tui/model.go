// Package tui renders the launcher screen with bubbletea. It observes a
// launcher controller and dispatches the single action button.
package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/muesli/reflow/wordwrap"

	"github.com/distantorigin/launchpad/internal/launcher"
	"github.com/distantorigin/launchpad/internal/prompt"
	"github.com/distantorigin/launchpad/internal/target"
)

// Controller is the part of launcher.Controller the screen drives
type Controller interface {
	State() launcher.State
	Target() target.Target
	Subscribe(launcher.Observer)
	CheckForUpdates(ctx context.Context) error
	SelectInstallDirectory(ctx context.Context, dir string) error
	Launch() error
}

// Options configures the screen
type Options struct {
	Title        string
	CheckOnStart bool
	// PickFolder shows a native folder dialog; nil uses an inline text field
	PickFolder func(defaultPath string) (string, error)
	// BeforeCheck runs before every update check the screen starts
	BeforeCheck func()
	// InstallFromIdle checks for updates from Idle instead of asking for a
	// directory, installing into the current target
	InstallFromIdle bool
}

type opDoneMsg struct {
	op  string
	err error
}

type folderMsg struct {
	dir string
	err error
}

type launchedMsg struct{ err error }

// Model is the bubbletea model for the launcher screen
type Model struct {
	ctx    context.Context
	ctrl   Controller
	opts   Options
	keys   KeyMap
	bridge *bridge
	copy   func(string) error

	spinner  spinner.Model
	progress progress.Model
	input    textinput.Model

	state    launcher.State
	picking  bool
	busy     bool // an operation started by this screen has not returned
	notice   string
	launched bool
	width    int
}

// New creates the model and subscribes it to ctrl
func New(ctx context.Context, ctrl Controller, opts Options) *Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = spinnerStyle

	p := progress.New(
		progress.WithDefaultGradient(),
		progress.WithWidth(40),
		progress.WithoutPercentage(),
	)

	ti := textinput.New()
	ti.Placeholder = "Game directory"
	ti.Prompt = "> "
	ti.CharLimit = 512
	ti.Width = 60

	if opts.Title == "" {
		opts.Title = "Launcher"
	}

	m := &Model{
		ctx:      ctx,
		ctrl:     ctrl,
		opts:     opts,
		keys:     DefaultKeyMap(),
		bridge:   newBridge(),
		copy:     clipboard.WriteAll,
		spinner:  s,
		progress: p,
		input:    ti,
		state:    ctrl.State(),
		width:    80,
	}
	ctrl.Subscribe(m.bridge)
	return m
}

// Launched reports whether the game was started before the screen closed
func (m *Model) Launched() bool {
	return m.launched
}

func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.spinner.Tick, m.bridge.wait()}
	if m.opts.CheckOnStart && (m.state.Status != launcher.StatusIdle || m.opts.InstallFromIdle) {
		cmds = append(cmds, m.check())
	}
	return tea.Batch(cmds...)
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case stateMsg:
		m.state = launcher.State(msg)
		if m.state.Status != launcher.StatusFailed {
			m.notice = ""
		}
		return m, m.bridge.wait()

	case progressMsg:
		m.state.Progress = int(msg)
		return m, m.bridge.wait()

	case opDoneMsg:
		m.busy = false
		// Failures already arrived as a Failed state; only rejections need a notice
		if msg.err != nil && launcher.KindOf(msg.err) == launcher.KindUnknown {
			m.notice = fmt.Sprintf("%s: %v", msg.op, msg.err)
		}
		return m, nil

	case folderMsg:
		if msg.err != nil {
			if !errors.Is(msg.err, prompt.ErrCancelled) {
				m.notice = msg.err.Error()
			}
			return m, nil
		}
		return m, m.selectDirectory(msg.dir)

	case launchedMsg:
		m.busy = false
		if msg.err != nil {
			if errors.Is(msg.err, launcher.ErrNotReady) {
				m.notice = msg.err.Error()
			}
			return m, nil
		}
		m.launched = true
		return m, tea.Quit

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		if m.picking {
			return m.updatePicking(msg)
		}
		return m.updateKeys(msg)
	}

	return m, nil
}

func (m *Model) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.bridge.close()
		return m, tea.Quit

	case key.Matches(msg, m.keys.Copy):
		if m.state.Status == launcher.StatusFailed && m.state.Message != "" {
			if err := m.copy(m.state.Message); err != nil {
				m.notice = "Clipboard unavailable"
			} else {
				m.notice = "Copied error to clipboard."
			}
		}
		return m, nil

	case key.Matches(msg, m.keys.Action):
		return m.action()
	}
	return m, nil
}

func (m *Model) updatePicking(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.Type == tea.KeyCtrlC:
		m.bridge.close()
		return m, tea.Quit
	case key.Matches(msg, m.keys.Cancel):
		m.picking = false
		m.input.Blur()
		return m, nil
	case msg.Type == tea.KeyEnter:
		dir := strings.TrimSpace(m.input.Value())
		if dir == "" {
			return m, nil
		}
		m.picking = false
		m.input.Blur()
		return m, m.selectDirectory(dir)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// action runs whatever the button means in the current status
func (m *Model) action() (tea.Model, tea.Cmd) {
	if !m.actionEnabled() {
		return m, nil
	}
	m.notice = ""

	switch m.state.Status {
	case launcher.StatusIdle:
		if m.opts.InstallFromIdle {
			return m, m.check()
		}
		defaultDir := m.ctrl.Target().InstallDir
		if m.opts.PickFolder != nil {
			pick := m.opts.PickFolder
			return m, func() tea.Msg {
				dir, err := pick(defaultDir)
				return folderMsg{dir: dir, err: err}
			}
		}
		m.picking = true
		m.input.SetValue(defaultDir)
		m.input.CursorEnd()
		return m, m.input.Focus()

	case launcher.StatusReady:
		ctrl := m.ctrl
		m.busy = true
		return m, func() tea.Msg {
			return launchedMsg{err: ctrl.Launch()}
		}

	case launcher.StatusFailed:
		return m, m.check()
	}
	return m, nil
}

// actionEnabled is false while the controller allows the action but an
// operation this screen started is still running, such as the version check
// that runs from Ready.
func (m *Model) actionEnabled() bool {
	return m.state.ActionEnabled && !m.busy
}

func (m *Model) check() tea.Cmd {
	m.busy = true
	ctx, ctrl, before := m.ctx, m.ctrl, m.opts.BeforeCheck
	return func() tea.Msg {
		if before != nil {
			before()
		}
		return opDoneMsg{op: "Update check", err: ctrl.CheckForUpdates(ctx)}
	}
}

func (m *Model) selectDirectory(dir string) tea.Cmd {
	m.busy = true
	ctx, ctrl, before := m.ctx, m.ctrl, m.opts.BeforeCheck
	return func() tea.Msg {
		if before != nil {
			before()
		}
		return opDoneMsg{op: "Select directory", err: ctrl.SelectInstallDirectory(ctx, dir)}
	}
}

func (m *Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(m.opts.Title))
	b.WriteString("\n")

	b.WriteString(labelStyle.Render("Status  "))
	b.WriteString(m.statusView())
	if m.busy && !m.state.Status.Downloading() {
		b.WriteString(" ")
		b.WriteString(m.spinner.View())
	}
	b.WriteString("\n")

	version := m.state.Version
	if version == "" {
		version = "not installed"
	}
	b.WriteString(labelStyle.Render("Version "))
	b.WriteString(version)
	b.WriteString("\n")

	b.WriteString(labelStyle.Render("Folder  "))
	b.WriteString(m.ctrl.Target().InstallDir)
	b.WriteString("\n\n")

	if m.state.Status.Downloading() {
		b.WriteString(m.spinner.View())
		b.WriteString(" ")
		b.WriteString(m.progress.ViewAs(float64(m.state.Progress) / 100))
		b.WriteString(fmt.Sprintf(" %3d%%", m.state.Progress))
		b.WriteString("\n\n")
	}

	if m.state.Status == launcher.StatusFailed && m.state.Message != "" {
		b.WriteString(messageStyle.Render(wordwrap.String(m.state.Message, m.wrapWidth())))
		b.WriteString("\n\n")
	}

	if m.picking {
		b.WriteString(m.input.View())
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("enter: confirm • esc: cancel"))
	} else {
		if m.actionEnabled() {
			b.WriteString(buttonStyle.Render(m.state.ActionLabel))
		} else {
			b.WriteString(disabledButtonStyle.Render(m.state.ActionLabel))
		}
		b.WriteString("\n\n")
		b.WriteString(helpStyle.Render(m.helpLine()))
	}

	if m.notice != "" {
		b.WriteString("\n")
		b.WriteString(labelStyle.Render(wordwrap.String(m.notice, m.wrapWidth())))
	}

	return containerStyle.Render(b.String())
}

func (m *Model) statusView() string {
	switch m.state.Status {
	case launcher.StatusReady:
		return readyStyle.Render(m.state.StatusLabel)
	case launcher.StatusFailed:
		return failedStyle.Render(m.state.StatusLabel)
	default:
		return statusStyle.Render(m.state.StatusLabel)
	}
}

func (m *Model) helpLine() string {
	parts := make([]string, 0, 3)
	if m.actionEnabled() {
		parts = append(parts, "enter: "+strings.ToLower(m.state.ActionLabel))
	}
	if m.state.Status == launcher.StatusFailed && m.state.Message != "" {
		parts = append(parts, "c: copy error")
	}
	parts = append(parts, "q: quit")
	return strings.Join(parts, " • ")
}

func (m *Model) wrapWidth() int {
	if m.width <= 8 {
		return 72
	}
	return m.width - 6
}

// Run shows the screen until the user quits or the game is launched.
// It reports whether the game was launched.
func Run(ctx context.Context, ctrl Controller, opts Options) (bool, error) {
	m := New(ctx, ctrl, opts)
	defer m.bridge.close()

	final, err := tea.NewProgram(m, tea.WithContext(ctx)).Run()
	if err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return false, fmt.Errorf("launcher screen: %w", err)
	}
	if fm, ok := final.(*Model); ok {
		return fm.Launched(), nil
	}
	return m.Launched(), nil
}

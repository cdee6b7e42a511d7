package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/distantorigin/launchpad/internal/launcher"
)

type stateMsg launcher.State

type progressMsg int

// bridge forwards controller notifications into the program's message loop
type bridge struct {
	updates chan tea.Msg
	done    chan struct{}
}

func newBridge() *bridge {
	return &bridge{
		updates: make(chan tea.Msg, 64),
		done:    make(chan struct{}),
	}
}

func (b *bridge) OnTransition(s launcher.State) {
	select {
	case b.updates <- stateMsg(s):
	case <-b.done:
	}
}

func (b *bridge) OnProgress(percent int) {
	select {
	case b.updates <- progressMsg(percent):
	default:
		// Drop if the UI is behind; the next tick carries a newer value
	}
}

func (b *bridge) wait() tea.Cmd {
	return func() tea.Msg {
		select {
		case msg := <-b.updates:
			return msg
		case <-b.done:
			return nil
		}
	}
}

func (b *bridge) close() {
	select {
	case <-b.done:
	default:
		close(b.done)
	}
}

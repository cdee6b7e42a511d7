package audio

import (
	"sync"

	"github.com/distantorigin/launchpad/internal/launcher"
)

// Sounder plays a cue
type Sounder interface {
	Play(Cue)
}

// Cues is a launcher.Observer that maps transitions to cues. Register it with
// Controller.Subscribe so the first snapshot is the startup state.
type Cues struct {
	sound Sounder

	mu       sync.Mutex
	last     launcher.State
	seen     bool
	checking bool
}

// NewCues returns an observer playing through s
func NewCues(s Sounder) *Cues {
	return &Cues{sound: s}
}

// Checking marks the start of an update check, so a following Ready plays
// the up-to-date cue.
func (c *Cues) Checking() {
	c.mu.Lock()
	c.checking = true
	c.mu.Unlock()
}

func (c *Cues) OnTransition(s launcher.State) {
	c.mu.Lock()
	prev, seen, checking := c.last, c.seen, c.checking
	c.last, c.seen = s, true
	if seen && (s.Status == launcher.StatusReady || s.Status == launcher.StatusFailed) {
		c.checking = false
	}
	c.mu.Unlock()

	// The first snapshot describes the state at startup
	if !seen {
		return
	}

	switch {
	case s.Status.Downloading() && !prev.Status.Downloading():
		c.sound.Play(CueDownloading)
	case s.Status.Downloading() && s.StatusLabel != prev.StatusLabel:
		c.sound.Play(CueInstalling)
	case s.Status == launcher.StatusReady && prev.Status.Downloading():
		c.sound.Play(CueSuccess)
	case s.Status == launcher.StatusReady && checking:
		c.sound.Play(CueUpToDate)
	case s.Status == launcher.StatusFailed && prev.Status != launcher.StatusFailed:
		c.sound.Play(CueError)
	}
}

func (c *Cues) OnProgress(int) {}

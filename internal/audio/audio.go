// Package audio plays short generated cues for launcher state changes.
package audio

import (
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"

	"github.com/distantorigin/launchpad/internal/logging"
)

// Cue identifies a sound
type Cue int

const (
	CueDownloading Cue = iota
	CueInstalling
	CueSuccess
	CueUpToDate
	CueError
)

func (c Cue) String() string {
	switch c {
	case CueDownloading:
		return "downloading"
	case CueInstalling:
		return "installing"
	case CueSuccess:
		return "success"
	case CueUpToDate:
		return "up_to_date"
	case CueError:
		return "error"
	default:
		return "unknown"
	}
}

// SampleRate is used for every generated cue
const SampleRate = beep.SampleRate(44100)

type note struct {
	freq float64 // 0 is a rest
	dur  time.Duration
}

var cues = map[Cue][]note{
	CueDownloading: {{660, 90 * time.Millisecond}, {0, 40 * time.Millisecond}, {880, 90 * time.Millisecond}},
	CueInstalling:  {{587, 80 * time.Millisecond}},
	CueSuccess:     {{523, 100 * time.Millisecond}, {659, 100 * time.Millisecond}, {784, 180 * time.Millisecond}},
	CueUpToDate:    {{784, 120 * time.Millisecond}},
	CueError:       {{392, 160 * time.Millisecond}, {0, 40 * time.Millisecond}, {262, 260 * time.Millisecond}},
}

// Render builds the streamer for c at sr and returns its length in samples.
func Render(c Cue, sr beep.SampleRate) (beep.Streamer, int, error) {
	notes, ok := cues[c]
	if !ok {
		return nil, 0, fmt.Errorf("unknown cue %d", c)
	}

	parts := make([]beep.Streamer, 0, len(notes))
	total := 0
	for _, n := range notes {
		samples := sr.N(n.dur)
		total += samples
		if n.freq == 0 {
			parts = append(parts, beep.Silence(samples))
			continue
		}
		tone, err := generators.SineTone(sr, n.freq)
		if err != nil {
			return nil, 0, fmt.Errorf("cue %s: %w", c, err)
		}
		parts = append(parts, beep.Take(samples, tone))
	}
	return beep.Seq(parts...), total, nil
}

// Player plays cues on the default output device. The zero value is not
// usable; create one with New.
type Player struct {
	quiet    bool
	volumeDB float64
	log      *logging.Logger

	once  sync.Once
	ready atomic.Bool
}

// New returns a player. A quiet player never touches the audio device.
func New(quiet bool, volumeDB float64, log *logging.Logger) *Player {
	if log == nil {
		log = logging.Discard()
	}
	return &Player{quiet: quiet, volumeDB: volumeDB, log: log}
}

func (p *Player) ensureSpeaker() bool {
	p.once.Do(func() {
		p.log.Debugf("Setting up audio...")
		if err := speaker.Init(SampleRate, SampleRate.N(time.Second/10)); err != nil {
			p.log.Printf("Audio unavailable: %v", err)
			return
		}
		p.ready.Store(true)
	})
	return p.ready.Load()
}

// Play starts c and returns without waiting for it to finish
func (p *Player) Play(c Cue) {
	if p.quiet {
		return
	}

	streamer, _, err := Render(c, SampleRate)
	if err != nil {
		p.log.Debugf("Couldn't play sound: %v", err)
		return
	}
	if !p.ensureSpeaker() {
		return
	}

	speaker.Play(&effects.Volume{
		Streamer: streamer,
		Base:     2,
		Volume:   p.volumeDB,
	})
	p.log.Debugf("Playing %s", c)
}

// Wait plays c and blocks until it has finished
func (p *Player) Wait(c Cue) {
	if p.quiet {
		return
	}

	streamer, _, err := Render(c, SampleRate)
	if err != nil || !p.ensureSpeaker() {
		return
	}

	done := make(chan struct{})
	speaker.Play(beep.Seq(&effects.Volume{Streamer: streamer, Base: 2, Volume: p.volumeDB}, beep.Callback(func() {
		close(done)
	})))
	<-done
}

// StopAll stops any cue still playing. It never opens the audio device.
func (p *Player) StopAll() {
	if !p.ready.Load() {
		return
	}
	speaker.Clear()
}

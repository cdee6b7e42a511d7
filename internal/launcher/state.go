package launcher

// Status is the launcher's position in the update workflow
type Status int

const (
	StatusIdle Status = iota
	StatusReady
	StatusFailed
	StatusDownloadingGame
	StatusDownloadingUpdate
	StatusDownloadingDLC
)

func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "Idle"
	case StatusReady:
		return "Ready"
	case StatusFailed:
		return "Failed"
	case StatusDownloadingGame:
		return "DownloadingGame"
	case StatusDownloadingUpdate:
		return "DownloadingUpdate"
	case StatusDownloadingDLC:
		return "DownloadingDLC"
	default:
		return "Unknown"
	}
}

// Downloading reports whether s is one of the transient download states
func (s Status) Downloading() bool {
	return s == StatusDownloadingGame || s == StatusDownloadingUpdate || s == StatusDownloadingDLC
}

const labelUnknown = "unknown"

// Labels holds the text shown for each status. Deployments that word their
// button differently replace it with WithLabels.
type Labels struct {
	Idle              string
	SelectDirectory   string
	Ready             string
	Play              string
	Failed            string
	FailedAction      string
	DownloadingGame   string
	DownloadingUpdate string
	DownloadingDLC    string
	Extracting        string
	Wait              string
}

// DefaultLabels returns the H2M launcher wording
func DefaultLabels() Labels {
	return Labels{
		Idle:              "Idle",
		SelectDirectory:   "Select Game Directory",
		Ready:             "Ready",
		Play:              "Play",
		Failed:            "Download Failed - Retry",
		FailedAction:      "Download Failed - Retry",
		DownloadingGame:   "Downloading Files",
		DownloadingUpdate: "Downloading Update",
		DownloadingDLC:    "Downloading Files",
		Extracting:        "Extracting Files",
		Wait:              "Please Wait...",
	}
}

// merge fills empty fields of l from d
func (l Labels) merge(d Labels) Labels {
	fill := func(dst *string, def string) {
		if *dst == "" {
			*dst = def
		}
	}
	fill(&l.Idle, d.Idle)
	fill(&l.SelectDirectory, d.SelectDirectory)
	fill(&l.Ready, d.Ready)
	fill(&l.Play, d.Play)
	fill(&l.Failed, d.Failed)
	fill(&l.FailedAction, d.FailedAction)
	fill(&l.DownloadingGame, d.DownloadingGame)
	fill(&l.DownloadingUpdate, d.DownloadingUpdate)
	fill(&l.DownloadingDLC, d.DownloadingDLC)
	fill(&l.Extracting, d.Extracting)
	fill(&l.Wait, d.Wait)
	return l
}

// State is a snapshot of everything a presentation layer renders.
type State struct {
	Status        Status
	Progress      int // 0-100, meaningful while downloading
	StatusLabel   string
	ActionLabel   string
	ActionEnabled bool
	Version       string // installed version for display; empty when none
	Message       string // failure text, set only in StatusFailed
}

func newState(status Status, l Labels) State {
	s := State{Status: status}
	switch status {
	case StatusIdle:
		s.StatusLabel = l.Idle
		s.ActionLabel = l.SelectDirectory
		s.ActionEnabled = true
	case StatusReady:
		s.StatusLabel = l.Ready
		s.ActionLabel = l.Play
		s.ActionEnabled = true
	case StatusFailed:
		s.StatusLabel = l.Failed
		s.ActionLabel = l.FailedAction
		s.ActionEnabled = true
	case StatusDownloadingGame:
		s.StatusLabel = l.DownloadingGame
		s.ActionLabel = l.Wait
	case StatusDownloadingUpdate:
		s.StatusLabel = l.DownloadingUpdate
		s.ActionLabel = l.Wait
	case StatusDownloadingDLC:
		s.StatusLabel = l.DownloadingDLC
		s.ActionLabel = l.Wait
	}
	return s
}

// Observer receives state transitions and download progress. Calls arrive on
// the goroutine running the controller operation.
type Observer interface {
	OnTransition(State)
	OnProgress(percent int)
}

// ObserverFuncs adapts plain functions to Observer; nil fields are skipped.
type ObserverFuncs struct {
	Transition func(State)
	Progress   func(percent int)
}

func (o ObserverFuncs) OnTransition(s State) {
	if o.Transition != nil {
		o.Transition(s)
	}
}

func (o ObserverFuncs) OnProgress(percent int) {
	if o.Progress != nil {
		o.Progress(percent)
	}
}

package launcher

import (
	"errors"
	"fmt"
)

// Kind classifies failures surfaced by the controller.
type Kind int

const (
	KindUnknown Kind = iota
	KindNetwork
	KindParse
	KindExtraction
	KindFilesystem
	KindConsistency
)

func (k Kind) String() string {
	switch k {
	case KindNetwork:
		return "network"
	case KindParse:
		return "parse"
	case KindExtraction:
		return "extraction"
	case KindFilesystem:
		return "filesystem"
	case KindConsistency:
		return "consistency"
	default:
		return "unknown"
	}
}

// Error is a classified failure of a controller operation.
type Error struct {
	Kind Kind
	Op   string
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("Error %s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf walks the error chain and returns the first Kind found
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// Rejected calls leave state untouched.
var (
	ErrBusy          = errors.New("an update is already in progress")
	ErrNotIdle       = errors.New("install directory can only be chosen while idle")
	ErrNotReady      = errors.New("game is not ready to launch")
	ErrNoPathStorage = errors.New("install directory cannot be changed in this deployment")
)

// ErrExecutableMissing is wrapped in a KindConsistency Error when Ready has no executable behind it.
var ErrExecutableMissing = errors.New("executable missing")

const (
	opCheck   = "checking for game updates"
	opInstall = "installing game files"
	opFinish  = "finishing download"
	opSelect  = "saving game directory"
	opLaunch  = "starting game"
)

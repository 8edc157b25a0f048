package app

import (
	"time"

	"github.com/philipparndt/goanatomy/internal/selection"
	"github.com/philipparndt/goanatomy/pkg/anatomy"
	"github.com/philipparndt/goanatomy/pkg/scene"
	"github.com/philipparndt/goanatomy/pkg/viewer"
)

// State is everything the interaction loop mutates. It is owned by a
// Controller and only touched from the frontend's main goroutine.
type State struct {
	Store     *anatomy.Store
	Registry  *scene.Registry // nil until the model has loaded
	Selection selection.State
	Camera    *viewer.Camera
	Load      LoadState
}

// LoadState tracks the background model load
type LoadState struct {
	ModelPath   string
	IsLoading   bool
	StartedAt   time.Time
	LastError   error
	reloadQueue bool // a reload was requested while a load was running
}

// Target says what a pointer event landed on
type Target int

const (
	TargetScene Target = iota
	TargetButton
)

// PointerEvent is a pointer-down in surface pixel coordinates
type PointerEvent struct {
	X, Y   float64
	Target Target
}

// Button identifies one of the part action controls
type Button int

const (
	ButtonFade Button = iota
	ButtonHide
	ButtonReset
)

func (b Button) String() string {
	switch b {
	case ButtonFade:
		return "Fade"
	case ButtonHide:
		return "Hide"
	case ButtonReset:
		return "Reset"
	default:
		return "Unknown"
	}
}

// Buttons lists the controls in display order
var Buttons = []Button{ButtonFade, ButtonHide, ButtonReset}

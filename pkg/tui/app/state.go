package teaui

import (
	"time"

	"tableflip.dev/taskdeck/pkg/anim"
	"tableflip.dev/taskdeck/pkg/record"
)

// ViewState is the presentation state of the add dialogs. All three dialogs
// share one fade timer, so opening any of them restarts the fade of every
// dialog that is showing.
type ViewState struct {
	ShowAddTask bool
	ShowAddGoal bool
	ShowAddNote bool

	// Start is when the most recent dialog opened.
	Start time.Time
	// Alpha is the fade progress in [0,1], recomputed every frame.
	Alpha float64
}

// Open shows the add dialog of c and restarts the shared fade.
func (v *ViewState) Open(c record.Collection, now time.Time) {
	if flag := v.flag(c); flag != nil {
		*flag = true
	}
	v.Restart(now)
}

// Restart resets the shared fade timer.
func (v *ViewState) Restart(now time.Time) {
	v.Start = now
	v.Alpha = 0
}

// Close hides the add dialog of c.
func (v *ViewState) Close(c record.Collection) {
	if flag := v.flag(c); flag != nil {
		*flag = false
	}
}

// Showing reports whether the add dialog of c is open.
func (v ViewState) Showing(c record.Collection) bool {
	switch c {
	case record.Tasks:
		return v.ShowAddTask
	case record.Goals:
		return v.ShowAddGoal
	case record.Notes:
		return v.ShowAddNote
	}
	return false
}

// Tick recomputes Alpha for now.
func (v *ViewState) Tick(now time.Time) {
	if v.Start.IsZero() {
		v.Alpha = 1
		return
	}
	v.Alpha = anim.Fade(now.Sub(v.Start))
}

func (v *ViewState) flag(c record.Collection) *bool {
	switch c {
	case record.Tasks:
		return &v.ShowAddTask
	case record.Goals:
		return &v.ShowAddGoal
	case record.Notes:
		return &v.ShowAddNote
	}
	return nil
}

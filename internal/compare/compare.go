// Package compare holds the state machine behind the before/after
// comparison slider: a clamped reveal position, an Idle/Dragging drag
// protocol, and the frozen-baseline rule that pins the "before" image
// to the generation that produced the current "after" image.
package compare

import "math"

// Keyboard arrows move the reveal boundary in 5% steps.
const nudgeStep = 0.05

// State is the authoritative slider state for one session. It is pure
// interaction state: no I/O, no rendering. Callers serialize access.
type State struct {
	// Position is the fraction of the viewport width revealing the
	// "after" image. Always within [0, 1].
	Position float64

	// FrozenBefore is the before-image reference captured at the moment
	// the current after image first became available.
	FrozenBefore string

	// Dragging is true between BeginDrag and EndDrag.
	Dragging bool

	// lastAfter is the previous cycle's after reference. The freeze rule
	// needs the transition, not the current value, so it is tracked
	// explicitly.
	lastAfter string
}

// New returns slider state centered at 0.5 with the baseline set to the
// initial before image.
func New(before string) *State {
	return &State{
		Position:     0.5,
		FrozenBefore: before,
	}
}

// Observe feeds the current before/after image references into the
// freeze rule. FrozenBefore is recaptured only when the after image
// transitions from absent to present; in every other case, including a
// before change while an after image is already on screen, the baseline
// stays put so the comparison never drifts to a photo that has not been
// regenerated yet.
func (s *State) Observe(before, after string) {
	if s.lastAfter == "" && after != "" {
		s.FrozenBefore = before
	}
	s.lastAfter = after
}

// BeginDrag starts a pointer drag on the handle.
func (s *State) BeginDrag() {
	s.Dragging = true
}

// EndDrag releases the handle. Subsequent Move calls are ignored until
// the next BeginDrag.
func (s *State) EndDrag() {
	s.Dragging = false
}

// Move recomputes the position from a pointer location expressed as a
// horizontal fraction of the widget's bounding box. The pointer may be
// anywhere on the page, so frac is clamped. No-op unless dragging.
func (s *State) Move(frac float64) {
	if !s.Dragging {
		return
	}
	s.Position = clamp(frac)
}

// Nudge shifts the position by delta, clamped. Used for keyboard input.
func (s *State) Nudge(delta float64) {
	s.Position = clamp(s.Position + delta)
}

// NudgeLeft handles ArrowLeft.
func (s *State) NudgeLeft() { s.Nudge(-nudgeStep) }

// NudgeRight handles ArrowRight.
func (s *State) NudgeRight() { s.Nudge(nudgeStep) }

// SetPercent sets the position from a 0-100 numeric input, with the
// same effect as dragging to that point.
func (s *State) SetPercent(p int) {
	s.Position = clamp(float64(p) / 100)
}

// Percent returns the position on a 0-100 scale for rendering. Value
// receiver so snapshots can report without a pointer.
func (s State) Percent() int {
	return int(math.Round(s.Position * 100))
}

func clamp(f float64) float64 {
	switch {
	case f < 0:
		return 0
	case f > 1:
		return 1
	}
	return f
}

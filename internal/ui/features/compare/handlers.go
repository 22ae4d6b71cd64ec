// Package compare exposes the slider's drag, keyboard and numeric
// endpoints over the session's comparison state machine.
package compare

import (
	"encoding/json"
	"net/http"

	"github.com/starfederation/datastar-go/datastar"

	comparestate "github.com/inkworks-labs/inkstudio/internal/compare"
	"github.com/inkworks-labs/inkstudio/internal/studio"
	"github.com/inkworks-labs/inkstudio/internal/ui/features/common"
	"github.com/inkworks-labs/inkstudio/internal/ui/features/compare/components"
)

// PercentSignals carries the numeric reveal input.
type PercentSignals struct {
	Percent int `json:"percent"`
}

// pointerPayload is the geometry the browser glue forwards on drag
// events: pointer X plus the track's bounding box.
type pointerPayload struct {
	X     float64 `json:"x"`
	Left  float64 `json:"left"`
	Width float64 `json:"width"`
}

func (p pointerPayload) fraction() float64 {
	if p.Width <= 0 {
		return 0
	}
	return (p.X - p.Left) / p.Width
}

// Handlers provides HTTP handlers for the comparison slider.
type Handlers struct {
	resolver *common.Resolver
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(resolver *common.Resolver) *Handlers {
	return &Handlers{resolver: resolver}
}

// View builds the slider view from session state.
func View(s *studio.Session) components.SliderView {
	cs := s.CompareState()
	res := s.Result()

	before := cs.FrozenBefore
	if before == "" {
		if p := s.Photo(); p != nil {
			before = p.Preview
		}
	}

	after := ""
	if res.HasImage() {
		after = "data:image/png;base64," + res.ImageBase64
	}

	return components.SliderView{
		Before:     before,
		After:      after,
		Percent:    cs.Percent(),
		Alt:        "Your photo compared with the generated tattoo",
		ShowLabels: true,
	}
}

// HandlePress starts a drag and applies the initial pointer position.
func (h *Handlers) HandlePress(w http.ResponseWriter, r *http.Request) {
	h.pointerEvent(w, r, func(c *comparestate.State, frac float64) {
		c.BeginDrag()
		c.Move(frac)
	})
}

// HandleMove applies pointer movement. The state machine ignores moves
// outside a drag, so stray events are harmless.
func (h *Handlers) HandleMove(w http.ResponseWriter, r *http.Request) {
	h.pointerEvent(w, r, func(c *comparestate.State, frac float64) {
		c.Move(frac)
	})
}

// HandleRelease ends the drag.
func (h *Handlers) HandleRelease(w http.ResponseWriter, r *http.Request) {
	s := h.resolver.Session(w, r)
	s.Compare(func(c *comparestate.State) { c.EndDrag() })
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) pointerEvent(w http.ResponseWriter, r *http.Request, apply func(*comparestate.State, float64)) {
	var p pointerPayload
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		http.Error(w, "invalid pointer payload", http.StatusBadRequest)
		return
	}

	s := h.resolver.Session(w, r)
	s.Compare(func(c *comparestate.State) { apply(c, p.fraction()) })
	w.WriteHeader(http.StatusNoContent)
}

// HandleNudge moves the boundary one keyboard step left or right and
// patches the slider.
func (h *Handlers) HandleNudge(w http.ResponseWriter, r *http.Request) {
	s := h.resolver.Session(w, r)

	dir := r.URL.Query().Get("dir")
	s.Compare(func(c *comparestate.State) {
		switch dir {
		case "left":
			c.NudgeLeft()
		case "right":
			c.NudgeRight()
		}
	})

	h.patchSlider(w, r, s)
}

// HandlePercent applies the numeric 0-100 input, with the same effect
// as dragging.
func (h *Handlers) HandlePercent(w http.ResponseWriter, r *http.Request) {
	var signals PercentSignals
	if err := datastar.ReadSignals(r, &signals); err != nil {
		sse := datastar.NewSSE(w, r)
		_ = sse.ConsoleError(err)
		return
	}

	s := h.resolver.Session(w, r)
	s.Compare(func(c *comparestate.State) { c.SetPercent(signals.Percent) })

	h.patchSlider(w, r, s)
}

func (h *Handlers) patchSlider(w http.ResponseWriter, r *http.Request, s *studio.Session) {
	sse := datastar.NewSSE(w, r)
	if err := sse.PatchElementTempl(components.Slider(View(s))); err != nil {
		_ = sse.ConsoleError(err)
	}
}

// Package components renders the before/after comparison slider.
package components

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"
)

// SliderView is everything the slider needs to render.
type SliderView struct {
	// Before is the frozen baseline image (data URL).
	Before string
	// After is the generated image, empty when none exists yet.
	After string
	// Percent is the reveal position on a 0-100 scale.
	Percent int
	// Alt is the accessible description of the comparison.
	Alt string
	// ShowLabels toggles the Before/After corner badges.
	ShowLabels bool
}

// Slider renders the comparison widget. The after layer is clipped to
// the reveal fraction, never resized; when After is empty the layer and
// handle are omitted entirely and only the frozen before image shows.
func Slider(v SliderView) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, `<div id="compare-slider">`); err != nil {
			return err
		}

		if _, err := fmt.Fprintf(w, `<div id="compare-track" class="compare-track"><img src="%s" alt="%s">`,
			templ.EscapeString(v.Before), templ.EscapeString(v.Alt)); err != nil {
			return err
		}

		if v.After != "" {
			if _, err := fmt.Fprintf(w,
				`<div id="compare-after" class="compare-after" style="clip-path: inset(0 %d%% 0 0)"><img src="%s" alt="%s"></div>`,
				100-v.Percent, templ.EscapeString(v.After), templ.EscapeString(v.Alt)); err != nil {
				return err
			}
			if v.ShowLabels {
				if _, err := io.WriteString(w,
					`<span class="compare-label before">Before</span><span class="compare-label after">After</span>`); err != nil {
					return err
				}
			}
			if _, err := fmt.Fprintf(w,
				`<div id="compare-handle" class="compare-handle" style="left: %d%%" tabindex="0" role="slider" aria-valuemin="0" aria-valuemax="100" aria-valuenow="%d" data-on-keydown="evt.key === 'ArrowLeft' && @post('/compare/nudge?dir=left'); evt.key === 'ArrowRight' && @post('/compare/nudge?dir=right')"></div>`,
				v.Percent, v.Percent); err != nil {
				return err
			}
		}

		if _, err := io.WriteString(w, `</div>`); err != nil {
			return err
		}

		if v.After != "" {
			if _, err := fmt.Fprintf(w,
				`<label>Reveal <input id="compare-percent" type="number" min="0" max="100" data-bind-percent value="%d" data-on-change="@post('/compare/percent')"></label>`,
				v.Percent); err != nil {
				return err
			}
		}

		_, err := io.WriteString(w, `</div>`)
		return err
	})
}

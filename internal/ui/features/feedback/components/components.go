// Package components renders the refinement feedback panel.
package components

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"
)

// FeedbackView drives the panel's enabled/busy rendering.
type FeedbackView struct {
	// HasImage is false until a design exists to refine.
	HasImage bool
	// Busy is true while an alteration request is outstanding.
	Busy bool
	// Error is a panel-local validation or request error.
	Error string
}

// Panel renders the feedback form. The submit control is disabled while
// a request is outstanding so it cannot be double-submitted.
func Panel(v FeedbackView) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		if !v.HasImage {
			_, err := io.WriteString(w, `<div id="feedback-panel"></div>`)
			return err
		}

		if _, err := io.WriteString(w, `<div id="feedback-panel" class="panel"><h2>Refine this design</h2>`); err != nil {
			return err
		}

		if v.Error != "" {
			if _, err := fmt.Fprintf(w, `<p class="error-banner">%s</p>`, templ.EscapeString(v.Error)); err != nil {
				return err
			}
		}

		if _, err := io.WriteString(w,
			`<textarea data-bind-feedback rows="3" placeholder="e.g. make it smaller, add more shading"></textarea>`); err != nil {
			return err
		}

		if v.Busy {
			if _, err := io.WriteString(w,
				`<button type="button" disabled>Refining...</button>`); err != nil {
				return err
			}
		} else {
			if _, err := io.WriteString(w,
				`<button type="button" data-on-click="@post('/feedback')">Apply feedback</button>`); err != nil {
				return err
			}
		}

		_, err := io.WriteString(w, `</div>`)
		return err
	})
}

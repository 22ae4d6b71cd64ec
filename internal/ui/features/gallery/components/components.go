// Package components renders the session gallery grid.
package components

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"
)

// EntryView is one gallery thumbnail.
type EntryView struct {
	Index    int
	Preview  string // data URL, empty for text-only results
	Idea     string
	Selected bool
}

// GalleryView is the gallery plus its selection state.
type GalleryView struct {
	Entries       []EntryView
	SelectedCount int
}

// Gallery renders the session gallery, newest first. An empty gallery
// renders only the patch target so the element stays morphable.
func Gallery(v GalleryView) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		if len(v.Entries) == 0 {
			_, err := io.WriteString(w, `<div id="gallery"></div>`)
			return err
		}

		if _, err := io.WriteString(w, `<div id="gallery" class="panel"><h2>Session gallery</h2><div class="gallery-grid">`); err != nil {
			return err
		}

		for _, e := range v.Entries {
			selected := ""
			if e.Selected {
				selected = " selected"
			}
			if _, err := fmt.Fprintf(w, `<div class="gallery-item%s">`, selected); err != nil {
				return err
			}
			if e.Preview != "" {
				if _, err := fmt.Fprintf(w,
					`<img src="%s" alt="Generated tattoo %d" data-on-click="@post('/gallery/toggle/%d')">`+
						`<a href="/gallery/download/%d" download>Save</a>`,
					templ.EscapeString(e.Preview), e.Index+1, e.Index, e.Index); err != nil {
					return err
				}
			} else {
				if _, err := fmt.Fprintf(w, `<p class="idea">%s</p>`, templ.EscapeString(e.Idea)); err != nil {
					return err
				}
			}
			if _, err := io.WriteString(w, `</div>`); err != nil {
				return err
			}
		}

		if _, err := io.WriteString(w, `</div><div class="gallery-actions">`); err != nil {
			return err
		}

		if v.SelectedCount > 0 {
			if _, err := fmt.Fprintf(w,
				`<a href="/gallery/download"><button type="button">Download selected (%d)</button></a>`,
				v.SelectedCount); err != nil {
				return err
			}
		} else {
			if _, err := io.WriteString(w,
				`<button type="button" disabled>Download selected</button>`); err != nil {
				return err
			}
		}

		_, err := io.WriteString(w, `</div></div>`)
		return err
	})
}

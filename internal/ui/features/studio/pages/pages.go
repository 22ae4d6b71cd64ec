// Package pages renders the studio page and its morphable app shell.
package pages

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"

	commonComponents "github.com/inkworks-labs/inkstudio/internal/ui/features/common/components"
	compareComponents "github.com/inkworks-labs/inkstudio/internal/ui/features/compare/components"
	feedbackComponents "github.com/inkworks-labs/inkstudio/internal/ui/features/feedback/components"
	galleryComponents "github.com/inkworks-labs/inkstudio/internal/ui/features/gallery/components"
)

// StudioView is all data the page needs for one render.
type StudioView struct {
	Style     string
	Theme     string
	ColorMode string
	Placement string

	HasPhoto     bool
	CameraActive bool
	Busy         bool
	Error        string
	Idea         string

	Slider   compareComponents.SliderView
	Gallery  galleryComponents.GalleryView
	Feedback feedbackComponents.FeedbackView
}

// colorModes are the options the form offers.
var colorModes = []string{"black and grey", "color", "blackwork", "watercolor"}

// StudioPage renders the full document. The SSE subscription lives
// outside the morph target so re-renders do not resubscribe.
func StudioPage(title string, v StudioView) templ.Component {
	body := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w,
			`<main class="app" data-on-load="@get('/updates')"><h1>InkStudio</h1>`); err != nil {
			return err
		}
		if err := AppShell(v).Render(ctx, w); err != nil {
			return err
		}
		_, err := io.WriteString(w, `</main>`)
		return err
	})
	return commonComponents.Page(title, body)
}

// AppShell is the morph target re-rendered on every state change.
func AppShell(v StudioView) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, `<div id="app">`); err != nil {
			return err
		}

		if err := commonComponents.ErrorBanner(v.Error).Render(ctx, w); err != nil {
			return err
		}
		if err := designForm(v).Render(ctx, w); err != nil {
			return err
		}
		if err := photoPanel(v).Render(ctx, w); err != nil {
			return err
		}
		if err := resultPanel(v).Render(ctx, w); err != nil {
			return err
		}
		if err := feedbackComponents.Panel(v.Feedback).Render(ctx, w); err != nil {
			return err
		}
		if err := galleryComponents.Gallery(v.Gallery).Render(ctx, w); err != nil {
			return err
		}

		_, err := io.WriteString(w, `</div>`)
		return err
	})
}

func designForm(v StudioView) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, `<div class="panel"><div class="form-grid">`); err != nil {
			return err
		}

		textInput := func(label, name, value, placeholder string) error {
			_, err := fmt.Fprintf(w,
				`<div><label for="%s">%s</label><input id="%s" type="text" data-bind-%s value="%s" placeholder="%s"></div>`,
				name, templ.EscapeString(label), name, name,
				templ.EscapeString(value), templ.EscapeString(placeholder))
			return err
		}

		if err := textInput("Style", "style", v.Style, "traditional, realism, minimal..."); err != nil {
			return err
		}
		if err := textInput("Theme", "theme", v.Theme, "dragon, roses, geometric..."); err != nil {
			return err
		}

		if _, err := io.WriteString(w,
			`<div><label for="colormode">Color mode</label><select id="colormode" data-bind-colormode>`); err != nil {
			return err
		}
		for _, mode := range colorModes {
			selected := ""
			if mode == v.ColorMode {
				selected = " selected"
			}
			if _, err := fmt.Fprintf(w, `<option value="%s"%s>%s</option>`,
				templ.EscapeString(mode), selected, templ.EscapeString(mode)); err != nil {
				return err
			}
		}
		if _, err := io.WriteString(w, `</select></div>`); err != nil {
			return err
		}

		if err := textInput("Placement", "placement", v.Placement, "forearm, shoulder, back..."); err != nil {
			return err
		}

		if _, err := io.WriteString(w, `</div>`); err != nil {
			return err
		}

		if v.Busy {
			if _, err := io.WriteString(w,
				`<p class="loading">Generating your design...</p><button type="button" disabled>Generate tattoo</button>`); err != nil {
				return err
			}
		} else {
			if _, err := io.WriteString(w,
				`<button type="button" data-on-click="@post('/generate')">Generate tattoo</button>`); err != nil {
				return err
			}
		}

		_, err := io.WriteString(w,
			` <button type="button" class="secondary" data-on-click="@post('/reset')">Start over</button></div>`)
		return err
	})
}

func photoPanel(v StudioView) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, `<div class="panel camera-panel"><h2>Your photo</h2>`); err != nil {
			return err
		}

		if _, err := io.WriteString(w,
			`<form method="post" action="/photo" enctype="multipart/form-data">`+
				`<input type="file" name="photo" accept="image/*">`+
				`<button type="submit" class="secondary">Upload</button></form>`); err != nil {
			return err
		}

		if _, err := io.WriteString(w, `<p>Use camera `); err != nil {
			return err
		}
		if err := commonComponents.ToggleSwitch("camera-switch", v.CameraActive, v.Busy, "/camera/toggle").Render(ctx, w); err != nil {
			return err
		}
		if _, err := io.WriteString(w, `</p>`); err != nil {
			return err
		}

		if v.CameraActive {
			if _, err := io.WriteString(w,
				`<video id="camera-video" autoplay playsinline muted data-camera-active="true"></video>`+
					`<button type="button" id="snap-photo">Snap photo</button>`); err != nil {
				return err
			}
		}

		_, err := io.WriteString(w, `</div>`)
		return err
	})
}

func resultPanel(v StudioView) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if v.Slider.Before == "" {
			_, err := io.WriteString(w, `<div id="result-panel"></div>`)
			return err
		}

		if _, err := io.WriteString(w, `<div id="result-panel" class="panel">`); err != nil {
			return err
		}
		if err := compareComponents.Slider(v.Slider).Render(ctx, w); err != nil {
			return err
		}
		if v.Idea != "" {
			if _, err := fmt.Fprintf(w, `<p class="idea">%s</p>`, templ.EscapeString(v.Idea)); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, `</div>`)
		return err
	})
}

// Package components holds the shared view components: the page shell,
// the toggle switch and the error banner. Components are hand-written
// templ.Component values; feature packages compose them and patch them
// over SSE.
package components

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"

	"github.com/inkworks-labs/inkstudio/internal/ui/resources"
)

// datastarCDN pins the client runtime matching the server SDK major
// version.
const datastarCDN = "https://cdn.jsdelivr.net/gh/starfederation/datastar@v1.0.0/bundles/datastar.js"

// Page renders the full HTML document around body.
func Page(title string, body templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := fmt.Fprintf(w, `<!doctype html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>%s - InkStudio</title>
<link rel="stylesheet" href="%s">
<script type="module" src="%s"></script>
<script defer src="%s"></script>
</head>
<body>
`, templ.EscapeString(title),
			resources.StaticPath("app.css"),
			datastarCDN,
			resources.StaticPath("studio.js")); err != nil {
			return err
		}
		if err := body.Render(ctx, w); err != nil {
			return err
		}
		_, err := io.WriteString(w, "</body>\n</html>\n")
		return err
	})
}

// ToggleSwitch is a stateless controlled boolean switch. The caller
// owns the boolean: a click (when not disabled) posts action and the
// server decides the next state.
func ToggleSwitch(id string, checked, disabled bool, action string) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		class := "switch"
		if checked {
			class += " on"
		}
		attrs := ""
		if disabled {
			attrs = " disabled"
		} else {
			attrs = fmt.Sprintf(` data-on-click="@post('%s')"`, templ.EscapeString(action))
		}
		_, err := fmt.Fprintf(w,
			`<button type="button" id="%s" class="%s" role="switch" aria-checked="%t"%s></button>`,
			templ.EscapeString(id), class, checked, attrs)
		return err
	})
}

// ErrorBanner renders the current error, or an empty placeholder that
// keeps the patch target in the DOM.
func ErrorBanner(msg string) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		if msg == "" {
			_, err := io.WriteString(w, `<div id="error-banner"></div>`)
			return err
		}
		_, err := fmt.Fprintf(w, `<div id="error-banner" class="error-banner">%s</div>`,
			templ.EscapeString(msg))
		return err
	})
}

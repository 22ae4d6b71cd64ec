// Package feedback submits natural-language refinement requests against
// the current design and surfaces the replacement.
package feedback

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/starfederation/datastar-go/datastar"

	"github.com/inkworks-labs/inkstudio/internal/imaging"
	"github.com/inkworks-labs/inkstudio/internal/studio"
	"github.com/inkworks-labs/inkstudio/internal/tattoo"
	"github.com/inkworks-labs/inkstudio/internal/ui/features/common"
	"github.com/inkworks-labs/inkstudio/internal/ui/features/feedback/components"
	"github.com/inkworks-labs/inkstudio/internal/ui/notifier"
)

// FeedbackSignals carries the refinement text from the browser.
type FeedbackSignals struct {
	Feedback string `json:"feedback"`
}

// Handlers provides HTTP handlers for the feedback feature.
type Handlers struct {
	resolver *common.Resolver
	client   *tattoo.Client
	notifier *notifier.Notifier
	logger   *slog.Logger
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(resolver *common.Resolver, client *tattoo.Client, notify *notifier.Notifier, logger *slog.Logger) *Handlers {
	return &Handlers{
		resolver: resolver,
		client:   client,
		notifier: notify,
		logger:   logger,
	}
}

// View builds the panel view from session state.
func View(s *studio.Session) components.FeedbackView {
	return components.FeedbackView{
		HasImage: s.Result().HasImage(),
		Busy:     s.InFlight(studio.ActionAlter),
	}
}

// HandleSubmit posts the alteration request. Local validation failures
// report an error and never touch the backend; on success the result is
// replaced, the gallery grows and the input is cleared. On failure the
// input is kept so the user can adjust it.
func (h *Handlers) HandleSubmit(w http.ResponseWriter, r *http.Request) {
	// Read signals before creating the SSE (it consumes the body).
	var signals FeedbackSignals
	if err := datastar.ReadSignals(r, &signals); err != nil {
		sse := datastar.NewSSE(w, r)
		_ = sse.ConsoleError(err)
		return
	}

	sse := datastar.NewSSE(w, r)
	s := h.resolver.Session(w, r)

	current := s.Result()
	if !current.HasImage() {
		h.patchPanelError(sse, s, "No generated tattoo to refine yet.")
		return
	}
	if strings.TrimSpace(signals.Feedback) == "" {
		h.patchPanelError(sse, s, "Please enter feedback before submitting.")
		return
	}

	if !s.TryBegin(studio.ActionAlter) {
		return
	}
	defer s.End(studio.ActionAlter)

	// Show the disabled busy state while the request is outstanding.
	_ = sse.PatchElementTempl(components.Panel(components.FeedbackView{HasImage: true, Busy: true}))

	form := s.Form()
	req := tattoo.AlterRequest{
		Feedback:             signals.Feedback,
		Style:                form.Style,
		Theme:                form.Theme,
		ColorMode:            form.ColorMode,
		Size:                 form.Placement,
		GeneratedImageBase64: imaging.StripDataURL(current.ImageBase64),
	}

	res, err := h.client.Alter(r.Context(), req)
	if err != nil {
		h.logger.Error("alteration request failed", "error", err)
		h.patchPanelError(sse, s, err.Error())
		return
	}

	s.SetResult(res)
	h.logger.Info("design refined", "feedback", signals.Feedback)

	// Clear the input only on success.
	_ = sse.MarshalAndPatchSignals(map[string]any{"feedback": ""})
	_ = sse.PatchElementTempl(components.Panel(View(s)))
	h.notifier.Broadcast(s.ID)
}

func (h *Handlers) patchPanelError(sse *datastar.ServerSentEventGenerator, s *studio.Session, msg string) {
	view := View(s)
	view.Error = msg
	_ = sse.PatchElementTempl(components.Panel(view))
}

package studio

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"

	"github.com/starfederation/datastar-go/datastar"

	"github.com/inkworks-labs/inkstudio/internal/imaging"
	studiostate "github.com/inkworks-labs/inkstudio/internal/studio"
	"github.com/inkworks-labs/inkstudio/internal/tattoo"
	"github.com/inkworks-labs/inkstudio/internal/ui/features/common"
	"github.com/inkworks-labs/inkstudio/internal/ui/features/compare"
	"github.com/inkworks-labs/inkstudio/internal/ui/features/feedback"
	"github.com/inkworks-labs/inkstudio/internal/ui/features/gallery"
	"github.com/inkworks-labs/inkstudio/internal/ui/features/studio/pages"
	"github.com/inkworks-labs/inkstudio/internal/ui/notifier"
)

// maxPhotoBytes caps uploads and camera frames.
const maxPhotoBytes = 16 << 20

// GenerateSignals are the form signals bound on the studio page.
type GenerateSignals struct {
	Style     string `json:"style"`
	Theme     string `json:"theme"`
	ColorMode string `json:"colormode"`
	Placement string `json:"placement"`
}

type snapshotPayload struct {
	Frame string `json:"frame"`
}

type cameraErrorPayload struct {
	Message string `json:"message"`
}

// Handlers serves the studio page and orchestrates generation.
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

// View assembles the full page view from session state.
func View(s *studiostate.Session) pages.StudioView {
	form := s.Form()
	result := s.Result()
	return pages.StudioView{
		Style:        form.Style,
		Theme:        form.Theme,
		ColorMode:    form.ColorMode,
		Placement:    form.Placement,
		HasPhoto:     s.Photo() != nil,
		CameraActive: s.CameraActive(),
		Busy:         s.InFlight(studiostate.ActionGenerate),
		Error:        s.Error(),
		Idea:         result.Idea,
		Slider:       compare.View(s),
		Gallery:      gallery.View(s),
		Feedback:     feedback.View(s),
	}
}

func (h *Handlers) HandleStudioPage(w http.ResponseWriter, r *http.Request) {
	s := h.resolver.Session(w, r)
	if err := pages.StudioPage("Studio", View(s)).Render(r.Context(), w); err != nil {
		h.logger.Error("render studio page", "error", err)
	}
}

// HandleUpdates is the long-lived SSE stream. Every broadcast for this
// session re-renders the app shell.
func (h *Handlers) HandleUpdates(w http.ResponseWriter, r *http.Request) {
	s := h.resolver.Session(w, r)
	sse := datastar.NewSSE(w, r)

	updates := h.notifier.Subscribe(s.ID)
	defer h.notifier.Unsubscribe(s.ID, updates)

	for {
		select {
		case <-r.Context().Done():
			return
		case <-updates:
			if err := sse.PatchElementTempl(pages.AppShell(View(s))); err != nil {
				sse.ConsoleError(err)
				return
			}
		}
	}
}

// HandlePhoto accepts the multipart upload form and redirects back to
// the page, which re-renders with the new photo.
func (h *Handlers) HandlePhoto(w http.ResponseWriter, r *http.Request) {
	s := h.resolver.Session(w, r)

	file, header, err := r.FormFile("photo")
	if err != nil {
		s.SetError("Please choose a file to upload.")
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxPhotoBytes))
	if err != nil {
		s.SetError("Could not read the uploaded file.")
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	if _, err := imaging.Validate(data); err != nil {
		s.SetError("The uploaded file is not a usable image.")
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	s.SetPhoto(data, imaging.Sniff(data), header.Filename)
	s.SetError("")
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// HandleCameraToggle flips the camera switch. The browser glue reacts
// to the data-camera-active attribute on the patched shell.
func (h *Handlers) HandleCameraToggle(w http.ResponseWriter, r *http.Request) {
	s := h.resolver.Session(w, r)
	sse := datastar.NewSSE(w, r)

	s.SetCameraActive(!s.CameraActive())
	if err := sse.PatchElementTempl(pages.AppShell(View(s))); err != nil {
		sse.ConsoleError(err)
	}
}

// HandleSnapshot stores a captured camera frame as the session photo
// and turns the camera off.
func (h *Handlers) HandleSnapshot(w http.ResponseWriter, r *http.Request) {
	s := h.resolver.Session(w, r)

	var payload snapshotPayload
	if err := json.NewDecoder(io.LimitReader(r.Body, maxPhotoBytes)).Decode(&payload); err != nil {
		http.Error(w, "bad snapshot payload", http.StatusBadRequest)
		return
	}
	data, err := imaging.DecodeBase64Image(payload.Frame)
	if err == nil {
		_, err = imaging.Validate(data)
	}
	if err != nil {
		s.SetError("The captured frame could not be used.")
		h.notifier.Broadcast(s.ID)
		w.WriteHeader(http.StatusNoContent)
		return
	}

	s.SetPhoto(data, imaging.Sniff(data), "camera.png")
	s.SetCameraActive(false)
	s.SetError("")
	h.notifier.Broadcast(s.ID)
	w.WriteHeader(http.StatusNoContent)
}

// HandleCameraError surfaces getUserMedia failures reported by the
// browser and resets the switch.
func (h *Handlers) HandleCameraError(w http.ResponseWriter, r *http.Request) {
	s := h.resolver.Session(w, r)

	var payload cameraErrorPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "bad camera error payload", http.StatusBadRequest)
		return
	}

	msg := payload.Message
	if msg == "" {
		msg = "camera unavailable"
	}
	s.SetError("Camera error: " + msg)
	s.SetCameraActive(false)
	h.notifier.Broadcast(s.ID)
	w.WriteHeader(http.StatusNoContent)
}

// HandleGenerate validates the form, calls the backend and installs the
// result. The photo check happens before any network traffic.
func (h *Handlers) HandleGenerate(w http.ResponseWriter, r *http.Request) {
	var signals GenerateSignals
	if err := datastar.ReadSignals(r, &signals); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	s := h.resolver.Session(w, r)
	sse := datastar.NewSSE(w, r)

	s.SetForm(studiostate.Form{
		Style:     signals.Style,
		Theme:     signals.Theme,
		ColorMode: signals.ColorMode,
		Placement: signals.Placement,
	})

	photo := s.Photo()
	if photo == nil {
		s.SetError("Please select a photo to upload.")
		h.patchShell(sse, s)
		return
	}

	if !s.TryBegin(studiostate.ActionGenerate) {
		return
	}

	s.ClearResult()
	h.patchShell(sse, s)

	h.runGenerate(r, s, signals, photo)

	h.patchShell(sse, s)
	h.notifier.Broadcast(s.ID)
}

func (h *Handlers) runGenerate(r *http.Request, s *studiostate.Session, signals GenerateSignals, photo *studiostate.Photo) {
	defer s.End(studiostate.ActionGenerate)

	result, err := h.client.Generate(r.Context(), tattoo.GenerateRequest{
		Photo:     photo.Data,
		PhotoName: photo.Name,
		Style:     signals.Style,
		Theme:     signals.Theme,
		ColorMode: signals.ColorMode,
		Placement: signals.Placement,
	})
	if err != nil {
		h.logger.Warn("generate failed", "error", err)
		s.SetError(err.Error())
		return
	}
	s.SetResult(result)
}

// HandleReset starts the form over. The gallery survives.
func (h *Handlers) HandleReset(w http.ResponseWriter, r *http.Request) {
	s := h.resolver.Session(w, r)
	sse := datastar.NewSSE(w, r)

	s.Reset()
	if err := sse.PatchElementTempl(pages.AppShell(View(s))); err != nil {
		sse.ConsoleError(err)
	}
}

func (h *Handlers) patchShell(sse *datastar.ServerSentEventGenerator, s *studiostate.Session) {
	if err := sse.PatchElementTempl(pages.AppShell(View(s))); err != nil {
		sse.ConsoleError(err)
	}
}

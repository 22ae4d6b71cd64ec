package generation

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/inkworks-labs/inkstudio/internal/imaging"
	"github.com/inkworks-labs/inkstudio/internal/tattoo"
)

// maxPhotoBytes caps uploaded photo size (16 MiB).
const maxPhotoBytes = 16 << 20

// Handlers exposes the generation backend over HTTP with the same
// contract as the original service: success and failure both respond
// 200, failures carrying an in-band {"error": ...}.
type Handlers struct {
	generator *Generator
	logger    *slog.Logger
}

// NewHandlers creates the HTTP layer over a Generator.
func NewHandlers(g *Generator, logger *slog.Logger) *Handlers {
	return &Handlers{generator: g, logger: logger}
}

// Mount attaches the backend routes to router.
func (h *Handlers) Mount(router chi.Router) {
	router.Group(func(r chi.Router) {
		r.Use(allowAll)
		r.Post("/generate-tattoo/", h.HandleGenerate)
		r.Post("/alter-tattoo/", h.HandleAlter)
		r.Options("/generate-tattoo/", noContent)
		r.Options("/alter-tattoo/", noContent)
	})
}

// allowAll mirrors the permissive CORS policy of the original backend.
func allowAll(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "*")
		w.Header().Set("Access-Control-Allow-Headers", "*")
		next.ServeHTTP(w, r)
	})
}

func noContent(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusNoContent)
}

// HandleGenerate implements POST /generate-tattoo/ (multipart form).
func (h *Handlers) HandleGenerate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxPhotoBytes); err != nil {
		writeError(w, "invalid multipart form: "+err.Error())
		return
	}

	file, _, err := r.FormFile("photo")
	if err != nil {
		writeError(w, "photo is required")
		return
	}
	defer func() { _ = file.Close() }()

	photo, err := io.ReadAll(io.LimitReader(file, maxPhotoBytes))
	if err != nil {
		writeError(w, "reading photo: "+err.Error())
		return
	}

	res, err := h.generator.Generate(r.Context(),
		photo,
		imaging.Sniff(photo),
		r.FormValue("style"),
		r.FormValue("theme"),
		r.FormValue("color_mode"),
		r.FormValue("physical_attributes"),
	)
	if err != nil {
		h.logger.Error("generation failed", "error", err)
		writeError(w, err.Error())
		return
	}

	h.logger.Info("design generated", "idea_len", len(res.Idea))
	writeJSON(w, res)
}

// HandleAlter implements POST /alter-tattoo/ (JSON).
func (h *Handlers) HandleAlter(w http.ResponseWriter, r *http.Request) {
	var req tattoo.AlterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, "invalid request body: "+err.Error())
		return
	}

	// The wire contract is raw base64, but be lenient with clients that
	// send the full data URL.
	req.GeneratedImageBase64 = imaging.StripDataURL(req.GeneratedImageBase64)

	res, err := h.generator.Alter(r.Context(), req)
	if err != nil {
		h.logger.Error("alteration failed", "error", err)
		writeError(w, err.Error())
		return
	}

	h.logger.Info("design altered", "feedback", req.Feedback)
	writeJSON(w, res)
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, msg string) {
	writeJSON(w, map[string]string{"error": msg})
}

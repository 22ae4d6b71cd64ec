// Package gallery exposes the session gallery: thumbnails, selection
// toggling and client-side downloads.
package gallery

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/starfederation/datastar-go/datastar"

	gallerystate "github.com/inkworks-labs/inkstudio/internal/gallery"
	"github.com/inkworks-labs/inkstudio/internal/studio"
	"github.com/inkworks-labs/inkstudio/internal/ui/features/common"
	"github.com/inkworks-labs/inkstudio/internal/ui/features/gallery/components"
)

// Handlers provides HTTP handlers for the gallery feature.
type Handlers struct {
	resolver *common.Resolver
	logger   *slog.Logger
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(resolver *common.Resolver, logger *slog.Logger) *Handlers {
	return &Handlers{resolver: resolver, logger: logger}
}

// View builds the gallery view from session state.
func View(s *studio.Session) components.GalleryView {
	entries, selected := s.GallerySnapshot()

	view := components.GalleryView{}
	for i, entry := range entries {
		e := components.EntryView{
			Index:    i,
			Idea:     entry.Idea,
			Selected: selected[i],
		}
		if entry.HasImage() {
			e.Preview = "data:image/png;base64," + entry.ImageBase64
		}
		view.Entries = append(view.Entries, e)
		if e.Selected {
			view.SelectedCount++
		}
	}
	return view
}

// HandleToggle flips selection of one thumbnail and patches the grid.
// Entries without image data are not selectable.
func (h *Handlers) HandleToggle(w http.ResponseWriter, r *http.Request) {
	sse := datastar.NewSSE(w, r)
	s := h.resolver.Session(w, r)

	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		_ = sse.ConsoleError(fmt.Errorf("invalid gallery index: %w", err))
		return
	}

	s.Gallery(func(g *gallerystate.Gallery, sel *gallerystate.Selection) {
		entry, ok := g.Entry(index)
		if !ok || !entry.HasImage() {
			return
		}
		sel.Toggle(index)
	})

	if err := sse.PatchElementTempl(components.Gallery(View(s))); err != nil {
		_ = sse.ConsoleError(err)
	}
}

// HandleDownloadOne serves a single entry as a PNG attachment.
func (h *Handlers) HandleDownloadOne(w http.ResponseWriter, r *http.Request) {
	s := h.resolver.Session(w, r)

	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		http.Error(w, "invalid gallery index", http.StatusBadRequest)
		return
	}

	var data []byte
	s.Gallery(func(g *gallerystate.Gallery, _ *gallerystate.Selection) {
		data, err = g.Decode(index)
	})
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=%q", gallerystate.FileName(index)))
	_, _ = w.Write(data)
}

// HandleDownloadSelected serves the current selection as one zip.
// An empty selection is a no-op.
func (h *Handlers) HandleDownloadSelected(w http.ResponseWriter, r *http.Request) {
	s := h.resolver.Session(w, r)

	var indices []int
	s.Gallery(func(_ *gallerystate.Gallery, sel *gallerystate.Selection) {
		indices = sel.Indices()
	})
	if len(indices) == 0 {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	w.Header().Set("Content-Type", "application/zip")
	w.Header().Set("Content-Disposition", `attachment; filename="tattoos.zip"`)

	var archiveErr error
	s.Gallery(func(g *gallerystate.Gallery, _ *gallerystate.Selection) {
		archiveErr = g.Archive(w, indices)
	})
	if archiveErr != nil {
		// Headers are already written; all we can do is log.
		h.logger.Error("writing gallery archive", "error", archiveErr)
	}
}

package gallery

import (
	"log/slog"

	"github.com/go-chi/chi/v5"

	"github.com/inkworks-labs/inkstudio/internal/ui/features/common"
)

// SetupRoutes configures routes for the gallery feature.
func SetupRoutes(router chi.Router, resolver *common.Resolver, logger *slog.Logger) {
	handlers := NewHandlers(resolver, logger)

	router.Post("/gallery/toggle/{index}", handlers.HandleToggle)
	router.Get("/gallery/download", handlers.HandleDownloadSelected)
	router.Get("/gallery/download/{index}", handlers.HandleDownloadOne)
}

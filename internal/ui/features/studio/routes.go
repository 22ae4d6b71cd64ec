package studio

import (
	"log/slog"

	"github.com/go-chi/chi/v5"

	"github.com/inkworks-labs/inkstudio/internal/tattoo"
	"github.com/inkworks-labs/inkstudio/internal/ui/features/common"
	"github.com/inkworks-labs/inkstudio/internal/ui/notifier"
)

// SetupRoutes registers the studio page and its actions.
func SetupRoutes(router chi.Router, resolver *common.Resolver, client *tattoo.Client, notify *notifier.Notifier, logger *slog.Logger) {
	handlers := NewHandlers(resolver, client, notify, logger)

	router.Get("/", handlers.HandleStudioPage)
	router.Get("/updates", handlers.HandleUpdates)
	router.Post("/photo", handlers.HandlePhoto)
	router.Post("/camera/toggle", handlers.HandleCameraToggle)
	router.Post("/camera/error", handlers.HandleCameraError)
	router.Post("/snapshot", handlers.HandleSnapshot)
	router.Post("/generate", handlers.HandleGenerate)
	router.Post("/reset", handlers.HandleReset)
}

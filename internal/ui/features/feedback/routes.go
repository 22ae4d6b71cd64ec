package feedback

import (
	"log/slog"

	"github.com/go-chi/chi/v5"

	"github.com/inkworks-labs/inkstudio/internal/tattoo"
	"github.com/inkworks-labs/inkstudio/internal/ui/features/common"
	"github.com/inkworks-labs/inkstudio/internal/ui/notifier"
)

// SetupRoutes configures routes for the feedback feature.
func SetupRoutes(router chi.Router, resolver *common.Resolver, client *tattoo.Client, notify *notifier.Notifier, logger *slog.Logger) {
	handlers := NewHandlers(resolver, client, notify, logger)

	router.Post("/feedback", handlers.HandleSubmit)
}

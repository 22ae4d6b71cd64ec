package compare

import (
	"github.com/go-chi/chi/v5"

	"github.com/inkworks-labs/inkstudio/internal/ui/features/common"
)

// SetupRoutes configures routes for the comparison slider.
func SetupRoutes(router chi.Router, resolver *common.Resolver) {
	handlers := NewHandlers(resolver)

	router.Post("/compare/press", handlers.HandlePress)
	router.Post("/compare/move", handlers.HandleMove)
	router.Post("/compare/release", handlers.HandleRelease)
	router.Post("/compare/nudge", handlers.HandleNudge)
	router.Post("/compare/percent", handlers.HandlePercent)
}

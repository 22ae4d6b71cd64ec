// Package router sets up HTTP routes for the UI server.
package router

import (
	"log/slog"
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/sessions"
	"github.com/starfederation/datastar-go/datastar"

	"github.com/inkworks-labs/inkstudio/internal/generation"
	"github.com/inkworks-labs/inkstudio/internal/studio"
	"github.com/inkworks-labs/inkstudio/internal/tattoo"
	"github.com/inkworks-labs/inkstudio/internal/ui/features/common"
	compareFeature "github.com/inkworks-labs/inkstudio/internal/ui/features/compare"
	feedbackFeature "github.com/inkworks-labs/inkstudio/internal/ui/features/feedback"
	galleryFeature "github.com/inkworks-labs/inkstudio/internal/ui/features/gallery"
	studioFeature "github.com/inkworks-labs/inkstudio/internal/ui/features/studio"
	"github.com/inkworks-labs/inkstudio/internal/ui/notifier"
	"github.com/inkworks-labs/inkstudio/internal/ui/resources"
)

// SetupRoutes configures all routes for the UI server.
func SetupRoutes(
	router chi.Router,
	store *studio.Store,
	cookies *sessions.CookieStore,
	client *tattoo.Client,
	generator *generation.Handlers,
	notify *notifier.Notifier,
	logger *slog.Logger,
	isDev bool,
) {
	// Hot reload endpoint for dev mode
	if isDev {
		setupReload(router)
	}

	// Static assets
	router.Handle("/static/*", resources.Handler())

	// The bundled generation backend, when an API key is configured.
	if generator != nil {
		generator.Mount(router)
	}

	resolver := &common.Resolver{Cookies: cookies, Sessions: store}

	// Feature routes
	studioFeature.SetupRoutes(router, resolver, client, notify, logger)
	compareFeature.SetupRoutes(router, resolver)
	galleryFeature.SetupRoutes(router, resolver, logger)
	feedbackFeature.SetupRoutes(router, resolver, client, notify, logger)
}

func setupReload(router chi.Router) {
	reloadChan := make(chan struct{}, 1)
	var hotReloadOnce sync.Once

	router.Get("/reload", func(w http.ResponseWriter, r *http.Request) {
		sse := datastar.NewSSE(w, r)
		reload := func() { _ = sse.ExecuteScript("window.location.reload()") }
		hotReloadOnce.Do(reload)
		select {
		case <-reloadChan:
			reload()
		case <-r.Context().Done():
		}
	})

	router.Get("/hotreload", func(w http.ResponseWriter, _ *http.Request) {
		select {
		case reloadChan <- struct{}{}:
		default:
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})
}

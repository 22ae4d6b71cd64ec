package commands

import (
	"context"
	"fmt"
	"os/exec"
	"runtime"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/inkworks-labs/inkstudio/internal/cli/config"
	"github.com/inkworks-labs/inkstudio/internal/generation"
	"github.com/inkworks-labs/inkstudio/internal/tattoo"
	"github.com/inkworks-labs/inkstudio/internal/ui"
)

// ServeOptions holds options for the serve command.
type ServeOptions struct {
	Port      int
	NoBrowser bool
	Watch     bool
}

// NewServeCommand creates the serve command.
func NewServeCommand() *cobra.Command {
	opts := &ServeOptions{}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the InkStudio web server",
		Long: `Start a local web server hosting the tattoo preview studio.

The studio provides:
- Photo upload and camera capture
- Style, theme, color mode and placement selection
- Before/after comparison slider
- A session gallery with zip download
- Natural-language refinement of generated designs

With --api-key (or gemini.api_key in the config file) the generation
backend runs inside this process. Otherwise requests go to the
configured external backend.`,
		Example: `  # Start on the default port
  inkstudio serve

  # Start on a custom port
  inkstudio serve --port 3000

  # Run the bundled backend
  inkstudio serve --api-key $GEMINI_API_KEY`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd, opts)
		},
	}

	cmd.Flags().IntVar(&opts.Port, "port", 0, fmt.Sprintf("Port to serve on (default: %d)", config.DefaultPort))
	cmd.Flags().BoolVar(&opts.NoBrowser, "no-browser", false, "Don't auto-open browser")
	cmd.Flags().BoolVar(&opts.Watch, "watch", true, "Watch static assets in dev builds")

	return cmd
}

func runServe(cmd *cobra.Command, opts *ServeOptions) error {
	cfg := getConfig()
	logger := config.GetLogger(cmd.Context())

	srvCfg := cfg.GetServerConfig()

	// CLI flags override config file
	port := srvCfg.Port
	if opts.Port != 0 {
		port = opts.Port
	}

	autoOpen := srvCfg.AutoOpen
	if opts.NoBrowser {
		autoOpen = false
	}

	watch := srvCfg.Watch
	if cmd.Flags().Changed("watch") {
		watch = opts.Watch
	}

	gemini := cfg.GetGeminiConfig()
	backend := cfg.GetBackendConfig()

	var generator *generation.Handlers
	baseURL := backend.BaseURL
	if gemini.APIKey != "" {
		gen, err := generation.NewGenerator(cmd.Context(), generation.Config{
			APIKey: gemini.APIKey,
			Model:  gemini.Model,
		})
		if err != nil {
			return fmt.Errorf("failed to create generator: %w", err)
		}
		generator = generation.NewHandlers(gen, logger)
		baseURL = fmt.Sprintf("http://localhost:%d", port)
		logger.Info("bundled generation backend enabled", "model", gemini.Model)
	}

	serverCfg := ui.Config{
		Port:          port,
		Watch:         watch,
		SessionSecret: sessionSecret(srvCfg),
		SessionTTL:    srvCfg.SessionTTL,
		Client:        tattoo.NewClient(baseURL),
		Generator:     generator,
		Logger:        logger,
	}

	server := ui.NewServer(serverCfg)

	if autoOpen {
		url := fmt.Sprintf("http://localhost:%d", port)
		go openBrowser(url)
	}

	fmt.Printf("Starting studio on http://localhost:%d\n", port)
	fmt.Println("Press Ctrl+C to stop")

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	return server.Serve(ctx)
}

// sessionSecret returns the configured cookie secret, or a random
// per-process one. A random secret invalidates cookies across
// restarts, which only costs the browser a fresh session.
func sessionSecret(srv *config.ServerConfig) string {
	if srv.SessionSecret != "" {
		return srv.SessionSecret
	}
	return uuid.NewString()
}

// openBrowser opens the default browser to the specified URL.
func openBrowser(url string) {
	var cmd *exec.Cmd

	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", url) //nolint:noctx
	case "linux":
		cmd = exec.Command("xdg-open", url) //nolint:noctx
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url) //nolint:noctx
	default:
		return
	}

	_ = cmd.Start()
}

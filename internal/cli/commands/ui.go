package commands

import (
	"context"
	"fmt"
	"os/exec"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/hrdash/internal/pipeline"
	"github.com/leapstack-labs/hrdash/internal/ui"
)

// UIOptions holds options for the ui command.
type UIOptions struct {
	Port      int
	NoBrowser bool
	Watch     bool
}

// NewUICommand creates the ui command.
func NewUICommand() *cobra.Command {
	opts := &UIOptions{}

	cmd := &cobra.Command{
		Use:   "ui",
		Short: "Start the web dashboard",
		Long: `Start a local web server with the interactive HR dashboard.

The dashboard provides:
- Year of Hire, Employment Status and Recruitment Source filters
- Summary metric cards
- All eight charts, re-rendered for the current filters
- Live reload when a file-backed dataset changes
- Prometheus metrics at /metrics`,
		Example: `  # Start UI on default port
  hrdash ui

  # Start on custom port
  hrdash ui --port 3000

  # Start without auto-opening browser
  hrdash ui --no-browser`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runUI(cmd, opts)
		},
	}

	cmd.Flags().IntVar(&opts.Port, "port", 0, "Port to serve on (default: 8765)")
	cmd.Flags().BoolVar(&opts.NoBrowser, "no-browser", false, "Don't auto-open browser")
	cmd.Flags().BoolVar(&opts.Watch, "watch", true, "Reload when the dataset file changes")

	return cmd
}

func runUI(cmd *cobra.Command, opts *UIOptions) error {
	cc := NewCommandContext(cmd)
	cfg := cc.Cfg
	r := cc.Renderer

	// CLI flags override config file
	port := cfg.UI.Port
	if opts.Port != 0 {
		port = opts.Port
	}

	autoOpen := cfg.UI.AutoOpen
	if opts.NoBrowser {
		autoOpen = false
	}

	watch := cfg.UI.Watch
	if cmd.Flags().Changed("watch") {
		watch = opts.Watch
	}

	// The first load must succeed; later reloads keep the previous data on failure.
	runner, err := cc.LoadRunner(cmd.Context())
	if err != nil {
		return err
	}
	r.StatusLine("dataset", "success", fmt.Sprintf("%d employees from %s", runner.Rows(), cfg.Dataset.Type))

	var watchPath string
	if watch && cfg.FileBacked() {
		watchPath = cfg.Dataset.Path
	}

	server := ui.NewServer(ui.Config{
		Live: pipeline.NewLive(runner),
		Reload: func(ctx context.Context) (*pipeline.Runner, error) {
			return cc.LoadRunner(ctx)
		},
		Port:          port,
		Watch:         watch,
		WatchPath:     watchPath,
		SessionSecret: cfg.UI.SessionSecret,
		Logger:        cc.Logger,
	})

	// Open browser if configured
	url := fmt.Sprintf("http://localhost:%d", port)
	if autoOpen {
		go openBrowser(url)
	}

	r.Printf("Starting UI server on %s\n", url)
	if watchPath != "" {
		r.Muted("Watching " + watchPath)
	}
	r.Println("Press Ctrl+C to stop")

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	return server.Serve(ctx)
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

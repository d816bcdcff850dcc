package commands

import (
	"fmt"
	"os/exec"
	"runtime"

	"github.com/estree/estreegen/internal/preview"
	"github.com/spf13/cobra"
)

// ServeOptions holds options for the serve command.
type ServeOptions struct {
	Port    int
	NoWatch bool
	Open    bool
}

// NewServeCommand creates the serve command.
func NewServeCommand() *cobra.Command {
	opts := &ServeOptions{}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve generated outputs over HTTP with live reload",
		Long: `Start a local preview server for the schema.

Every emitter target is served at /<target> (for example /dts and
/markdown), rendered for the configured maximum version; pass ?version=N
to render another one. /api/definitions describes the merged model.

Source changes are picked up automatically and open browser tabs reload.`,
		Example: `  # Serve on the configured port
  estreegen serve

  # Serve on a custom port and open a browser
  estreegen serve --port 3000 --open

  # Serve a fixed snapshot
  estreegen serve --no-watch`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd, opts)
		},
	}

	cmd.Flags().IntVar(&opts.Port, "port", 0, "Port to serve on (default: serve.port or 8080)")
	cmd.Flags().BoolVar(&opts.NoWatch, "no-watch", false, "Don't reload when sources change")
	cmd.Flags().BoolVar(&opts.Open, "open", false, "Open the preview in a browser")

	return cmd
}

func runServe(cmd *cobra.Command, opts *ServeOptions) error {
	cmdCtx := NewCommandContext(cmd)
	r := cmdCtx.Renderer
	cfg := cmdCtx.Cfg

	if err := cfg.ValidateSources(); err != nil {
		return err
	}

	port := cfg.Serve.Port
	if opts.Port != 0 {
		port = opts.Port
	}

	server := preview.NewServer(preview.Config{
		Sources:    cfg.Sources,
		MaxVersion: cfg.EffectiveMaxVersion(),
		Port:       port,
		Watch:      !opts.NoWatch,
		Logger:     cmdCtx.Logger,
	})

	url := fmt.Sprintf("http://localhost:%d", port)
	if opts.Open {
		go openBrowser(url)
	}

	r.Printf("Serving %s\n", r.Styles().Path.Render(url))
	r.Muted("Press Ctrl+C to stop")

	ctx, stop := notifyContext(cmd.Context())
	defer stop()

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

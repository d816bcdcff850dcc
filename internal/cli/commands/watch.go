package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/estree/estreegen/internal/build"
	"github.com/estree/estreegen/internal/cli/output"
	"github.com/estree/estreegen/internal/watch"
	"github.com/estree/estreegen/pkg/emit"
	"github.com/spf13/cobra"
)

// NewWatchCommand creates the watch command.
func NewWatchCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Rebuild outputs whenever sources change",
		Long: `Run estreegen build, then keep watching the schema sources and rebuild
after every change. A failed rebuild is reported and leaves the previous
outputs in place.`,
		Example: `  # Rebuild on change
  estreegen watch

  # Watch with debug logging
  estreegen watch -v`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runWatch(cmd)
		},
	}

	return cmd
}

func runWatch(cmd *cobra.Command) error {
	cmdCtx := NewCommandContext(cmd)
	r := cmdCtx.Renderer
	cfg := cmdCtx.Cfg

	if err := cfg.Validate(emit.List()); err != nil {
		return err
	}
	if err := cfg.ValidateSources(); err != nil {
		return err
	}

	ctx, stop := notifyContext(cmd.Context())
	defer stop()

	rebuild := func(ctx context.Context) {
		res, err := build.Run(ctx, cmdCtx.BuildConfig(), cmdCtx.Logger)
		if err != nil {
			r.Error(err.Error())
			return
		}
		r.Success(fmt.Sprintf("built %d outputs in %s", len(res.Outputs), res.Duration.Round(time.Millisecond)))
	}

	rebuild(ctx)
	r.Muted("Watching for changes. Press Ctrl+C to stop")

	w := watch.New(cfg.Sources, build.SourceExt, cmdCtx.Logger)
	return w.Run(ctx, func(ctx context.Context, changed []string) {
		if r.EffectiveMode() != output.ModeJSON {
			for _, path := range changed {
				r.Muted("changed " + path)
			}
		}
		rebuild(ctx)
	})
}

// notifyContext returns a context cancelled on SIGINT or SIGTERM.
func notifyContext(parent context.Context) (context.Context, context.CancelFunc) {
	if parent == nil {
		parent = context.Background()
	}
	return signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
}

package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/go-drift/uicore/pkg/engine"
)

func init() {
	var (
		addr   string
		frames int
		tick   time.Duration
	)
	c := &cobra.Command{
		Use:   "serve",
		Short: "Run a demo and expose the inspector over HTTP",
		Long: `Run a showcase component and serve the inspector endpoints until
interrupted:

  /health   liveness
  /tree     snapshot of the tree (?format=json|yaml)
  /frames   recent frame timings (?limit=N&min_ms=F)
  /debug    tree statistics

Frames are pumped whenever the app requests one.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := loadSession()
			if err != nil {
				return err
			}
			r := s.start(max(s.frameCount(cmd, frames), 1))

			inspector := engine.NewInspector(r)
			port, err := inspector.Start(addr)
			if err != nil {
				return err
			}
			defer inspector.Stop()
			fmt.Fprintf(cmd.OutOrStdout(), "Inspecting %s (%s) on port %d (Ctrl+C to stop)...\n", s.cfg.AppName, s.demo.Name, port)

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			pump(ctx, r, tick)
			fmt.Fprintln(cmd.OutOrStdout(), "\nInspector stopped.")
			return nil
		},
	}
	c.Flags().StringVar(&addr, "addr", "localhost:9229", "listen address")
	c.Flags().IntVarP(&frames, "frames", "n", 0, "frames to run before serving (default from config)")
	c.Flags().DurationVar(&tick, "tick", 16*time.Millisecond, "interval between frame checks")
	RegisterCommand(c)
}

// pump runs a frame whenever r needs one until ctx is done.
func pump(ctx context.Context, r engine.Runner, tick time.Duration) {
	ticker := time.NewTicker(tick)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if r.NeedsFrame() {
				r.Frame()
			}
		}
	}
}

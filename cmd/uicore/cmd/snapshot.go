package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func init() {
	var (
		frames int
		format string
		clicks []string
		out    string
	)
	c := &cobra.Command{
		Use:   "snapshot",
		Short: "Print the tree and display list after running a demo",
		Long: `Run a showcase component for a number of frames, replay clicks and
print a snapshot of the final tree and display list.

Each --click is delivered as a pointer down/up pair followed by one
more frame, in the order given.

Examples:
  uicore snapshot --frames 1
  uicore snapshot --demo counter --click 45,45 --click 115,45 --format json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := loadSession()
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("format") {
				format = s.cfg.Format
			}

			r := s.start(max(s.frameCount(cmd, frames), 1))
			for _, p := range clicks {
				x, y, err := parsePoint(p)
				if err != nil {
					return err
				}
				if n := r.Click(x, y); n == 0 {
					fmt.Fprintf(cmd.ErrOrStderr(), "Note: click at %s hit no handler\n", p)
				}
				r.Frame()
			}

			data, err := r.Snapshot().Encode(format)
			if err != nil {
				return err
			}
			if out == "" {
				_, err = cmd.OutOrStdout().Write(data)
				return err
			}
			if err := os.WriteFile(out, data, 0o644); err != nil {
				return fmt.Errorf("failed to write snapshot: %w", err)
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "Wrote %s\n", out)
			return nil
		},
	}
	c.Flags().IntVarP(&frames, "frames", "n", 0, "frames to run before replaying clicks (default from config)")
	c.Flags().StringVarP(&format, "format", "f", "", "output format: yaml or json (default from config)")
	c.Flags().StringArrayVar(&clicks, "click", nil, "click at x,y after the initial frames (repeatable)")
	c.Flags().StringVarP(&out, "out", "o", "", "write the snapshot to a file instead of stdout")
	RegisterCommand(c)
}

// Package cmd implements the uicore CLI commands.
//
// The root command dispatches to subcommands (version, snapshot, web,
// serve) that run a showcase component headlessly.
package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/go-drift/uicore/cmd/uicore/internal/config"
	"github.com/go-drift/uicore/pkg/engine"
	"github.com/go-drift/uicore/pkg/errors"
	"github.com/go-drift/uicore/showcase"
)

// Version information set at build time.
var (
	Version   = "0.1.0-dev"
	BuildTime = "unknown"
)

// Global flags.
var (
	verbose    bool
	projectDir string
	demoName   string
)

var rootCmd = &cobra.Command{
	Use:   "uicore",
	Short: "uicore - run retained UI components headlessly",
	Long: `uicore drives the retained UI runtime without a window. It runs a
showcase component for a number of frames, replays pointer input and
prints the resulting tree, display list or DOM operations.

Configuration is read from uicore.yaml or uicore.toml in the project
directory when present.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		errors.SetHandler(&errors.LogHandler{Verbose: verbose, Out: cmd.ErrOrStderr()})
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log framework errors with stack traces")
	rootCmd.PersistentFlags().StringVar(&projectDir, "dir", "", "project directory (default: nearest directory with a config file or go.mod)")
	rootCmd.PersistentFlags().StringVar(&demoName, "demo", "", "showcase component to run (see 'uicore demos')")
}

// RegisterCommand adds a subcommand to the CLI.
func RegisterCommand(cmd *cobra.Command) {
	rootCmd.AddCommand(cmd)
}

// Execute runs the CLI.
func Execute() error {
	return rootCmd.Execute()
}

// session is the resolved configuration plus the demo to run.
type session struct {
	cfg  *config.Resolved
	demo showcase.Demo
}

func loadSession() (*session, error) {
	dir := projectDir
	if dir == "" {
		var err error
		if dir, err = config.FindProjectRoot(); err != nil {
			return nil, err
		}
	}
	cfg, err := config.Resolve(dir)
	if err != nil {
		return nil, err
	}

	name := demoName
	if name == "" {
		name = cfg.Demo
	}
	demo, ok := showcase.Lookup(name)
	if !ok {
		return nil, fmt.Errorf("unknown demo %q (run 'uicore demos' to list them)", name)
	}
	return &session{cfg: cfg, demo: demo}, nil
}

// start creates a runner for the session's demo and pumps its first
// frames.
func (s *session) start(frames int) engine.Runner {
	r := s.demo.New(s.cfg.Width, s.cfg.Height)
	for range frames {
		r.Frame()
	}
	return r
}

// frameCount returns the --frames flag if it was set, otherwise the
// configured value.
func (s *session) frameCount(cmd *cobra.Command, flag int) int {
	if cmd.Flags().Changed("frames") {
		return flag
	}
	return s.cfg.Frames
}

// parsePoint parses "x,y" in pixels.
func parsePoint(s string) (x, y float64, err error) {
	xs, ys, ok := strings.Cut(s, ",")
	if !ok {
		return 0, 0, fmt.Errorf("invalid point %q (want x,y)", s)
	}
	if x, err = strconv.ParseFloat(strings.TrimSpace(xs), 64); err != nil {
		return 0, 0, fmt.Errorf("invalid x in %q: %w", s, err)
	}
	if y, err = strconv.ParseFloat(strings.TrimSpace(ys), 64); err != nil {
		return 0, 0, fmt.Errorf("invalid y in %q: %w", s, err)
	}
	return x, y, nil
}

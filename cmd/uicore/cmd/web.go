package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/go-drift/uicore/pkg/core"
	"github.com/go-drift/uicore/pkg/engine"
	"github.com/go-drift/uicore/pkg/errors"
	"github.com/go-drift/uicore/pkg/web"
)

func init() {
	var (
		frames     int
		codecName  string
		clickNodes []string
		showHTML   bool
	)
	c := &cobra.Command{
		Use:   "web",
		Short: "Render a demo into an in-memory DOM and print the DOM operations",
		Long: `Run a showcase component, mirror its tree into an in-memory DOM and
print every DOM operation issued, one per line.

Each --click-node names a tag or a text node. A click on the first
matching node is encoded with the configured codec, decoded and
dispatched the way a browser host would deliver it, then one more
frame is rendered.

Examples:
  uicore web
  uicore web --click-node div --click-node "state 421" --html
  uicore web --codec cbor --click-node div`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := loadSession()
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("codec") {
				codecName = s.cfg.Codec
			}
			codec, err := web.CodecByName(codecName)
			if err != nil {
				return err
			}

			stdout := cmd.OutOrStdout()
			errors.SetPanicHook(web.ConsoleHook(func(msg string) {
				fmt.Fprintln(cmd.ErrOrStderr(), msg)
			}))
			defer errors.SetPanicHook(nil)

			dom := web.NewMemoryDOM()
			mount := web.NewMount(dom, dom.Body())
			defer mount.Unmount()

			r := s.demo.New(s.cfg.Width, s.cfg.Height)
			n := max(s.frameCount(cmd, frames), 1)
			for i := range n {
				renderWeb(stdout, r, mount, dom, fmt.Sprintf("frame %d", i+1))
			}

			for _, target := range clickNodes {
				node := dom.Find(target)
				if node == 0 {
					return fmt.Errorf("no DOM node matches %q", target)
				}
				event := core.PointerClick.DOMName()
				for _, h := range dom.Listeners(node, event) {
					data, err := codec.Encode(web.Message{Handle: h, Event: event})
					if err != nil {
						return err
					}
					if err := mount.HandleMessage(codec, data); err != nil {
						return err
					}
				}
				renderWeb(stdout, r, mount, dom, fmt.Sprintf("click %q", target))
			}

			if showHTML {
				fmt.Fprintln(stdout, "# html")
				fmt.Fprintln(stdout, dom.HTML(dom.Body()))
			}
			return nil
		},
	}
	c.Flags().IntVarP(&frames, "frames", "n", 0, "frames to render before clicking (default from config)")
	c.Flags().StringVar(&codecName, "codec", "", "host message codec: json or cbor (default from config)")
	c.Flags().StringArrayVar(&clickNodes, "click-node", nil, "click the first node matching a tag or text (repeatable)")
	c.Flags().BoolVar(&showHTML, "html", false, "print the final document")
	RegisterCommand(c)
}

// renderWeb runs one frame, mirrors it into the DOM and prints the
// operations it caused under a heading.
func renderWeb(w io.Writer, r engine.Runner, mount *web.Mount, dom *web.MemoryDOM, heading string) {
	r.Frame()
	dom.ResetOps()
	mount.Render(r.Root())
	fmt.Fprintf(w, "# %s\n", heading)
	for _, op := range dom.Ops() {
		fmt.Fprintln(w, op)
	}
}

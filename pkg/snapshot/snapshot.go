// Package snapshot serializes finalized element trees for golden-file tests
// and tooling.
package snapshot

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/google/go-cmp/cmp"
	"gopkg.in/yaml.v3"

	"github.com/go-drift/uicore/pkg/callback"
	"github.com/go-drift/uicore/pkg/core"
	"github.com/go-drift/uicore/pkg/graphics"
)

// UpdateEnv is the environment variable that switches MatchesFile into
// update mode.
const UpdateEnv = "UICORE_UPDATE_SNAPSHOTS"

// TestingT is the subset of *testing.T used by MatchesFile, allowing
// test doubles to intercept failures.
type TestingT interface {
	Helper()
	Fatalf(format string, args ...any)
	Errorf(format string, args ...any)
	Name() string
}

// Snapshot captures the element tree and, optionally, the recorded display
// operations of one frame.
type Snapshot struct {
	Tree       *Node       `json:"tree" yaml:"tree"`
	DisplayOps []DisplayOp `json:"displayOps,omitempty" yaml:"displayOps,omitempty"`
}

// Node is a serialized element node.
type Node struct {
	ID       string            `json:"id" yaml:"id"`
	Type     string            `json:"type" yaml:"type"`
	Show     bool              `json:"show" yaml:"show"`
	Group    bool              `json:"group,omitempty" yaml:"group,omitempty"`
	Props    map[string]string `json:"props,omitempty" yaml:"props,omitempty"`
	Events   []string          `json:"events,omitempty" yaml:"events,omitempty"`
	Children []*Node           `json:"children,omitempty" yaml:"children,omitempty"`
}

// DisplayOp is a serialized drawing operation.
type DisplayOp struct {
	Op     string     `json:"op" yaml:"op"`
	Bounds [4]float64 `json:"bounds" yaml:"bounds,flow"`
	Color  string     `json:"color,omitempty" yaml:"color,omitempty"`
	Text   string     `json:"text,omitempty" yaml:"text,omitempty"`
}

// Capture serializes root and its whole subtree, hidden nodes included.
// dl may be nil.
func Capture(root *core.Node, dl *graphics.DisplayList) *Snapshot {
	snap := &Snapshot{}
	if root != nil {
		snap.Tree = captureNode(root, &typeCounter{})
	}
	if dl != nil {
		snap.DisplayOps = serializeDisplayList(dl)
	}
	return snap
}

// JSON returns the snapshot as indented JSON.
func (s *Snapshot) JSON() ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// YAML returns the snapshot as YAML.
func (s *Snapshot) YAML() ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(s); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Encode returns the snapshot in the given format ("json" or "yaml").
func (s *Snapshot) Encode(format string) ([]byte, error) {
	switch strings.ToLower(format) {
	case "json":
		return s.JSON()
	case "yaml", "yml":
		return s.YAML()
	default:
		return nil, fmt.Errorf("snapshot: unknown format %q", format)
	}
}

// Load reads a snapshot file. The format is chosen by extension: .yaml and
// .yml are YAML, anything else is JSON.
func Load(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var snap Snapshot
	if isYAML(path) {
		if err := yaml.Unmarshal(data, &snap); err != nil {
			return nil, fmt.Errorf("invalid snapshot YAML: %w", err)
		}
		return &snap, nil
	}
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("invalid snapshot JSON: %w", err)
	}
	return &snap, nil
}

// MatchesFile compares this snapshot against a golden file. On mismatch it
// reports a diff and instructions for updating. When UICORE_UPDATE_SNAPSHOTS=1
// is set, the file is silently updated instead.
func (s *Snapshot) MatchesFile(t TestingT, path string) {
	t.Helper()

	if os.Getenv(UpdateEnv) == "1" {
		if err := s.UpdateFile(path); err != nil {
			t.Fatalf("failed to update snapshot: %v", err)
		}
		return
	}

	expected, err := Load(path)
	if err != nil {
		if os.IsNotExist(err) {
			t.Fatalf("snapshot file missing: %s\n\nTo create: %s=1 go test -run %s", path, UpdateEnv, t.Name())
			return
		}
		t.Fatalf("failed to load snapshot: %v", err)
		return
	}

	if diff := s.Diff(expected); diff != "" {
		t.Errorf("snapshot mismatch: %s\n%s\n\nTo update: %s=1 go test -run %s", path, diff, UpdateEnv, t.Name())
	}
}

// UpdateFile writes this snapshot to the given path, creating directories
// as needed.
func (s *Snapshot) UpdateFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	format := "json"
	if isYAML(path) {
		format = "yaml"
	}
	data, err := s.Encode(format)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// Diff returns a line diff between other (expected) and this snapshot
// (actual). Returns empty string if equal.
func (s *Snapshot) Diff(other *Snapshot) string {
	a, _ := s.JSON()
	b, _ := other.JSON()
	if bytes.Equal(a, b) {
		return ""
	}
	return cmp.Diff(strings.Split(string(b), "\n"), strings.Split(string(a), "\n"))
}

// --- Internal ---

func isYAML(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}

// typeCounter assigns stable IDs like "text#0", "text#1".
type typeCounter struct {
	counts map[string]int
}

func (c *typeCounter) next(typeName string) string {
	if c.counts == nil {
		c.counts = make(map[string]int)
	}
	n := c.counts[typeName]
	c.counts[typeName] = n + 1
	return fmt.Sprintf("%s#%d", typeName, n)
}

func captureNode(n *core.Node, counter *typeCounter) *Node {
	typeName := n.Payload.Kind().String()
	node := &Node{
		ID:    counter.next(typeName),
		Type:  typeName,
		Show:  n.Show,
		Group: n.Group,
	}
	if props := captureProperties(n.Payload); len(props) > 0 {
		node.Props = props
	}
	n.Events.Each(func(kind core.EventKind, _ callback.BoundCallback) {
		node.Events = append(node.Events, kind.String())
	})
	for _, c := range n.Children {
		node.Children = append(node.Children, captureNode(c, counter))
	}
	return node
}

func captureProperties(p core.Payload) map[string]string {
	switch p := p.(type) {
	case core.Root:
		return map[string]string{"width": formatFloat(p.Width), "height": formatFloat(p.Height)}
	case core.Rect:
		return map[string]string{
			"color":  p.Color.String(),
			"x":      p.Bounds.X.CSS(),
			"y":      p.Bounds.Y.CSS(),
			"width":  p.Bounds.Width.CSS(),
			"height": p.Bounds.Height.CSS(),
		}
	case core.Span:
		props := map[string]string{
			"color": p.Color.String(),
			"x":     p.X.CSS(),
			"y":     p.Y.CSS(),
		}
		if p.MaxWidth > 0 {
			props["maxWidth"] = formatFloat(p.MaxWidth)
		}
		return props
	case core.Text:
		return map[string]string{"content": p.Content}
	default:
		return nil
	}
}

func serializeDisplayList(dl *graphics.DisplayList) []DisplayOp {
	ops := dl.Ops()
	out := make([]DisplayOp, 0, len(ops))
	for _, op := range ops {
		d := DisplayOp{
			Op:     op.Kind.String(),
			Bounds: [4]float64{round2(op.Bounds.X), round2(op.Bounds.Y), round2(op.Bounds.Width), round2(op.Bounds.Height)},
			Text:   op.Text,
		}
		if op.Kind != graphics.OpTranslate {
			d.Color = op.Color.String()
		}
		out = append(out, d)
	}
	return out
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(round2(v), 'f', -1, 64)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

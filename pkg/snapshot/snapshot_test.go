package snapshot

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/go-drift/uicore/pkg/callback"
	"github.com/go-drift/uicore/pkg/component"
	"github.com/go-drift/uicore/pkg/core"
	"github.com/go-drift/uicore/pkg/graphics"
)

type widget struct {
	onClick callback.Callback[widget]
}

func sampleTree(color graphics.Color) *core.Node {
	cell := component.New(widget{onClick: callback.FromNative(func(*widget) {})})
	root := core.NewRoot(200, 100)
	r := core.ElementIn(root, core.Rect{Color: color, Bounds: graphics.BoundsPx(0, 0, 10, 10)}, 0)
	cell.Borrow(func(w *widget) { core.HandleEvent(r, cell, core.PointerClick, &w.onClick) })
	core.ElementOut(root, core.Text{Content: "hidden"}, 1)
	g := core.BeginGroup(root, 2)
	core.ElementIn(g, core.Text{Content: "a"}, 0)
	core.ElementIn(g, core.Text{Content: "b"}, 1)
	return root
}

func TestCapture_Structure(t *testing.T) {
	snap := Capture(sampleTree(graphics.ColorRed), nil)

	want := &Node{
		ID: "root#0", Type: "root", Show: true,
		Props: map[string]string{"width": "200", "height": "100"},
		Children: []*Node{
			{
				ID: "rect#0", Type: "rect", Show: true,
				Props:  map[string]string{"color": "#ff0000ff", "x": "0px", "y": "0px", "width": "10px", "height": "10px"},
				Events: []string{"pointer_click"},
			},
			{ID: "text#0", Type: "text", Show: false, Props: map[string]string{"content": "hidden"}},
			{
				ID: "group#0", Type: "group", Show: true, Group: true,
				Children: []*Node{
					{ID: "text#1", Type: "text", Show: true, Props: map[string]string{"content": "a"}},
					{ID: "text#2", Type: "text", Show: true, Props: map[string]string{"content": "b"}},
				},
			},
		},
	}
	if diff := cmp.Diff(want, snap.Tree); diff != "" {
		t.Errorf("Capture mismatch (-want +got):\n%s", diff)
	}
	if snap.DisplayOps != nil {
		t.Error("no display list was given")
	}
}

func TestCapture_DisplayOps(t *testing.T) {
	var r graphics.PictureRecorder
	c := r.BeginRecording(10, 10)
	c.Translate(1.005, 2)
	c.DrawRect(graphics.PxBounds{Width: 3, Height: 4}, graphics.ColorBlue)
	c.DrawText("hi", 0, 0, 50, graphics.ColorBlack)
	snap := Capture(nil, r.EndRecording())

	want := []DisplayOp{
		{Op: "translate", Bounds: [4]float64{1, 2, 0, 0}},
		{Op: "rect", Bounds: [4]float64{0, 0, 3, 4}, Color: "#0000ffff"},
		{Op: "text", Bounds: [4]float64{0, 0, 50, 0}, Color: "#000000ff", Text: "hi"},
	}
	if diff := cmp.Diff(want, snap.DisplayOps); diff != "" {
		t.Errorf("DisplayOps mismatch (-want +got):\n%s", diff)
	}
}

func TestSnapshot_Encode(t *testing.T) {
	snap := Capture(sampleTree(graphics.ColorRed), nil)

	j, err := snap.Encode("json")
	if err != nil || !strings.Contains(string(j), `"type": "group"`) {
		t.Errorf("JSON encode = %s, %v", j, err)
	}
	y, err := snap.Encode("YAML")
	if err != nil || !strings.Contains(string(y), "type: group") {
		t.Errorf("YAML encode = %s, %v", y, err)
	}
	if _, err := snap.Encode("xml"); err == nil {
		t.Error("unknown format should fail")
	}
}

func TestSnapshot_Diff(t *testing.T) {
	a := Capture(sampleTree(graphics.ColorRed), nil)
	b := Capture(sampleTree(graphics.ColorRed), nil)
	if diff := a.Diff(b); diff != "" {
		t.Errorf("equal trees should not differ:\n%s", diff)
	}
	c := Capture(sampleTree(graphics.ColorGreen), nil)
	if diff := a.Diff(c); diff == "" {
		t.Error("expected diff for different snapshots")
	}
}

func TestSnapshot_UpdateAndMatch(t *testing.T) {
	t.Setenv(UpdateEnv, "")
	snap := Capture(sampleTree(graphics.ColorRed), nil)
	for _, name := range []string{"tree.snapshot.json", "tree.snapshot.yaml"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "testdata", name)
			if err := snap.UpdateFile(path); err != nil {
				t.Fatalf("UpdateFile failed: %v", err)
			}
			snap.MatchesFile(t, path)

			loaded, err := Load(path)
			if err != nil {
				t.Fatalf("Load failed: %v", err)
			}
			if diff := cmp.Diff(snap, loaded); diff != "" {
				t.Errorf("round trip mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestSnapshot_MatchesFile_MissingFile(t *testing.T) {
	t.Setenv(UpdateEnv, "")
	snap := Capture(sampleTree(graphics.ColorRed), nil)

	failed := false
	sub := &fatalRecorder{name: t.Name(), onFatal: func() { failed = true }}
	snap.MatchesFile(sub, filepath.Join(t.TempDir(), "missing.json"))

	if !failed {
		t.Error("expected MatchesFile to fail for missing file")
	}
}

func TestSnapshot_MatchesFile_Mismatch(t *testing.T) {
	t.Setenv(UpdateEnv, "")
	path := filepath.Join(t.TempDir(), "snap.json")
	if err := Capture(sampleTree(graphics.ColorRed), nil).UpdateFile(path); err != nil {
		t.Fatal(err)
	}

	errored := false
	sub := &errorRecorder{name: t.Name(), onError: func() { errored = true }}
	Capture(sampleTree(graphics.ColorBlue), nil).MatchesFile(sub, path)

	if !errored {
		t.Error("expected MatchesFile to report error for mismatch")
	}
}

func TestSnapshot_UpdateMode(t *testing.T) {
	path := filepath.Join(t.TempDir(), "update.snapshot.yaml")
	t.Setenv(UpdateEnv, "1")
	Capture(sampleTree(graphics.ColorRed), nil).MatchesFile(t, path)

	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Error("snapshot file should be created in update mode")
	}
}

func TestLoad_Invalid(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"bad.json", "bad.yaml"} {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte("{{not valid"), 0o644); err != nil {
			t.Fatal(err)
		}
		if _, err := Load(path); err == nil {
			t.Errorf("Load(%s) should fail", name)
		}
	}
}

// fatalRecorder intercepts Fatalf calls for testing MatchesFile failures.
type fatalRecorder struct {
	name    string
	onFatal func()
}

func (r *fatalRecorder) Fatalf(format string, args ...any) { r.onFatal() }
func (r *fatalRecorder) Errorf(format string, args ...any) {}
func (r *fatalRecorder) Helper()                           {}
func (r *fatalRecorder) Name() string                      { return r.name }

// errorRecorder intercepts Errorf calls for testing MatchesFile mismatches.
type errorRecorder struct {
	name    string
	onError func()
}

func (r *errorRecorder) Fatalf(format string, args ...any) {}
func (r *errorRecorder) Errorf(format string, args ...any) { r.onError() }
func (r *errorRecorder) Helper()                           {}
func (r *errorRecorder) Name() string                      { return r.name }

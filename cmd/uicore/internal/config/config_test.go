package config

import (
	stderrors "errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/go-drift/uicore/pkg/errors"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestResolve_Defaults(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "go.mod", "module example.com/acme/widgets/v2\n\ngo 1.24\n")

	got, err := Resolve(dir)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	want := &Resolved{
		Root:       dir,
		ModulePath: "example.com/acme/widgets/v2",
		AppName:    "widgets",
		Width:      DefaultWidth,
		Height:     DefaultHeight,
		Frames:     DefaultFrames,
		Format:     DefaultFormat,
		Codec:      DefaultCodec,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Resolve mismatch (-want +got):\n%s", diff)
	}
}

func TestResolve_NoGoMod(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "sketchbook")
	os.Mkdir(dir, 0o755)

	got, err := Resolve(dir)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if got.ModulePath != "" || got.AppName != "sketchbook" {
		t.Errorf("got module %q name %q", got.ModulePath, got.AppName)
	}
}

func TestResolve_YAML(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, YAMLFile, `
app:
  name: Demo
  demo: counter
window:
  width: 320
  height: 240
run:
  frames: 5
  format: JSON
web:
  codec: cbor
`)

	got, err := Resolve(dir)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if got.AppName != "Demo" || got.Demo != "counter" {
		t.Errorf("app = %q/%q", got.AppName, got.Demo)
	}
	if got.Width != 320 || got.Height != 240 || got.Frames != 5 {
		t.Errorf("window/run = %vx%v frames %d", got.Width, got.Height, got.Frames)
	}
	if got.Format != "json" || got.Codec != "cbor" {
		t.Errorf("format %q codec %q", got.Format, got.Codec)
	}
	if got.Source != filepath.Join(dir, YAMLFile) {
		t.Errorf("Source = %q", got.Source)
	}
}

func TestResolve_TOML(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, TOMLFile, `
[window]
width = 1024.0

[run]
frames = 1
`)

	got, err := Resolve(dir)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if got.Width != 1024 || got.Height != DefaultHeight || got.Frames != 1 {
		t.Errorf("got %vx%v frames %d", got.Width, got.Height, got.Frames)
	}
	if got.Source != filepath.Join(dir, TOMLFile) {
		t.Errorf("Source = %q", got.Source)
	}
}

func TestResolve_YAMLWinsOverTOML(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, YAMLFile, "run:\n  frames: 7\n")
	writeFile(t, dir, TOMLFile, "[run]\nframes = 9\n")

	got, err := Resolve(dir)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if got.Frames != 7 {
		t.Errorf("Frames = %d, want 7 from YAML", got.Frames)
	}
}

func TestResolve_Errors(t *testing.T) {
	tests := []struct {
		name, file, content string
	}{
		{"bad yaml", YAMLFile, "run: [unterminated"},
		{"bad toml", TOMLFile, "[run\nframes = 1"},
		{"bad format", YAMLFile, "run:\n  format: xml\n"},
		{"bad codec", YAMLFile, "web:\n  codec: msgpack\n"},
		{"negative frames", YAMLFile, "run:\n  frames: -1\n"},
		{"negative width", TOMLFile, "[window]\nwidth = -5.0\n"},
		{"empty module", "go.mod", "go 1.24\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			writeFile(t, dir, tt.file, tt.content)

			_, err := Resolve(dir)
			var uiErr *errors.UIError
			if !stderrors.As(err, &uiErr) {
				t.Fatalf("expected *UIError, got %v", err)
			}
			if uiErr.Kind != errors.KindConfig {
				t.Errorf("Kind = %v, want config", uiErr.Kind)
			}
		})
	}
}

func TestFindProjectRoot(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, YAMLFile, "")
	nested := filepath.Join(root, "a", "b")
	os.MkdirAll(nested, 0o755)

	t.Chdir(nested)
	got, err := FindProjectRoot()
	if err != nil {
		t.Fatal(err)
	}
	// TempDir may sit behind a symlink, so compare resolved paths.
	want, _ := filepath.EvalSymlinks(root)
	if got, _ = filepath.EvalSymlinks(got); got != want {
		t.Errorf("FindProjectRoot = %q, want %q", got, want)
	}
}

// Package config resolves the optional uicore.yaml or uicore.toml project
// configuration used by the uicore CLI.
package config

import (
	stderrors "errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"golang.org/x/mod/modfile"
	"golang.org/x/mod/module"
	"gopkg.in/yaml.v3"

	"github.com/go-drift/uicore/pkg/errors"
)

// File names searched for, in order.
const (
	YAMLFile = "uicore.yaml"
	TOMLFile = "uicore.toml"
)

// Config is the on-disk configuration. Every field is optional.
type Config struct {
	App    AppConfig    `yaml:"app" toml:"app"`
	Window WindowConfig `yaml:"window" toml:"window"`
	Run    RunConfig    `yaml:"run" toml:"run"`
	Web    WebConfig    `yaml:"web" toml:"web"`
}

// AppConfig contains application metadata.
type AppConfig struct {
	Name string `yaml:"name,omitempty" toml:"name,omitempty"`
	// Demo selects the showcase component run by default.
	Demo string `yaml:"demo,omitempty" toml:"demo,omitempty"`
}

// WindowConfig is the viewport size in pixels.
type WindowConfig struct {
	Width  float64 `yaml:"width,omitempty" toml:"width,omitempty"`
	Height float64 `yaml:"height,omitempty" toml:"height,omitempty"`
}

// RunConfig controls headless runs.
type RunConfig struct {
	Frames int    `yaml:"frames,omitempty" toml:"frames,omitempty"`
	Format string `yaml:"format,omitempty" toml:"format,omitempty"`
}

// WebConfig controls the DOM embedding.
type WebConfig struct {
	Codec string `yaml:"codec,omitempty" toml:"codec,omitempty"`
}

// Resolved contains configuration with defaults applied.
type Resolved struct {
	Root       string
	ModulePath string
	Source     string
	AppName    string
	Demo       string
	Width      float64
	Height     float64
	Frames     int
	Format     string
	Codec      string
}

// Defaults.
const (
	DefaultWidth  = 800
	DefaultHeight = 600
	DefaultFrames = 3
	DefaultFormat = "yaml"
	DefaultCodec  = "json"
)

// LoadOptional reads uicore.yaml, or uicore.toml when there is no YAML
// file. It returns the parsed config and the file it came from, which is
// empty if neither exists.
func LoadOptional(dir string) (*Config, string, error) {
	var cfg Config
	path := filepath.Join(dir, YAMLFile)
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, "", configError(fmt.Errorf("failed to parse %s: %w", YAMLFile, err))
		}
		return &cfg, path, nil
	case !stderrors.Is(err, os.ErrNotExist):
		return nil, "", configError(fmt.Errorf("failed to read %s: %w", YAMLFile, err))
	}

	path = filepath.Join(dir, TOMLFile)
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		if stderrors.Is(err, os.ErrNotExist) {
			return &Config{}, "", nil
		}
		return nil, "", configError(fmt.Errorf("failed to parse %s: %w", TOMLFile, err))
	}
	return &cfg, path, nil
}

// Resolve loads the configuration in dir (if present) and applies defaults.
// A go.mod in dir is optional; when present its module path names the app.
func Resolve(dir string) (*Resolved, error) {
	modulePath, err := modulePath(dir)
	if err != nil {
		return nil, err
	}

	cfg, source, err := LoadOptional(dir)
	if err != nil {
		return nil, err
	}

	r := &Resolved{
		Root:       dir,
		ModulePath: modulePath,
		Source:     source,
		AppName:    strings.TrimSpace(cfg.App.Name),
		Demo:       strings.TrimSpace(cfg.App.Demo),
		Width:      cfg.Window.Width,
		Height:     cfg.Window.Height,
		Frames:     cfg.Run.Frames,
		Format:     strings.ToLower(strings.TrimSpace(cfg.Run.Format)),
		Codec:      strings.ToLower(strings.TrimSpace(cfg.Web.Codec)),
	}
	if r.AppName == "" {
		r.AppName = defaultAppName(modulePath, dir)
	}
	if r.Width == 0 {
		r.Width = DefaultWidth
	}
	if r.Height == 0 {
		r.Height = DefaultHeight
	}
	if r.Frames == 0 {
		r.Frames = DefaultFrames
	}
	if r.Format == "" {
		r.Format = DefaultFormat
	}
	if r.Codec == "" {
		r.Codec = DefaultCodec
	}

	if err := r.validate(); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *Resolved) validate() error {
	if r.Width < 0 || r.Height < 0 {
		return configError(fmt.Errorf("window size must not be negative (got %vx%v)", r.Width, r.Height))
	}
	if r.Frames < 0 {
		return configError(fmt.Errorf("run.frames must not be negative (got %d)", r.Frames))
	}
	switch r.Format {
	case "yaml", "yml", "json":
	default:
		return configError(fmt.Errorf("run.format must be yaml or json (got %q)", r.Format))
	}
	switch r.Codec {
	case "json", "cbor":
	default:
		return configError(fmt.Errorf("web.codec must be json or cbor (got %q)", r.Codec))
	}
	return nil
}

// FindProjectRoot walks up from the current directory to the nearest
// directory holding a config file or a go.mod. If none is found the
// current directory is returned.
func FindProjectRoot() (string, error) {
	start, err := os.Getwd()
	if err != nil {
		return "", err
	}

	for dir := start; ; {
		for _, name := range []string{YAMLFile, TOMLFile, "go.mod"} {
			if _, err := os.Stat(filepath.Join(dir, name)); err == nil {
				return dir, nil
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return start, nil
		}
		dir = parent
	}
}

func modulePath(dir string) (string, error) {
	data, err := os.ReadFile(filepath.Join(dir, "go.mod"))
	if err != nil {
		if stderrors.Is(err, os.ErrNotExist) {
			return "", nil
		}
		return "", configError(fmt.Errorf("failed to read go.mod: %w", err))
	}
	path := modfile.ModulePath(data)
	if path == "" {
		return "", configError(fmt.Errorf("could not determine module path from go.mod"))
	}
	return path, nil
}

func defaultAppName(modulePath, dir string) string {
	base := filepath.Base(dir)
	if modName, _, ok := module.SplitPathVersion(modulePath); ok && modName != "" {
		parts := strings.Split(modName, "/")
		base = parts[len(parts)-1]
	}
	if base == "" || base == "." || base == string(filepath.Separator) {
		return "uicore_app"
	}
	return base
}

func configError(err error) error {
	return &errors.UIError{
		Op:        "config.Resolve",
		Kind:      errors.KindConfig,
		Err:       err,
		Timestamp: time.Now(),
	}
}

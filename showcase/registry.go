package showcase

import (
	"github.com/go-drift/uicore/pkg/engine"
)

// Demo is a runnable showcase component.
type Demo struct {
	Name  string
	Title string
	New   func(width, height float64) engine.Runner
}

// demos is the registry of all showcase components. The first entry is the
// default.
var demos = []Demo{
	{"simple", "Toggleable card with a repeated list", func(w, h float64) engine.Runner {
		return engine.NewApp(NewSimple(), UpdateSimple, w, h)
	}},
	{"counter", "Buttons that add to a total, with hover", func(w, h float64) engine.Runner {
		return engine.NewApp(NewCounter(1, 5, 10), UpdateCounter, w, h)
	}},
}

// Demos returns every registered demo.
func Demos() []Demo {
	return append([]Demo(nil), demos...)
}

// Lookup returns the demo named name. An empty name selects the default.
func Lookup(name string) (Demo, bool) {
	if name == "" {
		return demos[0], true
	}
	for _, d := range demos {
		if d.Name == name {
			return d, true
		}
	}
	return Demo{}, false
}

package graphics

import (
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
)

// TextMetrics is the measured extent of a run of text.
type TextMetrics struct {
	Width  float64
	Height float64
	Lines  int
}

// defaultFace is the fixed 7x13 face used for hit testing and snapshots.
// Real glyph shaping happens in render backends.
var defaultFace font.Face = basicfont.Face7x13

// MeasureText measures s on a single line.
func MeasureText(s string) TextMetrics {
	if s == "" {
		return TextMetrics{}
	}
	return TextMetrics{
		Width:  float64(font.MeasureString(defaultFace, s).Ceil()),
		Height: lineHeight(),
		Lines:  1,
	}
}

// MeasureWrapped measures s broken at spaces so that no line is wider than
// maxWidth. A single word wider than maxWidth occupies its own line.
// A maxWidth of zero or less disables wrapping.
func MeasureWrapped(s string, maxWidth float64) TextMetrics {
	if maxWidth <= 0 {
		return MeasureText(s)
	}
	words := strings.Fields(s)
	if len(words) == 0 {
		return TextMetrics{}
	}
	space := advance(" ")
	var m TextMetrics
	line := 0.0
	for i, w := range words {
		ww := advance(w)
		switch {
		case i == 0:
			line = ww
			m.Lines = 1
		case line+space+ww <= maxWidth:
			line += space + ww
		default:
			m.Width = max(m.Width, line)
			line = ww
			m.Lines++
		}
	}
	m.Width = max(m.Width, line)
	m.Height = float64(m.Lines) * lineHeight()
	return m
}

func advance(s string) float64 {
	return float64(font.MeasureString(defaultFace, s).Ceil())
}

func lineHeight() float64 {
	return float64(defaultFace.Metrics().Height.Ceil())
}

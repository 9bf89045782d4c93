package graphics

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParseColor(t *testing.T) {
	tests := []struct {
		in   string
		want Color
	}{
		{"#fff", ColorWhite},
		{"#f00", ColorRed},
		{"#00ff00", ColorGreen},
		{"#0000ff80", RGBA8(0, 0, 0xff, 0x80)},
		{"red", ColorRed},
		{"Blue", ColorBlue},
		{"cornflowerblue", RGB(100, 149, 237)},
		{"transparent", ColorTransparent},
		{"  #000  ", ColorBlack},
	}
	for _, tt := range tests {
		got, err := ParseColor(tt.in)
		if err != nil {
			t.Errorf("ParseColor(%q) error: %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseColor(%q) = %s, want %s", tt.in, got, tt.want)
		}
	}
}

func TestParseColor_Invalid(t *testing.T) {
	for _, in := range []string{"", "#", "#ff", "#gggggg", "#1234567", "notacolor"} {
		if _, err := ParseColor(in); err == nil {
			t.Errorf("ParseColor(%q) expected error", in)
		}
	}
}

func TestColor_CSS(t *testing.T) {
	tests := []struct {
		c    Color
		want string
	}{
		{ColorRed, "rgba(255, 0, 0, 1)"},
		{ColorTransparent, "rgba(0, 0, 0, 0)"},
		{RGBA(10, 20, 30, 0.5), "rgba(10, 20, 30, 0.502)"},
	}
	for _, tt := range tests {
		if got := tt.c.CSS(); got != tt.want {
			t.Errorf("CSS() = %q, want %q", got, tt.want)
		}
	}
}

func TestColor_String(t *testing.T) {
	if got := RGBA8(1, 2, 3, 4).String(); got != "#01020304" {
		t.Errorf("String() = %q", got)
	}
}

func TestLength_ToPx(t *testing.T) {
	tests := []struct {
		l    Length
		want float64
	}{
		{Px(12), 12},
		{In(1), 96},
		{Cm(2.54), 96},
		{Mm(25.4), 96},
		{Length{}, 0},
	}
	for _, tt := range tests {
		if got := tt.l.ToPx(); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("%s.ToPx() = %v, want %v", tt.l, got, tt.want)
		}
	}
}

func TestParseLength(t *testing.T) {
	tests := []struct {
		in   string
		want Length
	}{
		{"12px", Px(12)},
		{"1.5in", In(1.5)},
		{".5cm", Cm(0.5)},
		{"3mm", Mm(3)},
		{"42", Px(42)},
		{"7.25", Px(7.25)},
	}
	for _, tt := range tests {
		got, err := ParseLength(tt.in)
		if err != nil {
			t.Errorf("ParseLength(%q) error: %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseLength(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
	for _, in := range []string{"", "px", "12pt", "-3px", "1.px", "-5", "+5", "1e3", "NaN", "Inf", "-Inf", "0x10"} {
		if _, err := ParseLength(in); err == nil {
			t.Errorf("ParseLength(%q) expected error", in)
		}
	}
}

func TestLength_CSSRoundTrip(t *testing.T) {
	for _, l := range []Length{Px(10), In(0.25), Cm(3), Mm(1.5)} {
		got, err := ParseLength(l.CSS())
		if err != nil || got != l {
			t.Errorf("ParseLength(%q) = %v, %v; want %v", l.CSS(), got, err, l)
		}
	}
}

func TestPxBounds_Contains(t *testing.T) {
	b := BoundsPx(10, 10, 20, 5).ToPx()
	tests := []struct {
		x, y float64
		want bool
	}{
		{10, 10, true},
		{29.9, 14.9, true},
		{30, 12, false},
		{15, 15, false},
		{9.9, 12, false},
	}
	for _, tt := range tests {
		if got := b.Contains(tt.x, tt.y); got != tt.want {
			t.Errorf("Contains(%v, %v) = %v, want %v", tt.x, tt.y, got, tt.want)
		}
	}
}

func TestBounds_ToPx(t *testing.T) {
	b := Bounds{X: In(1), Y: Px(4), Width: Cm(2.54), Height: Mm(0)}
	want := PxBounds{X: 96, Y: 4, Width: 96, Height: 0}
	if diff := cmp.Diff(want, b.ToPx()); diff != "" {
		t.Errorf("ToPx mismatch (-want +got):\n%s", diff)
	}
}

func TestMeasureText(t *testing.T) {
	m := MeasureText("abc")
	if m.Width != 21 || m.Height != 13 || m.Lines != 1 {
		t.Errorf("MeasureText(abc) = %+v, want 21x13 on 1 line", m)
	}
	if got := MeasureText(""); got != (TextMetrics{}) {
		t.Errorf("MeasureText(\"\") = %+v, want zero", got)
	}
}

func TestMeasureWrapped(t *testing.T) {
	// Each glyph is 7px wide; "aa bb cc" is 56px on one line.
	m := MeasureWrapped("aa bb cc", 40)
	if m.Lines != 2 || m.Width != 35 || m.Height != 26 {
		t.Errorf("MeasureWrapped = %+v, want 2 lines 35px wide", m)
	}
	if got := MeasureWrapped("aa bb cc", 0); got.Lines != 1 || got.Width != 56 {
		t.Errorf("MeasureWrapped with no limit = %+v", got)
	}
}

type logCanvas struct {
	log []string
}

func (c *logCanvas) Translate(dx, dy float64) {
	c.log = append(c.log, "translate")
}

func (c *logCanvas) DrawRect(b PxBounds, color Color) {
	c.log = append(c.log, "rect "+color.String())
}

func (c *logCanvas) DrawText(text string, x, y, maxWidth float64, color Color) {
	c.log = append(c.log, "text "+text)
}

func TestPictureRecorder_Replay(t *testing.T) {
	var r PictureRecorder
	c := r.BeginRecording(100, 50)
	c.Translate(5, 5)
	c.DrawRect(PxBounds{Width: 10, Height: 10}, ColorRed)
	c.DrawText("hi", 0, 0, 0, ColorBlack)
	dl := r.EndRecording()

	c.DrawRect(PxBounds{}, ColorBlue) // after EndRecording: ignored

	if dl.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", dl.Len())
	}
	if w, h := dl.Size(); w != 100 || h != 50 {
		t.Errorf("Size() = %vx%v", w, h)
	}
	var out logCanvas
	dl.Paint(&out)
	want := []string{"translate", "rect #ff0000ff", "text hi"}
	if diff := cmp.Diff(want, out.log); diff != "" {
		t.Errorf("replay mismatch (-want +got):\n%s", diff)
	}
}

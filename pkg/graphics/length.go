package graphics

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Unit is the unit of a Length.
type Unit uint8

const (
	UnitPx Unit = iota
	UnitIn
	UnitCm
	UnitMm
)

// CSS pixel density.
const (
	pxPerInch = 96.0
	cmPerInch = 2.54
)

func (u Unit) String() string {
	switch u {
	case UnitIn:
		return "in"
	case UnitCm:
		return "cm"
	case UnitMm:
		return "mm"
	default:
		return "px"
	}
}

// Length is a distance with a unit, as declared in component source.
// The zero value is 0px.
type Length struct {
	Value float64
	Unit  Unit
}

// Px returns a pixel length.
func Px(v float64) Length { return Length{Value: v, Unit: UnitPx} }

// In returns a length in inches.
func In(v float64) Length { return Length{Value: v, Unit: UnitIn} }

// Cm returns a length in centimeters.
func Cm(v float64) Length { return Length{Value: v, Unit: UnitCm} }

// Mm returns a length in millimeters.
func Mm(v float64) Length { return Length{Value: v, Unit: UnitMm} }

// ToPx converts the length to CSS pixels.
func (l Length) ToPx() float64 {
	switch l.Unit {
	case UnitIn:
		return l.Value * pxPerInch
	case UnitCm:
		return l.Value / cmPerInch * pxPerInch
	case UnitMm:
		return l.Value / (cmPerInch * 10) * pxPerInch
	default:
		return l.Value
	}
}

// CSS formats the length in its own unit, e.g. "2.5cm".
func (l Length) CSS() string {
	return strconv.FormatFloat(l.Value, 'f', -1, 64) + l.Unit.String()
}

func (l Length) String() string {
	return l.CSS()
}

var lengthPattern = regexp.MustCompile(`^(\d+(?:\.\d+)?|\.\d+)(px|in|cm|mm)?$`)

// ParseLength parses "12px", "1.5in", ".5cm" or "3mm". A bare number is
// taken as pixels. Signs, exponents and non-finite values are rejected.
func ParseLength(s string) (Length, error) {
	s = strings.TrimSpace(s)
	m := lengthPattern.FindStringSubmatch(s)
	if m == nil {
		return Length{}, fmt.Errorf("graphics: bad length %q", s)
	}
	v, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return Length{}, fmt.Errorf("graphics: bad length %q: %w", s, err)
	}
	switch m[2] {
	case "in":
		return In(v), nil
	case "cm":
		return Cm(v), nil
	case "mm":
		return Mm(v), nil
	default:
		return Px(v), nil
	}
}

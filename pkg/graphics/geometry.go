package graphics

// Bounds is a rectangle in declared units, relative to the parent element.
type Bounds struct {
	X      Length
	Y      Length
	Width  Length
	Height Length
}

// BoundsPx builds Bounds from pixel values.
func BoundsPx(x, y, width, height float64) Bounds {
	return Bounds{X: Px(x), Y: Px(y), Width: Px(width), Height: Px(height)}
}

// ToPx converts every field to pixels.
func (b Bounds) ToPx() PxBounds {
	return PxBounds{
		X:      b.X.ToPx(),
		Y:      b.Y.ToPx(),
		Width:  b.Width.ToPx(),
		Height: b.Height.ToPx(),
	}
}

// PxBounds is a rectangle in pixels using x, y, width, height.
type PxBounds struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
}

// Right returns the right edge.
func (b PxBounds) Right() float64 { return b.X + b.Width }

// Bottom returns the bottom edge.
func (b PxBounds) Bottom() float64 { return b.Y + b.Height }

// IsEmpty returns true if the rectangle has zero or negative area.
func (b PxBounds) IsEmpty() bool {
	return b.Width <= 0 || b.Height <= 0
}

// Contains reports whether (x, y) lies inside b. The left and top edges are
// inclusive, the right and bottom edges exclusive.
func (b PxBounds) Contains(x, y float64) bool {
	return x >= b.X && x < b.Right() && y >= b.Y && y < b.Bottom()
}

// Translate returns b offset by (dx, dy).
func (b PxBounds) Translate(dx, dy float64) PxBounds {
	b.X += dx
	b.Y += dy
	return b
}

package layout

import "image"

// Viewport is a drawing area size in device pixels.
type Viewport struct {
	Width  int
	Height int
}

// Normalize clamps negative dimensions to zero.
func (v Viewport) Normalize() Viewport {
	if v.Width < 0 {
		v.Width = 0
	}
	if v.Height < 0 {
		v.Height = 0
	}
	return v
}

// Empty reports whether the viewport has no area.
func (v Viewport) Empty() bool {
	return v.Width <= 0 || v.Height <= 0
}

// Rect returns the viewport as an image rectangle anchored at the origin.
func (v Viewport) Rect() image.Rectangle {
	v = v.Normalize()
	return image.Rect(0, 0, v.Width, v.Height)
}

// FromRect returns the size of rect.
func FromRect(rect image.Rectangle) Viewport {
	return Viewport{Width: rect.Dx(), Height: rect.Dy()}.Normalize()
}

// FittedRadius is half the smaller side: the radius of the largest circle
// centered in a width x height area.
func FittedRadius(width, height int) float64 {
	side := width
	if height < side {
		side = height
	}
	if side < 0 {
		side = 0
	}
	return float64(side) / 2
}

// Center returns the geometric center of a width x height area.
func Center(width, height int) (x, y float64) {
	return float64(width) / 2, float64(height) / 2
}

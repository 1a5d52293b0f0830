package types

import (
	"fmt"
	"image"
)

// Rect is an axis-aligned screen-space box. (X, Y) is the top-left corner and
// Y grows downward. Rects are values: every operation returns a new one.
type Rect struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Point is a screen coordinate.
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Match is a recognized element. Ordinal is its 1-based position in reading
// order within a single enumeration, 0 when the match was not enumerated.
type Match struct {
	Rect    Rect    `json:"rect"`
	Ordinal int     `json:"ordinal"`
	Score   float64 `json:"score,omitempty"`
}

func NewRect(x, y, width, height int) Rect {
	return Rect{X: x, Y: y, Width: width, Height: height}
}

// Offset adds the deltas to each component. The result is not clamped, so a
// large negative dw or dh yields a negative size.
func (r Rect) Offset(dx, dy, dw, dh int) Rect {
	return Rect{X: r.X + dx, Y: r.Y + dy, Width: r.Width + dw, Height: r.Height + dh}
}

func (r Rect) Center() Point {
	return Point{X: r.X + r.Width/2, Y: r.Y + r.Height/2}
}

func (r Rect) IsEmpty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// Union returns the smallest rectangle containing both rectangles.
func (r Rect) Union(other Rect) Rect {
	x := min(r.X, other.X)
	y := min(r.Y, other.Y)
	x2 := max(r.X+r.Width, other.X+other.Width)
	y2 := max(r.Y+r.Height, other.Y+other.Height)
	return Rect{X: x, Y: y, Width: x2 - x, Height: y2 - y}
}

func (r Rect) ToImage() image.Rectangle {
	return image.Rect(r.X, r.Y, r.X+r.Width, r.Y+r.Height)
}

func FromImage(ir image.Rectangle) Rect {
	return Rect{X: ir.Min.X, Y: ir.Min.Y, Width: ir.Dx(), Height: ir.Dy()}
}

func (r Rect) String() string {
	return fmt.Sprintf("(%d,%d %dx%d)", r.X, r.Y, r.Width, r.Height)
}

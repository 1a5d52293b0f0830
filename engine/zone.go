package engine

import (
	"github.com/mobile-next/screenlocator/locator"
	"github.com/mobile-next/screenlocator/types"
)

// ZoneOf derives the rectangle a text read is scoped to. Side zones are
// strips adjacent to r, sharing its height (left/right) or width (above/below).
func ZoneOf(r types.Rect, zone locator.Zone) types.Rect {
	if zone.Whole {
		return r
	}

	d := zone.Distance
	switch zone.Side {
	case locator.Left:
		return types.Rect{X: r.X - d, Y: r.Y, Width: d, Height: r.Height}
	case locator.Right:
		return types.Rect{X: r.X + r.Width, Y: r.Y, Width: d, Height: r.Height}
	case locator.Above:
		return types.Rect{X: r.X, Y: r.Y - d, Width: r.Width, Height: d}
	case locator.Below:
		return types.Rect{X: r.X, Y: r.Y + r.Height, Width: r.Width, Height: d}
	}

	return r
}

package engine

import (
	"cmp"
	"slices"

	"github.com/mobile-next/screenlocator/locator"
	"github.com/mobile-next/screenlocator/types"
)

// Order sorts raw match rectangles into reading order (top to bottom, then
// left to right) and numbers them from 1. Rectangles sharing the same
// top-left corner keep their input order.
func Order(rects []types.Rect) []types.Match {
	raw := make([]types.Match, len(rects))
	for i, r := range rects {
		raw[i] = types.Match{Rect: r}
	}
	return OrderMatches(raw)
}

// OrderMatches is Order for recognizer results that already carry scores.
// The input slice is not modified.
func OrderMatches(raw []types.Match) []types.Match {
	ordered := slices.Clone(raw)
	slices.SortStableFunc(ordered, func(a, b types.Match) int {
		if c := cmp.Compare(a.Rect.Y, b.Rect.Y); c != 0 {
			return c
		}
		return cmp.Compare(a.Rect.X, b.Rect.X)
	})

	for i := range ordered {
		ordered[i].Ordinal = i + 1
	}
	return ordered
}

// Nth returns the match at the 1-based index.
func Nth(ordered []types.Match, index int) (types.Match, error) {
	if index < 1 || index > len(ordered) {
		return types.Match{}, &locator.IndexOutOfRangeError{Index: index, Count: len(ordered)}
	}
	return ordered[index-1], nil
}

func Count(ordered []types.Match) int {
	return len(ordered)
}

package engine

import (
	"github.com/mobile-next/screenlocator/locator"
	"github.com/mobile-next/screenlocator/types"
)

// Recognizer finds patterns and reads text inside screen rectangles.
// Implementations own any retrying against a timeout.
type Recognizer interface {
	// FindAll returns every match of p inside within, in no particular order.
	// Finding nothing is not an error.
	FindAll(p locator.Pattern, within types.Rect) ([]types.Match, error)

	// FindOne returns the best match of p inside within. found is false when
	// nothing matched before the recognizer gave up.
	FindOne(p locator.Pattern, within types.Rect) (match types.Match, found bool, err error)

	ReadText(within types.Rect) (string, error)
}

// ScreenProvider exposes live screen and window geometry.
type ScreenProvider interface {
	ScreenCount() (int, error)
	// ScreenBounds returns *locator.ScreenNotFoundError for unknown indexes.
	ScreenBounds(index int) (types.Rect, error)
	FocusedWindowBounds() (types.Rect, error)
	// NamedWindowBounds returns *locator.WindowNotFoundError for unknown names.
	NamedWindowBounds(name string) (types.Rect, error)
}

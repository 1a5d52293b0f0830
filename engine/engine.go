// Package engine resolves locators against live screen state: it derives
// search regions from anchors, orders and indexes matches, and scopes text
// reads to zones around them.
//
// An Engine is not safe for concurrent use. Its search region, target screen
// and prior match are plain fields; callers that run steps concurrently must
// serialize access themselves.
package engine

import (
	"fmt"
	"time"

	"github.com/mobile-next/screenlocator/locator"
	"github.com/mobile-next/screenlocator/types"
)

type Engine struct {
	screens    ScreenProvider
	recognizer Recognizer

	searchRegion *types.Rect
	targetScreen int
	lastMatch    *types.Match

	pollInterval time.Duration
	sleep        func(time.Duration)
	now          func() time.Time
}

func New(screens ScreenProvider, recognizer Recognizer) *Engine {
	return &Engine{
		screens:      screens,
		recognizer:   recognizer,
		pollInterval: DefaultPollInterval,
		sleep:        time.Sleep,
		now:          time.Now,
	}
}

// Resolve computes the rectangle of anchor with optional offsets applied by
// plain addition. Offsets are never clamped: shrinking past zero yields a
// negative width or height, which the recognizer then fails to search.
func (e *Engine) Resolve(anchor Anchor, offsets *locator.Offsets) (types.Rect, error) {
	base, err := e.anchorBounds(anchor)
	if err != nil {
		return types.Rect{}, err
	}

	if offsets == nil {
		return base, nil
	}
	return base.Offset(offsets.DX, offsets.DY, offsets.DW, offsets.DH), nil
}

func (e *Engine) anchorBounds(anchor Anchor) (types.Rect, error) {
	switch anchor.Kind {
	case AnchorScreen:
		if err := e.checkScreen(anchor.Screen); err != nil {
			return types.Rect{}, err
		}
		return e.screens.ScreenBounds(anchor.Screen)
	case AnchorActiveWindow:
		return e.screens.FocusedWindowBounds()
	case AnchorApplication:
		return e.screens.NamedWindowBounds(anchor.App)
	case AnchorPriorMatch:
		if e.lastMatch == nil {
			return types.Rect{}, &locator.NoMatchFoundError{}
		}
		return e.lastMatch.Rect, nil
	}

	return types.Rect{}, fmt.Errorf("unknown anchor kind %d", anchor.Kind)
}

func (e *Engine) checkScreen(index int) error {
	count, err := e.screens.ScreenCount()
	if err != nil {
		return err
	}
	if index < 0 || index >= count {
		return &locator.ScreenNotFoundError{Index: index, Count: count}
	}
	return nil
}

// SetSearchRegion resolves anchor and makes the result the region every
// subsequent search and text read runs in. A screen anchor also becomes the
// target screen.
func (e *Engine) SetSearchRegion(anchor Anchor, offsets *locator.Offsets) (types.Rect, error) {
	r, err := e.Resolve(anchor, offsets)
	if err != nil {
		return types.Rect{}, err
	}

	if anchor.Kind == AnchorScreen {
		e.targetScreen = anchor.Screen
	}
	e.searchRegion = &r
	return r, nil
}

// SearchRegion returns the configured search region, or the bounds of the
// target screen when none has been set.
func (e *Engine) SearchRegion() (types.Rect, error) {
	if e.searchRegion != nil {
		return *e.searchRegion, nil
	}
	return e.Resolve(ScreenAnchor(e.targetScreen), nil)
}

// ExplicitSearchRegion returns the region set by SetSearchRegion, if any.
func (e *Engine) ExplicitSearchRegion() (types.Rect, bool) {
	if e.searchRegion == nil {
		return types.Rect{}, false
	}
	return *e.searchRegion, true
}

func (e *Engine) ResetSearchRegion() {
	e.searchRegion = nil
}

func (e *Engine) TargetScreen() int {
	return e.targetScreen
}

// SetTargetScreen selects the screen used when no search region is set.
func (e *Engine) SetTargetScreen(index int) error {
	if err := e.checkScreen(index); err != nil {
		return err
	}
	e.targetScreen = index
	return nil
}

func (e *Engine) LastMatch() (types.Match, bool) {
	if e.lastMatch == nil {
		return types.Match{}, false
	}
	return *e.lastMatch, true
}

func (e *Engine) remember(m types.Match) {
	e.lastMatch = &m
}

package engine

import (
	"errors"

	"github.com/mobile-next/screenlocator/locator"
	"github.com/mobile-next/screenlocator/types"
)

// ScrollPlan is a wheel gesture ready for an input injector: scroll Steps
// notches in Direction with the pointer at Point.
type ScrollPlan struct {
	Point     types.Point       `json:"point"`
	Direction locator.Direction `json:"direction"`
	Steps     int               `json:"steps"`
}

// Find returns the best match of loc in the search region and remembers it
// as the prior match.
func (e *Engine) Find(loc string) (types.Match, error) {
	p, err := locator.ParsePattern(loc)
	if err != nil {
		return types.Match{}, err
	}

	within, err := e.SearchRegion()
	if err != nil {
		return types.Match{}, err
	}

	m, found, err := e.recognizer.FindOne(p, within)
	if err != nil {
		return types.Match{}, err
	}
	if !found {
		return types.Match{}, &locator.NoMatchFoundError{Locator: loc}
	}

	e.remember(m)
	return m, nil
}

// Exists reports whether loc is visible in the search region. Only a missing
// match maps to false; every other failure is returned. A successful check
// is a Find, so the match becomes the prior match; a miss leaves the prior
// match alone.
func (e *Engine) Exists(loc string) (bool, error) {
	_, err := e.Find(loc)
	if err == nil {
		return true, nil
	}

	var notFound *locator.NoMatchFoundError
	if errors.As(err, &notFound) {
		return false, nil
	}
	return false, err
}

// FindAll queries the recognizer afresh and returns every match of loc in
// the search region, in reading order.
func (e *Engine) FindAll(loc string) ([]types.Match, error) {
	p, err := locator.ParsePattern(loc)
	if err != nil {
		return nil, err
	}

	within, err := e.SearchRegion()
	if err != nil {
		return nil, err
	}

	raw, err := e.recognizer.FindAll(p, within)
	if err != nil {
		return nil, err
	}

	return OrderMatches(raw), nil
}

func (e *Engine) CountMatches(loc string) (int, error) {
	matches, err := e.FindAll(loc)
	if err != nil {
		return 0, err
	}
	return Count(matches), nil
}

// NthMatch returns the match at the 1-based index in reading order and
// remembers it as the prior match.
func (e *Engine) NthMatch(loc string, index int) (types.Match, error) {
	matches, err := e.FindAll(loc)
	if err != nil {
		return types.Match{}, err
	}

	if len(matches) == 0 {
		return types.Match{}, &locator.NoMatchFoundError{Locator: loc}
	}

	m, err := Nth(matches, index)
	if err != nil {
		return types.Match{}, err
	}

	e.remember(m)
	return m, nil
}

// ReadText reads the text in zone of the search region.
func (e *Engine) ReadText(zone string) (string, error) {
	z, err := locator.ParseZone(zone)
	if err != nil {
		return "", err
	}

	within, err := e.SearchRegion()
	if err != nil {
		return "", err
	}

	return e.recognizer.ReadText(ZoneOf(within, z))
}

// ReadTextNear reads the text in zone of the best match of loc.
func (e *Engine) ReadTextNear(loc, zone string) (string, error) {
	z, err := locator.ParseZone(zone)
	if err != nil {
		return "", err
	}

	m, err := e.Find(loc)
	if err != nil {
		return "", err
	}

	return e.recognizer.ReadText(ZoneOf(m.Rect, z))
}

// ReadTextNearNth reads the text in zone of the index-th match of loc.
func (e *Engine) ReadTextNearNth(loc string, index int, zone string) (string, error) {
	z, err := locator.ParseZone(zone)
	if err != nil {
		return "", err
	}

	m, err := e.NthMatch(loc, index)
	if err != nil {
		return "", err
	}

	return e.recognizer.ReadText(ZoneOf(m.Rect, z))
}

// PlanScroll resolves where a wheel gesture should happen: over the match of
// loc, or over the search region when loc is empty.
func (e *Engine) PlanScroll(loc, scroll string) (ScrollPlan, error) {
	s, err := locator.ParseScroll(scroll)
	if err != nil {
		return ScrollPlan{}, err
	}

	var target types.Rect
	if loc == "" {
		target, err = e.SearchRegion()
	} else {
		var m types.Match
		m, err = e.Find(loc)
		target = m.Rect
	}
	if err != nil {
		return ScrollPlan{}, err
	}

	return ScrollPlan{Point: target.Center(), Direction: s.Direction, Steps: s.Steps}, nil
}

// TargetPoint is the point an action on m lands on: its center shifted by
// (dx, dy).
func TargetPoint(m types.Match, dx, dy int) types.Point {
	c := m.Rect.Center()
	return types.Point{X: c.X + dx, Y: c.Y + dy}
}

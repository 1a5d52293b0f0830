package engine

import (
	"slices"
	"time"

	"github.com/mobile-next/screenlocator/locator"
	"github.com/mobile-next/screenlocator/types"
)

// DefaultPollInterval matches a scan rate of three scans per second.
const DefaultPollInterval = time.Second / 3

// Forever makes Wait and WaitVanish poll until the condition holds. Any
// negative timeout does the same.
const Forever time.Duration = -1

// SetPollInterval sets how often Wait and WaitVanish rescan the screen.
// Non-positive values restore the default.
func (e *Engine) SetPollInterval(d time.Duration) {
	if d <= 0 {
		d = DefaultPollInterval
	}
	e.pollInterval = d
}

// Wait rescans the search region until loc appears or timeout passes, and
// remembers the strongest match as the prior match. A zero timeout scans
// once; Forever never gives up.
func (e *Engine) Wait(loc string, timeout time.Duration) (types.Match, error) {
	var best types.Match
	seen := false
	err := e.poll(loc, timeout, func(found []types.Match) bool {
		if len(found) == 0 {
			return false
		}
		seen = true
		best = slices.MaxFunc(found, func(a, b types.Match) int {
			switch {
			case a.Score < b.Score:
				return -1
			case a.Score > b.Score:
				return 1
			}
			return 0
		})
		return true
	})
	if err != nil {
		return types.Match{}, err
	}
	if !seen {
		return types.Match{}, &locator.NoMatchFoundError{Locator: loc}
	}

	e.remember(best)
	return best, nil
}

// WaitVanish rescans the search region until loc has no matches left or
// timeout passes, in which case it returns *locator.StillVisibleError.
func (e *Engine) WaitVanish(loc string, timeout time.Duration) error {
	gone := false
	err := e.poll(loc, timeout, func(found []types.Match) bool {
		gone = len(found) == 0
		return gone
	})
	if err != nil {
		return err
	}
	if !gone {
		return &locator.StillVisibleError{Locator: loc, Timeout: timeout}
	}
	return nil
}

// poll calls done with every scan of loc until it returns true or the
// deadline passes. The search region is resolved once.
func (e *Engine) poll(loc string, timeout time.Duration, done func([]types.Match) bool) error {
	p, err := locator.ParsePattern(loc)
	if err != nil {
		return err
	}

	within, err := e.SearchRegion()
	if err != nil {
		return err
	}

	deadline := e.now().Add(timeout)
	for {
		found, err := e.recognizer.FindAll(p, within)
		if err != nil {
			return err
		}
		if done(found) {
			return nil
		}

		if timeout >= 0 && !e.now().Before(deadline) {
			return nil
		}
		e.sleep(e.pollInterval)
	}
}

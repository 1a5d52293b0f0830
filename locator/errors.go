package locator

import (
	"fmt"
	"time"
)

// InvalidLocatorError reports a pattern locator that could not be parsed.
type InvalidLocatorError struct {
	Raw    string
	Reason string
}

func (e *InvalidLocatorError) Error() string {
	return fmt.Sprintf("invalid locator '%s': %s", e.Raw, e.Reason)
}

// InvalidOffsetError reports an offset list that is not four integers.
type InvalidOffsetError struct {
	Raw    string
	Reason string
}

func (e *InvalidOffsetError) Error() string {
	return fmt.Sprintf("invalid offsets '%s': %s", e.Raw, e.Reason)
}

type InvalidScrollSpecError struct {
	Raw    string
	Reason string
}

func (e *InvalidScrollSpecError) Error() string {
	return fmt.Sprintf("invalid scroll '%s': %s", e.Raw, e.Reason)
}

type InvalidZoneSpecError struct {
	Raw    string
	Reason string
}

func (e *InvalidZoneSpecError) Error() string {
	return fmt.Sprintf("invalid zone '%s': %s", e.Raw, e.Reason)
}

type InvalidScreenSpecError struct {
	Raw    string
	Reason string
}

func (e *InvalidScreenSpecError) Error() string {
	return fmt.Sprintf("invalid screen '%s': %s", e.Raw, e.Reason)
}

// ScreenNotFoundError is returned when a screen index is not attached.
type ScreenNotFoundError struct {
	Index int
	Count int
}

func (e *ScreenNotFoundError) Error() string {
	return fmt.Sprintf("screen %d not found, %d screen(s) attached", e.Index, e.Count)
}

type WindowNotFoundError struct {
	Name string
}

func (e *WindowNotFoundError) Error() string {
	if e.Name == "" {
		return "no focused window found"
	}
	return fmt.Sprintf("window '%s' not found", e.Name)
}

// NoMatchFoundError is returned when the recognizer finds nothing for a
// locator, or when a prior match is referenced before any match was made.
type NoMatchFoundError struct {
	Locator string
}

func (e *NoMatchFoundError) Error() string {
	if e.Locator == "" {
		return "no prior match to anchor on"
	}
	return fmt.Sprintf("no matching pattern '%s' found on screen", e.Locator)
}

// IndexOutOfRangeError is returned for a 1-based match index outside [1, Count].
type IndexOutOfRangeError struct {
	Index int
	Count int
}

func (e *IndexOutOfRangeError) Error() string {
	return fmt.Sprintf("match index %d out of range, %d match(es) found", e.Index, e.Count)
}

// StillVisibleError is returned when a pattern is still on screen after a
// vanish wait ran out.
type StillVisibleError struct {
	Locator string
	Timeout time.Duration
}

func (e *StillVisibleError) Error() string {
	return fmt.Sprintf("pattern '%s' was still visible after %v", e.Locator, e.Timeout)
}

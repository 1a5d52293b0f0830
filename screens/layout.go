// Package screens provides screen and window geometry to the engine.
package screens

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/mobile-next/screenlocator/locator"
	"github.com/mobile-next/screenlocator/types"
	"github.com/mobile-next/screenlocator/utils"
	"gopkg.in/ini.v1"
)

const (
	screenSectionPrefix = "screen "
	windowSectionPrefix = "window "
	focusSection        = "focus"
)

// Layout is a fixed description of attached screens and open windows, read
// from an ini file such as:
//
//	[screen 0]
//	x = 0
//	y = 0
//	width = 1920
//	height = 1080
//
//	[window Notepad]
//	x = 100
//	y = 100
//	width = 800
//	height = 600
//
//	[focus]
//	window = Notepad
type Layout struct {
	screens []types.Rect
	windows map[string]types.Rect
	focused string
}

func NewLayout(screens []types.Rect, windows map[string]types.Rect, focused string) *Layout {
	l := &Layout{
		screens: append([]types.Rect(nil), screens...),
		windows: make(map[string]types.Rect, len(windows)),
		focused: strings.ToLower(focused),
	}
	for name, r := range windows {
		l.windows[strings.ToLower(name)] = r
	}
	return l
}

// LoadLayout reads a layout from a file path or raw ini bytes.
func LoadLayout(source interface{}) (*Layout, error) {
	cfg, err := ini.Load(source)
	if err != nil {
		return nil, fmt.Errorf("failed to read layout: %w", err)
	}

	screens := map[int]types.Rect{}
	windows := map[string]types.Rect{}

	for _, section := range cfg.Sections() {
		name := strings.TrimSpace(section.Name())
		lower := strings.ToLower(name)

		switch {
		case strings.HasPrefix(lower, screenSectionPrefix):
			index, err := strconv.Atoi(strings.TrimSpace(name[len(screenSectionPrefix):]))
			if err != nil || index < 0 {
				return nil, fmt.Errorf("invalid screen section [%s]", name)
			}
			r, err := sectionRect(section)
			if err != nil {
				return nil, err
			}
			screens[index] = r

		case strings.HasPrefix(lower, windowSectionPrefix):
			title := strings.TrimSpace(name[len(windowSectionPrefix):])
			if title == "" {
				return nil, fmt.Errorf("window section [%s] has no name", name)
			}
			r, err := sectionRect(section)
			if err != nil {
				return nil, err
			}
			windows[title] = r
		}
	}

	indexes := make([]int, 0, len(screens))
	for i := range screens {
		indexes = append(indexes, i)
	}
	sort.Ints(indexes)

	ordered := make([]types.Rect, len(indexes))
	for pos, i := range indexes {
		if i != pos {
			return nil, fmt.Errorf("screens must be numbered from 0 without gaps, missing screen %d", pos)
		}
		ordered[pos] = screens[i]
	}

	focused := cfg.Section(focusSection).Key("window").String()

	utils.Verbose("Loaded layout with %d screen(s) and %d window(s)", len(ordered), len(windows))
	return NewLayout(ordered, windows, focused), nil
}

func sectionRect(section *ini.Section) (types.Rect, error) {
	values := make([]int, 4)
	for i, key := range []string{"x", "y", "width", "height"} {
		if !section.HasKey(key) {
			return types.Rect{}, fmt.Errorf("section [%s] is missing '%s'", section.Name(), key)
		}
		v, err := section.Key(key).Int()
		if err != nil {
			return types.Rect{}, fmt.Errorf("section [%s] has invalid '%s': %w", section.Name(), key, err)
		}
		values[i] = v
	}
	return types.NewRect(values[0], values[1], values[2], values[3]), nil
}

func (l *Layout) ScreenCount() (int, error) {
	return len(l.screens), nil
}

func (l *Layout) ScreenBounds(index int) (types.Rect, error) {
	if index < 0 || index >= len(l.screens) {
		return types.Rect{}, &locator.ScreenNotFoundError{Index: index, Count: len(l.screens)}
	}
	return l.screens[index], nil
}

func (l *Layout) FocusedWindowBounds() (types.Rect, error) {
	if l.focused == "" {
		return types.Rect{}, &locator.WindowNotFoundError{}
	}
	r, ok := l.windows[l.focused]
	if !ok {
		return types.Rect{}, &locator.WindowNotFoundError{}
	}
	return r, nil
}

// NamedWindowBounds matches window names case-insensitively.
func (l *Layout) NamedWindowBounds(name string) (types.Rect, error) {
	r, ok := l.windows[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return types.Rect{}, &locator.WindowNotFoundError{Name: name}
	}
	return r, nil
}

// Windows returns the window names, sorted.
func (l *Layout) Windows() []string {
	names := make([]string, 0, len(l.windows))
	for name := range l.windows {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

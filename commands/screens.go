package commands

import (
	"fmt"

	"github.com/mobile-next/screenlocator/types"
)

// ScreenInfo describes one attached screen
type ScreenInfo struct {
	Index  int        `json:"index"`
	Bounds types.Rect `json:"bounds"`
	Target bool       `json:"target"`
}

// windowLister is implemented by screen providers that know every open
// window up front, such as a static layout.
type windowLister interface {
	Windows() []string
}

// ScreensCommand lists the attached screens, and the known windows when the
// screen provider can enumerate them
func ScreensCommand() *CommandResponse {
	return withSession(func(s *Session) *CommandResponse {
		count, err := s.screens.ScreenCount()
		if err != nil {
			return NewErrorResponse(fmt.Errorf("failed to count screens: %w", err))
		}

		target := s.engine.TargetScreen()
		list := make([]ScreenInfo, 0, count)
		for i := 0; i < count; i++ {
			bounds, err := s.screens.ScreenBounds(i)
			if err != nil {
				return NewErrorResponse(fmt.Errorf("failed to get bounds of screen %d: %w", i, err))
			}
			list = append(list, ScreenInfo{Index: i, Bounds: bounds, Target: i == target})
		}

		data := map[string]interface{}{
			"screens": list,
		}
		if lister, ok := s.screens.(windowLister); ok {
			data["windows"] = lister.Windows()
		}
		return NewSuccessResponse(data)
	})
}

package commands

import "fmt"

// ScrollRequest represents the parameters for planning a wheel gesture
type ScrollRequest struct {
	Locator string `json:"locator,omitempty"` // scroll over this match, or the search region when empty
	Scroll  string `json:"scroll"`            // "up = 3", "down = 10"
}

// ScrollCommand works out where and how far to scroll. Injecting the wheel
// events is left to the caller's input driver.
func ScrollCommand(req ScrollRequest) *CommandResponse {
	if req.Scroll == "" {
		return NewErrorResponse(fmt.Errorf("scroll is required"))
	}

	return withSession(func(s *Session) *CommandResponse {
		plan, err := s.engine.PlanScroll(req.Locator, req.Scroll)
		if err != nil {
			return NewErrorResponse(err)
		}
		return NewSuccessResponse(plan)
	})
}

package commands

import (
	"fmt"
	"time"

	"github.com/mobile-next/screenlocator/engine"
	"github.com/mobile-next/screenlocator/utils"
)

// WaitRequest represents the parameters for waiting on a pattern to appear
// or vanish. Without a timeout the session's recognizer timeout is used.
type WaitRequest struct {
	Locator string   `json:"locator"`
	Timeout *float64 `json:"timeout,omitempty"` // seconds
	Forever bool     `json:"forever,omitempty"`
	OffsetX int      `json:"offsetX,omitempty"`
	OffsetY int      `json:"offsetY,omitempty"`
}

func (req WaitRequest) validate() error {
	if req.Locator == "" {
		return fmt.Errorf("locator is required")
	}
	if req.Timeout != nil && *req.Timeout < 0 {
		return fmt.Errorf("timeout must not be negative, got %v", *req.Timeout)
	}
	if req.Timeout != nil && req.Forever {
		return fmt.Errorf("timeout and forever cannot be combined")
	}
	return nil
}

func (req WaitRequest) timeout(s *Session) time.Duration {
	switch {
	case req.Forever:
		return engine.Forever
	case req.Timeout != nil:
		return time.Duration(*req.Timeout * float64(time.Second))
	default:
		return s.waitTimeout
	}
}

// WaitCommand rescans the search region until the pattern shows up
func WaitCommand(req WaitRequest) *CommandResponse {
	if err := req.validate(); err != nil {
		return NewErrorResponse(err)
	}

	return withSession(func(s *Session) *CommandResponse {
		timeout := req.timeout(s)
		utils.Verbose("Waiting up to %v for '%s'", timeout, req.Locator)

		m, err := s.engine.Wait(req.Locator, timeout)
		if err != nil {
			return NewErrorResponse(err)
		}

		return NewSuccessResponse(MatchResponse{
			Match: m,
			Point: engine.TargetPoint(m, req.OffsetX, req.OffsetY),
		})
	})
}

// VanishCommand rescans the search region until the pattern is gone
func VanishCommand(req WaitRequest) *CommandResponse {
	if err := req.validate(); err != nil {
		return NewErrorResponse(err)
	}

	return withSession(func(s *Session) *CommandResponse {
		timeout := req.timeout(s)
		utils.Verbose("Waiting up to %v for '%s' to vanish", timeout, req.Locator)

		if err := s.engine.WaitVanish(req.Locator, timeout); err != nil {
			return NewErrorResponse(err)
		}
		return NewSuccessResponse(map[string]bool{"vanished": true})
	})
}

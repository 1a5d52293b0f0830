package commands

import (
	"fmt"
	"time"

	"github.com/mobile-next/screenlocator/locator"
)

// SettingsRequest represents recognizer settings to change; empty fields
// are left alone
type SettingsRequest struct {
	Timeout      *float64 `json:"timeout,omitempty"` // seconds
	ImageLibrary string   `json:"imageLibrary,omitempty"`
	Whitelist    *string  `json:"whitelist,omitempty"` // preset name, literal characters, or "" to clear
}

// SettingsCommand updates the recognizer of the running session
func SettingsCommand(req SettingsRequest) *CommandResponse {
	if req.Timeout != nil && *req.Timeout < 0 {
		return NewErrorResponse(fmt.Errorf("timeout must not be negative, got %v", *req.Timeout))
	}

	var whitelist string
	if req.Whitelist != nil && *req.Whitelist != "" {
		chars, err := locator.ParseWhitelist(*req.Whitelist)
		if err != nil {
			return NewErrorResponse(err)
		}
		whitelist = chars
	}

	return withSession(func(s *Session) *CommandResponse {
		if s.tuner == nil {
			return NewErrorResponse(fmt.Errorf("recognizer settings cannot be changed"))
		}

		if req.ImageLibrary != "" {
			if err := s.tuner.SetImageLibrary(req.ImageLibrary); err != nil {
				return NewErrorResponse(err)
			}
		}
		if req.Timeout != nil {
			timeout := time.Duration(*req.Timeout * float64(time.Second))
			s.tuner.SetTimeout(timeout)
			s.waitTimeout = timeout
		}
		if req.Whitelist != nil {
			s.tuner.SetWhitelist(whitelist)
		}

		return NewSuccessResponse(map[string]string{"message": "settings updated"})
	})
}

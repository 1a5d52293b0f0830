package commands

import (
	"fmt"

	"github.com/mobile-next/screenlocator/engine"
	"github.com/mobile-next/screenlocator/types"
	"github.com/mobile-next/screenlocator/utils"
)

// FindRequest represents the parameters for locating a pattern
type FindRequest struct {
	Locator string `json:"locator"`
	// target offset from the match center, as in "click at an offset"
	OffsetX int `json:"offsetX,omitempty"`
	OffsetY int `json:"offsetY,omitempty"`
}

// NthRequest represents the parameters for picking one of several matches
type NthRequest struct {
	Locator string `json:"locator"`
	Index   int    `json:"index"` // 1-based, in reading order
	OffsetX int    `json:"offsetX,omitempty"`
	OffsetY int    `json:"offsetY,omitempty"`
}

// MatchResponse is a match plus the point an action on it should land on
type MatchResponse struct {
	Match types.Match `json:"match"`
	Point types.Point `json:"point"`
}

// FindCommand locates the best match of a pattern in the search region
func FindCommand(req FindRequest) *CommandResponse {
	if req.Locator == "" {
		return NewErrorResponse(fmt.Errorf("locator is required"))
	}

	return withSession(func(s *Session) *CommandResponse {
		m, err := s.engine.Find(req.Locator)
		if err != nil {
			return NewErrorResponse(err)
		}

		utils.Verbose("Found '%s' at %v", req.Locator, m.Rect)
		return NewSuccessResponse(MatchResponse{
			Match: m,
			Point: engine.TargetPoint(m, req.OffsetX, req.OffsetY),
		})
	})
}

// ExistsCommand reports whether a pattern is visible in the search region
func ExistsCommand(req FindRequest) *CommandResponse {
	if req.Locator == "" {
		return NewErrorResponse(fmt.Errorf("locator is required"))
	}

	return withSession(func(s *Session) *CommandResponse {
		exists, err := s.engine.Exists(req.Locator)
		if err != nil {
			return NewErrorResponse(err)
		}
		return NewSuccessResponse(map[string]bool{"exists": exists})
	})
}

// FindAllCommand returns every match of a pattern in reading order
func FindAllCommand(req FindRequest) *CommandResponse {
	if req.Locator == "" {
		return NewErrorResponse(fmt.Errorf("locator is required"))
	}

	return withSession(func(s *Session) *CommandResponse {
		matches, err := s.engine.FindAll(req.Locator)
		if err != nil {
			return NewErrorResponse(err)
		}

		result := make([]MatchResponse, 0, len(matches))
		for _, m := range matches {
			result = append(result, MatchResponse{
				Match: m,
				Point: engine.TargetPoint(m, req.OffsetX, req.OffsetY),
			})
		}
		return NewSuccessResponse(result)
	})
}

// CountCommand counts the matches of a pattern in the search region
func CountCommand(req FindRequest) *CommandResponse {
	if req.Locator == "" {
		return NewErrorResponse(fmt.Errorf("locator is required"))
	}

	return withSession(func(s *Session) *CommandResponse {
		count, err := s.engine.CountMatches(req.Locator)
		if err != nil {
			return NewErrorResponse(err)
		}
		return NewSuccessResponse(map[string]int{"count": count})
	})
}

// NthCommand returns the index-th match of a pattern in reading order
func NthCommand(req NthRequest) *CommandResponse {
	if req.Locator == "" {
		return NewErrorResponse(fmt.Errorf("locator is required"))
	}

	return withSession(func(s *Session) *CommandResponse {
		m, err := s.engine.NthMatch(req.Locator, req.Index)
		if err != nil {
			return NewErrorResponse(err)
		}
		return NewSuccessResponse(MatchResponse{
			Match: m,
			Point: engine.TargetPoint(m, req.OffsetX, req.OffsetY),
		})
	})
}

package commands

import (
	"fmt"
	"strings"

	"github.com/mobile-next/screenlocator/engine"
	"github.com/mobile-next/screenlocator/locator"
	"github.com/mobile-next/screenlocator/types"
)

// RegionSetRequest represents the parameters for setting the search region
type RegionSetRequest struct {
	Anchor  string `json:"anchor"`            // "screen <n>", "active", "app:<name>" or "match"
	Offsets string `json:"offsets,omitempty"` // "dx, dy, dw, dh"
}

// TargetScreenRequest represents the parameters for selecting the target screen
type TargetScreenRequest struct {
	Screen string `json:"screen"`
}

// RegionResponse describes the active search region
type RegionResponse struct {
	Region       types.Rect `json:"region"`
	TargetScreen int        `json:"targetScreen"`
	Explicit     bool       `json:"explicit"`
}

// RegionSetCommand resolves an anchor plus offsets and makes it the search region
func RegionSetCommand(req RegionSetRequest) *CommandResponse {
	anchor, err := engine.ParseAnchor(req.Anchor)
	if err != nil {
		return NewErrorResponse(err)
	}

	var offsets *locator.Offsets
	if strings.TrimSpace(req.Offsets) != "" {
		o, err := locator.ParseOffsets(req.Offsets)
		if err != nil {
			return NewErrorResponse(err)
		}
		offsets = &o
	}

	return withSession(func(s *Session) *CommandResponse {
		r, err := s.engine.SetSearchRegion(anchor, offsets)
		if err != nil {
			return NewErrorResponse(fmt.Errorf("failed to set search region to %s: %w", anchor, err))
		}

		return NewSuccessResponse(RegionResponse{
			Region:       r,
			TargetScreen: s.engine.TargetScreen(),
			Explicit:     true,
		})
	})
}

// RegionGetCommand returns the active search region
func RegionGetCommand() *CommandResponse {
	return withSession(func(s *Session) *CommandResponse {
		return regionResponse(s)
	})
}

// RegionResetCommand drops the explicit search region so searches cover the
// target screen again
func RegionResetCommand() *CommandResponse {
	return withSession(func(s *Session) *CommandResponse {
		s.engine.ResetSearchRegion()
		return regionResponse(s)
	})
}

// TargetScreenCommand selects the screen searched when no region is set
func TargetScreenCommand(req TargetScreenRequest) *CommandResponse {
	index, err := locator.ParseScreen(req.Screen)
	if err != nil {
		return NewErrorResponse(err)
	}

	return withSession(func(s *Session) *CommandResponse {
		if err := s.engine.SetTargetScreen(index); err != nil {
			return NewErrorResponse(err)
		}
		return regionResponse(s)
	})
}

func regionResponse(s *Session) *CommandResponse {
	_, explicit := s.engine.ExplicitSearchRegion()

	r, err := s.engine.SearchRegion()
	if err != nil {
		return NewErrorResponse(fmt.Errorf("failed to get search region: %w", err))
	}

	return NewSuccessResponse(RegionResponse{
		Region:       r,
		TargetScreen: s.engine.TargetScreen(),
		Explicit:     explicit,
	})
}

package commands

import (
	"strings"

	"github.com/mobile-next/screenlocator/locator"
)

// ReadTextRequest represents the parameters for reading text. Without a
// locator the zone is taken around the search region, otherwise around the
// best match, or the index-th match when Index is set. A negative
// Index is passed through and rejected as out of range.
type ReadTextRequest struct {
	Locator string `json:"locator,omitempty"`
	Index   int    `json:"index,omitempty"`
	Zone    string `json:"zone,omitempty"` // "region" or "<side> = <distance>"
}

func ReadTextCommand(req ReadTextRequest) *CommandResponse {
	zone := req.Zone
	if strings.TrimSpace(zone) == "" {
		zone = locator.WholeRegion
	}

	return withSession(func(s *Session) *CommandResponse {
		var text string
		var err error

		switch {
		case req.Locator == "":
			text, err = s.engine.ReadText(zone)
		case req.Index != 0:
			text, err = s.engine.ReadTextNearNth(req.Locator, req.Index, zone)
		default:
			text, err = s.engine.ReadTextNear(req.Locator, zone)
		}
		if err != nil {
			return NewErrorResponse(err)
		}

		return NewSuccessResponse(map[string]string{"text": text})
	})
}

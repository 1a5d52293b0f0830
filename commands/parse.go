package commands

import (
	"fmt"
	"strings"

	"github.com/mobile-next/screenlocator/engine"
	"github.com/mobile-next/screenlocator/locator"
)

// ParseRequest represents the parameters for checking a locator string
// without touching the screen
type ParseRequest struct {
	Kind  string `json:"kind"` // pattern, offsets, scroll, zone, screen, anchor or whitelist
	Value string `json:"value"`
}

// ParseCommand parses a single locator string and returns its structured form
func ParseCommand(req ParseRequest) *CommandResponse {
	var result interface{}
	var err error

	switch strings.ToLower(req.Kind) {
	case "pattern":
		var p locator.Pattern
		p, err = locator.ParsePattern(req.Value)
		result = map[string]interface{}{
			"kind":       p.Kind.String(),
			"path":       p.Path,
			"similarity": p.Similarity,
			"text":       p.Text,
			"canonical":  p.String(),
		}
	case "offsets":
		result, err = locator.ParseOffsets(req.Value)
	case "scroll":
		result, err = locator.ParseScroll(req.Value)
	case "zone":
		result, err = locator.ParseZone(req.Value)
	case "screen":
		var index int
		index, err = locator.ParseScreen(req.Value)
		result = map[string]int{"index": index}
	case "anchor":
		var a engine.Anchor
		a, err = engine.ParseAnchor(req.Value)
		result = map[string]string{"anchor": a.String()}
	case "whitelist":
		var chars string
		chars, err = locator.ParseWhitelist(req.Value)
		result = map[string]string{"characters": chars}
	default:
		err = fmt.Errorf("unknown kind '%s'", req.Kind)
	}

	if err != nil {
		return NewErrorResponse(err)
	}
	return NewSuccessResponse(result)
}

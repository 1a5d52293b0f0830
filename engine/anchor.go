package engine

import (
	"fmt"
	"strings"

	"github.com/mobile-next/screenlocator/locator"
)

type AnchorKind int

const (
	AnchorScreen AnchorKind = iota
	AnchorActiveWindow
	AnchorApplication
	AnchorPriorMatch
)

// Anchor names the source a search region is derived from. It is only a
// descriptor: resolving it always queries live state.
type Anchor struct {
	Kind   AnchorKind
	Screen int
	App    string
}

func ScreenAnchor(index int) Anchor {
	return Anchor{Kind: AnchorScreen, Screen: index}
}

func ActiveWindowAnchor() Anchor {
	return Anchor{Kind: AnchorActiveWindow}
}

func ApplicationAnchor(name string) Anchor {
	return Anchor{Kind: AnchorApplication, App: name}
}

func PriorMatchAnchor() Anchor {
	return Anchor{Kind: AnchorPriorMatch}
}

func (a Anchor) String() string {
	switch a.Kind {
	case AnchorScreen:
		return fmt.Sprintf("screen %d", a.Screen)
	case AnchorActiveWindow:
		return "active"
	case AnchorApplication:
		return "app:" + a.App
	case AnchorPriorMatch:
		return "match"
	default:
		return "unknown"
	}
}

// ParseAnchor parses the textual anchor forms accepted by the CLI and server:
// "screen <n>", "active", "app:<name>" and "match".
func ParseAnchor(raw string) (Anchor, error) {
	s := strings.TrimSpace(raw)
	lower := strings.ToLower(s)

	switch {
	case lower == "active":
		return ActiveWindowAnchor(), nil
	case lower == "match":
		return PriorMatchAnchor(), nil
	case strings.HasPrefix(lower, "app:"):
		name := strings.TrimSpace(s[len("app:"):])
		if name == "" {
			return Anchor{}, fmt.Errorf("anchor '%s' is missing an application name", raw)
		}
		return ApplicationAnchor(name), nil
	case strings.HasPrefix(lower, "screen"):
		n, err := locator.ParseScreen(s)
		if err != nil {
			return Anchor{}, err
		}
		return ScreenAnchor(n), nil
	}

	return Anchor{}, fmt.Errorf("unknown anchor '%s', expected 'screen <n>', 'active', 'app:<name>' or 'match'", raw)
}

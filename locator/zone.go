package locator

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// WholeRegion is the zone keyword that selects the entire rectangle.
const WholeRegion = "region"

type Side int

const (
	Left Side = iota
	Right
	Above
	Below
)

var sideNames = map[string]Side{
	"left":  Left,
	"right": Right,
	"above": Above,
	"below": Below,
}

func (s Side) String() string {
	switch s {
	case Left:
		return "left"
	case Right:
		return "right"
	case Above:
		return "above"
	case Below:
		return "below"
	default:
		return "unknown"
	}
}

func (s Side) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// Zone selects either the whole rectangle or a strip of Distance pixels on
// one Side of it. Side and Distance are meaningless when Whole is set.
type Zone struct {
	Whole    bool `json:"whole"`
	Side     Side `json:"side"`
	Distance int  `json:"distance"`
}

func WholeZone() Zone {
	return Zone{Whole: true}
}

func SideZone(side Side, distance int) Zone {
	return Zone{Side: side, Distance: distance}
}

func (z Zone) String() string {
	if z.Whole {
		return WholeRegion
	}
	return fmt.Sprintf("%s = %d", z.Side, z.Distance)
}

// ParseZone parses "region" or "<left|right|above|below> = <pixels>".
func ParseZone(raw string) (Zone, error) {
	s := strings.ToLower(strings.TrimSpace(raw))
	if s == WholeRegion {
		return WholeZone(), nil
	}

	left, right, ok := strings.Cut(s, "=")
	if !ok {
		return Zone{}, &InvalidZoneSpecError{Raw: raw, Reason: "expected 'region' or '<side> = <pixels>'"}
	}

	side, known := sideNames[strings.TrimSpace(left)]
	if !known {
		return Zone{}, &InvalidZoneSpecError{Raw: raw, Reason: fmt.Sprintf("unknown side '%s'", strings.TrimSpace(left))}
	}

	distance, err := strconv.Atoi(strings.TrimSpace(right))
	if err != nil {
		return Zone{}, &InvalidZoneSpecError{Raw: raw, Reason: fmt.Sprintf("distance '%s' is not an integer", strings.TrimSpace(right))}
	}
	if distance < 0 {
		return Zone{}, &InvalidZoneSpecError{Raw: raw, Reason: "distance must be non-negative"}
	}

	return SideZone(side, distance), nil
}

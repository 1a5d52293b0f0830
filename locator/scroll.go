package locator

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

type Direction int

const (
	Up Direction = iota
	Down
)

func (d Direction) String() string {
	if d == Up {
		return "up"
	}
	return "down"
}

func (d Direction) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

// Scroll is a mouse wheel gesture of Steps notches in Direction.
type Scroll struct {
	Direction Direction `json:"direction"`
	Steps     int       `json:"steps"`
}

// ParseScroll parses "up = <steps>" or "down = <steps>".
func ParseScroll(raw string) (Scroll, error) {
	s := strings.ToLower(strings.TrimSpace(raw))
	left, right, ok := strings.Cut(s, "=")
	if !ok {
		return Scroll{}, &InvalidScrollSpecError{Raw: raw, Reason: "expected '<direction> = <steps>'"}
	}

	var direction Direction
	switch strings.TrimSpace(left) {
	case "up":
		direction = Up
	case "down":
		direction = Down
	default:
		return Scroll{}, &InvalidScrollSpecError{Raw: raw, Reason: fmt.Sprintf("unknown direction '%s', expected up or down", strings.TrimSpace(left))}
	}

	steps, err := strconv.Atoi(strings.TrimSpace(right))
	if err != nil {
		return Scroll{}, &InvalidScrollSpecError{Raw: raw, Reason: fmt.Sprintf("steps '%s' is not an integer", strings.TrimSpace(right))}
	}
	if steps < 0 {
		return Scroll{}, &InvalidScrollSpecError{Raw: raw, Reason: "steps must be non-negative"}
	}

	return Scroll{Direction: direction, Steps: steps}, nil
}

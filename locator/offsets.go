package locator

import (
	"fmt"
	"strconv"
	"strings"
)

// Offsets are signed pixel deltas applied to a rectangle as
// (x+DX, y+DY, width+DW, height+DH).
type Offsets struct {
	DX int `json:"dx"`
	DY int `json:"dy"`
	DW int `json:"dw"`
	DH int `json:"dh"`
}

// ParseOffsets parses "dx, dy, dw, dh", e.g. "10, 60, -20, -270".
func ParseOffsets(raw string) (Offsets, error) {
	parts := strings.Split(raw, ",")
	if len(parts) != 4 {
		return Offsets{}, &InvalidOffsetError{Raw: raw, Reason: fmt.Sprintf("expected 4 comma-separated integers, got %d", len(parts))}
	}

	var values [4]int
	for i, part := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return Offsets{}, &InvalidOffsetError{Raw: raw, Reason: fmt.Sprintf("'%s' is not an integer", strings.TrimSpace(part))}
		}
		values[i] = v
	}

	return Offsets{DX: values[0], DY: values[1], DW: values[2], DH: values[3]}, nil
}

func (o Offsets) String() string {
	return fmt.Sprintf("%d, %d, %d, %d", o.DX, o.DY, o.DW, o.DH)
}

package locator

import (
	"strconv"
	"strings"
)

// ParseScreen parses a screen anchor such as "Screen 1" into its index.
// The word "screen" is optional and case-insensitive.
func ParseScreen(raw string) (int, error) {
	s := strings.TrimSpace(strings.ToLower(raw))
	s = strings.TrimSpace(strings.TrimPrefix(s, "screen"))
	if s == "" {
		return 0, &InvalidScreenSpecError{Raw: raw, Reason: "missing screen number"}
	}

	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, &InvalidScreenSpecError{Raw: raw, Reason: "screen number is not an integer"}
	}
	if n < 0 {
		return 0, &InvalidScreenSpecError{Raw: raw, Reason: "screen number must be non-negative"}
	}

	return n, nil
}

package locator

import "strings"

const (
	charsNumeric    = "0123456789"
	charsAlphaLower = "abcdefghijklmnopqrstuvwxyz"
	charsAlphaUpper = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
)

var whitelistPresets = map[string]string{
	"numeric":      charsNumeric,
	"alpha_lower":  charsAlphaLower,
	"alpha_upper":  charsAlphaUpper,
	"alpha":        charsAlphaLower + charsAlphaUpper,
	"alphanumeric": charsAlphaLower + charsAlphaUpper + charsNumeric,
}

// ParseWhitelist resolves an OCR character whitelist. Preset names expand to
// their character set, anything else is taken as the literal set.
func ParseWhitelist(raw string) (string, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return "", &InvalidLocatorError{Raw: raw, Reason: "whitelist is empty"}
	}

	if chars, ok := whitelistPresets[strings.ToLower(s)]; ok {
		return chars, nil
	}

	return s, nil
}

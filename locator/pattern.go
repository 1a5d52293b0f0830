// Package locator parses the textual micro-grammar test drivers use to name
// screen elements, offsets, scroll gestures and spatial zones.
package locator

import (
	"fmt"
	"strconv"
	"strings"
)

// DefaultSimilarity applies to image locators without an explicit "= s" clause.
const DefaultSimilarity = 0.70

// imageExtensions are the suffixes that turn a locator into an image pattern.
var imageExtensions = []string{".png", ".jpg", ".jpeg", ".bmp", ".tif", ".tiff"}

type PatternKind int

const (
	PatternImage PatternKind = iota
	PatternText
)

func (k PatternKind) String() string {
	switch k {
	case PatternImage:
		return "image"
	case PatternText:
		return "text"
	default:
		return "unknown"
	}
}

// Pattern is what the recognizer searches for: either an image file with a
// similarity threshold, or a literal text matched through OCR.
type Pattern struct {
	Kind       PatternKind `json:"kind"`
	Path       string      `json:"path,omitempty"`
	Similarity float64     `json:"similarity,omitempty"`
	Text       string      `json:"text,omitempty"`
}

func ImagePattern(path string, similarity float64) Pattern {
	return Pattern{Kind: PatternImage, Path: path, Similarity: similarity}
}

func TextPattern(text string) Pattern {
	return Pattern{Kind: PatternText, Text: text}
}

func (p Pattern) IsImage() bool {
	return p.Kind == PatternImage
}

// String renders the pattern back in locator form.
func (p Pattern) String() string {
	if p.Kind == PatternImage {
		return fmt.Sprintf("%s = %.2f", p.Path, p.Similarity)
	}
	return p.Text
}

// ParsePattern turns a locator such as "login.png", "login.png = 0.9" or
// "Password" into a Pattern. The input is trimmed and lower-cased first.
func ParsePattern(raw string) (Pattern, error) {
	s := strings.ToLower(strings.TrimSpace(raw))
	if s == "" {
		return Pattern{}, &InvalidLocatorError{Raw: raw, Reason: "locator is empty"}
	}

	left, right, hasClause := strings.Cut(s, "=")
	path := strings.TrimSpace(left)
	if !hasImageExtension(path) {
		return TextPattern(s), nil
	}

	if !hasClause {
		return ImagePattern(path, DefaultSimilarity), nil
	}

	similarity, err := strconv.ParseFloat(strings.TrimSpace(right), 64)
	if err != nil {
		return Pattern{}, &InvalidLocatorError{Raw: raw, Reason: fmt.Sprintf("similarity '%s' is not a number", strings.TrimSpace(right))}
	}

	if !(similarity > 0 && similarity <= 1) {
		return Pattern{}, &InvalidLocatorError{Raw: raw, Reason: fmt.Sprintf("similarity %v must be in (0, 1]", similarity)}
	}

	return ImagePattern(path, similarity), nil
}

func hasImageExtension(path string) bool {
	for _, ext := range imageExtensions {
		if len(path) > len(ext) && strings.HasSuffix(path, ext) {
			return true
		}
	}
	return false
}

package recognition

import (
	"fmt"
	"image"
	"strings"

	"github.com/mobile-next/screenlocator/types"
	"github.com/mobile-next/screenlocator/utils"
	"github.com/otiai10/gosseract/v2"
)

// TextReader wraps a Tesseract client.
type TextReader struct {
	client    *gosseract.Client
	whitelist string
}

// word is one OCR word box in image coordinates.
type word struct {
	text       string
	box        image.Rectangle
	confidence float64
}

func NewTextReader(language, whitelist string) (*TextReader, error) {
	client := gosseract.NewClient()

	if language == "" {
		language = "eng"
	}
	if err := client.SetLanguage(language); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to set OCR language: %w", err)
	}

	return &TextReader{client: client, whitelist: whitelist}, nil
}

func (t *TextReader) Close() error {
	if t.client != nil {
		return t.client.Close()
	}
	return nil
}

func (t *TextReader) SetWhitelist(whitelist string) {
	t.whitelist = whitelist
}

func (t *TextReader) load(img image.Image, mode gosseract.PageSegMode) error {
	buf, err := utils.EncodePng(img)
	if err != nil {
		return fmt.Errorf("failed to encode image: %w", err)
	}

	if err := t.client.SetPageSegMode(mode); err != nil {
		return fmt.Errorf("failed to set PSM: %w", err)
	}

	if err := t.client.SetWhitelist(t.whitelist); err != nil {
		return fmt.Errorf("failed to set whitelist: %w", err)
	}

	if err := t.client.SetImageFromBytes(buf); err != nil {
		return fmt.Errorf("failed to set image: %w", err)
	}
	return nil
}

// Read returns the text in img with runs of whitespace collapsed.
func (t *TextReader) Read(img image.Image) (string, error) {
	if err := t.load(img, gosseract.PSM_AUTO); err != nil {
		return "", err
	}

	text, err := t.client.Text()
	if err != nil {
		return "", fmt.Errorf("OCR failed: %w", err)
	}

	return strings.Join(strings.Fields(text), " "), nil
}

func (t *TextReader) words(img image.Image) ([]word, error) {
	if err := t.load(img, gosseract.PSM_SPARSE_TEXT); err != nil {
		return nil, err
	}

	boxes, err := t.client.GetBoundingBoxes(gosseract.RIL_WORD)
	if err != nil {
		return nil, fmt.Errorf("failed to get boxes: %w", err)
	}

	words := make([]word, 0, len(boxes))
	for _, box := range boxes {
		text := strings.TrimSpace(box.Word)
		if text == "" {
			continue
		}
		words = append(words, word{text: text, box: box.Box, confidence: box.Confidence})
	}
	return words, nil
}

// matchPhrase finds every run of consecutive words spelling literal,
// ignoring case and surrounding punctuation. Each run becomes one match
// covering the union of its boxes, scored by mean confidence.
func matchPhrase(words []word, literal string) []types.Match {
	want := strings.Fields(strings.ToLower(literal))
	if len(want) == 0 {
		return nil
	}

	var matches []types.Match
	for start := 0; start+len(want) <= len(words); start++ {
		run := words[start : start+len(want)]
		if !runSpells(run, want) {
			continue
		}

		box := run[0].box
		total := 0.0
		for _, w := range run {
			box = box.Union(w.box)
			total += w.confidence
		}
		matches = append(matches, types.Match{Rect: types.FromImage(box), Score: total / float64(len(run)) / 100})
	}
	return matches
}

func runSpells(run []word, want []string) bool {
	for i, w := range run {
		if normalizeWord(w.text) != normalizeWord(want[i]) {
			return false
		}
	}
	return true
}

func normalizeWord(s string) string {
	return strings.Trim(strings.ToLower(s), ".,:;!?\"'()[]")
}

// Package recognition finds image and text patterns in screen captures using
// OpenCV template matching and Tesseract OCR.
package recognition

import (
	"errors"
	"fmt"
	"image"
	"os"
	"slices"
	"time"

	"github.com/mobile-next/screenlocator/locator"
	"github.com/mobile-next/screenlocator/types"
	"github.com/mobile-next/screenlocator/utils"
)

const (
	DefaultTimeout    = 3 * time.Second
	DefaultScanRate   = 3.0
	DefaultCacheSize  = 64
	DefaultMaxMatches = 100
)

// ErrOCRDisabled is returned for text patterns and text reads when OCR is off.
var ErrOCRDisabled = errors.New("text recognition is disabled, enable OCR to use text locators")

type Options struct {
	// Timeout bounds how long FindOne keeps rescanning; zero scans once.
	Timeout time.Duration
	// ScanRate is the number of scans per second while waiting.
	ScanRate     float64
	ImageLibrary string
	OCR          bool
	Language     string
	Whitelist    string
	CacheSize    int
	MaxMatches   int
}

func DefaultOptions() Options {
	return Options{
		Timeout:    DefaultTimeout,
		ScanRate:   DefaultScanRate,
		OCR:        true,
		Language:   "eng",
		CacheSize:  DefaultCacheSize,
		MaxMatches: DefaultMaxMatches,
	}
}

// Recognizer searches captures from a Source.
type Recognizer struct {
	source    Source
	opts      Options
	templates *templateCache
	reader    *TextReader
	sleep     func(time.Duration)
	now       func() time.Time
}

func New(source Source, opts Options) (*Recognizer, error) {
	if opts.CacheSize <= 0 {
		opts.CacheSize = DefaultCacheSize
	}
	if opts.MaxMatches <= 0 {
		opts.MaxMatches = DefaultMaxMatches
	}
	if opts.ScanRate <= 0 {
		opts.ScanRate = DefaultScanRate
	}

	if opts.ImageLibrary != "" {
		if err := checkLibrary(opts.ImageLibrary); err != nil {
			return nil, err
		}
	}

	templates, err := newTemplateCache(opts.ImageLibrary, opts.CacheSize)
	if err != nil {
		return nil, err
	}

	return &Recognizer{
		source:    source,
		opts:      opts,
		templates: templates,
		sleep:     time.Sleep,
		now:       time.Now,
	}, nil
}

func checkLibrary(dir string) error {
	info, err := os.Stat(dir)
	if err != nil {
		return fmt.Errorf("image library %s does not exist: %w", dir, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("image library %s is not a directory", dir)
	}
	return nil
}

// SetImageLibrary changes the directory relative pattern paths resolve in.
func (r *Recognizer) SetImageLibrary(dir string) error {
	if err := checkLibrary(dir); err != nil {
		return err
	}
	r.opts.ImageLibrary = dir
	r.templates.library = dir
	r.templates.purge()
	return nil
}

// SetWhitelist restricts OCR to the given characters; empty clears it.
func (r *Recognizer) SetWhitelist(chars string) {
	r.opts.Whitelist = chars
	if r.reader != nil {
		r.reader.SetWhitelist(chars)
	}
}

func (r *Recognizer) SetTimeout(timeout time.Duration) {
	r.opts.Timeout = timeout
}

func (r *Recognizer) Options() Options {
	return r.opts
}

func (r *Recognizer) Close() error {
	r.templates.purge()
	if r.reader != nil {
		err := r.reader.Close()
		r.reader = nil
		return err
	}
	return nil
}

func (r *Recognizer) textReader() (*TextReader, error) {
	if !r.opts.OCR {
		return nil, ErrOCRDisabled
	}

	if r.reader == nil {
		reader, err := NewTextReader(r.opts.Language, r.opts.Whitelist)
		if err != nil {
			return nil, err
		}
		r.reader = reader
	}
	return r.reader, nil
}

// FindAll scans the current capture once.
func (r *Recognizer) FindAll(p locator.Pattern, within types.Rect) ([]types.Match, error) {
	if !p.IsImage() && !r.opts.OCR {
		return nil, ErrOCRDisabled
	}

	screen, origin, err := r.source.Capture()
	if err != nil {
		return nil, fmt.Errorf("failed to capture screen: %w", err)
	}

	area, ok := searchArea(screen.Bounds(), origin, within)
	if !ok {
		utils.Verbose("Search region %v is empty or off screen", within)
		return nil, nil
	}

	var found []types.Match
	if p.IsImage() {
		found, err = r.findImage(screen, area, p)
	} else {
		found, err = r.findText(screen, area, p)
	}
	if err != nil {
		return nil, err
	}

	for i := range found {
		found[i].Rect = toScreen(found[i].Rect.ToImage(), screen.Bounds(), origin)
	}

	utils.Verbose("Found %d match(es) for '%s' in %v", len(found), p, within)
	return found, nil
}

func (r *Recognizer) findImage(screen image.Image, area image.Rectangle, p locator.Pattern) ([]types.Match, error) {
	tmpl, err := r.templates.get(p.Path)
	if err != nil {
		return nil, err
	}
	return matchTemplate(screen, area, tmpl, p.Similarity, r.opts.MaxMatches)
}

func (r *Recognizer) findText(screen image.Image, area image.Rectangle, p locator.Pattern) ([]types.Match, error) {
	reader, err := r.textReader()
	if err != nil {
		return nil, err
	}

	crop, err := utils.CropImage(screen, area)
	if err != nil {
		return nil, err
	}

	words, err := reader.words(crop)
	if err != nil {
		return nil, err
	}

	found := matchPhrase(words, p.Text)
	for i := range found {
		found[i].Rect = types.FromImage(found[i].Rect.ToImage().Add(area.Min))
	}
	return found, nil
}

// FindOne rescans at the configured scan rate until p shows up or the
// timeout passes, and returns the highest scoring match.
func (r *Recognizer) FindOne(p locator.Pattern, within types.Rect) (types.Match, bool, error) {
	deadline := r.now().Add(r.opts.Timeout)
	interval := time.Duration(float64(time.Second) / r.opts.ScanRate)

	for {
		found, err := r.FindAll(p, within)
		if err != nil {
			return types.Match{}, false, err
		}

		if len(found) > 0 {
			best := slices.MaxFunc(found, func(a, b types.Match) int {
				switch {
				case a.Score < b.Score:
					return -1
				case a.Score > b.Score:
					return 1
				}
				return 0
			})
			return best, true, nil
		}

		if !r.now().Before(deadline) {
			return types.Match{}, false, nil
		}
		r.sleep(interval)
	}
}

// ReadText runs OCR over within.
func (r *Recognizer) ReadText(within types.Rect) (string, error) {
	reader, err := r.textReader()
	if err != nil {
		return "", err
	}

	screen, origin, err := r.source.Capture()
	if err != nil {
		return "", fmt.Errorf("failed to capture screen: %w", err)
	}

	area, ok := searchArea(screen.Bounds(), origin, within)
	if !ok {
		return "", fmt.Errorf("text region %v is empty or off screen", within)
	}

	crop, err := utils.CropImage(screen, area)
	if err != nil {
		return "", err
	}

	return reader.Read(crop)
}

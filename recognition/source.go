package recognition

import (
	"image"

	"github.com/mobile-next/screenlocator/types"
	"github.com/mobile-next/screenlocator/utils"
)

// Source supplies the pixels the recognizer searches. Capture returns the
// current screen image and the screen coordinate of its top-left pixel.
type Source interface {
	Capture() (image.Image, image.Point, error)
}

// Snapshot reads the screen from an image file on every capture, so a
// screenshotter that keeps overwriting the file is picked up while polling.
type Snapshot struct {
	Path   string
	Origin image.Point
}

func NewSnapshot(path string, origin image.Point) *Snapshot {
	return &Snapshot{Path: path, Origin: origin}
}

func (s *Snapshot) Capture() (image.Image, image.Point, error) {
	img, err := utils.LoadImage(s.Path)
	if err != nil {
		return nil, image.Point{}, err
	}
	return img, s.Origin, nil
}

// StaticSource serves a fixed in-memory image.
type StaticSource struct {
	Image  image.Image
	Origin image.Point
}

func (s *StaticSource) Capture() (image.Image, image.Point, error) {
	return s.Image, s.Origin, nil
}

// searchArea maps a screen rectangle into image coordinates of a capture
// whose top-left pixel sits at origin, clipped to the image. ok is false when
// nothing of within is visible in the capture.
func searchArea(bounds image.Rectangle, origin image.Point, within types.Rect) (image.Rectangle, bool) {
	if within.IsEmpty() {
		return image.Rectangle{}, false
	}

	area := within.ToImage().Sub(origin).Add(bounds.Min).Intersect(bounds)
	if area.Empty() {
		return image.Rectangle{}, false
	}
	return area, true
}

// toScreen maps a rectangle in image coordinates back to the screen.
func toScreen(r image.Rectangle, bounds image.Rectangle, origin image.Point) types.Rect {
	return types.FromImage(r.Sub(bounds.Min).Add(origin))
}

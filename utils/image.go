package utils

import (
	"bytes"
	"fmt"
	"image"
	"image/draw"
	"image/jpeg"
	"image/png"
	"os"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// LoadImage decodes a png, jpeg, bmp, tiff or webp file.
func LoadImage(path string) (image.Image, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read image %s: %w", path, err)
	}

	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image %s: %w", path, err)
	}

	Verbose("Loaded %s image %s (%dx%d)", format, path, img.Bounds().Dx(), img.Bounds().Dy())
	return img, nil
}

// CropImage copies the part of img inside r into a new RGBA image whose
// origin is (0,0). r is clipped to the image bounds.
func CropImage(img image.Image, r image.Rectangle) (*image.RGBA, error) {
	clipped := r.Intersect(img.Bounds())
	if clipped.Empty() {
		return nil, fmt.Errorf("crop %v is outside image bounds %v", r, img.Bounds())
	}

	out := image.NewRGBA(image.Rect(0, 0, clipped.Dx(), clipped.Dy()))
	draw.Draw(out, out.Bounds(), img, clipped.Min, draw.Src)
	return out, nil
}

func EncodePng(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func ConvertPngToJpeg(pngBytes []byte, quality int) ([]byte, error) {
	img, err := png.Decode(bytes.NewReader(pngBytes))
	if err != nil {
		return nil, err
	}

	var jpegBytes bytes.Buffer
	if err := jpeg.Encode(&jpegBytes, img, &jpeg.Options{Quality: quality}); err != nil {
		return nil, err
	}

	return jpegBytes.Bytes(), nil
}

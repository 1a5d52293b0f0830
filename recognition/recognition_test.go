package recognition

import (
	"errors"
	"image"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/mobile-next/screenlocator/locator"
	"github.com/mobile-next/screenlocator/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingSource struct{ calls int }

func (f *failingSource) Capture() (image.Image, image.Point, error) {
	f.calls++
	return nil, image.Point{}, errors.New("display unavailable")
}

func TestSearchArea(t *testing.T) {
	bounds := image.Rect(0, 0, 100, 80)

	tests := []struct {
		name   string
		origin image.Point
		within types.Rect
		want   image.Rectangle
		ok     bool
	}{
		{"inside", image.Point{}, types.NewRect(10, 10, 20, 20), image.Rect(10, 10, 30, 30), true},
		{"clipped", image.Point{}, types.NewRect(90, 70, 50, 50), image.Rect(90, 70, 100, 80), true},
		{"origin shift", image.Pt(1920, 0), types.NewRect(1930, 5, 10, 10), image.Rect(10, 5, 20, 15), true},
		{"off screen", image.Point{}, types.NewRect(200, 200, 10, 10), image.Rectangle{}, false},
		{"empty", image.Point{}, types.NewRect(10, 10, 0, 5), image.Rectangle{}, false},
		{"negative size", image.Point{}, types.NewRect(10, 10, -5, 5), image.Rectangle{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := searchArea(bounds, tt.origin, tt.within)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestToScreen(t *testing.T) {
	got := toScreen(image.Rect(10, 5, 20, 15), image.Rect(0, 0, 100, 80), image.Pt(1920, 0))
	assert.Equal(t, types.NewRect(1930, 5, 10, 10), got)

	// images that do not start at 0,0
	got = toScreen(image.Rect(15, 15, 25, 25), image.Rect(5, 5, 105, 85), image.Pt(0, 0))
	assert.Equal(t, types.NewRect(10, 10, 10, 10), got)
}

func TestResolvePath(t *testing.T) {
	library := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(library, "ok.png"), []byte{}, 0o644))

	assert.Equal(t, filepath.Join(library, "ok.png"), resolvePath(library, "ok.png"))
	assert.Equal(t, "missing.png", resolvePath(library, "missing.png"))
	assert.Equal(t, "ok.png", resolvePath("", "ok.png"))
	assert.Equal(t, "/abs/ok.png", resolvePath(library, "/abs/ok.png"))
}

func TestMatchPhrase(t *testing.T) {
	words := []word{
		{text: "Click", box: image.Rect(0, 0, 30, 10), confidence: 90},
		{text: "OK", box: image.Rect(35, 0, 50, 10), confidence: 70},
		{text: "or", box: image.Rect(55, 0, 65, 10), confidence: 95},
		{text: "ok.", box: image.Rect(0, 20, 15, 30), confidence: 80},
	}

	found := matchPhrase(words, "ok")
	require.Len(t, found, 2)
	assert.Equal(t, types.NewRect(35, 0, 15, 10), found[0].Rect)
	assert.InDelta(t, 0.70, found[0].Score, 1e-9)
	assert.Equal(t, types.NewRect(0, 20, 15, 10), found[1].Rect)

	found = matchPhrase(words, "click ok")
	require.Len(t, found, 1)
	assert.Equal(t, types.NewRect(0, 0, 50, 10), found[0].Rect)
	assert.InDelta(t, 0.80, found[0].Score, 1e-9)

	assert.Empty(t, matchPhrase(words, "cancel"))
	assert.Empty(t, matchPhrase(words, "   "))
	assert.Empty(t, matchPhrase(nil, "ok"))
}

func TestNewRejectsMissingLibrary(t *testing.T) {
	opts := DefaultOptions()
	opts.ImageLibrary = filepath.Join(t.TempDir(), "nope")

	_, err := New(&StaticSource{}, opts)
	assert.ErrorContains(t, err, "does not exist")

	file := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0o644))
	opts.ImageLibrary = file
	_, err = New(&StaticSource{}, opts)
	assert.ErrorContains(t, err, "not a directory")
}

func TestOCRDisabled(t *testing.T) {
	opts := DefaultOptions()
	opts.OCR = false

	r, err := New(&StaticSource{Image: image.NewRGBA(image.Rect(0, 0, 10, 10))}, opts)
	require.NoError(t, err)
	defer r.Close()

	_, err = r.FindAll(locator.TextPattern("ok"), types.NewRect(0, 0, 10, 10))
	assert.ErrorIs(t, err, ErrOCRDisabled)

	_, _, err = r.FindOne(locator.TextPattern("ok"), types.NewRect(0, 0, 10, 10))
	assert.ErrorIs(t, err, ErrOCRDisabled)

	_, err = r.ReadText(types.NewRect(0, 0, 10, 10))
	assert.ErrorIs(t, err, ErrOCRDisabled)
}

func TestFindOneStopsOnCaptureError(t *testing.T) {
	source := &failingSource{}
	r, err := New(source, DefaultOptions())
	require.NoError(t, err)
	defer r.Close()

	r.sleep = func(time.Duration) { t.Fatal("should not sleep after an error") }

	_, found, err := r.FindOne(locator.ImagePattern("button.png", 0.9), types.NewRect(0, 0, 10, 10))
	assert.ErrorContains(t, err, "display unavailable")
	assert.False(t, found)
	assert.Equal(t, 1, source.calls)
}

func TestFindAllOffScreenRegion(t *testing.T) {
	r, err := New(&StaticSource{Image: image.NewRGBA(image.Rect(0, 0, 10, 10))}, DefaultOptions())
	require.NoError(t, err)
	defer r.Close()

	found, err := r.FindAll(locator.ImagePattern("button.png", 0.9), types.NewRect(50, 50, 10, 10))
	require.NoError(t, err)
	assert.Empty(t, found)
}

func TestFindOnePollsUntilTimeout(t *testing.T) {
	opts := DefaultOptions()
	opts.Timeout = time.Second
	opts.ScanRate = 4

	r, err := New(&StaticSource{Image: image.NewRGBA(image.Rect(0, 0, 10, 10))}, opts)
	require.NoError(t, err)
	defer r.Close()

	clock := time.Unix(0, 0)
	var slept []time.Duration
	r.now = func() time.Time { return clock }
	r.sleep = func(d time.Duration) {
		slept = append(slept, d)
		clock = clock.Add(d)
	}

	// off-screen region never matches, so every scan comes back empty
	_, found, err := r.FindOne(locator.ImagePattern("button.png", 0.9), types.NewRect(50, 50, 10, 10))
	require.NoError(t, err)
	assert.False(t, found)
	assert.Len(t, slept, 4)
	for _, d := range slept {
		assert.Equal(t, 250*time.Millisecond, d)
	}
}

func TestSetImageLibrary(t *testing.T) {
	r, err := New(&StaticSource{}, DefaultOptions())
	require.NoError(t, err)
	defer r.Close()

	dir := t.TempDir()
	require.NoError(t, r.SetImageLibrary(dir))
	assert.Equal(t, dir, r.Options().ImageLibrary)

	assert.Error(t, r.SetImageLibrary(filepath.Join(dir, "missing")))
	assert.Equal(t, dir, r.Options().ImageLibrary)
}

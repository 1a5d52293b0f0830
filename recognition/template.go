package recognition

import (
	"fmt"
	"image"
	"os"
	"path/filepath"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/mobile-next/screenlocator/types"
	"github.com/mobile-next/screenlocator/utils"
	"gocv.io/x/gocv"
)

// templateCache keeps decoded pattern images keyed by resolved path. Evicted
// mats are closed.
type templateCache struct {
	library string
	cache   *lru.Cache[string, gocv.Mat]
}

func newTemplateCache(library string, size int) (*templateCache, error) {
	cache, err := lru.NewWithEvict[string, gocv.Mat](size, func(_ string, m gocv.Mat) {
		_ = m.Close()
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create template cache: %w", err)
	}

	return &templateCache{library: library, cache: cache}, nil
}

// resolvePath looks a pattern up in the image library first and falls back
// to the path as given.
func resolvePath(library, path string) string {
	if library == "" || filepath.IsAbs(path) {
		return path
	}

	candidate := filepath.Join(library, path)
	if _, err := os.Stat(candidate); err == nil {
		return candidate
	}
	return path
}

func (c *templateCache) get(path string) (gocv.Mat, error) {
	full := resolvePath(c.library, path)
	if m, ok := c.cache.Get(full); ok {
		return m, nil
	}

	m := gocv.IMRead(full, gocv.IMReadColor)
	if m.Empty() {
		_ = m.Close()
		return gocv.Mat{}, fmt.Errorf("failed to load pattern image %s", full)
	}

	utils.Verbose("Loaded pattern %s (%dx%d)", full, m.Cols(), m.Rows())
	c.cache.Add(full, m)
	return m, nil
}

func (c *templateCache) purge() {
	c.cache.Purge()
}

// matchTemplate returns every placement of tmpl inside area of screen whose
// normalized correlation reaches similarity, strongest first, in image
// coordinates. Each peak suppresses its template-sized neighbourhood so one
// element yields one match.
func matchTemplate(screen image.Image, area image.Rectangle, tmpl gocv.Mat, similarity float64, limit int) ([]types.Match, error) {
	crop, err := utils.CropImage(screen, area)
	if err != nil {
		return nil, err
	}

	search, err := gocv.ImageToMatRGB(crop)
	if err != nil {
		return nil, fmt.Errorf("failed to convert capture: %w", err)
	}
	defer search.Close()

	tw, th := tmpl.Cols(), tmpl.Rows()
	if tw > search.Cols() || th > search.Rows() {
		return nil, nil
	}

	result := gocv.NewMat()
	defer result.Close()
	mask := gocv.NewMat()
	defer mask.Close()

	gocv.MatchTemplate(search, tmpl, &result, gocv.TmCcoeffNormed, mask)

	resultBounds := image.Rect(0, 0, result.Cols(), result.Rows())
	var found []types.Match
	for len(found) < limit {
		_, maxVal, _, maxLoc := gocv.MinMaxLoc(result)
		if float64(maxVal) < similarity {
			break
		}

		hit := image.Rect(maxLoc.X, maxLoc.Y, maxLoc.X+tw, maxLoc.Y+th).Add(area.Min)
		found = append(found, types.Match{Rect: types.FromImage(hit), Score: float64(maxVal)})

		suppress := image.Rect(maxLoc.X-tw/2, maxLoc.Y-th/2, maxLoc.X+tw/2+1, maxLoc.Y+th/2+1).Intersect(resultBounds)
		roi := result.Region(suppress)
		roi.SetTo(gocv.NewScalar(-1, 0, 0, 0))
		_ = roi.Close()
	}

	return found, nil
}

package engine

import (
	"errors"
	"testing"
	"time"

	"github.com/mobile-next/screenlocator/locator"
	"github.com/mobile-next/screenlocator/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scriptedRecognizer returns one canned frame per FindAll call and repeats
// the last frame once the script runs out.
type scriptedRecognizer struct {
	fakeRecognizer
	frames [][]types.Match
	err    error
}

func (s *scriptedRecognizer) FindAll(p locator.Pattern, within types.Rect) ([]types.Match, error) {
	s.findAll++
	s.searched = append(s.searched, within)
	if s.err != nil {
		return nil, s.err
	}
	i := min(s.findAll-1, len(s.frames)-1)
	return s.frames[i], nil
}

// fakeClock advances only when the engine sleeps.
type fakeClock struct {
	now    time.Time
	sleeps []time.Duration
}

func (c *fakeClock) install(e *Engine) {
	c.now = time.Unix(1700000000, 0)
	e.now = func() time.Time { return c.now }
	e.sleep = func(d time.Duration) {
		c.sleeps = append(c.sleeps, d)
		c.now = c.now.Add(d)
	}
}

func newWaitEngine(frames ...[]types.Match) (*Engine, *scriptedRecognizer, *fakeClock) {
	e, screens, _ := newTestEngine()
	rec := &scriptedRecognizer{frames: frames}
	e = New(screens, rec)
	clock := &fakeClock{}
	clock.install(e)
	return e, rec, clock
}

func TestWait_AppearsAfterRescans(t *testing.T) {
	late := types.Match{Rect: types.NewRect(40, 40, 10, 10), Score: 0.8}
	best := types.Match{Rect: types.NewRect(90, 40, 10, 10), Score: 0.95}
	e, rec, clock := newWaitEngine(nil, nil, []types.Match{late, best})
	e.SetPollInterval(250 * time.Millisecond)

	m, err := e.Wait("ok.png", 2*time.Second)
	require.NoError(t, err)
	assert.Equal(t, best, m)
	assert.Equal(t, 3, rec.findAll)
	assert.Equal(t, []time.Duration{250 * time.Millisecond, 250 * time.Millisecond}, clock.sleeps)

	prior, ok := e.LastMatch()
	require.True(t, ok)
	assert.Equal(t, best, prior)
}

func TestWait_TimesOut(t *testing.T) {
	e, rec, clock := newWaitEngine(nil)
	e.SetPollInterval(500 * time.Millisecond)

	_, err := e.Wait("ok.png", 2*time.Second)

	var notFound *locator.NoMatchFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "ok.png", notFound.Locator)
	assert.Equal(t, 5, rec.findAll)
	assert.Len(t, clock.sleeps, 4)

	_, ok := e.LastMatch()
	assert.False(t, ok)
}

func TestWait_ZeroTimeoutScansOnce(t *testing.T) {
	e, rec, clock := newWaitEngine(nil)

	_, err := e.Wait("ok.png", 0)
	assert.Error(t, err)
	assert.Equal(t, 1, rec.findAll)
	assert.Empty(t, clock.sleeps)
}

func TestWait_ForeverKeepsPolling(t *testing.T) {
	frames := make([][]types.Match, 50)
	frames[49] = matchesAt(types.NewRect(1, 1, 5, 5))
	e, rec, _ := newWaitEngine(frames...)

	_, err := e.Wait("ok.png", Forever)
	require.NoError(t, err)
	assert.Equal(t, 50, rec.findAll)
}

func TestWait_SearchesRegion(t *testing.T) {
	e, rec, _ := newWaitEngine(matchesAt(types.NewRect(1, 1, 5, 5)))
	_, err := e.SetSearchRegion(ActiveWindowAnchor(), &locator.Offsets{DX: 10, DY: 10, DW: -20, DH: -20})
	require.NoError(t, err)

	_, err = e.Wait("ok.png", time.Second)
	require.NoError(t, err)
	assert.Equal(t, []types.Rect{types.NewRect(110, 60, 780, 580)}, rec.searched)
}

func TestWaitVanish(t *testing.T) {
	visible := matchesAt(types.NewRect(1, 1, 5, 5))

	t.Run("gone after rescans", func(t *testing.T) {
		e, rec, _ := newWaitEngine(visible, visible, nil)
		require.NoError(t, e.WaitVanish("spinner.png", 3*time.Second))
		assert.Equal(t, 3, rec.findAll)
	})

	t.Run("already gone", func(t *testing.T) {
		e, rec, clock := newWaitEngine(nil)
		require.NoError(t, e.WaitVanish("spinner.png", 3*time.Second))
		assert.Equal(t, 1, rec.findAll)
		assert.Empty(t, clock.sleeps)
	})

	t.Run("still visible", func(t *testing.T) {
		e, _, _ := newWaitEngine(visible)
		err := e.WaitVanish("spinner.png", time.Second)

		var still *locator.StillVisibleError
		require.ErrorAs(t, err, &still)
		assert.Equal(t, "spinner.png", still.Locator)
		assert.Equal(t, time.Second, still.Timeout)
	})
}

func TestWait_Errors(t *testing.T) {
	e, rec, _ := newWaitEngine(nil)

	var invalid *locator.InvalidLocatorError
	_, err := e.Wait("  ", time.Second)
	assert.ErrorAs(t, err, &invalid)
	assert.Equal(t, 0, rec.findAll)

	boom := errors.New("capture failed")
	rec.err = boom
	_, err = e.Wait("ok.png", time.Second)
	assert.ErrorIs(t, err, boom)
	assert.ErrorIs(t, e.WaitVanish("ok.png", time.Second), boom)
	assert.Equal(t, 2, rec.findAll)
}

func TestSetPollInterval_Default(t *testing.T) {
	e, _, _ := newTestEngine()
	e.SetPollInterval(0)
	assert.Equal(t, DefaultPollInterval, e.pollInterval)
}

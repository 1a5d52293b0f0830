package engine

import (
	"errors"
	"math/rand/v2"
	"testing"

	"github.com/mobile-next/screenlocator/locator"
	"github.com/mobile-next/screenlocator/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rectsOf(matches []types.Match) []types.Rect {
	out := make([]types.Rect, len(matches))
	for i, m := range matches {
		out[i] = m.Rect
	}
	return out
}

func TestOrder_ReadingOrder(t *testing.T) {
	raw := []types.Rect{
		types.NewRect(300, 200, 10, 10),
		types.NewRect(10, 200, 10, 10),
		types.NewRect(500, 5, 10, 10),
		types.NewRect(20, 90, 10, 10),
	}

	ordered := Order(raw)

	assert.Equal(t, []types.Rect{
		types.NewRect(500, 5, 10, 10),
		types.NewRect(20, 90, 10, 10),
		types.NewRect(10, 200, 10, 10),
		types.NewRect(300, 200, 10, 10),
	}, rectsOf(ordered))

	for i, m := range ordered {
		assert.Equal(t, i+1, m.Ordinal)
	}
}

func TestOrder_StableForSameCorner(t *testing.T) {
	// same top-left, distinguishable by size
	first := types.NewRect(50, 50, 10, 10)
	second := types.NewRect(50, 50, 20, 20)
	third := types.NewRect(50, 50, 30, 30)

	ordered := Order([]types.Rect{first, types.NewRect(0, 0, 1, 1), second, third})

	assert.Equal(t, []types.Rect{types.NewRect(0, 0, 1, 1), first, second, third}, rectsOf(ordered))
}

func TestOrder_Idempotent(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 11))

	for i := 0; i < 50; i++ {
		raw := make([]types.Rect, rng.IntN(20))
		for j := range raw {
			raw[j] = types.NewRect(rng.IntN(5)*100, rng.IntN(5)*100, rng.IntN(50)+1, rng.IntN(50)+1)
		}

		once := Order(raw)
		twice := OrderMatches(once)
		assert.Equal(t, once, twice)
	}
}

func TestOrderMatches_KeepsScoresAndInput(t *testing.T) {
	raw := []types.Match{
		{Rect: types.NewRect(0, 100, 1, 1), Score: 0.8},
		{Rect: types.NewRect(0, 0, 1, 1), Score: 0.95},
	}

	ordered := OrderMatches(raw)

	assert.Equal(t, 0.95, ordered[0].Score)
	assert.Equal(t, 0.8, ordered[1].Score)
	assert.Equal(t, 0, raw[0].Ordinal, "input must not be modified")
	assert.Equal(t, 100, raw[0].Rect.Y)
}

func TestOrder_Empty(t *testing.T) {
	ordered := Order(nil)
	assert.Empty(t, ordered)
	assert.Equal(t, 0, Count(ordered))
}

func TestNth(t *testing.T) {
	ordered := Order([]types.Rect{
		types.NewRect(40, 40, 5, 5),
		types.NewRect(10, 10, 5, 5),
		types.NewRect(90, 10, 5, 5),
	})

	m, err := Nth(ordered, 1)
	require.NoError(t, err)
	assert.Equal(t, types.NewRect(10, 10, 5, 5), m.Rect)

	m, err = Nth(ordered, 3)
	require.NoError(t, err)
	assert.Equal(t, types.NewRect(40, 40, 5, 5), m.Rect)

	for _, index := range []int{0, -1, 4} {
		_, err := Nth(ordered, index)
		var rangeErr *locator.IndexOutOfRangeError
		require.True(t, errors.As(err, &rangeErr), "index %d", index)
		assert.Equal(t, index, rangeErr.Index)
		assert.Equal(t, 3, rangeErr.Count)
	}
}

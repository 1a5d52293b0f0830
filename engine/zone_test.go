package engine

import (
	"testing"

	"github.com/mobile-next/screenlocator/locator"
	"github.com/mobile-next/screenlocator/types"
	"github.com/stretchr/testify/assert"
)

func TestZoneOf(t *testing.T) {
	r := types.NewRect(100, 100, 50, 20)

	tests := []struct {
		name     string
		zone     locator.Zone
		expected types.Rect
	}{
		{"whole region", locator.WholeZone(), r},
		{"left", locator.SideZone(locator.Left, 300), types.NewRect(-200, 100, 300, 20)},
		{"right", locator.SideZone(locator.Right, 400), types.NewRect(150, 100, 400, 20)},
		{"above", locator.SideZone(locator.Above, 500), types.NewRect(100, -400, 50, 500)},
		{"below", locator.SideZone(locator.Below, 600), types.NewRect(100, 120, 50, 600)},
		{"zero distance", locator.SideZone(locator.Below, 0), types.NewRect(100, 120, 50, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ZoneOf(r, tt.zone))
		})
	}
}

func TestZoneOf_FromParsedZone(t *testing.T) {
	zone, err := locator.ParseZone("left = 300")
	assert.NoError(t, err)
	assert.Equal(t, types.NewRect(-200, 100, 300, 20), ZoneOf(types.NewRect(100, 100, 50, 20), zone))
}

package model

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustWallpaper(t *testing.T, name string, price, w, l float64) *Wallpaper {
	t.Helper()
	m, err := NewWallpaper(name, price, w, l)
	require.NoError(t, err)
	return m
}

func TestWallpaperCoverage(t *testing.T) {
	tests := []struct {
		name  string
		w, l  float64
		cover float64
	}{
		{"default roll", DefaultRollWidth, DefaultRollLength, 0.53 * 10.05},
		{"wide roll", 0.7, 10.0, 7.0},
		{"tiny roll", 0.1, 0.1, 0.01},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := mustWallpaper(t, "Vinyl", 1200, tt.w, tt.l)
			assert.InDelta(t, tt.cover, w.UnitCoverage(), 1e-9)
			assert.Equal(t, tt.w, w.RollWidth())
			assert.Equal(t, tt.l, w.RollLength())
		})
	}
}

func TestTileCoverage(t *testing.T) {
	tile, err := NewTile("Ceramic", 2500, 10, 0.3, 0.3)
	require.NoError(t, err)
	assert.InDelta(t, 0.3*0.3*10, tile.UnitCoverage(), 1e-9)

	big, err := NewTile("Porcelain", 3900, 5, 0.6, 0.6)
	require.NoError(t, err)
	assert.InDelta(t, 0.6*0.6*5, big.UnitCoverage(), 1e-9)
	assert.Equal(t, 5, big.TilesPerBox())
}

func TestLaminateCoverage(t *testing.T) {
	lam, err := NewLaminate("Oak", 1800, 8, 0.193, 1.380)
	require.NoError(t, err)
	assert.InDelta(t, 0.193*1.380*8, lam.UnitCoverage(), 1e-9)

	lam, err = NewLaminate("Ash", 2000, 10, 0.2, 1.5)
	require.NoError(t, err)
	assert.InDelta(t, 3.0, lam.UnitCoverage(), 1e-9)
}

func TestMaterialValidation(t *testing.T) {
	tests := []struct {
		name  string
		build func() error
		msg   string
	}{
		{"empty name", func() error { _, err := NewWallpaper("  ", 100, 0.5, 10); return err }, "name must not be empty"},
		{"negative price", func() error { _, err := NewWallpaper("W", -100, 0.5, 10); return err }, "price must be a positive number"},
		{"zero price", func() error { _, err := NewWallpaper("W", 0, 0.5, 10); return err }, "price must be a positive number"},
		{"roll width", func() error { _, err := NewWallpaper("W", 100, 0, 10); return err }, "roll width must be positive"},
		{"roll length", func() error { _, err := NewWallpaper("W", 100, 0.5, -1); return err }, "roll length must be positive"},
		{"tiles per box", func() error { _, err := NewTile("T", 100, 0, 0.3, 0.3); return err }, "tiles per box must be positive"},
		{"tile height", func() error { _, err := NewTile("T", 100, 10, 0.3, 0); return err }, "tile height must be positive"},
		{"planks per pack", func() error { _, err := NewLaminate("L", 100, -2, 0.2, 1.3); return err }, "planks per pack must be positive"},
		{"plank width", func() error { _, err := NewLaminate("L", 100, 8, 0, 1.3); return err }, "plank width must be positive"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.build()
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrRange))
			assert.Contains(t, err.Error(), tt.msg)
		})
	}
}

func TestMaterialCoverageMustBeFinite(t *testing.T) {
	tests := []struct {
		name  string
		build func() error
	}{
		{"wallpaper underflow", func() error { _, err := NewWallpaper("dust", 5, 1e-200, 1e-200); return err }},
		{"wallpaper overflow", func() error { _, err := NewWallpaper("huge", 5, math.MaxFloat64, 10); return err }},
		{"tile underflow", func() error { _, err := NewTile("T", 5, 1, 1e-170, 1e-170); return err }},
		{"laminate overflow", func() error { _, err := NewLaminate("L", 5, 8, 1e200, 1e200); return err }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.build()
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrRange)
			assert.Contains(t, err.Error(), "unit coverage")
		})
	}

	tiny, err := NewTile("micro", 5, 1, 1e-10, 1e-10)
	require.NoError(t, err)
	assert.InDelta(t, 1e-20, tiny.UnitCoverage(), 1e-30)
}

func TestValidate(t *testing.T) {
	w := mustWallpaper(t, "W", 1000, DefaultRollWidth, DefaultRollLength)
	assert.NoError(t, Validate(w))

	var nilTile *Tile
	tests := []struct {
		name string
		m    Material
	}{
		{"nil", nil},
		{"typed nil", nilTile},
		{"zero wallpaper", &Wallpaper{}},
		{"zero tile", &Tile{}},
		{"zero laminate", &Laminate{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.m)
			assert.ErrorIs(t, err, ErrType)
			assert.Contains(t, err.Error(), "must be a Material instance")
		})
	}
}

func TestSetPricePerUnit(t *testing.T) {
	w := mustWallpaper(t, "Test", 1000, DefaultRollWidth, DefaultRollLength)

	require.NoError(t, w.SetPricePerUnit(1500))
	assert.Equal(t, 1500.0, w.PricePerUnit())

	assert.ErrorIs(t, w.SetPricePerUnit(-100), ErrRange)
	assert.ErrorIs(t, w.SetPricePerUnit(0), ErrRange)
	assert.Equal(t, 1500.0, w.PricePerUnit(), "failed update must keep the old price")
}

func TestUnitTypes(t *testing.T) {
	w := mustWallpaper(t, "W", 1, 1, 1)
	tile, _ := NewTile("T", 1, 1, 1, 1)
	lam, _ := NewLaminate("L", 1, 1, 1, 1)

	assert.Equal(t, "roll", w.UnitType())
	assert.Equal(t, "box", tile.UnitType())
	assert.Equal(t, "pack", lam.UnitType())
}

func TestDetailedInfo(t *testing.T) {
	w := mustWallpaper(t, "Test", 1000, 0.5, 10.0)
	info := w.DetailedInfo()
	assert.Equal(t, "Test", info["name"])
	assert.Equal(t, 1000.0, info["price"])
	assert.Equal(t, 0.5, info["roll_width"])
	assert.Equal(t, 10.0, info["roll_length"])
	assert.InDelta(t, 5.0, info["unit_coverage"], 1e-9)
	assert.Equal(t, info["unit_coverage"], info["coverage"])

	tile, err := NewTile("Test", 2500, 10, 0.3, 0.3)
	require.NoError(t, err)
	info = tile.DetailedInfo()
	assert.Equal(t, 10, info["tiles_per_box"])
	assert.Equal(t, "box", info["unit_type"])
	assert.InDelta(t, 0.09, info["tile_area"], 1e-9)
	assert.InDelta(t, 0.9, info["coverage"], 1e-9)

	lam, err := NewLaminate("Test", 1800, 8, 0.193, 1.38)
	require.NoError(t, err)
	info = lam.DetailedInfo()
	assert.Equal(t, 8, info["planks_per_pack"])
	assert.Equal(t, 0.193, info["plank_width"])
	assert.Equal(t, 1.38, info["plank_length"])
	assert.InDelta(t, 0.26634, info["plank_area"], 1e-9)
	assert.InDelta(t, 2.13072, info["coverage"], 1e-9)
}

func TestMaterialEquality(t *testing.T) {
	w1 := mustWallpaper(t, "Test", 1000, DefaultRollWidth, DefaultRollLength)
	w2 := mustWallpaper(t, "Test", 1000, DefaultRollWidth, DefaultRollLength)
	w3 := mustWallpaper(t, "Other", 1000, DefaultRollWidth, DefaultRollLength)

	assert.True(t, Equal(w1, w2))
	assert.False(t, Equal(w1, w3))
	assert.Equal(t, KeyOf(w1), KeyOf(w2))
	assert.NotEqual(t, KeyOf(w1), KeyOf(w3))

	// Same name, price and coverage but a different variant.
	tile, err := NewTile("Test", 1000, 1, DefaultRollWidth, DefaultRollLength)
	require.NoError(t, err)
	assert.InDelta(t, w1.UnitCoverage(), tile.UnitCoverage(), 1e-12)
	assert.False(t, Equal(w1, tile))

	var nilWallpaper *Wallpaper
	assert.True(t, IsNil(nilWallpaper))
	assert.True(t, Equal(nil, nilWallpaper))
	assert.False(t, Equal(w1, nil))
}

func TestDedup(t *testing.T) {
	w1 := mustWallpaper(t, "Test", 1000, DefaultRollWidth, DefaultRollLength)
	w2 := mustWallpaper(t, "Test", 1000, DefaultRollWidth, DefaultRollLength)
	w3 := mustWallpaper(t, "Other", 1000, DefaultRollWidth, DefaultRollLength)

	unique := Dedup([]Material{w1, w2, w3})
	require.Len(t, unique, 2)
	assert.Same(t, w1, unique[0])
	assert.Same(t, w3, unique[1])

	set := map[MaterialKey]Material{}
	for _, m := range []Material{w1, w2, w3} {
		set[KeyOf(m)] = m
	}
	assert.Len(t, set, 2)
}

func TestMaterialOrderingByCostPerArea(t *testing.T) {
	cheap := mustWallpaper(t, "Cheap", 500, 0.53, 10.05)
	expensive := mustWallpaper(t, "Expensive", 2000, 0.53, 10.05)

	assert.True(t, Less(cheap, expensive))
	assert.False(t, Less(expensive, cheap))
	assert.Equal(t, -1, Compare(cheap, expensive))
	assert.Equal(t, 1, Compare(expensive, cheap))

	// A pricier unit can still be cheaper per m².
	lam, err := NewLaminate("Oak", 1800, 8, 0.193, 1.380)
	require.NoError(t, err)
	assert.InDelta(t, 1800/(0.193*1.380*8), CostPerArea(lam), 1e-9)
	assert.True(t, Less(cheap, lam))
}

func TestParseKind(t *testing.T) {
	for in, want := range map[string]Kind{
		"wallpaper": KindWallpaper,
		" Tile ":    KindTile,
		"LAMINATE":  KindLaminate,
		"pack":      KindLaminate,
	} {
		got, err := ParseKind(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseKind("carpet")
	assert.ErrorIs(t, err, ErrFormat)
}

func TestMaterialString(t *testing.T) {
	w := mustWallpaper(t, "Vinyl", 1200, 0.53, 10.05)
	assert.Contains(t, w.String(), "Vinyl")
	assert.Contains(t, w.String(), "roll")
	assert.Equal(t, "Wallpaper", w.Kind().String())
}

package engine

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piwi3910/RenoCalc/internal/model"
)

func testWallpaper(t *testing.T, name string, price float64) *model.Wallpaper {
	t.Helper()
	w, err := model.NewWallpaper(name, price, 0.53, 10.05)
	require.NoError(t, err)
	return w
}

func testTile(t *testing.T, name string, price float64) *model.Tile {
	t.Helper()
	tile, err := model.NewTile(name, price, 10, 0.3, 0.3)
	require.NoError(t, err)
	return tile
}

func testLaminate(t *testing.T, name string, price float64) *model.Laminate {
	t.Helper()
	l, err := model.NewLaminate(name, price, 8, 0.193, 1.380)
	require.NoError(t, err)
	return l
}

func TestCalculate_WallpaperScenario(t *testing.T) {
	calc := NewDefault()
	w := testWallpaper(t, "W", 1200)

	r, err := calc.Calculate(w, 25)
	require.NoError(t, err)

	assert.InDelta(t, 5.3265, w.UnitCoverage(), 1e-9)
	assert.Equal(t, 6, r.UnitsNeeded())
	assert.Equal(t, 7200.0, r.TotalCost())
	assert.Equal(t, 10, r.ReservePercent())
	assert.Equal(t, 25.0, r.Area())
	assert.Same(t, w, r.Material())
	assert.Equal(t, 1, calc.HistoryCount())
}

func TestCalculate_TileAndLaminate(t *testing.T) {
	calc := NewDefault()

	r, err := calc.Calculate(testTile(t, "T", 300), 20)
	require.NoError(t, err)
	// 22 / 0.9 = 24.4
	assert.Equal(t, 25, r.UnitsNeeded())
	assert.Equal(t, 7500.0, r.TotalCost())

	r, err = calc.Calculate(testLaminate(t, "L", 900), 20)
	require.NoError(t, err)
	// 22 / 2.13072 = 10.3
	assert.Equal(t, 11, r.UnitsNeeded())
	assert.Equal(t, 9900.0, r.TotalCost())
}

func TestCalculate_RoundsCostToPrecision(t *testing.T) {
	calc := NewDefault()
	w := testWallpaper(t, "W", 333.333)

	r, err := calc.Calculate(w, 12)
	require.NoError(t, err)
	assert.Equal(t, 3, r.UnitsNeeded())
	assert.Equal(t, 1000.0, r.TotalCost())

	require.NoError(t, calc.SetPrecision(3))
	r, err = calc.Calculate(w, 12)
	require.NoError(t, err)
	assert.Equal(t, 999.999, r.TotalCost())

	require.NoError(t, calc.SetPrecision(0))
	require.NoError(t, w.SetPricePerUnit(1200.5))
	r, err = calc.Calculate(w, 12)
	require.NoError(t, err)
	assert.Equal(t, 3602.0, r.TotalCost(), "halves round away from zero")
}

func TestCalculate_UnitsMonotonic(t *testing.T) {
	w := testWallpaper(t, "W", 100)

	prev := 0
	for _, area := range []float64{0.5, 1, 5, 5.3, 10, 25, 60, 150} {
		u, err := UnitsNeeded(area, 10, w.UnitCoverage())
		require.NoError(t, err)
		assert.GreaterOrEqual(t, u, prev)
		prev = u
	}

	prev = 0
	for reserve := 0; reserve <= 100; reserve += 5 {
		u, err := UnitsNeeded(25, reserve, w.UnitCoverage())
		require.NoError(t, err)
		assert.GreaterOrEqual(t, u, prev)
		prev = u
	}
}

func TestUnitsNeeded_AtLeastOne(t *testing.T) {
	u, err := UnitsNeeded(0.1, 0, 100)
	require.NoError(t, err)
	assert.Equal(t, 1, u)
}

func TestUnitsNeeded_TooLarge(t *testing.T) {
	_, err := UnitsNeeded(100, 10, 1e-20)
	assert.ErrorIs(t, err, model.ErrRange)

	_, err = UnitsNeeded(100, 10, 0)
	assert.ErrorIs(t, err, model.ErrRange)
}

func TestCalculate_UncountableUnitsRecordsNothing(t *testing.T) {
	calc := NewDefault()
	tile, err := model.NewTile("micro", 5, 1, 1e-10, 1e-10)
	require.NoError(t, err)

	_, err = calc.Calculate(tile, 100)
	assert.ErrorIs(t, err, model.ErrRange)
	assert.True(t, calc.IsEmpty())
}

func TestCalculate_AreaBoundaries(t *testing.T) {
	calc := NewDefault()
	w := testWallpaper(t, "W", 100)

	_, err := calc.Calculate(w, calc.MinArea())
	assert.NoError(t, err)
	_, err = calc.Calculate(w, calc.MaxArea())
	assert.NoError(t, err)

	_, err = calc.Calculate(w, calc.MinArea()-0.001)
	assert.ErrorIs(t, err, model.ErrRange)
	assert.Contains(t, err.Error(), "area too small")

	_, err = calc.Calculate(w, calc.MaxArea()+0.001)
	assert.ErrorIs(t, err, model.ErrRange)
	assert.Contains(t, err.Error(), "area too large")

	assert.Equal(t, 2, calc.HistoryCount(), "failed calculations are not recorded")
}

func TestCalculate_NonPositiveAreaWithZeroMin(t *testing.T) {
	settings := model.DefaultCalculatorSettings()
	settings.MinArea = 0
	calc, err := New(settings)
	require.NoError(t, err)

	_, err = calc.Calculate(testWallpaper(t, "W", 100), 0)
	assert.ErrorIs(t, err, model.ErrRange)
}

func TestCalculate_NilMaterial(t *testing.T) {
	calc := NewDefault()

	_, err := calc.Calculate(nil, 10)
	assert.ErrorIs(t, err, model.ErrType)

	var w *model.Wallpaper
	_, err = calc.Calculate(w, 10)
	assert.ErrorIs(t, err, model.ErrType)
	assert.True(t, calc.IsEmpty())
}

func TestCalculate_ZeroValueMaterial(t *testing.T) {
	calc := NewDefault()

	for _, m := range []model.Material{&model.Wallpaper{}, &model.Tile{}, &model.Laminate{}} {
		_, err := calc.Calculate(m, 25)
		assert.ErrorIs(t, err, model.ErrType)
		assert.Contains(t, err.Error(), "must be a Material instance")
	}
	assert.True(t, calc.IsEmpty())
}

func TestCalculate_HistoryGating(t *testing.T) {
	calc := NewDefault()
	require.NoError(t, calc.SetAutoSave(false))
	w := testWallpaper(t, "W", 100)

	for i := 0; i < 5; i++ {
		_, err := calc.Calculate(w, 10)
		require.NoError(t, err)
	}
	assert.Equal(t, 0, calc.HistoryCount())

	require.NoError(t, calc.SetAutoSave(true))
	for i := 0; i < 3; i++ {
		_, err := calc.Calculate(w, 10)
		require.NoError(t, err)
	}
	_, err := calc.Calculate(w, -1)
	require.Error(t, err)
	assert.Equal(t, 3, calc.HistoryCount())
	assert.Equal(t, 3, calc.Len())
}

func TestCompareMaterials_OrderedByTotalCost(t *testing.T) {
	calc := NewDefault()
	lam := testLaminate(t, "L", 900)
	tile := testTile(t, "T", 300)
	wall := testWallpaper(t, "W", 1200)

	results, err := calc.CompareMaterials([]model.Material{lam, tile, wall}, 20)
	require.NoError(t, err)
	require.Len(t, results, 3)

	assert.Equal(t, "W", results[0].Material().Name())
	assert.Equal(t, "T", results[1].Material().Name())
	assert.Equal(t, "L", results[2].Material().Name())
	assert.Equal(t, 3, calc.HistoryCount())

	// History keeps input order.
	first, err := calc.At(0)
	require.NoError(t, err)
	assert.Equal(t, "L", first.Material().Name())
}

func TestCompareMaterials_CheaperPerAreaFirst(t *testing.T) {
	calc := NewDefault()
	a := testWallpaper(t, "A", 100)
	b := testWallpaper(t, "B", 200)

	assert.True(t, model.Less(a, b))
	results, err := calc.CompareMaterials([]model.Material{b, a}, 30)
	require.NoError(t, err)
	assert.Equal(t, "A", results[0].Material().Name())
}

func TestCompareMaterials_TiesKeepInputOrder(t *testing.T) {
	a := testWallpaper(t, "Birch", 1000)
	b := testWallpaper(t, "Linen", 1000)
	cheap := testWallpaper(t, "Cheap", 500)

	tests := []struct {
		name  string
		input []model.Material
		want  []string
	}{
		{"a before b", []model.Material{a, b, cheap}, []string{"Cheap", "Birch", "Linen"}},
		{"b before a", []model.Material{b, a, cheap}, []string{"Cheap", "Linen", "Birch"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			results, err := NewDefault().CompareMaterials(tt.input, 25)
			require.NoError(t, err)
			require.Len(t, results, 3)
			assert.Equal(t, results[1].TotalCost(), results[2].TotalCost())

			names := make([]string, len(results))
			for i, r := range results {
				names[i] = r.Material().Name()
			}
			assert.Equal(t, tt.want, names)
		})
	}
}

func TestCompareMaterials_Empty(t *testing.T) {
	calc := NewDefault()
	_, err := calc.Calculate(testWallpaper(t, "W", 100), 10)
	require.NoError(t, err)

	_, err = calc.CompareMaterials(nil, 10)
	assert.ErrorIs(t, err, model.ErrEmpty)
	assert.Equal(t, 1, calc.HistoryCount())
}

func TestCompareMaterials_FailureRecordsNothing(t *testing.T) {
	calc := NewDefault()
	_, err := calc.CompareMaterials([]model.Material{testWallpaper(t, "W", 100), nil}, 10)
	assert.ErrorIs(t, err, model.ErrType)
	assert.Equal(t, 0, calc.HistoryCount())
}

func TestSetters_Validation(t *testing.T) {
	calc := NewDefault()

	assert.ErrorIs(t, calc.SetReservePercent(-1), model.ErrRange)
	assert.ErrorIs(t, calc.SetReservePercent(101), model.ErrRange)
	assert.Equal(t, 10, calc.ReservePercent())

	assert.ErrorIs(t, calc.SetPrecision(11), model.ErrRange)
	assert.Equal(t, 2, calc.Precision())

	err := calc.SetMinArea(20000)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "min area cannot be greater than max area")
	assert.Equal(t, 0.1, calc.MinArea())

	err = calc.SetMaxArea(0.05)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "max area cannot be less than min area")
	assert.Equal(t, 10000.0, calc.MaxArea())

	assert.ErrorIs(t, calc.SetMinArea(-1), model.ErrRange)

	require.NoError(t, calc.SetCurrency("€"))
	assert.Equal(t, "€", calc.Currency())
}

func TestSetReservePercent_Idempotent(t *testing.T) {
	calc := NewDefault()
	require.NoError(t, calc.SetReservePercent(15))
	before := calc.Settings()
	require.NoError(t, calc.SetReservePercent(15))
	assert.Equal(t, before, calc.Settings())
}

func TestReconfigure_Atomic(t *testing.T) {
	calc := NewDefault()
	s := calc.Settings()
	s.ReservePercent = 20
	s.MinArea = 50
	s.MaxArea = 40

	err := calc.Reconfigure(s)
	assert.ErrorIs(t, err, model.ErrRange)
	assert.Equal(t, model.DefaultCalculatorSettings(), calc.Settings())

	s.MaxArea = 500
	require.NoError(t, calc.Reconfigure(s))
	assert.Equal(t, 20, calc.ReservePercent())
	assert.Equal(t, 50.0, calc.MinArea())
}

func TestNew_RejectsInvalidSettings(t *testing.T) {
	s := model.DefaultCalculatorSettings()
	s.ReservePercent = 150
	_, err := New(s)
	assert.True(t, errors.Is(err, model.ErrRange))
}

func TestHistoryAccess(t *testing.T) {
	calc := NewDefault()
	w := testWallpaper(t, "W", 100)
	for _, area := range []float64{10, 20, 30} {
		_, err := calc.Calculate(w, area)
		require.NoError(t, err)
	}

	last, err := calc.At(-1)
	require.NoError(t, err)
	assert.Equal(t, 30.0, last.Area())

	_, err = calc.At(3)
	assert.ErrorIs(t, err, model.ErrRange)
	_, err = calc.At(-4)
	assert.ErrorIs(t, err, model.ErrRange)

	part, err := calc.Slice(1, 3)
	require.NoError(t, err)
	require.Len(t, part, 2)
	assert.Equal(t, 20.0, part[0].Area())

	_, err = calc.Slice(2, 1)
	assert.Error(t, err)

	assert.True(t, calc.Contains(last))

	var areas []float64
	for i, r := range calc.All() {
		assert.Equal(t, float64(10*(i+1)), r.Area())
		areas = append(areas, r.Area())
	}
	assert.Len(t, areas, 3)

	assert.InDelta(t, model.SumTotalCost(calc.History()), calc.TotalCostSum(), 1e-9)

	h := calc.History()
	h[0] = model.CalculationResult{}
	first, _ := calc.At(0)
	assert.Equal(t, 10.0, first.Area(), "History returns a copy")

	calc.ClearHistory()
	assert.True(t, calc.IsEmpty())
	assert.Equal(t, 0.0, calc.TotalCostSum())
}

func TestCalculatorEqualAndString(t *testing.T) {
	a := NewDefault()
	b := NewDefault()
	require.NoError(t, b.SetCurrency("$"))
	assert.True(t, a.Equal(b))

	require.NoError(t, b.SetReservePercent(5))
	assert.False(t, a.Equal(b))

	assert.Contains(t, a.String(), "reserve 10%")
	assert.Contains(t, a.GoString(), "reserve_percent=10")
	assert.Contains(t, a.GoString(), "auto_save=true")
}

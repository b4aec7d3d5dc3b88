package model

import (
	"cmp"
	"fmt"
	"math"
	"strings"
)

// Kind identifies a concrete material variant.
type Kind string

const (
	KindWallpaper Kind = "wallpaper"
	KindTile      Kind = "tile"
	KindLaminate  Kind = "laminate"
)

// Kinds lists every instantiable material kind in display order.
var Kinds = []Kind{KindWallpaper, KindTile, KindLaminate}

func (k Kind) String() string {
	switch k {
	case KindWallpaper:
		return "Wallpaper"
	case KindTile:
		return "Tile"
	case KindLaminate:
		return "Laminate"
	default:
		return "Material"
	}
}

// UnitType returns the display label of one purchasable unit of this kind.
func (k Kind) UnitType() string {
	switch k {
	case KindWallpaper:
		return "roll"
	case KindTile:
		return "box"
	case KindLaminate:
		return "pack"
	default:
		return "unit"
	}
}

// kindAliases maps accepted spellings (lowercase) to their kind.
var kindAliases = map[string]Kind{
	"wallpaper": KindWallpaper,
	"wall":      KindWallpaper,
	"roll":      KindWallpaper,
	"tile":      KindTile,
	"tiles":     KindTile,
	"box":       KindTile,
	"laminate":  KindLaminate,
	"flooring":  KindLaminate,
	"pack":      KindLaminate,
}

// ParseKind converts user text into a Kind.
func ParseKind(s string) (Kind, error) {
	k, ok := kindAliases[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return "", FormatErrorf("unknown material kind %q", s)
	}
	return k, nil
}

// Default variant dimensions in metres.
const (
	DefaultRollWidth     = 0.53
	DefaultRollLength    = 10.05
	DefaultTilesPerBox   = 10
	DefaultTileWidth     = 0.3
	DefaultTileHeight    = 0.3
	DefaultPlanksPerPack = 8
	DefaultPlankWidth    = 0.193
	DefaultPlankLength   = 1.380
)

// Material is a purchasable covering product. The only implementations are
// *Wallpaper, *Tile and *Laminate.
type Material interface {
	Kind() Kind
	Name() string
	PricePerUnit() float64
	SetPricePerUnit(price float64) error
	// UnitCoverage is the area in m² covered by one purchasable unit.
	UnitCoverage() float64
	UnitType() string
	DetailedInfo() map[string]any
	String() string
}

// base carries the fields shared by all variants.
type base struct {
	name     string
	price    float64
	coverage float64
}

func newBase(name string, price float64) (base, error) {
	if strings.TrimSpace(name) == "" {
		return base{}, RangeErrorf("material name must not be empty")
	}
	if err := validatePrice(price); err != nil {
		return base{}, err
	}
	return base{name: name, price: price}, nil
}

func validatePrice(price float64) error {
	if !(price > 0) || math.IsInf(price, 1) {
		return RangeErrorf("price must be a positive number, got %g", price)
	}
	return nil
}

func positive(label string, v float64) error {
	if !(v > 0) {
		return RangeErrorf("%s must be positive, got %g", label, v)
	}
	return nil
}

// checkCoverage rejects a unit coverage that overflowed or underflowed
// even though every dimension was positive.
func checkCoverage(coverage float64) error {
	if !(coverage > 0) || math.IsInf(coverage, 1) {
		return RangeErrorf("unit coverage must be a positive finite area, got %g", coverage)
	}
	return nil
}

func positiveCount(label string, n int) error {
	if n <= 0 {
		return RangeErrorf("%s must be positive, got %d", label, n)
	}
	return nil
}

func (b *base) Name() string          { return b.name }
func (b *base) PricePerUnit() float64 { return b.price }
func (b *base) UnitCoverage() float64 { return b.coverage }

// SetPricePerUnit replaces the unit price. The old price is kept on error.
func (b *base) SetPricePerUnit(price float64) error {
	if err := validatePrice(price); err != nil {
		return err
	}
	b.price = price
	return nil
}

func (b *base) info(k Kind) map[string]any {
	return map[string]any{
		"kind":          string(k),
		"name":          b.name,
		"price":         b.price,
		"unit_type":     k.UnitType(),
		"unit_coverage": b.coverage,
		"coverage":      b.coverage,
	}
}

// Wallpaper is sold in rolls.
type Wallpaper struct {
	base
	rollWidth  float64
	rollLength float64
}

// NewWallpaper creates a wallpaper whose roll covers rollWidth × rollLength m².
func NewWallpaper(name string, price, rollWidth, rollLength float64) (*Wallpaper, error) {
	b, err := newBase(name, price)
	if err != nil {
		return nil, err
	}
	if err := positive("roll width", rollWidth); err != nil {
		return nil, err
	}
	if err := positive("roll length", rollLength); err != nil {
		return nil, err
	}
	b.coverage = rollWidth * rollLength
	if err := checkCoverage(b.coverage); err != nil {
		return nil, err
	}
	return &Wallpaper{base: b, rollWidth: rollWidth, rollLength: rollLength}, nil
}

func (w *Wallpaper) Kind() Kind          { return KindWallpaper }
func (w *Wallpaper) UnitType() string    { return KindWallpaper.UnitType() }
func (w *Wallpaper) RollWidth() float64  { return w.rollWidth }
func (w *Wallpaper) RollLength() float64 { return w.rollLength }

func (w *Wallpaper) DetailedInfo() map[string]any {
	info := w.info(KindWallpaper)
	info["roll_width"] = w.rollWidth
	info["roll_length"] = w.rollLength
	return info
}

func (w *Wallpaper) String() string {
	return fmt.Sprintf("Wallpaper %q: %.2f per roll, %.2fx%.2f m (%.4f m² per roll)",
		w.name, w.price, w.rollWidth, w.rollLength, w.coverage)
}

// Tile is sold in boxes of equally sized tiles.
type Tile struct {
	base
	tilesPerBox int
	tileWidth   float64
	tileHeight  float64
}

// NewTile creates a tile sold in boxes of tilesPerBox tiles.
func NewTile(name string, price float64, tilesPerBox int, tileWidth, tileHeight float64) (*Tile, error) {
	b, err := newBase(name, price)
	if err != nil {
		return nil, err
	}
	if err := positiveCount("tiles per box", tilesPerBox); err != nil {
		return nil, err
	}
	if err := positive("tile width", tileWidth); err != nil {
		return nil, err
	}
	if err := positive("tile height", tileHeight); err != nil {
		return nil, err
	}
	b.coverage = tileWidth * tileHeight * float64(tilesPerBox)
	if err := checkCoverage(b.coverage); err != nil {
		return nil, err
	}
	return &Tile{base: b, tilesPerBox: tilesPerBox, tileWidth: tileWidth, tileHeight: tileHeight}, nil
}

func (t *Tile) Kind() Kind          { return KindTile }
func (t *Tile) UnitType() string    { return KindTile.UnitType() }
func (t *Tile) TilesPerBox() int    { return t.tilesPerBox }
func (t *Tile) TileWidth() float64  { return t.tileWidth }
func (t *Tile) TileHeight() float64 { return t.tileHeight }

func (t *Tile) DetailedInfo() map[string]any {
	info := t.info(KindTile)
	info["tiles_per_box"] = t.tilesPerBox
	info["tile_width"] = t.tileWidth
	info["tile_height"] = t.tileHeight
	info["tile_area"] = t.tileWidth * t.tileHeight
	return info
}

func (t *Tile) String() string {
	return fmt.Sprintf("Tile %q: %.2f per box, %d x %.2fx%.2f m (%.4f m² per box)",
		t.name, t.price, t.tilesPerBox, t.tileWidth, t.tileHeight, t.coverage)
}

// Laminate is sold in packs of planks.
type Laminate struct {
	base
	planksPerPack int
	plankWidth    float64
	plankLength   float64
}

// NewLaminate creates a laminate sold in packs of planksPerPack planks.
func NewLaminate(name string, price float64, planksPerPack int, plankWidth, plankLength float64) (*Laminate, error) {
	b, err := newBase(name, price)
	if err != nil {
		return nil, err
	}
	if err := positiveCount("planks per pack", planksPerPack); err != nil {
		return nil, err
	}
	if err := positive("plank width", plankWidth); err != nil {
		return nil, err
	}
	if err := positive("plank length", plankLength); err != nil {
		return nil, err
	}
	b.coverage = plankWidth * plankLength * float64(planksPerPack)
	if err := checkCoverage(b.coverage); err != nil {
		return nil, err
	}
	return &Laminate{base: b, planksPerPack: planksPerPack, plankWidth: plankWidth, plankLength: plankLength}, nil
}

func (l *Laminate) Kind() Kind           { return KindLaminate }
func (l *Laminate) UnitType() string     { return KindLaminate.UnitType() }
func (l *Laminate) PlanksPerPack() int   { return l.planksPerPack }
func (l *Laminate) PlankWidth() float64  { return l.plankWidth }
func (l *Laminate) PlankLength() float64 { return l.plankLength }

func (l *Laminate) DetailedInfo() map[string]any {
	info := l.info(KindLaminate)
	info["planks_per_pack"] = l.planksPerPack
	info["plank_width"] = l.plankWidth
	info["plank_length"] = l.plankLength
	info["plank_area"] = l.plankWidth * l.plankLength
	return info
}

func (l *Laminate) String() string {
	return fmt.Sprintf("Laminate %q: %.2f per pack, %d x %.3fx%.3f m (%.4f m² per pack)",
		l.name, l.price, l.planksPerPack, l.plankWidth, l.plankLength, l.coverage)
}

// IsNil reports whether m is nil, including a typed nil pointer.
func IsNil(m Material) bool {
	switch v := m.(type) {
	case nil:
		return true
	case *Wallpaper:
		return v == nil
	case *Tile:
		return v == nil
	case *Laminate:
		return v == nil
	default:
		return false
	}
}

// Validate checks that m is a usable material: not nil, named, with a
// positive price and a positive finite coverage. Zero-value variants fail.
func Validate(m Material) error {
	if IsNil(m) {
		return TypeErrorf("material must be a Material instance")
	}
	if strings.TrimSpace(m.Name()) == "" {
		return TypeErrorf("material must be a Material instance: name is empty")
	}
	if validatePrice(m.PricePerUnit()) != nil {
		return TypeErrorf("material must be a Material instance: price %g is not positive", m.PricePerUnit())
	}
	if checkCoverage(m.UnitCoverage()) != nil {
		return TypeErrorf("material must be a Material instance: unit coverage %g is not a positive finite area", m.UnitCoverage())
	}
	return nil
}

// CostPerArea returns the price of one m² of material.
func CostPerArea(m Material) float64 {
	return m.PricePerUnit() / m.UnitCoverage()
}

// MaterialKey is a comparable identity of a material, consistent with Equal.
// Use it as a map key to de-duplicate materials.
type MaterialKey struct {
	Kind     Kind
	Name     string
	Price    float64
	Coverage float64
}

// KeyOf returns the identity key of m.
func KeyOf(m Material) MaterialKey {
	return MaterialKey{Kind: m.Kind(), Name: m.Name(), Price: m.PricePerUnit(), Coverage: m.UnitCoverage()}
}

// Equal reports whether a and b are the same variant with identical name,
// price and coverage.
func Equal(a, b Material) bool {
	if IsNil(a) || IsNil(b) {
		return IsNil(a) && IsNil(b)
	}
	return KeyOf(a) == KeyOf(b)
}

// Less orders materials by cost per m², cheapest first.
func Less(a, b Material) bool {
	return CostPerArea(a) < CostPerArea(b)
}

// Compare is the three-way form of Less, for use with slices.SortFunc.
func Compare(a, b Material) int {
	return cmp.Compare(CostPerArea(a), CostPerArea(b))
}

// Dedup returns materials with later duplicates (per Equal) removed.
func Dedup(materials []Material) []Material {
	seen := make(map[MaterialKey]bool, len(materials))
	out := make([]Material, 0, len(materials))
	for _, m := range materials {
		k := KeyOf(m)
		if seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, m)
	}
	return out
}

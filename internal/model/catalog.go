package model

import (
	"fmt"

	"github.com/google/uuid"
)

// MaterialPreset is a reusable, serializable material definition.
// Dimension fields are interpreted per kind:
//
//	wallpaper: Width = roll width, Length = roll length (Count unused)
//	tile:      Count = tiles per box, Width/Length = tile width/height
//	laminate:  Count = planks per pack, Width/Length = plank width/length
//
// Zero dimensions fall back to the kind defaults when building.
type MaterialPreset struct {
	ID     string  `json:"id"`
	Name   string  `json:"name"`
	Kind   Kind    `json:"kind"`
	Price  float64 `json:"price"`
	Count  int     `json:"count,omitempty"`
	Width  float64 `json:"width,omitempty"`
	Length float64 `json:"length,omitempty"`
}

// NewMaterialPreset creates a new MaterialPreset with a generated ID.
func NewMaterialPreset(name string, kind Kind, price float64, count int, width, length float64) MaterialPreset {
	return MaterialPreset{
		ID:     uuid.New().String()[:8],
		Name:   name,
		Kind:   kind,
		Price:  price,
		Count:  count,
		Width:  width,
		Length: length,
	}
}

// WithDefaults returns a copy with zero dimensions replaced by the kind defaults.
func (p MaterialPreset) WithDefaults() MaterialPreset {
	switch p.Kind {
	case KindWallpaper:
		p.Width = orDefault(p.Width, DefaultRollWidth)
		p.Length = orDefault(p.Length, DefaultRollLength)
		p.Count = 0
	case KindTile:
		if p.Count == 0 {
			p.Count = DefaultTilesPerBox
		}
		p.Width = orDefault(p.Width, DefaultTileWidth)
		p.Length = orDefault(p.Length, DefaultTileHeight)
	case KindLaminate:
		if p.Count == 0 {
			p.Count = DefaultPlanksPerPack
		}
		p.Width = orDefault(p.Width, DefaultPlankWidth)
		p.Length = orDefault(p.Length, DefaultPlankLength)
	}
	return p
}

func orDefault(v, def float64) float64 {
	if v == 0 {
		return def
	}
	return v
}

// Build constructs the concrete material described by the preset.
// A preset without a concrete kind is abstract and cannot be built.
func (p MaterialPreset) Build() (Material, error) {
	p = p.WithDefaults()
	switch p.Kind {
	case KindWallpaper:
		return NewWallpaper(p.Name, p.Price, p.Width, p.Length)
	case KindTile:
		return NewTile(p.Name, p.Price, p.Count, p.Width, p.Length)
	case KindLaminate:
		return NewLaminate(p.Name, p.Price, p.Count, p.Width, p.Length)
	case "":
		return nil, TypeErrorf("abstract material type cannot be instantiated")
	default:
		return nil, TypeErrorf("abstract material type cannot be instantiated: unknown kind %q", string(p.Kind))
	}
}

// PresetFromMaterial captures a material as a preset with a fresh ID.
func PresetFromMaterial(m Material) MaterialPreset {
	p := MaterialPreset{
		ID:    uuid.New().String()[:8],
		Name:  m.Name(),
		Kind:  m.Kind(),
		Price: m.PricePerUnit(),
	}
	switch v := m.(type) {
	case *Wallpaper:
		p.Width, p.Length = v.rollWidth, v.rollLength
	case *Tile:
		p.Count, p.Width, p.Length = v.tilesPerBox, v.tileWidth, v.tileHeight
	case *Laminate:
		p.Count, p.Width, p.Length = v.planksPerPack, v.plankWidth, v.plankLength
	}
	return p
}

// Label returns the text shown in material pickers.
func (p MaterialPreset) Label() string {
	return fmt.Sprintf("%s (%s, %.2f/%s)", p.Name, p.Kind, p.Price, p.Kind.UnitType())
}

// Catalog holds the user's saved material presets.
type Catalog struct {
	Presets []MaterialPreset `json:"presets"`
}

// DefaultCatalog returns a catalog populated with common materials.
func DefaultCatalog() Catalog {
	return Catalog{
		Presets: []MaterialPreset{
			NewMaterialPreset("Vinyl Premium", KindWallpaper, 1200, 0, DefaultRollWidth, DefaultRollLength),
			NewMaterialPreset("Non-woven Wide", KindWallpaper, 2100, 0, 1.06, 10.05),
			NewMaterialPreset("Ceramic Classic", KindTile, 2500, DefaultTilesPerBox, DefaultTileWidth, DefaultTileHeight),
			NewMaterialPreset("Porcelain 60x60", KindTile, 3900, 4, 0.6, 0.6),
			NewMaterialPreset("Natural Oak", KindLaminate, 1800, DefaultPlanksPerPack, DefaultPlankWidth, DefaultPlankLength),
			NewMaterialPreset("Grey Ash 33", KindLaminate, 2300, 9, 0.192, 1.285),
		},
	}
}

// FindByID returns a pointer to the preset with the given ID, or nil.
func (c *Catalog) FindByID(id string) *MaterialPreset {
	for i := range c.Presets {
		if c.Presets[i].ID == id {
			return &c.Presets[i]
		}
	}
	return nil
}

// FindByName returns a pointer to the first preset with the given name, or nil.
func (c *Catalog) FindByName(name string) *MaterialPreset {
	for i := range c.Presets {
		if c.Presets[i].Name == name {
			return &c.Presets[i]
		}
	}
	return nil
}

// Labels returns preset labels for UI dropdowns.
func (c *Catalog) Labels() []string {
	labels := make([]string, len(c.Presets))
	for i, p := range c.Presets {
		labels[i] = p.Label()
	}
	return labels
}

// ByKind returns the presets of one kind, in catalog order.
func (c *Catalog) ByKind(kind Kind) []MaterialPreset {
	var out []MaterialPreset
	for _, p := range c.Presets {
		if p.Kind == kind {
			out = append(out, p)
		}
	}
	return out
}

// Materials builds every preset. Presets that fail to build are reported
// in the returned error list and skipped.
func (c *Catalog) Materials() ([]Material, []error) {
	var materials []Material
	var errs []error
	for _, p := range c.Presets {
		m, err := p.Build()
		if err != nil {
			errs = append(errs, fmt.Errorf("preset %q: %w", p.Name, err))
			continue
		}
		materials = append(materials, m)
	}
	return materials, errs
}

// Remove deletes the preset with the given ID and reports whether it existed.
func (c *Catalog) Remove(id string) bool {
	for i := range c.Presets {
		if c.Presets[i].ID == id {
			c.Presets = append(c.Presets[:i], c.Presets[i+1:]...)
			return true
		}
	}
	return false
}

// Merge appends presets whose IDs are not already present.
// It returns the number of presets added.
func (c *Catalog) Merge(presets []MaterialPreset) int {
	ids := make(map[string]bool, len(c.Presets))
	for _, p := range c.Presets {
		ids[p.ID] = true
	}
	added := 0
	for _, p := range presets {
		if ids[p.ID] {
			continue
		}
		c.Presets = append(c.Presets, p)
		ids[p.ID] = true
		added++
	}
	return added
}

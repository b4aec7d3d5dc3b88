package model

import "slices"

// Export formats selectable as the default.
const (
	ExportFormatSpreadsheet = "xlsx"
	ExportFormatDocument    = "docx"
	ExportFormatPDF         = "pdf"
)

// maxRecentExports caps the recent exports list.
const maxRecentExports = 10

// AppConfig holds application-wide preferences and default settings.
type AppConfig struct {
	// Defaults applied to the calculator on startup
	Calculator CalculatorSettings `json:"calculator" envPrefix:"CALC_"`

	// Export preferences. An empty ExportDir means the working directory;
	// DefaultExportFormat is one of "xlsx", "docx", "pdf".
	ExportDir           string   `json:"export_dir" env:"EXPORT_DIR"`
	DefaultExportFormat string   `json:"default_export_format" env:"EXPORT_FORMAT"`
	RecentExports       []string `json:"recent_exports"`

	// Drawing units per metre for DXF room plans (1000 for mm drawings).
	DXFUnitsPerMeter float64 `json:"dxf_units_per_meter" env:"DXF_UNITS_PER_METER"`
	Theme            string  `json:"theme" env:"THEME"` // "light", "dark", "system"
	Debug            bool    `json:"debug" env:"DEBUG"`
}

// DefaultAppConfig returns an AppConfig populated with sensible defaults.
func DefaultAppConfig() AppConfig {
	return AppConfig{
		Calculator:          DefaultCalculatorSettings(),
		DefaultExportFormat: ExportFormatSpreadsheet,
		RecentExports:       []string{},
		DXFUnitsPerMeter:    1000,
		Theme:               "system",
	}
}

// Validate checks the calculator defaults and the enumerated preferences.
func (c AppConfig) Validate() error {
	if err := c.Calculator.Validate(); err != nil {
		return err
	}
	switch c.DefaultExportFormat {
	case ExportFormatSpreadsheet, ExportFormatDocument, ExportFormatPDF:
	default:
		return FormatErrorf("unknown export format %q", c.DefaultExportFormat)
	}
	switch c.Theme {
	case "light", "dark", "system":
	default:
		return FormatErrorf("unknown theme %q", c.Theme)
	}
	if !(c.DXFUnitsPerMeter > 0) {
		return RangeErrorf("dxf units per meter must be positive, got %g", c.DXFUnitsPerMeter)
	}
	return nil
}

// AddRecentExport records path as the most recent export, removing an
// older entry for the same path.
func (c *AppConfig) AddRecentExport(path string) {
	recent := slices.DeleteFunc(slices.Clone(c.RecentExports), func(p string) bool { return p == path })
	recent = append([]string{path}, recent...)
	if len(recent) > maxRecentExports {
		recent = recent[:maxRecentExports]
	}
	c.RecentExports = recent
}

// Package export writes calculation results to spreadsheet, document and
// PDF report files.
package export

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/piwi3910/RenoCalc/internal/model"
)

// Report is the payload handed to a Format.
type Report struct {
	Title       string
	Currency    string
	GeneratedAt time.Time
	Results     []model.CalculationResult
}

// TotalCost sums the total cost of every result in the report.
func (r Report) TotalCost() float64 { return model.SumTotalCost(r.Results) }

// Format renders a report into a concrete file type.
type Format interface {
	// Name identifies the exporter in String and GoString output.
	Name() string
	// Extensions lists the default allowed extensions, preferred first.
	Extensions() []string
	Write(path string, report Report) error
}

// Exporter writes results through a Format, managing the target filename,
// the allowed extensions and an optional export session.
type Exporter struct {
	format      Format
	filename    string
	allowed     []string
	dir         string
	currency    string
	now         func() time.Time
	logger      *zap.Logger
	exportCount int
	generated   int
	active      bool
}

// Option configures an Exporter.
type Option func(*Exporter)

// WithDir sets the directory generated filenames are placed in.
func WithDir(dir string) Option {
	return func(e *Exporter) { e.dir = dir }
}

// WithCurrency sets the currency symbol printed next to costs.
func WithCurrency(currency string) Option {
	return func(e *Exporter) { e.currency = currency }
}

// WithClock replaces time.Now, mainly for tests.
func WithClock(now func() time.Time) Option {
	return func(e *Exporter) {
		if now != nil {
			e.now = now
		}
	}
}

// WithLogger sets the logger used for export events.
func WithLogger(logger *zap.Logger) Option {
	return func(e *Exporter) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// New creates an exporter for format. An empty filename leaves the name to
// be generated on the first export.
func New(format Format, filename string, opts ...Option) (*Exporter, error) {
	if format == nil {
		return nil, model.TypeErrorf("exporter requires a concrete format")
	}
	e := &Exporter{
		format:   format,
		allowed:  slices.Clone(format.Extensions()),
		currency: model.DefaultCalculatorSettings().Currency,
		now:      time.Now,
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	if filename != "" {
		if err := e.SetFilename(filename); err != nil {
			return nil, err
		}
	}
	return e, nil
}

func NewSpreadsheetExporter(filename string, opts ...Option) (*Exporter, error) {
	return New(Spreadsheet{}, filename, opts...)
}

func NewDocumentExporter(filename string, opts ...Option) (*Exporter, error) {
	return New(Document{}, filename, opts...)
}

func NewPDFExporter(filename string, opts ...Option) (*Exporter, error) {
	return New(PDF{}, filename, opts...)
}

// ForFormat returns the exporter constructor matching a config format name.
func ForFormat(name string, filename string, opts ...Option) (*Exporter, error) {
	switch strings.ToLower(name) {
	case model.ExportFormatSpreadsheet:
		return NewSpreadsheetExporter(filename, opts...)
	case model.ExportFormatDocument:
		return NewDocumentExporter(filename, opts...)
	case model.ExportFormatPDF:
		return NewPDFExporter(filename, opts...)
	}
	return nil, model.FormatErrorf("unknown export format %q", name)
}

// ─── Filename ──────────────────────────────────────────────

// Filename returns the target path, empty until set or generated.
func (e *Exporter) Filename() string { return e.filename }

// SetFilename sets the target path. Its extension must be allowed.
func (e *Exporter) SetFilename(name string) error {
	if strings.TrimSpace(name) == "" {
		return model.RangeErrorf("filename must not be empty")
	}
	if err := checkExtension(name, e.allowed); err != nil {
		return err
	}
	e.filename = name
	return nil
}

func checkExtension(name string, allowed []string) error {
	ext := normalizeExtension(filepath.Ext(name))
	if !slices.Contains(allowed, ext) {
		return model.FormatErrorf("extension %q is not allowed, expected one of %s", ext, strings.Join(allowed, ", "))
	}
	return nil
}

// AllowedExtensions returns a copy of the allowed extensions, without dots.
func (e *Exporter) AllowedExtensions() []string { return slices.Clone(e.allowed) }

var extensionPattern = regexp.MustCompile(`^[a-z0-9]+$`)

// SetAllowedExtensions replaces the allow-list. Entries may carry a leading
// dot and any case. A filename already set must stay allowed.
func (e *Exporter) SetAllowedExtensions(exts []string) error {
	if len(exts) == 0 {
		return model.FormatErrorf("allowed extensions must be a non-empty list")
	}
	normalized := make([]string, 0, len(exts))
	for _, ext := range exts {
		n := normalizeExtension(ext)
		if !extensionPattern.MatchString(n) {
			return model.FormatErrorf("allowed extensions must be letters and digits, got %q", ext)
		}
		if !slices.Contains(normalized, n) {
			normalized = append(normalized, n)
		}
	}
	if e.filename != "" {
		if err := checkExtension(e.filename, normalized); err != nil {
			return fmt.Errorf("current filename %q: %w", e.filename, err)
		}
	}
	e.allowed = normalized
	return nil
}

func normalizeExtension(ext string) string {
	return strings.ToLower(strings.TrimPrefix(strings.TrimSpace(ext), "."))
}

// GenerateFilename returns a fresh report path. ext falls back to the first
// allowed extension when it is not allowed.
func (e *Exporter) GenerateFilename(ext string) string {
	ext = normalizeExtension(ext)
	if !slices.Contains(e.allowed, ext) {
		ext = e.allowed[0]
	}
	e.generated++
	name := fmt.Sprintf("calculation_report_%s_%d.%s", e.now().Format("20060102_150405"), e.generated, ext)
	return filepath.Join(e.dir, name)
}

// ─── Export ────────────────────────────────────────────────

// ExportCount returns the number of successful exports.
func (e *Exporter) ExportCount() int { return e.exportCount }

// Export writes results to the target file and returns its path. A
// filename is generated and kept when none is set.
func (e *Exporter) Export(results ...model.CalculationResult) (string, error) {
	if len(results) == 0 {
		return "", model.EmptyErrorf("nothing to export")
	}
	if e.filename == "" {
		e.filename = e.GenerateFilename(e.allowed[0])
	}
	path := e.filename

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return "", fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	report := Report{
		Title:       "Renovation material calculation",
		Currency:    e.currency,
		GeneratedAt: e.now(),
		Results:     results,
	}
	if err := e.format.Write(path, report); err != nil {
		e.logger.Error("export failed", zap.String("format", e.format.Name()), zap.String("path", path), zap.Error(err))
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}

	e.exportCount++
	e.logger.Info("results exported",
		zap.String("format", e.format.Name()),
		zap.String("path", path),
		zap.Int("results", len(results)),
	)
	return path, nil
}

// ─── Session ───────────────────────────────────────────────

// Open marks an export session as active.
func (e *Exporter) Open() *Exporter {
	e.active = true
	return e
}

// Close ends the export session.
func (e *Exporter) Close() error {
	e.active = false
	return nil
}

// Active reports whether a session is open.
func (e *Exporter) Active() bool { return e.active }

// Session runs fn inside an open session. The session is closed on every
// exit path, panics included; fn's error is returned unchanged.
func (e *Exporter) Session(fn func(*Exporter) error) error {
	e.Open()
	defer e.Close()
	return fn(e)
}

func (e *Exporter) String() string {
	name := e.filename
	if name == "" {
		name = "<auto>"
	}
	return fmt.Sprintf("%s(%s)", e.format.Name(), name)
}

// GoString renders the exporter state for %#v.
func (e *Exporter) GoString() string {
	return fmt.Sprintf("%s(filename=%q, allowed_extensions=%q, export_count=%d)",
		e.format.Name(), e.filename, e.allowed, e.exportCount)
}

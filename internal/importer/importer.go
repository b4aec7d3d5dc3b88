// Package importer reads material catalogs from CSV and Excel files and
// room plans from DXF drawings. It supports automatic delimiter detection,
// flexible column mapping, and case-insensitive header recognition.
package importer

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/piwi3910/RenoCalc/internal/engine"
	"github.com/piwi3910/RenoCalc/internal/model"
)

// ImportResult holds the results of a catalog import.
type ImportResult struct {
	Presets  []model.MaterialPreset
	Errors   []string
	Warnings []string
}

// ColumnMapping maps semantic column roles to their indices in the data.
type ColumnMapping struct {
	Kind   int
	Name   int
	Price  int
	Count  int
	Width  int
	Length int
}

// positionalMapping is used when the first row is not a header.
var positionalMapping = ColumnMapping{Kind: 0, Name: 1, Price: 2, Count: 3, Width: 4, Length: 5}

// headerAliases maps canonical column names to their accepted aliases (all lowercase).
var headerAliases = map[string][]string{
	"kind":   {"kind", "type", "material type", "category"},
	"name":   {"name", "material", "title", "product", "description"},
	"price":  {"price", "cost", "unit price", "price per unit"},
	"count":  {"count", "qty", "per unit", "pieces", "pcs", "tiles per box", "planks per pack"},
	"width":  {"width", "w", "roll width", "tile width", "plank width"},
	"length": {"length", "l", "height", "h", "roll length", "tile height", "plank length"},
}

// DetectCSVDelimiter reads the file content and determines the most likely CSV delimiter.
// It tries comma, semicolon, tab, and pipe. The delimiter that produces the most
// consistent (non-one) column count across lines wins.
func DetectCSVDelimiter(data []byte) rune {
	best := ','
	bestScore := 0

	for _, delim := range []rune{',', ';', '\t', '|'} {
		records, err := readCSV(bytes.NewReader(data), delim)
		if err != nil || len(records) == 0 || len(records[0]) < 2 {
			continue
		}

		firstCols := len(records[0])
		score := 0
		for _, row := range records {
			if len(row) == firstCols {
				score++
			}
		}

		// Prefer consistency, then more columns
		if weighted := score*10 + firstCols; weighted > bestScore {
			bestScore = weighted
			best = delim
		}
	}
	return best
}

func readCSV(r io.Reader, delim rune) ([][]string, error) {
	reader := csv.NewReader(r)
	reader.Comma = delim
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1
	return reader.ReadAll()
}

// DetectColumns examines a header row and returns a ColumnMapping.
// Returns the mapping and true if a header was detected, or the positional
// mapping (kind, name, price, count, width, length) and false otherwise.
func DetectColumns(row []string) (ColumnMapping, bool) {
	mapping := ColumnMapping{Kind: -1, Name: -1, Price: -1, Count: -1, Width: -1, Length: -1}
	roles := map[string]*int{
		"kind":   &mapping.Kind,
		"name":   &mapping.Name,
		"price":  &mapping.Price,
		"count":  &mapping.Count,
		"width":  &mapping.Width,
		"length": &mapping.Length,
	}

	isHeader := false
	for i, cell := range row {
		normalized := strings.ToLower(strings.TrimSpace(cell))
		for role, aliases := range headerAliases {
			for _, alias := range aliases {
				if normalized == alias && *roles[role] == -1 {
					*roles[role] = i
					isHeader = true
				}
			}
		}
	}

	if !isHeader {
		return positionalMapping, false
	}
	return mapping, true
}

// getCell safely retrieves a cell value from a row by column index.
func getCell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func parseOptionalFloat(row []string, idx int, label string) (float64, error) {
	s := getCell(row, idx)
	if s == "" {
		return 0, nil
	}
	return engine.ValidatePositiveNumber(s, label)
}

// parseRow extracts a preset from a row using the given column mapping.
// Returns the preset and an error message when the row is unusable.
func parseRow(row []string, mapping ColumnMapping, rowLabel string) (model.MaterialPreset, string) {
	kind, err := model.ParseKind(getCell(row, mapping.Kind))
	if err != nil {
		return model.MaterialPreset{}, fmt.Sprintf("%s: Unknown material kind '%s'", rowLabel, getCell(row, mapping.Kind))
	}

	name := getCell(row, mapping.Name)
	if name == "" {
		return model.MaterialPreset{}, fmt.Sprintf("%s: Missing material name", rowLabel)
	}

	priceStr := getCell(row, mapping.Price)
	if priceStr == "" {
		return model.MaterialPreset{}, fmt.Sprintf("%s: Missing price value", rowLabel)
	}
	price, err := engine.ValidatePositiveNumber(priceStr, "price")
	if err != nil {
		return model.MaterialPreset{}, fmt.Sprintf("%s: Invalid price '%s'", rowLabel, priceStr)
	}

	count := 0
	if countStr := getCell(row, mapping.Count); countStr != "" {
		count, err = strconv.Atoi(countStr)
		if err != nil || count <= 0 {
			return model.MaterialPreset{}, fmt.Sprintf("%s: Invalid count '%s'", rowLabel, countStr)
		}
	}

	width, err := parseOptionalFloat(row, mapping.Width, "width")
	if err != nil {
		return model.MaterialPreset{}, fmt.Sprintf("%s: Invalid width '%s'", rowLabel, getCell(row, mapping.Width))
	}
	length, err := parseOptionalFloat(row, mapping.Length, "length")
	if err != nil {
		return model.MaterialPreset{}, fmt.Sprintf("%s: Invalid length '%s'", rowLabel, getCell(row, mapping.Length))
	}

	preset := model.NewMaterialPreset(name, kind, price, count, width, length).WithDefaults()
	if _, err := preset.Build(); err != nil {
		return model.MaterialPreset{}, fmt.Sprintf("%s: %v", rowLabel, err)
	}
	return preset, ""
}

// isEmptyRow returns true if the row has no meaningful content.
func isEmptyRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// ImportCatalogCSV imports material presets from a CSV file.
// Supports comma, semicolon, tab, and pipe delimiters.
func ImportCatalogCSV(path string) ImportResult {
	data, err := os.ReadFile(path)
	if err != nil {
		return ImportResult{Errors: []string{fmt.Sprintf("Cannot open file: %v", err)}}
	}
	return importCSVData(data)
}

// ImportCatalogCSVFromReader imports material presets from CSV data.
func ImportCatalogCSVFromReader(r io.Reader) ImportResult {
	data, err := io.ReadAll(r)
	if err != nil {
		return ImportResult{Errors: []string{fmt.Sprintf("Cannot read CSV: %v", err)}}
	}
	return importCSVData(data)
}

func importCSVData(data []byte) ImportResult {
	if len(bytes.TrimSpace(data)) == 0 {
		return ImportResult{Errors: []string{"File is empty"}}
	}

	var warnings []string
	delimiter := DetectCSVDelimiter(data)
	if delimiter != ',' {
		delimName := map[rune]string{';': "semicolon", '\t': "tab", '|': "pipe"}[delimiter]
		warnings = append(warnings, fmt.Sprintf("Detected %s delimiter", delimName))
	}

	records, err := readCSV(bytes.NewReader(data), delimiter)
	if err != nil {
		return ImportResult{Errors: []string{fmt.Sprintf("Cannot read CSV: %v", err)}}
	}
	return importFromRows(records, "Line", warnings)
}

// ImportCatalogExcel imports material presets from the first sheet of an
// Excel workbook.
func ImportCatalogExcel(path string) ImportResult {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return ImportResult{Errors: []string{fmt.Sprintf("Cannot open Excel file: %v", err)}}
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return ImportResult{Errors: []string{"Excel file has no sheets"}}
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return ImportResult{Errors: []string{fmt.Sprintf("Cannot read Excel data: %v", err)}}
	}
	return importFromRows(rows, "Row", nil)
}

// importFromRows is the shared import logic for both CSV and Excel data.
func importFromRows(rows [][]string, rowPrefix string, warnings []string) ImportResult {
	result := ImportResult{Warnings: warnings}

	if len(rows) == 0 {
		result.Errors = append(result.Errors, "No data rows found")
		return result
	}

	mapping, hasHeader := DetectColumns(rows[0])
	startRow := 0
	if hasHeader {
		startRow = 1
		result.Warnings = append(result.Warnings, "Detected header row, skipping")

		var missing []string
		if mapping.Kind == -1 {
			missing = append(missing, "Kind")
		}
		if mapping.Name == -1 {
			missing = append(missing, "Name")
		}
		if mapping.Price == -1 {
			missing = append(missing, "Price")
		}
		if len(missing) > 0 {
			result.Errors = append(result.Errors, fmt.Sprintf("Required columns not found in header: %s", strings.Join(missing, ", ")))
			return result
		}
	} else if len(rows[0]) >= 3 {
		// An unrecognized header still has a non-numeric price column
		if _, err := strconv.ParseFloat(strings.TrimSpace(rows[0][mapping.Price]), 64); err != nil {
			if _, kindErr := model.ParseKind(rows[0][mapping.Kind]); kindErr != nil {
				startRow = 1
				result.Warnings = append(result.Warnings, "Detected header row, skipping")
			}
		}
	}

	for i := startRow; i < len(rows); i++ {
		row := rows[i]
		if isEmptyRow(row) {
			continue
		}

		rowLabel := fmt.Sprintf("%s %d", rowPrefix, i+1)
		preset, errMsg := parseRow(row, mapping, rowLabel)
		if errMsg != "" {
			result.Errors = append(result.Errors, errMsg)
			continue
		}
		result.Presets = append(result.Presets, preset)
	}

	if len(result.Presets) == 0 && len(result.Errors) == 0 {
		result.Errors = append(result.Errors, "No data rows found")
	}
	return result
}

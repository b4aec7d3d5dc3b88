package project

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/piwi3910/RenoCalc/internal/model"
)

func TestSaveAndLoadAppConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")

	cfg := model.DefaultAppConfig()
	cfg.Calculator.ReservePercent = 15
	cfg.Calculator.Currency = "EUR"
	cfg.Theme = "dark"
	cfg.DefaultExportFormat = model.ExportFormatPDF
	cfg.AddRecentExport("/tmp/report.xlsx")

	if err := SaveAppConfig(path, cfg); err != nil {
		t.Fatalf("SaveAppConfig failed: %v", err)
	}

	loaded, err := LoadAppConfig(path)
	if err != nil {
		t.Fatalf("LoadAppConfig failed: %v", err)
	}
	if loaded.Calculator.ReservePercent != 15 {
		t.Errorf("expected ReservePercent=15, got %d", loaded.Calculator.ReservePercent)
	}
	if loaded.Calculator.Currency != "EUR" {
		t.Errorf("expected Currency=EUR, got %s", loaded.Calculator.Currency)
	}
	if loaded.Theme != "dark" {
		t.Errorf("expected Theme=dark, got %s", loaded.Theme)
	}
	if loaded.DefaultExportFormat != model.ExportFormatPDF {
		t.Errorf("expected pdf export format, got %s", loaded.DefaultExportFormat)
	}
	if len(loaded.RecentExports) != 1 || loaded.RecentExports[0] != "/tmp/report.xlsx" {
		t.Errorf("unexpected RecentExports: %v", loaded.RecentExports)
	}
}

func TestLoadAppConfigMissingFile(t *testing.T) {
	cfg, err := LoadAppConfig(filepath.Join(t.TempDir(), "nonexistent.json"))
	if err != nil {
		t.Fatalf("expected no error for missing file, got: %v", err)
	}

	defaults := model.DefaultAppConfig()
	if cfg.Calculator != defaults.Calculator {
		t.Errorf("expected default calculator settings, got %+v", cfg.Calculator)
	}
	if cfg.Theme != defaults.Theme {
		t.Errorf("expected Theme=%s, got %s", defaults.Theme, cfg.Theme)
	}
}

func TestLoadAppConfigInvalidJSON(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")

	if err := os.WriteFile(path, []byte("not valid json{{{"), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := LoadAppConfig(path)
	if err == nil {
		t.Fatal("expected error for invalid JSON, got nil")
	}
}

func TestLoadAppConfigPartialFileKeepsDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")

	data := []byte(`{"theme":"light","recent_exports":null}`)
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadAppConfig(path)
	if err != nil {
		t.Fatalf("LoadAppConfig failed: %v", err)
	}
	if cfg.Theme != "light" {
		t.Errorf("expected Theme=light, got %s", cfg.Theme)
	}
	if cfg.Calculator.ReservePercent != model.DefaultReservePercent {
		t.Errorf("expected default reserve, got %d", cfg.Calculator.ReservePercent)
	}
	if cfg.DXFUnitsPerMeter != 1000 {
		t.Errorf("expected default DXF scale 1000, got %g", cfg.DXFUnitsPerMeter)
	}
	if cfg.RecentExports == nil {
		t.Error("RecentExports should not be nil after loading")
	}
}

func TestSaveAppConfigCreatesDirectories(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sub", "dir", "config.json")

	cfg := model.DefaultAppConfig()
	if err := SaveAppConfig(path, cfg); err != nil {
		t.Fatalf("SaveAppConfig should create parent dirs: %v", err)
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Fatal("config file was not created")
	}
}

func TestLoadConfigEnvOverrides(t *testing.T) {
	t.Setenv("RENOCALC_CALC_RESERVE_PERCENT", "15")
	t.Setenv("RENOCALC_CALC_CURRENCY", "$")
	t.Setenv("RENOCALC_THEME", "dark")
	t.Setenv("RENOCALC_EXPORT_FORMAT", "docx")

	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "config.json"))
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Calculator.ReservePercent != 15 {
		t.Errorf("expected ReservePercent=15 from env, got %d", cfg.Calculator.ReservePercent)
	}
	if cfg.Calculator.Currency != "$" {
		t.Errorf("expected Currency=$ from env, got %s", cfg.Calculator.Currency)
	}
	if cfg.Theme != "dark" {
		t.Errorf("expected Theme=dark from env, got %s", cfg.Theme)
	}
	if cfg.DefaultExportFormat != model.ExportFormatDocument {
		t.Errorf("expected docx from env, got %s", cfg.DefaultExportFormat)
	}
	// untouched fields keep their defaults
	if cfg.Calculator.Precision != 2 {
		t.Errorf("expected default precision 2, got %d", cfg.Calculator.Precision)
	}
}

func TestLoadConfigEnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	cfg := model.DefaultAppConfig()
	cfg.Theme = "light"
	if err := SaveAppConfig(path, cfg); err != nil {
		t.Fatal(err)
	}
	t.Setenv("RENOCALC_THEME", "dark")

	loaded, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if loaded.Theme != "dark" {
		t.Errorf("expected environment to win over file, got %s", loaded.Theme)
	}
}

func TestLoadConfigInvalidEnvValue(t *testing.T) {
	t.Setenv("RENOCALC_CALC_RESERVE_PERCENT", "lots")

	if _, err := LoadConfig(filepath.Join(t.TempDir(), "config.json")); err == nil {
		t.Fatal("expected error for non-numeric reserve")
	}
}

func TestLoadConfigRejectsOutOfRangeValues(t *testing.T) {
	t.Setenv("RENOCALC_CALC_RESERVE_PERCENT", "150")

	_, err := LoadConfig(filepath.Join(t.TempDir(), "config.json"))
	if err == nil {
		t.Fatal("expected validation error for reserve 150")
	}
	if !errors.Is(err, model.ErrRange) {
		t.Errorf("expected range error, got %v", err)
	}
}

func TestLoadConfigRejectsUnknownTheme(t *testing.T) {
	t.Setenv("RENOCALC_THEME", "neon")

	_, err := LoadConfig(filepath.Join(t.TempDir(), "config.json"))
	if !errors.Is(err, model.ErrFormat) {
		t.Errorf("expected format error, got %v", err)
	}
}

package project

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/piwi3910/RenoCalc/internal/model"
)

// DefaultCatalogPath returns the default file path for the material catalog.
// This is located at ~/.renocalc/catalog.json.
func DefaultCatalogPath() string {
	return filepath.Join(DefaultConfigDir(), "catalog.json")
}

// SaveCatalog writes the catalog to the specified JSON file.
func SaveCatalog(path string, catalog model.Catalog) error {
	return writeJSON(path, catalog)
}

// LoadCatalog reads the catalog from the specified JSON file.
// If the file does not exist, it returns the default catalog and saves it.
func LoadCatalog(path string) (model.Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			catalog := model.DefaultCatalog()
			return catalog, SaveCatalog(path, catalog)
		}
		return model.Catalog{}, err
	}
	var catalog model.Catalog
	if err := json.Unmarshal(data, &catalog); err != nil {
		return model.Catalog{}, err
	}
	return catalog, nil
}

// LoadOrCreateCatalog loads the catalog from the default path, creating
// it with default presets on first use.
func LoadOrCreateCatalog() (model.Catalog, string, error) {
	path := DefaultCatalogPath()
	catalog, err := LoadCatalog(path)
	return catalog, path, err
}

// ImportCatalog reads a catalog JSON file and merges it into existing.
// Presets whose ID is already present are skipped. Returns the merged
// catalog and the number of presets added.
func ImportCatalog(path string, existing model.Catalog) (model.Catalog, int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return existing, 0, err
	}
	var imported model.Catalog
	if err := json.Unmarshal(data, &imported); err != nil {
		return existing, 0, err
	}
	added := existing.Merge(imported.Presets)
	return existing, added, nil
}

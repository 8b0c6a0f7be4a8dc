package storage

import (
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/vishyyyyyyyyy/ToyoQuest/logger"
	"github.com/vishyyyyyyyyy/ToyoQuest/models"
)

var (
	// ErrCatalogNotFound reports that no catalog CSV exists yet.
	ErrCatalogNotFound = errors.New("catalog file not found")
	// ErrCatalogParse reports that the catalog CSV could not be read as
	// tabular data.
	ErrCatalogParse = errors.New("catalog file could not be parsed")
)

// CatalogColumns computes the unified column set for a batch of records:
// the union of all keys, with the priority columns pinned first and the
// rest sorted alphabetically.
func CatalogColumns(records []models.VehicleRecord) []string {
	priority := make(map[string]bool, len(models.PriorityColumns))
	for _, col := range models.PriorityColumns {
		priority[col] = true
	}

	seen := make(map[string]bool)
	var others []string
	for _, record := range records {
		for key := range record {
			if priority[key] || seen[key] {
				continue
			}
			seen[key] = true
			others = append(others, key)
		}
	}
	sort.Strings(others)

	columns := make([]string, 0, len(models.PriorityColumns)+len(others))
	columns = append(columns, models.PriorityColumns...)
	columns = append(columns, others...)
	return columns
}

// WriteCatalog rebuilds the catalog CSV wholesale. Missing keys per record
// render as empty cells.
func WriteCatalog(path string, records []models.VehicleRecord) error {
	if len(records) == 0 {
		logger.Warn("no records to write, keeping existing catalog", "path", path)
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("catalog: create output dir: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("catalog: create file %q: %w", path, err)
	}
	defer f.Close()

	columns := CatalogColumns(records)

	w := csv.NewWriter(f)
	if err := w.Write(columns); err != nil {
		return fmt.Errorf("catalog: write header: %w", err)
	}

	row := make([]string, len(columns))
	for _, record := range records {
		for i, col := range columns {
			row[i] = record[col]
		}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("catalog: write row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("catalog: flush: %w", err)
	}

	logger.Info("catalog written", "path", path, "records", len(records), "columns", len(columns))
	return nil
}

// ReadCatalog loads the catalog CSV back as ordered records plus the header
// row. Returns ErrCatalogNotFound when the file does not exist and
// ErrCatalogParse when it is not valid CSV.
func ReadCatalog(path string) ([]models.VehicleRecord, []string, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil, fmt.Errorf("%w: %s", ErrCatalogNotFound, path)
		}
		return nil, nil, fmt.Errorf("catalog: open %q: %w", path, err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrCatalogParse, err)
	}
	if len(rows) == 0 {
		return nil, nil, nil
	}

	columns := rows[0]
	records := make([]models.VehicleRecord, 0, len(rows)-1)
	for _, row := range rows[1:] {
		record := make(models.VehicleRecord, len(columns))
		for i, col := range columns {
			if i < len(row) {
				record[col] = row[i]
			}
		}
		records = append(records, record)
	}

	return records, columns, nil
}

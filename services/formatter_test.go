package services

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vishyyyyyyyyy/ToyoQuest/models"
	"github.com/vishyyyyyyyyy/ToyoQuest/storage"
)

func writeTestCatalog(t *testing.T, records []models.VehicleRecord) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "catalog.csv")
	require.NoError(t, storage.WriteCatalog(path, records))
	return path
}

func TestFormatCatalogNotFound(t *testing.T) {
	_, err := FormatCatalog(filepath.Join(t.TempDir(), "missing.csv"), 50000)
	require.Error(t, err)
	require.True(t, errors.Is(err, storage.ErrCatalogNotFound))
}

func TestFormatCatalogRendersAllWithinBudget(t *testing.T) {
	path := writeTestCatalog(t, []models.VehicleRecord{
		{"base_model": "camry", "trim_name": "LE", "source_url": "u1", "0_specsLabel": "52 mpg"},
		{"base_model": "rav4", "trim_name": "XLE", "source_url": "u2", "desc": "compact suv"},
	})

	text, err := FormatCatalog(path, 50000)
	require.NoError(t, err)
	require.Contains(t, text, "Toyota Vehicle Data - 2 records")
	require.Contains(t, text, "--- Record 1 ---")
	require.Contains(t, text, "--- Record 2 ---")
	require.Contains(t, text, "base_model: camry")
	require.Contains(t, text, "0_specsLabel: 52 mpg")
	require.NotContains(t, text, "to stay within token limits")
}

func TestFormatCatalogTruncationNotice(t *testing.T) {
	long := strings.Repeat("x", 120)
	path := writeTestCatalog(t, []models.VehicleRecord{
		{"base_model": "camry", "trim_name": "LE", "source_url": "u", "desc": long},
		{"base_model": "rav4", "trim_name": "XLE", "source_url": "u", "desc": long},
		{"base_model": "prius", "trim_name": "SE", "source_url": "u", "desc": long},
	})

	text, err := FormatCatalog(path, 300)
	require.NoError(t, err)

	// The budget is checked after each append, so the first record lands
	// and the rest are dropped behind a notice.
	require.Contains(t, text, "--- Record 1 ---")
	require.NotContains(t, text, "--- Record 2 ---")
	require.Contains(t, text, "(showing 1 of 3 records to stay within token limits)")
}

func TestFormatCatalogOmitsEmptyValues(t *testing.T) {
	path := writeTestCatalog(t, []models.VehicleRecord{
		{"base_model": "camry", "trim_name": "", "source_url": "u", "empty_col": ""},
	})

	text, err := FormatCatalog(path, 50000)
	require.NoError(t, err)
	require.Contains(t, text, "base_model: camry")
	require.NotContains(t, text, "trim_name:")
	require.NotContains(t, text, "empty_col:")
}

func TestFormatCatalogTruncatesLongValues(t *testing.T) {
	path := writeTestCatalog(t, []models.VehicleRecord{
		{
			"base_model":   "camry",
			"trim_name":    "LE",
			"source_url":   "u",
			"0_specsLabel": strings.Repeat("a", 250),
			"other":        strings.Repeat("b", 200),
		},
	})

	text, err := FormatCatalog(path, 50000)
	require.NoError(t, err)
	require.Contains(t, text, strings.Repeat("a", 200)+"...")
	require.NotContains(t, text, strings.Repeat("a", 201))
	require.Contains(t, text, strings.Repeat("b", 150)+"...")
	require.NotContains(t, text, strings.Repeat("b", 151))
}

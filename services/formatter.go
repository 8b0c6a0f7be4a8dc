package services

import (
	"fmt"
	"strings"

	"github.com/vishyyyyyyyyy/ToyoQuest/logger"
	"github.com/vishyyyyyyyyy/ToyoQuest/storage"
	"github.com/vishyyyyyyyyy/ToyoQuest/utils"
)

// Columns rendered first for every record.
var importantColumns = []string{"base_model", "trim_name", "source_url"}

// Feature and spec label columns worth keeping in the prompt.
var usefulColumns = []string{
	"0_specsLabel", "1_specsLabel", "2_specsLabel",
	"primaryFeatures_decodedValue", "keyFeatures_decodedValue",
}

const (
	maxUsefulValueLen = 200
	maxOtherValueLen  = 150
	maxOtherColumns   = 5
)

// FormatCatalog renders the catalog CSV into a text block bounded by an
// approximate character budget. The budget is soft: it is checked after
// each record is appended, so the block may overshoot by one record before
// truncation kicks in. Records beyond the cutoff are dropped from the block
// with a notice, not from the catalog.
func FormatCatalog(path string, maxChars int) (string, error) {
	records, columns, err := storage.ReadCatalog(path)
	if err != nil {
		return "", err
	}
	if len(records) == 0 {
		return "No data found in CSV file.", nil
	}

	important := make(map[string]bool, len(importantColumns))
	for _, col := range importantColumns {
		important[col] = true
	}
	useful := make(map[string]bool, len(usefulColumns))
	for _, col := range usefulColumns {
		useful[col] = true
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Toyota Vehicle Data - %d records\n", len(records))
	b.WriteString(strings.Repeat("=", 80) + "\n\n")

	preview := columns
	if len(preview) > 20 {
		preview = preview[:20]
	}
	fmt.Fprintf(&b, "Available columns (%d total): %s...\n\n", len(columns), strings.Join(preview, ", "))

	total := b.Len()
	shown := len(records)

	for i, record := range records {
		if total > maxChars {
			shown = i
			fmt.Fprintf(&b, "\n... (showing %d of %d records to stay within token limits)\n", shown, len(records))
			break
		}

		var rec strings.Builder
		fmt.Fprintf(&rec, "\n--- Record %d ---\n", i+1)

		for _, col := range importantColumns {
			if value := strings.TrimSpace(record[col]); value != "" {
				fmt.Fprintf(&rec, "%s: %s\n", col, value)
			}
		}

		for _, col := range usefulColumns {
			if value := strings.TrimSpace(record[col]); value != "" {
				fmt.Fprintf(&rec, "%s: %s\n", col, utils.Truncate(value, maxUsefulValueLen))
			}
		}

		othersShown := 0
		for _, col := range columns {
			if important[col] || useful[col] || othersShown >= maxOtherColumns {
				continue
			}
			value := strings.TrimSpace(record[col])
			if value == "" {
				continue
			}
			fmt.Fprintf(&rec, "%s: %s\n", col, utils.Truncate(value, maxOtherValueLen))
			othersShown++
		}

		b.WriteString(rec.String())
		total += rec.Len()
	}

	text := b.String()
	logger.Info("catalog formatted", "chars", len(text), "records_shown", shown, "records_total", len(records))
	return text, nil
}

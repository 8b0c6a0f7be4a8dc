package scraper

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/vishyyyyyyyyy/ToyoQuest/models"
)

// Flatten collapses a nested JSON object into a flat record. Nested object
// keys are joined with "_", list values are serialized back to a JSON
// string (empty list -> empty string) and scalars pass through as strings.
func Flatten(m map[string]any) models.VehicleRecord {
	record := make(models.VehicleRecord, len(m))
	flattenInto(record, m, "")
	return record
}

func flattenInto(record models.VehicleRecord, m map[string]any, parentKey string) {
	for k, v := range m {
		key := k
		if parentKey != "" {
			key = parentKey + "_" + k
		}
		switch val := v.(type) {
		case map[string]any:
			flattenInto(record, val, key)
		case []any:
			if len(val) == 0 {
				record[key] = ""
				continue
			}
			raw, err := json.Marshal(val)
			if err != nil {
				record[key] = fmt.Sprintf("%v", val)
				continue
			}
			record[key] = string(raw)
		default:
			record[key] = formatScalar(v)
		}
	}
}

// formatScalar renders a JSON scalar as it would appear in the source
// document. Payloads are decoded with UseNumber so numeric literals keep
// their original text.
func formatScalar(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case json.Number:
		return val.String()
	case bool:
		return strconv.FormatBool(val)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	default:
		return fmt.Sprintf("%v", val)
	}
}

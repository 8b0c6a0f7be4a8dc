package scraper

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFlattenNestedMaps(t *testing.T) {
	record := Flatten(map[string]any{
		"msrp": "28400",
		"engine": map[string]any{
			"type": "hybrid",
			"power": map[string]any{
				"hp": json.Number("219"),
			},
		},
	})

	require.Equal(t, "28400", record["msrp"])
	require.Equal(t, "hybrid", record["engine_type"])
	require.Equal(t, "219", record["engine_power_hp"])
}

func TestFlattenListRoundTrips(t *testing.T) {
	original := []any{"blind spot monitor", "lane assist"}
	record := Flatten(map[string]any{"features": original})

	require.NotEmpty(t, record["features"])

	var restored []any
	require.NoError(t, json.Unmarshal([]byte(record["features"]), &restored))
	require.Equal(t, original, restored)
}

func TestFlattenEmptyList(t *testing.T) {
	record := Flatten(map[string]any{"packages": []any{}})
	require.Equal(t, "", record["packages"])
}

func TestFormatScalar(t *testing.T) {
	tests := []struct {
		in   any
		want string
	}{
		{nil, ""},
		{"LE", "LE"},
		{json.Number("28400.50"), "28400.50"},
		{true, "true"},
		{float64(44), "44"},
	}
	for _, tt := range tests {
		require.Equal(t, tt.want, formatScalar(tt.in))
	}
}

package services

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vishyyyyyyyyy/ToyoQuest/models"
)

func TestParseStrictJSON(t *testing.T) {
	entries, strategy := ParseRecommendations(
		`{"recommendations":[{"rank":1,"base_model":"Camry","trim_name":"LE","reason":"fits budget"}]}`)

	require.Equal(t, StrategyStrict, strategy)
	require.Len(t, entries, 1)
	require.Equal(t, 1, entries[0].Rank)
	require.Equal(t, "Camry", entries[0].BaseModel)
	require.Equal(t, "LE", entries[0].TrimName)
	require.Equal(t, "fits budget", entries[0].Reason)
}

func TestParseJSONEmbeddedInProse(t *testing.T) {
	text := `Sure! Based on your profile, here you go:
{"recommendations": [{"rank": 1, "base_model": "RAV4", "trim_name": "XLE", "reason": "roomy"}]}
Let me know if you need anything else.`

	entries, strategy := ParseRecommendations(text)
	require.Equal(t, StrategyStrict, strategy)
	require.Len(t, entries, 1)
	require.Equal(t, "RAV4", entries[0].BaseModel)
}

func TestParseFencedJSON(t *testing.T) {
	text := "```json\n{\"recommendations\": [{\"rank\": 2, \"base_model\": \"Prius\", \"trim_name\": \"Limited\", \"reason\": \"efficient\"}]}\n```"

	entries, strategy := ParseRecommendations(text)
	require.Equal(t, StrategyStrict, strategy)
	require.Len(t, entries, 1)
	require.Equal(t, "Prius", entries[0].BaseModel)
}

func TestParseHeuristicNumberedList(t *testing.T) {
	entries, strategy := ParseRecommendations("1. Camry LE\n2. RAV4 XLE\n3. Corolla SE")

	require.Equal(t, StrategyHeuristic, strategy)
	require.Len(t, entries, 3)
	require.Equal(t, models.RecommendationEntry{Rank: 1, BaseModel: "Camry", TrimName: "LE"}, entries[0])
	require.Equal(t, models.RecommendationEntry{Rank: 2, BaseModel: "RAV4", TrimName: "XLE"}, entries[1])
	require.Equal(t, models.RecommendationEntry{Rank: 3, BaseModel: "Corolla", TrimName: "SE"}, entries[2])
}

func TestParseHeuristicRankMarkers(t *testing.T) {
	entries, strategy := ParseRecommendations("Rank 1: Sienna XSE\n2nd Tundra Limited")

	require.Equal(t, StrategyHeuristic, strategy)
	require.Len(t, entries, 2)
	require.Equal(t, "Sienna", entries[0].BaseModel)
	require.Equal(t, "XSE", entries[0].TrimName)
	require.Equal(t, 2, entries[1].Rank)
	require.Equal(t, "Tundra", entries[1].BaseModel)
}

func TestParseHeuristicSortsAndCaps(t *testing.T) {
	entries, strategy := ParseRecommendations("3. Corolla SE\n1. Camry LE\n2. RAV4 XLE")

	require.Equal(t, StrategyHeuristic, strategy)
	require.Len(t, entries, 3)
	require.Equal(t, 1, entries[0].Rank)
	require.Equal(t, 2, entries[1].Rank)
	require.Equal(t, 3, entries[2].Rank)
}

func TestParseHeuristicRejectsBadEntries(t *testing.T) {
	// rank beyond 3 and a model name too short to be real
	entries, strategy := ParseRecommendations("4. Highlander XLE\n1. ab XX")

	require.Equal(t, StrategyEmpty, strategy)
	require.Empty(t, entries)
}

func TestParseEmptyInput(t *testing.T) {
	entries, strategy := ParseRecommendations("")
	require.Equal(t, StrategyEmpty, strategy)
	require.Empty(t, entries)

	entries, strategy = ParseRecommendations("   \n  ")
	require.Equal(t, StrategyEmpty, strategy)
	require.Empty(t, entries)
}

func TestParseUnusableTextIsEmptyNotError(t *testing.T) {
	entries, strategy := ParseRecommendations("I could not find anything matching your budget, sorry.")
	require.Equal(t, StrategyEmpty, strategy)
	require.Empty(t, entries)
}

package services

import (
	"encoding/json"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/vishyyyyyyyyy/ToyoQuest/logger"
	"github.com/vishyyyyyyyyy/ToyoQuest/models"
)

// Strategy tags which parsing path produced a result, so precedence and
// failure modes stay testable in isolation.
type Strategy int

const (
	// StrategyEmpty means no entries were recovered by any path.
	StrategyEmpty Strategy = iota
	// StrategyStrict means the JSON shape was found and parsed.
	StrategyStrict
	// StrategyHeuristic means entries were scraped out of plain text.
	StrategyHeuristic
)

func (s Strategy) String() string {
	switch s {
	case StrategyStrict:
		return "strict"
	case StrategyHeuristic:
		return "heuristic"
	default:
		return "empty"
	}
}

// Bounded search for a {"recommendations": [...]} object embedded in prose.
var recommendationsObjectRe = regexp.MustCompile(`(?s)\{\s*"recommendations"\s*:\s*\[.*?\]\s*\}`)

// Line patterns recognizing "rank marker + model + trim". Ordered; the
// first match wins per line. The bullet pattern captures no rank and falls
// back to positional order.
var heuristicPatterns = []*regexp.Regexp{
	regexp.MustCompile(`^\s*(\d+)\s*[.):\-]\s*(.+?)\s+(\S+)\s*$`),
	regexp.MustCompile(`(?i)^\s*rank\s*(\d+)\s*[.:\-]?\s*(.+?)\s+(\S+)\s*$`),
	regexp.MustCompile(`(?i)^\s*(\d+)(?:st|nd|rd|th)\s*[.:\-]?\s*(.+?)\s+(\S+)\s*$`),
	regexp.MustCompile(`^\s*[-*•]\s+(.+?)\s+(\S+)\s*$`),
}

var (
	leadingJunkRe = regexp.MustCompile(`^[^A-Za-z]+`)
	nonWordRe     = regexp.MustCompile(`[^\w]`)
)

// ParseRecommendations extracts up to three ranked entries from the raw
// completion text. Strict JSON is tried first, then a line-by-line
// heuristic; nothing here ever fails hard, an unusable response just comes
// back empty.
func ParseRecommendations(raw string) ([]models.RecommendationEntry, Strategy) {
	text := strings.TrimSpace(raw)
	if text == "" {
		logger.Warn("empty response from completion service")
		return nil, StrategyEmpty
	}

	if entries := parseStrict(text); len(entries) > 0 {
		return finalize(entries), StrategyStrict
	}
	if entries := parseHeuristic(text); len(entries) > 0 {
		return finalize(entries), StrategyHeuristic
	}

	logger.Warn("no recommendations recovered from response", "text_len", len(text))
	return nil, StrategyEmpty
}

func parseStrict(text string) []models.RecommendationEntry {
	if match := recommendationsObjectRe.FindString(text); match != "" {
		var list models.RecommendationList
		if err := json.Unmarshal([]byte(match), &list); err == nil && len(list.Recommendations) > 0 {
			return list.Recommendations
		}
	}

	candidate := stripCodeFence(text)
	var list models.RecommendationList
	if err := json.Unmarshal([]byte(candidate), &list); err == nil {
		return list.Recommendations
	}
	return nil
}

// stripCodeFence unwraps a ```json ... ``` block when the model insists on
// markdown despite the prompt.
func stripCodeFence(text string) string {
	const startMarker = "```json"
	const endMarker = "```"

	start := strings.Index(text, startMarker)
	if start < 0 {
		return text
	}
	rest := text[start+len(startMarker):]
	end := strings.Index(rest, endMarker)
	if end < 0 {
		return strings.TrimSpace(rest)
	}
	return strings.TrimSpace(rest[:end])
}

func parseHeuristic(text string) []models.RecommendationEntry {
	var entries []models.RecommendationEntry

	for _, line := range strings.Split(text, "\n") {
		for _, pattern := range heuristicPatterns {
			groups := pattern.FindStringSubmatch(line)
			if groups == nil {
				continue
			}

			var rank int
			var modelField, trimField string
			if len(groups) == 4 {
				rank, _ = strconv.Atoi(groups[1])
				modelField, trimField = groups[2], groups[3]
			} else {
				// no rank captured: positional order
				rank = len(entries) + 1
				modelField, trimField = groups[1], groups[2]
			}

			modelField = strings.TrimSpace(leadingJunkRe.ReplaceAllString(modelField, ""))
			trimField = nonWordRe.ReplaceAllString(trimField, "")

			if rank >= 1 && rank <= 3 && len(modelField) > 2 && trimField != "" {
				entries = append(entries, models.RecommendationEntry{
					Rank:      rank,
					BaseModel: modelField,
					TrimName:  trimField,
				})
			}
			break // one pattern per line
		}
	}

	return entries
}

// finalize sorts by rank and truncates to the top three.
func finalize(entries []models.RecommendationEntry) []models.RecommendationEntry {
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Rank < entries[j].Rank
	})
	if len(entries) > 3 {
		entries = entries[:3]
	}
	return entries
}

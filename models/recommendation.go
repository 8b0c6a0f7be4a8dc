package models

// RecommendationEntry is one ranked vehicle suggestion extracted from the
// model's answer. Transient, never persisted.
type RecommendationEntry struct {
	Rank      int    `json:"rank"`
	BaseModel string `json:"base_model"`
	TrimName  string `json:"trim_name"`
	Reason    string `json:"reason,omitempty"`
}

// RecommendationList is the JSON shape the one-shot prompt instructs the
// model to return.
type RecommendationList struct {
	Recommendations []RecommendationEntry `json:"recommendations"`
}

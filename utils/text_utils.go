package utils

// Truncate caps s at max characters, appending an ellipsis marker when
// anything was cut.
func Truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}

// Preview shortens a string for log output.
func Preview(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}

// DeduplicateSlice removes duplicates while preserving first-seen order.
func DeduplicateSlice(items []string) []string {
	seen := make(map[string]bool, len(items))
	result := make([]string, 0, len(items))
	for _, item := range items {
		if item == "" || seen[item] {
			continue
		}
		seen[item] = true
		result = append(result, item)
	}
	return result
}

package core

// TruncateDescription shortens text to at most limit runes and appends marker
// when anything was cut. A limit below 1 disables truncation.
func TruncateDescription(text string, limit int, marker string) string {
	if limit < 1 {
		return text
	}
	count := 0
	for i := range text {
		if count == limit {
			return text[:i] + marker
		}
		count++
	}
	return text
}

package sanitizer

// NormalizeSet applies a strategy to every element, dropping empties and
// duplicates while preserving first-seen order. Used for amenities,
// features and newsletter location preferences.
func NormalizeSet(values []string, strategy Strategy) []string {
	seen := make(map[string]struct{})
	out := []string{}

	for _, v := range values {
		s := strategy(v)
		if s == "" {
			continue
		}
		if _, dup := seen[s]; dup {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}

	return out
}

// NormalizeTags is NormalizeSet with the tag strategy.
func NormalizeTags(values []string) []string {
	return NormalizeSet(values, NormalizeTag)
}

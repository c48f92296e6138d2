package model

// Prepend returns items with item in front, truncated to limit.
// The input slice is never modified.
func Prepend[T any](items []T, limit int, item T) []T {
	if limit <= 0 {
		return nil
	}
	n := len(items) + 1
	if n > limit {
		n = limit
	}
	out := make([]T, 0, n)
	out = append(out, item)
	for _, existing := range items {
		if len(out) == n {
			break
		}
		out = append(out, existing)
	}
	return out
}

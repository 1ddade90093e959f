package service

// paginate slices items to [start, end) when both bounds are non-negative.
// Out-of-range bounds are clamped.
func paginate[T any](items []T, start, end int) []T {
	if start < 0 || end < 0 {
		return items
	}
	if start > len(items) {
		start = len(items)
	}
	if end > len(items) {
		end = len(items)
	}
	if start >= end {
		return []T{}
	}
	return items[start:end]
}

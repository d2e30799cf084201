package sliceutils

func Cut[T any](slice []T, start, end int) []T {
	if len(slice) == 0 {
		return slice
	}

	if start < 0 {
		start = len(slice) + start
	}
	if end < 0 {
		end = len(slice) + end
	}

	return slice[max(start, 0):min(end, len(slice))]
}

// Tail returns at most the last n elements, preserving order.
func Tail[T any](slice []T, n int) []T {
	if n <= 0 {
		return slice[:0]
	}
	return Cut(slice, -n, len(slice))
}

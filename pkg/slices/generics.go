package slices

import (
	originSlices "slices"

	"golang.org/x/exp/constraints"
)

// GenericsFilterSliceEmptyValues drops zero values ("", 0, false).
func GenericsFilterSliceEmptyValues[T comparable](list []T) []T {
	result := make([]T, 0, len(list))
	var emptyValue T
	for _, v := range list {
		if v == emptyValue {
			continue
		}
		result = append(result, v)
	}
	return result
}

// GenericsUniqueSliceValues keeps the first occurrence of every value.
func GenericsUniqueSliceValues[T comparable](list []T) []T {
	result := make([]T, 0, len(list))
	seen := make(map[T]struct{}, len(list))
	for _, v := range list {
		if _, ok := seen[v]; !ok {
			seen[v] = struct{}{}
			result = append(result, v)
		}
	}
	return result
}

// GenericsStandardizeSlice returns the sorted set of non-empty values.
func GenericsStandardizeSlice[T constraints.Ordered](list []T) []T {
	result := GenericsUniqueSliceValues(GenericsFilterSliceEmptyValues(list))
	originSlices.Sort(result)
	return result
}

// GenericsSliceContainsOne reports whether list holds any of in.
func GenericsSliceContainsOne[T comparable](list []T, in ...T) bool {
	for _, v := range in {
		if originSlices.Contains(list, v) {
			return true
		}
	}
	return false
}

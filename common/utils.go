// package common contains small helpers and the shared logger used throughout this engine.
package common

import "slices"

// Coalesce picks the first argument that is not its type's zero value. Used to apply defaults
// after functional options ran.
//
// Parameters:
//   - values: candidates in priority order
//
// Returns:
//   - T: the first non-zero candidate, or the zero value when there is none
func Coalesce[T comparable](values ...T) T {
	var zero T
	if i := slices.IndexFunc(values, func(v T) bool { return v != zero }); i >= 0 {
		return values[i]
	}
	return zero
}

// First returns the first element of values, or fallback when values is empty.
//
// Parameters:
//   - values: the candidate slice
//   - fallback: the value returned for an empty slice
//
// Returns:
//   - T: values[0] or fallback
func First[T any](values []T, fallback T) T {
	if len(values) == 0 {
		return fallback
	}
	return values[0]
}

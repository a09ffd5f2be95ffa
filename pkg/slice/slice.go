// Copyright (c) 2026 Etagere. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package slice complements the standard [slices] package with the small
functional helpers the view controllers use on remote lists.
*/
package slice

import "strings"

// Map maps a slice of type T to a slice of type U using the provided transformation function.
func Map[T any, U any](input []T, transform func(T) U) []U {
	if input == nil {
		return nil
	}

	result := make([]U, len(input))
	for i, v := range input {
		result[i] = transform(v)
	}

	return result
}

// Filter returns only the elements for which predicate is true.
func Filter[T any](input []T, predicate func(T) bool) []T {
	if input == nil {
		return nil
	}

	var result []T
	for _, v := range input {
		if predicate(v) {
			result = append(result, v)
		}
	}

	return result
}

// ReplaceFirst returns a copy of input where the first element matching predicate
// is replaced by value. The second result reports whether a replacement happened.
func ReplaceFirst[T any](input []T, predicate func(T) bool, value T) ([]T, bool) {
	result := make([]T, len(input))
	copy(result, input)

	for i, v := range result {
		if predicate(v) {
			result[i] = value
			return result, true
		}
	}

	return result, false
}

// Prepend returns a new slice with value in front of input.
func Prepend[T any](input []T, value T) []T {
	result := make([]T, 0, len(input)+1)
	result = append(result, value)
	return append(result, input...)
}

// UniqueFold removes case-insensitive duplicates, keeping the first spelling seen.
func UniqueFold(input []string) []string {
	seen := make(map[string]struct{}, len(input))
	result := make([]string, 0, len(input))

	for _, v := range input {
		key := strings.ToLower(v)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		result = append(result, v)
	}

	return result
}

// Copyright (c) 2026 Etagere. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package query parses multi-valued form and query inputs.
package query

import (
	"regexp"
	"strconv"
	"strings"
)

// separators matches comma, semicolon and whitespace runs.
var separators = regexp.MustCompile(`[,;\s]+`)

// IntSlice parses repeated values (e.g. checked boxes) into integers.
// Invalid entries are ignored.
func IntSlice(vals []string) []int {
	var res []int
	for _, v := range vals {
		if i, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
			res = append(res, i)
		}
	}
	return res
}

// Fields splits free text on commas, semicolons and whitespace, dropping empty parts.
func Fields(val string) []string {
	var res []string
	for _, part := range separators.Split(val, -1) {
		if part != "" {
			res = append(res, part)
		}
	}
	return res
}

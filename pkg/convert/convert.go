// Copyright (c) 2026 Etagere. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package convert provides fault-tolerant conversions for form and URL values.

Handlers read identifiers and flags from chi URL params and HTML forms; a
malformed value is treated as absent rather than as an error.

Do not use this package if distinguishing between malformed data and zero values
is important in your domain logic; use explicit standard libraries instead.
*/
package convert

import (
	"strconv"
	"strings"
)

// ToID parses a positive resource identifier. ok is false for anything else.
func ToID(s string) (id int, ok bool) {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || v < 1 {
		return 0, false
	}
	return v, true
}

// ToBool parses checkbox-style booleans: "on", "true", "1", "yes" are true.
func ToBool(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "on", "yes", "oui":
		return true
	}
	v, _ := strconv.ParseBool(s)
	return v
}

// Copyright (c) 2026 Etagere. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package confirm gates destructive actions behind an explicit yes.
//
// The web front-end asks through a confirmation page whose form posts
// confirm=yes; the terminal client asks through a y/N prompt. Either way a
// missing or negative answer never reaches the action.
package confirm

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// ErrCancelled is returned when the user did not confirm.
var ErrCancelled = errors.New("confirm: cancelled")

// FormField is the field a confirmation form posts.
const FormField = "confirm"

// Run executes action only when confirmed is true.
func Run(ctx context.Context, confirmed bool, action func(context.Context) error) error {
	if !confirmed {
		return ErrCancelled
	}
	return action(ctx)
}

// FromForm reports whether the posted form carries confirm=yes.
func FromForm(request *http.Request) bool {
	return request.PostFormValue(FormField) == "yes"
}

// Prompt writes question followed by " [y/N] " and reads one line.
//
// Only y, yes, o and oui (any case) count as consent; end of input means no.
func Prompt(in io.Reader, out io.Writer, question string) (bool, error) {
	if _, err := fmt.Fprintf(out, "%s [y/N] ", question); err != nil {
		return false, err
	}

	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return false, err
	}

	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes", "o", "oui":
		return true, nil
	default:
		return false, nil
	}
}

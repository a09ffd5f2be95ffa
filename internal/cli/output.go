// Copyright (c) 2026 Etagere. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"golang.org/x/term"
	"gopkg.in/yaml.v3"
)

// render writes value as YAML, or calls text with a column writer.
func (r *runner) render(value any, text func(w io.Writer)) error {
	if r.output == OutputYAML {
		encoder := yaml.NewEncoder(r.Out)
		encoder.SetIndent(2)
		if err := encoder.Encode(value); err != nil {
			return fmt.Errorf("cli: encode yaml: %w", err)
		}
		return encoder.Close()
	}

	writer := tabwriter.NewWriter(r.Out, 0, 0, 2, ' ', 0)
	text(writer)
	return writer.Flush()
}

// readLine reads up to the next newline. End of input ends the line.
func readLine(reader *bufio.Reader) (string, error) {
	line, err := reader.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// terminalPassword reads without echo when stdin is a terminal, and a plain
// line otherwise (pipes, scripts).
func (r *runner) terminalPassword(prompt string) (string, error) {
	fmt.Fprint(r.Err, prompt)

	if file, ok := r.In.(*os.File); ok && term.IsTerminal(int(file.Fd())) {
		secret, err := term.ReadPassword(int(file.Fd()))
		fmt.Fprintln(r.Err)
		if err != nil {
			return "", fmt.Errorf("cli: read password: %w", err)
		}
		return strings.TrimSpace(string(secret)), nil
	}

	return readLine(r.lines)
}

// mark returns label when set is true.
func mark(set bool, label string) string {
	if set {
		return label
	}
	return ""
}

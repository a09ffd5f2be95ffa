// Copyright (c) 2026 Etagere. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package richtext cleans the HTML produced by the chapter editor and turns
remote descriptions into plain-text excerpts.

Two policies are used:

  - Editor: the formatting the toolbar can produce (bold, italic, underline,
    lists, quotes, paragraph alignment, font sizes). Everything else is dropped.
  - Strict: no markup at all, for excerpts and blank checks.
*/
package richtext

import (
	"html"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/microcosm-cc/bluemonday"
)

// NoSummary is shown in place of an empty description.
const NoSummary = "Pas de résumé."

var (
	editorPolicy = newEditorPolicy()
	strictPolicy = bluemonday.StrictPolicy()

	alignment  = regexp.MustCompile(`^(left|right|center|justify)$`)
	fontSize   = regexp.MustCompile(`^(12|14|16|18|20|24|28|32)px$`)
	whitespace = regexp.MustCompile(`\s+`)
)

func newEditorPolicy() *bluemonday.Policy {
	policy := bluemonday.NewPolicy()

	policy.AllowElements(
		"p", "div", "br", "span",
		"b", "strong", "i", "em", "u",
		"ul", "ol", "li", "blockquote",
		"h1", "h2", "h3",
	)
	policy.AllowStyles("text-align").Matching(alignment).OnElements("p", "div", "h1", "h2", "h3", "li", "blockquote")
	policy.AllowStyles("font-size").Matching(fontSize).OnElements("span")
	policy.AllowAttrs("align").Matching(alignment).OnElements("p", "div")

	return policy
}

// Sanitize keeps only the markup the chapter editor can produce.
func Sanitize(content string) string {
	return strings.TrimSpace(editorPolicy.Sanitize(content))
}

// PlainText removes every tag, decodes entities and collapses whitespace.
func PlainText(content string) string {
	stripped := html.UnescapeString(strictPolicy.Sanitize(content))
	return strings.TrimSpace(whitespace.ReplaceAllString(stripped, " "))
}

// IsBlank reports whether content has no visible text (e.g. "<p><br></p>").
func IsBlank(content string) bool {
	return PlainText(content) == ""
}

// Excerpt returns the plain text of content cut to limit characters with "..." appended.
// Blank content yields [NoSummary].
func Excerpt(content string, limit int) string {
	text := PlainText(content)
	if text == "" {
		return NoSummary
	}

	if utf8.RuneCountInString(text) <= limit {
		return text
	}

	runes := []rune(text)
	return strings.TrimSpace(string(runes[:limit])) + "..."
}

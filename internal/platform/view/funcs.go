// Copyright (c) 2026 Etagere. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package view

import (
	"html/template"
	"net/url"
	"slices"
	"strconv"
	"strings"

	"github.com/taibuivan/etagere/pkg/pagination"
	"github.com/taibuivan/etagere/pkg/richtext"
)

// Pager renders previous/next links for a paged list.
type Pager struct {
	pagination.Meta
	Path  string
	Query url.Values
}

// NewPager creates a pager for path keeping the given query parameters.
func NewPager(meta pagination.Meta, path string, query url.Values) Pager {
	return Pager{Meta: meta, Path: path, Query: query}
}

// URL returns the link to page, keeping every other query parameter.
func (pager Pager) URL(page int) string {
	values := url.Values{}
	for key, list := range pager.Query {
		values[key] = slices.Clone(list)
	}
	values.Set("page", strconv.Itoa(page))
	if pager.Limit > 0 {
		values.Set("page_size", strconv.Itoa(pager.Limit))
	}
	return pager.Path + "?" + values.Encode()
}

// timestamp is satisfied by time.Time and by types embedding it.
type timestamp interface {
	IsZero() bool
	Format(layout string) string
}

var funcs = template.FuncMap{
	// excerpt strips tags and truncates to n characters.
	"excerpt": func(n int, content string) string {
		return richtext.Excerpt(content, n)
	},

	// richtext renders chapter HTML after sanitising it again.
	"richtext": func(content string) template.HTML {
		return template.HTML(richtext.Sanitize(content))
	},

	"date": func(value timestamp) string {
		if value.IsZero() {
			return ""
		}
		return value.Format("02/01/2006")
	},

	"datetime": func(value timestamp) string {
		if value.IsZero() {
			return ""
		}
		return value.Format("02/01/2006 15:04")
	},

	"join": strings.Join,

	"contains": func(list []int, value int) bool {
		return slices.Contains(list, value)
	},

	"selected": func(current, option string) template.HTMLAttr {
		if current == option {
			return "selected"
		}
		return ""
	},

	"checked": func(on bool) template.HTMLAttr {
		if on {
			return "checked"
		}
		return ""
	},
}

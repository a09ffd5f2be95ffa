// Copyright (c) 2026 Etagere. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package query_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/etagere/pkg/query"
)

/*
TestFields verifies splitting on every supported separator.
*/
func TestFields(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{"comma", "a@x.fr,b@x.fr", []string{"a@x.fr", "b@x.fr"}},
		{"mixed", " a@x.fr ; b@x.fr\n c@x.fr,, ", []string{"a@x.fr", "b@x.fr", "c@x.fr"}},
		{"blank", "  , ; ", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, query.Fields(tt.in))
		})
	}
}

/*
TestIntSlice ignores entries that are not integers.
*/
func TestIntSlice(t *testing.T) {
	assert.Equal(t, []int{3, 5}, query.IntSlice([]string{"3", "x", " 5"}))
	assert.Nil(t, query.IntSlice(nil))
}

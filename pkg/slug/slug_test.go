// Copyright (c) 2026 Inkwell Press. All rights reserved.
// Author: engineering@inkwell.press

package slug_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/inkwell-press/inkwell/pkg/slug"
)

func TestFrom(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"simple", "Long Form Essays", "long-form-essays"},
		{"accents", "Crónicas de Café", "cronicas-de-cafe"},
		{"punctuation", "Poetry & Prose!", "poetry-prose"},
		{"consecutive_separators", "a  --  b", "a-b"},
		{"leading_trailing", "  Fiction  ", "fiction"},
		{"digits", "Top 10 Reads", "top-10-reads"},
		{"empty", "", ""},
		{"only_symbols", "!!!", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, slug.From(tt.input))
		})
	}
}

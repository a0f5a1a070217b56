package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		name  string
		title string
		want  string
	}{
		{"simple", "Hello World", "hello-world"},
		{"punctuation", "Smith v. Jones: The Verdict!", "smith-v-jones-the-verdict"},
		{"collapse_dashes", "a  --  b", "a-b"},
		{"leading_trailing", "  Trimmed  ", "trimmed"},
		{"numbers", "Top 10 Rulings of 2025", "top-10-rulings-of-2025"},
		{"empty", "", ""},
		{"only_symbols", "!!!", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Slugify(tt.title))
		})
	}
}

func TestUniqueSlug(t *testing.T) {
	taken := map[string]bool{"annual-review": true, "annual-review-2": true}
	exists := func(slug string) bool { return taken[slug] }

	assert.Equal(t, "fresh", UniqueSlug("fresh", exists))
	assert.Equal(t, "annual-review-3", UniqueSlug("annual-review", exists))
	assert.Equal(t, "untitled", UniqueSlug("", func(string) bool { return false }))
}

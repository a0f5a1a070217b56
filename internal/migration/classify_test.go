package migration

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func strPtr(s string) *string { return &s }

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		url  *string
		want Outcome
	}{
		{"nil_url", nil, OutcomeNone},
		{"empty_url", strPtr(""), OutcomeNone},
		{"legacy_news", strPtr("/images/news/photo.jpg"), OutcomeFilesystem},
		{"legacy_root", strPtr("/images/logo.png"), OutcomeFilesystem},
		{"api_path", strPtr("/api/images/42"), OutcomeAPI},
		{"external_https", strPtr("https://cdn.example.com/a.jpg"), OutcomeExternal},
		{"external_http", strPtr("http://example.com/a.jpg"), OutcomeExternal},
		// 词法判断：http 开头的畸形 URL 仍算 external
		{"external_malformed", strPtr("http:/broken"), OutcomeExternal},
		{"broken_relative", strPtr("photo.jpg"), OutcomeBroken},
		{"broken_other_path", strPtr("/uploads/old/photo.jpg"), OutcomeBroken},
		{"broken_whitespace", strPtr("   "), OutcomeBroken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.url))
		})
	}
}

package catalog_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tunehub/tunehub-server/pkg/catalog"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"simple title", "My First Song", "my-first-song"},
		{"leading and trailing spaces", "  multi   word  ", "multi-word"},
		{"punctuation stripped", "Lost & Found!", "lost-found"},
		{"accented characters stripped", "Chiều Hôm Ấy", "chiu-hm-y"},
		{"existing dashes collapsed", "already--dashed - title", "already-dashed-title"},
		{"dashes trimmed", "---edge---", "edge"},
		{"digits kept", "Track 42", "track-42"},
		{"uppercase lowered", "LOUD", "loud"},
		{"empty input", "", ""},
		{"only strippable characters", "!!!", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, catalog.Slugify(tt.input))
		})
	}
}

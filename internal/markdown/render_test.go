package markdown

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderer_Render(t *testing.T) {
	r := NewRenderer()

	tests := []struct {
		name         string
		src          string
		wantContains []string
		wantAbsent   []string
	}{
		{
			name:         "paragraph",
			src:          "Plain answer.",
			wantContains: []string{"<p>Plain answer.</p>"},
		},
		{
			name:         "emphasis and lists",
			src:          "**Key points**\n\n- one\n- two\n",
			wantContains: []string{"<strong>Key points</strong>", "<ul>", "<li>one</li>", "<li>two</li>"},
		},
		{
			name:         "gfm table",
			src:          "| a | b |\n|---|---|\n| 1 | 2 |\n",
			wantContains: []string{"<table>", "<td>1</td>"},
		},
		{
			name:         "raw html is dropped",
			src:          "<script>alert(1)</script>\n\ntext",
			wantContains: []string{"<p>text</p>"},
			wantAbsent:   []string{"<script>"},
		},
		{
			name: "empty input",
			src:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := r.Render(tt.src)
			require.NoError(t, err)
			for _, want := range tt.wantContains {
				assert.Contains(t, got, want)
			}
			for _, absent := range tt.wantAbsent {
				assert.NotContains(t, got, absent)
			}
		})
	}
}

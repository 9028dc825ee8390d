package backend

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFilter(t *testing.T) {
	tests := []struct {
		name      string
		condition string
		want      Filter
		wantErr   bool
	}{
		{
			name:      "single token",
			condition: `FileType:"docx"`,
			want:      Filter{Name: "FileType", Tokens: []string{`"docx"`}},
		},
		{
			name:      "OR over two tokens",
			condition: `FileType:OR("docx","pdf")`,
			want:      Filter{Name: "FileType", Operator: "OR", Tokens: []string{`"docx"`, `"pdf"`}},
		},
		{
			name:      "AND over two tokens",
			condition: "Tags:AND(t1,t2)",
			want:      Filter{Name: "Tags", Operator: "AND", Tokens: []string{"t1", "t2"}},
		},
		{
			name:      "missing separator",
			condition: "FileType",
			wantErr:   true,
		},
		{
			name:      "empty tokens group",
			condition: "FileType:OR()",
			wantErr:   true,
		},
		{
			name:      "empty value",
			condition: "FileType:",
			wantErr:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseFilter(tt.condition)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseFilter_DecodesPercentEncodedTokens(t *testing.T) {
	token := "ǂǂ74616736"
	condition := "owstaxIdMetadataAllTagsInfo:" + url.QueryEscape(token)

	got, err := ParseFilter(condition)
	require.NoError(t, err)

	assert.Equal(t, []string{token}, got.Tokens)
}

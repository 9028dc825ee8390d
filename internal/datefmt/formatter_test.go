package datefmt

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPrettify(t *testing.T) {
	f := New()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "full datetime with seconds",
			input: "2023-10-05T14:30:00Z",
			want:  "October 5, 2023",
		},
		{
			name:  "fractional seconds",
			input: "2023-01-31T08:15:30.1234567Z",
			want:  "January 31, 2023",
		},
		{
			name:  "minute precision with offset",
			input: "2024-06-01T09:45+02:00",
			want:  "June 1, 2024",
		},
		{
			name:  "embedded in a label",
			input: "Modified 2023-10-05T14:30:00Z by jane",
			want:  "Modified October 5, 2023 by jane",
		},
		{
			name:  "two datetimes",
			input: "2023-10-05T14:30:00Z..2023-11-05T14:30:00Z",
			want:  "October 5, 2023..November 5, 2023",
		},
		{
			name:  "no datetime passes through",
			input: "docx",
			want:  "docx",
		},
		{
			name:  "date without time passes through",
			input: "2023-10-05",
			want:  "2023-10-05",
		},
		{
			name:  "missing offset passes through",
			input: "2023-10-05T14:30:00",
			want:  "2023-10-05T14:30:00",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, f.Prettify(tt.input))
		})
	}
}

func TestPrettify_CustomLayout(t *testing.T) {
	f := New(WithLayout("02.01.2006"))

	assert.Equal(t, "05.10.2023", f.Prettify("2023-10-05T14:30:00Z"))
}

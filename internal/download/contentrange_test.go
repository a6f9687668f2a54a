package download

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseContentRange(t *testing.T) {
	tests := []struct {
		name        string
		header      string
		resumedFrom int64
		want        int64
		wantErr     string
	}{
		{
			name:        "valid resume",
			header:      "bytes 5-9/10",
			resumedFrom: 5,
			want:        10,
		},
		{
			name:        "valid unknown total",
			header:      "bytes 5-99/*",
			resumedFrom: 5,
			want:        100,
		},
		{
			name:        "single byte range",
			header:      "bytes 9-9/10",
			resumedFrom: 9,
			want:        10,
		},
		{
			name:    "missing header",
			header:  "",
			wantErr: "Missing Content-Range",
		},
		{
			name:        "malformed",
			header:      "bytes 5-/10",
			resumedFrom: 5,
			wantErr:     `Invalid Content-Range format "bytes 5-/10"`,
		},
		{
			name:        "wrong unit",
			header:      "pages 5-9/10",
			resumedFrom: 5,
			wantErr:     `Invalid Content-Range format "pages 5-9/10"`,
		},
		{
			name:        "last before first",
			header:      "bytes 9-5/10",
			resumedFrom: 9,
			wantErr:     `Invalid Content-Range returned: "bytes 9-5/10"`,
		},
		{
			name:        "last not below total",
			header:      "bytes 5-9/9",
			resumedFrom: 5,
			wantErr:     `Invalid Content-Range returned: "bytes 5-9/9"`,
		},
		{
			name:        "first does not match request",
			header:      "bytes 5-9/10",
			resumedFrom: 3,
			wantErr:     `Unexpected Content-Range returned ("bytes 5-9/10") for the requested Range ("bytes=3-")`,
		},
		{
			name:        "total does not cover range end",
			header:      "bytes 5-7/10",
			resumedFrom: 5,
			wantErr:     `Unexpected Content-Range returned ("bytes 5-7/10") for the requested Range ("bytes=5-")`,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParseContentRange(tc.header, tc.resumedFrom)
			if tc.wantErr != "" {
				require.Error(t, err)
				var crErr *ContentRangeError
				require.ErrorAs(t, err, &crErr)
				assert.Equal(t, tc.wantErr, crErr.Error())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

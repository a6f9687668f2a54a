package download

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHumanizeBytes(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "0.00 B"},
		{1, "1 B"},
		{12.34, "12.34 B"},
		{1023, "1023.00 B"},
		{1024, "1.00 kB"},
		{1024 * 1024, "1.00 MB"},
		{1536 * 1024, "1.50 MB"},
		{1 << 30, "1.00 GB"},
		{1 << 40, "1.00 TB"},
		{1 << 50, "1.00 PB"},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, HumanizeBytes(tc.in), "input %v", tc.in)
	}
}

func TestHumanizeBytesPrec(t *testing.T) {
	assert.Equal(t, "1.0 kB", HumanizeBytesPrec(1024, 1))
	assert.Equal(t, "2 MB", HumanizeBytesPrec(2<<20, 0))
	assert.Equal(t, "1 B", HumanizeBytesPrec(1, 4))
}

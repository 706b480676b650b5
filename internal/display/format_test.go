package display

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		name  string
		bytes int64
		want  string
	}{
		{"zero", 0, "0 B"},
		{"small bytes", 512, "512 B"},
		{"exactly 1 KiB", 1024, "1.0 KiB"},
		{"1 MiB", 1024 * 1024, "1.0 MiB"},
		{"negative", -2048, "-2.0 KiB"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatBytes(tt.bytes))
		})
	}
}

func TestFormatCount(t *testing.T) {
	assert.Equal(t, "999", FormatCount(999))
	assert.Equal(t, "2,500", FormatCount(2500))
}

func TestFormatPercent(t *testing.T) {
	s, ok := FormatPercent(3, 4)
	assert.True(t, ok)
	assert.Equal(t, "75.0%", s)

	s, ok = FormatPercent(1, 0)
	assert.False(t, ok)
	assert.Equal(t, "n/a", s)
}

func TestFormatDuration(t *testing.T) {
	assert.Equal(t, "15m 30s", FormatDuration(930))
	assert.Equal(t, "0m 05s", FormatDuration(5))
	assert.Equal(t, "unknown", FormatDuration(0))
}

package display

import (
	"fmt"

	"github.com/dustin/go-humanize"
)

// FormatBytes returns a human-readable IEC size (e.g. "1.2 MiB").
func FormatBytes(bytes int64) string {
	if bytes < 0 {
		return "-" + humanize.IBytes(uint64(-bytes))
	}
	return humanize.IBytes(uint64(bytes))
}

// FormatCount renders n with thousands separators (e.g. "2,500").
func FormatCount(n int) string {
	return humanize.Comma(int64(n))
}

// FormatPercent renders part/total as a one-decimal percentage. ok is false
// when total is zero.
func FormatPercent(part, total int) (s string, ok bool) {
	if total <= 0 {
		return "n/a", false
	}
	return fmt.Sprintf("%.1f%%", float64(part)*100/float64(total)), true
}

// FormatDuration renders whole seconds as "14m 05s".
func FormatDuration(seconds int) string {
	if seconds <= 0 {
		return "unknown"
	}
	return fmt.Sprintf("%dm %02ds", seconds/60, seconds%60)
}

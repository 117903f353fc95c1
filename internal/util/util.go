// Package util provides common utility functions used across the decoder tools.
package util

import (
	"fmt"
	"strings"
)

// DefaultHexWidth is the number of bytes per HexDump row when width <= 0.
const DefaultHexWidth = 16

// HexDump renders data as rows of offset, hex bytes and printable ASCII.
//
//	00000000  41 42 00 ff                                      |AB..|
func HexDump(data []byte, width int) string {
	if width <= 0 {
		width = DefaultHexWidth
	}

	var b strings.Builder
	for off := 0; off < len(data); off += width {
		end := off + width
		if end > len(data) {
			end = len(data)
		}
		row := data[off:end]

		fmt.Fprintf(&b, "%08x  ", off)
		for i := 0; i < width; i++ {
			if i < len(row) {
				fmt.Fprintf(&b, "%02x ", row[i])
			} else {
				b.WriteString("   ")
			}
		}
		b.WriteString(" |")
		for _, c := range row {
			if c >= 0x20 && c < 0x7f {
				b.WriteByte(c)
			} else {
				b.WriteByte('.')
			}
		}
		b.WriteString("|\n")
	}
	return b.String()
}

// SanitizeFilename replaces characters that are unsafe in file names with
// underscores. An empty result becomes "unnamed".
func SanitizeFilename(s string) string {
	var b strings.Builder
	for _, r := range strings.TrimSpace(s) {
		switch {
		case r == ' ', r == ':', r == '/', r == '\\', r == '*', r == '?',
			r == '"', r == '<', r == '>', r == '|':
			b.WriteByte('_')
		case r < 0x20 || r == 0x7f:
			// drop control characters
		default:
			b.WriteRune(r)
		}
	}
	out := strings.Trim(b.String(), ".")
	if out == "" {
		return "unnamed"
	}
	return out
}

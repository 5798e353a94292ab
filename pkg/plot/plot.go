// Package plot renders histogram bucket counts as unicode bar strings.
// Glyph choice lives here; the counts and the full/half selection come
// from the driver.
package plot

import "strings"

// Highlight carries the escape sequences the reporter wants wrapped
// around non-zero and zero cells. The zero value renders plain text.
type Highlight struct {
	NonZero string
	Zero    string
	Reset   string
}

var eighths = []rune{' ', '▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

// Quadrant glyphs indexed by [left][right] half-cell height (0..2).
var quads = [3][3]rune{
	{' ', '▗', '▐'},
	{'▖', '▄', '▟'},
	{'▌', '▙', '█'},
}

// Bars renders one cell per bucket, scaled against max into eighth
// blocks. A non-zero count always gets at least the lowest block.
func Bars(counts []uint64, max uint64, h Highlight) string {
	var sb strings.Builder
	for _, c := range counts {
		if c == 0 || max == 0 {
			writeCell(&sb, ' ', h.Zero, h.Reset)
			continue
		}
		idx := (c*8 + max - 1) / max
		writeCell(&sb, eighths[idx], h.NonZero, h.Reset)
	}
	return sb.String()
}

// HalfBars renders two buckets per cell using quadrant glyphs. Only
// legible when max is at most 2, which is when the driver selects it;
// taller counts saturate at the full half-cell.
func HalfBars(counts []uint64, max uint64, h Highlight) string {
	var sb strings.Builder
	for i := 0; i < len(counts); i += 2 {
		l := halfHeight(counts[i], max)
		r := 0
		if i+1 < len(counts) {
			r = halfHeight(counts[i+1], max)
		}
		if l == 0 && r == 0 {
			writeCell(&sb, ' ', h.Zero, h.Reset)
			continue
		}
		writeCell(&sb, quads[l][r], h.NonZero, h.Reset)
	}
	return sb.String()
}

func halfHeight(c, max uint64) int {
	switch {
	case c == 0 || max == 0:
		return 0
	case c*2 <= max:
		return 1
	default:
		return 2
	}
}

func writeCell(sb *strings.Builder, r rune, esc, reset string) {
	if esc == "" {
		sb.WriteRune(r)
		return
	}
	sb.WriteString(esc)
	sb.WriteRune(r)
	sb.WriteString(reset)
}

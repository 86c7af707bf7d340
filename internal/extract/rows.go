package extract

import (
	"math"
	"sort"
	"strings"
)

// ReconstructLines clusters words into text rows by vertical position and
// serializes each row left-to-right. Raw extraction often collapses the
// whitespace between columns; rebuilding rows from geometry restores a
// stable, space-delimited representation that is independent of the
// renderer's internal token order.
func (p *Parser) ReconstructLines(words []Word) []Line {
	if len(words) == 0 {
		return nil
	}

	bucket := p.opts.RowBucket
	rows := make(map[float64][]Word)
	for _, w := range words {
		key := math.Round(w.Bottom/bucket) * bucket
		rows[key] = append(rows[key], w)
	}

	keys := make([]float64, 0, len(rows))
	for k := range rows {
		keys = append(keys, k)
	}
	sort.Float64s(keys)

	lines := make([]Line, 0, len(keys))
	for _, k := range keys {
		ws := rows[k]
		sort.SliceStable(ws, func(i, j int) bool { return ws[i].Left < ws[j].Left })

		parts := make([]string, 0, len(ws))
		for _, w := range ws {
			parts = append(parts, w.Text)
		}
		lines = append(lines, Line{
			Y:     k,
			Text:  strings.Join(parts, " "),
			Words: ws,
		})
	}
	return lines
}

// JoinLines flattens reconstructed lines into one newline-separated page
// text.
func JoinLines(lines []Line) string {
	var b strings.Builder
	for i, ln := range lines {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(ln.Text)
	}
	return b.String()
}

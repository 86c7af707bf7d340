package extract

import (
	"regexp"
	"strconv"
)

var reAllDigits = regexp.MustCompile(`^\d+$`)

// ResolveRowQuantities maps the numeric tokens of a part's row onto the
// discovered order columns. For each order number, in ascending discovered
// order, the nearest numeric token within the column tolerance wins; a
// column with no token nearby is an explicit blank cell and resolves to
// zero. Blank cells shift the remaining tokens left, which is exactly why a
// purely positional assignment misfiles them and a geometric one does not.
func (p *Parser) ResolveRowQuantities(words []Word, anchor Word, numbers []string, cols ColumnMap) []int {
	var row []Word
	for _, w := range words {
		if abs(w.Bottom-anchor.Bottom) <= p.opts.RowBand && reAllDigits.MatchString(w.Text) {
			row = append(row, w)
		}
	}

	out := make([]int, len(numbers))
	for i, num := range numbers {
		center, ok := cols[num]
		if !ok {
			continue
		}
		best := -1
		bestDist := p.opts.ColumnTolerance
		for j, w := range row {
			d := abs(w.Center() - center)
			if d <= bestDist {
				best = j
				bestDist = d
			}
		}
		if best >= 0 {
			out[i], _ = strconv.Atoi(row[best].Text)
		}
	}
	return out
}

// ParseQuantityFields parses whitespace-separated quantity tokens, padded or
// truncated to the expected count.
func ParseQuantityFields(fields []string, expected int) []int {
	out := make([]int, expected)
	for i := 0; i < expected && i < len(fields); i++ {
		n, err := strconv.Atoi(fields[i])
		if err != nil {
			continue
		}
		out[i] = n
	}
	return out
}

// ParseQuantityVector parses a concatenated digit string, the legacy layout
// with no separators between per-order quantities. When the string length
// equals the expected count each character is one order's quantity; a single
// expected order takes the whole string; anything else takes the leading
// digits and zero-pads the remainder.
func ParseQuantityVector(digits string, expected int) []int {
	out := make([]int, expected)
	if expected == 0 || !reAllDigits.MatchString(digits) {
		return out
	}
	switch {
	case len(digits) == expected:
		for i := 0; i < expected; i++ {
			out[i] = int(digits[i] - '0')
		}
	case expected == 1:
		out[0], _ = strconv.Atoi(digits)
	default:
		for i := 0; i < expected && i < len(digits); i++ {
			out[i] = int(digits[i] - '0')
		}
	}
	return out
}

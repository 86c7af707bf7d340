package extract

import (
	"regexp"
	"sort"
	"strings"
)

var (
	// rePartNumber matches the report's part identifiers, e.g.
	// "68101-0E120-00".
	rePartNumber = regexp.MustCompile(`\d{5}-[A-Z0-9]{5}-\d{2}`)

	reOrderNumberRun   = regexp.MustCompile(`(?i)order\s*numbers?\s*:?\s*((?:\d{3}\b[ \t]*)+)`)
	reThreeDigits      = regexp.MustCompile(`\d{3}`)
	reThreeDigitToken  = regexp.MustCompile(`\b(\d{3})\b`)
	reBeforePartNumber = regexp.MustCompile(`(?:^|[^0-9])(\d{3})\s+(?:` + rePartNumber.String() + `)`)
	reTrailingDigits   = regexp.MustCompile(`(\d+)\s*$`)
)

// DiscoverOrderNumbers finds the per-order sequence numbers listed on the
// page. The cascade covers every observed report variant, down to a single
// default order when the page shows no numbering at all. The result is
// de-duplicated and sorted ascending; that order fixes the index every
// quantity vector is aligned to.
func (p *Parser) DiscoverOrderNumbers(text string, lines []Line, series string) []string {
	found, ok := firstList(text, lines,
		matchOrderNumberRun,
		matchOrderNumberLine,
		matchNumbersBeforeParts,
		matchRunBetweenSeriesAndParts(series),
		matchCharsBeforeFirstPart,
	)
	if !ok {
		p.debugf("orders: no order numbers found, defaulting to 001")
		return []string{"001"}
	}
	return dedupSorted(found)
}

// matchOrderNumberRun captures the run of 3-digit groups directly after the
// "Order Number" label.
func matchOrderNumberRun(text string, _ []Line) ([]string, bool) {
	m := reOrderNumberRun.FindStringSubmatch(text)
	if m == nil {
		return nil, false
	}
	return reThreeDigits.FindAllString(m[1], -1), true
}

// matchOrderNumberLine scans the first line carrying the label for 3-digit
// tokens in 1–999.
func matchOrderNumberLine(_ string, lines []Line) ([]string, bool) {
	for _, ln := range lines {
		if !strings.Contains(strings.ToLower(ln.Text), "order number") {
			continue
		}
		var out []string
		for _, m := range reThreeDigitToken.FindAllStringSubmatch(ln.Text, -1) {
			if n := atoi(m[1]); n >= 1 && n <= 999 {
				out = append(out, m[1])
			}
		}
		return out, len(out) > 0
	}
	return nil, false
}

// matchNumbersBeforeParts picks up 3-digit tokens sitting immediately before
// a part-number pattern.
func matchNumbersBeforeParts(text string, _ []Line) ([]string, bool) {
	var out []string
	for _, m := range reBeforePartNumber.FindAllStringSubmatch(text, -1) {
		out = append(out, m[1])
	}
	return out, len(out) > 0
}

// matchRunBetweenSeriesAndParts splits the trailing digit run between the
// order-series token and the first part number into 3-digit groups.
func matchRunBetweenSeriesAndParts(series string) listMatcher {
	return func(text string, _ []Line) ([]string, bool) {
		if series == "" {
			return nil, false
		}
		start := strings.Index(text, series)
		if start < 0 {
			return nil, false
		}
		start += len(series)
		partLoc := rePartNumber.FindStringIndex(text[start:])
		if partLoc == nil {
			return nil, false
		}
		between := text[start : start+partLoc[0]]
		m := reTrailingDigits.FindStringSubmatch(between)
		if m == nil || len(m[1])%3 != 0 {
			return nil, false
		}
		var out []string
		for i := 0; i < len(m[1]); i += 3 {
			out = append(out, m[1][i:i+3])
		}
		return out, true
	}
}

// matchCharsBeforeFirstPart takes the 3 characters right before the first
// part-number occurrence, if they happen to be digits.
func matchCharsBeforeFirstPart(text string, _ []Line) ([]string, bool) {
	loc := rePartNumber.FindStringIndex(text)
	if loc == nil || loc[0] < 3 {
		return nil, false
	}
	run := text[loc[0]-3 : loc[0]]
	if !reThreeDigits.MatchString(run) {
		return nil, false
	}
	return []string{run}, true
}

func dedupSorted(in []string) []string {
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, v := range in {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

// LocateOrderColumns finds the header row listing the order numbers and
// records each number's horizontal pixel center, establishing the column
// boundaries later used to align quantities. A number with no exact-match
// header word gets no entry; the quantity resolver treats the missing column
// as an explicit zero.
func (p *Parser) LocateOrderColumns(words []Word, numbers []string) ColumnMap {
	var sum float64
	var count int
	for _, w := range words {
		lower := strings.ToLower(w.Text)
		if strings.Contains(lower, "order") || strings.Contains(lower, "number") {
			sum += w.Bottom
			count++
		}
	}
	if count == 0 {
		return nil
	}
	headerY := sum / float64(count)

	var band []Word
	for _, w := range words {
		if abs(w.Bottom-headerY) <= p.opts.HeaderBand {
			band = append(band, w)
		}
	}

	cols := make(ColumnMap, len(numbers))
	for _, num := range numbers {
		for _, w := range band {
			if w.Text == num {
				cols[num] = w.Center()
				break
			}
		}
		if _, ok := cols[num]; !ok {
			p.debugf("orders: no header column for order %s", num)
		}
	}
	if len(cols) == 0 {
		return nil
	}
	return cols
}

func abs(f float64) float64 {
	if f < 0 {
		return -f
	}
	return f
}

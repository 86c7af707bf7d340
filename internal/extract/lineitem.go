package extract

import (
	"regexp"
	"strconv"
	"strings"
)

// fallbackContext is how far past a part number the no-separator decomposer
// looks for the rest of the row.
const fallbackContext = 200

var (
	reLinePartPrefix = regexp.MustCompile(`^(` + rePartNumber.String() + `)\s*(.*)$`)

	// The three decreasing-specificity row patterns applied to the text
	// after the part number. First match wins per line.
	reRowFull     = regexp.MustCompile(`^\s*(.+?)\s+(\d{5})\s+([A-Z0-9]{2,6})\s+(\d[\d ]*)$`)
	reRowNoQty    = regexp.MustCompile(`^\s*(.+?)\s+(\d{5})\s+([A-Z0-9]{2,6})\s*$`)
	reRowGreedy   = regexp.MustCompile(`^\s*(.+)\s+(\d{5})\s+([A-Z0-9]{2,6})\s+(\d[\d ]*)$`)
	reRowPatterns = []*regexp.Regexp{reRowFull, reRowNoQty, reRowGreedy}

	// Concatenated-run variant: the whole row with no separators at all.
	// The kanban is a 2-4 letter core with at most two trailing digits, so
	// it cannot swallow the quantity run that follows with no delimiter.
	reRowConcat = regexp.MustCompile(`^\s*([A-Z][A-Z0-9 .\-]*?)\s*(\d{5})\s*([A-Z]{2,4}\d{0,2})\s*(\d+)`)

	reFiveDigits  = regexp.MustCompile(`\d{5}`)
	reLotWithUnit = regexp.MustCompile(`^(\d{5})[A-Z]`)
	reKanbanRun   = regexp.MustCompile(`^([A-Z]{2,4}\d{0,2})`)
	reLeadDigits  = regexp.MustCompile(`^(\d+)`)
)

// ExtractLineItems decomposes the page's candidate rows into line items.
// The primary path works on reconstructed lines; the raw-text fallback runs
// only when the primary path yields nothing at all.
func (p *Parser) ExtractLineItems(page Page, lines []Line, numbers []string, cols ColumnMap) []LineItem {
	items := p.extractFromLines(page.Words, lines, numbers, cols)
	if len(items) == 0 {
		items = p.extractFromRawText(page.Text, numbers)
	}
	return items
}

// extractFromLines is the clean-layout path: each line starting with a part
// number is split against the row patterns in order of specificity.
func (p *Parser) extractFromLines(words []Word, lines []Line, numbers []string, cols ColumnMap) []LineItem {
	var items []LineItem
	skipped := 0
	for _, ln := range lines {
		m := reLinePartPrefix.FindStringSubmatch(ln.Text)
		if m == nil {
			continue
		}
		partNumber, rest := m[1], m[2]

		item, ok := p.parseRow(partNumber, rest)
		if !ok {
			skipped++
			p.debugf("items: row matched no pattern: %q", ln.Text)
			continue
		}

		item.Quantities = p.rowQuantities(words, ln, partNumber, item.Quantities, numbers, cols)
		items = append(items, item)
	}
	if skipped > 0 {
		p.debugf("items: %d candidate row(s) skipped", skipped)
	}
	return items
}

// parseRow tries the three row patterns against the text after the part
// number. The Quantities field holds the raw captured token run at this
// point; the caller resolves it against the column map or the expected
// count.
func (p *Parser) parseRow(partNumber, rest string) (LineItem, bool) {
	for _, re := range reRowPatterns {
		m := re.FindStringSubmatch(rest)
		if m == nil {
			continue
		}
		item := LineItem{
			PartNumber:  partNumber,
			Description: strings.TrimSpace(m[1]),
			LotQty:      atoiSafe(m[2]),
			KanbanCode:  m[3],
		}
		if len(m) > 4 {
			item.Quantities = rawFieldInts(m[4])
		}
		return item, true
	}
	return LineItem{}, false
}

// rawFieldInts keeps the captured digit tokens as integers without any
// length normalization; alignment happens later.
func rawFieldInts(run string) []int {
	fields := strings.Fields(run)
	out := make([]int, 0, len(fields))
	for _, f := range fields {
		n, err := strconv.Atoi(f)
		if err != nil {
			continue
		}
		out = append(out, n)
	}
	return out
}

// rowQuantities aligns a row's quantities to the order columns. With a
// column map the row is re-read geometrically at the part number's vertical
// position; otherwise the captured token run is padded or truncated to the
// expected count.
func (p *Parser) rowQuantities(words []Word, ln Line, partNumber string, captured []int, numbers []string, cols ColumnMap) []int {
	if len(cols) > 0 {
		if anchor, ok := findAnchor(ln.Words, partNumber); ok {
			return p.ResolveRowQuantities(words, anchor, numbers, cols)
		}
	}
	fields := make([]string, len(captured))
	for i, n := range captured {
		fields[i] = strconv.Itoa(n)
	}
	return ParseQuantityFields(fields, len(numbers))
}

// findAnchor locates the word carrying the part number on the row.
func findAnchor(words []Word, partNumber string) (Word, bool) {
	for _, w := range words {
		if strings.HasPrefix(w.Text, partNumber) {
			return w, true
		}
	}
	return Word{}, false
}

// extractFromRawText is the degraded path for pages whose reconstructed
// lines produced nothing: scan the raw text for part numbers and decompose
// the characters that follow each one.
func (p *Parser) extractFromRawText(text string, numbers []string) []LineItem {
	locs := rePartNumber.FindAllStringIndex(text, -1)
	var items []LineItem
	for _, loc := range locs {
		partNumber := text[loc[0]:loc[1]]
		end := loc[1] + fallbackContext
		if end > len(text) {
			end = len(text)
		}
		context := text[loc[1]:end]

		item := p.decomposeContext(partNumber, context, len(numbers))
		items = append(items, item)
	}
	return items
}

// decomposeContext applies the combined no-separator pattern first, then
// falls back to piecewise isolation. Pieces that cannot be isolated stay
// absent, and quantities default to an all-zero vector rather than aborting
// the row.
func (p *Parser) decomposeContext(partNumber, context string, expected int) LineItem {
	item := LineItem{
		PartNumber: partNumber,
		Quantities: make([]int, expected),
	}

	if m := reRowConcat.FindStringSubmatch(context); m != nil {
		item.Description = strings.TrimSpace(m[1])
		item.LotQty = atoiSafe(m[2])
		item.KanbanCode = m[3]
		item.Quantities = ParseQuantityVector(m[4], expected)
		return item
	}

	lotLoc := reFiveDigits.FindStringIndex(context)
	if lotLoc == nil {
		p.debugf("items: no lot quantity near part %s", partNumber)
		return item
	}
	item.Description = strings.TrimSpace(context[:lotLoc[0]])

	rest := context[lotLoc[0]:]
	m := reLotWithUnit.FindStringSubmatch(rest)
	if m == nil {
		return item
	}
	item.LotQty = atoiSafe(m[1])

	rest = rest[len(m[1]):]
	km := reKanbanRun.FindStringSubmatch(rest)
	if km == nil {
		return item
	}
	item.KanbanCode = km[1]

	rest = rest[len(km[1]):]
	if dm := reLeadDigits.FindStringSubmatch(rest); dm != nil {
		item.Quantities = ParseQuantityVector(dm[1], expected)
	}
	return item
}

func atoiSafe(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}

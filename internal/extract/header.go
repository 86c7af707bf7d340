package extract

import (
	"regexp"
	"strings"
	"time"
	"unicode/utf8"
)

// headerScanWindow bounds the "near the top of the page" fallbacks.
const headerScanWindow = 500

var (
	// The capture groups stay case-sensitive on purpose: field values are
	// printed in uppercase, and a case-folded class would swallow prose.
	reSupplierNameLabel = regexp.MustCompile(`[Ss]upplier\s*(?:[Nn]ame)?\s*:?\s+([A-Z][A-Z0-9&.\-]+(?: [A-Z][A-Z0-9&.\-]+)*)`)
	reSupplierCodeLabel = regexp.MustCompile(`(?i)supplier\s*(?:code|no\.?)\s*:?\s*(\d{5})\b`)
	reDockLabel         = regexp.MustCompile(`[Dd]ock\s*(?:[Cc]ode)?\s*:?\s*([A-Z][A-Z0-9])\b`)

	// A supplier code run straight into a dock code with no delimiter, the
	// concatenated-run report variant.
	reCodeDockConcat = regexp.MustCompile(`\b(\d{5})([A-Z][A-Z0-9])\b`)

	reDockToken     = regexp.MustCompile(`\b([A-Z][A-Z0-9])\b`)
	reCodeAfterName = regexp.MustCompile(`^\s*(\d{5})\b`)

	reSeriesLabel   = regexp.MustCompile(`(?i)order\s*series\s*:?\s*(\d{8})\b`)
	reSeriesNoSlash = regexp.MustCompile(`(?:^|[^/\d])(202\d{5})(?:[^/\d]|$)`)
	reSeriesAny     = regexp.MustCompile(`(202\d{5})`)

	reBareDate = regexp.MustCompile(`\b(\d{1,2}/\d{1,2}/\d{2,4})\b`)

	// Trailing scalar labels that bleed into a label-anchored name capture
	// when the source row had no column gap left to repair.
	reNameTrim = regexp.MustCompile(`(?i)\s+(?:supplier|dock|order|code).*$`)
)

// dateLabels are the four header timestamp cascades, label first.
var dateLabels = map[string]*regexp.Regexp{
	"transmit": regexp.MustCompile(`(?i)transmit(?:tal)?\s*(?:date)?\s*:?\s*(\d{1,2}/\d{1,2}(?:/\d{2,4})?)(?:\s+(\d{1,2}:\d{2}))?`),
	"arrive":   regexp.MustCompile(`(?i)arriv(?:e|al)\s*(?:date)?\s*:?\s*(\d{1,2}/\d{1,2}(?:/\d{2,4})?)(?:\s+(\d{1,2}:\d{2}))?`),
	"depart":   regexp.MustCompile(`(?i)depart(?:ure)?\s*(?:date)?\s*:?\s*(\d{1,2}/\d{1,2}(?:/\d{2,4})?)(?:\s+(\d{1,2}:\d{2}))?`),
	"unload":   regexp.MustCompile(`(?i)unload(?:ing)?\s*(?:date)?\s*:?\s*(\d{1,2}/\d{1,2}(?:/\d{2,4})?)(?:\s+(\d{1,2}:\d{2}))?`),
}

// ExtractHeader resolves the scalar header fields from reconstructed page
// text. Every field is an ordered cascade; the first matching pattern wins
// and a full miss leaves the field absent.
func (p *Parser) ExtractHeader(text string) Header {
	var h Header

	h.SupplierName, _ = first(text,
		p.matchKnownSupplier,
		matchSupplierNameLabel,
	)
	if h.SupplierName == "" {
		p.debugf("header: supplier name not found")
	}

	h.SupplierCode, _ = first(text,
		matchRegexpGroup(reSupplierCodeLabel, 1),
		matchRegexpGroup(reCodeDockConcat, 1),
		p.matchCodeAfterKnownSupplier,
	)
	if h.SupplierCode == "" {
		p.debugf("header: supplier code not found")
	}

	h.DockCode, _ = first(text,
		matchRegexpGroup(reDockLabel, 1),
		matchRegexpGroup(reCodeDockConcat, 2),
		matchLeadingDockToken,
	)
	if h.DockCode == "" {
		p.debugf("header: dock code not found")
	}

	h.OrderSeries, _ = first(text,
		matchRegexpGroup(reSeriesLabel, 1),
		matchRegexpGroup(reSeriesNoSlash, 1),
		matchRegexpGroup(reSeriesAny, 1),
		matchDigitsAfterDock(h.DockCode),
	)
	if h.OrderSeries == "" {
		p.debugf("header: order series not found")
	}

	h.TransmitAt = p.matchDateTime(text, "transmit")
	if h.TransmitAt.IsZero() {
		h.TransmitAt = p.matchBareDateNearTop(text)
	}
	h.ArriveAt = p.matchDateTime(text, "arrive")
	h.DepartAt = p.matchDateTime(text, "depart")
	h.UnloadAt = p.matchDateTime(text, "unload")

	return h
}

// matchKnownSupplier scans the allow-list for a name the page contains.
func (p *Parser) matchKnownSupplier(text string) (string, bool) {
	upper := strings.ToUpper(text)
	for _, name := range p.opts.KnownSuppliers {
		if strings.Contains(upper, strings.ToUpper(name)) {
			return name, true
		}
	}
	return "", false
}

// matchCodeAfterKnownSupplier finds a 5-digit run right after a known
// supplier name, the "known name + 5 digits" concatenation variant.
func (p *Parser) matchCodeAfterKnownSupplier(text string) (string, bool) {
	upper := strings.ToUpper(text)
	for _, name := range p.opts.KnownSuppliers {
		idx := strings.Index(upper, strings.ToUpper(name))
		if idx < 0 {
			continue
		}
		rest := text[idx+len(name):]
		if m := reCodeAfterName.FindStringSubmatch(rest); m != nil {
			return m[1], true
		}
	}
	return "", false
}

// matchLeadingDockToken takes the first alpha-leading 2-character token seen
// in the opening stretch of the page.
func matchLeadingDockToken(text string) (string, bool) {
	if m := reDockToken.FindStringSubmatch(topWindow(text)); m != nil {
		return m[1], true
	}
	return "", false
}

// topWindow returns the opening stretch of the page, cut back to a rune
// boundary so a multi-byte character straddling the limit is dropped whole.
func topWindow(text string) string {
	if len(text) <= headerScanWindow {
		return text
	}
	end := headerScanWindow
	for end > 0 && !utf8.RuneStart(text[end]) {
		end--
	}
	return text[:end]
}

// matchDigitsAfterDock anchors the order series on an already-resolved dock
// code token.
func matchDigitsAfterDock(dock string) matcher {
	return func(text string) (string, bool) {
		if dock == "" {
			return "", false
		}
		re := regexp.MustCompile(`\b` + regexp.QuoteMeta(dock) + `\s*(\d{8})\b`)
		if m := re.FindStringSubmatch(text); m != nil {
			return m[1], true
		}
		return "", false
	}
}

// matchSupplierNameLabel captures a label-anchored text run, trimmed back to
// the name itself when the row had no whitespace left between columns.
func matchSupplierNameLabel(text string) (string, bool) {
	m := reSupplierNameLabel.FindStringSubmatch(text)
	if m == nil {
		return "", false
	}
	v := strings.TrimSpace(reNameTrim.ReplaceAllString(m[1], ""))
	return v, v != ""
}

// matchRegexpGroup adapts a compiled pattern and capture-group index into a
// cascade step.
func matchRegexpGroup(re *regexp.Regexp, group int) matcher {
	return func(text string) (string, bool) {
		m := re.FindStringSubmatch(text)
		if m == nil || m[group] == "" {
			return "", false
		}
		v := strings.TrimSpace(m[group])
		return v, v != ""
	}
}

// matchDateTime resolves one label-anchored date+time pair into a single
// timestamp. A date with no year gets the current year; this mirrors the
// source report, which omits the year on everything but the order series.
func (p *Parser) matchDateTime(text, field string) time.Time {
	re := dateLabels[field]
	m := re.FindStringSubmatch(text)
	if m == nil {
		p.debugf("header: %s date not found", field)
		return time.Time{}
	}
	return p.combineDateTime(m[1], m[2])
}

// matchBareDateNearTop is the transmit-date fallback: the first bare date in
// the opening stretch of the page.
func (p *Parser) matchBareDateNearTop(text string) time.Time {
	m := reBareDate.FindStringSubmatch(topWindow(text))
	if m == nil {
		return time.Time{}
	}
	return p.combineDateTime(m[1], "")
}

// combineDateTime parses "M/D", "M/D/YY" or "M/D/YYYY" plus an optional
// "HH:MM" into one timestamp.
func (p *Parser) combineDateTime(date, clock string) time.Time {
	parts := strings.Split(date, "/")
	if len(parts) < 2 {
		return time.Time{}
	}
	month := atoi(parts[0])
	day := atoi(parts[1])
	if month < 1 || month > 12 || day < 1 || day > 31 {
		return time.Time{}
	}

	year := p.opts.Now().Year()
	if len(parts) == 3 {
		year = atoi(parts[2])
		if year < 100 {
			year += 2000
		}
	}

	hour, minute := 0, 0
	if clock != "" {
		if hm := strings.SplitN(clock, ":", 2); len(hm) == 2 {
			hour = atoi(hm[0])
			minute = atoi(hm[1])
		}
	}
	return time.Date(year, time.Month(month), day, hour, minute, 0, 0, time.UTC)
}

func atoi(s string) int {
	n := 0
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0
		}
		n = n*10 + int(r-'0')
	}
	return n
}

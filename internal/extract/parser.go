// Package extract reconstructs structured orders from the positioned word
// stream of an order-summary report page. The report declares no schema: the
// pipeline rebuilds text rows from word geometry, resolves header fields
// through ordered pattern cascades, locates the per-order quantity columns
// by their pixel centers, and assembles one order per discovered order
// number. Each page is parsed independently and every value is created fresh
// per call, so pages can later be processed in parallel without
// coordination.
package extract

import (
	"log"
)

// Parser turns pages into orders. It is stateless across calls; the only
// data it carries are the configured tolerances and the supplier allow-list.
type Parser struct {
	opts Options
}

// NewParser creates a parser with the given options. Zero-value fields fall
// back to the report defaults.
func NewParser(opts Options) *Parser {
	return &Parser{opts: opts.normalized()}
}

// ParsePage extracts all orders from one page. Absent header fields and
// unparseable rows degrade to missing values; they never fail the page.
func (p *Parser) ParsePage(page Page) []Order {
	lines := p.ReconstructLines(page.Words)

	text := page.Text
	if len(lines) > 0 {
		text = JoinLines(lines)
	}

	header := p.ExtractHeader(text)
	numbers := p.DiscoverOrderNumbers(text, lines, header.OrderSeries)
	cols := p.LocateOrderColumns(page.Words, numbers)
	items := p.ExtractLineItems(page, lines, numbers, cols)

	return AssembleOrders(header, numbers, items)
}

// ParseDocument extracts orders from every page in order. A fault while
// parsing one page is caught at the page boundary and that page contributes
// zero orders; the rest of the document is unaffected.
func (p *Parser) ParseDocument(pages []Page) []Order {
	var orders []Order
	for _, page := range pages {
		orders = append(orders, p.parsePageSafe(page)...)
	}
	return orders
}

func (p *Parser) parsePageSafe(page Page) (orders []Order) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("extract: page %d failed: %v", page.Number, r)
			orders = nil
		}
	}()
	return p.ParsePage(page)
}

// debugf logs low-severity pipeline events (cascade misses, skipped rows)
// when debug logging is enabled.
func (p *Parser) debugf(format string, args ...any) {
	if p.opts.Debug {
		log.Printf("extract: "+format, args...)
	}
}

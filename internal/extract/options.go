package extract

import "time"

// Geometric tolerances, tuned against the observed report's font metrics.
// All values are in page units of the incoming word coordinates.
const (
	// DefaultRowBucket is the vertical quantization step used to cluster
	// words into text rows.
	DefaultRowBucket = 5.0

	// DefaultHeaderBand is how far a word may sit from the order-number
	// header row's average vertical position and still belong to it.
	DefaultHeaderBand = 10.0

	// DefaultRowBand is how far a word may sit from a part-number word's
	// vertical position and still count as part of the same item row.
	DefaultRowBand = 5.0

	// DefaultColumnTolerance is the maximum horizontal distance between a
	// numeric token and a column center for the token to be assigned to
	// that column.
	DefaultColumnTolerance = 30.0
)

// Options configures a Parser.
type Options struct {
	RowBucket       float64
	HeaderBand      float64
	RowBand         float64
	ColumnTolerance float64

	// KnownSuppliers is the allow-list tried first by the supplier-name
	// cascade, and the anchor for the name-adjacent supplier-code fallback.
	KnownSuppliers []string

	// Now supplies the wall clock used to default the year of month/day-only
	// date fields. Overridable for tests.
	Now func() time.Time

	// Debug enables low-severity logging of cascade misses and skipped rows.
	Debug bool
}

// DefaultOptions returns the tolerances and supplier list the report format
// was tuned against.
func DefaultOptions() Options {
	return Options{
		RowBucket:       DefaultRowBucket,
		HeaderBand:      DefaultHeaderBand,
		RowBand:         DefaultRowBand,
		ColumnTolerance: DefaultColumnTolerance,
		KnownSuppliers: []string{
			"VITRO AUTOMOTIVE",
			"AGC AUTOMOTIVE",
			"CENTRAL GLASS",
			"GUARDIAN GLASS",
			"PILKINGTON NA",
		},
		Now: time.Now,
	}
}

// normalized fills zero-value fields with defaults so a partially populated
// Options literal behaves sensibly.
func (o Options) normalized() Options {
	def := DefaultOptions()
	if o.RowBucket <= 0 {
		o.RowBucket = def.RowBucket
	}
	if o.HeaderBand <= 0 {
		o.HeaderBand = def.HeaderBand
	}
	if o.RowBand <= 0 {
		o.RowBand = def.RowBand
	}
	if o.ColumnTolerance <= 0 {
		o.ColumnTolerance = def.ColumnTolerance
	}
	if o.KnownSuppliers == nil {
		o.KnownSuppliers = def.KnownSuppliers
	}
	if o.Now == nil {
		o.Now = def.Now
	}
	return o
}

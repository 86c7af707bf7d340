package extract

import (
	"time"
)

// Word is a single positioned token on a page. Coordinates are top-down page
// units: Left/Right grow rightward, Top/Bottom grow downward. Words are
// read-only to every stage of the pipeline.
type Word struct {
	Text   string  `json:"text"`
	Left   float64 `json:"left"`
	Right  float64 `json:"right"`
	Top    float64 `json:"top"`
	Bottom float64 `json:"bottom"`
}

// Center returns the horizontal pixel center of the word.
func (w Word) Center() float64 {
	return w.Left + (w.Right-w.Left)/2
}

// Page is the per-page input to the parser: the flattened text as delivered
// by the source renderer plus the positioned word list. Both refer to the
// same page in the same coordinate system.
type Page struct {
	Number int    `json:"number"`
	Text   string `json:"text"`
	Words  []Word `json:"words"`
}

// Line is one reconstructed text row: the words of a vertical cluster in
// left-to-right order, joined with single spaces.
type Line struct {
	Y     float64 `json:"y"`
	Text  string  `json:"text"`
	Words []Word  `json:"words"`
}

// Header carries the page-level scalar fields. A zero string or zero
// time.Time means the corresponding cascade matched nothing.
type Header struct {
	SupplierName string    `json:"supplier_name,omitempty"`
	SupplierCode string    `json:"supplier_code,omitempty"`
	DockCode     string    `json:"dock_code,omitempty"`
	OrderSeries  string    `json:"order_series,omitempty"`
	TransmitAt   time.Time `json:"transmit_at,omitzero"`
	ArriveAt     time.Time `json:"arrive_at,omitzero"`
	DepartAt     time.Time `json:"depart_at,omitzero"`
	UnloadAt     time.Time `json:"unload_at,omitzero"`
}

// ColumnMap maps an order number to the horizontal pixel center of its
// header column. Built once per page and never mutated afterwards.
type ColumnMap map[string]float64

// LineItem is one decomposed part row. Quantities is index-aligned with the
// page's sorted order-number list and always has exactly that length.
type LineItem struct {
	PartNumber  string `json:"part_number"`
	Description string `json:"description,omitempty"`
	LotQty      int    `json:"lot_qty,omitempty"`
	KanbanCode  string `json:"kanban_code,omitempty"`
	Quantities  []int  `json:"quantities"`
}

// Order is one logical order: the page header fields plus the items whose
// quantity for this order number is positive. Orders with zero items are
// never emitted.
type Order struct {
	Header
	OrderNumber string      `json:"order_number"`
	Items       []OrderItem `json:"items"`
}

// OrderItem is one part line attached to a specific order.
type OrderItem struct {
	PartNumber  string `json:"part_number"`
	Description string `json:"description,omitempty"`
	LotQty      int    `json:"lot_qty,omitempty"`
	KanbanCode  string `json:"kanban_code,omitempty"`
	RawKanban   string `json:"raw_kanban,omitempty"`
	PlannedQty  int    `json:"planned_qty"`
}

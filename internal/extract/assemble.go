package extract

import "strings"

// AssembleOrders cross-products the discovered order numbers with the
// discovered line items: one order per number, carrying every item whose
// quantity at that number's index is positive. Orders left with no items are
// dropped.
func AssembleOrders(header Header, numbers []string, items []LineItem) []Order {
	orders := make([]Order, 0, len(numbers))
	for i, num := range numbers {
		order := Order{
			Header:      header,
			OrderNumber: num,
		}
		for _, item := range items {
			if i >= len(item.Quantities) || item.Quantities[i] <= 0 {
				continue
			}
			order.Items = append(order.Items, OrderItem{
				PartNumber:  item.PartNumber,
				Description: item.Description,
				LotQty:      item.LotQty,
				KanbanCode:  strings.ToUpper(strings.TrimSpace(item.KanbanCode)),
				RawKanban:   item.KanbanCode,
				PlannedQty:  item.Quantities[i],
			})
		}
		if len(order.Items) == 0 {
			continue
		}
		orders = append(orders, order)
	}
	return orders
}

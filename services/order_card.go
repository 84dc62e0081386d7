package services

import (
	"fmt"
	"strings"

	"foodcart/models"

	"github.com/shopspring/decimal"
)

// OrderCardContent is the text sent to the admin chat for an order.
type OrderCardContent struct {
	Text string
}

// BuildAdminOrderCard renders an order and its line items. Prices are the
// current catalog prices.
func BuildAdminOrderCard(o *models.Order, elements []models.OrderElement) OrderCardContent {
	var b strings.Builder
	fmt.Fprintf(&b, "New order #%d\n\n", o.ID)
	fmt.Fprintf(&b, "Customer: %s %s\n", o.Firstname, o.Lastname)
	fmt.Fprintf(&b, "Phone: %s\n", o.PhoneNumber)
	fmt.Fprintf(&b, "Address: %s\n", o.Address)

	if len(elements) == 0 {
		b.WriteString("\nNo items yet")
		return OrderCardContent{Text: b.String()}
	}
	b.WriteString("\n")
	total := decimal.Zero
	for _, e := range elements {
		name := fmt.Sprintf("product #%d", e.ProductID)
		if e.Product != nil {
			name = e.Product.Name
		}
		sub := e.Subtotal()
		total = total.Add(sub)
		fmt.Fprintf(&b, "%s x%d = %s\n", name, e.Quantity, sub.StringFixed(PriceDecimalPlaces))
	}
	fmt.Fprintf(&b, "\nTotal: %s", total.StringFixed(PriceDecimalPlaces))
	return OrderCardContent{Text: b.String()}
}

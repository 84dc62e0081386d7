package models

import (
	"fmt"

	"github.com/shopspring/decimal"
)

type CreateOrderInput struct {
	Firstname   string
	Lastname    string
	PhoneNumber string
	Address     string
}

// Order is a customer order. PhoneNumber is stored in E.164 form and is
// unique across all orders.
type Order struct {
	ID          int64
	Firstname   string
	Lastname    string
	PhoneNumber string
	Address     string
}

func (o Order) String() string {
	return fmt.Sprintf("Order %s %s %s", o.Firstname, o.Lastname, o.Address)
}

// OrderElement is one line item. It keeps no price of its own: Product
// reflects the catalog row as it is now.
type OrderElement struct {
	ID        int64
	OrderID   int64
	ProductID int64
	Quantity  int
	Product   *Product // set by listing queries
}

func (e OrderElement) String() string {
	name := fmt.Sprintf("product #%d", e.ProductID)
	if e.Product != nil {
		name = e.Product.Name
	}
	return fmt.Sprintf("In order #%d %s (%d pcs)", e.OrderID, name, e.Quantity)
}

// Subtotal is quantity times the product's current price. Zero when the
// product was not loaded.
func (e OrderElement) Subtotal() decimal.Decimal {
	if e.Product == nil {
		return decimal.Zero
	}
	return e.Product.Price.Mul(decimal.NewFromInt(int64(e.Quantity)))
}

package models

import (
	"fmt"

	"github.com/shopspring/decimal"
)

type ProductCategory struct {
	ID   int64
	Name string
}

func (c ProductCategory) String() string { return c.Name }

// Product is shared by restaurant menus and order elements. CategoryID is nil
// when the product has no category (or its category was deleted).
type Product struct {
	ID            int64
	Name          string
	CategoryID    *int64
	Price         decimal.Decimal
	Image         string
	SpecialStatus bool
	Description   string
}

func (p Product) String() string { return p.Name }

type CreateProductInput struct {
	Name          string
	CategoryID    *int64
	Price         decimal.Decimal
	Image         string
	SpecialStatus bool
	Description   string
}

type Restaurant struct {
	ID           int64
	Name         string
	Address      string
	ContactPhone string
}

func (r Restaurant) String() string { return r.Name }

type CreateRestaurantInput struct {
	Name         string
	Address      string
	ContactPhone string
}

// RestaurantMenuItem is the (restaurant, product) edge of the menu index.
type RestaurantMenuItem struct {
	ID             int64
	RestaurantID   int64
	RestaurantName string
	ProductID      int64
	ProductName    string
	Availability   bool
}

func (m RestaurantMenuItem) String() string {
	return fmt.Sprintf("%s - %s", m.RestaurantName, m.ProductName)
}

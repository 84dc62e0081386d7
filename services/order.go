package services

import (
	"context"
	"time"

	"foodcart/db"
	"foodcart/metrics"
	"foodcart/models"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

func validateOrderInput(in models.CreateOrderInput) error {
	if err := checkText("firstname", in.Firstname, MaxOrderFieldLen, true); err != nil {
		return err
	}
	if err := checkText("lastname", in.Lastname, MaxOrderFieldLen, true); err != nil {
		return err
	}
	return checkText("address", in.Address, MaxOrderFieldLen, true)
}

// CreateOrder stores a new order. The phone number is normalized to E.164
// and must not belong to any other order.
func CreateOrder(ctx context.Context, in models.CreateOrderInput) (_ *models.Order, err error) {
	defer metrics.Observe("create_order", time.Now(), &err)
	if err := validateOrderInput(in); err != nil {
		return nil, err
	}
	phone, err := NormalizePhone(in.PhoneNumber)
	if err != nil {
		return nil, err
	}

	o := models.Order{
		Firstname:   in.Firstname,
		Lastname:    in.Lastname,
		PhoneNumber: phone,
		Address:     in.Address,
	}
	err = db.InTx(ctx, func(tx pgx.Tx) error {
		var taken bool
		if err := tx.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM orders WHERE phone_number = $1)`, phone).
			Scan(&taken); err != nil {
			return err
		}
		if taken {
			return ErrDuplicatePhone
		}
		// A concurrent insert of the same phone still trips the unique index.
		return tx.QueryRow(ctx, `
			INSERT INTO orders (firstname, lastname, phone_number, address)
			VALUES ($1, $2, $3, $4)
			RETURNING id`,
			o.Firstname, o.Lastname, o.PhoneNumber, o.Address,
		).Scan(&o.ID)
	})
	if err != nil {
		return nil, mapDBError(err, "order", 0)
	}
	log.Info("order created", "order_id", o.ID, "phone_number", o.PhoneNumber)
	fireOrderCreated(&o)
	return &o, nil
}

func GetOrder(ctx context.Context, id int64) (*models.Order, error) {
	o := models.Order{ID: id}
	err := db.Pool.QueryRow(ctx, `
		SELECT firstname, lastname, phone_number, address FROM orders WHERE id = $1`,
		id,
	).Scan(&o.Firstname, &o.Lastname, &o.PhoneNumber, &o.Address)
	if err != nil {
		return nil, mapDBError(err, "order", id)
	}
	return &o, nil
}

func ListOrders(ctx context.Context) ([]models.Order, error) {
	rows, err := db.Pool.Query(ctx, `
		SELECT id, firstname, lastname, phone_number, address
		FROM orders
		ORDER BY id`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []models.Order
	for rows.Next() {
		var o models.Order
		if err := rows.Scan(&o.ID, &o.Firstname, &o.Lastname, &o.PhoneNumber, &o.Address); err != nil {
			return nil, err
		}
		res = append(res, o)
	}
	return res, rows.Err()
}

// AddProduct attaches a line item to an order. Menu availability is not
// consulted and no price is captured. The order-updated hook fires after
// commit.
func AddProduct(ctx context.Context, orderID, productID int64, quantity int) (_ *models.OrderElement, err error) {
	defer metrics.Observe("add_product", time.Now(), &err)
	if err := ValidateQuantity(quantity); err != nil {
		return nil, err
	}

	e := models.OrderElement{OrderID: orderID, ProductID: productID, Quantity: quantity}
	err = db.InTx(ctx, func(tx pgx.Tx) error {
		p, err := scanProduct(tx.QueryRow(ctx, `
			SELECT `+productColumns+` FROM products p WHERE p.id = $1 FOR KEY SHARE`,
			productID,
		))
		if err != nil {
			return mapDBError(err, "product", productID)
		}
		e.Product = p
		var one int
		if err := tx.QueryRow(ctx, `SELECT 1 FROM orders WHERE id = $1 FOR KEY SHARE`, orderID).Scan(&one); err != nil {
			return mapDBError(err, "order", orderID)
		}
		return tx.QueryRow(ctx, `
			INSERT INTO order_elements (order_id, product_id, quantity)
			VALUES ($1, $2, $3)
			RETURNING id`,
			orderID, productID, quantity,
		).Scan(&e.ID)
	})
	if err != nil {
		return nil, mapDBError(err, "order", orderID)
	}
	fireOrderUpdated(orderID)
	return &e, nil
}

// ListOrderElements returns the order's line items with their products as
// they are in the catalog now.
func ListOrderElements(ctx context.Context, orderID int64) ([]models.OrderElement, error) {
	rows, err := db.Pool.Query(ctx, `
		SELECT e.id, e.quantity, `+productColumns+`
		FROM order_elements e
		JOIN products p ON p.id = e.product_id
		WHERE e.order_id = $1
		ORDER BY e.id`,
		orderID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []models.OrderElement
	for rows.Next() {
		var e models.OrderElement
		var p models.Product
		var price string
		if err := rows.Scan(&e.ID, &e.Quantity,
			&p.ID, &p.Name, &p.CategoryID, &price, &p.Image, &p.SpecialStatus, &p.Description); err != nil {
			return nil, err
		}
		if p.Price, err = decimal.NewFromString(price); err != nil {
			return nil, err
		}
		e.OrderID = orderID
		e.ProductID = p.ID
		e.Product = &p
		res = append(res, e)
	}
	return res, rows.Err()
}

// OrderTotal sums quantity times the current product price over the order.
func OrderTotal(ctx context.Context, orderID int64) (decimal.Decimal, error) {
	if _, err := GetOrder(ctx, orderID); err != nil {
		return decimal.Zero, err
	}
	elements, err := ListOrderElements(ctx, orderID)
	if err != nil {
		return decimal.Zero, err
	}
	total := decimal.Zero
	for _, e := range elements {
		total = total.Add(e.Subtotal())
	}
	return total, nil
}

// DeleteOrder removes an order and, through ON DELETE CASCADE, its elements.
func DeleteOrder(ctx context.Context, id int64) (err error) {
	defer metrics.Observe("delete_order", time.Now(), &err)
	tag, err := db.Pool.Exec(ctx, `DELETE FROM orders WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return notFound("order", id)
	}
	log.Info("order deleted", "order_id", id)
	return nil
}

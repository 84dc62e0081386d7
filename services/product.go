package services

import (
	"context"
	"fmt"
	"time"

	"foodcart/db"
	"foodcart/metrics"
	"foodcart/models"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

const productColumns = `p.id, p.name, p.category_id, p.price::text, p.image, p.special_status, p.description`

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanProduct(row rowScanner) (*models.Product, error) {
	var p models.Product
	var price string
	if err := row.Scan(&p.ID, &p.Name, &p.CategoryID, &price, &p.Image, &p.SpecialStatus, &p.Description); err != nil {
		return nil, err
	}
	d, err := decimal.NewFromString(price)
	if err != nil {
		return nil, fmt.Errorf("product #%d: bad price %q: %w", p.ID, price, err)
	}
	p.Price = d
	return &p, nil
}

func queryProducts(ctx context.Context, sql string, args ...interface{}) ([]models.Product, error) {
	rows, err := db.Pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []models.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		res = append(res, *p)
	}
	return res, rows.Err()
}

// CreateProduct validates input and inserts a catalog product.
func CreateProduct(ctx context.Context, in models.CreateProductInput) (_ *models.Product, err error) {
	defer metrics.Observe("create_product", time.Now(), &err)
	if err := validateProductInput(in.Name, in.Price, in.Description); err != nil {
		return nil, err
	}

	p := models.Product{
		Name:          in.Name,
		CategoryID:    in.CategoryID,
		Price:         in.Price,
		Image:         in.Image,
		SpecialStatus: in.SpecialStatus,
		Description:   in.Description,
	}
	err = db.Pool.QueryRow(ctx, `
		INSERT INTO products (name, category_id, price, image, special_status, description)
		VALUES ($1, $2, $3::numeric, $4, $5, $6)
		RETURNING id`,
		in.Name, in.CategoryID, in.Price.StringFixed(PriceDecimalPlaces), in.Image, in.SpecialStatus, in.Description,
	).Scan(&p.ID)
	if err != nil {
		var categoryID int64
		if in.CategoryID != nil {
			categoryID = *in.CategoryID
		}
		return nil, mapDBError(err, "category", categoryID)
	}
	p.Price = in.Price.Round(PriceDecimalPlaces)
	return &p, nil
}

func GetProduct(ctx context.Context, id int64) (*models.Product, error) {
	p, err := scanProduct(db.Pool.QueryRow(ctx, `SELECT `+productColumns+` FROM products p WHERE p.id = $1`, id))
	if err != nil {
		return nil, mapDBError(err, "product", id)
	}
	return p, nil
}

func ListProducts(ctx context.Context) ([]models.Product, error) {
	return queryProducts(ctx, `SELECT `+productColumns+` FROM products p ORDER BY p.id`)
}

// ListSpecialProducts returns products flagged as special offers.
func ListSpecialProducts(ctx context.Context) ([]models.Product, error) {
	return queryProducts(ctx, `
		SELECT `+productColumns+` FROM products p
		WHERE p.special_status
		ORDER BY p.id`)
}

// UpdateProductPrice changes the catalog price. Orders keep no copy of the
// price, so their totals follow this value from now on.
func UpdateProductPrice(ctx context.Context, id int64, price decimal.Decimal) (err error) {
	defer metrics.Observe("update_product_price", time.Now(), &err)
	if err := ValidatePrice(price); err != nil {
		return err
	}
	tag, err := db.Pool.Exec(ctx, `UPDATE products SET price = $1::numeric WHERE id = $2`,
		price.StringFixed(PriceDecimalPlaces), id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return notFound("product", id)
	}
	return nil
}

// DeleteProductResult counts the dependent rows removed with a product.
type DeleteProductResult struct {
	MenuItems     int64
	OrderElements int64
}

// DeleteProduct removes a product. Menu edges and order elements that
// reference it are removed by the same statement (ON DELETE CASCADE), so
// existing orders lose those line items.
func DeleteProduct(ctx context.Context, id int64) (res DeleteProductResult, err error) {
	defer metrics.Observe("delete_product", time.Now(), &err)
	err = db.InTx(ctx, func(tx pgx.Tx) error {
		var exists bool
		if err := tx.QueryRow(ctx, `SELECT true FROM products WHERE id = $1 FOR UPDATE`, id).Scan(&exists); err != nil {
			return mapDBError(err, "product", id)
		}
		if err := tx.QueryRow(ctx, `
			SELECT
				(SELECT COUNT(*) FROM restaurant_menu_items WHERE product_id = $1),
				(SELECT COUNT(*) FROM order_elements WHERE product_id = $1)`,
			id,
		).Scan(&res.MenuItems, &res.OrderElements); err != nil {
			return err
		}
		_, err := tx.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
		return err
	})
	if err != nil {
		return DeleteProductResult{}, err
	}
	if res.OrderElements > 0 {
		log.Warn("product deleted with order elements",
			"product_id", id, "order_elements", res.OrderElements, "menu_items", res.MenuItems)
	} else {
		log.Info("product deleted", "product_id", id, "menu_items", res.MenuItems)
	}
	return res, nil
}

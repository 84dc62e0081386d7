package services

import (
	"context"
	"time"

	"foodcart/db"
	"foodcart/metrics"
	"foodcart/models"

	"github.com/jackc/pgx/v5"
)

// SetMenuAvailability creates or updates the (restaurant, product) menu edge.
func SetMenuAvailability(ctx context.Context, restaurantID, productID int64, available bool) (_ *models.RestaurantMenuItem, err error) {
	defer metrics.Observe("set_menu_availability", time.Now(), &err)
	item := models.RestaurantMenuItem{RestaurantID: restaurantID, ProductID: productID}
	err = db.InTx(ctx, func(tx pgx.Tx) error {
		if err := tx.QueryRow(ctx, `SELECT name FROM restaurants WHERE id = $1 FOR KEY SHARE`, restaurantID).
			Scan(&item.RestaurantName); err != nil {
			return mapDBError(err, "restaurant", restaurantID)
		}
		if err := tx.QueryRow(ctx, `SELECT name FROM products WHERE id = $1 FOR KEY SHARE`, productID).
			Scan(&item.ProductName); err != nil {
			return mapDBError(err, "product", productID)
		}
		return tx.QueryRow(ctx, `
			INSERT INTO restaurant_menu_items (restaurant_id, product_id, availability)
			VALUES ($1, $2, $3)
			ON CONFLICT (restaurant_id, product_id) DO UPDATE SET
				availability = EXCLUDED.availability
			RETURNING id, availability`,
			restaurantID, productID, available,
		).Scan(&item.ID, &item.Availability)
	})
	if err != nil {
		return nil, mapDBError(err, "menu item", 0)
	}
	log.Debug("menu availability set", "restaurant_id", restaurantID, "product_id", productID, "available", available)
	return &item, nil
}

const menuItemSelect = `
	SELECT m.id, m.restaurant_id, r.name, m.product_id, p.name, m.availability
	FROM restaurant_menu_items m
	JOIN restaurants r ON r.id = m.restaurant_id
	JOIN products p ON p.id = m.product_id`

func scanMenuItem(row rowScanner) (*models.RestaurantMenuItem, error) {
	var m models.RestaurantMenuItem
	if err := row.Scan(&m.ID, &m.RestaurantID, &m.RestaurantName, &m.ProductID, &m.ProductName, &m.Availability); err != nil {
		return nil, err
	}
	return &m, nil
}

// GetMenuItem returns the edge for (restaurantID, productID).
func GetMenuItem(ctx context.Context, restaurantID, productID int64) (*models.RestaurantMenuItem, error) {
	m, err := scanMenuItem(db.Pool.QueryRow(ctx, menuItemSelect+`
		WHERE m.restaurant_id = $1 AND m.product_id = $2`,
		restaurantID, productID,
	))
	if err != nil {
		return nil, mapDBError(err, "menu item for product", productID)
	}
	return m, nil
}

// ListRestaurantMenu returns every menu edge of a restaurant, available or not.
func ListRestaurantMenu(ctx context.Context, restaurantID int64) ([]models.RestaurantMenuItem, error) {
	rows, err := db.Pool.Query(ctx, menuItemSelect+`
		WHERE m.restaurant_id = $1
		ORDER BY m.product_id`,
		restaurantID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []models.RestaurantMenuItem
	for rows.Next() {
		m, err := scanMenuItem(rows)
		if err != nil {
			return nil, err
		}
		res = append(res, *m)
	}
	return res, rows.Err()
}

// DeleteMenuItem removes the (restaurantID, productID) edge.
func DeleteMenuItem(ctx context.Context, restaurantID, productID int64) (err error) {
	defer metrics.Observe("delete_menu_item", time.Now(), &err)
	tag, err := db.Pool.Exec(ctx, `
		DELETE FROM restaurant_menu_items
		WHERE restaurant_id = $1 AND product_id = $2`,
		restaurantID, productID,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return notFound("menu item for product", productID)
	}
	return nil
}

// AvailableProducts returns each product that at least one restaurant has
// on its menu with availability set, once, whatever the number of such
// restaurants. Products with no edges or only unavailable edges are left out.
func AvailableProducts(ctx context.Context) (_ []models.Product, err error) {
	defer metrics.Observe("available_products", time.Now(), &err)
	return queryProducts(ctx, `
		SELECT DISTINCT `+productColumns+`
		FROM products p
		JOIN restaurant_menu_items m ON m.product_id = p.id
		WHERE m.availability
		ORDER BY p.id`)
}

// IsProductAvailable reports whether any restaurant currently sells productID.
func IsProductAvailable(ctx context.Context, productID int64) (bool, error) {
	var ok bool
	err := db.Pool.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM restaurant_menu_items
			WHERE product_id = $1 AND availability
		)`,
		productID,
	).Scan(&ok)
	return ok, err
}

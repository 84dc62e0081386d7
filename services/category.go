package services

import (
	"context"
	"time"

	"foodcart/db"
	"foodcart/metrics"
	"foodcart/models"
)

func CreateCategory(ctx context.Context, name string) (_ *models.ProductCategory, err error) {
	defer metrics.Observe("create_category", time.Now(), &err)
	if err := checkText("name", name, MaxNameLen, true); err != nil {
		return nil, err
	}
	c := models.ProductCategory{Name: name}
	err = db.Pool.QueryRow(ctx, `
		INSERT INTO product_categories (name) VALUES ($1)
		RETURNING id`,
		name,
	).Scan(&c.ID)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func GetCategory(ctx context.Context, id int64) (*models.ProductCategory, error) {
	c := models.ProductCategory{ID: id}
	err := db.Pool.QueryRow(ctx, `SELECT name FROM product_categories WHERE id = $1`, id).Scan(&c.Name)
	if err != nil {
		return nil, mapDBError(err, "category", id)
	}
	return &c, nil
}

func ListCategories(ctx context.Context) ([]models.ProductCategory, error) {
	rows, err := db.Pool.Query(ctx, `SELECT id, name FROM product_categories ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []models.ProductCategory
	for rows.Next() {
		var c models.ProductCategory
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			return nil, err
		}
		res = append(res, c)
	}
	return res, rows.Err()
}

// DeleteCategory removes a category. Its products stay in the catalog with
// no category (ON DELETE SET NULL).
func DeleteCategory(ctx context.Context, id int64) (err error) {
	defer metrics.Observe("delete_category", time.Now(), &err)
	tag, err := db.Pool.Exec(ctx, `DELETE FROM product_categories WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return notFound("category", id)
	}
	log.Info("category deleted", "category_id", id)
	return nil
}

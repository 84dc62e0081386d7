package services

import (
	"context"
	"time"

	"foodcart/db"
	"foodcart/metrics"
	"foodcart/models"
)

// CreateRestaurant inserts a restaurant. Address and contact phone may be empty.
func CreateRestaurant(ctx context.Context, in models.CreateRestaurantInput) (_ *models.Restaurant, err error) {
	defer metrics.Observe("create_restaurant", time.Now(), &err)
	if err := checkText("name", in.Name, MaxNameLen, true); err != nil {
		return nil, err
	}
	if err := checkText("address", in.Address, MaxRestaurantAddr, false); err != nil {
		return nil, err
	}
	if err := checkText("contact_phone", in.ContactPhone, MaxContactPhoneLen, false); err != nil {
		return nil, err
	}

	r := models.Restaurant{Name: in.Name, Address: in.Address, ContactPhone: in.ContactPhone}
	err = db.Pool.QueryRow(ctx, `
		INSERT INTO restaurants (name, address, contact_phone)
		VALUES ($1, $2, $3)
		RETURNING id`,
		in.Name, in.Address, in.ContactPhone,
	).Scan(&r.ID)
	if err != nil {
		return nil, err
	}
	return &r, nil
}

func GetRestaurant(ctx context.Context, id int64) (*models.Restaurant, error) {
	r := models.Restaurant{ID: id}
	err := db.Pool.QueryRow(ctx, `
		SELECT name, address, contact_phone FROM restaurants WHERE id = $1`,
		id,
	).Scan(&r.Name, &r.Address, &r.ContactPhone)
	if err != nil {
		return nil, mapDBError(err, "restaurant", id)
	}
	return &r, nil
}

func ListRestaurants(ctx context.Context) ([]models.Restaurant, error) {
	rows, err := db.Pool.Query(ctx, `
		SELECT id, name, address, contact_phone
		FROM restaurants
		ORDER BY id`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []models.Restaurant
	for rows.Next() {
		var r models.Restaurant
		if err := rows.Scan(&r.ID, &r.Name, &r.Address, &r.ContactPhone); err != nil {
			return nil, err
		}
		res = append(res, r)
	}
	return res, rows.Err()
}

// DeleteRestaurant removes a restaurant together with its menu edges.
func DeleteRestaurant(ctx context.Context, id int64) (err error) {
	defer metrics.Observe("delete_restaurant", time.Now(), &err)
	tag, err := db.Pool.Exec(ctx, `DELETE FROM restaurants WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return notFound("restaurant", id)
	}
	log.Info("restaurant deleted", "restaurant_id", id)
	return nil
}

package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"foodcart/models"

	"github.com/shopspring/decimal"
)

func mustProduct(t *testing.T, ctx context.Context, name, price string) *models.Product {
	t.Helper()
	p, err := CreateProduct(ctx, models.CreateProductInput{
		Name:  name,
		Price: decimal.RequireFromString(price),
		Image: name + ".jpg",
	})
	if err != nil {
		t.Fatalf("CreateProduct(%s): %v", name, err)
	}
	return p
}

func TestCreateProduct_RoundTrip(t *testing.T) {
	ctx := requireDB(t)
	cat, err := CreateCategory(ctx, "Pizza")
	if err != nil {
		t.Fatalf("CreateCategory: %v", err)
	}
	created, err := CreateProduct(ctx, models.CreateProductInput{
		Name:          "Margherita",
		CategoryID:    &cat.ID,
		Price:         decimal.RequireFromString("9.99"),
		Image:         "margherita.jpg",
		SpecialStatus: true,
		Description:   "Tomato, mozzarella, basil",
	})
	if err != nil {
		t.Fatalf("CreateProduct: %v", err)
	}

	got, err := GetProduct(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetProduct: %v", err)
	}
	if got.Name != "Margherita" || got.Image != "margherita.jpg" || !got.SpecialStatus || got.Description != "Tomato, mozzarella, basil" {
		t.Errorf("unexpected product: %+v", got)
	}
	if !got.Price.Equal(decimal.RequireFromString("9.99")) {
		t.Errorf("price = %s, want 9.99", got.Price)
	}
	if got.CategoryID == nil || *got.CategoryID != cat.ID {
		t.Errorf("CategoryID = %v, want %d", got.CategoryID, cat.ID)
	}

	special, err := ListSpecialProducts(ctx)
	if err != nil {
		t.Fatalf("ListSpecialProducts: %v", err)
	}
	if len(special) != 1 || special[0].ID != created.ID {
		t.Errorf("special products = %+v", special)
	}
}

func TestCreateProduct_Validation(t *testing.T) {
	ctx := requireDB(t)
	tests := []struct {
		name string
		in   models.CreateProductInput
	}{
		{"empty name", models.CreateProductInput{Name: "", Price: decimal.RequireFromString("1")}},
		{"long name", models.CreateProductInput{Name: strings.Repeat("n", 51), Price: decimal.RequireFromString("1")}},
		{"too many digits", models.CreateProductInput{Name: "x", Price: decimal.RequireFromString("1234567.00")}},
		{"too many decimals", models.CreateProductInput{Name: "x", Price: decimal.RequireFromString("1.005")}},
		{"long description", models.CreateProductInput{Name: "x", Price: decimal.RequireFromString("1"), Description: strings.Repeat("d", 201)}},
	}
	for _, tt := range tests {
		if _, err := CreateProduct(ctx, tt.in); !errors.Is(err, ErrValidation) {
			t.Errorf("%s: got %v, want ErrValidation", tt.name, err)
		}
	}
	all, err := ListProducts(ctx)
	if err != nil {
		t.Fatalf("ListProducts: %v", err)
	}
	if len(all) != 0 {
		t.Errorf("invalid products must not be stored, got %d", len(all))
	}
}

func TestCreateProduct_UnknownCategory(t *testing.T) {
	ctx := requireDB(t)
	missing := int64(999)
	_, err := CreateProduct(ctx, models.CreateProductInput{Name: "x", Price: decimal.RequireFromString("1"), CategoryID: &missing})
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("got %v, want ErrNotFound", err)
	}
}

func TestGetProduct_NotFound(t *testing.T) {
	ctx := requireDB(t)
	if _, err := GetProduct(ctx, 12345); !errors.Is(err, ErrNotFound) {
		t.Errorf("got %v, want ErrNotFound", err)
	}
}

func TestDeleteCategory_NullsProducts(t *testing.T) {
	ctx := requireDB(t)
	cat, err := CreateCategory(ctx, "Drinks")
	if err != nil {
		t.Fatalf("CreateCategory: %v", err)
	}
	p, err := CreateProduct(ctx, models.CreateProductInput{Name: "Cola", CategoryID: &cat.ID, Price: decimal.RequireFromString("1.50")})
	if err != nil {
		t.Fatalf("CreateProduct: %v", err)
	}

	if err := DeleteCategory(ctx, cat.ID); err != nil {
		t.Fatalf("DeleteCategory: %v", err)
	}
	got, err := GetProduct(ctx, p.ID)
	if err != nil {
		t.Fatalf("product should survive its category: %v", err)
	}
	if got.CategoryID != nil {
		t.Errorf("CategoryID = %d, want nil", *got.CategoryID)
	}
	if _, err := GetCategory(ctx, cat.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetCategory after delete: %v", err)
	}
	if err := DeleteCategory(ctx, cat.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("second DeleteCategory: %v", err)
	}
}

func TestUpdateProductPrice(t *testing.T) {
	ctx := requireDB(t)
	p := mustProduct(t, ctx, "Margherita", "9.99")
	if err := UpdateProductPrice(ctx, p.ID, decimal.RequireFromString("10.5")); err != nil {
		t.Fatalf("UpdateProductPrice: %v", err)
	}
	got, _ := GetProduct(ctx, p.ID)
	if !got.Price.Equal(decimal.RequireFromString("10.50")) {
		t.Errorf("price = %s, want 10.50", got.Price)
	}
	if err := UpdateProductPrice(ctx, p.ID, decimal.RequireFromString("10.555")); !errors.Is(err, ErrValidation) {
		t.Errorf("bad price: %v", err)
	}
	if err := UpdateProductPrice(ctx, 999, decimal.RequireFromString("1")); !errors.Is(err, ErrNotFound) {
		t.Errorf("unknown product: %v", err)
	}
}

func TestRestaurants(t *testing.T) {
	ctx := requireDB(t)
	r, err := CreateRestaurant(ctx, models.CreateRestaurantInput{Name: "Star Burger", Address: "Moscow, Arbat 1"})
	if err != nil {
		t.Fatalf("CreateRestaurant: %v", err)
	}
	got, err := GetRestaurant(ctx, r.ID)
	if err != nil {
		t.Fatalf("GetRestaurant: %v", err)
	}
	if got.Name != "Star Burger" || got.Address != "Moscow, Arbat 1" || got.ContactPhone != "" {
		t.Errorf("unexpected restaurant %+v", got)
	}

	if _, err := CreateRestaurant(ctx, models.CreateRestaurantInput{Name: ""}); !errors.Is(err, ErrValidation) {
		t.Errorf("empty name: %v", err)
	}
	if _, err := CreateRestaurant(ctx, models.CreateRestaurantInput{Name: "x", Address: strings.Repeat("a", 101)}); !errors.Is(err, ErrValidation) {
		t.Errorf("long address: %v", err)
	}
	if _, err := CreateRestaurant(ctx, models.CreateRestaurantInput{Name: "x", ContactPhone: strings.Repeat("1", 51)}); !errors.Is(err, ErrValidation) {
		t.Errorf("long phone: %v", err)
	}

	list, err := ListRestaurants(ctx)
	if err != nil {
		t.Fatalf("ListRestaurants: %v", err)
	}
	if len(list) != 1 {
		t.Errorf("restaurants = %d, want 1", len(list))
	}
	if err := DeleteRestaurant(ctx, r.ID); err != nil {
		t.Fatalf("DeleteRestaurant: %v", err)
	}
	if _, err := GetRestaurant(ctx, r.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetRestaurant after delete: %v", err)
	}
}

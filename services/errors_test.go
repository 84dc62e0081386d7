package services

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

func TestMapDBError(t *testing.T) {
	other := errors.New("connection reset")
	tests := []struct {
		name string
		err  error
		want error
	}{
		{"nil", nil, nil},
		{"no rows", pgx.ErrNoRows, ErrNotFound},
		{"wrapped no rows", fmt.Errorf("scan: %w", pgx.ErrNoRows), ErrNotFound},
		{"phone unique", &pgconn.PgError{Code: "23505", ConstraintName: phoneUniqueConstraint}, ErrDuplicatePhone},
		{"foreign key", &pgconn.PgError{Code: "23503", ConstraintName: "order_elements_product_id_fkey"}, ErrNotFound},
		{"check", &pgconn.PgError{Code: "23514", ConstraintName: "order_elements_quantity_check"}, ErrValidation},
		{"bad encoding", &pgconn.PgError{Code: "22021", Message: "invalid byte sequence for encoding \"UTF8\": 0xff"}, ErrValidation},
		{"passthrough", other, other},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := mapDBError(tt.err, "product", 1)
			if tt.want == nil {
				if got != nil {
					t.Fatalf("got %v, want nil", got)
				}
				return
			}
			if !errors.Is(got, tt.want) {
				t.Errorf("got %v, want errors.Is %v", got, tt.want)
			}
		})
	}
}

func TestMapDBError_OtherUniqueViolation(t *testing.T) {
	pgErr := &pgconn.PgError{Code: "23505", ConstraintName: "restaurant_menu_items_restaurant_product_key"}
	got := mapDBError(pgErr, "menu item", 1)
	if errors.Is(got, ErrDuplicatePhone) {
		t.Error("only the phone constraint maps to ErrDuplicatePhone")
	}
	if got != error(pgErr) {
		t.Errorf("got %v, want the original error", got)
	}
}

func TestNotFoundMessage(t *testing.T) {
	err := notFound("order", 12)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("notFound should wrap ErrNotFound")
	}
	if err.Error() != "order #12: not found" {
		t.Errorf("message = %q", err.Error())
	}
}

func TestValidationError_Is(t *testing.T) {
	err := fmt.Errorf("create product: %w", invalid("price", "bad"))
	if !errors.Is(err, ErrValidation) {
		t.Error("wrapped *ValidationError should match ErrValidation")
	}
	if errors.Is(err, ErrNotFound) {
		t.Error("*ValidationError should not match ErrNotFound")
	}
}

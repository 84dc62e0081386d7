package services

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/nyaruka/phonenumbers"
	"github.com/shopspring/decimal"
)

const (
	MaxNameLen         = 50
	MaxDescriptionLen  = 200
	MaxRestaurantAddr  = 100
	MaxContactPhoneLen = 50
	MaxOrderFieldLen   = 255
	PriceMaxDigits     = 8
	PriceDecimalPlaces = 2
	MinElementQuantity = 0
	MaxElementQuantity = 100
)

// PhoneRegion is the region used to parse numbers written without a
// leading "+". Empty means only international numbers are accepted.
var PhoneRegion string

// maxPriceIntPart is 10^(digits-places): the first integer part that no
// longer fits NUMERIC(8,2).
var maxPriceIntPart = decimal.New(1, PriceMaxDigits-PriceDecimalPlaces)

func checkText(field, value string, max int, required bool) error {
	if !utf8.ValidString(value) {
		return invalid(field, "must be valid UTF-8")
	}
	if required && strings.TrimSpace(value) == "" {
		return invalid(field, "must not be empty")
	}
	if n := utf8.RuneCountInString(value); n > max {
		return invalid(field, "must be at most %d characters, got %d", max, n)
	}
	return nil
}

// ValidatePrice enforces NUMERIC(8,2): at most two fractional digits and at
// most eight digits in total.
func ValidatePrice(price decimal.Decimal) error {
	abs := price.Abs()
	if !abs.Equal(abs.Truncate(PriceDecimalPlaces)) {
		return invalid("price", "must have at most %d decimal places, got %s", PriceDecimalPlaces, price)
	}
	if abs.Truncate(0).GreaterThanOrEqual(maxPriceIntPart) {
		return invalid("price", "must have at most %d digits in total, got %s", PriceMaxDigits, price)
	}
	return nil
}

func ValidateQuantity(quantity int) error {
	if quantity < MinElementQuantity || quantity > MaxElementQuantity {
		return invalid("quantity", "must be between %d and %d, got %d", MinElementQuantity, MaxElementQuantity, quantity)
	}
	return nil
}

// NormalizePhone parses raw and returns it in E.164 form. Two spellings of
// the same number normalize to the same string, which is what the unique
// index on orders compares.
func NormalizePhone(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty phone number: %w", ErrInvalidPhoneFormat)
	}
	num, err := phonenumbers.Parse(raw, PhoneRegion)
	if err != nil {
		return "", fmt.Errorf("%q: %v: %w", raw, err, ErrInvalidPhoneFormat)
	}
	if !phonenumbers.IsPossibleNumber(num) {
		return "", fmt.Errorf("%q is not a possible phone number: %w", raw, ErrInvalidPhoneFormat)
	}
	return phonenumbers.Format(num, phonenumbers.E164), nil
}

func validateProductInput(name string, price decimal.Decimal, description string) error {
	if err := checkText("name", name, MaxNameLen, true); err != nil {
		return err
	}
	if err := ValidatePrice(price); err != nil {
		return err
	}
	return checkText("description", description, MaxDescriptionLen, false)
}

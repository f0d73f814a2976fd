package pricing

import (
	"errors"
	"strings"
)

// ErrInvalidCoupon is returned when a non-empty coupon code is not recognised.
var ErrInvalidCoupon = errors.New("pricing: invalid coupon code")

// coupons maps recognised codes to their fractional discount rate.
var coupons = map[string]float64{
	"SALE10": 0.10,
}

// EvaluateCoupon resolves a coupon code against the given subtotal and returns
// the discount amount it grants. Codes are matched case-insensitively. An
// empty code clears any discount and is not an error.
func EvaluateCoupon(code string, subtotal float64) (float64, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return 0, nil
	}

	rate, ok := coupons[code]
	if !ok {
		return 0, ErrInvalidCoupon
	}
	if subtotal <= 0 {
		return 0, nil
	}
	return subtotal * rate, nil
}

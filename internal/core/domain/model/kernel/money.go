package kernel

import (
	"fmt"
	"math"

	"couriertrack/internal/pkg/errs"
)

// Money is a non-negative monetary amount stored as an integer number of cents.
// It is used for the amount charged for a parcel and for COD collection amounts.
//
// Money is an immutable value object. Unlike most kernel types its zero value
// (zero cents) is valid: prepaid parcels carry a zero COD amount by design.
//
// Example:
//
//	m, err := kernel.NewMoneyFromFloat(45.99)
//	if err != nil {
//	    // handle negative amount
//	}
//	fmt.Println(m.Cents())   // 4599
//	fmt.Println(m.Float64()) // 45.99
type Money struct {
	cents int64
}

// NewMoney creates a Money value from an amount in cents.
// Returns a validation error for negative amounts.
func NewMoney(cents int64) (Money, error) {
	if cents < 0 {
		return Money{}, errs.NewValueIsInvalidErrorWithCause("money",
			fmt.Errorf("%d cents is negative", cents))
	}
	return Money{cents: cents}, nil
}

// NewMoneyFromFloat creates a Money value from a decimal amount, e.g. 45.99.
// The amount is rounded to the nearest cent. Returns a validation error for
// negative or non-finite amounts.
func NewMoneyFromFloat(amount float64) (Money, error) {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return Money{}, errs.NewValueIsInvalidErrorWithCause("money",
			fmt.Errorf("%f is not a finite amount", amount))
	}
	return NewMoney(int64(math.Round(amount * 100)))
}

// Cents returns the amount in cents.
func (m Money) Cents() int64 {
	return m.cents
}

// Float64 returns the amount as a decimal number of currency units.
func (m Money) Float64() float64 {
	return float64(m.cents) / 100
}

// IsZero reports whether the amount is zero cents.
func (m Money) IsZero() bool {
	return m.cents == 0
}

// IsEqual compares two monetary amounts for equality.
func (m Money) IsEqual(other Money) bool {
	return m.cents == other.cents
}

// String returns the amount formatted with two decimal places, e.g. "45.99".
func (m Money) String() string {
	return fmt.Sprintf("%d.%02d", m.cents/100, m.cents%100)
}

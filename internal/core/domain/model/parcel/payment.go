package parcel

import (
	"errors"
	"fmt"

	"couriertrack/internal/core/domain/model/kernel"
	"couriertrack/internal/pkg/errs"
	"couriertrack/internal/pkg/guard"
)

// ErrPaymentIsNotConstructed is returned when a Payment was not created through
// one of the payment constructors.
var ErrPaymentIsNotConstructed = errors.New(
	"Payment must be created via NewPrepaidPayment or NewCODPayment constructors")

// PaymentMethod distinguishes how a parcel is paid for.
type PaymentMethod int

const (
	// PaymentMethodUnknown represents an invalid or undefined payment method.
	PaymentMethodUnknown PaymentMethod = iota

	// Prepaid means the sender paid at booking time; the agent collects nothing.
	Prepaid

	// COD means the agent collects the COD amount in cash at delivery time.
	COD
)

// getValidPaymentMethodStrings returns the wire names of valid payment methods.
func getValidPaymentMethodStrings() map[PaymentMethod]string {
	//nolint:exhaustive // PaymentMethodUnknown is intentionally excluded as it's invalid
	return map[PaymentMethod]string{
		Prepaid: "prepaid",
		COD:     "cod",
	}
}

// PaymentMethodFromString parses a payment method from its wire representation.
// Returns a validation error for unrecognized input.
func PaymentMethodFromString(s string) (PaymentMethod, error) {
	for method, str := range getValidPaymentMethodStrings() {
		if str == s {
			return method, nil
		}
	}
	return PaymentMethodUnknown, errs.NewValueIsInvalidErrorWithCause("payment method",
		fmt.Errorf("%q is not a payment method", s))
}

// Validate checks if the PaymentMethod value is valid.
func (m PaymentMethod) Validate() error {
	if _, ok := getValidPaymentMethodStrings()[m]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("payment method",
			fmt.Errorf("%d is not a valid payment method", m))
	}
	return nil
}

// String returns the wire name of the payment method, or "unknown" for invalid values.
func (m PaymentMethod) String() string {
	if str, ok := getValidPaymentMethodStrings()[m]; ok {
		return str
	}
	return "unknown"
}

// Payment binds a payment method to its COD amount.
//
// Invariants:
//   - COD payments carry a non-negative collection amount
//   - Prepaid payments carry a zero collection amount; the agent never collects
//
// Payment is an immutable value object; the zero value is invalid and fails
// validation.
type Payment struct {
	method    PaymentMethod
	codAmount kernel.Money
	guard     guard.ConstructorGuard
}

// NewPrepaidPayment creates a prepaid payment. Nothing is collected at delivery.
func NewPrepaidPayment() Payment {
	return Payment{
		method: Prepaid,
		guard:  guard.NewConstructorGuard(),
	}
}

// NewCODPayment creates a cash-on-delivery payment with the amount the agent
// must collect. A zero amount is legal (e.g. a fully discounted order).
func NewCODPayment(codAmount kernel.Money) Payment {
	return Payment{
		method:    COD,
		codAmount: codAmount,
		guard:     guard.NewConstructorGuard(),
	}
}

// Method returns the payment method.
func (p Payment) Method() PaymentMethod {
	return p.method
}

// CODAmount returns the amount the agent collects at delivery.
// Always zero for prepaid payments.
func (p Payment) CODAmount() kernel.Money {
	return p.codAmount
}

// RequiresCollection reports whether the delivery agent must collect cash.
func (p Payment) RequiresCollection() bool {
	return p.method == COD
}

// IsEqual compares two payments by method and COD amount.
func (p Payment) IsEqual(other Payment) bool {
	return p.method == other.method && p.codAmount.IsEqual(other.codAmount)
}

// Validate ensures the payment was created through one of the constructors.
func (p Payment) Validate() error {
	if err := p.guard.Validate(ErrPaymentIsNotConstructed); err != nil {
		return err
	}
	return p.method.Validate()
}

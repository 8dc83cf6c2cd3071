package kernel

import (
	"fmt"
	"strings"
	"unicode"

	"couriertrack/internal/pkg/errs"
)

const (
	// TrackingNumberPrefix is the carrier prefix printed on every label.
	TrackingNumberPrefix = "CP"
	// TrackingNumberDigits is the number of digits following the prefix.
	TrackingNumberDigits = 9
)

// ErrTrackingNumberIsNotConstructed indicates that a TrackingNumber was not created
// through the NewTrackingNumber constructor. Returned when validating a zero value.
var ErrTrackingNumberIsNotConstructed = errs.NewValueIsRequiredError(
	"tracking number must be created via NewTrackingNumber constructor")

// TrackingNumber is the caller-facing identifier of a parcel, the string customers
// type into the tracking page. The canonical format is the "CP" prefix followed by
// nine digits, e.g. "CP001234567".
//
// TrackingNumber is an immutable value object. The zero value is invalid; use
// NewTrackingNumber to construct one from its string form.
//
// Example:
//
//	tn, err := kernel.NewTrackingNumber("CP001234567")
//	if err != nil {
//	    // handle malformed tracking number
//	}
//	fmt.Println(tn.String()) // "CP001234567"
type TrackingNumber struct {
	value string
}

// NewTrackingNumber parses and validates a tracking number string.
// Input is upper-cased before validation so "cp001234567" is accepted.
// Returns a validation error if the prefix or digit block is malformed.
func NewTrackingNumber(s string) (TrackingNumber, error) {
	normalized := strings.ToUpper(strings.TrimSpace(s))
	if normalized == "" {
		return TrackingNumber{}, errs.NewValueIsRequiredError("tracking number")
	}

	if !strings.HasPrefix(normalized, TrackingNumberPrefix) {
		return TrackingNumber{}, errs.NewValueIsInvalidErrorWithCause("tracking number",
			fmt.Errorf("%q does not start with %q", normalized, TrackingNumberPrefix))
	}

	digits := normalized[len(TrackingNumberPrefix):]
	if len(digits) != TrackingNumberDigits {
		return TrackingNumber{}, errs.NewValueIsInvalidErrorWithCause("tracking number",
			fmt.Errorf("%q must carry %d digits after the prefix", normalized, TrackingNumberDigits))
	}

	for _, r := range digits {
		if !unicode.IsDigit(r) {
			return TrackingNumber{}, errs.NewValueIsInvalidErrorWithCause("tracking number",
				fmt.Errorf("%q contains a non-digit character", normalized))
		}
	}

	return TrackingNumber{value: normalized}, nil
}

// String returns the canonical string form, e.g. "CP001234567".
func (t TrackingNumber) String() string {
	return t.value
}

// IsEqual compares two tracking numbers for equality.
func (t TrackingNumber) IsEqual(other TrackingNumber) bool {
	return t.value == other.value
}

// Validate checks that the tracking number was created via NewTrackingNumber.
func (t TrackingNumber) Validate() error {
	if t.value == "" {
		return ErrTrackingNumberIsNotConstructed
	}
	return nil
}

package parcel

import (
	"fmt"

	"couriertrack/internal/pkg/errs"
)

// Priority represents the handling priority of a parcel.
// It is a value object ordered from Low to High and used by dashboards
// and filtering; the dispatcher does not currently weight by priority.
type Priority int

const (
	// PriorityUnknown represents an invalid or undefined priority.
	PriorityUnknown Priority = iota

	// PriorityLow is standard handling.
	PriorityLow

	// PriorityMedium is expedited handling.
	PriorityMedium

	// PriorityHigh is urgent handling.
	PriorityHigh
)

// getValidPriorityStrings returns the wire names of valid priorities.
func getValidPriorityStrings() map[Priority]string {
	//nolint:exhaustive // PriorityUnknown is intentionally excluded as it's invalid
	return map[Priority]string{
		PriorityLow:    "low",
		PriorityMedium: "medium",
		PriorityHigh:   "high",
	}
}

// PriorityFromString parses a priority from its wire representation, e.g. "high".
// Returns a validation error for unrecognized input.
func PriorityFromString(s string) (Priority, error) {
	for priority, str := range getValidPriorityStrings() {
		if str == s {
			return priority, nil
		}
	}
	return PriorityUnknown, errs.NewValueIsInvalidErrorWithCause("priority",
		fmt.Errorf("%q is not a parcel priority", s))
}

// Validate checks if the Priority value is valid.
func (p Priority) Validate() error {
	if _, ok := getValidPriorityStrings()[p]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("priority",
			fmt.Errorf("%d is not a valid priority", p))
	}
	return nil
}

// String returns the wire name of the priority, or "unknown" for invalid values.
func (p Priority) String() string {
	if str, ok := getValidPriorityStrings()[p]; ok {
		return str
	}
	return "unknown"
}

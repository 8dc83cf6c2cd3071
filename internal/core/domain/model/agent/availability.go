package agent

import (
	"fmt"

	"couriertrack/internal/pkg/errs"
)

// Availability represents an agent's self-reported duty state.
//
// Agents start offline and report online when they are ready to take deliveries.
// Busy is an on-duty agent excluded from automatic dispatch; an operator can
// still assign to a busy agent explicitly, and parcels already assigned to a
// busy agent stay with them.
type Availability int

const (
	// AvailabilityUnknown represents an invalid availability (zero value).
	AvailabilityUnknown Availability = iota
	// Offline means the agent is off duty and must not receive new parcels.
	Offline
	// Online means the agent is on duty and accepting new parcels.
	Online
	// Busy means the agent is on duty but not accepting new parcels.
	Busy
)

// getAvailabilityStrings returns the mapping of all availabilities to their string representations.
func getAvailabilityStrings() map[Availability]string {
	return map[Availability]string{
		AvailabilityUnknown: "unknown",
		Offline:             "offline",
		Online:              "online",
		Busy:                "busy",
	}
}

// getValidAvailabilityStrings returns only the valid availabilities.
func getValidAvailabilityStrings() map[Availability]string {
	//nolint:exhaustive // AvailabilityUnknown is intentionally excluded as it's invalid
	return map[Availability]string{
		Offline: "offline",
		Online:  "online",
		Busy:    "busy",
	}
}

// AvailabilityFromString parses an availability from its string representation.
func AvailabilityFromString(s string) (Availability, error) {
	for availability, str := range getValidAvailabilityStrings() {
		if str == s {
			return availability, nil
		}
	}
	return AvailabilityUnknown, errs.NewValueIsInvalidErrorWithCause("availability",
		fmt.Errorf("%q is not a valid availability", s))
}

// Validate checks that the availability is one of the defined duty states.
func (a Availability) Validate() error {
	if _, ok := getValidAvailabilityStrings()[a]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("availability",
			fmt.Errorf("%d is not a valid availability", a))
	}
	return nil
}

// String returns the string representation of the availability.
func (a Availability) String() string {
	if str, ok := getAvailabilityStrings()[a]; ok {
		return str
	}
	return "unknown"
}

// AcceptsWork reports whether an agent in this state may receive new parcels.
// Only offline agents are excluded from dispatch; a busy agent can still be
// assigned explicitly by an operator.
func (a Availability) AcceptsWork() bool {
	return a == Online || a == Busy
}

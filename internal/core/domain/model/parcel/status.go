package parcel

import (
	"errors"
	"fmt"

	"couriertrack/internal/pkg/errs"
)

// ErrInvalidTransition is returned when a status change does not follow an edge
// of the parcel lifecycle. The wrapped message names the attempted transition.
var ErrInvalidTransition = errors.New("invalid status transition")

// Status represents the lifecycle state of a parcel.
// It implements a state machine with defined transitions to ensure
// parcels follow the correct delivery workflow.
//
// State transitions:
//
//	pending --assign--> assigned --pickup--> picked-up --transit--> in-transit --deliver--> delivered
//	              ^         |                    |                       |
//	              |         +--------fail--------+----------fail--------+--> failed
//	              +--unassign-- assigned
//
// delivered and failed are terminal; no backward moves are permitted.
// Status is a value object that validates state transitions and provides
// string representations for persistence and display.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Pending is the initial status when a parcel is first booked.
	// Parcels in this status carry no agent and wait for assignment.
	Pending

	// Assigned indicates the parcel has been matched with a delivery agent
	// but not yet collected from the pickup address.
	Assigned

	// PickedUp indicates the agent has collected the parcel.
	PickedUp

	// InTransit indicates the parcel is on its way to the delivery address.
	InTransit

	// Delivered indicates successful delivery. Terminal.
	Delivered

	// Failed indicates the delivery attempt was abandoned. Terminal.
	Failed
)

// getStatusStrings returns a map of Status values to their string representations.
func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:   "unknown",
		Pending:   "pending",
		Assigned:  "assigned",
		PickedUp:  "picked-up",
		InTransit: "in-transit",
		Delivered: "delivered",
		Failed:    "failed",
	}
}

// getValidStatusStrings returns a map of only valid Status values.
func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Pending:   "pending",
		Assigned:  "assigned",
		PickedUp:  "picked-up",
		InTransit: "in-transit",
		Delivered: "delivered",
		Failed:    "failed",
	}
}

// StatusFromString parses a status from its wire representation, e.g. "picked-up".
// Returns a validation error for unrecognized input.
func StatusFromString(s string) (Status, error) {
	for status, str := range getValidStatusStrings() {
		if str == s {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status",
		fmt.Errorf("%q is not a parcel status", s))
}

// Validate checks if the Status value is valid.
// Unknown (0) and out-of-range values are invalid.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the wire name of the status, or "unknown" for invalid values.
// Implements fmt.Stringer and is safe to call on any Status value.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// IsTerminal reports whether the status permits no further transitions.
func (s Status) IsTerminal() bool {
	return s == Delivered || s == Failed
}

// IsActiveDelivery reports whether a parcel in this status occupies an agent's
// active delivery slot: assigned, picked-up or in-transit.
func (s Status) IsActiveDelivery() bool {
	return s == Assigned || s == PickedUp || s == InTransit
}

// ValidateCanHaveAgent validates the consistency between parcel status and agent link.
//
// Business rules:
//   - Pending parcels must not have an agent
//   - All other statuses require an agent (terminal parcels keep their last agent)
func (s Status) ValidateCanHaveAgent(hasAgent bool) error {
	if hasAgent && s == Pending {
		return errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("%s is not a valid status to have an agent", s))
	}

	if !hasAgent && s != Pending {
		return errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("%s is not a valid status to have no agent", s))
	}

	return nil
}

// Assign transitions the status to Assigned.
//
// Valid transitions:
//   - Pending -> Assigned
//
// Any other source status fails: assignment is only legal for parcels that are
// waiting for an agent. Reassignment keeps the Assigned status and is handled
// by the aggregate, not by this transition.
func (s Status) Assign() (Status, error) {
	if s != Pending {
		return 0, transitionError(s, Assigned)
	}
	return Assigned, nil
}

// Pickup transitions the status to PickedUp.
//
// Valid transitions:
//   - Assigned -> PickedUp
func (s Status) Pickup() (Status, error) {
	if s != Assigned {
		return 0, transitionError(s, PickedUp)
	}
	return PickedUp, nil
}

// Transit transitions the status to InTransit.
//
// Valid transitions:
//   - PickedUp -> InTransit
func (s Status) Transit() (Status, error) {
	if s != PickedUp {
		return 0, transitionError(s, InTransit)
	}
	return InTransit, nil
}

// Deliver transitions the status to Delivered, the successful terminal state.
//
// Valid transitions:
//   - InTransit -> Delivered
func (s Status) Deliver() (Status, error) {
	if s != InTransit {
		return 0, transitionError(s, Delivered)
	}
	return Delivered, nil
}

// Fail transitions the status to Failed, the unsuccessful terminal state.
// A delivery attempt can be abandoned at any point after assignment.
//
// Valid transitions:
//   - Assigned -> Failed
//   - PickedUp -> Failed
//   - InTransit -> Failed
func (s Status) Fail() (Status, error) {
	if !s.IsActiveDelivery() {
		return 0, transitionError(s, Failed)
	}
	return Failed, nil
}

// Unassign transitions the status back to Pending, releasing the agent link.
// Only Assigned parcels can be unassigned; once picked up, a parcel can only
// complete or fail.
//
// Valid transitions:
//   - Assigned -> Pending
func (s Status) Unassign() (Status, error) {
	if s != Assigned {
		return 0, transitionError(s, Pending)
	}
	return Pending, nil
}

// transitionError builds an ErrInvalidTransition carrying the attempted edge.
func transitionError(from, to Status) error {
	return fmt.Errorf("%w: cannot move parcel from %s to %s", ErrInvalidTransition, from, to)
}

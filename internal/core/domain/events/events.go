package events

import (
	"time"

	"couriertrack/internal/core/domain/model/agent"
	"couriertrack/internal/core/domain/model/kernel"
	"couriertrack/internal/core/domain/model/parcel"
)

// Event names as seen by subscribers.
const (
	ParcelStatusChangedName      = "parcel.status_changed"
	ParcelAssignedName           = "parcel.assigned"
	AgentAvailabilityChangedName = "agent.availability_changed"
)

// Event is a fact about a completed state change, published after the change
// was committed. Subscribers must treat events as immutable.
type Event interface {
	// Name returns the stable event name, e.g. "parcel.status_changed".
	Name() string
	// OccurredAt returns when the change took effect.
	OccurredAt() time.Time
}

// ParcelStatusChanged is published whenever a parcel moves through its lifecycle,
// including the terminal delivered and failed states.
type ParcelStatusChanged struct {
	ParcelID       kernel.UUID
	TrackingNumber kernel.TrackingNumber
	From           parcel.Status
	To             parcel.Status
	// AgentID is the agent linked to the parcel after the change, nil for pending.
	AgentID *kernel.UUID
	At      time.Time
}

// Name returns the stable event name.
func (e ParcelStatusChanged) Name() string { return ParcelStatusChangedName }

// OccurredAt returns when the change took effect.
func (e ParcelStatusChanged) OccurredAt() time.Time { return e.At }

// ParcelAssigned is published when a parcel is linked to an agent, whether an
// operator picked the agent, the dispatcher did, or the parcel was reassigned.
type ParcelAssigned struct {
	ParcelID       kernel.UUID
	TrackingNumber kernel.TrackingNumber
	AgentID        kernel.UUID
	At             time.Time
}

// Name returns the stable event name.
func (e ParcelAssigned) Name() string { return ParcelAssignedName }

// OccurredAt returns when the change took effect.
func (e ParcelAssigned) OccurredAt() time.Time { return e.At }

// AgentAvailabilityChanged is published when an agent changes duty state.
type AgentAvailabilityChanged struct {
	AgentID kernel.UUID
	From    agent.Availability
	To      agent.Availability
	At      time.Time
}

// Name returns the stable event name.
func (e AgentAvailabilityChanged) Name() string { return AgentAvailabilityChangedName }

// OccurredAt returns when the change took effect.
func (e AgentAvailabilityChanged) OccurredAt() time.Time { return e.At }

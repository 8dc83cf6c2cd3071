package agent

import (
	"errors"
	"fmt"
	"strings"

	"couriertrack/internal/core/domain/model/kernel"
	"couriertrack/internal/pkg/errs"
	"couriertrack/internal/pkg/guard"
)

const (
	// ratingMin and ratingMax bound the agent's delivery rating scale.
	ratingMin = 0
	ratingMax = 5
)

// Domain errors for agent operations.
var (
	// ErrAgentIsNotConstructed is returned when an instance was not created through
	// the NewAgent or RestoreAgent constructors.
	ErrAgentIsNotConstructed = errors.New("Agent must be created via NewAgent or RestoreAgent constructors")
	// ErrAgentUnavailable is returned when assigning work to an agent that cannot take it.
	ErrAgentUnavailable = errors.New("agent is unavailable")
	// ErrNoActiveDeliveries is returned when releasing a delivery from an agent with none in flight.
	ErrNoActiveDeliveries = errors.New("agent has no active deliveries")
	// ErrNameIsRequired is returned when attempting to create an agent without a name.
	ErrNameIsRequired = errs.NewValueIsRequiredError("name")
	// ErrPhoneIsRequired is returned when attempting to create an agent without a phone number.
	ErrPhoneIsRequired = errs.NewValueIsRequiredError("phone")
)

// Agent represents a delivery agent in the system. It is the aggregate root
// that manages the agent's duty state and delivery workload.
//
// Agent follows these invariants:
//   - Must have a valid unique identifier, name, email and phone
//   - activeDeliveries counts parcels currently assigned to the agent and never
//     goes negative; it moves only through Take, Release and RecordCompletion
//   - maxActive caps concurrent deliveries; zero means unbounded
//   - Rating stays within the 0..5 scale
//   - A new agent starts offline with empty counters
//
// The struct uses private fields to ensure encapsulation and maintains its
// invariants through validated methods.
type Agent struct {
	// id is the unique identifier of the agent
	id kernel.UUID

	// name is the agent's display name
	name string

	// email and phone are the agent's contact details
	email string
	phone string

	// vehicle describes what the agent delivers with
	vehicle Vehicle

	// availability is the agent's self-reported duty state
	availability Availability

	// activeDeliveries is the number of parcels currently assigned to the agent
	activeDeliveries int

	// maxActive caps concurrent deliveries; zero means unbounded
	maxActive int

	// completedDeliveries counts successful deliveries over the agent's lifetime
	completedDeliveries int

	// rating is the agent's average delivery rating on a 0..5 scale
	rating float64

	// version is the optimistic concurrency token, bumped on every persisted update
	version int

	// guard ensures the agent was created via a constructor
	guard guard.ConstructorGuard
}

// NewAgent creates a new Agent that starts offline with no deliveries.
// This is the only way to register an agent, ensuring all business invariants hold.
//
// All validation failures are aggregated with errors.Join so the caller sees
// every malformed field at once.
//
// Example:
//
//	vehicle, _ := agent.NewVehicle(agent.Motorcycle, "Honda CB350")
//	a, err := agent.NewAgent(
//	    kernel.NewUUID(),
//	    "Rahul Kumar", "rahul@couriertrack.io", "+91 98765 43210",
//	    vehicle, 3,
//	)
//	if err != nil {
//	    // handle validation error
//	}
func NewAgent(
	id kernel.UUID,
	name string,
	email string,
	phone string,
	vehicle Vehicle,
	maxActive int,
) (*Agent, error) {
	a := &Agent{
		availability: Offline,
		guard:        guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		a.setID(id),
		a.setName(name),
		a.setEmail(email),
		a.setPhone(phone),
		a.setVehicle(vehicle),
		a.setMaxActive(maxActive),
	); err != nil {
		return nil, err
	}

	return a, nil
}

// RestoreAgent reconstructs an Agent aggregate from persistent storage.
// Unlike NewAgent, which always starts the agent offline with empty counters,
// this constructor restores the agent to its previously persisted state.
func RestoreAgent(
	id kernel.UUID,
	name string,
	email string,
	phone string,
	vehicle Vehicle,
	availability Availability,
	activeDeliveries int,
	maxActive int,
	completedDeliveries int,
	rating float64,
	version int,
) (*Agent, error) {
	a := &Agent{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		a.setID(id),
		a.setName(name),
		a.setEmail(email),
		a.setPhone(phone),
		a.setVehicle(vehicle),
		a.setAvailability(availability),
		a.setActiveDeliveries(activeDeliveries),
		a.setMaxActive(maxActive),
		a.setCompletedDeliveries(completedDeliveries),
		a.setRating(rating),
		a.setVersion(version),
	); err != nil {
		return nil, err
	}

	return a, nil
}

// Validate ensures the Agent instance was properly constructed.
// Returns ErrAgentIsNotConstructed for nil and zero-value instances.
func (a *Agent) Validate() error {
	if a == nil {
		return ErrAgentIsNotConstructed
	}
	return a.guard.Validate(ErrAgentIsNotConstructed)
}

// IsEqual compares two agents by their unique identifiers.
func (a *Agent) IsEqual(other *Agent) bool {
	return other != nil && a.id.IsEqual(other.id)
}

// ID returns the agent's unique identifier.
func (a *Agent) ID() kernel.UUID {
	return a.id
}

// Name returns the agent's display name.
func (a *Agent) Name() string {
	return a.name
}

// Email returns the agent's email address.
func (a *Agent) Email() string {
	return a.email
}

// Phone returns the agent's phone number.
func (a *Agent) Phone() string {
	return a.phone
}

// Vehicle returns the agent's vehicle.
func (a *Agent) Vehicle() Vehicle {
	return a.vehicle
}

// Availability returns the agent's duty state.
func (a *Agent) Availability() Availability {
	return a.availability
}

// ActiveDeliveries returns the number of parcels currently assigned to the agent.
func (a *Agent) ActiveDeliveries() int {
	return a.activeDeliveries
}

// MaxActive returns the cap on concurrent deliveries. Zero means unbounded.
func (a *Agent) MaxActive() int {
	return a.maxActive
}

// CompletedDeliveries returns the lifetime count of successful deliveries.
func (a *Agent) CompletedDeliveries() int {
	return a.completedDeliveries
}

// Rating returns the agent's average delivery rating on a 0..5 scale.
func (a *Agent) Rating() float64 {
	return a.rating
}

// Version returns the optimistic concurrency token.
func (a *Agent) Version() int {
	return a.version
}

// SetAvailability changes the agent's duty state.
// Going offline does not touch deliveries already in flight; the agent is
// expected to finish them.
func (a *Agent) SetAvailability(availability Availability) error {
	return a.setAvailability(availability)
}

// CanTake reports whether the agent may receive one more parcel:
// the agent is on duty and below its concurrent delivery cap.
func (a *Agent) CanTake() bool {
	if !a.availability.AcceptsWork() {
		return false
	}
	return a.maxActive == 0 || a.activeDeliveries < a.maxActive
}

// Take records that a parcel was assigned to the agent.
//
// Business rules:
//   - The agent must be on duty (online or busy)
//   - The agent must be below its concurrent delivery cap
//
// Fails with ErrAgentUnavailable otherwise. The caller moves the parcel to its
// assigned status in the same transaction.
func (a *Agent) Take() error {
	if !a.availability.AcceptsWork() {
		return fmt.Errorf("%w: agent %s is %s", ErrAgentUnavailable, a.name, a.availability)
	}
	if a.maxActive > 0 && a.activeDeliveries >= a.maxActive {
		return fmt.Errorf("%w: agent %s already carries %d of %d deliveries",
			ErrAgentUnavailable, a.name, a.activeDeliveries, a.maxActive)
	}

	a.activeDeliveries++
	return nil
}

// Release records that a parcel left the agent's workload without completing,
// e.g. it was unassigned or handed to another agent.
func (a *Agent) Release() error {
	if a.activeDeliveries == 0 {
		return ErrNoActiveDeliveries
	}

	a.activeDeliveries--
	return nil
}

// RecordCompletion records the end of a delivery attempt. The parcel leaves
// the agent's active workload either way; only a successful delivery counts
// toward the lifetime total.
func (a *Agent) RecordCompletion(delivered bool) error {
	if err := a.Release(); err != nil {
		return err
	}

	if delivered {
		a.completedDeliveries++
	}
	return nil
}

// UpdateRating sets the agent's average delivery rating.
func (a *Agent) UpdateRating(rating float64) error {
	return a.setRating(rating)
}

// setID validates and sets the agent's unique identifier.
func (a *Agent) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	a.id = id
	return nil
}

func (a *Agent) setName(name string) error {
	if name == "" {
		return ErrNameIsRequired
	}
	a.name = name
	return nil
}

// setEmail validates and sets the agent's email address.
// Validation is deliberately shallow; delivery confirmation is the only proof
// an address works.
func (a *Agent) setEmail(email string) error {
	if email == "" {
		return errs.NewValueIsRequiredError("email")
	}
	if !strings.Contains(email, "@") {
		return errs.NewValueIsInvalidErrorWithCause("email",
			fmt.Errorf("%q is not an email address", email))
	}
	a.email = email
	return nil
}

func (a *Agent) setPhone(phone string) error {
	if phone == "" {
		return ErrPhoneIsRequired
	}
	a.phone = phone
	return nil
}

func (a *Agent) setVehicle(vehicle Vehicle) error {
	if err := vehicle.Validate(); err != nil {
		return err
	}
	a.vehicle = vehicle
	return nil
}

func (a *Agent) setAvailability(availability Availability) error {
	if err := availability.Validate(); err != nil {
		return err
	}
	a.availability = availability
	return nil
}

func (a *Agent) setActiveDeliveries(activeDeliveries int) error {
	if activeDeliveries < 0 {
		return errs.NewValueIsInvalidErrorWithCause("active deliveries",
			fmt.Errorf("%d is negative", activeDeliveries))
	}
	a.activeDeliveries = activeDeliveries
	return nil
}

func (a *Agent) setMaxActive(maxActive int) error {
	if maxActive < 0 {
		return errs.NewValueIsInvalidErrorWithCause("max active",
			fmt.Errorf("%d is negative", maxActive))
	}
	a.maxActive = maxActive
	return nil
}

func (a *Agent) setCompletedDeliveries(completedDeliveries int) error {
	if completedDeliveries < 0 {
		return errs.NewValueIsInvalidErrorWithCause("completed deliveries",
			fmt.Errorf("%d is negative", completedDeliveries))
	}
	a.completedDeliveries = completedDeliveries
	return nil
}

func (a *Agent) setRating(rating float64) error {
	if rating < ratingMin || rating > ratingMax {
		return errs.NewValueIsOutOfRangeError("rating", rating, ratingMin, ratingMax)
	}
	a.rating = rating
	return nil
}

func (a *Agent) setVersion(version int) error {
	if version < 0 {
		return errs.NewVersionIsInvalidErrorWithCause("agent version",
			fmt.Errorf("%d is negative", version))
	}
	a.version = version
	return nil
}

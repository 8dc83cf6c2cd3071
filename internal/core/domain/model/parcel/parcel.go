package parcel

import (
	"errors"
	"fmt"
	"time"

	"couriertrack/internal/core/domain/model/kernel"
	"couriertrack/internal/pkg/errs"
	"couriertrack/internal/pkg/guard"
)

// Domain errors for parcel operations.
var (
	// ErrParcelIsNotConstructed is returned when an instance was not created through
	// the NewParcel or RestoreParcel constructors.
	ErrParcelIsNotConstructed = errors.New("Parcel must be created via NewParcel or RestoreParcel constructors")
	// ErrParcelAlreadyAssigned is returned when assigning a parcel that is not pending.
	ErrParcelAlreadyAssigned = errors.New("parcel is already assigned")
	// ErrSenderIsRequired is returned when attempting to create a parcel without a sender.
	ErrSenderIsRequired = errs.NewValueIsRequiredError("sender")
	// ErrRecipientIsRequired is returned when attempting to create a parcel without a recipient.
	ErrRecipientIsRequired = errs.NewValueIsRequiredError("recipient")
	// ErrPickupAddressIsRequired is returned when attempting to create a parcel without a pickup address.
	ErrPickupAddressIsRequired = errs.NewValueIsRequiredError("pickup address")
	// ErrDeliveryAddressIsRequired is returned when attempting to create a parcel without a delivery address.
	ErrDeliveryAddressIsRequired = errs.NewValueIsRequiredError("delivery address")
)

// Parcel represents a shipment in the system. It is the aggregate root that manages
// the parcel lifecycle from booking through assignment and delivery.
//
// Parcel follows these invariants:
//   - Must have a valid unique identifier and tracking number
//   - Sender, recipient and both addresses must be present
//   - Weight must be positive
//   - COD parcels carry a non-negative collection amount; prepaid parcels collect nothing
//   - Status transitions follow the lifecycle state machine in Status
//   - An agent is linked if and only if the parcel has left the pending status;
//     assignment happens exclusively through Assign/Reassign
//
// The struct uses private fields to ensure encapsulation and maintains its
// invariants through validated methods.
type Parcel struct {
	// id is the unique identifier of the parcel
	id kernel.UUID

	// trackingNumber is the immutable caller-facing identifier
	trackingNumber kernel.TrackingNumber

	// sender and recipient are the names of the two parties
	sender    string
	recipient string

	// pickupAddress and deliveryAddress are free-form postal addresses
	pickupAddress   string
	deliveryAddress string

	// weightKg is the declared weight in kilograms (must be positive)
	weightKg float64

	// category is the declared content type, e.g. "Electronics" (optional)
	category string

	// priority is the handling priority
	priority Priority

	// payment carries the payment method and COD amount
	payment Payment

	// amount is the delivery fee charged for the parcel
	amount kernel.Money

	// agentID is the assigned agent's ID (nil while pending)
	agentID *kernel.UUID

	// status is the current state in the parcel lifecycle
	status Status

	// createdAt is the booking timestamp supplied by the identity provider
	createdAt time.Time

	// version is the optimistic concurrency token, bumped on every persisted update
	version int

	// guard ensures the parcel was created via a constructor
	guard guard.ConstructorGuard
}

// NewParcel creates a new Parcel in the pending status with no agent.
// This is the only way to book a parcel, ensuring all business invariants hold.
//
// All validation failures are aggregated with errors.Join so the caller sees
// every malformed field at once.
//
// Example:
//
//	tn, _ := kernel.NewTrackingNumber("CP001234567")
//	amount, _ := kernel.NewMoneyFromFloat(25.99)
//	p, err := parcel.NewParcel(
//	    kernel.NewUUID(), tn,
//	    "John Doe", "Jane Smith",
//	    "123 Main St, New York, NY", "456 Oak Ave, Brooklyn, NY",
//	    2.5, "Electronics",
//	    parcel.PriorityHigh, parcel.NewPrepaidPayment(), amount,
//	    time.Now(),
//	)
//	if err != nil {
//	    // handle validation error
//	}
func NewParcel(
	id kernel.UUID,
	trackingNumber kernel.TrackingNumber,
	sender string,
	recipient string,
	pickupAddress string,
	deliveryAddress string,
	weightKg float64,
	category string,
	priority Priority,
	payment Payment,
	amount kernel.Money,
	createdAt time.Time,
) (*Parcel, error) {
	p := &Parcel{
		status:   Pending,
		category: category,
		guard:    guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		p.setID(id),
		p.setTrackingNumber(trackingNumber),
		p.setSender(sender),
		p.setRecipient(recipient),
		p.setPickupAddress(pickupAddress),
		p.setDeliveryAddress(deliveryAddress),
		p.setWeightKg(weightKg),
		p.setPriority(priority),
		p.setPayment(payment),
		p.setCreatedAt(createdAt),
	); err != nil {
		return nil, err
	}

	p.amount = amount
	return p, nil
}

// RestoreParcel reconstructs a Parcel aggregate from persistent storage.
// Unlike NewParcel, which always starts the lifecycle at pending, this constructor
// restores the parcel to its previously persisted state including status, agent
// link and concurrency version.
//
// The status/agent consistency invariant is re-checked on restore so a corrupted
// row cannot produce an aggregate that violates it.
func RestoreParcel(
	id kernel.UUID,
	trackingNumber kernel.TrackingNumber,
	sender string,
	recipient string,
	pickupAddress string,
	deliveryAddress string,
	weightKg float64,
	category string,
	priority Priority,
	payment Payment,
	amount kernel.Money,
	status Status,
	agentID *kernel.UUID,
	createdAt time.Time,
	version int,
) (*Parcel, error) {
	p := &Parcel{
		category: category,
		guard:    guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		p.setID(id),
		p.setTrackingNumber(trackingNumber),
		p.setSender(sender),
		p.setRecipient(recipient),
		p.setPickupAddress(pickupAddress),
		p.setDeliveryAddress(deliveryAddress),
		p.setWeightKg(weightKg),
		p.setPriority(priority),
		p.setPayment(payment),
		p.setCreatedAt(createdAt),
		p.setStatusWithAgent(status, agentID),
		p.setVersion(version),
	); err != nil {
		return nil, err
	}

	p.amount = amount
	return p, nil
}

// Validate ensures the Parcel instance was properly constructed.
// Returns ErrParcelIsNotConstructed for nil and zero-value instances.
func (p *Parcel) Validate() error {
	if p == nil {
		return ErrParcelIsNotConstructed
	}
	return p.guard.Validate(ErrParcelIsNotConstructed)
}

// IsEqual compares two parcels by their unique identifiers.
func (p *Parcel) IsEqual(other *Parcel) bool {
	return other != nil && p.id.IsEqual(other.id)
}

// ID returns the parcel's unique identifier.
func (p *Parcel) ID() kernel.UUID {
	return p.id
}

// TrackingNumber returns the immutable caller-facing identifier.
func (p *Parcel) TrackingNumber() kernel.TrackingNumber {
	return p.trackingNumber
}

// Sender returns the sender's name.
func (p *Parcel) Sender() string {
	return p.sender
}

// Recipient returns the recipient's name.
func (p *Parcel) Recipient() string {
	return p.recipient
}

// PickupAddress returns the address the parcel is collected from.
func (p *Parcel) PickupAddress() string {
	return p.pickupAddress
}

// DeliveryAddress returns the address the parcel is delivered to.
func (p *Parcel) DeliveryAddress() string {
	return p.deliveryAddress
}

// WeightKg returns the declared weight in kilograms.
func (p *Parcel) WeightKg() float64 {
	return p.weightKg
}

// Category returns the declared content type. May be empty.
func (p *Parcel) Category() string {
	return p.category
}

// Priority returns the handling priority.
func (p *Parcel) Priority() Priority {
	return p.priority
}

// Payment returns the payment terms of the parcel.
func (p *Parcel) Payment() Payment {
	return p.payment
}

// Amount returns the delivery fee charged for the parcel.
func (p *Parcel) Amount() kernel.Money {
	return p.amount
}

// Agent returns the assigned agent's ID, or nil while the parcel is pending.
// Terminal parcels keep their last agent for history.
func (p *Parcel) Agent() *kernel.UUID {
	return p.agentID
}

// Status returns the current status of the parcel.
func (p *Parcel) Status() Status {
	return p.status
}

// CreatedAt returns the booking timestamp.
func (p *Parcel) CreatedAt() time.Time {
	return p.createdAt
}

// Version returns the optimistic concurrency token.
func (p *Parcel) Version() int {
	return p.version
}

// Assign links the parcel to an agent and moves it to the assigned status.
//
// Business rules:
//   - The agent ID must be valid
//   - The parcel must be pending; any other status fails with ErrParcelAlreadyAssigned
//
// Assignment must go through the dispatcher so the agent's active delivery
// counter moves in the same transaction; calling this in isolation breaks the
// counter invariant.
func (p *Parcel) Assign(agentID kernel.UUID) error {
	if err := agentID.Validate(); err != nil {
		return err
	}

	if p.status != Pending {
		return fmt.Errorf("%w: parcel %s is in status %s",
			ErrParcelAlreadyAssigned, p.trackingNumber, p.status)
	}

	newStatus, err := p.status.Assign()
	if err != nil {
		return err
	}

	p.status = newStatus
	p.agentID = &agentID
	return nil
}

// Reassign moves the agent link to a different agent while keeping the status.
// Legal only while the parcel is assigned or picked up; an in-transit parcel
// stays with its agent until it completes or fails.
func (p *Parcel) Reassign(newAgentID kernel.UUID) error {
	if err := newAgentID.Validate(); err != nil {
		return err
	}

	if p.status != Assigned && p.status != PickedUp {
		return fmt.Errorf("%w: cannot reassign parcel in status %s", ErrInvalidTransition, p.status)
	}

	p.agentID = &newAgentID
	return nil
}

// Unassign clears the agent link and returns the parcel to pending.
// Legal only from the assigned status; once picked up, a parcel can only be
// delivered or marked failed.
func (p *Parcel) Unassign() error {
	newStatus, err := p.status.Unassign()
	if err != nil {
		return err
	}

	p.status = newStatus
	p.agentID = nil
	return nil
}

// Pickup marks the parcel as collected by its agent.
func (p *Parcel) Pickup() error {
	newStatus, err := p.status.Pickup()
	if err != nil {
		return err
	}

	p.status = newStatus
	return nil
}

// Transit marks the parcel as on its way to the delivery address.
func (p *Parcel) Transit() error {
	newStatus, err := p.status.Transit()
	if err != nil {
		return err
	}

	p.status = newStatus
	return nil
}

// Deliver marks the parcel as successfully delivered. Terminal.
// The agent link is kept for history and rating attribution.
func (p *Parcel) Deliver() error {
	newStatus, err := p.status.Deliver()
	if err != nil {
		return err
	}

	p.status = newStatus
	return nil
}

// Fail marks the delivery attempt as abandoned. Terminal.
// Legal from any active status; the agent link is kept for history.
func (p *Parcel) Fail() error {
	newStatus, err := p.status.Fail()
	if err != nil {
		return err
	}

	p.status = newStatus
	return nil
}

// setID validates and sets the parcel's unique identifier.
func (p *Parcel) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	p.id = id
	return nil
}

// setTrackingNumber validates and sets the caller-facing identifier.
func (p *Parcel) setTrackingNumber(trackingNumber kernel.TrackingNumber) error {
	if err := trackingNumber.Validate(); err != nil {
		return err
	}
	p.trackingNumber = trackingNumber
	return nil
}

func (p *Parcel) setSender(sender string) error {
	if sender == "" {
		return ErrSenderIsRequired
	}
	p.sender = sender
	return nil
}

func (p *Parcel) setRecipient(recipient string) error {
	if recipient == "" {
		return ErrRecipientIsRequired
	}
	p.recipient = recipient
	return nil
}

func (p *Parcel) setPickupAddress(address string) error {
	if address == "" {
		return ErrPickupAddressIsRequired
	}
	p.pickupAddress = address
	return nil
}

func (p *Parcel) setDeliveryAddress(address string) error {
	if address == "" {
		return ErrDeliveryAddressIsRequired
	}
	p.deliveryAddress = address
	return nil
}

// setWeightKg validates and sets the declared weight. Weight must be positive.
func (p *Parcel) setWeightKg(weightKg float64) error {
	if weightKg <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("weight",
			fmt.Errorf("%g is not greater than 0", weightKg))
	}
	p.weightKg = weightKg
	return nil
}

func (p *Parcel) setPriority(priority Priority) error {
	if err := priority.Validate(); err != nil {
		return err
	}
	p.priority = priority
	return nil
}

func (p *Parcel) setPayment(payment Payment) error {
	if err := payment.Validate(); err != nil {
		return err
	}
	p.payment = payment
	return nil
}

func (p *Parcel) setCreatedAt(createdAt time.Time) error {
	if createdAt.IsZero() {
		return errs.NewValueIsRequiredError("created at")
	}
	p.createdAt = createdAt
	return nil
}

// setStatusWithAgent validates the restored status together with the agent link,
// enforcing the status/agent consistency invariant.
func (p *Parcel) setStatusWithAgent(status Status, agentID *kernel.UUID) error {
	if err := status.Validate(); err != nil {
		return err
	}

	if agentID != nil {
		if err := agentID.Validate(); err != nil {
			return err
		}
	}

	if err := status.ValidateCanHaveAgent(agentID != nil); err != nil {
		return err
	}

	p.status = status
	p.agentID = agentID
	return nil
}

func (p *Parcel) setVersion(version int) error {
	if version < 0 {
		return errs.NewVersionIsInvalidErrorWithCause("parcel version",
			fmt.Errorf("%d is negative", version))
	}
	p.version = version
	return nil
}

package commands

import (
	"errors"

	"couriertrack/internal/core/domain/model/kernel"
	"couriertrack/internal/core/domain/model/parcel"
	"couriertrack/internal/pkg/guard"
)

var (
	ErrCreateParcelCommandIsNotConstructed = errors.New(
		"CreateParcelCommand must be created via NewCreateParcelCommand constructor",
	)
	ErrSenderIsRequired          = errors.New("sender is required")
	ErrRecipientIsRequired       = errors.New("recipient is required")
	ErrPickupAddressIsRequired   = errors.New("pickup address is required")
	ErrDeliveryAddressIsRequired = errors.New("delivery address is required")
	ErrWeightIsInvalid           = errors.New("weight must be greater than 0")
)

// CreateParcelCommand represents a request to book a new parcel.
// Encapsulates the shipment details: parties, addresses, weight, priority and
// payment terms. The tracking number and booking time are supplied by the
// handler, not the caller.
//
// Example:
//
//	parcelID := kernel.NewUUID()
//	amount, _ := kernel.NewMoneyFromFloat(25.99)
//	cmd, err := NewCreateParcelCommand(
//	    parcelID,
//	    "John Doe", "Jane Smith",
//	    "123 Main St", "456 Oak Ave",
//	    2.5, "Electronics",
//	    parcel.PriorityHigh, parcel.NewPrepaidPayment(), amount,
//	)
//	if err != nil {
//	    return fmt.Errorf("invalid parcel data: %w", err)
//	}
//
//	handler := NewCreateParcelCommandHandler(uowFactory, identity)
//	trackingNumber, err := handler.Handle(ctx, cmd)
type CreateParcelCommand struct { //nolint:recvcheck //using for validation
	parcelID        kernel.UUID
	sender          string
	recipient       string
	pickupAddress   string
	deliveryAddress string
	weightKg        float64
	category        string
	priority        parcel.Priority
	payment         parcel.Payment
	amount          kernel.Money

	guard guard.ConstructorGuard
}

// NewCreateParcelCommand creates a command to book a new parcel.
// Validates the identifier, both parties, both addresses, weight, priority and
// payment. Returns an error if any validation fails.
func NewCreateParcelCommand(
	parcelID kernel.UUID,
	sender string,
	recipient string,
	pickupAddress string,
	deliveryAddress string,
	weightKg float64,
	category string,
	priority parcel.Priority,
	payment parcel.Payment,
	amount kernel.Money,
) (CreateParcelCommand, error) {
	cmd := CreateParcelCommand{
		category: category,
		amount:   amount,
		guard:    guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setParcelID(parcelID),
		cmd.setSender(sender),
		cmd.setRecipient(recipient),
		cmd.setPickupAddress(pickupAddress),
		cmd.setDeliveryAddress(deliveryAddress),
		cmd.setWeightKg(weightKg),
		cmd.setPriority(priority),
		cmd.setPayment(payment),
	); err != nil {
		return CreateParcelCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrCreateParcelCommandIsNotConstructed if validation fails.
func (c CreateParcelCommand) Validate() error {
	return c.guard.Validate(ErrCreateParcelCommandIsNotConstructed)
}

// ParcelID returns the unique identifier for the parcel.
func (c CreateParcelCommand) ParcelID() kernel.UUID {
	return c.parcelID
}

// Sender returns the sender's name.
func (c CreateParcelCommand) Sender() string {
	return c.sender
}

// Recipient returns the recipient's name.
func (c CreateParcelCommand) Recipient() string {
	return c.recipient
}

// PickupAddress returns the address the parcel is collected from.
func (c CreateParcelCommand) PickupAddress() string {
	return c.pickupAddress
}

// DeliveryAddress returns the address the parcel is delivered to.
func (c CreateParcelCommand) DeliveryAddress() string {
	return c.deliveryAddress
}

// WeightKg returns the declared weight in kilograms.
func (c CreateParcelCommand) WeightKg() float64 {
	return c.weightKg
}

// Category returns the declared content type. May be empty.
func (c CreateParcelCommand) Category() string {
	return c.category
}

// Priority returns the handling priority.
func (c CreateParcelCommand) Priority() parcel.Priority {
	return c.priority
}

// Payment returns the payment terms.
func (c CreateParcelCommand) Payment() parcel.Payment {
	return c.payment
}

// Amount returns the delivery fee.
func (c CreateParcelCommand) Amount() kernel.Money {
	return c.amount
}

func (c *CreateParcelCommand) setParcelID(parcelID kernel.UUID) error {
	if err := parcelID.Validate(); err != nil {
		return err
	}

	c.parcelID = parcelID
	return nil
}

func (c *CreateParcelCommand) setSender(sender string) error {
	if sender == "" {
		return ErrSenderIsRequired
	}

	c.sender = sender
	return nil
}

func (c *CreateParcelCommand) setRecipient(recipient string) error {
	if recipient == "" {
		return ErrRecipientIsRequired
	}

	c.recipient = recipient
	return nil
}

func (c *CreateParcelCommand) setPickupAddress(pickupAddress string) error {
	if pickupAddress == "" {
		return ErrPickupAddressIsRequired
	}

	c.pickupAddress = pickupAddress
	return nil
}

func (c *CreateParcelCommand) setDeliveryAddress(deliveryAddress string) error {
	if deliveryAddress == "" {
		return ErrDeliveryAddressIsRequired
	}

	c.deliveryAddress = deliveryAddress
	return nil
}

func (c *CreateParcelCommand) setWeightKg(weightKg float64) error {
	if weightKg <= 0 {
		return ErrWeightIsInvalid
	}

	c.weightKg = weightKg
	return nil
}

func (c *CreateParcelCommand) setPriority(priority parcel.Priority) error {
	if err := priority.Validate(); err != nil {
		return err
	}

	c.priority = priority
	return nil
}

func (c *CreateParcelCommand) setPayment(payment parcel.Payment) error {
	if err := payment.Validate(); err != nil {
		return err
	}

	c.payment = payment
	return nil
}

package commands

import (
	"errors"

	"couriertrack/internal/core/domain/model/agent"
	"couriertrack/internal/core/domain/model/kernel"
	"couriertrack/internal/pkg/guard"
)

var (
	ErrCreateAgentCommandIsNotConstructed = errors.New(
		"CreateAgentCommand must be created via NewCreateAgentCommand constructor",
	)
	ErrAgentNameIsRequired = errors.New("agent name is required")
	ErrMaxActiveIsInvalid  = errors.New("max active deliveries must not be negative")
)

// CreateAgentCommand represents a request to register a new delivery agent.
// The agent starts offline with empty counters; it reports online through
// SetAgentAvailabilityCommand when ready to work.
//
// Example:
//
//	vehicle, _ := agent.NewVehicle(agent.Motorcycle, "Honda CB350")
//	cmd, err := NewCreateAgentCommand(
//	    kernel.NewUUID(),
//	    "Rahul Kumar", "rahul@couriertrack.io", "+91 98765 43210",
//	    vehicle, 3,
//	)
//	if err != nil {
//	    return fmt.Errorf("invalid agent data: %w", err)
//	}
type CreateAgentCommand struct { //nolint:recvcheck //using for validation
	agentID   kernel.UUID
	name      string
	email     string
	phone     string
	vehicle   agent.Vehicle
	maxActive int

	guard guard.ConstructorGuard
}

// NewCreateAgentCommand creates a command to register a new delivery agent.
// Validates the identifier, name, contact details and vehicle. A maxActive of
// zero means the agent has no cap on concurrent deliveries.
func NewCreateAgentCommand(
	agentID kernel.UUID,
	name string,
	email string,
	phone string,
	vehicle agent.Vehicle,
	maxActive int,
) (CreateAgentCommand, error) {
	cmd := CreateAgentCommand{
		email: email,
		phone: phone,
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setAgentID(agentID),
		cmd.setName(name),
		cmd.setVehicle(vehicle),
		cmd.setMaxActive(maxActive),
	); err != nil {
		return CreateAgentCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrCreateAgentCommandIsNotConstructed if validation fails.
func (c CreateAgentCommand) Validate() error {
	return c.guard.Validate(ErrCreateAgentCommandIsNotConstructed)
}

// AgentID returns the unique identifier for the agent.
func (c CreateAgentCommand) AgentID() kernel.UUID {
	return c.agentID
}

// Name returns the agent's display name.
func (c CreateAgentCommand) Name() string {
	return c.name
}

// Email returns the agent's email address.
func (c CreateAgentCommand) Email() string {
	return c.email
}

// Phone returns the agent's phone number.
func (c CreateAgentCommand) Phone() string {
	return c.phone
}

// Vehicle returns the agent's vehicle.
func (c CreateAgentCommand) Vehicle() agent.Vehicle {
	return c.vehicle
}

// MaxActive returns the cap on concurrent deliveries. Zero means unbounded.
func (c CreateAgentCommand) MaxActive() int {
	return c.maxActive
}

func (c *CreateAgentCommand) setAgentID(agentID kernel.UUID) error {
	if err := agentID.Validate(); err != nil {
		return err
	}

	c.agentID = agentID
	return nil
}

func (c *CreateAgentCommand) setName(name string) error {
	if name == "" {
		return ErrAgentNameIsRequired
	}

	c.name = name
	return nil
}

func (c *CreateAgentCommand) setVehicle(vehicle agent.Vehicle) error {
	if err := vehicle.Validate(); err != nil {
		return err
	}

	c.vehicle = vehicle
	return nil
}

func (c *CreateAgentCommand) setMaxActive(maxActive int) error {
	if maxActive < 0 {
		return ErrMaxActiveIsInvalid
	}

	c.maxActive = maxActive
	return nil
}

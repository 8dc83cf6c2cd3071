package services

import (
	"errors"

	"couriertrack/internal/core/domain/model/agent"
	"couriertrack/internal/core/domain/model/parcel"
)

// ErrAgentNotFound is returned when no suitable agent is available for parcel dispatch.
// This occurs when either no agents are provided or none of the provided agents
// is on duty with free capacity.
var ErrAgentNotFound = errors.New("agent not found")

// ParcelDispatcher is a domain service responsible for finding and assigning the
// optimal agent for a pending parcel based on current workload.
//
// Key responsibilities:
//   - Validating parcels before dispatch
//   - Selecting the least loaded on-duty agent
//   - Ensuring the parcel and agent move together in one assignment workflow
//
// Business rules:
//   - Parcels must be valid and pending before dispatch
//   - Any agent that is not offline and has free capacity is eligible; a busy
//     agent below its cap can still take more work
//   - Selection picks the minimum active delivery count, with ties broken by
//     agent ID in ascending order so repeated runs over the same state pick
//     the same agent
//
// Example usage:
//
//	dispatcher := services.NewParcelDispatcher()
//	agents := []*agent.Agent{agent1, agent2, agent3}
//
//	assignedAgent, err := dispatcher.Dispatch(parcel, agents)
//	if errors.Is(err, services.ErrAgentNotFound) {
//	    // No available agents for this parcel
//	    return
//	}
//	if err != nil {
//	    // Handle dispatch failure
//	    return
//	}
//	// Parcel successfully assigned to assignedAgent
type ParcelDispatcher struct{}

// NewParcelDispatcher creates a new ParcelDispatcher instance.
func NewParcelDispatcher() ParcelDispatcher {
	return ParcelDispatcher{}
}

// Dispatch finds the optimal agent for a pending parcel and executes the
// assignment workflow: the selected agent takes the parcel and the parcel is
// linked to the agent. The caller persists both aggregates in one transaction.
//
// Returns ErrAgentNotFound if no on-duty agent with free capacity exists,
// parcel.ErrParcelAlreadyAssigned if the parcel is not pending, or other
// validation errors.
func (d ParcelDispatcher) Dispatch(p *parcel.Parcel, agents []*agent.Agent) (*agent.Agent, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	bestAgent, err := d.findBestAgent(agents)
	if err != nil {
		return nil, err
	}

	if err = p.Assign(bestAgent.ID()); err != nil {
		return nil, err
	}

	if err = bestAgent.Take(); err != nil {
		return nil, err
	}

	return bestAgent, nil
}

// findBestAgent searches the provided agents for the least loaded one.
//
// Selection criteria:
//   - Agent must be valid, on duty and below its capacity
//   - Minimum active delivery count wins
//   - Ties are broken by agent ID in ascending order
func (d ParcelDispatcher) findBestAgent(agents []*agent.Agent) (*agent.Agent, error) {
	var bestAgent *agent.Agent

	for _, a := range agents {
		if err := a.Validate(); err != nil {
			return nil, err
		}

		// CanTake covers both duty state (online or busy) and capacity.
		if !a.CanTake() {
			continue
		}

		if bestAgent == nil || d.isBetter(a, bestAgent) {
			bestAgent = a
		}
	}

	if bestAgent == nil {
		return nil, ErrAgentNotFound
	}

	return bestAgent, nil
}

// isBetter reports whether candidate should be preferred over current.
func (d ParcelDispatcher) isBetter(candidate, current *agent.Agent) bool {
	if candidate.ActiveDeliveries() != current.ActiveDeliveries() {
		return candidate.ActiveDeliveries() < current.ActiveDeliveries()
	}
	return candidate.ID().String() < current.ID().String()
}

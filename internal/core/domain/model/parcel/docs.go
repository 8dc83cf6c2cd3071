// Package parcel provides domain entities and business logic for parcel management
// in the courier tracking system. It implements the Parcel aggregate root with
// lifecycle management and state transitions.
//
// The package includes:
//   - Parcel: The aggregate root that manages parcel identity, properties, and lifecycle
//   - Status: A state machine that enforces valid parcel status transitions
//   - Priority: The handling priority value object (low, medium, high)
//   - Payment: The payment terms value object (prepaid or cash on delivery)
//
// Key business rules:
//   - Parcels must have a valid identifier, tracking number, parties, addresses and positive weight
//   - Parcel status follows a defined workflow: pending -> assigned -> picked-up -> in-transit -> delivered
//   - Any active parcel can be marked failed; delivered and failed are terminal
//   - The assigned status can only be entered through assignment, which also links the agent
//   - COD parcels carry a non-negative collection amount; prepaid parcels collect nothing
//
// The package follows Domain-Driven Design principles, providing rich domain
// behavior, encapsulation, and validation to ensure business rules are enforced.
package parcel

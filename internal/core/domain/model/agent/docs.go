// Package agent contains the delivery agent aggregate and its value objects.
//
// The package implements agent management for the courier tracking system:
//
//   - Agent: aggregate root holding identity, contact details, duty state and
//     the delivery workload counters
//   - Availability: duty state machine (offline, online, busy)
//   - Vehicle: value object describing what the agent delivers with
//
// Agents start offline with empty counters. The activeDeliveries counter moves
// only through Take, Release and RecordCompletion so it always mirrors the set
// of parcels assigned to the agent; the dispatcher relies on this counter to
// spread work evenly.
//
// All types use constructor validation and encapsulation to maintain their
// integrity throughout the agent lifecycle.
package agent

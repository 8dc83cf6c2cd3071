// Package events defines the domain events the courier tracking system publishes
// after state changes commit. Events describe facts, never intents: a subscriber
// receiving ParcelAssigned can rely on the assignment being durable.
package events

// Package kernel provides core domain primitives for the courier tracking system.
// It implements fundamental building blocks following Domain-Driven Design principles
// that are used throughout the domain model.
//
// The package includes:
//   - UUID: A value object for unique identifiers with validation and comparison capabilities
//   - TrackingNumber: The caller-facing parcel identifier printed on labels and receipts
//   - Money: A non-negative monetary amount stored in cents
//
// These primitives enforce domain invariants and validation rules, ensuring that
// domain objects are always in a valid state. They are designed to be immutable
// and thread-safe, making them suitable for concurrent use.
package kernel

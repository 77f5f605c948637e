// Package kernel provides the value objects shared by the order and driver
// aggregates: UUID identifiers and Money amounts.
//
// Both are immutable and safe for concurrent use. The zero UUID is invalid and
// must be created through NewUUID, UUIDFromString or UUIDFromBytes.
package kernel

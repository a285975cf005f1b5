// Package kernel contains shared value objects used across the shipping
// domain model: identifiers, parcel dimensions, weight, monetary amounts,
// and postal addresses. All value objects are immutable and must be created
// through their constructor functions, which enforce the domain invariants.
package kernel

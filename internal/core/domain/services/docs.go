// Package services provides domain services that orchestrate business operations
// across multiple domain entities in the shipping system. It implements logic
// that doesn't naturally belong to a single aggregate root.
//
// The package includes:
//   - RateSelector: A domain service for resolving which rate quote a label
//     purchase should be attempted against
//
// Domain services coordinate between aggregates, implementing business logic that
// spans multiple bounded contexts following Domain-Driven Design principles.
package services

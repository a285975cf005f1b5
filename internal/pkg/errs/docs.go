// Package errs provides standardized error types for the shipping application.
// It implements a consistent pattern for error creation, formatting, and unwrapping
// that is used throughout the application.
//
// The package includes several error types for common error scenarios:
//   - ValueIsRequiredError: For when a required value is missing
//   - ValueIsInvalidError: For when a value is invalid
//   - ObjectNotFoundError: For when an object cannot be found
//   - InvalidStateError: For operations not permitted in the current label state
//   - StaleQuoteError: For quote ids that are no longer present in the live cache
//   - ProviderRejectedError: For definitive carrier-side denials
//   - ProviderUnavailableError: For transport-level failures that may be retried
//
// Each error type follows a consistent pattern:
//   - A sentinel error variable (e.g., ErrValueIsRequired)
//   - A struct type with fields for error details
//   - Constructor functions with and without cause
//   - Error() method for formatting the error message
//   - Unwrap() method for error wrapping/unwrapping support
//
// The provider error split is deliberate: ProviderRejectedError is terminal and
// maps a shipment to the failed label state, while ProviderUnavailableError never
// changes label state because the purchase may have succeeded on the provider's
// side even though the response was lost.
package errs

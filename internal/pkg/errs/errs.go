package errs

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors used as unwrap targets for error classification.
var (
	ErrValueIsRequired     = errors.New("value is required")
	ErrValueIsInvalid      = errors.New("value is invalid")
	ErrObjectNotFound      = errors.New("object not found")
	ErrInvalidState        = errors.New("operation is not permitted in the current state")
	ErrNoQuoteSelected     = errors.New("no quote selected")
	ErrStaleQuote          = errors.New("selected quote is not present in the current rate cache")
	ErrProviderRejected    = errors.New("provider rejected the request")
	ErrProviderUnavailable = errors.New("provider is unavailable")
)

// sanitize removes newlines from values before they are embedded in
// error messages, keeping log lines single-line.
func sanitize(v any) string {
	return strings.ReplaceAll(strings.ReplaceAll(fmt.Sprintf("%v", v), "\n", " "), "\r", " ")
}

// ValueIsRequiredError indicates that a required value is missing.
type ValueIsRequiredError struct {
	ParamName string
	Cause     error
}

func NewValueIsRequiredError(paramName string) *ValueIsRequiredError {
	return &ValueIsRequiredError{ParamName: paramName}
}

func NewValueIsRequiredErrorWithCause(paramName string, cause error) *ValueIsRequiredError {
	return &ValueIsRequiredError{ParamName: paramName, Cause: cause}
}

func (e *ValueIsRequiredError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("value is required: %s (cause: %s)", e.ParamName, sanitize(e.Cause))
	}
	return fmt.Sprintf("value is required: %s", e.ParamName)
}

func (e *ValueIsRequiredError) Unwrap() error {
	return ErrValueIsRequired
}

// ValueIsInvalidError indicates that a supplied value failed validation.
type ValueIsInvalidError struct {
	ParamName string
	Cause     error
}

func NewValueIsInvalidError(paramName string) *ValueIsInvalidError {
	return &ValueIsInvalidError{ParamName: paramName}
}

func NewValueIsInvalidErrorWithCause(paramName string, cause error) *ValueIsInvalidError {
	return &ValueIsInvalidError{ParamName: paramName, Cause: cause}
}

func (e *ValueIsInvalidError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("value is invalid: %s (cause: %s)", e.ParamName, sanitize(e.Cause))
	}
	return fmt.Sprintf("value is invalid: %s", e.ParamName)
}

func (e *ValueIsInvalidError) Unwrap() error {
	return ErrValueIsInvalid
}

// ObjectNotFoundError indicates that an object could not be located by its identifier.
type ObjectNotFoundError struct {
	ParamName string
	ID        any
	Cause     error
}

func NewObjectNotFoundError(paramName string, id any) *ObjectNotFoundError {
	return &ObjectNotFoundError{ParamName: paramName, ID: id}
}

func NewObjectNotFoundErrorWithCause(paramName string, id any, cause error) *ObjectNotFoundError {
	return &ObjectNotFoundError{ParamName: paramName, ID: id, Cause: cause}
}

func (e *ObjectNotFoundError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("object not found: param is: %s, ID is: %s (cause: %s)",
			e.ParamName, sanitize(e.ID), sanitize(e.Cause))
	}
	return fmt.Sprintf("object not found: %s", sanitize(e.ID))
}

func (e *ObjectNotFoundError) Unwrap() error {
	return ErrObjectNotFound
}

// InvalidStateError indicates that an operation is not allowed while an
// entity is in its current lifecycle state, e.g. purchasing a label twice
// or editing the dimensions of an already labeled parcel.
type InvalidStateError struct {
	Operation string
	State     string
}

func NewInvalidStateError(operation, state string) *InvalidStateError {
	return &InvalidStateError{Operation: operation, State: state}
}

func (e *InvalidStateError) Error() string {
	return fmt.Sprintf("invalid state: cannot %s while label state is %s", e.Operation, e.State)
}

func (e *InvalidStateError) Unwrap() error {
	return ErrInvalidState
}

// StaleQuoteError indicates that the selected quote id is not present in the
// current (unexpired) rate cache entry. The caller must re-fetch rates; a
// stale quote must never silently succeed with wrong pricing.
type StaleQuoteError struct {
	QuoteID string
}

func NewStaleQuoteError(quoteID string) *StaleQuoteError {
	return &StaleQuoteError{QuoteID: quoteID}
}

func (e *StaleQuoteError) Error() string {
	return fmt.Sprintf("stale quote: %s is not present in the current rate cache", sanitize(e.QuoteID))
}

func (e *StaleQuoteError) Unwrap() error {
	return ErrStaleQuote
}

// ProviderRejectedError is a definitive carrier-side denial. It is terminal:
// the shipment transitions to the failed label state and the carrier's detail
// text is persisted for the operator.
type ProviderRejectedError struct {
	Detail string
	Cause  error
}

func NewProviderRejectedError(detail string) *ProviderRejectedError {
	return &ProviderRejectedError{Detail: detail}
}

func NewProviderRejectedErrorWithCause(detail string, cause error) *ProviderRejectedError {
	return &ProviderRejectedError{Detail: detail, Cause: cause}
}

func (e *ProviderRejectedError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("provider rejected: %s (cause: %s)", sanitize(e.Detail), sanitize(e.Cause))
	}
	return fmt.Sprintf("provider rejected: %s", sanitize(e.Detail))
}

func (e *ProviderRejectedError) Unwrap() error {
	return ErrProviderRejected
}

// ProviderUnavailableError is an ambiguous transport-level failure (timeout,
// connection reset, no definitive provider response). It is retryable and
// must never be mapped to the failed label state.
type ProviderUnavailableError struct {
	Operation string
	Cause     error
}

func NewProviderUnavailableError(operation string, cause error) *ProviderUnavailableError {
	return &ProviderUnavailableError{Operation: operation, Cause: cause}
}

func (e *ProviderUnavailableError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("provider unavailable during %s (cause: %s)", e.Operation, sanitize(e.Cause))
	}
	return fmt.Sprintf("provider unavailable during %s", e.Operation)
}

func (e *ProviderUnavailableError) Unwrap() error {
	return ErrProviderUnavailable
}

// IsRetryable reports whether the caller may safely retry the operation that
// produced err. Only ambiguous transport failures are retryable; definitive
// rejections and validation failures are not.
func IsRetryable(err error) bool {
	return errors.Is(err, ErrProviderUnavailable)
}

package shipment

import (
	"fmt"

	"shipping/internal/pkg/errs"
)

// LabelState represents the label lifecycle state of a shipment.
// It implements a state machine with defined transitions:
//
//	Pending ──┬──> Generated (purchase confirmed, terminal for purchase)
//	          │
//	          └──> Failed ──> Pending (explicit retry)
//
// A Generated shipment never transitions again: a second purchase attempt
// is rejected rather than silently repeated, and the record may not be
// deleted or physically edited.
type LabelState int

const (
	// UnknownLabelState represents an invalid or undefined state.
	// This value (0) helps catch uninitialized LabelState values.
	UnknownLabelState LabelState = iota

	// Pending is the initial state: no label purchased yet, or a purchase
	// was accepted by the provider but the label is still being generated.
	Pending

	// Generated indicates a label was purchased and confirmed.
	Generated

	// Failed indicates the provider definitively rejected a purchase
	// attempt. The shipment can be retried, which resets it to Pending.
	Failed
)

func getLabelStateStrings() map[LabelState]string {
	return map[LabelState]string{
		UnknownLabelState: "unknown",
		Pending:           "pending",
		Generated:         "generated",
		Failed:            "failed",
	}
}

func getValidLabelStateStrings() map[LabelState]string {
	//nolint:exhaustive // UnknownLabelState is intentionally excluded as it's invalid
	return map[LabelState]string{
		Pending:   "pending",
		Generated: "generated",
		Failed:    "failed",
	}
}

// Validate checks if the LabelState value is valid.
// Valid states are: Pending, Generated, Failed.
func (s LabelState) Validate() error {
	if _, ok := getValidLabelStateStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("labelState",
			fmt.Errorf("%d is not a valid label state", s))
	}
	return nil
}

// String returns the wire name of the state ("pending", "generated", "failed").
// It implements fmt.Stringer and is safe to call on any value.
func (s LabelState) String() string {
	if str, ok := getLabelStateStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// LabelStateFromString parses a wire name back into a LabelState.
func LabelStateFromString(s string) (LabelState, error) {
	for state, str := range getValidLabelStateStrings() {
		if str == s {
			return state, nil
		}
	}
	return UnknownLabelState, errs.NewValueIsInvalidErrorWithCause("labelState",
		fmt.Errorf("%q is not a valid label state", s))
}

// ValidatePurchase checks if a purchase attempt is allowed from the current
// state without performing the transition. Purchasing is allowed from
// Pending and Failed; a Generated shipment is terminal for purchase.
func (s LabelState) ValidatePurchase() error {
	if s != Pending && s != Failed {
		return errs.NewInvalidStateError("buy label", s.String())
	}
	return nil
}

// ValidatePhysicalEdit checks if dimension/weight edits are allowed.
// Purchased parcels are physically fixed.
func (s LabelState) ValidatePhysicalEdit() error {
	if s == Generated {
		return errs.NewInvalidStateError("edit dimensions or weight", s.String())
	}
	return nil
}

// ValidateDelete checks if the shipment may be removed. A shipment with a
// purchased label is never hard-deleted.
func (s LabelState) ValidateDelete() error {
	if s == Generated {
		return errs.NewInvalidStateError("delete shipment", s.String())
	}
	return nil
}

// Generate transitions the state to Generated.
//
// Valid transitions:
//   - Pending -> Generated (purchase confirmed, possibly via reconciliation)
//   - Failed -> Generated (retry attempt confirmed in one call)
func (s LabelState) Generate() (LabelState, error) {
	if err := s.ValidatePurchase(); err != nil {
		return 0, err
	}
	return Generated, nil
}

// Fail transitions the state to Failed on a definitive provider rejection.
// Ambiguous transport failures must never call this; they leave the state
// unchanged because the purchase may have succeeded on the provider's side.
func (s LabelState) Fail() (LabelState, error) {
	if err := s.ValidatePurchase(); err != nil {
		return 0, err
	}
	return Failed, nil
}

// Retry transitions Failed back to Pending for a fresh purchase attempt.
func (s LabelState) Retry() (LabelState, error) {
	if s != Failed {
		return 0, errs.NewInvalidStateError("retry purchase", s.String())
	}
	return Pending, nil
}

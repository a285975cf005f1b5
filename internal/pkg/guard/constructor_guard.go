// Package guard provides the ConstructorGuard defensive-programming pattern
// used by commands and value objects to detect zero-value construction.
package guard

import "errors"

// ErrDefaultConstructorGuard is the default error returned by ConstructorGuard.Validate()
// when a nil error is passed as the validation error. This ensures that validation
// always fails with a meaningful message even if no specific error is provided.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard ensures value objects, commands, and entities are only
// created through their designated constructor functions. By embedding a
// ConstructorGuard in a struct, you can detect whether the struct was
// properly initialized through its constructor or created as a zero value.
//
// Example usage:
//
//	type BuyLabelCommand struct {
//	    shipmentID kernel.UUID
//	    guard      guard.ConstructorGuard
//	}
//
//	func NewBuyLabelCommand(shipmentID kernel.UUID) (BuyLabelCommand, error) {
//	    if err := shipmentID.Validate(); err != nil {
//	        return BuyLabelCommand{}, err
//	    }
//	    return BuyLabelCommand{shipmentID: shipmentID, guard: guard.NewConstructorGuard()}, nil
//	}
//
//	func (c BuyLabelCommand) Validate() error {
//	    return c.guard.Validate(ErrBuyLabelCommandIsNotConstructed)
//	}
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard creates a guard that marks an object as properly constructed.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate checks whether the guarded object was created through its constructor.
// Returns validationError (or ErrDefaultConstructorGuard if nil) for zero values.
func (g ConstructorGuard) Validate(validationError error) error {
	if validationError == nil {
		validationError = ErrDefaultConstructorGuard
	}
	if !g.isConstructed {
		return validationError
	}
	return nil
}

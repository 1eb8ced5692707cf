// Package guard detects value objects and commands that were built as zero values
// instead of through their constructors.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate when no specific error is supplied.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard is embedded in types whose zero value is not meaningful.
// Only NewConstructorGuard produces a guard that validates.
//
// Example:
//
//	type PlaceOrderCommand struct {
//	    userID kernel.UUID
//	    guard  guard.ConstructorGuard
//	}
//
//	func (c PlaceOrderCommand) Validate() error {
//	    return c.guard.Validate(ErrPlaceOrderCommandIsNotConstructed)
//	}
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard marks the enclosing value as constructed.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns validationError (or ErrDefaultConstructorGuard when it is nil)
// if the guard is a zero value.
func (g ConstructorGuard) Validate(validationError error) error {
	if validationError == nil {
		validationError = ErrDefaultConstructorGuard
	}
	if !g.isConstructed {
		return validationError
	}
	return nil
}

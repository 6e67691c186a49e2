// Package guard provides ConstructorGuard, a marker embedded in value objects,
// commands and queries so a zero value can be told apart from one produced by
// its constructor.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate when the caller passes a nil error.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard is set only by NewConstructorGuard. Its zero value fails Validate.
//
// Example:
//
//	type MoveStopCommand struct {
//	    roundID kernel.UUID
//	    guard   guard.ConstructorGuard
//	}
//
//	func (c MoveStopCommand) Validate() error {
//	    return c.guard.Validate(ErrMoveStopCommandIsNotConstructed)
//	}
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard returns a guard that marks its owner as constructed.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns validationError (or ErrDefaultConstructorGuard when it is nil)
// if the guard is a zero value, and nil otherwise.
func (g ConstructorGuard) Validate(validationError error) error {
	if validationError == nil {
		validationError = ErrDefaultConstructorGuard
	}
	if !g.isConstructed {
		return validationError
	}
	return nil
}

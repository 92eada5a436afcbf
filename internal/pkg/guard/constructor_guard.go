// Package guard provides a small defensive-programming helper that ensures
// value objects, entities, commands, and queries are only created through their
// designated constructor functions. A zero-value guard fails validation, so any
// object built by direct struct initialization is rejected before use.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate when the guard is a zero
// value and no specific error was supplied by the caller.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard marks an object as having passed through its constructor.
// Embed (or include) one in a struct and initialize it with NewConstructorGuard
// inside the constructor; the zero value reports the object as not constructed.
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard creates a guard in the constructed state.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns nil if the guard was created via NewConstructorGuard.
// For a zero-value guard it returns notConstructedErr, or
// ErrDefaultConstructorGuard when notConstructedErr is nil.
func (g ConstructorGuard) Validate(notConstructedErr error) error {
	if g.isConstructed {
		return nil
	}
	if notConstructedErr == nil {
		return ErrDefaultConstructorGuard
	}
	return notConstructedErr
}

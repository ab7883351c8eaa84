package flex

import "fmt"

// UnknownAccessorError is returned when a field requested for method
// invocation has no accessor on the entity.
type UnknownAccessorError struct {
	Field    string
	TypeName string
}

// Error returns the error message for UnknownAccessorError.
func (e *UnknownAccessorError) Error() string {
	return fmt.Sprintf("flex: %s has no accessor %q", e.TypeName, e.Field)
}

// MalformedOptionsError is returned when raw options have an invalid shape.
type MalformedOptionsError struct {
	Option string
	Reason string
}

// Error returns the error message for MalformedOptionsError.
func (e *MalformedOptionsError) Error() string {
	return fmt.Sprintf("flex: malformed option %q: %s", e.Option, e.Reason)
}

// AccessorError is returned when an accessor fails while being invoked.
type AccessorError struct {
	Field string
	Cause error
}

// Error returns the error message for AccessorError.
func (e *AccessorError) Error() string {
	return fmt.Sprintf("flex: invoking %q: %v", e.Field, e.Cause)
}

// Unwrap returns the underlying cause of the AccessorError.
func (e *AccessorError) Unwrap() error {
	return e.Cause
}

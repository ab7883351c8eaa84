// Package model defines error types for registration and hydration.
package model

import "fmt"

// NotRegisteredError is returned when an operation needs the metadata of a
// Go type that has not been registered.
type NotRegisteredError struct {
	TypeName string
}

// Error returns the error message for NotRegisteredError.
func (e *NotRegisteredError) Error() string {
	return fmt.Sprintf("type %q is not registered", e.TypeName)
}

// HydrationError is returned when an error occurs while populating a Go struct
// from an attribute bag.
type HydrationError struct {
	TypeName string
	Field    string
	Cause    error
}

// Error returns the error message for HydrationError.
func (e *HydrationError) Error() string {
	return fmt.Sprintf("hydrating %s.%s: %v", e.TypeName, e.Field, e.Cause)
}

// Unwrap returns the underlying cause of the HydrationError.
func (e *HydrationError) Unwrap() error {
	return e.Cause
}

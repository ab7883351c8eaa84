// Package flex flattens entities into transport-ready representations.
//
// A single call to Flatten runs five stages:
//
//   - options are resolved into include/method/except name sets
//   - the attribute bag is collected and stripped of denylisted names
//   - named accessors are invoked to add computed or explicitly requested fields
//   - the include and except filters are applied
//   - every value is normalized: wrappers are unwrapped and references are
//     replaced with the short form of their identifier
//
// The entity's own identifier is then added under "id", regardless of the
// filters.
//
// Example:
//
//	rep, err := flex.Flatten(ontology, flex.Options{
//	    Only:    []string{"acronym", "name"},
//	    Methods: []string{"submissionCount"},
//	})
//
// References are never followed: a linked entity is always rendered as its
// identifier, so flattening terminates regardless of cycles in the graph.
package flex

package flex

import (
	"errors"
	"fmt"
	"reflect"
	"sort"

	"github.com/RobertCoop/ontologies-linked-data/model"
)

// Representation is the flat, JSON-safe form of an entity. Values are nil,
// string, int64, float64, bool, []any or map[string]any.
type Representation map[string]any

// Keys returns the keys of r in sorted order.
func (r Representation) Keys() []string {
	keys := make([]string, 0, len(r))
	for k := range r {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Flatten converts e into a Representation selected by opts.
//
// It returns *UnknownAccessorError if a field that must be resolved through
// an accessor has none, and *AccessorError if an accessor fails. On error no
// representation is returned.
func Flatten(e model.Entity, opts Options) (Representation, error) {
	if e == nil || (reflect.ValueOf(e).Kind() == reflect.Ptr && reflect.ValueOf(e).IsNil()) {
		return nil, errors.New("flex: nil entity")
	}

	info, err := model.InfoFor(e)
	if err != nil {
		return nil, fmt.Errorf("flex: %w", err)
	}

	r := opts.resolve()
	bag := collect(e, info)
	if err := augment(e, info, bag, r); err != nil {
		return nil, err
	}
	filter(bag, r)

	rep := normalize(bag)
	if id := e.ResourceID(); id != "" {
		rep[idField] = id.LocalName()
	}
	return rep, nil
}

// FlattenRaw resolves loosely typed options with ResolveOptions and then
// flattens e. Malformed options are reported before e is read.
func FlattenRaw(e model.Entity, raw map[string]any) (Representation, error) {
	opts, err := ResolveOptions(raw)
	if err != nil {
		return nil, err
	}
	return Flatten(e, opts)
}

// FlattenAll flattens each entity with the same options, preserving order.
func FlattenAll[E model.Entity](entities []E, opts Options) ([]Representation, error) {
	out := make([]Representation, 0, len(entities))
	for i, e := range entities {
		rep, err := Flatten(e, opts)
		if err != nil {
			return nil, fmt.Errorf("entity %d: %w", i, err)
		}
		out = append(out, rep)
	}
	return out, nil
}

// Package model provides a central registry for entity kind metadata.
package model

import (
	"fmt"
	"reflect"
	"sort"
	"sync"
)

var (
	globalRegistry = &Registry{
		byName: make(map[string]*ModelInfo),
		byType: make(map[reflect.Type]*ModelInfo),
	}
)

// Registry maintains a mapping between Go struct types and entity kind metadata.
// Kinds are registered once, typically from init, and looked up on every
// flatten and hydrate call.
type Registry struct {
	mu     sync.RWMutex
	byName map[string]*ModelInfo
	byType map[reflect.Type]*ModelInfo
}

// Register adds a Go struct type to the global registry as an entity kind.
// The type T must embed BaseEntity.
func Register[T any](opts ...ModelOption) error {
	var zero T
	t := reflect.TypeOf(zero)
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	info, err := ExtractModelInfo(t)
	if err != nil {
		return fmt.Errorf("registering %s: %w", t.Name(), err)
	}

	for _, opt := range opts {
		if err := opt(info); err != nil {
			return fmt.Errorf("registering %s: %w", t.Name(), err)
		}
	}

	for _, name := range info.Serializable {
		if _, ok := info.Accessor(name); !ok {
			return fmt.Errorf("registering %s: serializable method %q has no accessor", t.Name(), name)
		}
	}

	globalRegistry.mu.Lock()
	defer globalRegistry.mu.Unlock()

	if existing, ok := globalRegistry.byName[info.TypeName]; ok {
		if existing.GoType != t {
			return fmt.Errorf("type name %q already registered to %s", info.TypeName, existing.GoType.Name())
		}
	}

	globalRegistry.byName[info.TypeName] = info
	globalRegistry.byType[t] = info
	return nil
}

// MustRegister is a helper that calls Register and panics if an error occurs.
// It is intended for use during application initialization.
func MustRegister[T any](opts ...ModelOption) {
	if err := Register[T](opts...); err != nil {
		panic(err)
	}
}

// Lookup retrieves ModelInfo for a given kind name.
func Lookup(typeName string) (*ModelInfo, bool) {
	globalRegistry.mu.RLock()
	defer globalRegistry.mu.RUnlock()
	info, ok := globalRegistry.byName[typeName]
	return info, ok
}

// LookupType retrieves ModelInfo for a given Go reflect.Type.
func LookupType(t reflect.Type) (*ModelInfo, bool) {
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	globalRegistry.mu.RLock()
	defer globalRegistry.mu.RUnlock()
	info, ok := globalRegistry.byType[t]
	return info, ok
}

// InfoFor returns the metadata for the concrete type of e. Unregistered
// types get freshly extracted metadata with no accessors of their own.
func InfoFor(e Entity) (*ModelInfo, error) {
	t := reflect.TypeOf(e)
	if info, ok := LookupType(t); ok {
		return info, nil
	}
	return ExtractModelInfo(t)
}

// RegisteredTypes returns the ModelInfo of every registered type, ordered by
// kind name.
func RegisteredTypes() []*ModelInfo {
	globalRegistry.mu.RLock()
	defer globalRegistry.mu.RUnlock()
	result := make([]*ModelInfo, 0, len(globalRegistry.byType))
	for _, info := range globalRegistry.byType {
		result = append(result, info)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].TypeName < result[j].TypeName })
	return result
}

// ClearRegistry resets the global registry, removing all registered models.
// This is primarily used for testing purposes.
func ClearRegistry() {
	globalRegistry.mu.Lock()
	defer globalRegistry.mu.Unlock()
	globalRegistry.byName = make(map[string]*ModelInfo)
	globalRegistry.byType = make(map[reflect.Type]*ModelInfo)
}

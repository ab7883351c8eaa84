package model

import (
	"fmt"
	"reflect"
	"sort"
	"strings"
	"unicode"
)

// FieldInfo contains metadata about a single attribute field in a model struct.
type FieldInfo struct {
	// Tag is the parsed 'ld' struct tag.
	Tag FieldTag
	// Name is the attribute name: the tag name, or the lower-camel field name.
	Name string
	// FieldName is the name of the field in the Go struct.
	FieldName string
	// FieldIndex is the 0-based index of the field in the Go struct.
	FieldIndex int
	// FieldType is the reflection type of the field.
	FieldType reflect.Type
	// IsPointer is true if the field is a pointer, used for optional attributes.
	IsPointer bool
	// IsSlice is true if the field is a slice, used for multi-valued attributes.
	IsSlice bool
	// ElemType is the base element type for slices and pointers.
	ElemType reflect.Type
}

// Accessor is a zero-argument getter invoked on an entity by name.
type Accessor func(Entity) (any, error)

// ModelInfo contains metadata about an entity kind: its Go struct mapping,
// its named accessors, and the accessors it advertises as serializable.
type ModelInfo struct {
	// GoType is the reflection type of the Go struct representing the model.
	GoType reflect.Type
	// TypeName is the name of the entity kind.
	TypeName string
	// Fields is a list of metadata for each attribute field in the model.
	Fields []FieldInfo
	// KeyFields is a subset of Fields containing attributes marked as keys.
	KeyFields []FieldInfo
	// Serializable lists the accessor names flattened when all methods are requested.
	Serializable []string

	accessors map[string]Accessor
}

// FieldByAttrName retrieves FieldInfo by the attribute name.
func (m *ModelInfo) FieldByAttrName(attrName string) (FieldInfo, bool) {
	for _, f := range m.Fields {
		if f.Name == attrName {
			return f, true
		}
	}
	return FieldInfo{}, false
}

// Accessor resolves a named zero-argument getter. Registered accessors take
// precedence; otherwise an attribute field of the same name acts as its own
// getter.
func (m *ModelInfo) Accessor(name string) (Accessor, bool) {
	if fn, ok := m.accessors[name]; ok {
		return fn, true
	}
	fi, ok := m.FieldByAttrName(name)
	if !ok {
		return nil, false
	}
	return fieldGetter(m.GoType, fi), true
}

// AccessorNames returns the sorted names of the explicitly registered accessors.
func (m *ModelInfo) AccessorNames() []string {
	names := make([]string, 0, len(m.accessors))
	for name := range m.accessors {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func fieldGetter(t reflect.Type, fi FieldInfo) Accessor {
	return func(e Entity) (any, error) {
		v := reflect.ValueOf(e)
		if v.Kind() == reflect.Ptr {
			v = v.Elem()
		}
		if v.Type() != t {
			return nil, fmt.Errorf("accessor %q: expected %s, got %s", fi.Name, t.Name(), v.Type().Name())
		}
		return v.Field(fi.FieldIndex).Interface(), nil
	}
}

// ModelOption customizes ModelInfo at registration time.
type ModelOption func(*ModelInfo) error

// WithTypeName overrides the default snake_case kind name.
func WithTypeName(name string) ModelOption {
	return func(m *ModelInfo) error {
		m.TypeName = name
		return nil
	}
}

// WithAccessor registers a named getter for entities of type T.
func WithAccessor[T any](name string, fn func(*T) any) ModelOption {
	return WithAccessorE(name, func(t *T) (any, error) { return fn(t), nil })
}

// WithAccessorE registers a named getter that can fail.
func WithAccessorE[T any](name string, fn func(*T) (any, error)) ModelOption {
	return func(m *ModelInfo) error {
		if name == "" {
			return fmt.Errorf("accessor name must not be empty")
		}
		if m.accessors == nil {
			m.accessors = make(map[string]Accessor)
		}
		m.accessors[name] = func(e Entity) (any, error) {
			t, ok := any(e).(*T)
			if !ok {
				return nil, fmt.Errorf("accessor %q: unexpected entity type %T", name, e)
			}
			return fn(t)
		}
		return nil
	}
}

// WithSerializableMethods declares the accessors flattened when every
// available method is requested. Each name must resolve to an accessor
// or an attribute field.
func WithSerializableMethods(names ...string) ModelOption {
	return func(m *ModelInfo) error {
		m.Serializable = append(m.Serializable, names...)
		return nil
	}
}

// ExtractModelInfo analyzes a Go struct type and extracts its model metadata.
// The struct must embed BaseEntity to be a valid model.
func ExtractModelInfo(t reflect.Type) (*ModelInfo, error) {
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return nil, fmt.Errorf("expected struct, got %s", t.Kind())
	}
	if !embedsBase(t) {
		return nil, fmt.Errorf("type %s must embed BaseEntity", t.Name())
	}

	info := &ModelInfo{
		GoType:   t,
		TypeName: toSnakeCase(t.Name()),
	}

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)

		// Skip unexported fields and the embedded base type
		if !field.IsExported() || field.Anonymous {
			continue
		}

		tag, err := ParseTag(field.Tag.Get("ld"))
		if err != nil {
			return nil, fmt.Errorf("field %s: %w", field.Name, err)
		}
		if tag.Skip {
			continue
		}

		fi := buildFieldInfo(field, i, tag)
		info.Fields = append(info.Fields, fi)
		if tag.Key {
			info.KeyFields = append(info.KeyFields, fi)
		}
	}

	return info, nil
}

func embedsBase(t reflect.Type) bool {
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if field.Anonymous && field.Type == reflect.TypeOf(BaseEntity{}) {
			return true
		}
	}
	return false
}

func buildFieldInfo(field reflect.StructField, index int, tag FieldTag) FieldInfo {
	fi := FieldInfo{
		Tag:        tag,
		Name:       tag.Name,
		FieldName:  field.Name,
		FieldIndex: index,
		FieldType:  field.Type,
	}
	if fi.Name == "" {
		fi.Name = lowerCamel(field.Name)
	}

	ft := field.Type
	if ft.Kind() == reflect.Ptr {
		fi.IsPointer = true
		fi.ElemType = ft.Elem()
		ft = ft.Elem()
	}
	if ft.Kind() == reflect.Slice {
		fi.IsSlice = true
		fi.ElemType = ft.Elem()
	}
	return fi
}

// lowerCamel lowercases the leading run of capitals of a Go field name.
// e.g. "Name" → "name", "URL" → "url", "HTMLPage" → "htmlPage"
func lowerCamel(name string) string {
	runes := []rune(name)
	for i := range runes {
		if !unicode.IsUpper(runes[i]) {
			break
		}
		// Keep the last capital of an acronym run when a lowercase letter follows
		if i > 0 && i+1 < len(runes) && unicode.IsLower(runes[i+1]) {
			break
		}
		runes[i] = unicode.ToLower(runes[i])
	}
	return string(runes)
}

// toSnakeCase converts a PascalCase Go struct name to snake_case.
// e.g. "OntologySubmission" → "ontology_submission"
func toSnakeCase(name string) string {
	var b strings.Builder
	for i, r := range name {
		if unicode.IsUpper(r) {
			if i > 0 {
				b.WriteByte('_')
			}
			b.WriteRune(unicode.ToLower(r))
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}

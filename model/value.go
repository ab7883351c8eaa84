package model

import (
	"fmt"
	"math"
	"reflect"
	"sort"
	"strconv"
	"time"
)

// Kind identifies the variant held by a Value.
type Kind uint8

const (
	KindNull Kind = iota
	KindString
	KindInt
	KindFloat
	KindBool
	// KindWrapper carries exactly one inner Value, like an RDF literal.
	KindWrapper
	// KindRef points at another node by identifier.
	KindRef
	KindList
	KindMap
)

var kindNames = [...]string{"null", "string", "int", "float", "bool", "wrapper", "ref", "list", "map"}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

// Wrapper is implemented by Go types whose only purpose is to carry a
// single scalar. ValueOf turns them into wrapper Values.
type Wrapper interface {
	Unwrap() any
}

// Value is the closed set of attribute values an entity can hold.
// The zero Value is Null.
type Value struct {
	kind  Kind
	str   string
	num   int64
	flt   float64
	boo   bool
	inner *Value
	ref   Identified
	list  []Value
	dict  map[string]Value
}

// Null returns the null value.
func Null() Value { return Value{} }

// String returns a string scalar.
func String(s string) Value { return Value{kind: KindString, str: s} }

// Int returns an integer scalar.
func Int(i int64) Value { return Value{kind: KindInt, num: i} }

// Float returns a floating point scalar.
func Float(f float64) Value { return Value{kind: KindFloat, flt: f} }

// Bool returns a boolean scalar.
func Bool(b bool) Value { return Value{kind: KindBool, boo: b} }

// Wrap returns a wrapper carrying v.
func Wrap(v Value) Value { return Value{kind: KindWrapper, inner: &v} }

// Ref returns a reference to the node identified by target.
func Ref(target Identified) Value { return Value{kind: KindRef, ref: target} }

// List returns an ordered collection.
func List(items ...Value) Value { return Value{kind: KindList, list: items} }

// Map returns a nested mapping. The map is used as is.
func Map(m map[string]Value) Value { return Value{kind: KindMap, dict: m} }

// IRIValue returns the value form of an IRI term: a wrapper around its full string.
func IRIValue(i IRI) Value { return Wrap(String(string(i))) }

// Kind returns the variant of v.
func (v Value) Kind() Kind { return v.kind }

// IsNull reports whether v is the null value.
func (v Value) IsNull() bool { return v.kind == KindNull }

// IsWrapper reports whether v carries a single wrapped value.
func (v Value) IsWrapper() bool { return v.kind == KindWrapper }

// IsRef reports whether v is a reference.
func (v Value) IsRef() bool { return v.kind == KindRef }

// Unwrap removes one level of wrapping. Non-wrapper values are returned unchanged.
func (v Value) Unwrap() Value {
	if v.kind == KindWrapper && v.inner != nil {
		return *v.inner
	}
	return v
}

// Target returns the referenced node, or nil if v is not a reference.
func (v Value) Target() Identified {
	if v.kind != KindRef {
		return nil
	}
	return v.ref
}

// Items returns the elements of a list, or nil.
func (v Value) Items() []Value {
	if v.kind != KindList {
		return nil
	}
	return v.list
}

// Entries returns the entries of a map, or nil.
func (v Value) Entries() map[string]Value {
	if v.kind != KindMap {
		return nil
	}
	return v.dict
}

// Str returns the string payload and whether v is a string.
func (v Value) Str() (string, bool) { return v.str, v.kind == KindString }

// Int64 returns the integer payload and whether v is an integer.
func (v Value) Int64() (int64, bool) { return v.num, v.kind == KindInt }

// Float64 returns the float payload and whether v is a float.
func (v Value) Float64() (float64, bool) { return v.flt, v.kind == KindFloat }

// Boolean returns the bool payload and whether v is a bool.
func (v Value) Boolean() (bool, bool) { return v.boo, v.kind == KindBool }

// Interface exports v as a plain Go value built only from nil, string,
// int64, float64, bool, []any and map[string]any. Wrappers are unwrapped
// completely and references become their full identifier string, so the
// result never embeds another node.
func (v Value) Interface() any {
	switch v.kind {
	case KindString:
		return v.str
	case KindInt:
		return v.num
	case KindFloat:
		return v.flt
	case KindBool:
		return v.boo
	case KindWrapper:
		return v.Unwrap().Interface()
	case KindRef:
		if v.ref == nil {
			return nil
		}
		return v.ref.ResourceID().String()
	case KindList:
		out := make([]any, len(v.list))
		for i, item := range v.list {
			out[i] = item.Interface()
		}
		return out
	case KindMap:
		out := make(map[string]any, len(v.dict))
		for k, item := range v.dict {
			out[k] = item.Interface()
		}
		return out
	default:
		return nil
	}
}

// String implements fmt.Stringer for debugging output.
func (v Value) String() string {
	switch v.kind {
	case KindWrapper:
		return fmt.Sprintf("wrap(%s)", v.Unwrap())
	case KindRef:
		if v.ref == nil {
			return "ref(<nil>)"
		}
		return fmt.Sprintf("ref(%s)", v.ref.ResourceID())
	default:
		return fmt.Sprintf("%v", v.Interface())
	}
}

// ValueOf converts a Go value into a Value.
//
// Scalars map to scalar kinds, IRI and time.Time become wrappers (they are
// terms carrying a lexical form), Wrapper implementations become wrappers,
// Identified values with an identifier become references, slices and arrays
// become lists and maps become maps keyed by fmt.Sprint of the key.
// Identified values without an identifier are null; a node is never embedded.
// Other structs become maps of their exported fields unless they implement
// fmt.Stringer. Unsigned integers beyond the int64 range become decimal
// strings.
func ValueOf(x any) Value {
	switch t := x.(type) {
	case nil:
		return Null()
	case Value:
		return t
	case IRI:
		return IRIValue(t)
	case string:
		return String(t)
	case bool:
		return Bool(t)
	case int:
		return Int(int64(t))
	case int8:
		return Int(int64(t))
	case int16:
		return Int(int64(t))
	case int32:
		return Int(int64(t))
	case int64:
		return Int(t)
	case uint:
		return uintValue(uint64(t))
	case uint8:
		return Int(int64(t))
	case uint16:
		return Int(int64(t))
	case uint32:
		return Int(int64(t))
	case uint64:
		return uintValue(uint64(t))
	case float32:
		return Float(float64(t))
	case float64:
		return Float(t)
	case time.Time:
		return Wrap(String(t.Format(time.RFC3339)))
	case Wrapper:
		return Wrap(ValueOf(t.Unwrap()))
	}

	rv := reflect.ValueOf(x)
	if rv.Kind() == reflect.Ptr && rv.IsNil() {
		return Null()
	}
	if id, ok := x.(Identified); ok {
		if id.ResourceID() == "" {
			return Null()
		}
		return Ref(id)
	}
	return valueOfReflect(rv)
}

var identifiedType = reflect.TypeOf((*Identified)(nil)).Elem()

func uintValue(u uint64) Value {
	if u > math.MaxInt64 {
		return String(strconv.FormatUint(u, 10))
	}
	return Int(int64(u))
}

func valueOfReflect(rv reflect.Value) Value {
	switch rv.Kind() {
	case reflect.Ptr, reflect.Interface:
		if rv.IsNil() {
			return Null()
		}
		return ValueOf(rv.Elem().Interface())
	case reflect.Slice, reflect.Array:
		if rv.Kind() == reflect.Slice && rv.IsNil() {
			return List()
		}
		items := make([]Value, rv.Len())
		for i := range items {
			items[i] = ValueOf(rv.Index(i).Interface())
		}
		return List(items...)
	case reflect.Map:
		m := make(map[string]Value, rv.Len())
		keys := rv.MapKeys()
		sort.Slice(keys, func(i, j int) bool {
			return fmt.Sprint(keys[i].Interface()) < fmt.Sprint(keys[j].Interface())
		})
		for _, k := range keys {
			m[fmt.Sprint(k.Interface())] = ValueOf(rv.MapIndex(k).Interface())
		}
		return Map(m)
	case reflect.String:
		return String(rv.String())
	case reflect.Bool:
		return Bool(rv.Bool())
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return Int(rv.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return uintValue(rv.Uint())
	case reflect.Float32, reflect.Float64:
		return Float(rv.Float())
	case reflect.Complex64, reflect.Complex128:
		return String(fmt.Sprint(rv.Complex()))
	case reflect.Struct:
		// Entity structs reached by value lost their pointer-receiver methods
		if reflect.PointerTo(rv.Type()).Implements(identifiedType) {
			return Null()
		}
		if s, ok := rv.Interface().(fmt.Stringer); ok {
			return String(s.String())
		}
		return structValue(rv)
	}
	return Null()
}

// structValue maps the exported fields of a plain struct by field name.
func structValue(rv reflect.Value) Value {
	t := rv.Type()
	m := make(map[string]Value, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		if f := t.Field(i); f.IsExported() {
			m[f.Name] = ValueOf(rv.Field(i).Interface())
		}
	}
	return Map(m)
}

// Package model provides mechanisms for hydrating Go structs from attribute bags.
package model

import (
	"fmt"
	"math"
	"reflect"
	"strconv"
	"time"
)

var (
	iriType  = reflect.TypeOf(IRI(""))
	timeType = reflect.TypeOf(time.Time{})
)

// Hydrate populates the attribute fields of target from the bag of source and
// copies its identifier. Reference-valued attributes become pointers to new,
// unloaded instances of the field's entity type carrying only the identifier.
func Hydrate(target Entity, source *Resource) error {
	v := reflect.ValueOf(target)
	if v.Kind() != reflect.Ptr || v.IsNil() {
		return fmt.Errorf("target must be a non-nil pointer to struct")
	}
	v = v.Elem()

	info, ok := LookupType(v.Type())
	if !ok {
		return &NotRegisteredError{TypeName: v.Type().Name()}
	}

	target.SetResourceID(source.ResourceID())
	if b, ok := any(target).(interface{ SetUUID(string) }); ok {
		b.SetUUID(source.UUID())
	}
	if source.Loaded() {
		if b, ok := any(target).(interface{ MarkLoaded() }); ok {
			b.MarkLoaded()
		}
	}

	bag := source.Attributes()
	for _, fi := range info.Fields {
		val, ok := bag[fi.Name]
		if !ok || val.IsNull() {
			continue
		}
		if err := setFieldValue(v.Field(fi.FieldIndex), fi, val); err != nil {
			return &HydrationError{TypeName: info.TypeName, Field: fi.Name, Cause: err}
		}
	}
	return nil
}

func setFieldValue(field reflect.Value, fi FieldInfo, val Value) error {
	if fi.IsSlice {
		return setSliceField(field, fi, val)
	}

	if items := val.Items(); items != nil {
		if fi.Tag.CardMax != nil && len(items) > *fi.Tag.CardMax {
			return fmt.Errorf("got %d values, cardinality allows at most %d", len(items), *fi.Tag.CardMax)
		}
		if len(items) == 0 {
			return nil
		}
		val = items[0]
	}

	converted, err := coerceValue(val, fi.FieldType)
	if err != nil {
		return err
	}
	field.Set(converted)
	return nil
}

func setSliceField(field reflect.Value, fi FieldInfo, val Value) error {
	items := val.Items()
	if items == nil {
		// Single value -> wrap in slice
		items = []Value{val}
	}
	if fi.Tag.CardMax != nil && len(items) > *fi.Tag.CardMax {
		return fmt.Errorf("got %d values, cardinality allows at most %d", len(items), *fi.Tag.CardMax)
	}

	slice := reflect.MakeSlice(fi.FieldType, len(items), len(items))
	for i, item := range items {
		converted, err := coerceValue(item, fi.ElemType)
		if err != nil {
			return fmt.Errorf("index %d: %w", i, err)
		}
		slice.Index(i).Set(converted)
	}
	field.Set(slice)
	return nil
}

func coerceValue(val Value, t reflect.Type) (reflect.Value, error) {
	if t.Kind() == reflect.Ptr {
		if val.IsRef() && reflect.PointerTo(t.Elem()).Implements(reflect.TypeOf((*Entity)(nil)).Elem()) {
			ptr := reflect.New(t.Elem())
			ptr.Interface().(Entity).SetResourceID(val.Target().ResourceID())
			return ptr, nil
		}
		inner, err := coerceValue(val, t.Elem())
		if err != nil {
			return reflect.Value{}, err
		}
		ptr := reflect.New(t.Elem())
		ptr.Elem().Set(inner)
		return ptr, nil
	}

	// Literal wrappers carry their lexical value
	for val.IsWrapper() {
		val = val.Unwrap()
	}

	switch {
	case t == iriType:
		if val.IsRef() {
			return reflect.ValueOf(val.Target().ResourceID()), nil
		}
		s, ok := val.Str()
		if !ok {
			return reflect.Value{}, fmt.Errorf("cannot coerce %s to IRI", val.Kind())
		}
		return reflect.ValueOf(IRI(s)), nil
	case t == timeType:
		return coerceToTime(val)
	}

	out := reflect.New(t).Elem()
	switch t.Kind() {
	case reflect.String:
		if val.IsRef() {
			out.SetString(val.Target().ResourceID().String())
		} else {
			out.SetString(fmt.Sprint(val.Interface()))
		}
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		i, err := coerceToInt64(val)
		if err != nil {
			return reflect.Value{}, err
		}
		if out.OverflowInt(i) {
			return reflect.Value{}, fmt.Errorf("%d overflows %s", i, t)
		}
		out.SetInt(i)
	case reflect.Float32, reflect.Float64:
		f, err := coerceToFloat64(val)
		if err != nil {
			return reflect.Value{}, err
		}
		out.SetFloat(f)
	case reflect.Bool:
		switch x := val.Interface().(type) {
		case bool:
			out.SetBool(x)
		case string:
			b, err := strconv.ParseBool(x)
			if err != nil {
				return reflect.Value{}, fmt.Errorf("cannot coerce %q to bool", x)
			}
			out.SetBool(b)
		default:
			return reflect.Value{}, fmt.Errorf("expected bool, got %s", val.Kind())
		}
	default:
		return reflect.Value{}, fmt.Errorf("unsupported field type %s", t)
	}
	return out, nil
}

func coerceToInt64(val Value) (int64, error) {
	switch x := val.Interface().(type) {
	case int64:
		return x, nil
	case float64:
		// 2^63 itself is not representable
		if x != math.Trunc(x) || x < math.MinInt64 || x >= math.MaxInt64 {
			return 0, fmt.Errorf("cannot coerce %v to integer", x)
		}
		return int64(x), nil
	case string:
		i, err := strconv.ParseInt(x, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("cannot coerce %q to integer", x)
		}
		return i, nil
	default:
		return 0, fmt.Errorf("cannot coerce %s to integer", val.Kind())
	}
}

func coerceToFloat64(val Value) (float64, error) {
	switch x := val.Interface().(type) {
	case float64:
		return x, nil
	case int64:
		return float64(x), nil
	case string:
		f, err := strconv.ParseFloat(x, 64)
		if err != nil {
			return 0, fmt.Errorf("cannot coerce %q to float", x)
		}
		return f, nil
	default:
		return 0, fmt.Errorf("cannot coerce %s to float", val.Kind())
	}
}

func coerceToTime(val Value) (reflect.Value, error) {
	s, ok := val.Str()
	if !ok {
		return reflect.Value{}, fmt.Errorf("cannot coerce %s to time.Time", val.Kind())
	}
	for _, layout := range []string{
		time.RFC3339,
		"2006-01-02T15:04:05",
		"2006-01-02",
	} {
		t, err := time.Parse(layout, s)
		if err == nil {
			return reflect.ValueOf(t), nil
		}
	}
	return reflect.Value{}, fmt.Errorf("cannot parse time string: %q", s)
}

package flex

import (
	"reflect"

	"github.com/RobertCoop/ontologies-linked-data/model"
)

// denylist holds names of internal bookkeeping and credential fields that
// are never collected. It is not configurable and is never written to.
var denylist = map[string]struct{}{
	"attributes":    {},
	"table":         {},
	"_cached_exist": {},
	"internals":     {},
	"captures":      {},
	"splat":         {},
	"uuid":          {},
	"apikey":        {},
	"password":      {},
	"passwordHash":  {},
}

// Denylisted reports whether name is stripped from every collected bag.
func Denylisted(name string) bool {
	_, ok := denylist[canonicalName(name)]
	return ok
}

// collect returns a fresh copy of the entity's attributes without the
// denylisted names. Entities with an attribute bag use it; all others are
// read through their exported struct fields.
func collect(e model.Entity, info *model.ModelInfo) map[string]model.Value {
	var bag map[string]model.Value
	if h, ok := e.(model.AttributeHolder); ok && h.Attributes() != nil {
		attrs := h.Attributes()
		bag = make(map[string]model.Value, len(attrs))
		for k, v := range attrs {
			bag[k] = v
		}
	} else {
		bag = fieldBag(e, info)
	}

	for k := range bag {
		if Denylisted(k) {
			delete(bag, k)
		}
	}
	return bag
}

func fieldBag(e model.Entity, info *model.ModelInfo) map[string]model.Value {
	v := reflect.ValueOf(e)
	if v.Kind() == reflect.Ptr {
		v = v.Elem()
	}
	bag := make(map[string]model.Value, len(info.Fields))
	for _, fi := range info.Fields {
		bag[fi.Name] = model.ValueOf(v.Field(fi.FieldIndex).Interface())
	}
	return bag
}

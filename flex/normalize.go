package flex

import (
	"sort"

	"github.com/RobertCoop/ontologies-linked-data/model"
)

// normalize canonicalizes every key and rewrites every value into its
// JSON-safe form. Keys are visited in sorted order; when two keys share a
// canonical form, the one already in canonical form wins.
func normalize(bag map[string]model.Value) Representation {
	keys := make([]string, 0, len(bag))
	for k := range bag {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make(Representation, len(bag)+1)
	for _, k := range keys {
		ck := canonicalName(k)
		if _, exists := out[ck]; exists && ck != k {
			continue
		}
		out[ck] = normalizeValue(bag[k])
	}
	return out
}

// normalizeValue applies the value rules in order:
//
//  1. a wrapper is unwrapped once
//  2. a reference becomes the short form of its identifier
//  3. a list whose first element is a reference becomes a list of short forms
//  4. a list whose first element is a wrapper is unwrapped elementwise
//  5. a value that is still a wrapper is unwrapped once more
//  6. anything else is exported unchanged
//
// Only the first element decides how a list is treated.
func normalizeValue(v model.Value) any {
	if v.IsWrapper() {
		v = v.Unwrap()
	}

	if v.IsRef() {
		return shortID(v)
	}

	if items := v.Items(); len(items) > 0 {
		switch {
		case items[0].IsRef():
			out := make([]any, len(items))
			for i, item := range items {
				if item.IsRef() {
					out[i] = shortID(item)
				} else {
					out[i] = item.Interface()
				}
			}
			return out
		case items[0].IsWrapper():
			out := make([]any, len(items))
			for i, item := range items {
				out[i] = item.Unwrap().Interface()
			}
			return out
		}
	}

	if v.IsWrapper() {
		v = v.Unwrap()
	}
	return v.Interface()
}

func shortID(v model.Value) any {
	target := v.Target()
	if target == nil {
		return nil
	}
	return target.ResourceID().LocalName()
}

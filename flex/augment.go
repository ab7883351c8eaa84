package flex

import (
	"github.com/RobertCoop/ontologies-linked-data/model"
)

// idField is injected after filtering and is never resolved as an accessor.
const idField = "id"

// invocationPlan lists the accessors to call, in order: names from Only that
// the bag lacks, then Methods, then the kind's serializable methods when All
// is set. Each name appears once.
func invocationPlan(info *model.ModelInfo, bag map[string]model.Value, opts resolved) []string {
	seen := make(map[string]struct{})
	var plan []string
	add := func(name string) {
		if _, dup := seen[name]; dup {
			return
		}
		seen[name] = struct{}{}
		plan = append(plan, name)
	}

	for _, name := range opts.only.order {
		if _, present := bag[name]; present || name == idField {
			continue
		}
		add(name)
	}
	for _, name := range opts.methods.order {
		add(name)
	}
	if opts.all {
		for _, name := range info.Serializable {
			add(canonicalName(name))
		}
	}
	return plan
}

// augment invokes the planned accessors and stores their results in bag.
// Every name is resolved before the first call, so an unknown accessor
// fails without running any of them.
func augment(e model.Entity, info *model.ModelInfo, bag map[string]model.Value, opts resolved) error {
	plan := invocationPlan(info, bag, opts)
	if len(plan) == 0 {
		return nil
	}

	accessors := make([]model.Accessor, len(plan))
	for i, name := range plan {
		fn, ok := info.Accessor(name)
		if !ok {
			return &UnknownAccessorError{Field: name, TypeName: info.TypeName}
		}
		accessors[i] = fn
	}

	for i, fn := range accessors {
		out, err := fn(e)
		if err != nil {
			return &AccessorError{Field: plan[i], Cause: err}
		}
		bag[plan[i]] = model.ValueOf(out)
	}
	return nil
}

package flex

import "github.com/RobertCoop/ontologies-linked-data/model"

// filter keeps only the names in opts.only (when given) and then drops the
// names in opts.except (when given). Names in only that the bag lacks are
// simply absent.
func filter(bag map[string]model.Value, opts resolved) {
	if !opts.only.empty() {
		for k := range bag {
			if !opts.only.has(canonicalName(k)) {
				delete(bag, k)
			}
		}
	}
	if !opts.except.empty() {
		for k := range bag {
			if opts.except.has(canonicalName(k)) {
				delete(bag, k)
			}
		}
	}
}

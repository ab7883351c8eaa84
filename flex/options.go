package flex

import (
	"fmt"
	"sort"
	"strings"
)

// Options selects which fields a representation contains.
// The zero value flattens the collected attributes with no accessor calls.
type Options struct {
	// All invokes every serializable method the entity kind advertises.
	All bool
	// Only keeps exactly these fields. Names missing from the attribute
	// bag are resolved through accessors.
	Only []string
	// Methods names accessors whose results are added to the representation.
	Methods []string
	// Except drops these fields, after Only is applied.
	Except []string
}

// Merge returns the union of o and other: All if either sets it, and the
// name lists concatenated with o's names first.
func (o Options) Merge(other Options) Options {
	return Options{
		All:     o.All || other.All,
		Only:    concat(o.Only, other.Only),
		Methods: concat(o.Methods, other.Methods),
		Except:  concat(o.Except, other.Except),
	}
}

func concat(a, b []string) []string {
	if len(a)+len(b) == 0 {
		return nil
	}
	out := make([]string, 0, len(a)+len(b))
	return append(append(out, a...), b...)
}

// nameSet is an insertion-ordered set of canonical field names.
type nameSet struct {
	order []string
	index map[string]struct{}
}

func newNameSet(names []string) nameSet {
	s := nameSet{index: make(map[string]struct{}, len(names))}
	for _, n := range names {
		n = canonicalName(n)
		if n == "" {
			continue
		}
		if _, dup := s.index[n]; dup {
			continue
		}
		s.index[n] = struct{}{}
		s.order = append(s.order, n)
	}
	return s
}

func (s nameSet) has(name string) bool {
	_, ok := s.index[name]
	return ok
}

func (s nameSet) empty() bool { return len(s.order) == 0 }

// resolved is the normalized form of Options used by the pipeline.
type resolved struct {
	all     bool
	only    nameSet
	methods nameSet
	except  nameSet
}

func (o Options) resolve() resolved {
	return resolved{
		all:     o.All,
		only:    newNameSet(o.Only),
		methods: newNameSet(o.Methods),
		except:  newNameSet(o.Except),
	}
}

// canonicalName is the single form used for every field name and output key.
// Case is preserved because accessor names are case-sensitive.
func canonicalName(name string) string {
	return strings.TrimSpace(name)
}

var optionKeys = map[string]bool{"all": true, "only": true, "methods": true, "except": true}

// ResolveOptions builds Options from loosely typed configuration, such as a
// decoded JSON or TOML table. Recognized keys are "all" (a bool) and
// "only", "methods" and "except", each given as a string (comma-separated
// names), a []string, or a []any of strings. Absent keys default to empty.
func ResolveOptions(raw map[string]any) (Options, error) {
	var opts Options

	var unknown []string
	for k := range raw {
		if !optionKeys[k] {
			unknown = append(unknown, k)
		}
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return Options{}, &MalformedOptionsError{Option: unknown[0], Reason: "unknown option"}
	}

	switch v := raw["all"].(type) {
	case nil:
	case bool:
		opts.All = v
	default:
		return Options{}, &MalformedOptionsError{Option: "all", Reason: fmt.Sprintf("expected bool, got %T", v)}
	}

	var err error
	if opts.Only, err = toNames("only", raw["only"]); err != nil {
		return Options{}, err
	}
	if opts.Methods, err = toNames("methods", raw["methods"]); err != nil {
		return Options{}, err
	}
	if opts.Except, err = toNames("except", raw["except"]); err != nil {
		return Options{}, err
	}
	return opts, nil
}

func toNames(option string, raw any) ([]string, error) {
	switch v := raw.(type) {
	case nil:
		return nil, nil
	case string:
		return strings.Split(v, ","), nil
	case []string:
		return v, nil
	case fmt.Stringer:
		return []string{v.String()}, nil
	case []any:
		names := make([]string, 0, len(v))
		for i, item := range v {
			switch n := item.(type) {
			case string:
				names = append(names, n)
			case fmt.Stringer:
				names = append(names, n.String())
			default:
				return nil, &MalformedOptionsError{
					Option: option,
					Reason: fmt.Sprintf("element %d: expected field name, got %T", i, item),
				}
			}
		}
		return names, nil
	default:
		return nil, &MalformedOptionsError{Option: option, Reason: fmt.Sprintf("expected list of field names, got %T", raw)}
	}
}

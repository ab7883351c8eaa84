// Package model provides parsing and representation of 'ld' struct tags.
package model

import (
	"fmt"
	"strconv"
	"strings"
)

// FieldTag contains the structured representation of a parsed `ld` struct tag.
type FieldTag struct {
	// Name is the attribute name.
	Name string
	// Key specifies if the attribute identifies the entity within its kind.
	Key bool
	// CardMin is the minimum cardinality constraint.
	CardMin *int
	// CardMax is the maximum cardinality constraint.
	CardMax *int
	// Skip indicates the field should be ignored.
	Skip bool
}

// ParseTag parses the content of an `ld` struct tag into a FieldTag structure.
// It supports the options key and cardinality (card=M..N or card=M+).
func ParseTag(tag string) (FieldTag, error) {
	if tag == "" || tag == "-" {
		return FieldTag{Skip: tag == "-"}, nil
	}

	parts := strings.Split(tag, ",")
	ft := FieldTag{}

	for i, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		switch {
		case i == 0 && part != "key" && !strings.Contains(part, "="):
			ft.Name = part
		case part == "key":
			ft.Key = true
		case strings.HasPrefix(part, "card="):
			cardStr := strings.TrimPrefix(part, "card=")
			min, max, err := parseCardinality(cardStr)
			if err != nil {
				return FieldTag{}, fmt.Errorf("invalid cardinality %q: %w", cardStr, err)
			}
			ft.CardMin = min
			ft.CardMax = max
		default:
			return FieldTag{}, fmt.Errorf("unknown tag option: %q", part)
		}
	}

	return ft, nil
}

// parseCardinality parses cardinality strings like "0..1", "1..5", "2..", "0+".
func parseCardinality(s string) (min *int, max *int, err error) {
	if strings.HasSuffix(s, "+") {
		v, err := strconv.Atoi(strings.TrimSuffix(s, "+"))
		if err != nil {
			return nil, nil, fmt.Errorf("invalid min value: %w", err)
		}
		return intPtr(v), nil, nil
	}

	parts := strings.Split(s, "..")
	if len(parts) != 2 {
		return nil, nil, fmt.Errorf("expected format M..N or M.., got %q", s)
	}

	v, err := strconv.Atoi(parts[0])
	if err != nil {
		return nil, nil, fmt.Errorf("invalid min value: %w", err)
	}
	minVal := intPtr(v)

	if parts[1] == "" {
		return minVal, nil, nil // unbounded max
	}

	v, err = strconv.Atoi(parts[1])
	if err != nil {
		return nil, nil, fmt.Errorf("invalid max value: %w", err)
	}
	return minVal, intPtr(v), nil
}

func intPtr(v int) *int {
	return &v
}

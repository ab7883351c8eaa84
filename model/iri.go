package model

import "strings"

// IRI is a resource identifier such as "http://data.example.org/ontologies/GO".
type IRI string

// String returns the full IRI.
func (i IRI) String() string { return string(i) }

// LocalName returns the short form of the IRI: the trailing fragment after
// the last '#' when the IRI has one, otherwise the last path segment.
func (i IRI) LocalName() string {
	return LastFragment(string(i))
}

// LastFragment returns the trailing segment of s. Trailing separators are
// ignored, so "http://x/A/" yields "A". A string without separators is
// returned unchanged.
func LastFragment(s string) string {
	sep := "/"
	if strings.Contains(s, "#") {
		sep = "#"
	}
	trimmed := strings.TrimRight(s, sep)
	if trimmed == "" {
		return s
	}
	if i := strings.LastIndex(trimmed, sep); i >= 0 {
		return trimmed[i+1:]
	}
	return trimmed
}

package model

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func registerHydrationModels(t *testing.T) {
	t.Helper()
	ClearRegistry()
	require.NoError(t, Register[testOntology]())
	require.NoError(t, Register[testSubmission]())
}

func TestHydrate(t *testing.T) {
	registerHydrationModels(t)

	r := NewResource("http://x/submissions/GO/3")
	r.SetUUID("c0ffee")
	r.MarkLoaded()
	r.SetAttribute("submissionId", Wrap(String("3")))
	r.SetAttribute("ontology", Ref(Reference("http://x/ontologies/GO")))
	r.SetAttribute("released", Wrap(Bool(true)))
	r.SetAttribute("score", Int(7))
	r.SetAttribute("contact", List(String("a@x.org"), String("b@x.org")))
	r.SetAttribute("source", IRIValue("http://x/source.owl"))

	var s testSubmission
	require.NoError(t, Hydrate(&s, r))

	assert.Equal(t, IRI("http://x/submissions/GO/3"), s.ResourceID())
	assert.Equal(t, "c0ffee", s.UUID())
	assert.True(t, s.Loaded())
	assert.Equal(t, 3, s.SubmissionID)
	require.NotNil(t, s.Ontology)
	assert.Equal(t, IRI("http://x/ontologies/GO"), s.Ontology.ResourceID())
	assert.False(t, s.Ontology.Loaded())
	assert.True(t, s.Released)
	assert.Equal(t, 7.0, s.Score)
	assert.Equal(t, []string{"a@x.org", "b@x.org"}, s.Contact)
	assert.Equal(t, IRI("http://x/source.owl"), s.Source)
}

func TestHydrate_SingleValueIntoSlice(t *testing.T) {
	registerHydrationModels(t)

	r := NewResource("http://x/s/1")
	r.SetAttribute("contact", String("only@x.org"))

	var s testSubmission
	require.NoError(t, Hydrate(&s, r))
	assert.Equal(t, []string{"only@x.org"}, s.Contact)
}

func TestHydrate_ReferenceList(t *testing.T) {
	registerHydrationModels(t)

	r := NewResource("http://x/ontologies/GO")
	r.SetAttribute("acronym", Wrap(String("GO")))
	r.SetAttribute("submissions", List(
		Ref(Reference("http://x/s/1")),
		Ref(Reference("http://x/s/2")),
	))
	r.SetAttribute("homepage", String("http://geneontology.org"))

	var o testOntology
	require.NoError(t, Hydrate(&o, r))
	assert.Equal(t, "GO", o.Acronym)
	require.Len(t, o.Submissions, 2)
	assert.Equal(t, IRI("http://x/s/2"), o.Submissions[1].ResourceID())
	require.NotNil(t, o.Homepage)
	assert.Equal(t, "http://geneontology.org", *o.Homepage)
}

func TestHydrate_CardinalityViolation(t *testing.T) {
	registerHydrationModels(t)

	r := NewResource("http://x/ontologies/GO")
	r.SetAttribute("name", List(String("a"), String("b")))

	var o testOntology
	err := Hydrate(&o, r)
	var herr *HydrationError
	require.True(t, errors.As(err, &herr))
	assert.Equal(t, "name", herr.Field)
}

func TestHydrate_BadInteger(t *testing.T) {
	registerHydrationModels(t)

	r := NewResource("http://x/s/1")
	r.SetAttribute("submissionId", String("three"))

	var s testSubmission
	err := Hydrate(&s, r)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "submissionId")
}

func TestHydrate_NotRegistered(t *testing.T) {
	ClearRegistry()

	var s testSubmission
	err := Hydrate(&s, NewResource("http://x/s/1"))
	var nerr *NotRegisteredError
	assert.True(t, errors.As(err, &nerr))
}

func TestHydrate_IntegerRange(t *testing.T) {
	registerHydrationModels(t)

	tests := []struct {
		name string
		val  Value
	}{
		{"fractional float", Float(2.5)},
		{"float beyond int64", Float(1e19)},
		{"string beyond int64", String("99999999999999999999")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewResource("http://x/s/1")
			r.SetAttribute("submissionId", tt.val)

			var s testSubmission
			err := Hydrate(&s, r)
			require.Error(t, err)
			assert.Contains(t, err.Error(), "submissionId")
		})
	}

	r := NewResource("http://x/s/1")
	r.SetAttribute("submissionId", Float(4))
	var s testSubmission
	require.NoError(t, Hydrate(&s, r))
	assert.Equal(t, 4, s.SubmissionID)
}

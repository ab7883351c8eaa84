package model

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test models

type testOntology struct {
	BaseEntity
	Acronym     string            `ld:"acronym,key"`
	Name        string            `ld:"name,card=0..1"`
	Submissions []*testSubmission `ld:"submissions"`
	Homepage    *string
	Internal    string `ld:"-"`
	hidden      string
}

type testSubmission struct {
	BaseEntity
	SubmissionID int           `ld:"submissionId"`
	Ontology     *testOntology `ld:"ontology"`
	Released     bool          `ld:"released"`
	Score        float64       `ld:"score"`
	Contact      []string      `ld:"contact"`
	Source       IRI           `ld:"source"`
}

type notAnEntity struct {
	Name string
}

func TestExtractModelInfo(t *testing.T) {
	info, err := ExtractModelInfo(reflect.TypeOf(testOntology{}))
	require.NoError(t, err)

	assert.Equal(t, "test_ontology", info.TypeName)
	require.Len(t, info.Fields, 4)
	require.Len(t, info.KeyFields, 1)
	assert.Equal(t, "acronym", info.KeyFields[0].Name)

	names := make([]string, len(info.Fields))
	for i, f := range info.Fields {
		names[i] = f.Name
	}
	assert.Equal(t, []string{"acronym", "name", "submissions", "homepage"}, names)

	subs, ok := info.FieldByAttrName("submissions")
	require.True(t, ok)
	assert.True(t, subs.IsSlice)
	assert.Equal(t, reflect.TypeOf(&testSubmission{}), subs.ElemType)

	home, ok := info.FieldByAttrName("homepage")
	require.True(t, ok)
	assert.True(t, home.IsPointer)

	nameField, _ := info.FieldByAttrName("name")
	require.NotNil(t, nameField.Tag.CardMax)
	assert.Equal(t, 1, *nameField.Tag.CardMax)
}

func TestExtractModelInfo_Errors(t *testing.T) {
	_, err := ExtractModelInfo(reflect.TypeOf(42))
	assert.Error(t, err, "expected error for non-struct")

	_, err = ExtractModelInfo(reflect.TypeOf(notAnEntity{}))
	assert.Error(t, err, "expected error for struct without BaseEntity")
}

func TestLowerCamel(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"Name", "name"},
		{"URL", "url"},
		{"HTMLPage", "htmlPage"},
		{"SubmissionID", "submissionID"},
		{"already", "already"},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, lowerCamel(tt.in))
		})
	}
}

func TestToSnakeCase(t *testing.T) {
	assert.Equal(t, "ontology_submission", toSnakeCase("OntologySubmission"))
	assert.Equal(t, "ontology", toSnakeCase("Ontology"))
}

func TestRegisterAndLookup(t *testing.T) {
	ClearRegistry()

	require.NoError(t, Register[testOntology](WithTypeName("ontology")))

	info, ok := Lookup("ontology")
	require.True(t, ok)

	byType, ok := LookupType(reflect.TypeOf(&testOntology{}))
	require.True(t, ok)
	assert.Same(t, info, byType)
	assert.Len(t, RegisteredTypes(), 1)

	_, ok = Lookup("test_ontology")
	assert.False(t, ok)

	// Re-registering the same type is idempotent
	require.NoError(t, Register[testOntology](WithTypeName("ontology")))
}

func TestRegister_NameConflict(t *testing.T) {
	ClearRegistry()

	require.NoError(t, Register[testOntology](WithTypeName("thing")))
	err := Register[testSubmission](WithTypeName("thing"))
	assert.Error(t, err)
}

func TestRegister_SerializableWithoutAccessor(t *testing.T) {
	ClearRegistry()

	err := Register[testOntology](WithSerializableMethods("missing"))
	assert.ErrorContains(t, err, `serializable method "missing"`)
}

func TestMustRegister_Panics(t *testing.T) {
	ClearRegistry()
	assert.Panics(t, func() { MustRegister[notAnEntity]() })
}

func TestAccessor(t *testing.T) {
	ClearRegistry()
	MustRegister[testOntology](
		WithAccessor("submissionCount", func(o *testOntology) any { return len(o.Submissions) }),
		WithSerializableMethods("submissionCount"),
	)

	o := &testOntology{Acronym: "GO", Submissions: []*testSubmission{{}, {}}}
	info, err := InfoFor(o)
	require.NoError(t, err)
	assert.Equal(t, []string{"submissionCount"}, info.AccessorNames())

	fn, ok := info.Accessor("submissionCount")
	require.True(t, ok)
	got, err := fn(o)
	require.NoError(t, err)
	assert.Equal(t, 2, got)

	// Attribute fields act as their own getters
	fn, ok = info.Accessor("acronym")
	require.True(t, ok)
	got, err = fn(o)
	require.NoError(t, err)
	assert.Equal(t, "GO", got)

	_, ok = info.Accessor("nope")
	assert.False(t, ok)

	// Wrong entity type is reported, not panicked on
	fn, _ = info.Accessor("submissionCount")
	_, err = fn(&testSubmission{})
	assert.Error(t, err)
}

func TestInfoFor_Unregistered(t *testing.T) {
	ClearRegistry()

	info, err := InfoFor(&testSubmission{})
	require.NoError(t, err)
	assert.Equal(t, "test_submission", info.TypeName)
	assert.Empty(t, info.AccessorNames())
}

package flex

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RobertCoop/ontologies-linked-data/model"
)

func TestNormalizeValue(t *testing.T) {
	refA := model.Ref(model.Reference("http://x/A"))
	refB := model.Ref(model.Reference("http://x/B#frag"))

	tests := []struct {
		name string
		in   model.Value
		want any
	}{
		{"scalar", model.String("Foo"), "Foo"},
		{"null", model.Null(), nil},
		{"wrapper", model.Wrap(model.Int(3)), int64(3)},
		{"double wrapper", model.Wrap(model.Wrap(model.String("x"))), "x"},
		{"iri term keeps full form", model.IRIValue("http://x/A"), "http://x/A"},
		{"reference", refA, "A"},
		{"wrapped reference", model.Wrap(refA), "A"},
		{"list of references", model.List(refA, refB), []any{"A", "frag"}},
		{"list of wrappers", model.List(model.Wrap(model.Int(1)), model.Wrap(model.String("a"))), []any{int64(1), "a"}},
		{"list of scalars", model.List(model.String("a"), model.Bool(true)), []any{"a", true}},
		{"empty list", model.List(), []any{}},
		{
			"map passes through",
			model.Map(map[string]model.Value{"k": model.Wrap(model.String("v")), "n": model.Float(1.5)}),
			map[string]any{"k": "v", "n": 1.5},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, normalizeValue(tt.in))
		})
	}
}

func TestNormalizeValue_FirstElementDecidesListShape(t *testing.T) {
	ref := model.Ref(model.Reference("http://x/A"))

	// Led by a reference: references become short forms, the rest pass through
	assert.Equal(t, []any{"A", "x"}, normalizeValue(model.List(ref, model.String("x"))))

	// Led by a scalar: the list passes through and references keep their full identifier
	assert.Equal(t, []any{"x", "http://x/A"}, normalizeValue(model.List(model.String("x"), ref)))
}

func TestNormalize_CanonicalKeyWins(t *testing.T) {
	bag := map[string]model.Value{
		" name":  model.String("spaced"),
		"name":   model.String("plain"),
		"other ": model.String("o"),
	}
	rep := normalize(bag)
	assert.Equal(t, Representation{"name": "plain", "other": "o"}, rep)
}

func TestDenylisted(t *testing.T) {
	for _, name := range []string{
		"attributes", "table", "_cached_exist", "internals", "captures",
		"splat", "uuid", "apikey", "password", "passwordHash", " password ",
	} {
		assert.True(t, Denylisted(name), name)
	}
	assert.False(t, Denylisted("name"))
	assert.False(t, Denylisted("Password"))
}

func TestFlatten_DenylistIntegrity(t *testing.T) {
	r := model.NewResource("http://x/users/alice")
	for _, name := range []string{
		"attributes", "table", "_cached_exist", "internals", "captures",
		"splat", "uuid", "apikey", "password", "passwordHash",
	} {
		r.SetAttribute(name, model.String("leak"))
	}
	r.SetAttribute("username", model.Wrap(model.String("alice")))

	rep, err := Flatten(r, Options{})
	require.NoError(t, err)
	assert.Equal(t, Representation{"username": "alice", "id": "alice"}, rep)

	// A bag entity has no accessors, so asking for a denylisted name fails
	_, err = Flatten(r, Options{Only: []string{"password"}})
	assert.Error(t, err)
}

func TestFlatten_ResourceReferences(t *testing.T) {
	r := model.NewResource("http://x/ontologies/GO")
	r.SetAttribute("acronym", model.Wrap(model.String("GO")))
	r.SetAttribute("submissions", model.List(
		model.Ref(model.Reference("http://x/ontologies/GO/submissions/1")),
		model.Ref(model.Reference("http://x/ontologies/GO/submissions/2")),
		model.Ref(model.Reference("http://x/ontologies/GO/submissions/3")),
	))
	r.SetAttribute("administeredBy", model.Ref(model.Reference("http://x/users/alice")))

	rep, err := Flatten(r, Options{})
	require.NoError(t, err)
	assert.Equal(t, Representation{
		"acronym":        "GO",
		"submissions":    []any{"1", "2", "3"},
		"administeredBy": "alice",
		"id":             "GO",
	}, rep)
}

func TestFlatten_BagIsNotMutated(t *testing.T) {
	r := model.NewResource("http://x/r")
	r.SetAttribute("password", model.String("secret"))
	r.SetAttribute("name", model.String("n"))

	_, err := Flatten(r, Options{Except: []string{"name"}})
	require.NoError(t, err)
	assert.Len(t, r.Attributes(), 2)
}

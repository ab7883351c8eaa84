package ntriples

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = `
# ontology GO
<http://data.example.org/ontologies/GO> <http://data.example.org/metadata/acronym> "GO" .
<http://data.example.org/ontologies/GO> <http://data.example.org/metadata/name> "Gene Ontology"@en .
<http://data.example.org/ontologies/GO> <http://data.example.org/metadata/viewingRestriction> "public"^^<http://www.w3.org/2001/XMLSchema#string> .
<http://data.example.org/ontologies/GO/submissions/1> <http://data.example.org/metadata/submissionId> "1"^^<http://www.w3.org/2001/XMLSchema#integer> .
<http://data.example.org/ontologies/GO/submissions/1> <http://data.example.org/metadata/ontology> <http://data.example.org/ontologies/GO> .
_:b0 <http://data.example.org/metadata/note> _:b1 .
`

func TestParseString(t *testing.T) {
	triples, err := ParseString(sample)
	require.NoError(t, err)
	require.Len(t, triples, 6)

	assert.Equal(t, Triple{
		Subject:   "http://data.example.org/ontologies/GO",
		Predicate: "http://data.example.org/metadata/acronym",
		Object:    Term{Kind: LiteralTerm, Value: "GO"},
	}, triples[0])

	assert.Equal(t, "en", triples[1].Object.Lang)
	assert.Equal(t, "Gene Ontology", triples[1].Object.Value)

	assert.Equal(t, "http://www.w3.org/2001/XMLSchema#string", triples[2].Object.Datatype)
	assert.Equal(t, "http://www.w3.org/2001/XMLSchema#integer", triples[3].Object.Datatype)

	assert.Equal(t, Term{Kind: IRITerm, Value: "http://data.example.org/ontologies/GO"}, triples[4].Object)

	assert.Equal(t, "_:b0", triples[5].Subject)
	assert.Equal(t, Term{Kind: BlankTerm, Value: "_:b1"}, triples[5].Object)
}

func TestParseString_Escapes(t *testing.T) {
	triples, err := ParseString(`<http://x/a> <http://x/p> "line\nwith \"quotes\"" .`)
	require.NoError(t, err)
	require.Len(t, triples, 1)
	assert.Equal(t, "line\nwith \"quotes\"", triples[0].Object.Value)
}

func TestParseString_Empty(t *testing.T) {
	triples, err := ParseString("# nothing here\n\n")
	require.NoError(t, err)
	assert.Empty(t, triples)
}

func TestParseString_Errors(t *testing.T) {
	for name, input := range map[string]string{
		"missing dot":       `<http://x/a> <http://x/p> "v"`,
		"literal predicate": `<http://x/a> "p" "v" .`,
		"literal subject":   `"a" <http://x/p> "v" .`,
		"bad iri":           `<http://x/a b> <http://x/p> "v" .`,
	} {
		t.Run(name, func(t *testing.T) {
			_, err := ParseString(input)
			assert.ErrorContains(t, err, "parse n-triples")
		})
	}
}

func TestTripleString(t *testing.T) {
	triples, err := ParseString(sample)
	require.NoError(t, err)

	var lines []string
	for _, tr := range triples {
		lines = append(lines, tr.String())
	}
	again, err := ParseString(strings.Join(lines, "\n"))
	require.NoError(t, err)
	assert.Equal(t, triples, again)

	assert.Equal(t,
		`<http://x/a> <http://x/p> "v"@en .`,
		Triple{Subject: "http://x/a", Predicate: "http://x/p", Object: Term{Kind: LiteralTerm, Value: "v", Lang: "en"}}.String())
}

func TestParseFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.nt")
	require.NoError(t, os.WriteFile(path, []byte(sample), 0o644))

	triples, err := ParseFile(path)
	require.NoError(t, err)
	assert.Len(t, triples, 6)

	_, err = ParseFile(filepath.Join(t.TempDir(), "missing.nt"))
	assert.ErrorContains(t, err, "read n-triples")
}

func TestTermKindString(t *testing.T) {
	assert.Equal(t, "iri", IRITerm.String())
	assert.Equal(t, "blank", BlankTerm.String())
	assert.Equal(t, "literal", LiteralTerm.String())
	assert.Equal(t, "TermKind(9)", TermKind(9).String())
}

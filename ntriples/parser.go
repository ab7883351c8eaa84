// Package ntriples parses RDF N-Triples documents into triples.
package ntriples

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// TermKind distinguishes the three kinds of RDF object terms.
type TermKind int

const (
	IRITerm TermKind = iota
	BlankTerm
	LiteralTerm
)

func (k TermKind) String() string {
	switch k {
	case IRITerm:
		return "iri"
	case BlankTerm:
		return "blank"
	case LiteralTerm:
		return "literal"
	default:
		return fmt.Sprintf("TermKind(%d)", int(k))
	}
}

// Term is an RDF object. Datatype and Lang apply to literals only.
type Term struct {
	Kind     TermKind
	Value    string
	Datatype string
	Lang     string
}

// String renders the term in N-Triples syntax.
func (t Term) String() string {
	switch t.Kind {
	case IRITerm:
		return "<" + t.Value + ">"
	case BlankTerm:
		return t.Value
	}
	s := strconv.Quote(t.Value)
	switch {
	case t.Lang != "":
		s += "@" + t.Lang
	case t.Datatype != "":
		s += "^^<" + t.Datatype + ">"
	}
	return s
}

// Triple is one subject-predicate-object statement. A subject starting with
// "_:" is a blank node label.
type Triple struct {
	Subject   string
	Predicate string
	Object    Term
}

func (t Triple) String() string {
	subj := t.Subject
	if !strings.HasPrefix(subj, "_:") {
		subj = "<" + subj + ">"
	}
	return fmt.Sprintf("%s <%s> %s .", subj, t.Predicate, t.Object)
}

// --- Participle grammar structs ---

type document struct {
	Triples []*tripleNode `parser:"@@*"`
}

// tripleNode parses: subject predicate object .
type tripleNode struct {
	Subject   *subjectNode `parser:"@@"`
	Predicate string       `parser:"@IRI"`
	Object    *objectNode  `parser:"@@ '.'"`
}

type subjectNode struct {
	IRI   *string `parser:"  @IRI"`
	Blank *string `parser:"| @BlankNode"`
}

type objectNode struct {
	IRI     *string      `parser:"  @IRI"`
	Blank   *string      `parser:"| @BlankNode"`
	Literal *literalNode `parser:"| @@"`
}

// literalNode parses: "lexical" [^^<datatype> | @lang]
type literalNode struct {
	Value    string `parser:"@String"`
	Datatype string `parser:"( '^^' @IRI"`
	Lang     string `parser:"| @LangTag )?"`
}

var ntLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Comment", Pattern: `#[^\n]*`},
	{Name: "Whitespace", Pattern: `[\s]+`},
	{Name: "IRI", Pattern: `<[^<>"{}|^\x60\\\x00-\x20]*>`},
	{Name: "BlankNode", Pattern: `_:[A-Za-z0-9_][A-Za-z0-9_\-]*`},
	{Name: "String", Pattern: `"(?:[^"\\\n\r]|\\.)*"`},
	{Name: "LangTag", Pattern: `@[a-zA-Z]+(?:-[a-zA-Z0-9]+)*`},
	{Name: "Caret", Pattern: `\^\^`},
	{Name: "Dot", Pattern: `\.`},
})

var parser = participle.MustBuild[document](
	participle.Lexer(ntLexer),
	participle.Elide("Comment", "Whitespace"),
	participle.Unquote("String"),
	participle.Map(func(t lexer.Token) (lexer.Token, error) {
		t.Value = t.Value[1 : len(t.Value)-1]
		return t, nil
	}, "IRI"),
	participle.Map(func(t lexer.Token) (lexer.Token, error) {
		t.Value = t.Value[1:]
		return t, nil
	}, "LangTag"),
)

// --- Entry points ---

// ParseString parses an N-Triples document held in memory.
func ParseString(input string) ([]Triple, error) {
	doc, err := parser.ParseString("input.nt", input)
	if err != nil {
		return nil, fmt.Errorf("parse n-triples: %w", err)
	}
	return convert(doc), nil
}

// Parse reads and parses an N-Triples document from r. name is used in
// error positions.
func Parse(name string, r io.Reader) ([]Triple, error) {
	doc, err := parser.Parse(name, r)
	if err != nil {
		return nil, fmt.Errorf("parse n-triples: %w", err)
	}
	return convert(doc), nil
}

// ParseFile reads and parses the N-Triples file at path.
func ParseFile(path string) ([]Triple, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("read n-triples: %w", err)
	}
	defer f.Close()
	return Parse(path, f)
}

func convert(doc *document) []Triple {
	out := make([]Triple, 0, len(doc.Triples))
	for _, n := range doc.Triples {
		t := Triple{Predicate: n.Predicate}
		if n.Subject.IRI != nil {
			t.Subject = *n.Subject.IRI
		} else {
			t.Subject = *n.Subject.Blank
		}
		switch o := n.Object; {
		case o.IRI != nil:
			t.Object = Term{Kind: IRITerm, Value: *o.IRI}
		case o.Blank != nil:
			t.Object = Term{Kind: BlankTerm, Value: *o.Blank}
		default:
			t.Object = Term{
				Kind:     LiteralTerm,
				Value:    o.Literal.Value,
				Datatype: o.Literal.Datatype,
				Lang:     o.Literal.Lang,
			}
		}
		out = append(out, t)
	}
	return out
}

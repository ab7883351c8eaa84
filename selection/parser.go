// Package selection parses textual field selections into flatten options.
//
// A selection is a sequence of clauses, optionally separated by ';':
//
//	only(acronym, name) except(name) methods(submissionCount) all
//
// Repeated clauses accumulate. The empty selection yields the zero options.
package selection

import (
	"fmt"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"

	"github.com/RobertCoop/ontologies-linked-data/flex"
)

// --- Participle grammar structs ---

// Expression is the top-level grammar: zero or more clauses.
type Expression struct {
	Clauses []*Clause `parser:"( @@ ';'? )*"`
}

// Clause is either the bare 'all' keyword or a named field list.
type Clause struct {
	All  bool        `parser:"  @'all'"`
	List *ListClause `parser:"| @@"`
}

// ListClause parses: (only|methods|except) ( name [, name]* )
type ListClause struct {
	Kind  string   `parser:"@('only' | 'methods' | 'except')"`
	Names []string `parser:"'(' ( @Ident ( ',' @Ident )* )? ')'"`
}

var selectionLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Whitespace", Pattern: `\s+`},
	{Name: "Ident", Pattern: `[A-Za-z_][A-Za-z0-9_\-]*`},
	{Name: "Punct", Pattern: `[(),;]`},
})

var parser = participle.MustBuild[Expression](
	participle.Lexer(selectionLexer),
	participle.Elide("Whitespace"),
	participle.UseLookahead(2),
)

// Parse parses a selection expression into flex.Options. Syntax errors are
// reported as *flex.MalformedOptionsError.
func Parse(input string) (flex.Options, error) {
	var opts flex.Options
	if strings.TrimSpace(input) == "" {
		return opts, nil
	}

	expr, err := parser.ParseString("selection", input)
	if err != nil {
		return flex.Options{}, &flex.MalformedOptionsError{Option: "selection", Reason: err.Error()}
	}

	for _, c := range expr.Clauses {
		if c.All {
			opts.All = true
			continue
		}
		switch c.List.Kind {
		case "only":
			opts.Only = append(opts.Only, c.List.Names...)
		case "methods":
			opts.Methods = append(opts.Methods, c.List.Names...)
		case "except":
			opts.Except = append(opts.Except, c.List.Names...)
		}
	}
	return opts, nil
}

// Format renders opts in the syntax accepted by Parse. Empty lists are omitted.
func Format(opts flex.Options) string {
	var parts []string
	add := func(kind string, names []string) {
		if len(names) > 0 {
			parts = append(parts, fmt.Sprintf("%s(%s)", kind, strings.Join(names, ", ")))
		}
	}
	add("only", opts.Only)
	add("methods", opts.Methods)
	add("except", opts.Except)
	if opts.All {
		parts = append(parts, "all")
	}
	return strings.Join(parts, " ")
}

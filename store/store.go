// Package store is a SQLite triple store that loads subjects as
// model.Resource entities.
//
// Triples are kept with set semantics: inserting a statement that is already
// present is a no-op. Attribute values come back in insertion order.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/RobertCoop/ontologies-linked-data/model"
	"github.com/RobertCoop/ontologies-linked-data/ntriples"
)

// RDFType is the rdf:type predicate. Its object also populates Resource.Type.
const RDFType = "http://www.w3.org/1999/02/22-rdf-syntax-ns#type"

const xsd = "http://www.w3.org/2001/XMLSchema#"

const schema = `
CREATE TABLE IF NOT EXISTS resources (
	subject TEXT PRIMARY KEY,
	uuid    TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS triples (
	id        INTEGER PRIMARY KEY AUTOINCREMENT,
	subject   TEXT    NOT NULL,
	predicate TEXT    NOT NULL,
	object    TEXT    NOT NULL,
	kind      INTEGER NOT NULL,
	datatype  TEXT    NOT NULL DEFAULT '',
	lang      TEXT    NOT NULL DEFAULT '',
	UNIQUE (subject, predicate, object, kind, datatype, lang)
);
CREATE INDEX IF NOT EXISTS triples_subject ON triples (subject);
CREATE INDEX IF NOT EXISTS triples_predicate_object ON triples (predicate, object);
`

// NotFoundError is returned when a subject has no stored triples.
type NotFoundError struct {
	Subject model.IRI
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("resource not found: %s", e.Subject)
}

// Store is a triple store backed by SQLite.
type Store struct {
	db     *sql.DB
	logger *log.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger used for debug output.
func WithLogger(l *log.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.logger = l
		}
	}
}

// Open opens (creating if needed) the SQLite database at dsn and ensures the
// schema exists. Use ":memory:" for a private in-memory store.
func Open(ctx context.Context, dsn string, opts ...Option) (*Store, error) {
	s := &Store{logger: log.New(io.Discard)}
	for _, opt := range opts {
		opt(s)
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	// Every connection to ":memory:" is a separate database.
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	s.db = db
	s.logger.Debug("store opened", "dsn", dsn)
	return s, nil
}

// Close releases the database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// Insert adds triples in one transaction and returns how many were new.
func (s *Store) Insert(ctx context.Context, triples ...ntriples.Triple) (int, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin insert: %w", err)
	}
	defer tx.Rollback()

	resStmt, err := tx.PrepareContext(ctx, `INSERT OR IGNORE INTO resources (subject, uuid) VALUES (?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("prepare insert: %w", err)
	}
	defer resStmt.Close()

	tripleStmt, err := tx.PrepareContext(ctx,
		`INSERT OR IGNORE INTO triples (subject, predicate, object, kind, datatype, lang) VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("prepare insert: %w", err)
	}
	defer tripleStmt.Close()

	added := 0
	for _, t := range triples {
		if t.Subject == "" || t.Predicate == "" {
			return 0, fmt.Errorf("insert %s: subject and predicate are required", t)
		}
		if _, err := resStmt.ExecContext(ctx, t.Subject, uuid.NewString()); err != nil {
			return 0, fmt.Errorf("insert resource %s: %w", t.Subject, err)
		}
		res, err := tripleStmt.ExecContext(ctx,
			t.Subject, t.Predicate, t.Object.Value, int(t.Object.Kind), t.Object.Datatype, t.Object.Lang)
		if err != nil {
			return 0, fmt.Errorf("insert triple %s: %w", t, err)
		}
		if n, _ := res.RowsAffected(); n > 0 {
			added++
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit insert: %w", err)
	}
	s.logger.Debug("triples inserted", "given", len(triples), "added", added)
	return added, nil
}

// Find loads subject as a Resource. Objects that are themselves stored
// subjects become references; other IRIs become wrapped IRI terms.
func (s *Store) Find(ctx context.Context, subject model.IRI) (*model.Resource, error) {
	var id string
	err := s.db.QueryRowContext(ctx, `SELECT uuid FROM resources WHERE subject = ?`, string(subject)).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, &NotFoundError{Subject: subject}
	}
	if err != nil {
		return nil, fmt.Errorf("find %s: %w", subject, err)
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT t.predicate, t.object, t.kind, t.datatype, t.lang, r.subject IS NOT NULL
		FROM triples t
		LEFT JOIN resources r ON t.kind != ? AND r.subject = t.object
		WHERE t.subject = ?
		ORDER BY t.id`, int(ntriples.LiteralTerm), string(subject))
	if err != nil {
		return nil, fmt.Errorf("find %s: %w", subject, err)
	}
	defer rows.Close()

	res := model.NewResource(subject)
	res.SetUUID(id)

	var order []string
	values := make(map[string][]model.Value)
	for rows.Next() {
		var (
			pred   string
			term   ntriples.Term
			kind   int
			stored bool
		)
		if err := rows.Scan(&pred, &term.Value, &kind, &term.Datatype, &term.Lang, &stored); err != nil {
			return nil, fmt.Errorf("scan %s: %w", subject, err)
		}
		term.Kind = ntriples.TermKind(kind)

		if pred == RDFType && term.Kind == ntriples.IRITerm && res.Type == "" {
			res.Type = model.IRI(term.Value)
		}

		name := model.IRI(pred).LocalName()
		if _, seen := values[name]; !seen {
			order = append(order, name)
		}
		values[name] = append(values[name], termValue(term, stored))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("find %s: %w", subject, err)
	}

	for _, name := range order {
		vs := values[name]
		if len(vs) == 1 {
			res.SetAttribute(name, vs[0])
		} else {
			res.SetAttribute(name, model.List(vs...))
		}
	}
	res.MarkLoaded()
	s.logger.Debug("resource loaded", "subject", subject, "attributes", len(order))
	return res, nil
}

// Where returns the subjects having predicate with the given object value,
// in insertion order.
func (s *Store) Where(ctx context.Context, predicate, object string) ([]model.IRI, error) {
	return s.subjects(ctx, `
		SELECT subject FROM triples
		WHERE predicate = ? AND object = ?
		ORDER BY id`, predicate, object)
}

// Subjects returns every stored subject in insertion order.
func (s *Store) Subjects(ctx context.Context) ([]model.IRI, error) {
	return s.subjects(ctx, `SELECT subject FROM resources ORDER BY rowid`)
}

func (s *Store) subjects(ctx context.Context, query string, args ...any) ([]model.IRI, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query subjects: %w", err)
	}
	defer rows.Close()

	var out []model.IRI
	seen := make(map[string]bool)
	for rows.Next() {
		var subj string
		if err := rows.Scan(&subj); err != nil {
			return nil, fmt.Errorf("scan subject: %w", err)
		}
		if !seen[subj] {
			seen[subj] = true
			out = append(out, model.IRI(subj))
		}
	}
	return out, rows.Err()
}

// termValue converts a stored object term to an attribute value.
func termValue(t ntriples.Term, stored bool) model.Value {
	switch t.Kind {
	case ntriples.IRITerm, ntriples.BlankTerm:
		if stored {
			return model.Ref(model.Reference(model.IRI(t.Value)))
		}
		return model.IRIValue(model.IRI(t.Value))
	}
	return model.Wrap(literalValue(t.Value, t.Datatype))
}

// literalValue coerces a lexical form according to its XSD datatype. Values
// that do not parse stay strings.
func literalValue(lex, datatype string) model.Value {
	local, ok := strings.CutPrefix(datatype, xsd)
	if !ok {
		return model.String(lex)
	}
	switch local {
	case "integer", "int", "long", "short", "byte",
		"nonNegativeInteger", "positiveInteger", "negativeInteger", "nonPositiveInteger":
		if i, err := strconv.ParseInt(lex, 10, 64); err == nil {
			return model.Int(i)
		}
	case "double", "decimal", "float":
		if f, err := strconv.ParseFloat(lex, 64); err == nil {
			return model.Float(f)
		}
	case "boolean":
		if b, err := strconv.ParseBool(lex); err == nil {
			return model.Bool(b)
		}
	}
	return model.String(lex)
}

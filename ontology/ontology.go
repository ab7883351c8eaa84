// Package ontology defines the ontology and submission models and the
// submission numbering rule.
package ontology

import (
	"context"
	"fmt"

	"github.com/RobertCoop/ontologies-linked-data/model"
)

// Vocabulary used for ontology data.
const (
	MetadataNS   = "http://data.bioontology.org/metadata/"
	OntologyBase = "http://data.bioontology.org/ontologies/"

	OntologyType   = MetadataNS + "Ontology"
	SubmissionType = MetadataNS + "OntologySubmission"
)

// Ontology is a named, versioned vocabulary identified by its acronym.
type Ontology struct {
	model.BaseEntity
	Acronym     string        `ld:"acronym,key"`
	Name        string        `ld:"name,card=0..1"`
	Submissions []*Submission `ld:"submissions"`
}

// Submission is one uploaded version of an ontology.
type Submission struct {
	model.BaseEntity
	SubmissionID int       `ld:"submissionId"`
	Ontology     *Ontology `ld:"ontology"`
}

// IRI returns the identifier of the ontology with the given acronym.
func IRI(acronym string) model.IRI {
	return model.IRI(OntologyBase + acronym)
}

// SubmissionIRI returns the identifier of a numbered submission.
func SubmissionIRI(acronym string, id int) model.IRI {
	return model.IRI(fmt.Sprintf("%s%s/submissions/%d", OntologyBase, acronym, id))
}

// SubmissionLister lists the submissions belonging to an ontology.
type SubmissionLister interface {
	SubmissionsOf(ctx context.Context, acronym string) ([]*Submission, error)
}

// NextSubmissionID returns the number the next submission of acronym should
// get: 1 for the first, otherwise one more than the highest existing number.
func NextSubmissionID(ctx context.Context, l SubmissionLister, acronym string) (int, error) {
	subs, err := l.SubmissionsOf(ctx, acronym)
	if err != nil {
		return 0, fmt.Errorf("list submissions of %s: %w", acronym, err)
	}
	if len(subs) == 0 {
		return 1, nil
	}

	highest := subs[0].SubmissionID
	for _, s := range subs[1:] {
		highest = max(highest, s.SubmissionID)
	}
	return highest + 1, nil
}

// NextSubmissionID returns the number for the next submission of o.
func (o *Ontology) NextSubmissionID(ctx context.Context, l SubmissionLister) (int, error) {
	return NextSubmissionID(ctx, l, o.Acronym)
}

func init() {
	model.MustRegister[Ontology](
		model.WithTypeName("ontology"),
		model.WithAccessor("submissionCount", func(o *Ontology) any {
			return len(o.Submissions)
		}),
		model.WithSerializableMethods("submissionCount"),
	)
	model.MustRegister[Submission](
		model.WithTypeName("ontology_submission"),
		model.WithAccessor("ontologyAcronym", func(s *Submission) any {
			if s.Ontology == nil {
				return nil
			}
			if s.Ontology.Acronym != "" {
				return s.Ontology.Acronym
			}
			return s.Ontology.ResourceID().LocalName()
		}),
		model.WithSerializableMethods("ontologyAcronym"),
	)
}

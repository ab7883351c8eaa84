package ontology

import (
	"context"
	"errors"
	"fmt"

	"github.com/RobertCoop/ontologies-linked-data/model"
	"github.com/RobertCoop/ontologies-linked-data/store"
)

// Repository loads ontology entities from a triple store.
type Repository struct {
	store *store.Store
}

// NewRepository returns a repository reading from s.
func NewRepository(s *store.Store) *Repository {
	return &Repository{store: s}
}

// Load returns the entity stored at id. Subjects typed as an ontology or a
// submission are hydrated into their models; anything else is returned as a
// generic *model.Resource.
func (r *Repository) Load(ctx context.Context, id model.IRI) (model.Entity, error) {
	res, err := r.store.Find(ctx, id)
	if err != nil {
		return nil, err
	}

	var target model.Entity
	switch res.Type {
	case OntologyType:
		target = &Ontology{}
	case SubmissionType:
		target = &Submission{}
	default:
		return res, nil
	}
	if err := model.Hydrate(target, res); err != nil {
		return nil, err
	}
	return target, nil
}

// Ontology loads the ontology with the given acronym.
func (r *Repository) Ontology(ctx context.Context, acronym string) (*Ontology, error) {
	res, err := r.store.Find(ctx, IRI(acronym))
	if err != nil {
		return nil, err
	}
	o := &Ontology{}
	if err := model.Hydrate(o, res); err != nil {
		return nil, err
	}
	return o, nil
}

// SubmissionsOf returns the stored submissions linked to the ontology with
// the given acronym, in insertion order.
func (r *Repository) SubmissionsOf(ctx context.Context, acronym string) ([]*Submission, error) {
	ids, err := r.store.Where(ctx, MetadataNS+"ontology", string(IRI(acronym)))
	if err != nil {
		return nil, err
	}

	subs := make([]*Submission, 0, len(ids))
	for _, id := range ids {
		res, err := r.store.Find(ctx, id)
		var nf *store.NotFoundError
		if errors.As(err, &nf) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("load submission %s: %w", id, err)
		}
		s := &Submission{}
		if err := model.Hydrate(s, res); err != nil {
			return nil, err
		}
		subs = append(subs, s)
	}
	return subs, nil
}

// Package linkeddata flattens linked-data entities into plain, JSON-safe
// representations.
//
// An entity is a resource identified by an IRI whose attributes may hold
// scalars, literal wrappers, references to other resources, lists and maps.
// Flattening collects the attributes, strips internal and credential fields,
// adds the results of requested accessors, applies only/except selection and
// reduces references to their short identifiers.
//
// The module is organized into these packages:
//
//   - [github.com/RobertCoop/ontologies-linked-data/model]: entities, values, struct tags and the model registry
//   - [github.com/RobertCoop/ontologies-linked-data/flex]: the flattening engine and its options
//   - [github.com/RobertCoop/ontologies-linked-data/selection]: textual selection expressions
//   - [github.com/RobertCoop/ontologies-linked-data/ntriples]: N-Triples parser
//   - [github.com/RobertCoop/ontologies-linked-data/store]: SQLite triple store that loads resources
//   - [github.com/RobertCoop/ontologies-linked-data/ontology]: ontology and submission models
//   - [github.com/RobertCoop/ontologies-linked-data/codec]: JSON, MessagePack and CBOR output
//   - [github.com/RobertCoop/ontologies-linked-data/config]: TOML settings for the ldflex command
//
// The model and flex packages have no I/O and no dependencies beyond the
// standard library.
package linkeddata

// Package model provides the entity model shared by the store, the domain
// types, and the flattening engine.
package model

// Identified is implemented by anything that carries a resource identifier.
// Values that are Identified are treated as references by the flattening
// engine and resolved to the short form of their identifier.
type Identified interface {
	ResourceID() IRI
}

// Entity is the marker interface for graph nodes.
// Structs that represent entities must satisfy this interface,
// typically by embedding the BaseEntity type.
type Entity interface {
	Identified
	entity()
	// SetResourceID assigns the identifier of the entity instance.
	SetResourceID(id IRI)
}

// AttributeHolder is implemented by entities that keep their attributes in
// a loosely typed bag rather than in struct fields.
type AttributeHolder interface {
	// Attributes returns the attribute bag, or nil if the entity has none.
	Attributes() map[string]Value
}

// BaseEntity is an embeddable base type for all Go structs mapping to graph nodes.
// It provides the internal state and methods required to satisfy the Entity interface.
//
// Example usage:
//
//	type Ontology struct {
//	    model.BaseEntity
//	    Acronym string `ld:"acronym"`
//	}
type BaseEntity struct {
	id         IRI
	uuid       string
	loaded     bool
	attributes map[string]Value
}

func (BaseEntity) entity() {}

// ResourceID returns the identifier of the entity.
func (e *BaseEntity) ResourceID() IRI { return e.id }

// SetResourceID sets the identifier of the entity.
func (e *BaseEntity) SetResourceID(id IRI) { e.id = id }

// UUID returns the internal bookkeeping uuid assigned by the store.
func (e *BaseEntity) UUID() string { return e.uuid }

// SetUUID sets the internal bookkeeping uuid.
func (e *BaseEntity) SetUUID(uuid string) { e.uuid = uuid }

// Loaded reports whether the entity was populated by a store.
func (e *BaseEntity) Loaded() bool { return e.loaded }

// MarkLoaded flags the entity as populated.
func (e *BaseEntity) MarkLoaded() { e.loaded = true }

// Attributes returns the attribute bag, or nil for struct-backed entities.
func (e *BaseEntity) Attributes() map[string]Value { return e.attributes }

// SetAttribute stores a value in the attribute bag, creating it on first use.
func (e *BaseEntity) SetAttribute(name string, v Value) {
	if e.attributes == nil {
		e.attributes = make(map[string]Value)
	}
	e.attributes[name] = v
}

// Resource is a generic entity whose attributes live entirely in its bag.
// It is what the store returns for subjects that have no typed model.
type Resource struct {
	BaseEntity
	// Type is the rdf:type of the resource, if known.
	Type IRI `ld:"-"`
}

// NewResource returns a resource with the given identifier and an empty bag.
func NewResource(id IRI) *Resource {
	r := &Resource{}
	r.SetResourceID(id)
	r.attributes = make(map[string]Value)
	return r
}

// Reference returns a bare Identified for id. It is used for linked
// objects that are known only by identifier.
func Reference(id IRI) Identified {
	return ref(id)
}

type ref IRI

func (r ref) ResourceID() IRI { return IRI(r) }

package vc

import "fmt"

// TypedObject is implemented by fully typed model values (Profile,
// Achievement) that can stand in for an entity field.
type TypedObject interface {
	EntityID() string
	EntityType() string
}

// EntityKind discriminates the three forms an issuer or achievement field
// can take on the wire.
type EntityKind int

const (
	// EntityReference is a bare URI.
	EntityReference EntityKind = iota + 1
	// EntityInline is an untyped JSON object carrying at least an id.
	EntityInline
	// EntityObject is a fully typed model value.
	EntityObject
)

// Entity is the tagged variant for fields that accept a reference URI, an
// inline object, or a full typed value. Consumers switch on Kind; there is
// no runtime type inspection beyond parsing.
type Entity struct {
	kind   EntityKind
	ref    string
	inline map[string]interface{}
	object TypedObject
}

// NewReferenceEntity wraps a bare reference URI.
func NewReferenceEntity(uri string) Entity {
	return Entity{kind: EntityReference, ref: uri}
}

// NewInlineEntity wraps an inline JSON object.
func NewInlineEntity(fields map[string]interface{}) Entity {
	return Entity{kind: EntityInline, inline: fields}
}

// NewObjectEntity wraps a typed model value.
func NewObjectEntity(obj TypedObject) Entity {
	return Entity{kind: EntityObject, object: obj}
}

// ParseEntity converts a raw JSON value into an Entity.
func ParseEntity(raw interface{}) (Entity, error) {
	switch v := raw.(type) {
	case string:
		return NewReferenceEntity(v), nil
	case map[string]interface{}:
		return NewInlineEntity(v), nil
	case TypedObject:
		return NewObjectEntity(v), nil
	default:
		return Entity{}, fmt.Errorf("invalid entity value: %T", raw)
	}
}

// Kind returns the variant tag.
func (e Entity) Kind() EntityKind { return e.kind }

// Reference returns the URI of a reference entity.
func (e Entity) Reference() string { return e.ref }

// Inline returns the fields of an inline entity.
func (e Entity) Inline() map[string]interface{} { return e.inline }

// Object returns the typed value of an object entity.
func (e Entity) Object() TypedObject { return e.object }

// ID returns the entity's identifier across all three variants.
func (e Entity) ID() string {
	switch e.kind {
	case EntityReference:
		return e.ref
	case EntityInline:
		id, _ := e.inline["id"].(string)
		return id
	case EntityObject:
		return e.object.EntityID()
	}
	return ""
}

// Image describes a badge or profile image.
type Image struct {
	ID      string `json:"id"`
	Type    string `json:"type,omitempty"`
	Caption string `json:"caption,omitempty"`
}

// Profile represents an issuer profile.
type Profile struct {
	ID          string `json:"id"`
	Type        string `json:"type"`
	Name        string `json:"name,omitempty"`
	URL         string `json:"url,omitempty"`
	Email       string `json:"email,omitempty"`
	Description string `json:"description,omitempty"`
	Image       *Image `json:"image,omitempty"`
}

// EntityID implements TypedObject.
func (p Profile) EntityID() string { return p.ID }

// EntityType implements TypedObject.
func (p Profile) EntityType() string {
	if p.Type == "" {
		return "Profile"
	}
	return p.Type
}

// Criteria describes how an achievement is earned.
type Criteria struct {
	ID        string `json:"id,omitempty"`
	Narrative string `json:"narrative,omitempty"`
}

// Achievement represents the badge definition a credential attributes.
type Achievement struct {
	ID          string    `json:"id"`
	Type        string    `json:"type"`
	Name        string    `json:"name,omitempty"`
	Description string    `json:"description,omitempty"`
	Criteria    *Criteria `json:"criteria,omitempty"`
	Image       *Image    `json:"image,omitempty"`
	Issuer      *Profile  `json:"issuer,omitempty"`
	Tags        []string  `json:"tags,omitempty"`
}

// EntityID implements TypedObject.
func (a Achievement) EntityID() string { return a.ID }

// EntityType implements TypedObject.
func (a Achievement) EntityType() string {
	if a.Type == "" {
		return "Achievement"
	}
	return a.Type
}

// Evidence documents why a badge was awarded.
type Evidence struct {
	ID        string `json:"id,omitempty"`
	Type      string `json:"type"`
	Name      string `json:"name,omitempty"`
	Narrative string `json:"narrative,omitempty"`
	Genre     string `json:"genre,omitempty"`
}

// CredentialSchema names an external schema and the validator able to
// process it. Only validator types in the supported allow-list can be
// checked.
type CredentialSchema struct {
	ID   string `json:"id"`
	Type string `json:"type"`
}

// AchievementSubject binds a recipient to the achievement awarded.
type AchievementSubject struct {
	ID          string `json:"id"`
	Type        string `json:"type"`
	Name        string `json:"name,omitempty"`
	Achievement Entity `json:"-"`
}

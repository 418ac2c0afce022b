package vc

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/xeipuuv/gojsonschema"
)

// ErrUnsupportedSchemaType is returned by ValidateSchema when the
// credentialSchema names a validator outside the supported allow-list.
var ErrUnsupportedSchemaType = errors.New("unsupported credential schema type")

// Validator types the engine knows how to process.
var supportedSchemaTypes = map[string]struct{}{
	"JsonSchemaValidator2019":        {},
	"1EdTechJsonSchemaValidator2019": {},
}

// SchemaOpt configures schema validation.
type SchemaOpt func(*schemaOptions)

type schemaOptions struct {
	schemaJSON []byte
	resolver   SchemaResolver
}

// SchemaResolver fetches a schema body by URL. Satisfied by
// docloader.Loader.
type SchemaResolver interface {
	LoadSchema(url string) (json.RawMessage, error)
}

// WithSchemaJSON supplies the schema body inline, avoiding any fetch.
func WithSchemaJSON(schema []byte) SchemaOpt {
	return func(o *schemaOptions) {
		o.schemaJSON = schema
	}
}

// WithSchemaResolver supplies a resolver used to fetch the schema body
// named by credentialSchema.id.
func WithSchemaResolver(resolver SchemaResolver) SchemaOpt {
	return func(o *schemaOptions) {
		o.resolver = resolver
	}
}

// IsValid answers whether the credential is trustworthy at the given
// instant, independent of its signature: false when revoked, expired, or
// carrying a credentialSchema whose validator type is unsupported. The
// schema failure is swallowed into false so callers can use IsValid as a
// single boolean gate; ValidateSchema is the error-raising counterpart.
func (c Credential) IsValid(now time.Time) bool {
	if revoked, ok := c["revoked"].(bool); ok && revoked {
		return false
	}
	if raw, ok := c["expirationDate"].(string); ok && raw != "" {
		expiration, err := time.Parse(time.RFC3339, raw)
		if err != nil || expiration.Before(now) {
			return false
		}
	}
	if _, ok := c["credentialSchema"]; ok {
		valid, err := c.ValidateSchema()
		if err != nil || !valid {
			return false
		}
	}
	return true
}

// ValidateSchema checks the credential's credentialSchema, distinguishing
// "unsupported validator" (ErrUnsupportedSchemaType) from a credential
// that fails its schema (false, nil). A credential without a
// credentialSchema passes. When a schema body is available, inline or via
// a resolver, the credential is additionally validated against it.
func (c Credential) ValidateSchema(opts ...SchemaOpt) (bool, error) {
	options := schemaOptions{}
	for _, opt := range opts {
		opt(&options)
	}

	raw, ok := c["credentialSchema"]
	if !ok || raw == nil {
		return true, nil
	}
	schema, ok := raw.(map[string]interface{})
	if !ok {
		return false, fmt.Errorf("invalid credentialSchema format: %T", raw)
	}
	schemaType, _ := schema["type"].(string)
	if _, ok := supportedSchemaTypes[schemaType]; !ok {
		return false, fmt.Errorf("%w: %q", ErrUnsupportedSchemaType, schemaType)
	}

	body := options.schemaJSON
	if body == nil && options.resolver != nil {
		schemaID, _ := schema["id"].(string)
		if schemaID == "" {
			return false, fmt.Errorf("credentialSchema.id is required to resolve the schema")
		}
		resolved, err := options.resolver.LoadSchema(schemaID)
		if err != nil {
			return false, fmt.Errorf("resolve credential schema: %w", err)
		}
		body = resolved
	}
	if body == nil {
		// Supported validator type, no schema body to check against.
		return true, nil
	}

	result, err := gojsonschema.Validate(
		gojsonschema.NewBytesLoader(body),
		gojsonschema.NewGoLoader(map[string]interface{}(c)),
	)
	if err != nil {
		return false, fmt.Errorf("schema validation: %w", err)
	}
	return result.Valid(), nil
}

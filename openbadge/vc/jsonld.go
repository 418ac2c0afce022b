package vc

// JSON-LD context entries emitted on every credential.
const (
	ContextCredentials = "https://www.w3.org/2018/credentials/v1"
	ContextOpenBadges  = "https://w3id.org/openbadges/v3"
)

// ToJSONLD renders the credential as an OpenBadge v3 JSON-LD document. The
// fixed two-entry @context is set, and fully-populated issuer and
// achievement objects collapse to {id, type} references; bare references
// and minimal inline objects pass through unchanged. The receiver is not
// mutated.
func (c Credential) ToJSONLD() (map[string]interface{}, error) {
	clone, err := c.Clone()
	if err != nil {
		return nil, err
	}
	out := map[string]interface{}(clone)

	out["@context"] = []interface{}{ContextCredentials, ContextOpenBadges}

	if issuer, ok := out["issuer"]; ok {
		out["issuer"] = collapseEntity(issuer, "Profile")
	}
	if subject, ok := out["credentialSubject"].(map[string]interface{}); ok {
		if achievement, ok := subject["achievement"]; ok {
			subject["achievement"] = collapseEntity(achievement, "Achievement")
		}
	}
	return out, nil
}

// collapseEntity reduces a fully-populated object to an {id, type}
// reference. An object counts as fully populated when it carries fields
// beyond id and type; a bare reference URI or a minimal {id, type} object
// is returned as is.
func collapseEntity(raw interface{}, defaultType string) interface{} {
	fields, ok := raw.(map[string]interface{})
	if !ok {
		return raw
	}
	id, hasID := fields["id"].(string)
	if !hasID || len(fields) <= 2 {
		return raw
	}
	typ, ok := fields["type"].(string)
	if !ok || typ == "" {
		typ = defaultType
	}
	return map[string]interface{}{"id": id, "type": typ}
}

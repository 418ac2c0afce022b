package vc

import (
	"fmt"
	"time"
)

// CredentialContents is the structured view of a Credential.
type CredentialContents struct {
	Context        []string
	ID             string
	Types          []string
	Issuer         Entity
	IssuanceDate   time.Time
	ExpirationDate time.Time
	Revoked        bool
	Name           string
	Description    string
	Subject        AchievementSubject
	Schema         *CredentialSchema
	Evidence       []Evidence
}

// Contents parses the credential into its structured view.
func (c Credential) Contents() (CredentialContents, error) {
	var contents CredentialContents

	if context, ok := c["@context"].([]interface{}); ok {
		for _, ctx := range context {
			if s, ok := ctx.(string); ok {
				contents.Context = append(contents.Context, s)
			}
		}
	}
	contents.ID, _ = c["id"].(string)
	contents.Name, _ = c["name"].(string)
	contents.Description, _ = c["description"].(string)
	contents.Revoked, _ = c["revoked"].(bool)

	switch types := c["type"].(type) {
	case []interface{}:
		for _, t := range types {
			if s, ok := t.(string); ok {
				contents.Types = append(contents.Types, s)
			}
		}
	case string:
		contents.Types = []string{types}
	}

	if raw, ok := c["issuer"]; ok {
		issuer, err := ParseEntity(raw)
		if err != nil {
			return contents, fmt.Errorf("parse issuer: %w", err)
		}
		contents.Issuer = issuer
	}

	var err error
	if contents.IssuanceDate, err = parseDate(c, "issuanceDate"); err != nil {
		return contents, err
	}
	if contents.ExpirationDate, err = parseDate(c, "expirationDate"); err != nil {
		return contents, err
	}

	if subject, ok := c["credentialSubject"].(map[string]interface{}); ok {
		contents.Subject.ID, _ = subject["id"].(string)
		contents.Subject.Type, _ = subject["type"].(string)
		contents.Subject.Name, _ = subject["name"].(string)
		if raw, ok := subject["achievement"]; ok {
			achievement, err := ParseEntity(raw)
			if err != nil {
				return contents, fmt.Errorf("parse achievement: %w", err)
			}
			contents.Subject.Achievement = achievement
		}
	}

	if schema, ok := c["credentialSchema"].(map[string]interface{}); ok {
		cs := &CredentialSchema{}
		cs.ID, _ = schema["id"].(string)
		cs.Type, _ = schema["type"].(string)
		contents.Schema = cs
	}

	if evidence, ok := c["evidence"].([]interface{}); ok {
		for _, raw := range evidence {
			entry, ok := raw.(map[string]interface{})
			if !ok {
				continue
			}
			var ev Evidence
			ev.ID, _ = entry["id"].(string)
			ev.Type, _ = entry["type"].(string)
			ev.Name, _ = entry["name"].(string)
			ev.Narrative, _ = entry["narrative"].(string)
			ev.Genre, _ = entry["genre"].(string)
			contents.Evidence = append(contents.Evidence, ev)
		}
	}

	return contents, nil
}

func parseDate(c Credential, field string) (time.Time, error) {
	raw, ok := c[field].(string)
	if !ok || raw == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse %s: %w", field, err)
	}
	return t, nil
}

package vc

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// TypeEndorsementCredential is the type tag marking an endorsement.
const TypeEndorsementCredential = "EndorsementCredential"

// EndorsementSubject names the element being endorsed. The target may be an
// Achievement, a Profile or another credential.
type EndorsementSubject struct {
	ID                 string `json:"id"`
	Type               string `json:"type"`
	EndorsementComment string `json:"endorsementComment,omitempty"`
}

// NewEndorsementCredential builds an unsigned endorsement of the given
// subject. Endorsements are ordinary credentials with the
// EndorsementCredential type tag, so signing, verification and JSON-LD
// emission work unchanged. When id is empty a urn:uuid identifier is
// generated.
func NewEndorsementCredential(id, issuer string, subject EndorsementSubject) (*Credential, error) {
	if issuer == "" {
		return nil, fmt.Errorf("issuer is required")
	}
	if subject.ID == "" {
		return nil, fmt.Errorf("endorsement subject id is required")
	}
	if subject.Type == "" {
		return nil, fmt.Errorf("endorsement subject type is required")
	}
	if id == "" {
		id = "urn:uuid:" + uuid.NewString()
	}
	cs := map[string]interface{}{
		"id":   subject.ID,
		"type": subject.Type,
	}
	if subject.EndorsementComment != "" {
		cs["endorsementComment"] = subject.EndorsementComment
	}
	c := Credential{
		"id":                id,
		"type":              []interface{}{TypeVerifiableCredential, TypeEndorsementCredential},
		"issuer":            issuer,
		"issuanceDate":      time.Now().UTC().Format(time.RFC3339),
		"credentialSubject": cs,
	}
	return &c, nil
}

// EndorsementSubject returns the typed subject of an endorsement credential.
func (c Credential) EndorsementSubject() (EndorsementSubject, error) {
	raw, ok := c["credentialSubject"].(map[string]interface{})
	if !ok {
		return EndorsementSubject{}, fmt.Errorf("credentialSubject is missing")
	}
	subject := EndorsementSubject{}
	subject.ID, _ = raw["id"].(string)
	subject.Type, _ = raw["type"].(string)
	subject.EndorsementComment, _ = raw["endorsementComment"].(string)
	return subject, nil
}

// ValidateEndorsement checks the structural shape of an endorsement
// credential, collecting all errors.
func ValidateEndorsement(c Credential) *ValidationResult {
	result := NewValidationResult()

	contents, err := c.Contents()
	if err != nil {
		result.AddError("malformed credential: %v", err)
		return result
	}

	if contents.ID == "" {
		result.AddError("credential id is required")
	}
	if !containsType(contents.Types, TypeVerifiableCredential) {
		result.AddError("type must include %q", TypeVerifiableCredential)
	}
	if !containsType(contents.Types, TypeEndorsementCredential) {
		result.AddError("type must include %q", TypeEndorsementCredential)
	}
	if contents.Issuer.Kind() == 0 || contents.Issuer.ID() == "" {
		result.AddError("issuer is required")
	}
	if contents.IssuanceDate.IsZero() {
		result.AddError("issuanceDate is required")
	}

	subject, err := c.EndorsementSubject()
	if err != nil {
		result.AddError("%v", err)
		return result
	}
	if subject.ID == "" {
		result.AddError("credentialSubject.id is required")
	}
	if subject.Type == "" {
		result.AddError("credentialSubject.type is required")
	}

	if context, ok := c["@context"]; ok {
		result.Merge(validateContext(context))
	} else {
		result.AddWarning("JSON-LD @context is missing")
	}

	return result
}

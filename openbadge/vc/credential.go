// Package vc implements the OpenBadge v3 credential data model: parsing,
// construction, structural validation, temporal/schema validity checks,
// JSON-LD emission and the signing/verification entry points built on the
// proof subsystem.
package vc

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/openbadgekit/go-openbadge-sdk/openbadge/keys"
	"github.com/openbadgekit/go-openbadge-sdk/openbadge/proof"
)

// Credential type tags required by OpenBadge v3.
const (
	TypeVerifiableCredential = "VerifiableCredential"
	TypeOpenBadgeCredential  = "OpenBadgeCredential"
	TypeAchievementSubject   = "AchievementSubject"
)

// Credential represents an OpenBadge credential as a JSON object. A
// credential carries at most one proof under its "proof" key; it is either
// unsigned (no proof) or signed (proof computed over the remaining
// content). Signing never mutates a credential in place.
type Credential map[string]interface{}

// ParseCredential parses JSON into a Credential.
func ParseCredential(data []byte) (*Credential, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("credential JSON is empty")
	}
	var c Credential
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("unmarshal credential: %w", err)
	}
	return &c, nil
}

// NewCredential builds an unsigned credential with the required OpenBadge
// fields. When id is empty a urn:uuid identifier is generated. The
// achievement may be a reference URI string, an inline map, or a typed
// Achievement.
func NewCredential(id, issuer, subjectID string, achievement interface{}) (*Credential, error) {
	if issuer == "" {
		return nil, fmt.Errorf("issuer is required")
	}
	if subjectID == "" {
		return nil, fmt.Errorf("credential subject id is required")
	}
	if id == "" {
		id = "urn:uuid:" + uuid.NewString()
	}
	c := Credential{
		"id":           id,
		"type":         []interface{}{TypeVerifiableCredential, TypeOpenBadgeCredential},
		"issuer":       issuer,
		"issuanceDate": time.Now().UTC().Format(time.RFC3339),
		"credentialSubject": map[string]interface{}{
			"id":          subjectID,
			"type":        TypeAchievementSubject,
			"achievement": achievement,
		},
	}
	return &c, nil
}

// ToJSON serializes the credential.
func (c Credential) ToJSON() ([]byte, error) {
	data, err := json.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("marshal credential: %w", err)
	}
	return data, nil
}

// Clone returns a total deep copy of the credential. Mutating the clone
// never affects the original.
func (c Credential) Clone() (Credential, error) {
	data, err := json.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("marshal credential: %w", err)
	}
	var out Credential
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("unmarshal credential copy: %w", err)
	}
	return out, nil
}

// HasProof reports whether the credential carries a proof.
func (c Credential) HasProof() bool {
	raw, ok := c["proof"]
	return ok && raw != nil
}

// Proof returns the credential's proof, or ErrMissingProof when unsigned.
func (c Credential) Proof() (proof.Proof, error) {
	raw, ok := c["proof"]
	if !ok || raw == nil {
		return proof.Proof{}, proof.ErrMissingProof
	}
	return proof.ParseProof(raw)
}

// Content returns the credential's content view: every field except the
// proof. This is the exact input to canonicalization on both the signing
// and the verification path.
func (c Credential) Content() map[string]interface{} {
	content := make(map[string]interface{}, len(c))
	for k, v := range c {
		if k != "proof" {
			content[k] = v
		}
	}
	return content
}

// Unsigned returns a copy of the credential with the proof stripped, the
// explicit first step of any re-signing flow.
func (c Credential) Unsigned() Credential {
	return Credential(c.Content())
}

// Sign computes a proof over the credential's content and returns a new
// signed credential value. The receiver is never mutated; a credential
// that already carries a proof fails with proof.ErrDuplicateProof.
func (c Credential) Sign(priv keys.PrivateKey, verificationMethod, proofType string,
	opts ...proof.ProofOpt) (Credential, error) {
	signed, err := proof.SignDocument(c, priv, verificationMethod, proofType, opts...)
	if err != nil {
		return nil, err
	}
	return Credential(signed), nil
}

// Verify checks the credential's proof against the public key. An unsigned
// credential fails with proof.ErrMissingProof; a checked-but-failed
// verification is reported as false with a nil error.
func (c Credential) Verify(pub keys.PublicKey, opts ...proof.ProcessorOpt) (bool, error) {
	return proof.VerifyDocument(c, pub, opts...)
}

// Package proof implements Linked Data Proofs for OpenBadge credentials:
// deterministic canonicalization of credential content, detached proof
// creation and proof verification over a registry of signature suites.
package proof

import (
	"errors"
	"fmt"
)

// DefaultProofPurpose is attached to proofs unless overridden.
const DefaultProofPurpose = "assertionMethod"

var (
	// ErrUnsupportedProofType is returned when a proof type outside the
	// registered suite set is requested at signing time.
	ErrUnsupportedProofType = errors.New("unsupported proof type")

	// ErrDuplicateProof is returned when signing a credential that already
	// carries a proof. Re-signing must be explicit: strip the old proof
	// first.
	ErrDuplicateProof = errors.New("credential already carries a proof")

	// ErrMissingProof is returned when verifying a credential that carries
	// no proof. This is a usage error, not a negative verification.
	ErrMissingProof = errors.New("credential has no proof")
)

// Proof is a detached Linked Data Proof attached to a single credential.
type Proof struct {
	Type               string `json:"type"`
	Created            string `json:"created"`
	VerificationMethod string `json:"verificationMethod"`
	ProofPurpose       string `json:"proofPurpose"`
	ProofValue         string `json:"proofValue,omitempty"`
}

// ParseProof converts a raw proof value, as found under a credential's
// "proof" key, into a Proof.
func ParseProof(raw interface{}) (Proof, error) {
	switch p := raw.(type) {
	case Proof:
		return p, nil
	case *Proof:
		if p == nil {
			return Proof{}, fmt.Errorf("proof is nil")
		}
		return *p, nil
	case map[string]interface{}:
		var result Proof
		if t, ok := p["type"].(string); ok {
			result.Type = t
		}
		if created, ok := p["created"].(string); ok {
			result.Created = created
		}
		if vm, ok := p["verificationMethod"].(string); ok {
			result.VerificationMethod = vm
		}
		if purpose, ok := p["proofPurpose"].(string); ok {
			result.ProofPurpose = purpose
		}
		if pv, ok := p["proofValue"].(string); ok {
			result.ProofValue = pv
		}
		return result, nil
	default:
		return Proof{}, fmt.Errorf("invalid proof format: %T", raw)
	}
}

package proof

import (
	"fmt"

	"github.com/multiformats/go-multibase"

	"github.com/openbadgekit/go-openbadge-sdk/openbadge/keys"
)

// Verifier checks proofs against a registry of signature suites.
type Verifier struct {
	suites map[string]Suite
}

// NewVerifier returns a Verifier with the built-in suites registered, plus
// any extra suites given.
func NewVerifier(extra ...Suite) *Verifier {
	v := &Verifier{suites: defaultSuites()}
	for _, s := range extra {
		v.RegisterSuite(s)
	}
	return v
}

// RegisterSuite adds or replaces a suite, keyed by its proof type.
func (v *Verifier) RegisterSuite(s Suite) {
	v.suites[s.ProofType()] = s
}

// VerifyProof re-canonicalizes content (which must not contain the proof
// field) and checks the proof's signature against the public key. A
// negative outcome is reported as false, never as an error: an unknown
// proof type, a proof type whose algorithm does not match the key, a
// malformed proofValue encoding and a failed signature check all mean the
// proof could not be confirmed. Errors are reserved for structural
// failures of the canonicalizer.
func (v *Verifier) VerifyProof(content map[string]interface{}, p Proof,
	pub keys.PublicKey, opts ...ProcessorOpt) (bool, error) {
	suite, ok := v.suites[p.Type]
	if !ok {
		return false, nil
	}
	if suite.Algorithm() != pub.Algorithm() {
		return false, nil
	}

	canonical, err := Canonicalize(content, opts...)
	if err != nil {
		return false, fmt.Errorf("canonicalize content: %w", err)
	}

	// A proofValue that does not decode is treated as tampering or
	// corruption, the same as a failed signature check.
	_, signature, err := multibase.Decode(p.ProofValue)
	if err != nil {
		return false, nil
	}

	if err := suite.Verify(pub, canonical, signature); err != nil {
		return false, nil
	}
	return true, nil
}

// VerifyDocument extracts the document's proof, strips it from the content
// and delegates to VerifyProof. A document without a proof fails with
// ErrMissingProof: verification cannot even be attempted, which callers
// must be able to distinguish from a negative check.
func (v *Verifier) VerifyDocument(doc map[string]interface{}, pub keys.PublicKey,
	opts ...ProcessorOpt) (bool, error) {
	raw, ok := doc["proof"]
	if !ok || raw == nil {
		return false, ErrMissingProof
	}
	p, err := ParseProof(raw)
	if err != nil {
		return false, fmt.Errorf("parse proof: %w", err)
	}

	content := make(map[string]interface{}, len(doc))
	for k, val := range doc {
		if k != "proof" {
			content[k] = val
		}
	}
	return v.VerifyProof(content, p, pub, opts...)
}

var defaultVerifier = NewVerifier()

// VerifyProof verifies a detached proof using the default suite registry.
func VerifyProof(content map[string]interface{}, p Proof, pub keys.PublicKey,
	opts ...ProcessorOpt) (bool, error) {
	return defaultVerifier.VerifyProof(content, p, pub, opts...)
}

// VerifyDocument verifies a signed document using the default suite registry.
func VerifyDocument(doc map[string]interface{}, pub keys.PublicKey,
	opts ...ProcessorOpt) (bool, error) {
	return defaultVerifier.VerifyDocument(doc, pub, opts...)
}

package proof

import (
	"fmt"
	"time"

	"github.com/multiformats/go-multibase"

	"github.com/openbadgekit/go-openbadge-sdk/openbadge/keys"
)

// ProofOpt configures proof creation.
type ProofOpt func(*proofOptions)

type proofOptions struct {
	purpose   string
	processor []ProcessorOpt
}

// WithProofPurpose overrides the default "assertionMethod" purpose.
func WithProofPurpose(purpose string) ProofOpt {
	return func(o *proofOptions) {
		o.purpose = purpose
	}
}

// WithCanonicalization forwards options to the canonicalizer.
func WithCanonicalization(opts ...ProcessorOpt) ProofOpt {
	return func(o *proofOptions) {
		o.processor = append(o.processor, opts...)
	}
}

// Creator creates proofs over a registry of signature suites.
type Creator struct {
	suites map[string]Suite
}

// NewCreator returns a Creator with the built-in suites registered, plus
// any extra suites given.
func NewCreator(extra ...Suite) *Creator {
	c := &Creator{suites: defaultSuites()}
	for _, s := range extra {
		c.RegisterSuite(s)
	}
	return c
}

// RegisterSuite adds or replaces a suite, keyed by its proof type.
func (c *Creator) RegisterSuite(s Suite) {
	c.suites[s.ProofType()] = s
}

// CreateProof canonicalizes content (the proof field is excluded by
// construction), signs the canonical bytes with the suite named by
// proofType and returns the detached Proof. The signature is encoded as a
// multibase base64url string, whose leading discriminator character makes
// the encoding self-describing.
func (c *Creator) CreateProof(content map[string]interface{}, priv keys.PrivateKey,
	verificationMethod, proofType string, createdAt time.Time, opts ...ProofOpt) (*Proof, error) {
	options := proofOptions{purpose: DefaultProofPurpose}
	for _, opt := range opts {
		opt(&options)
	}

	suite, ok := c.suites[proofType]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedProofType, proofType)
	}

	canonical, err := Canonicalize(content, options.processor...)
	if err != nil {
		return nil, fmt.Errorf("canonicalize content: %w", err)
	}

	signature, err := suite.Sign(priv, canonical)
	if err != nil {
		return nil, fmt.Errorf("sign canonical content: %w", err)
	}

	encoded, err := multibase.Encode(multibase.Base64url, signature)
	if err != nil {
		return nil, fmt.Errorf("encode proof value: %w", err)
	}

	return &Proof{
		Type:               proofType,
		Created:            createdAt.UTC().Format(time.RFC3339),
		VerificationMethod: verificationMethod,
		ProofPurpose:       options.purpose,
		ProofValue:         encoded,
	}, nil
}

// SignDocument computes a proof over the document's content and returns a
// new document value with the proof attached. The input document is never
// mutated; signing an already-signed document fails with ErrDuplicateProof.
func (c *Creator) SignDocument(doc map[string]interface{}, priv keys.PrivateKey,
	verificationMethod, proofType string, opts ...ProofOpt) (map[string]interface{}, error) {
	if existing, ok := doc["proof"]; ok && existing != nil {
		return nil, ErrDuplicateProof
	}

	p, err := c.CreateProof(doc, priv, verificationMethod, proofType, time.Now(), opts...)
	if err != nil {
		return nil, err
	}

	signed := make(map[string]interface{}, len(doc)+1)
	for k, v := range doc {
		signed[k] = v
	}
	signed["proof"] = p
	return signed, nil
}

var defaultCreator = NewCreator()

// CreateProof creates a proof using the default suite registry.
func CreateProof(content map[string]interface{}, priv keys.PrivateKey,
	verificationMethod, proofType string, createdAt time.Time, opts ...ProofOpt) (*Proof, error) {
	return defaultCreator.CreateProof(content, priv, verificationMethod, proofType, createdAt, opts...)
}

// SignDocument signs a document using the default suite registry.
func SignDocument(doc map[string]interface{}, priv keys.PrivateKey,
	verificationMethod, proofType string, opts ...ProofOpt) (map[string]interface{}, error) {
	return defaultCreator.SignDocument(doc, priv, verificationMethod, proofType, opts...)
}

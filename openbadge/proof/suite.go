package proof

import (
	"crypto"
	"crypto/ed25519"
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha256"
	"errors"
	"fmt"

	"github.com/openbadgekit/go-openbadge-sdk/openbadge/keys"
)

// Supported signature suite identifiers.
const (
	SignatureTypeEd25519 = "Ed25519Signature2020"
	SignatureTypeRSA     = "RsaSignature2018"
)

// Suite binds a Linked Data proof type to its signature primitives.
type Suite interface {
	// ProofType returns the suite identifier carried in Proof.Type.
	ProofType() string
	// Algorithm returns the key algorithm the suite operates on.
	Algorithm() keys.Algorithm
	// Sign signs canonical content bytes.
	Sign(priv keys.PrivateKey, data []byte) ([]byte, error)
	// Verify checks a raw signature over canonical content bytes.
	Verify(pub keys.PublicKey, data, signature []byte) error
}

func defaultSuites() map[string]Suite {
	return map[string]Suite{
		SignatureTypeEd25519: Ed25519Signature2020{},
		SignatureTypeRSA:     RsaSignature2018{},
	}
}

// Ed25519Signature2020 signs canonical content with deterministic Ed25519.
type Ed25519Signature2020 struct{}

func (Ed25519Signature2020) ProofType() string { return SignatureTypeEd25519 }

func (Ed25519Signature2020) Algorithm() keys.Algorithm { return keys.AlgorithmEd25519 }

func (s Ed25519Signature2020) Sign(priv keys.PrivateKey, data []byte) ([]byte, error) {
	key, ok := priv.Signer().(ed25519.PrivateKey)
	if !ok {
		return nil, fmt.Errorf("%s requires an %s private key, got %s",
			s.ProofType(), keys.AlgorithmEd25519, priv.Algorithm())
	}
	return ed25519.Sign(key, data), nil
}

func (s Ed25519Signature2020) Verify(pub keys.PublicKey, data, signature []byte) error {
	key, ok := pub.Key().(ed25519.PublicKey)
	if !ok {
		return fmt.Errorf("%s requires an %s public key, got %s",
			s.ProofType(), keys.AlgorithmEd25519, pub.Algorithm())
	}
	if len(signature) != ed25519.SignatureSize {
		return fmt.Errorf("ed25519 signature must be %d bytes, got %d", ed25519.SignatureSize, len(signature))
	}
	if !ed25519.Verify(key, data, signature) {
		return errors.New("ed25519 signature mismatch")
	}
	return nil
}

// RsaSignature2018 signs the SHA-256 digest of canonical content with
// RSA-PSS, salt length equal to the hash size. The padding scheme is fixed:
// it is not recoverable from the wire form, so signer and verifier must
// agree on it here.
type RsaSignature2018 struct{}

func (RsaSignature2018) ProofType() string { return SignatureTypeRSA }

func (RsaSignature2018) Algorithm() keys.Algorithm { return keys.AlgorithmRSA }

var rsaPSSOptions = rsa.PSSOptions{SaltLength: rsa.PSSSaltLengthEqualsHash, Hash: crypto.SHA256}

func (s RsaSignature2018) Sign(priv keys.PrivateKey, data []byte) ([]byte, error) {
	key, ok := priv.Signer().(*rsa.PrivateKey)
	if !ok {
		return nil, fmt.Errorf("%s requires an %s private key, got %s",
			s.ProofType(), keys.AlgorithmRSA, priv.Algorithm())
	}
	digest := sha256.Sum256(data)
	signature, err := rsa.SignPSS(rand.Reader, key, crypto.SHA256, digest[:], &rsaPSSOptions)
	if err != nil {
		return nil, fmt.Errorf("rsa-pss sign: %w", err)
	}
	return signature, nil
}

func (s RsaSignature2018) Verify(pub keys.PublicKey, data, signature []byte) error {
	key, ok := pub.Key().(*rsa.PublicKey)
	if !ok {
		return fmt.Errorf("%s requires an %s public key, got %s",
			s.ProofType(), keys.AlgorithmRSA, pub.Algorithm())
	}
	digest := sha256.Sum256(data)
	if err := rsa.VerifyPSS(key, crypto.SHA256, digest[:], signature, &rsaPSSOptions); err != nil {
		return fmt.Errorf("rsa-pss verify: %w", err)
	}
	return nil
}

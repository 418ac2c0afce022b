// Package keys provides the asymmetric key material used to sign and verify
// OpenBadge credentials: generation, PEM serialization (PKCS8 for private
// keys, SPKI for public keys) and file storage.
package keys

import (
	"bytes"
	"crypto"
	"crypto/ed25519"
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"errors"
	"fmt"
)

// Algorithm identifies a supported asymmetric key algorithm.
type Algorithm string

const (
	AlgorithmEd25519 Algorithm = "Ed25519"
	AlgorithmRSA     Algorithm = "RSA"
)

// MinRSAKeySize is the smallest RSA modulus, in bits, accepted at
// generation time.
const MinRSAKeySize = 2048

var (
	// ErrUnsupportedAlgorithm is returned when a key algorithm outside
	// {Ed25519, RSA} is requested or encountered.
	ErrUnsupportedAlgorithm = errors.New("unsupported key algorithm")

	// ErrInvalidKeyFormat is returned when key material cannot be decoded.
	ErrInvalidKeyFormat = errors.New("invalid key format")
)

// PublicKey holds public key material for a single algorithm. The raw bytes
// are the PKIX (SPKI) DER encoding; two public keys are equal when their
// raw bytes are equal.
type PublicKey struct {
	algorithm Algorithm
	der       []byte
	key       crypto.PublicKey
}

// Algorithm returns the key's algorithm.
func (k PublicKey) Algorithm() Algorithm { return k.algorithm }

// Bytes returns a copy of the raw SPKI DER encoding.
func (k PublicKey) Bytes() []byte { return bytes.Clone(k.der) }

// Key returns the underlying crypto public key
// (ed25519.PublicKey or *rsa.PublicKey).
func (k PublicKey) Key() crypto.PublicKey { return k.key }

// Equal reports whether both keys carry the same algorithm and raw bytes.
func (k PublicKey) Equal(other PublicKey) bool {
	return k.algorithm == other.algorithm && bytes.Equal(k.der, other.der)
}

// PrivateKey holds private key material for a single algorithm. The raw
// bytes are the PKCS8 DER encoding.
type PrivateKey struct {
	algorithm Algorithm
	der       []byte
	signer    crypto.Signer
}

// Algorithm returns the key's algorithm.
func (k PrivateKey) Algorithm() Algorithm { return k.algorithm }

// Bytes returns a copy of the raw PKCS8 DER encoding.
func (k PrivateKey) Bytes() []byte { return bytes.Clone(k.der) }

// Signer returns the underlying crypto signer
// (ed25519.PrivateKey or *rsa.PrivateKey).
func (k PrivateKey) Signer() crypto.Signer { return k.signer }

// Equal reports whether both keys carry the same algorithm and raw bytes.
func (k PrivateKey) Equal(other PrivateKey) bool {
	return k.algorithm == other.algorithm && bytes.Equal(k.der, other.der)
}

// Public derives the public key matching this private key.
func (k PrivateKey) Public() (PublicKey, error) {
	return newPublicKey(k.signer.Public())
}

// KeyPair owns a matching public and private key of the same algorithm.
// A KeyPair is immutable once created.
type KeyPair struct {
	private PrivateKey
	public  PublicKey
}

// Algorithm returns the pair's algorithm.
func (kp KeyPair) Algorithm() Algorithm { return kp.private.algorithm }

// Private returns the private key.
func (kp KeyPair) Private() PrivateKey { return kp.private }

// Public returns the public key.
func (kp KeyPair) Public() PublicKey { return kp.public }

// GenerateOption configures key generation.
type GenerateOption func(*generateOptions)

type generateOptions struct {
	rsaBits int
}

// WithRSAKeySize sets the RSA modulus size in bits. Ignored for Ed25519.
func WithRSAKeySize(bits int) GenerateOption {
	return func(o *generateOptions) {
		o.rsaBits = bits
	}
}

// Generate creates a new key pair for the given algorithm.
func Generate(algorithm Algorithm, opts ...GenerateOption) (KeyPair, error) {
	options := generateOptions{rsaBits: MinRSAKeySize}
	for _, opt := range opts {
		opt(&options)
	}

	switch algorithm {
	case AlgorithmEd25519:
		_, priv, err := ed25519.GenerateKey(rand.Reader)
		if err != nil {
			return KeyPair{}, fmt.Errorf("generate ed25519 key: %w", err)
		}
		return newKeyPair(priv)
	case AlgorithmRSA:
		if options.rsaBits < MinRSAKeySize {
			return KeyPair{}, fmt.Errorf("rsa key size %d below minimum %d", options.rsaBits, MinRSAKeySize)
		}
		priv, err := rsa.GenerateKey(rand.Reader, options.rsaBits)
		if err != nil {
			return KeyPair{}, fmt.Errorf("generate rsa key: %w", err)
		}
		return newKeyPair(priv)
	default:
		return KeyPair{}, fmt.Errorf("%w: %q", ErrUnsupportedAlgorithm, algorithm)
	}
}

// NewKeyPair assembles a pair from already-loaded keys, rejecting keys of
// mismatched algorithms.
func NewKeyPair(private PrivateKey, public PublicKey) (KeyPair, error) {
	if private.algorithm != public.algorithm {
		return KeyPair{}, fmt.Errorf("%w: private key is %s, public key is %s",
			ErrInvalidKeyFormat, private.algorithm, public.algorithm)
	}
	return KeyPair{private: private, public: public}, nil
}

func newKeyPair(signer crypto.Signer) (KeyPair, error) {
	private, err := newPrivateKey(signer)
	if err != nil {
		return KeyPair{}, err
	}
	public, err := newPublicKey(signer.Public())
	if err != nil {
		return KeyPair{}, err
	}
	return KeyPair{private: private, public: public}, nil
}

func newPrivateKey(key crypto.PrivateKey) (PrivateKey, error) {
	var algorithm Algorithm
	var signer crypto.Signer
	switch k := key.(type) {
	case ed25519.PrivateKey:
		algorithm, signer = AlgorithmEd25519, k
	case *rsa.PrivateKey:
		algorithm, signer = AlgorithmRSA, k
	default:
		return PrivateKey{}, fmt.Errorf("%w: %T", ErrUnsupportedAlgorithm, key)
	}
	der, err := x509.MarshalPKCS8PrivateKey(key)
	if err != nil {
		return PrivateKey{}, fmt.Errorf("marshal private key: %w", err)
	}
	return PrivateKey{algorithm: algorithm, der: der, signer: signer}, nil
}

func newPublicKey(key crypto.PublicKey) (PublicKey, error) {
	var algorithm Algorithm
	switch key.(type) {
	case ed25519.PublicKey:
		algorithm = AlgorithmEd25519
	case *rsa.PublicKey:
		algorithm = AlgorithmRSA
	default:
		return PublicKey{}, fmt.Errorf("%w: %T", ErrUnsupportedAlgorithm, key)
	}
	der, err := x509.MarshalPKIXPublicKey(key)
	if err != nil {
		return PublicKey{}, fmt.Errorf("marshal public key: %w", err)
	}
	return PublicKey{algorithm: algorithm, der: der, key: key}, nil
}

package keys

import (
	"crypto"
	"crypto/ed25519"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"fmt"
)

const (
	pemTypePublicKey  = "PUBLIC KEY"
	pemTypePrivateKey = "PRIVATE KEY"
)

// PEM encodes the public key as an SPKI PEM block.
func (k PublicKey) PEM() []byte {
	return pem.EncodeToMemory(&pem.Block{Type: pemTypePublicKey, Bytes: k.der})
}

// PEM encodes the private key as an unencrypted PKCS8 PEM block.
func (k PrivateKey) PEM() []byte {
	return pem.EncodeToMemory(&pem.Block{Type: pemTypePrivateKey, Bytes: k.der})
}

// ParsePublicKeyPEM decodes an SPKI PEM block into a PublicKey. The DER
// bytes of the block are retained verbatim so that PEM round trips are
// byte-identical.
func ParsePublicKeyPEM(data []byte) (PublicKey, error) {
	block, _ := pem.Decode(data)
	if block == nil || block.Type != pemTypePublicKey {
		return PublicKey{}, fmt.Errorf("%w: expected a %s PEM block", ErrInvalidKeyFormat, pemTypePublicKey)
	}
	key, err := x509.ParsePKIXPublicKey(block.Bytes)
	if err != nil {
		return PublicKey{}, fmt.Errorf("%w: %v", ErrInvalidKeyFormat, err)
	}
	algorithm, err := publicKeyAlgorithm(key)
	if err != nil {
		return PublicKey{}, err
	}
	return PublicKey{algorithm: algorithm, der: block.Bytes, key: key}, nil
}

// ParsePrivateKeyPEM decodes a PKCS8 PEM block into a PrivateKey. The DER
// bytes of the block are retained verbatim so that PEM round trips are
// byte-identical.
func ParsePrivateKeyPEM(data []byte) (PrivateKey, error) {
	block, _ := pem.Decode(data)
	if block == nil || block.Type != pemTypePrivateKey {
		return PrivateKey{}, fmt.Errorf("%w: expected a %s PEM block", ErrInvalidKeyFormat, pemTypePrivateKey)
	}
	key, err := x509.ParsePKCS8PrivateKey(block.Bytes)
	if err != nil {
		return PrivateKey{}, fmt.Errorf("%w: %v", ErrInvalidKeyFormat, err)
	}
	switch k := key.(type) {
	case ed25519.PrivateKey:
		return PrivateKey{algorithm: AlgorithmEd25519, der: block.Bytes, signer: k}, nil
	case *rsa.PrivateKey:
		return PrivateKey{algorithm: AlgorithmRSA, der: block.Bytes, signer: k}, nil
	default:
		return PrivateKey{}, fmt.Errorf("%w: %T", ErrUnsupportedAlgorithm, key)
	}
}

func publicKeyAlgorithm(key crypto.PublicKey) (Algorithm, error) {
	switch key.(type) {
	case ed25519.PublicKey:
		return AlgorithmEd25519, nil
	case *rsa.PublicKey:
		return AlgorithmRSA, nil
	default:
		return "", fmt.Errorf("%w: %T", ErrUnsupportedAlgorithm, key)
	}
}

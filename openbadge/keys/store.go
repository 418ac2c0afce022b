package keys

import (
	"fmt"
	"os"
	"path/filepath"
)

// Save writes the pair's PEM encodings to the given paths. The private key
// file is created with mode 0600. Writes go through a temp file in the
// target directory and are renamed into place, so a failed write never
// leaves a partial key file behind.
func (kp KeyPair) Save(privatePath, publicPath string) error {
	if err := writeKeyFile(privatePath, kp.private.PEM(), 0o600); err != nil {
		return fmt.Errorf("save private key: %w", err)
	}
	if err := writeKeyFile(publicPath, kp.public.PEM(), 0o644); err != nil {
		return fmt.Errorf("save public key: %w", err)
	}
	return nil
}

// Load reads a key pair from PEM files, rejecting pairs whose keys carry
// different algorithms.
func Load(privatePath, publicPath string) (KeyPair, error) {
	private, err := LoadPrivateKey(privatePath)
	if err != nil {
		return KeyPair{}, err
	}
	public, err := LoadPublicKey(publicPath)
	if err != nil {
		return KeyPair{}, err
	}
	return NewKeyPair(private, public)
}

// LoadPrivateKey reads a PKCS8 PEM private key from a file.
func LoadPrivateKey(path string) (PrivateKey, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return PrivateKey{}, fmt.Errorf("read private key file: %w", err)
	}
	return ParsePrivateKeyPEM(data)
}

// LoadPublicKey reads an SPKI PEM public key from a file.
func LoadPublicKey(path string) (PublicKey, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return PublicKey{}, fmt.Errorf("read public key file: %w", err)
	}
	return ParsePublicKeyPEM(data)
}

func writeKeyFile(path string, data []byte, mode os.FileMode) (err error) {
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".*")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()
	if err = tmp.Chmod(mode); err != nil {
		return err
	}
	if _, err = tmp.Write(data); err != nil {
		return err
	}
	if err = tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}

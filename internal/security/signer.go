// Package security provides optional cryptographic signing of rendered
// reports so machine consumers can verify they were not altered in transit.
package security

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"fmt"

	"github.com/sirupsen/logrus"
)

// Signer signs report payloads with an ECDSA P-256 key generated at startup.
type Signer struct {
	privateKey       *ecdsa.PrivateKey
	publicKeyEncoded string
}

// NewSigner generates a fresh key pair.
func NewSigner() (*Signer, error) {
	privateKey, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	if err != nil {
		return nil, fmt.Errorf("failed to generate signing key: %w", err)
	}

	publicKeyBytes := elliptic.Marshal(elliptic.P256(), privateKey.PublicKey.X, privateKey.PublicKey.Y)
	s := &Signer{
		privateKey:       privateKey,
		publicKeyEncoded: base64.StdEncoding.EncodeToString(publicKeyBytes),
	}

	logrus.Infof("Report signer initialized with public key: %s...", s.publicKeyEncoded[:16])
	return s, nil
}

// Sign returns a base64 signature over the SHA-256 hash of payload.
func (s *Signer) Sign(payload []byte) (string, error) {
	hash := sha256.Sum256(payload)
	signature, err := ecdsa.SignASN1(rand.Reader, s.privateKey, hash[:])
	if err != nil {
		return "", fmt.Errorf("failed to sign payload: %w", err)
	}
	return base64.StdEncoding.EncodeToString(signature), nil
}

// Verify checks a base64 signature produced by Sign against payload.
func (s *Signer) Verify(payload []byte, signature string) bool {
	sig, err := base64.StdEncoding.DecodeString(signature)
	if err != nil {
		return false
	}
	hash := sha256.Sum256(payload)
	return ecdsa.VerifyASN1(&s.privateKey.PublicKey, hash[:], sig)
}

// PublicKey returns the base64-encoded public key advertised to consumers.
func (s *Signer) PublicKey() string {
	return s.publicKeyEncoded
}

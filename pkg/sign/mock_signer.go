// Package sign provides mock implementations for testing signature operations.
package sign

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	ethcrypto "github.com/ethereum/go-ethereum/crypto"
)

var _ Signer = (*MockSigner)(nil)
var _ PublicKey = (*MockPublicKey)(nil)

// MockSigner is a mock implementation of the Signer interface for testing
// purposes. It produces predictable signature bytes derived from the digest
// and the signer's ID, and also stands in for an external threshold
// provider when exercising code that only depends on the Signer contract.
type MockSigner struct {
	publicKey MockPublicKey
}

// NewMockSigner creates a new MockSigner with the given ID.
func NewMockSigner(id string) *MockSigner {
	return &MockSigner{publicKey: MockPublicKey{id: id}}
}

// SignDigest produces a deterministic pseudo-signature over the digest.
// The digest length contract is enforced the same way the real signer does.
func (m *MockSigner) SignDigest(digest []byte) (*SignatureResult, error) {
	if len(digest) != DigestLength {
		return nil, fmt.Errorf("%w: want %d bytes, got %d", ErrInvalidDigestLength, DigestLength, len(digest))
	}

	r := ethcrypto.Keccak256(digest, []byte(m.publicKey.id), []byte("r"))
	s := ethcrypto.Keccak256(digest, []byte(m.publicKey.id), []byte("s"))
	rs := make([]byte, 0, SignatureLength)
	rs = append(rs, r...)
	rs = append(rs, s...)

	return &SignatureResult{
		Signature: Signature(rs),
		R:         rs[:DigestLength],
		S:         rs[DigestLength:],
		V:         27,
	}, nil
}

// PublicKey returns the mock public key associated with this signer.
func (m *MockSigner) PublicKey() PublicKey {
	return m.publicKey
}

// MockPublicKey is a mock implementation of the PublicKey interface for
// testing. It derives its point encoding and address from an ID string.
type MockPublicKey struct {
	id string
}

// Bytes returns a pseudo point encoding derived from the ID.
func (m MockPublicKey) Bytes() []byte {
	encoded := make([]byte, 0, 65)
	encoded = append(encoded, 0x04)
	encoded = append(encoded, ethcrypto.Keccak256([]byte(m.id), []byte("x"))...)
	encoded = append(encoded, ethcrypto.Keccak256([]byte(m.id), []byte("y"))...)
	return encoded
}

// Address returns a pseudo address derived from the ID.
func (m MockPublicKey) Address() common.Address {
	return common.BytesToAddress(ethcrypto.Keccak256([]byte(m.id))[12:])
}

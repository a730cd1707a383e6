package sign

import (
	"crypto/ecdsa"
	"fmt"
	"time"

	"github.com/ethereum/go-ethereum/common"
	ethcrypto "github.com/ethereum/go-ethereum/crypto"
)

// Ensure our types implement the interfaces at compile time.
var _ Signer = (*LocalSigner)(nil)
var _ PublicKey = (*LocalPublicKey)(nil)

// LocalPublicKey implements the PublicKey interface for a local secp256k1 key.
type LocalPublicKey struct{ pub *ecdsa.PublicKey }

// Bytes returns the uncompressed point encoding (65 bytes, 0x04 tag + X + Y).
func (p LocalPublicKey) Bytes() []byte { return ethcrypto.FromECDSAPub(p.pub) }

// Address returns the Ethereum address derived from the public key.
func (p LocalPublicKey) Address() common.Address {
	return ethcrypto.PubkeyToAddress(*p.pub)
}

// LocalSigner holds a single secp256k1 private scalar in memory and signs
// digests with it. It stands in for a threshold signing provider: the rest
// of the system only sees the Signer contract.
//
// The private key is immutable after construction and is never exposed
// through the API; only the derived public point is exportable.
type LocalSigner struct {
	privateKey *ecdsa.PrivateKey
	publicKey  LocalPublicKey
}

// GenerateLocalSigner creates a new signer with a fresh key drawn from the
// system's cryptographically secure random source.
func GenerateLocalSigner() (*LocalSigner, error) {
	key, err := ethcrypto.GenerateKey()
	if err != nil {
		return nil, wrapErr(ErrSigningFailed, err.Error())
	}
	return newLocalSigner(key), nil
}

// NewLocalSignerFromBytes reconstructs a signer from a raw 32-byte scalar.
// A wrong length, a zero scalar, or a scalar >= the curve order fails with
// ErrInvalidKeyMaterial carrying the decode reason.
func NewLocalSignerFromBytes(b []byte) (*LocalSigner, error) {
	key, err := ethcrypto.ToECDSA(b)
	if err != nil {
		return nil, wrapErr(ErrInvalidKeyMaterial, err.Error())
	}
	return newLocalSigner(key), nil
}

// NewLocalSignerFromHex reconstructs a signer from a hex-encoded scalar,
// with an optional "0x" prefix.
func NewLocalSignerFromHex(keyHex string) (*LocalSigner, error) {
	keyBytes, err := DecodeHex(keyHex)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidKeyMaterial, err.Error())
	}
	return NewLocalSignerFromBytes(keyBytes)
}

func newLocalSigner(key *ecdsa.PrivateKey) *LocalSigner {
	return &LocalSigner{
		privateKey: key,
		publicKey:  LocalPublicKey{pub: key.Public().(*ecdsa.PublicKey)},
	}
}

// PublicKey returns the public key associated with the signer.
func (s *LocalSigner) PublicKey() PublicKey { return s.publicKey }

// SignDigest signs a 32-byte digest with the signer's private key.
//
// The per-signature nonce is derived deterministically (RFC6979), so
// signing the same digest twice yields byte-identical signatures. The
// recovery indicator is computed from the signature's point parity and
// reported with the legacy +27 offset to remain compatible with the
// ecrecover precompile.
func (s *LocalSigner) SignDigest(digest []byte) (*SignatureResult, error) {
	if len(digest) != DigestLength {
		return nil, fmt.Errorf("%w: want %d bytes, got %d", ErrInvalidDigestLength, DigestLength, len(digest))
	}

	start := time.Now()
	sig, err := ethcrypto.Sign(digest, s.privateKey)
	latency := time.Since(start)
	if err != nil {
		return nil, wrapErr(ErrSigningFailed, err.Error())
	}
	if len(sig) != SignatureLength+1 {
		return nil, wrapErr(ErrSigningFailed, fmt.Sprintf("unexpected signature length %d", len(sig)))
	}

	v := int(sig[SignatureLength])
	if v < 27 {
		v += 27
	}

	rs := make([]byte, SignatureLength)
	copy(rs, sig[:SignatureLength])

	return &SignatureResult{
		Signature: Signature(rs),
		R:         rs[:DigestLength],
		S:         rs[DigestLength:],
		V:         v,
		Latency:   latency,
	}, nil
}

package sign

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
)

// DigestLength is the required length of a message digest in bytes.
// It equals the byte size of the secp256k1 scalar field.
const DigestLength = 32

// SignatureLength is the length of the raw r||s signature in bytes.
const SignatureLength = 64

// Signer is an interface for a capability that can produce a signature
// over a message digest. A local single-key implementation and a future
// threshold implementation both satisfy the same contract.
type Signer interface {
	// PublicKey returns the public key associated with this signer.
	PublicKey() PublicKey
	// SignDigest signs a 32-byte digest and returns the decomposed result.
	SignDigest(digest []byte) (*SignatureResult, error)
}

// PublicKey is an interface for the exportable half of a key pair.
// Private key material is never reachable through it.
type PublicKey interface {
	// Bytes returns the uncompressed point encoding (0x04 tag + X + Y).
	Bytes() []byte
	// Address returns the Ethereum address derived from the public key.
	Address() common.Address
}

// Signature is a raw r||s signature (64 bytes). The recovery indicator
// travels separately in the SignatureResult.
type Signature []byte

// SignatureResult carries a signature together with its decomposed
// components and the time spent inside the curve operation.
type SignatureResult struct {
	Signature Signature     `json:"signature"` // r||s, 64 bytes
	R         []byte        `json:"r"`         // first 32 bytes
	S         []byte        `json:"s"`         // second 32 bytes
	V         int           `json:"v"`         // recovery bit + 27, ecrecover-compatible
	Latency   time.Duration `json:"-"`         // signing computation only
}

// String implements the fmt.Stringer interface.
func (s Signature) String() string {
	return hexutil.Encode(s)
}

// MarshalJSON implements the json.Marshaler interface, encoding the signature as a hex string.
func (s Signature) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// UnmarshalJSON implements the json.Unmarshaler interface.
func (s *Signature) UnmarshalJSON(data []byte) error {
	var hexStr string
	if err := json.Unmarshal(data, &hexStr); err != nil {
		return err
	}
	decoded, err := DecodeHex(hexStr)
	if err != nil {
		return err
	}
	*s = decoded
	return nil
}

// DecodeHex decodes a hex string with an optional "0x" prefix into raw bytes.
// Malformed input (odd length, non-hex characters) fails with ErrInvalidHexEncoding.
func DecodeHex(s string) ([]byte, error) {
	decoded, err := hexutil.Decode("0x" + strings.TrimPrefix(s, "0x"))
	if err != nil {
		return nil, wrapErr(ErrInvalidHexEncoding, err.Error())
	}
	return decoded, nil
}

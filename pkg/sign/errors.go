package sign

import (
	"errors"
	"fmt"
)

// Sentinel errors for the failure classes a signing call can hit.
// All of them are caller input errors except ErrSigningFailed, which
// indicates an internal curve primitive fault and is not retryable.
var (
	// ErrInvalidHexEncoding indicates a malformed hex string (odd length,
	// non-hex characters).
	ErrInvalidHexEncoding = errors.New("invalid hex encoding")
	// ErrInvalidKeyMaterial indicates key bytes that do not form a valid
	// private scalar (wrong length, zero, or >= curve order).
	ErrInvalidKeyMaterial = errors.New("invalid key material")
	// ErrInvalidDigestLength indicates a digest that is not exactly 32 bytes.
	ErrInvalidDigestLength = errors.New("invalid digest length")
	// ErrSigningFailed indicates an unexpected failure inside the signing
	// primitive.
	ErrSigningFailed = errors.New("signing failed")
)

func wrapErr(sentinel error, reason string) error {
	return fmt.Errorf("%w: %s", sentinel, reason)
}

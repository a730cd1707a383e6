// Package sign provides digest-signing primitives over secp256k1.
//
// This package defines the core contract for producing ECDSA signatures
// over 32-byte message digests, together with a local single-key
// implementation. The contract is provider-agnostic: a distributed
// threshold-signing provider can replace the local implementation without
// changing any calling code.
//
// The primary types are:
//
//   - Signer: capability that signs a digest and exposes a public key
//   - PublicKey: exportable half of a key pair (point encoding, address)
//   - SignatureResult: signature plus r/s/v decomposition and latency
//
// # Security Design
//
// This package follows security best practices by:
//   - Never exposing private key material through interfaces
//   - Rejecting digests that are not exactly 32 bytes before any curve work
//   - Deriving per-signature nonces deterministically (RFC6979), so a
//     repeated (key, digest) pair can never leak the key through nonce reuse
//   - Computing the recovery indicator from the signature itself rather
//     than assuming a fixed value
//
// Usage
//
//	// Reconstruct a signer from a hex-encoded private scalar
//	signer, err := sign.NewLocalSignerFromHex(keyHex)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	// Sign a 32-byte digest (provide a hash, not a raw message)
//	digest := ethcrypto.Keccak256([]byte("hello world"))
//	result, err := signer.SignDigest(digest)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	fmt.Println("signature:", result.Signature.String())
//	fmt.Println("v:", result.V)
package sign

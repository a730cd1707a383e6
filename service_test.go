package main

import (
	"strings"
	"testing"

	"github.com/ethereum/go-ethereum/common/hexutil"
	ethcrypto "github.com/ethereum/go-ethereum/crypto"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opencustody/mpc-signer/pkg/sign"
)

const (
	testKeyHex    = "0x0000000000000000000000000000000000000000000000000000000000000001"
	testPubKeyHex = "0x0479be667ef9dcbbac55a06295ce870b07029bfcdb2dce28d959f2815b16f81798483ada7726a3c4655da4fbfc0e1108a8fd17b448a68554199c47d08ffb10d4b8"
	zeroDigestHex = "0x0000000000000000000000000000000000000000000000000000000000000000"
)

func newTestService(t *testing.T) *SigningService {
	t.Helper()

	config := &Config{
		mode:    ModeTest,
		signing: SigningConfig{Threshold: 2, TotalParties: 3},
	}
	metrics := NewMetricsWithRegistry(prometheus.NewRegistry())
	return NewSigningService(config, metrics, NewLoggerIPFS("test"))
}

func TestSignDigest(t *testing.T) {
	t.Run("Ephemeral key", func(t *testing.T) {
		service := newTestService(t)

		resp, err := service.SignDigest(SignDigestRequest{DigestHex: zeroDigestHex})
		require.NoError(t, err)

		_, err = uuid.Parse(resp.RequestID)
		assert.NoError(t, err)

		sigBytes, err := hexutil.Decode(resp.Signature)
		require.NoError(t, err)
		assert.Len(t, sigBytes, 64)

		rBytes, err := hexutil.Decode(resp.R)
		require.NoError(t, err)
		sBytes, err := hexutil.Decode(resp.S)
		require.NoError(t, err)
		assert.Len(t, rBytes, 32)
		assert.Len(t, sBytes, 32)
		assert.Equal(t, sigBytes, append(append([]byte{}, rBytes...), sBytes...))

		assert.Contains(t, []int{27, 28}, resp.V)
		assert.GreaterOrEqual(t, resp.LatencyMS, 0.0)
		assert.Less(t, resp.LatencyMS, 100.0)
	})

	t.Run("Supplied key is deterministic", func(t *testing.T) {
		service := newTestService(t)

		digestHex := hexutil.Encode(ethcrypto.Keccak256([]byte("payload")))
		first, err := service.SignDigest(SignDigestRequest{DigestHex: digestHex, KeyHex: testKeyHex})
		require.NoError(t, err)
		second, err := service.SignDigest(SignDigestRequest{DigestHex: digestHex, KeyHex: testKeyHex})
		require.NoError(t, err)

		assert.Equal(t, first.Signature, second.Signature)
		assert.Equal(t, first.V, second.V)
		assert.NotEqual(t, first.RequestID, second.RequestID)
	})

	t.Run("Digest without prefix", func(t *testing.T) {
		service := newTestService(t)

		resp, err := service.SignDigest(SignDigestRequest{DigestHex: strings.TrimPrefix(zeroDigestHex, "0x")})
		require.NoError(t, err)
		assert.Len(t, resp.Signature, 2+128)
	})

	t.Run("Rejects malformed input", func(t *testing.T) {
		tests := []struct {
			name     string
			req      SignDigestRequest
			expected error
		}{
			{
				name:     "Digest too short",
				req:      SignDigestRequest{DigestHex: "0x" + strings.Repeat("00", 16)},
				expected: sign.ErrInvalidDigestLength,
			},
			{
				name:     "Digest too long",
				req:      SignDigestRequest{DigestHex: "0x" + strings.Repeat("00", 33)},
				expected: sign.ErrInvalidDigestLength,
			},
			{
				name:     "Digest not hex",
				req:      SignDigestRequest{DigestHex: "0xnothex"},
				expected: sign.ErrInvalidHexEncoding,
			},
			{
				name:     "Digest odd length",
				req:      SignDigestRequest{DigestHex: "0xabc"},
				expected: sign.ErrInvalidHexEncoding,
			},
			{
				name:     "Key not a valid scalar",
				req:      SignDigestRequest{DigestHex: zeroDigestHex, KeyHex: "0x" + strings.Repeat("00", 32)},
				expected: sign.ErrInvalidKeyMaterial,
			},
			{
				name:     "Key wrong length",
				req:      SignDigestRequest{DigestHex: zeroDigestHex, KeyHex: "0xabcd"},
				expected: sign.ErrInvalidKeyMaterial,
			},
		}

		for _, test := range tests {
			t.Run(test.name, func(t *testing.T) {
				service := newTestService(t)

				resp, err := service.SignDigest(test.req)
				require.Error(t, err)
				assert.ErrorIs(t, err, test.expected)
				assert.Nil(t, resp)
			})
		}
	})

	t.Run("Rejects empty request", func(t *testing.T) {
		service := newTestService(t)

		resp, err := service.SignDigest(SignDigestRequest{})
		require.Error(t, err)
		assert.Nil(t, resp)
	})

	t.Run("Operator key from config", func(t *testing.T) {
		service := newTestService(t)
		service.config.privateKeyHex = testKeyHex

		resp, err := service.SignDigest(SignDigestRequest{DigestHex: zeroDigestHex})
		require.NoError(t, err)

		// The response must match a direct signature with the operator key.
		signer, err := sign.NewLocalSignerFromHex(testKeyHex)
		require.NoError(t, err)
		digest, err := sign.DecodeHex(zeroDigestHex)
		require.NoError(t, err)
		result, err := signer.SignDigest(digest)
		require.NoError(t, err)

		assert.Equal(t, result.Signature.String(), resp.Signature)
	})
}

func TestSignTransaction(t *testing.T) {
	service := newTestService(t)

	signature, err := service.SignTransaction([]byte("hello"))
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(signature, "0x"))
	assert.Len(t, signature, 2+128)

	decoded, err := hexutil.Decode(signature)
	require.NoError(t, err)
	assert.Len(t, decoded, 64)
}

func TestGetPublicKey(t *testing.T) {
	t.Run("Known vector", func(t *testing.T) {
		service := newTestService(t)

		publicKeyHex, err := service.GetPublicKey(testKeyHex)
		require.NoError(t, err)
		assert.Equal(t, testPubKeyHex, publicKeyHex)
	})

	t.Run("Export and re-import round trip", func(t *testing.T) {
		service := newTestService(t)

		key, err := ethcrypto.GenerateKey()
		require.NoError(t, err)

		exported := hexutil.Encode(ethcrypto.FromECDSA(key))
		publicKeyHex, err := service.GetPublicKey(exported)
		require.NoError(t, err)
		assert.Equal(t, hexutil.Encode(ethcrypto.FromECDSAPub(&key.PublicKey)), publicKeyHex)
	})

	t.Run("Invalid key material", func(t *testing.T) {
		service := newTestService(t)

		_, err := service.GetPublicKey("0x" + strings.Repeat("00", 32))
		require.Error(t, err)
		assert.ErrorIs(t, err, sign.ErrInvalidKeyMaterial)
	})
}

func TestCreateWallet(t *testing.T) {
	t.Run("Reports provider metadata", func(t *testing.T) {
		service := newTestService(t)

		info, err := service.CreateWallet("treasury")
		require.NoError(t, err)

		assert.True(t, strings.HasPrefix(info.WalletID, "local_"))
		assert.True(t, strings.HasPrefix(info.Address, "0x"))
		assert.Len(t, info.Address, 42)
		assert.Equal(t, "treasury", info.Name)
		assert.Equal(t, 2, info.Threshold)
		assert.Equal(t, 3, info.TotalParties)
		assert.Equal(t, ProviderLocalThreshold, info.Provider)
	})

	t.Run("Wallet ID is stable per name", func(t *testing.T) {
		service := newTestService(t)

		first, err := service.CreateWallet("treasury")
		require.NoError(t, err)
		second, err := service.CreateWallet("treasury")
		require.NoError(t, err)

		assert.Equal(t, first.WalletID, second.WalletID)
		// A new key is drawn each time, so the addresses differ.
		assert.NotEqual(t, first.Address, second.Address)
	})

	t.Run("Rejects empty name", func(t *testing.T) {
		service := newTestService(t)

		_, err := service.CreateWallet("")
		assert.Error(t, err)
	})
}

func TestHealthCheck(t *testing.T) {
	service := newTestService(t)

	health := service.HealthCheck()
	assert.Equal(t, "signing", health.Service)
	assert.Equal(t, ProviderLocalThreshold, health.Provider)
	assert.Zero(t, health.TotalSignatures)

	_, err := service.SignDigest(SignDigestRequest{DigestHex: zeroDigestHex})
	require.NoError(t, err)
	_, err = service.SignTransaction([]byte("hello"))
	require.NoError(t, err)

	health = service.HealthCheck()
	assert.Equal(t, uint64(2), health.TotalSignatures)
	assert.Zero(t, health.FailedSignatures)
	assert.GreaterOrEqual(t, health.AvgLatencyMS, 0.0)
}

func TestServiceMetrics(t *testing.T) {
	service := newTestService(t)

	_, err := service.SignDigest(SignDigestRequest{DigestHex: zeroDigestHex})
	require.NoError(t, err)
	_, err = service.SignDigest(SignDigestRequest{DigestHex: "0xabcd"})
	require.Error(t, err)

	assert.Equal(t, 2.0, testutil.ToFloat64(service.metrics.SignAttemptsTotal.WithLabelValues("sign_digest")))
	assert.Equal(t, 1.0, testutil.ToFloat64(service.metrics.SignAttemptsSuccess.WithLabelValues("sign_digest")))
	assert.Equal(t, 1.0, testutil.ToFloat64(service.metrics.SignAttemptsFail.WithLabelValues("sign_digest")))
	assert.Equal(t, 1.0, testutil.ToFloat64(service.metrics.KeysGenerated))
}

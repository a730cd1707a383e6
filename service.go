package main

import (
	"encoding/hex"
	goerrors "errors"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/common/hexutil"
	ethcrypto "github.com/ethereum/go-ethereum/crypto"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/opencustody/mpc-signer/pkg/sign"
)

// ProviderLocalThreshold identifies the built-in single-key signer that
// stands in for a distributed threshold-signing provider.
const ProviderLocalThreshold = "local_threshold"

// SignDigestRequest is the input to the SignDigest operation.
// The digest must hex-decode to exactly 32 bytes; the key is optional and
// absent means a fresh ephemeral key is generated for the call.
type SignDigestRequest struct {
	DigestHex string `json:"digest" validate:"required"`
	KeyHex    string `json:"key,omitempty"`
}

// SignDigestResponse carries the signature components back to the caller.
type SignDigestResponse struct {
	RequestID string  `json:"request_id"`
	Signature string  `json:"signature"` // 0x-prefixed r||s (64 bytes)
	R         string  `json:"r"`
	S         string  `json:"s"`
	V         int     `json:"v"`
	LatencyMS float64 `json:"latency_ms"`
}

// WalletInfo describes a freshly created wallet.
type WalletInfo struct {
	WalletID     string    `json:"wallet_id"`
	Address      string    `json:"address"`
	Name         string    `json:"name"`
	Threshold    int       `json:"threshold"`
	TotalParties int       `json:"total_parties"`
	Provider     string    `json:"provider"`
	CreatedAt    time.Time `json:"created_at"`
}

// HealthStatus is a point-in-time snapshot of the service.
type HealthStatus struct {
	Service          string    `json:"service"`
	Provider         string    `json:"provider"`
	Threshold        int       `json:"threshold"`
	TotalParties     int       `json:"total_parties"`
	TotalSignatures  uint64    `json:"total_signatures"`
	FailedSignatures uint64    `json:"failed_signatures"`
	AvgLatencyMS     float64   `json:"avg_latency_ms"`
	Timestamp        time.Time `json:"timestamp"`
}

// SigningService exposes the digest-signing operations. Each call is
// independent: a key lives for exactly one operation and is never stored.
type SigningService struct {
	config   *Config
	metrics  *Metrics
	logger   Logger
	validate *validator.Validate

	mu               sync.Mutex
	totalSignatures  uint64
	failedSignatures uint64
	avgLatencyMS     float64
}

// NewSigningService creates a signing service with the given configuration.
func NewSigningService(config *Config, metrics *Metrics, logger Logger) *SigningService {
	return &SigningService{
		config:   config,
		metrics:  metrics,
		logger:   logger.NewSystem("signing"),
		validate: validator.New(),
	}
}

// SignDigest signs a hex-encoded 32-byte digest. When the request carries
// no key, the operator key from configuration is used if present, otherwise
// a fresh ephemeral key is generated.
func (s *SigningService) SignDigest(req SignDigestRequest) (*SignDigestResponse, error) {
	const operation = "sign_digest"
	s.metrics.SignAttemptsTotal.WithLabelValues(operation).Inc()

	requestID := uuid.NewString()
	logger := s.logger.With("requestID", requestID)

	if err := s.validate.Struct(req); err != nil {
		s.metrics.SignAttemptsFail.WithLabelValues(operation).Inc()
		return nil, errors.Wrap(err, "invalid sign request")
	}

	digest, err := sign.DecodeHex(req.DigestHex)
	if err != nil {
		s.metrics.SignAttemptsFail.WithLabelValues(operation).Inc()
		return nil, errors.Wrap(err, "invalid digest encoding")
	}

	signer, err := s.resolveSigner(req.KeyHex)
	if err != nil {
		s.metrics.SignAttemptsFail.WithLabelValues(operation).Inc()
		return nil, err
	}

	result, err := signer.SignDigest(digest)
	if err != nil {
		s.metrics.SignAttemptsFail.WithLabelValues(operation).Inc()
		s.recordFailure(err)
		return nil, err
	}
	s.metrics.SignAttemptsSuccess.WithLabelValues(operation).Inc()
	s.metrics.SigningLatency.Observe(result.Latency.Seconds())

	latencyMS := float64(result.Latency) / float64(time.Millisecond)
	s.recordSuccess(latencyMS)

	logger.Info("digest signed",
		"address", signer.PublicKey().Address().Hex(),
		"v", result.V,
		"latencyMS", latencyMS)

	return &SignDigestResponse{
		RequestID: requestID,
		Signature: result.Signature.String(),
		R:         hexutil.Encode(result.R),
		S:         hexutil.Encode(result.S),
		V:         result.V,
		LatencyMS: latencyMS,
	}, nil
}

// SignTransaction hashes an arbitrary payload with Keccak-256 and signs the
// resulting digest with a freshly generated key. It returns the 0x-prefixed
// r||s signature hex. This is the legacy entry point; callers needing the
// recovery indicator should use SignDigest.
func (s *SigningService) SignTransaction(payload []byte) (string, error) {
	const operation = "sign_transaction"
	s.metrics.SignAttemptsTotal.WithLabelValues(operation).Inc()

	signer, err := sign.GenerateLocalSigner()
	if err != nil {
		s.metrics.SignAttemptsFail.WithLabelValues(operation).Inc()
		s.recordFailure(err)
		return "", err
	}
	s.metrics.KeysGenerated.Inc()

	digest := ethcrypto.Keccak256(payload)
	result, err := signer.SignDigest(digest)
	if err != nil {
		s.metrics.SignAttemptsFail.WithLabelValues(operation).Inc()
		s.recordFailure(err)
		return "", err
	}
	s.metrics.SignAttemptsSuccess.WithLabelValues(operation).Inc()
	s.metrics.SigningLatency.Observe(result.Latency.Seconds())
	s.recordSuccess(float64(result.Latency) / float64(time.Millisecond))

	return result.Signature.String(), nil
}

// GetPublicKey derives the uncompressed public point for a hex-encoded
// private scalar and returns it 0x-prefixed.
func (s *SigningService) GetPublicKey(keyHex string) (string, error) {
	signer, err := sign.NewLocalSignerFromHex(keyHex)
	if err != nil {
		return "", err
	}
	return hexutil.Encode(signer.PublicKey().Bytes()), nil
}

// CreateWallet generates a new key and reports its address together with
// the simulated provider metadata. The key itself is discarded when the
// call returns; the operation exists for parity with provider-backed
// wallet creation.
func (s *SigningService) CreateWallet(name string) (*WalletInfo, error) {
	if err := s.validate.Var(name, "required"); err != nil {
		return nil, errors.Wrap(err, "invalid wallet name")
	}

	signer, err := sign.GenerateLocalSigner()
	if err != nil {
		return nil, err
	}
	s.metrics.KeysGenerated.Inc()

	walletID := "local_" + hex.EncodeToString(ethcrypto.Keccak256([]byte(name))[:4])
	info := &WalletInfo{
		WalletID:     walletID,
		Address:      signer.PublicKey().Address().Hex(),
		Name:         name,
		Threshold:    s.config.signing.Threshold,
		TotalParties: s.config.signing.TotalParties,
		Provider:     ProviderLocalThreshold,
		CreatedAt:    time.Now().UTC(),
	}

	s.logger.Info("wallet created", "walletID", walletID, "address", info.Address)
	return info, nil
}

// HealthCheck reports the provider label and running signature totals.
func (s *SigningService) HealthCheck() HealthStatus {
	s.mu.Lock()
	defer s.mu.Unlock()

	return HealthStatus{
		Service:          "signing",
		Provider:         ProviderLocalThreshold,
		Threshold:        s.config.signing.Threshold,
		TotalParties:     s.config.signing.TotalParties,
		TotalSignatures:  s.totalSignatures,
		FailedSignatures: s.failedSignatures,
		AvgLatencyMS:     s.avgLatencyMS,
		Timestamp:        time.Now().UTC(),
	}
}

// resolveSigner picks the key for a signing call: request key, then
// operator key from configuration, then a fresh ephemeral key.
func (s *SigningService) resolveSigner(keyHex string) (sign.Signer, error) {
	if keyHex == "" {
		keyHex = s.config.privateKeyHex
	}
	if keyHex == "" {
		signer, err := sign.GenerateLocalSigner()
		if err != nil {
			return nil, err
		}
		s.metrics.KeysGenerated.Inc()
		return signer, nil
	}

	signer, err := sign.NewLocalSignerFromHex(keyHex)
	if err != nil {
		return nil, err
	}
	s.metrics.KeysImported.Inc()
	return signer, nil
}

func (s *SigningService) recordSuccess(latencyMS float64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.totalSignatures++
	// Running average over completed signatures.
	s.avgLatencyMS += (latencyMS - s.avgLatencyMS) / float64(s.totalSignatures)
}

// recordFailure counts signatures that failed after input validation
// passed. Validation rejects are visible in the prometheus counters only.
func (s *SigningService) recordFailure(err error) {
	if !goerrors.Is(err, sign.ErrSigningFailed) {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.totalSignatures++
	s.failedSignatures++
}

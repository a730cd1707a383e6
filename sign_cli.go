package main

import (
	"os"
)

// runSignCli is the entry point for the sign command line interface.
// Example: mpc-signer sign 0x<digest-hex> [0x<key-hex>]
func runSignCli(logger Logger) {
	logger = logger.NewSystem("sign")
	if len(os.Args) < 3 {
		logger.Fatal("Usage: mpc-signer sign <digest-hex> [key-hex]")
	}

	service := newServiceFromEnv(logger)

	req := SignDigestRequest{DigestHex: os.Args[2]}
	if len(os.Args) > 3 {
		req.KeyHex = os.Args[3]
	}

	resp, err := service.SignDigest(req)
	if err != nil {
		logger.Fatal("Failed to sign digest", "error", err)
	}

	logger.Info("digest signed",
		"requestID", resp.RequestID,
		"signature", resp.Signature,
		"r", resp.R,
		"s", resp.S,
		"v", resp.V,
		"latencyMS", resp.LatencyMS)
}

// runSignTransactionCli signs the Keccak-256 hash of an arbitrary payload
// with a freshly generated key.
// Example: mpc-signer sign-tx "hello"
func runSignTransactionCli(logger Logger) {
	logger = logger.NewSystem("sign-tx")
	if len(os.Args) < 3 {
		logger.Fatal("Usage: mpc-signer sign-tx <payload>")
	}

	service := newServiceFromEnv(logger)

	signature, err := service.SignTransaction([]byte(os.Args[2]))
	if err != nil {
		logger.Fatal("Failed to sign transaction payload", "error", err)
	}

	logger.Info("transaction payload signed", "signature", signature)
}

// runKeygenCli creates a wallet and reports its address and metadata.
// Example: mpc-signer keygen treasury
func runKeygenCli(logger Logger) {
	logger = logger.NewSystem("keygen")
	if len(os.Args) < 3 {
		logger.Fatal("Usage: mpc-signer keygen <wallet-name>")
	}

	service := newServiceFromEnv(logger)

	info, err := service.CreateWallet(os.Args[2])
	if err != nil {
		logger.Fatal("Failed to create wallet", "error", err)
	}

	logger.Info("wallet created",
		"walletID", info.WalletID,
		"address", info.Address,
		"threshold", info.Threshold,
		"totalParties", info.TotalParties,
		"provider", info.Provider)
}

// runPubkeyCli derives the uncompressed public point for a private scalar.
// Example: mpc-signer pubkey 0x<key-hex>
func runPubkeyCli(logger Logger) {
	logger = logger.NewSystem("pubkey")
	if len(os.Args) < 3 {
		logger.Fatal("Usage: mpc-signer pubkey <key-hex>")
	}

	service := newServiceFromEnv(logger)

	publicKeyHex, err := service.GetPublicKey(os.Args[2])
	if err != nil {
		logger.Fatal("Failed to derive public key", "error", err)
	}

	logger.Info("public key derived", "publicKey", publicKeyHex)
}

// runHealthCli prints the provider label and signature totals.
func runHealthCli(logger Logger) {
	logger = logger.NewSystem("health")

	service := newServiceFromEnv(logger)

	health := service.HealthCheck()
	logger.Info("service health",
		"provider", health.Provider,
		"threshold", health.Threshold,
		"totalParties", health.TotalParties,
		"totalSignatures", health.TotalSignatures,
		"failedSignatures", health.FailedSignatures,
		"avgLatencyMS", health.AvgLatencyMS)
}

func newServiceFromEnv(logger Logger) *SigningService {
	config, err := LoadConfig(logger)
	if err != nil {
		logger.Fatal("Failed to load configuration", "error", err)
	}

	return NewSigningService(config, NewMetrics(), logger)
}

package main

import (
	"os"
)

func main() {
	logger := NewLoggerIPFS("root")
	if len(os.Args) < 2 {
		logger.Fatal("Usage: mpc-signer <sign|sign-tx|keygen|pubkey|health> [args]")
	}

	runCli(logger, os.Args[1])
}

func runCli(logger Logger, command string) {
	switch command {
	case "sign":
		runSignCli(logger)
	case "sign-tx":
		runSignTransactionCli(logger)
	case "keygen":
		runKeygenCli(logger)
	case "pubkey":
		runPubkeyCli(logger)
	case "health":
		runHealthCli(logger)
	default:
		logger.Fatal("unknown command", "command", command)
	}
}

package main

import (
	"os"
	"path/filepath"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

type Mode string

const (
	ModeProduction Mode = "production"
	ModeTest       Mode = "test"
)

const (
	configDirPathEnv     = "SIGNER_CONFIG_DIR_PATH"
	defaultConfigDirPath = "."
)

// Config represents the overall application configuration
type Config struct {
	mode          Mode
	privateKeyHex string
	signing       SigningConfig
}

// SigningConfig describes the simulated threshold-signing provider.
// A single local key stands in for the distributed protocol, so the
// threshold and party counts are reporting metadata only.
type SigningConfig struct {
	Threshold    int `env:"SIGNER_THRESHOLD" env-default:"2"`
	TotalParties int `env:"SIGNER_TOTAL_PARTIES" env-default:"3"`
}

// LoadConfig builds configuration from environment variables
func LoadConfig(logger Logger) (*Config, error) {
	logger = logger.NewSystem("config")

	configDirPath := os.Getenv(configDirPathEnv)
	if configDirPath == "" {
		configDirPath = defaultConfigDirPath
	}

	// Load .env files
	configDotEnvPath := filepath.Join(configDirPath, ".env")
	logger.Info("loading .env file", "path", configDotEnvPath)
	if err := godotenv.Load(configDotEnvPath); err != nil {
		logger.Warn(".env file not found")
	}

	mode := Mode(os.Getenv("SIGNER_MODE"))
	if mode == "" {
		mode = ModeProduction
	} else if mode != ModeProduction && mode != ModeTest {
		logger.Fatal("invalid SIGNER_MODE value", "value", mode)
	}
	logger.Info("set mode", "value", mode)

	var signing SigningConfig
	if err := cleanenv.ReadEnv(&signing); err != nil {
		logger.Error("failed to read env", "err", err)
		return nil, err
	}
	if signing.Threshold < 1 || signing.Threshold > signing.TotalParties {
		logger.Fatal("invalid threshold configuration",
			"threshold", signing.Threshold, "totalParties", signing.TotalParties)
	}

	// An operator-supplied key is optional; without it every signing call
	// uses a freshly generated ephemeral key.
	privateKeyHex := os.Getenv("SIGNER_PRIVATE_KEY")

	config := Config{
		mode:          mode,
		privateKeyHex: privateKeyHex,
		signing:       signing,
	}

	return &config, nil
}

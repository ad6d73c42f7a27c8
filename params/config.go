package params

import (
	"math/big"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

type Signing struct {
	ChainID       *big.Int
	PrivateKeyHex string // local key signer; ignored when RPCURL is set
	RPCURL        string // wallet endpoint serving eth_signTypedData_v4
	TraderAddress string // verifying contract of the EIP-712 domain
	TargetTracer  string // market orders are placed on
}

type Accounting struct {
	LiquidationGasCost decimal.Decimal
	MaxLeverage        decimal.Decimal
}

type Log struct {
	Level string
	File  string // empty = console only
}

type Config struct {
	Signing    Signing
	Accounting Accounting
	Log        Log
}

func Default() Config {
	return Config{
		Signing: Signing{
			ChainID: big.NewInt(1337), // Local dev chain
		},
		Accounting: Accounting{
			LiquidationGasCost: decimal.NewFromInt(25),
			MaxLeverage:        decimal.NewFromInt(50),
		},
		Log: Log{
			Level: "info",
		},
	}
}

// LoadFromEnv loads configuration from .env file (if exists) and environment variables
// Priority: ENV > .env file > defaults
func LoadFromEnv(envPath string) Config {
	cfg := Default()

	// Optional - a missing .env is not an error
	if envPath != "" {
		_ = godotenv.Load(envPath)
	} else {
		_ = godotenv.Load()
	}

	if chainID := os.Getenv("CHAIN_ID"); chainID != "" {
		if id, err := strconv.ParseInt(chainID, 10, 64); err == nil {
			cfg.Signing.ChainID = big.NewInt(id)
		}
	}
	cfg.Signing.PrivateKeyHex = getEnv("SIGNER_PRIVATE_KEY", cfg.Signing.PrivateKeyHex)
	cfg.Signing.RPCURL = getEnv("SIGNER_RPC_URL", cfg.Signing.RPCURL)
	cfg.Signing.TraderAddress = getEnv("TRADER_ADDRESS", cfg.Signing.TraderAddress)
	cfg.Signing.TargetTracer = getEnv("TARGET_TRACER", cfg.Signing.TargetTracer)

	if gas := os.Getenv("LIQUIDATION_GAS_COST"); gas != "" {
		if v, err := decimal.NewFromString(gas); err == nil {
			cfg.Accounting.LiquidationGasCost = v
		}
	}
	if lev := os.Getenv("MAX_LEVERAGE"); lev != "" {
		if v, err := decimal.NewFromString(lev); err == nil && v.IsPositive() {
			cfg.Accounting.MaxLeverage = v
		}
	}

	cfg.Log.Level = getEnv("LOG_LEVEL", cfg.Log.Level)
	cfg.Log.File = getEnv("LOG_FILE", cfg.Log.File)

	return cfg
}

// getEnv returns environment variable value or default
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

package params

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.Signing.ChainID.Int64() != 1337 {
		t.Errorf("chain id = %s, want 1337", cfg.Signing.ChainID)
	}
	if cfg.Accounting.LiquidationGasCost.IntPart() != 25 {
		t.Errorf("gas cost = %s, want 25", cfg.Accounting.LiquidationGasCost)
	}
	if cfg.Accounting.MaxLeverage.IntPart() != 50 {
		t.Errorf("max leverage = %s, want 50", cfg.Accounting.MaxLeverage)
	}
}

func TestLoadFromEnv(t *testing.T) {
	dir := t.TempDir()
	envPath := filepath.Join(dir, ".env")
	content := "CHAIN_ID=42161\nTARGET_TRACER=0x4444444444444444444444444444444444444444\nLIQUIDATION_GAS_COST=30\n"
	if err := os.WriteFile(envPath, []byte(content), 0o644); err != nil {
		t.Fatalf("write .env: %v", err)
	}

	// Real environment wins over the .env file
	t.Setenv("LIQUIDATION_GAS_COST", "12.5")
	t.Setenv("MAX_LEVERAGE", "-3")
	// godotenv never overrides a set variable, so these must be unset.
	// t.Setenv restores the originals after the test.
	t.Setenv("CHAIN_ID", "")
	t.Setenv("TARGET_TRACER", "")
	os.Unsetenv("CHAIN_ID")
	os.Unsetenv("TARGET_TRACER")

	cfg := LoadFromEnv(envPath)
	if cfg.Signing.ChainID.Int64() != 42161 {
		t.Errorf("chain id = %s, want 42161", cfg.Signing.ChainID)
	}
	if cfg.Signing.TargetTracer != "0x4444444444444444444444444444444444444444" {
		t.Errorf("target tracer = %q", cfg.Signing.TargetTracer)
	}
	if cfg.Accounting.LiquidationGasCost.String() != "12.5" {
		t.Errorf("gas cost = %s, want 12.5", cfg.Accounting.LiquidationGasCost)
	}
	// Invalid leverage keeps the default
	if cfg.Accounting.MaxLeverage.IntPart() != 50 {
		t.Errorf("max leverage = %s, want 50", cfg.Accounting.MaxLeverage)
	}
}

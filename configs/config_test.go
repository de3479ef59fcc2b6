package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testConfig = `
rpc:
  url: http://localhost:8545
vaults:
  concurrency: 4
  collaterals:
    - name: WETH
      address: "0x00000000000000000000000000000000000000a1"
    - name: BTC
      address: "0x00000000000000000000000000000000000000b2"
report:
  format: parquet
`

func loadTestConfig(t *testing.T, content string) {
	t.Helper()
	viper.Reset()
	Cfg = Config{}
	t.Cleanup(viper.Reset)

	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	require.NoError(t, LoadConfig(path))
}

func TestLoadConfig(t *testing.T) {
	loadTestConfig(t, testConfig)

	assert.Equal(t, "http://localhost:8545", Cfg.RPC.URL)
	assert.Equal(t, 4, Cfg.Vaults.Concurrency)
	require.Len(t, Cfg.Vaults.Collaterals, 2)
	assert.Equal(t, "WETH", Cfg.Vaults.Collaterals[0].Name)
	assert.Equal(t, "BTC", Cfg.Vaults.Collaterals[1].Name)
	assert.Equal(t, "parquet", Cfg.Report.Format)

	// defaults
	assert.Equal(t, "MAI", Cfg.Report.TokenSymbol)
	assert.Equal(t, int32(18), Cfg.Report.DebtDecimals)
	assert.Equal(t, "outputData.csv", Cfg.Report.Output)
	assert.NoError(t, Cfg.Validate())
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Setenv("RPC_URL", "http://archive:8545")
	t.Setenv("S3_BUCKET", "reports")
	t.Setenv("REPORT_BLOCK", "3041467")

	loadTestConfig(t, testConfig)

	assert.Equal(t, "http://archive:8545", Cfg.RPC.URL)
	assert.Equal(t, "reports", Cfg.S3.Bucket)
	assert.Equal(t, uint64(3041467), Cfg.Report.Block)
}

func TestLoadConfig_MissingFile(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	assert.Error(t, LoadConfig(filepath.Join(t.TempDir(), "missing.yml")))
}

func TestValidate(t *testing.T) {
	valid := func() Config {
		return Config{
			RPC:    RPCConfig{URL: "http://localhost:8545"},
			Vaults: VaultsConfig{Collaterals: []CollateralConfig{{Name: "WETH", Address: "0x00000000000000000000000000000000000000a1"}}},
			Report: ReportConfig{DebtDecimals: 18, Format: "csv"},
		}
	}

	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"no rpc url", func(c *Config) { c.RPC.URL = "" }},
		{"no collaterals", func(c *Config) { c.Vaults.Collaterals = nil }},
		{"collateral without address", func(c *Config) { c.Vaults.Collaterals[0].Address = "" }},
		{"negative decimals", func(c *Config) { c.Report.DebtDecimals = -1 }},
		{"unknown format", func(c *Config) { c.Report.Format = "xlsx" }},
	}

	cfg := valid()
	require.NoError(t, cfg.Validate())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

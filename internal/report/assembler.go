package report

import (
	"context"
	"fmt"
	"math/big"

	gethCommon "github.com/ethereum/go-ethereum/common"
	config "github.com/publu/l2-lxp-liquidity-reward-sporker/configs"
	"github.com/publu/l2-lxp-liquidity-reward-sporker/internal/common"
	"github.com/publu/l2-lxp-liquidity-reward-sporker/internal/vaults"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

type Collateral struct {
	Name    string
	Address gethCommon.Address
}

type Assembler struct {
	enumerator   vaults.IVaultEnumerator
	collaterals  []Collateral
	tokenSymbol  string
	debtDecimals int32
}

func NewAssembler(enumerator vaults.IVaultEnumerator, collaterals []Collateral, tokenSymbol string, debtDecimals int32) *Assembler {
	return &Assembler{
		enumerator:   enumerator,
		collaterals:  collaterals,
		tokenSymbol:  tokenSymbol,
		debtDecimals: debtDecimals,
	}
}

// CollateralsFromConfig keeps the configured order, which is the row order of the report.
func CollateralsFromConfig(cfg []config.CollateralConfig) ([]Collateral, error) {
	collaterals := make([]Collateral, 0, len(cfg))
	for _, c := range cfg {
		if !gethCommon.IsHexAddress(c.Address) {
			return nil, fmt.Errorf("invalid address %q for collateral %s", c.Address, c.Name)
		}
		collaterals = append(collaterals, Collateral{Name: c.Name, Address: gethCommon.HexToAddress(c.Address)})
	}
	return collaterals, nil
}

// BuildReport returns one row per existing vault, collaterals in configured order and vault ids
// ascending within each. Any failure discards the whole report.
func (a *Assembler) BuildReport(ctx context.Context, block common.Block) ([]common.OutputRow, error) {
	rows := []common.OutputRow{}
	for _, collateral := range a.collaterals {
		vaultList, err := a.enumerator.Enumerate(ctx, collateral.Address, block.Number)
		if err != nil {
			log.Error().Err(err).Str("collateral", collateral.Name).Str("contract", collateral.Address.Hex()).Str("block", block.Number.String()).Msg("Failed to enumerate vaults")
			return nil, fmt.Errorf("failed to enumerate %s vaults: %w", collateral.Name, err)
		}
		for _, vault := range vaultList {
			rows = append(rows, a.toRow(block, collateral, vault))
		}
		log.Info().Str("collateral", collateral.Name).Int("vaults", len(vaultList)).Msg("Collected vault debt")
	}
	return rows, nil
}

func (a *Assembler) toRow(block common.Block, collateral Collateral, vault common.Vault) common.OutputRow {
	return common.OutputRow{
		BlockNumber:  block.Number.Uint64(),
		Timestamp:    block.Timestamp,
		UserAddress:  vault.Owner.Hex(),
		TokenAddress: collateral.Address.Hex(),
		TokenBalance: new(big.Int).Set(vault.Debt),
		TokenSymbol:  a.tokenSymbol,
		UsdPrice:     UsdValue(vault.Debt, a.debtDecimals),
	}
}

// UsdValue scales a pegged stablecoin amount down by its decimals and rounds half up to cents.
func UsdValue(amount *big.Int, decimals int32) decimal.Decimal {
	return decimal.NewFromBigInt(amount, -decimals).Round(2)
}

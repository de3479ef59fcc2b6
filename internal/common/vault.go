package common

import (
	"math/big"

	gethCommon "github.com/ethereum/go-ethereum/common"
	"github.com/shopspring/decimal"
)

type Vault struct {
	ID    uint64
	Debt  *big.Int
	Owner gethCommon.Address
}

type OutputRow struct {
	BlockNumber  uint64
	Timestamp    uint64
	UserAddress  string
	TokenAddress string
	TokenBalance *big.Int
	TokenSymbol  string
	UsdPrice     decimal.Decimal
}

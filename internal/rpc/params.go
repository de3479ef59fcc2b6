package rpc

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common/hexutil"
)

func GetLatestBlockParams() []interface{} {
	return []interface{}{"latest", false}
}

func GetBlockWithoutTransactionsParams(blockNum *big.Int) []interface{} {
	return []interface{}{hexutil.EncodeBig(blockNum), false}
}

package rpc

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/publu/l2-lxp-liquidity-reward-sporker/internal/common"
)

// RawBlockHeader holds the fields of an eth_getBlockByNumber result we use, still hex encoded.
type RawBlockHeader struct {
	Number    string `json:"number"`
	Timestamp string `json:"timestamp"`
}

func SerializeBlock(raw *RawBlockHeader) (common.Block, error) {
	if raw == nil {
		return common.Block{}, fmt.Errorf("received a nil block result from RPC")
	}
	number, err := hexutil.DecodeBig(raw.Number)
	if err != nil {
		return common.Block{}, fmt.Errorf("invalid block number %q: %w", raw.Number, err)
	}
	timestamp, err := hexutil.DecodeUint64(raw.Timestamp)
	if err != nil {
		return common.Block{}, fmt.Errorf("invalid block timestamp %q: %w", raw.Timestamp, err)
	}
	return common.Block{Number: number, Timestamp: timestamp}, nil
}

package rpc

import (
	"context"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum"
	gethCommon "github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethclient"
	gethRpc "github.com/ethereum/go-ethereum/rpc"
	"github.com/publu/l2-lxp-liquidity-reward-sporker/internal/common"
	"github.com/rs/zerolog/log"
)

type IRPCClient interface {
	GetLatestBlock(ctx context.Context) (common.Block, error)
	GetBlockByNumber(ctx context.Context, blockNumber *big.Int) (common.Block, error)
	CallContract(ctx context.Context, to gethCommon.Address, data []byte, blockNumber *big.Int) ([]byte, error)
	GetURL() string
	Close()
}

type Client struct {
	RPCClient *gethRpc.Client
	EthClient *ethclient.Client
	url       string
}

func Initialize(ctx context.Context, rpcUrl string) (IRPCClient, error) {
	if rpcUrl == "" {
		return nil, &RpcError{Method: "dial", Err: fmt.Errorf("RPC_URL environment variable is not set")}
	}
	log.Debug().Str("url", rpcUrl).Msg("Initializing RPC")
	rpcClient, dialErr := gethRpc.DialContext(ctx, rpcUrl)
	if dialErr != nil {
		return nil, &RpcError{Method: "dial", Err: dialErr}
	}

	rpc := &Client{
		RPCClient: rpcClient,
		EthClient: ethclient.NewClient(rpcClient),
		url:       rpcUrl,
	}
	return IRPCClient(rpc), nil
}

func (rpc *Client) GetURL() string {
	return rpc.url
}

func (rpc *Client) Close() {
	rpc.EthClient.Close()
}

func (rpc *Client) GetLatestBlock(ctx context.Context) (common.Block, error) {
	return rpc.getBlock(ctx, GetLatestBlockParams())
}

func (rpc *Client) GetBlockByNumber(ctx context.Context, blockNumber *big.Int) (common.Block, error) {
	if blockNumber == nil || blockNumber.Sign() < 0 {
		return common.Block{}, &RpcError{Method: "eth_getBlockByNumber", Err: fmt.Errorf("invalid block number %v", blockNumber)}
	}
	return rpc.getBlock(ctx, GetBlockWithoutTransactionsParams(blockNumber))
}

func (rpc *Client) getBlock(ctx context.Context, params []interface{}) (common.Block, error) {
	var raw *RawBlockHeader
	if err := rpc.RPCClient.CallContext(ctx, &raw, "eth_getBlockByNumber", params...); err != nil {
		log.Error().Err(err).Interface("params", params).Msg("eth_getBlockByNumber failed")
		return common.Block{}, &RpcError{Method: "eth_getBlockByNumber", Err: err}
	}
	block, err := SerializeBlock(raw)
	if err != nil {
		log.Error().Err(err).Interface("params", params).Msg("Malformed block returned by RPC")
		return common.Block{}, &RpcError{Method: "eth_getBlockByNumber", Err: err}
	}
	log.Debug().Str("block", block.Number.String()).Uint64("timestamp", block.Timestamp).Msg("Resolved block")
	return block, nil
}

// CallContract runs eth_call against the state at blockNumber, nil means latest.
func (rpc *Client) CallContract(ctx context.Context, to gethCommon.Address, data []byte, blockNumber *big.Int) ([]byte, error) {
	result, err := rpc.EthClient.CallContract(ctx, ethereum.CallMsg{To: &to, Data: data}, blockNumber)
	if err != nil {
		return nil, &RpcError{Method: "eth_call", Err: err}
	}
	return result, nil
}

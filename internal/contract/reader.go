package contract

import (
	"context"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi"
	gethCommon "github.com/ethereum/go-ethereum/common"
	"github.com/publu/l2-lxp-liquidity-reward-sporker/internal/common"
	"github.com/publu/l2-lxp-liquidity-reward-sporker/internal/metrics"
	"github.com/publu/l2-lxp-liquidity-reward-sporker/internal/rpc"
	"github.com/rs/zerolog/log"
)

type IContractReader interface {
	Read(ctx context.Context, contract gethCommon.Address, blockNumber *big.Int, method string, args ...interface{}) ([]interface{}, error)
}

// Reader performs read-only calls by method name against historical state.
type Reader struct {
	rpc     rpc.IRPCClient
	methods map[string]*abi.Method
}

func NewReader(rpcClient rpc.IRPCClient, signatures ...string) (*Reader, error) {
	methods := make(map[string]*abi.Method, len(signatures))
	for _, signature := range signatures {
		method, err := common.ConstructFunctionABI(signature)
		if err != nil {
			return nil, fmt.Errorf("failed to construct ABI for '%s': %w", signature, err)
		}
		methods[method.Name] = method
	}
	return &Reader{rpc: rpcClient, methods: methods}, nil
}

func (r *Reader) Read(ctx context.Context, contract gethCommon.Address, blockNumber *big.Int, method string, args ...interface{}) ([]interface{}, error) {
	metrics.ContractCalls.WithLabelValues(method).Inc()
	values, err := r.read(ctx, contract, blockNumber, method, args)
	if err != nil {
		metrics.ContractCallFailures.WithLabelValues(method).Inc()
		log.Error().Err(err).
			Str("contract", contract.Hex()).
			Str("method", method).
			Str("block", blockNumber.String()).
			Msg("Contract call failed")
		return nil, &ContractCallError{Contract: contract, Method: method, BlockNumber: blockNumber, Err: err}
	}
	return values, nil
}

func (r *Reader) read(ctx context.Context, contract gethCommon.Address, blockNumber *big.Int, name string, args []interface{}) ([]interface{}, error) {
	method, ok := r.methods[name]
	if !ok {
		return nil, fmt.Errorf("method %s is not registered", name)
	}
	packed, err := method.Inputs.Pack(args...)
	if err != nil {
		return nil, fmt.Errorf("failed to pack arguments: %w", err)
	}
	data := append(append([]byte{}, method.ID...), packed...)

	result, err := r.rpc.CallContract(ctx, contract, data, blockNumber)
	if err != nil {
		return nil, err
	}
	// an empty result is what a call to an address without code returns
	if len(result) == 0 && len(method.Outputs) > 0 {
		return nil, fmt.Errorf("empty result, is %s a contract at this block?", contract.Hex())
	}

	values, err := method.Outputs.Unpack(result)
	if err != nil {
		return nil, fmt.Errorf("failed to unpack result: %w", err)
	}
	return values, nil
}

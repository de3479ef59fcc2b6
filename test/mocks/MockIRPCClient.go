package mocks

import (
	"context"
	"math/big"

	gethCommon "github.com/ethereum/go-ethereum/common"
	"github.com/publu/l2-lxp-liquidity-reward-sporker/internal/common"
	"github.com/stretchr/testify/mock"
)

// MockIRPCClient is a mock type for the IRPCClient type
type MockIRPCClient struct {
	mock.Mock
}

func (_m *MockIRPCClient) GetLatestBlock(ctx context.Context) (common.Block, error) {
	ret := _m.Called(ctx)

	var r0 common.Block
	if rf, ok := ret.Get(0).(func(context.Context) common.Block); ok {
		r0 = rf(ctx)
	} else {
		r0 = ret.Get(0).(common.Block)
	}

	return r0, ret.Error(1)
}

func (_m *MockIRPCClient) GetBlockByNumber(ctx context.Context, blockNumber *big.Int) (common.Block, error) {
	ret := _m.Called(ctx, blockNumber)

	var r0 common.Block
	if rf, ok := ret.Get(0).(func(context.Context, *big.Int) common.Block); ok {
		r0 = rf(ctx, blockNumber)
	} else {
		r0 = ret.Get(0).(common.Block)
	}

	return r0, ret.Error(1)
}

func (_m *MockIRPCClient) CallContract(ctx context.Context, to gethCommon.Address, data []byte, blockNumber *big.Int) ([]byte, error) {
	ret := _m.Called(ctx, to, data, blockNumber)

	var r0 []byte
	if rf, ok := ret.Get(0).(func(context.Context, gethCommon.Address, []byte, *big.Int) []byte); ok {
		r0 = rf(ctx, to, data, blockNumber)
	} else if ret.Get(0) != nil {
		r0 = ret.Get(0).([]byte)
	}

	return r0, ret.Error(1)
}

func (_m *MockIRPCClient) GetURL() string {
	ret := _m.Called()
	return ret.String(0)
}

func (_m *MockIRPCClient) Close() {
	_m.Called()
}

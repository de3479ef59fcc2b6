package mocks

import (
	"context"
	"math/big"

	gethCommon "github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/mock"
)

// MockIContractReader is a mock type for the IContractReader type
type MockIContractReader struct {
	mock.Mock
}

func (_m *MockIContractReader) Read(ctx context.Context, contract gethCommon.Address, blockNumber *big.Int, method string, args ...interface{}) ([]interface{}, error) {
	var _ca []interface{}
	_ca = append(_ca, ctx, contract, blockNumber, method)
	_ca = append(_ca, args...)
	ret := _m.Called(_ca...)

	var r0 []interface{}
	if rf, ok := ret.Get(0).(func(context.Context, gethCommon.Address, *big.Int, string, ...interface{}) []interface{}); ok {
		r0 = rf(ctx, contract, blockNumber, method, args...)
	} else if ret.Get(0) != nil {
		r0 = ret.Get(0).([]interface{})
	}

	return r0, ret.Error(1)
}

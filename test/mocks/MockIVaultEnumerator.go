package mocks

import (
	"context"
	"math/big"

	gethCommon "github.com/ethereum/go-ethereum/common"
	"github.com/publu/l2-lxp-liquidity-reward-sporker/internal/common"
	"github.com/stretchr/testify/mock"
)

// MockIVaultEnumerator is a mock type for the IVaultEnumerator type
type MockIVaultEnumerator struct {
	mock.Mock
}

func (_m *MockIVaultEnumerator) Enumerate(ctx context.Context, contract gethCommon.Address, blockNumber *big.Int) ([]common.Vault, error) {
	ret := _m.Called(ctx, contract, blockNumber)

	var r0 []common.Vault
	if rf, ok := ret.Get(0).(func(context.Context, gethCommon.Address, *big.Int) []common.Vault); ok {
		r0 = rf(ctx, contract, blockNumber)
	} else if ret.Get(0) != nil {
		r0 = ret.Get(0).([]common.Vault)
	}

	return r0, ret.Error(1)
}

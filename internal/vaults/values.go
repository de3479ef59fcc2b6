package vaults

import (
	"fmt"
	"math/big"

	gethCommon "github.com/ethereum/go-ethereum/common"
)

func single(values []interface{}) (interface{}, error) {
	if len(values) != 1 {
		return nil, fmt.Errorf("expected 1 return value, got %d", len(values))
	}
	return values[0], nil
}

func asBigInt(values []interface{}) (*big.Int, error) {
	value, err := single(values)
	if err != nil {
		return nil, err
	}
	n, ok := value.(*big.Int)
	if !ok || n == nil {
		return nil, fmt.Errorf("expected uint256, got %T", value)
	}
	return n, nil
}

func asBool(values []interface{}) (bool, error) {
	value, err := single(values)
	if err != nil {
		return false, err
	}
	b, ok := value.(bool)
	if !ok {
		return false, fmt.Errorf("expected bool, got %T", value)
	}
	return b, nil
}

func asAddress(values []interface{}) (gethCommon.Address, error) {
	value, err := single(values)
	if err != nil {
		return gethCommon.Address{}, err
	}
	address, ok := value.(gethCommon.Address)
	if !ok {
		return gethCommon.Address{}, fmt.Errorf("expected address, got %T", value)
	}
	return address, nil
}

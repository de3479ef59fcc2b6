package contract

import (
	"fmt"
	"math/big"

	gethCommon "github.com/ethereum/go-ethereum/common"
)

// ContractCallError is a failed read: revert, ABI mismatch or a node refusing the historical state.
type ContractCallError struct {
	Contract    gethCommon.Address
	Method      string
	BlockNumber *big.Int
	Err         error
}

func (e *ContractCallError) Error() string {
	return fmt.Sprintf("call %s on %s at block %v failed: %v", e.Method, e.Contract.Hex(), e.BlockNumber, e.Err)
}

func (e *ContractCallError) Unwrap() error {
	return e.Err
}

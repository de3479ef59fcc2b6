package common

import (
	"math/big"
	"testing"

	gethCommon "github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConstructFunctionABI_VaultMethods(t *testing.T) {
	tests := []struct {
		signature string
		sig       string
		selector  string
		outputs   int
	}{
		{"totalSupply() returns (uint256)", "totalSupply()", "18160ddd", 1},
		{"ownerOf(uint256 tokenId) view returns (address)", "ownerOf(uint256)", "6352211e", 1},
		{"exists(uint256) returns (bool)", "exists(uint256)", "4f558e79", 1},
		{"balanceOf(address owner)", "balanceOf(address)", "70a08231", 0},
	}

	for _, tt := range tests {
		t.Run(tt.sig, func(t *testing.T) {
			method, err := ConstructFunctionABI(tt.signature)
			require.NoError(t, err)
			assert.Equal(t, tt.sig, method.Sig)
			assert.Equal(t, tt.selector, gethCommon.Bytes2Hex(method.ID))
			assert.Len(t, method.Outputs, tt.outputs)
			assert.Equal(t, "view", method.StateMutability)
		})
	}
}

func TestConstructFunctionABI_PackAndUnpack(t *testing.T) {
	method, err := ConstructFunctionABI("accumulatedVaultDebt(uint256) returns (uint256)")
	require.NoError(t, err)

	packed, err := method.Inputs.Pack(big.NewInt(7))
	require.NoError(t, err)
	assert.Len(t, packed, 32)
	assert.Equal(t, int64(7), new(big.Int).SetBytes(packed).Int64())

	debt, _ := new(big.Int).SetString("2000000000000000000", 10)
	encoded, err := method.Outputs.Pack(debt)
	require.NoError(t, err)

	values, err := method.Outputs.Unpack(encoded)
	require.NoError(t, err)
	require.Len(t, values, 1)
	assert.Equal(t, debt.String(), values[0].(*big.Int).String())
}

func TestConstructFunctionABI_Tuples(t *testing.T) {
	method, err := ConstructFunctionABI("settle((uint256 amount,address to)[] items, bytes memory data, bool ok) returns ((uint256 price,bool stale) quote)")
	require.NoError(t, err)

	assert.Equal(t, "settle((uint256,address)[],bytes,bool)", method.Sig)
	require.Len(t, method.Inputs, 3)
	assert.Equal(t, "items", method.Inputs[0].Name)
	assert.Equal(t, "data", method.Inputs[1].Name)
	require.Len(t, method.Outputs, 1)
	assert.Equal(t, "quote", method.Outputs[0].Name)
	assert.Equal(t, "(uint256,bool)", method.Outputs[0].Type.String())
}

func TestConstructFunctionABI_Invalid(t *testing.T) {
	for _, signature := range []string{
		"",
		"totalSupply",
		"(uint256)",
		"exists(uint256",
		"exists(uint256) returns bool",
		"exists(uint256) payable",
		"exists(notatype)",
		"bad-name(uint256)",
	} {
		_, err := ConstructFunctionABI(signature)
		assert.Error(t, err, signature)
	}
}

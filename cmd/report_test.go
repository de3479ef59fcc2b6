package cmd

import (
	"context"
	"errors"
	"math/big"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ethereum/go-ethereum/accounts/abi"
	gethCommon "github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	gethRpc "github.com/ethereum/go-ethereum/rpc"
	config "github.com/publu/l2-lxp-liquidity-reward-sporker/configs"
	"github.com/publu/l2-lxp-liquidity-reward-sporker/internal/common"
	"github.com/publu/l2-lxp-liquidity-reward-sporker/internal/rpc"
	"github.com/publu/l2-lxp-liquidity-reward-sporker/internal/vaults"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type chainVault struct {
	exists bool
	debt   string
	owner  string
}

// fakeChain answers eth_getBlockByNumber and eth_call for a set of vault contracts.
type fakeChain struct {
	t          *testing.T
	head       rpc.RawBlockHeader
	contracts  map[gethCommon.Address][]chainVault
	revertWith map[gethCommon.Address]string
	methods    map[string]*abi.Method
}

func newFakeChain(t *testing.T) *fakeChain {
	methods := map[string]*abi.Method{}
	for _, signature := range vaults.Signatures {
		method, err := common.ConstructFunctionABI(signature)
		require.NoError(t, err)
		methods[string(method.ID)] = method
	}
	return &fakeChain{
		t:          t,
		head:       rpc.RawBlockHeader{Number: "0x2e68bb", Timestamp: "0x65fc26e1"},
		contracts:  map[gethCommon.Address][]chainVault{},
		revertWith: map[gethCommon.Address]string{},
		methods:    methods,
	}
}

func (f *fakeChain) GetBlockByNumber(tag string, fullTx bool) (*rpc.RawBlockHeader, error) {
	if tag != "latest" && tag != f.head.Number {
		return nil, nil
	}
	return &f.head, nil
}

func (f *fakeChain) Call(args map[string]interface{}, tag string) (hexutil.Bytes, error) {
	to := gethCommon.HexToAddress(args["to"].(string))
	if reason, ok := f.revertWith[to]; ok {
		return nil, errors.New(reason)
	}
	input := gethCommon.FromHex(args["input"].(string))
	method := f.methods[string(input[:4])]
	vaultList := f.contracts[to]

	switch method.Name {
	case "totalSupply":
		return method.Outputs.Pack(big.NewInt(int64(len(vaultList))))
	}

	id := new(big.Int).SetBytes(input[4:36]).Int64()
	vault := vaultList[id-1]
	switch method.Name {
	case "exists":
		return method.Outputs.Pack(vault.exists)
	case "accumulatedVaultDebt":
		debt, _ := new(big.Int).SetString(vault.debt, 10)
		return method.Outputs.Pack(debt)
	default:
		return method.Outputs.Pack(gethCommon.HexToAddress(vault.owner))
	}
}

func (f *fakeChain) serve() string {
	server := gethRpc.NewServer()
	require.NoError(f.t, server.RegisterName("eth", f))
	httpServer := httptest.NewServer(server)
	f.t.Cleanup(func() {
		httpServer.Close()
		server.Stop()
	})
	return httpServer.URL
}

var (
	wethAddress  = "0x00000000000000000000000000000000000000A1"
	btcAddress   = "0x00000000000000000000000000000000000000b2"
	mpethAddress = "0x00000000000000000000000000000000000000C3"
	ownerA       = "0xAAA0000000000000000000000000000000000001"
)

func testConfig(rpcURL string, output string) config.Config {
	return config.Config{
		RPC: config.RPCConfig{URL: rpcURL},
		Vaults: config.VaultsConfig{
			Concurrency: 1,
			Collaterals: []config.CollateralConfig{
				{Name: "WETH", Address: wethAddress},
				{Name: "BTC", Address: btcAddress},
				{Name: "MPETH", Address: mpethAddress},
			},
		},
		Report: config.ReportConfig{TokenSymbol: "MAI", DebtDecimals: 18, Output: output, Format: "csv"},
	}
}

func TestGenerateReport(t *testing.T) {
	chain := newFakeChain(t)
	chain.contracts[gethCommon.HexToAddress(wethAddress)] = []chainVault{
		{exists: true, debt: "2000000000000000000", owner: ownerA},
		{exists: false},
	}
	output := filepath.Join(t.TempDir(), "outputData.csv")

	require.NoError(t, generateReport(context.Background(), testConfig(chain.serve(), output)))

	content, err := os.ReadFile(output)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(content)), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "block_number,timestamp,user_address,token_address,token_balance,token_symbol,usd_price", lines[0])
	assert.Equal(t,
		"3041467,1711023841,"+gethCommon.HexToAddress(ownerA).Hex()+","+gethCommon.HexToAddress(wethAddress).Hex()+",2000000000000000000,MAI,2.00",
		lines[1])
}

func TestGenerateReport_AtBlock(t *testing.T) {
	chain := newFakeChain(t)
	output := filepath.Join(t.TempDir(), "outputData.csv")
	cfg := testConfig(chain.serve(), output)
	cfg.Report.Block = 3041467

	require.NoError(t, generateReport(context.Background(), cfg))

	content, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Equal(t, "block_number,timestamp,user_address,token_address,token_balance,token_symbol,usd_price\n", string(content))
}

func TestGenerateReport_FailureWritesNothing(t *testing.T) {
	chain := newFakeChain(t)
	chain.contracts[gethCommon.HexToAddress(wethAddress)] = []chainVault{
		{exists: true, debt: "1", owner: ownerA},
	}
	chain.revertWith[gethCommon.HexToAddress(btcAddress)] = "execution reverted"
	output := filepath.Join(t.TempDir(), "outputData.csv")

	err := generateReport(context.Background(), testConfig(chain.serve(), output))

	assert.ErrorContains(t, err, "execution reverted")
	assert.NoFileExists(t, output)
}

func TestGenerateReport_UnknownBlock(t *testing.T) {
	chain := newFakeChain(t)
	output := filepath.Join(t.TempDir(), "outputData.csv")
	cfg := testConfig(chain.serve(), output)
	cfg.Report.Block = 42

	err := generateReport(context.Background(), cfg)

	var rpcErr *rpc.RpcError
	assert.ErrorAs(t, err, &rpcErr)
	assert.NoFileExists(t, output)
}

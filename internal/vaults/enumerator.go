package vaults

import (
	"context"
	"fmt"
	"math/big"

	gethCommon "github.com/ethereum/go-ethereum/common"
	"github.com/publu/l2-lxp-liquidity-reward-sporker/internal/common"
	"github.com/publu/l2-lxp-liquidity-reward-sporker/internal/contract"
	"github.com/publu/l2-lxp-liquidity-reward-sporker/internal/metrics"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

// Signatures of the vault NFT methods the enumerator reads.
var Signatures = []string{
	"totalSupply() view returns (uint256)",
	"exists(uint256 vaultID) view returns (bool)",
	"accumulatedVaultDebt(uint256 vaultID) view returns (uint256)",
	"ownerOf(uint256 tokenId) view returns (address)",
}

type IVaultEnumerator interface {
	Enumerate(ctx context.Context, contract gethCommon.Address, blockNumber *big.Int) ([]common.Vault, error)
}

type Enumerator struct {
	reader      contract.IContractReader
	concurrency int
}

// NewEnumerator returns an enumerator reading through reader. A concurrency above 1
// reads that many vault ids at once, the result order is unchanged.
func NewEnumerator(reader contract.IContractReader, concurrency int) *Enumerator {
	if concurrency < 1 {
		concurrency = 1
	}
	return &Enumerator{reader: reader, concurrency: concurrency}
}

// Enumerate returns every existing vault with id in [1, totalSupply] at blockNumber, ordered by id.
func (e *Enumerator) Enumerate(ctx context.Context, contractAddress gethCommon.Address, blockNumber *big.Int) ([]common.Vault, error) {
	supply, err := e.totalSupply(ctx, contractAddress, blockNumber)
	if err != nil {
		return nil, err
	}
	log.Info().Str("contract", contractAddress.Hex()).Str("block", blockNumber.String()).Uint64("totalSupply", supply).Msg("Enumerating vaults")

	var vaults []common.Vault
	if e.concurrency == 1 {
		vaults, err = e.enumerateSequential(ctx, contractAddress, blockNumber, supply)
	} else {
		vaults, err = e.enumerateConcurrent(ctx, contractAddress, blockNumber, supply)
	}
	if err != nil {
		return nil, err
	}

	log.Info().Str("contract", contractAddress.Hex()).Int("vaults", len(vaults)).Msg("Finished enumerating vaults")
	return vaults, nil
}

func (e *Enumerator) totalSupply(ctx context.Context, contractAddress gethCommon.Address, blockNumber *big.Int) (uint64, error) {
	values, err := e.reader.Read(ctx, contractAddress, blockNumber, "totalSupply")
	if err != nil {
		return 0, fmt.Errorf("failed to read total supply of %s: %w", contractAddress.Hex(), err)
	}
	supply, err := asBigInt(values)
	if err != nil {
		return 0, fmt.Errorf("unexpected totalSupply result from %s: %w", contractAddress.Hex(), err)
	}
	if !supply.IsUint64() {
		return 0, fmt.Errorf("total supply %s of %s is out of range", supply, contractAddress.Hex())
	}
	return supply.Uint64(), nil
}

func (e *Enumerator) enumerateSequential(ctx context.Context, contractAddress gethCommon.Address, blockNumber *big.Int, supply uint64) ([]common.Vault, error) {
	vaults := make([]common.Vault, 0)
	for id := uint64(1); id <= supply; id++ {
		vault, exists, err := e.readVault(ctx, contractAddress, blockNumber, id)
		if err != nil {
			return nil, err
		}
		if exists {
			vaults = append(vaults, vault)
		}
	}
	return vaults, nil
}

func (e *Enumerator) enumerateConcurrent(ctx context.Context, contractAddress gethCommon.Address, blockNumber *big.Int, supply uint64) ([]common.Vault, error) {
	// slot i holds vault id i+1, nil when the vault does not exist
	slots := make([]*common.Vault, supply)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.concurrency)
	for id := uint64(1); id <= supply; id++ {
		if gctx.Err() != nil {
			break
		}
		id := id
		g.Go(func() error {
			vault, exists, err := e.readVault(gctx, contractAddress, blockNumber, id)
			if err != nil {
				return err
			}
			if exists {
				slots[id-1] = &vault
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	vaults := make([]common.Vault, 0)
	for _, vault := range slots {
		if vault != nil {
			vaults = append(vaults, *vault)
		}
	}
	return vaults, nil
}

func (e *Enumerator) readVault(ctx context.Context, contractAddress gethCommon.Address, blockNumber *big.Int, id uint64) (common.Vault, bool, error) {
	collateral := contractAddress.Hex()
	vaultID := new(big.Int).SetUint64(id)
	metrics.VaultsScanned.WithLabelValues(collateral).Inc()

	values, err := e.reader.Read(ctx, contractAddress, blockNumber, "exists", vaultID)
	if err != nil {
		return common.Vault{}, false, fmt.Errorf("failed to check vault %d: %w", id, err)
	}
	exists, err := asBool(values)
	if err != nil {
		return common.Vault{}, false, fmt.Errorf("unexpected exists result for vault %d: %w", id, err)
	}
	if !exists {
		log.Debug().Str("contract", collateral).Uint64("vault", id).Msg("Vault does not exist, skipping")
		return common.Vault{}, false, nil
	}

	values, err = e.reader.Read(ctx, contractAddress, blockNumber, "accumulatedVaultDebt", vaultID)
	if err != nil {
		return common.Vault{}, false, fmt.Errorf("failed to read debt of vault %d: %w", id, err)
	}
	debt, err := asBigInt(values)
	if err != nil {
		return common.Vault{}, false, fmt.Errorf("unexpected accumulatedVaultDebt result for vault %d: %w", id, err)
	}

	values, err = e.reader.Read(ctx, contractAddress, blockNumber, "ownerOf", vaultID)
	if err != nil {
		return common.Vault{}, false, fmt.Errorf("failed to read owner of vault %d: %w", id, err)
	}
	owner, err := asAddress(values)
	if err != nil {
		return common.Vault{}, false, fmt.Errorf("unexpected ownerOf result for vault %d: %w", id, err)
	}

	metrics.VaultsFound.WithLabelValues(collateral).Inc()
	return common.Vault{ID: id, Debt: debt, Owner: owner}, true, nil
}

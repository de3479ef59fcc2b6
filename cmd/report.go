package cmd

import (
	"context"
	"fmt"
	"math/big"
	"os"
	"os/signal"
	"syscall"
	"time"

	config "github.com/publu/l2-lxp-liquidity-reward-sporker/configs"
	"github.com/publu/l2-lxp-liquidity-reward-sporker/internal/common"
	"github.com/publu/l2-lxp-liquidity-reward-sporker/internal/contract"
	"github.com/publu/l2-lxp-liquidity-reward-sporker/internal/libs"
	"github.com/publu/l2-lxp-liquidity-reward-sporker/internal/metrics"
	"github.com/publu/l2-lxp-liquidity-reward-sporker/internal/report"
	"github.com/publu/l2-lxp-liquidity-reward-sporker/internal/rpc"
	"github.com/publu/l2-lxp-liquidity-reward-sporker/internal/vaults"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func RunReport(cmd *cobra.Command, args []string) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := config.Cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("Invalid configuration")
	}

	start := time.Now()
	err := generateReport(ctx, config.Cfg)
	metrics.ReportDurationSeconds.Set(time.Since(start).Seconds())

	if config.Cfg.Metrics.PushgatewayURL != "" {
		if pushErr := metrics.Push(config.Cfg.Metrics.PushgatewayURL, config.Cfg.Metrics.Job); pushErr != nil {
			log.Error().Err(pushErr).Msg("Failed to push metrics")
		}
	}

	if err != nil {
		stop()
		log.Fatal().Err(err).Msg("Report generation failed, no report written")
	}
	log.Info().Dur("took", time.Since(start)).Msg("Report generation finished")
}

func generateReport(ctx context.Context, cfg config.Config) error {
	client, err := rpc.Initialize(ctx, cfg.RPC.URL)
	if err != nil {
		return err
	}
	defer client.Close()

	block, err := resolveBlock(ctx, client, cfg.Report.Block)
	if err != nil {
		return err
	}
	log.Info().Str("block", block.Number.String()).Uint64("timestamp", block.Timestamp).Msg("Taking vault snapshot")

	reader, err := contract.NewReader(client, vaults.Signatures...)
	if err != nil {
		return err
	}
	collaterals, err := report.CollateralsFromConfig(cfg.Vaults.Collaterals)
	if err != nil {
		return err
	}
	assembler := report.NewAssembler(vaults.NewEnumerator(reader, cfg.Vaults.Concurrency), collaterals, cfg.Report.TokenSymbol, cfg.Report.DebtDecimals)

	rows, err := assembler.BuildReport(ctx, block)
	if err != nil {
		return err
	}
	metrics.ReportRows.Set(float64(len(rows)))
	metrics.ReportBlock.Set(float64(block.Number.Uint64()))

	if err := report.SaveReport(cfg.Report.Output, cfg.Report.Format, rows); err != nil {
		return err
	}

	if cfg.S3.Bucket != "" {
		uploader, err := libs.NewS3Uploader(ctx, cfg.S3)
		if err != nil {
			return err
		}
		if _, err := uploader.UploadReport(ctx, cfg.Report.Output, block.Number.Uint64()); err != nil {
			return err
		}
	}
	return nil
}

// resolveBlock returns the chain head when blockNumber is 0.
func resolveBlock(ctx context.Context, client rpc.IRPCClient, blockNumber uint64) (common.Block, error) {
	if blockNumber == 0 {
		block, err := client.GetLatestBlock(ctx)
		if err != nil {
			return common.Block{}, fmt.Errorf("failed to resolve latest block: %w", err)
		}
		return block, nil
	}
	block, err := client.GetBlockByNumber(ctx, new(big.Int).SetUint64(blockNumber))
	if err != nil {
		return common.Block{}, fmt.Errorf("failed to resolve block %d: %w", blockNumber, err)
	}
	return block, nil
}

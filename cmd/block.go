package cmd

import (
	"fmt"
	"time"

	config "github.com/publu/l2-lxp-liquidity-reward-sporker/configs"
	"github.com/publu/l2-lxp-liquidity-reward-sporker/internal/rpc"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var blockCmd = &cobra.Command{
	Use:   "block",
	Short: "Print the block a report would be taken at",
	Long:  "Resolves --block (or the latest block) against the RPC and prints its number and timestamp.",
	Run: func(cmd *cobra.Command, args []string) {
		RunBlock(cmd, args)
	},
}

func RunBlock(cmd *cobra.Command, args []string) {
	client, err := rpc.Initialize(cmd.Context(), config.Cfg.RPC.URL)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize RPC")
	}
	defer client.Close()

	block, err := resolveBlock(cmd.Context(), client, config.Cfg.Report.Block)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to resolve block")
	}
	fmt.Fprintf(cmd.OutOrStdout(), "block_number=%s timestamp=%d (%s)\n", block.Number, block.Timestamp, block.Time().Format(time.RFC3339))
}

package cmd

import (
	"fmt"
	"os"

	config "github.com/publu/l2-lxp-liquidity-reward-sporker/configs"
	"github.com/publu/l2-lxp-liquidity-reward-sporker/internal/env"
	customLogger "github.com/publu/l2-lxp-liquidity-reward-sporker/internal/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   "sporker",
		Short: "Snapshot vault debt at a block into a report",
		Long:  "Enumerates the vaults of every configured collateral contract at a block and writes each owner's outstanding debt to a CSV or Parquet report.",
		Run: func(cmd *cobra.Command, args []string) {
			RunReport(cmd, args)
		},
	}
)

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./configs/config.yml)")
	rootCmd.PersistentFlags().String("rpc-url", "", "RPC Url of the chain the vaults live on")
	rootCmd.PersistentFlags().String("log-level", "", "Log level to use for the application")
	rootCmd.PersistentFlags().Bool("log-prettify", false, "Whether to prettify the log output")
	rootCmd.PersistentFlags().Uint64("block", 0, "Block to take the snapshot at, 0 for the latest block")
	rootCmd.Flags().Int("concurrency", 1, "How many vault ids to read at once")
	rootCmd.Flags().String("output", "", "Path of the report file")
	rootCmd.Flags().String("format", "", "Report format, csv or parquet")
	rootCmd.Flags().String("s3-bucket", "", "Upload the report to this S3 bucket")
	rootCmd.Flags().String("metrics-pushgateway-url", "", "Push run metrics to this Prometheus Pushgateway")
	viper.BindPFlag("rpc.url", rootCmd.PersistentFlags().Lookup("rpc-url"))
	viper.BindPFlag("log.level", rootCmd.PersistentFlags().Lookup("log-level"))
	viper.BindPFlag("log.prettify", rootCmd.PersistentFlags().Lookup("log-prettify"))
	viper.BindPFlag("report.block", rootCmd.PersistentFlags().Lookup("block"))
	viper.BindPFlag("vaults.concurrency", rootCmd.Flags().Lookup("concurrency"))
	viper.BindPFlag("report.output", rootCmd.Flags().Lookup("output"))
	viper.BindPFlag("report.format", rootCmd.Flags().Lookup("format"))
	viper.BindPFlag("s3.bucket", rootCmd.Flags().Lookup("s3-bucket"))
	viper.BindPFlag("metrics.pushgatewayUrl", rootCmd.Flags().Lookup("metrics-pushgateway-url"))
	rootCmd.AddCommand(blockCmd)
}

func initConfig() {
	env.Load()
	if err := config.LoadConfig(cfgFile); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	customLogger.InitLogger()
}

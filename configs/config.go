package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

type LogConfig struct {
	Level    string `mapstructure:"level"`
	Prettify bool   `mapstructure:"prettify"`
}

type RPCConfig struct {
	URL string `mapstructure:"url"`
}

type CollateralConfig struct {
	Name    string `mapstructure:"name"`
	Address string `mapstructure:"address"`
}

type VaultsConfig struct {
	Collaterals []CollateralConfig `mapstructure:"collaterals"`
	Concurrency int                `mapstructure:"concurrency"`
}

type ReportConfig struct {
	Block        uint64 `mapstructure:"block"`
	TokenSymbol  string `mapstructure:"tokenSymbol"`
	DebtDecimals int32  `mapstructure:"debtDecimals"`
	Output       string `mapstructure:"output"`
	Format       string `mapstructure:"format"`
}

type S3Config struct {
	Bucket          string `mapstructure:"bucket"`
	Region          string `mapstructure:"region"`
	Prefix          string `mapstructure:"prefix"`
	Endpoint        string `mapstructure:"endpoint"`
	AccessKeyID     string `mapstructure:"accessKeyId"`
	SecretAccessKey string `mapstructure:"secretAccessKey"`
}

type MetricsConfig struct {
	PushgatewayURL string `mapstructure:"pushgatewayUrl"`
	Job            string `mapstructure:"job"`
}

type Config struct {
	RPC     RPCConfig     `mapstructure:"rpc"`
	Log     LogConfig     `mapstructure:"log"`
	Vaults  VaultsConfig  `mapstructure:"vaults"`
	Report  ReportConfig  `mapstructure:"report"`
	S3      S3Config      `mapstructure:"s3"`
	Metrics MetricsConfig `mapstructure:"metrics"`
}

var Cfg Config

const (
	DefaultRPCURL       = "https://rpc.linea.build"
	DefaultTokenSymbol  = "MAI"
	DefaultDebtDecimals = 18
	DefaultOutput       = "outputData.csv"
	DefaultFormat       = "csv"
	DefaultMetricsJob   = "vault_debt_report"
)

func setDefaults() {
	viper.SetDefault("rpc.url", DefaultRPCURL)
	viper.SetDefault("log.level", "info")
	viper.SetDefault("vaults.concurrency", 1)
	viper.SetDefault("report.tokenSymbol", DefaultTokenSymbol)
	viper.SetDefault("report.debtDecimals", DefaultDebtDecimals)
	viper.SetDefault("report.output", DefaultOutput)
	viper.SetDefault("report.format", DefaultFormat)
	viper.SetDefault("metrics.job", DefaultMetricsJob)
	// keys without a default are invisible to AutomaticEnv when absent from the config file
	viper.SetDefault("report.block", 0)
	viper.SetDefault("log.prettify", false)
	viper.SetDefault("metrics.pushgatewayUrl", "")
	for _, key := range []string{"bucket", "region", "prefix", "endpoint", "accessKeyId", "secretAccessKey"} {
		viper.SetDefault("s3."+key, "")
	}
}

func LoadConfig(cfgFile string) error {
	setDefaults()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
		if err := viper.ReadInConfig(); err != nil {
			return fmt.Errorf("error reading config file, %s", err)
		}
	} else {
		viper.SetConfigName("config")
		viper.AddConfigPath("./configs")

		if err := viper.ReadInConfig(); err != nil && !isNotFound(err) {
			return fmt.Errorf("error reading config file, %s", err)
		}

		viper.SetConfigName("secrets")
		if err := viper.MergeInConfig(); err != nil && !isNotFound(err) {
			return fmt.Errorf("error loading secrets file: %v", err)
		}
	}

	// sets e.g. RPC_URL to rpc.url
	replacer := strings.NewReplacer(".", "_")
	viper.SetEnvKeyReplacer(replacer)

	viper.AutomaticEnv()

	err := viper.Unmarshal(&Cfg)
	if err != nil {
		return fmt.Errorf("error unmarshalling config: %v", err)
	}

	return nil
}

// Validate checks the settings a report run cannot work without.
func (c *Config) Validate() error {
	if c.RPC.URL == "" {
		return errors.New("rpc.url is not set")
	}
	if len(c.Vaults.Collaterals) == 0 {
		return errors.New("no collateral contracts configured under vaults.collaterals")
	}
	for i, collateral := range c.Vaults.Collaterals {
		if collateral.Address == "" {
			return fmt.Errorf("collateral %d (%s) has no address", i, collateral.Name)
		}
	}
	if c.Report.DebtDecimals < 0 {
		return fmt.Errorf("report.debtDecimals must not be negative, got %d", c.Report.DebtDecimals)
	}
	switch c.Report.Format {
	case "csv", "parquet":
	default:
		return fmt.Errorf("unsupported report.format %q", c.Report.Format)
	}
	return nil
}

func isNotFound(err error) bool {
	var notFound viper.ConfigFileNotFoundError
	return errors.As(err, &notFound)
}

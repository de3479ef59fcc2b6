package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/push"
)

// Contract Reader Metrics
var (
	ContractCalls = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "contract_reader_calls_total",
		Help: "The total number of read-only contract calls issued, by method",
	}, []string{"method"})

	ContractCallFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "contract_reader_call_failures_total",
		Help: "The total number of failed contract calls, by method",
	}, []string{"method"})
)

// Vault Enumerator Metrics
var (
	VaultsScanned = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "vault_enumerator_ids_scanned_total",
		Help: "The number of vault ids checked for existence, by collateral contract",
	}, []string{"collateral"})

	VaultsFound = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "vault_enumerator_vaults_found_total",
		Help: "The number of existing vaults read, by collateral contract",
	}, []string{"collateral"})
)

// Report Metrics
var (
	ReportRows = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "report_rows",
		Help: "The number of rows in the last generated report",
	})

	ReportBlock = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "report_block_number",
		Help: "The block number the last report was taken at",
	})

	ReportDurationSeconds = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "report_duration_seconds",
		Help: "How long the last report took to build and write",
	})
)

// Push sends the default registry to a Pushgateway. Runs are one-shot so nothing scrapes us.
func Push(url string, job string) error {
	if err := push.New(url, job).Gatherer(prometheus.DefaultGatherer).Push(); err != nil {
		return fmt.Errorf("failed to push metrics to %s: %w", url, err)
	}
	return nil
}

package telemetry

import "github.com/prometheus/client_golang/prometheus"

var (
	// finsdk_discovery_cycles_total
	//
	// counter that measures the number of completed discovery cycles
	//
	// Has the following labels:
	// * source - where the discovered contracts came from
	DiscoveryCyclesMetricName = "finsdk_discovery_cycles_total"

	// finsdk_discovery_indexer_errors_total
	//
	// counter that measures the number of indexed discovery API failures
	//
	// Has the following labels:
	// * class - the discovery error class
	IndexerErrorsMetricName = "finsdk_discovery_indexer_errors_total"

	// finsdk_discovery_chain_scan_skipped_total
	//
	// counter that measures the number of contract instances skipped during a chain scan
	ChainScanSkippedMetricName = "finsdk_discovery_chain_scan_skipped_total"

	// finsdk_discovery_contracts
	//
	// gauge that tracks the number of contracts in the discovery cache
	DiscoveredContractsMetricName = "finsdk_discovery_contracts"

	DiscoveryCyclesCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: DiscoveryCyclesMetricName,
			Help: "counter that measures the number of completed discovery cycles",
		},
		[]string{"source"},
	)

	IndexerErrorsCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: IndexerErrorsMetricName,
			Help: "counter that measures the number of indexed discovery API failures",
		},
		[]string{"class"},
	)

	ChainScanSkippedCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: ChainScanSkippedMetricName,
			Help: "counter that measures the number of contract instances skipped during a chain scan",
		},
	)

	DiscoveredContractsGauge = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: DiscoveredContractsMetricName,
			Help: "gauge that tracks the number of contracts in the discovery cache",
		},
	)
)

func init() {
	prometheus.MustRegister(DiscoveryCyclesCounter)
	prometheus.MustRegister(IndexerErrorsCounter)
	prometheus.MustRegister(ChainScanSkippedCounter)
	prometheus.MustRegister(DiscoveredContractsGauge)
}

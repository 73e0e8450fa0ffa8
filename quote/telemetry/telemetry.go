package telemetry

import "github.com/prometheus/client_golang/prometheus"

var (
	// finsdk_quote_cache_hits_total
	//
	// counter that measures the number of quotes served from the quote cache
	//
	// Has the following labels:
	// * stale - true if the cached quote was older than the staleness warning threshold
	QuoteCacheHitsMetricName = "finsdk_quote_cache_hits_total"

	// finsdk_quote_cache_misses_total
	//
	// counter that measures the number of quotes that had to be fetched from the chain
	QuoteCacheMissesMetricName = "finsdk_quote_cache_misses_total"

	// finsdk_quote_errors_total
	//
	// counter that measures the number of failed quote requests
	//
	// Has the following labels:
	// * kind - the normalized error kind
	QuoteErrorsMetricName = "finsdk_quote_errors_total"

	// finsdk_quote_swaps_submitted_total
	//
	// counter that measures the number of swap transactions submitted
	SwapsSubmittedMetricName = "finsdk_quote_swaps_submitted_total"

	// finsdk_quote_fetch_duration_seconds
	//
	// histogram of the time taken to simulate a swap and fetch the orderbook for a fresh quote
	QuoteFetchDurationMetricName = "finsdk_quote_fetch_duration_seconds"

	QuoteCacheHitsCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: QuoteCacheHitsMetricName,
			Help: "counter that measures the number of quotes served from the quote cache",
		},
		[]string{"stale"},
	)

	QuoteCacheMissesCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: QuoteCacheMissesMetricName,
			Help: "counter that measures the number of quotes that had to be fetched from the chain",
		},
	)

	QuoteErrorsCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: QuoteErrorsMetricName,
			Help: "counter that measures the number of failed quote requests",
		},
		[]string{"kind"},
	)

	SwapsSubmittedCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: SwapsSubmittedMetricName,
			Help: "counter that measures the number of swap transactions submitted",
		},
	)

	QuoteFetchDurationHistogram = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    QuoteFetchDurationMetricName,
			Help:    "time taken to simulate a swap and fetch the orderbook for a fresh quote",
			Buckets: prometheus.DefBuckets,
		},
	)
)

func init() {
	prometheus.MustRegister(QuoteCacheHitsCounter)
	prometheus.MustRegister(QuoteCacheMissesCounter)
	prometheus.MustRegister(QuoteErrorsCounter)
	prometheus.MustRegister(SwapsSubmittedCounter)
	prometheus.MustRegister(QuoteFetchDurationHistogram)
}

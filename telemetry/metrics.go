package telemetry

import (
	"github.com/armon/go-metrics"
)

const relayerMetricsPrefix = "relayer"

func UpdateValsetSubmitted(nonce uint64) {
	metrics.SetGauge([]string{relayerMetricsPrefix, "valset_submitted"}, float32(nonce))
}

func UpdateBatchSubmitted(tokenContract string, nonce uint64) {
	metrics.SetGauge([]string{relayerMetricsPrefix, "batch_submitted", tokenContract}, float32(nonce))
}

// IncrSubmissionCounter counts transactions by kind (valset, batch) and final status
func IncrSubmissionCounter(kind, status string) {
	metrics.IncrCounter([]string{relayerMetricsPrefix, "submissions", kind, status}, 1)
}

func IncrRaceLostCounter(kind string) {
	metrics.IncrCounter([]string{relayerMetricsPrefix, "race_lost", kind}, 1)
}

func IncrPassFailedCounter(kind string) {
	metrics.IncrCounter([]string{relayerMetricsPrefix, "pass_failed", kind}, 1)
}

func UpdatePendingBatches(cnt int) {
	metrics.SetGauge([]string{relayerMetricsPrefix, "pending_batches"}, float32(cnt))
}

package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	KafkaMessagesConsumed = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kafka_messages_consumed_total",
			Help: "Number of messages fetched from Kafka",
		},
		[]string{"topic"},
	)
	KafkaMessagesProcessed = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kafka_messages_processed_total",
			Help: "Number of messages processed successfully",
		},
		[]string{"topic"},
	)
	KafkaMessagesFailed = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kafka_messages_failed_total",
			Help: "Number of failed processing attempts",
		},
		[]string{"topic"},
	)
	KafkaMessagesRetried = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kafka_messages_retried_total",
			Help: "Number of in-place retries of the same message after a temporary failure",
		},
		[]string{"topic"},
	)
)

var (
	CacheOps = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_operations_total",
			Help: "Quote cache operations",
		},
		[]string{"op"}, // hit|miss|evicted|expired|invalidated
	)
	CacheSize = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "cache_size",
			Help: "Number of quotes currently in cache",
		},
	)
)

// Метрики проверки совместимости.
var (
	CompatChecks = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "compat_checks_total",
			Help: "Compatibility checks by result",
		},
		[]string{"result"}, // compatible|incompatible
	)
	CompatProblems = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "compat_problems_total",
			Help: "Problems reported by compatibility checks",
		},
		[]string{"type", "severity"},
	)
	CompatCheckDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "compat_check_duration_seconds",
			Help:    "Duration of a quote compatibility check including quote loading",
			Buckets: prometheus.DefBuckets,
		},
	)
)

var registerOnce sync.Once

// MustRegister - регистрирует метрики в глобальном реестре. Повторный вызов ничего не делает.
func MustRegister() {
	registerOnce.Do(func() {
		prometheus.MustRegister(
			KafkaMessagesConsumed, KafkaMessagesProcessed, KafkaMessagesFailed, KafkaMessagesRetried,
			CacheOps, CacheSize,
			CompatChecks, CompatProblems, CompatCheckDuration,
		)
	})
}

// ObserveReport - учитывает результат одной проверки.
func ObserveReport(compatible bool, problems ...ProblemLabel) {
	result := "compatible"
	if !compatible {
		result = "incompatible"
	}
	CompatChecks.WithLabelValues(result).Inc()
	for _, p := range problems {
		CompatProblems.WithLabelValues(p.Type, p.Severity).Inc()
	}
}

// ProblemLabel - метки одной найденной проблемы.
type ProblemLabel struct {
	Type     string
	Severity string
}

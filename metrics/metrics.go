// Package metrics instruments the list server with prometheus.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

const metricNamespace = "dlist"

// Counters.
var (
	//nolint:gochecknoglobals
	pushFrontTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name:      "push_front_total",
		Help:      "Total number of values pushed at the front.",
		Namespace: metricNamespace,
	})

	//nolint:gochecknoglobals
	pushBackTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name:      "push_back_total",
		Help:      "Total number of values pushed at the back.",
		Namespace: metricNamespace,
	})

	//nolint:gochecknoglobals
	popFrontTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name:      "pop_front_total",
		Help:      "Total number of values popped from the front.",
		Namespace: metricNamespace,
	})

	//nolint:gochecknoglobals
	popBackTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name:      "pop_back_total",
		Help:      "Total number of values popped from the back.",
		Namespace: metricNamespace,
	})

	//nolint:gochecknoglobals
	underflowTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name:      "underflow_total",
		Help:      "Total number of removals attempted on an empty list.",
		Namespace: metricNamespace,
	})
)

// Gauges.
var (
	//nolint:gochecknoglobals
	listLength = prometheus.NewGauge(prometheus.GaugeOpts{
		Name:      "length",
		Help:      "Current number of values in the list.",
		Namespace: metricNamespace,
	})
)

// Init initializes and registers the metrics.
func Init(reg prometheus.Registerer) {
	reg.MustRegister(collectors.NewGoCollector())
	reg.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{
		Namespace: metricNamespace,
	}))

	reg.MustRegister(
		pushFrontTotal,
		pushBackTotal,
		popFrontTotal,
		popBackTotal,
		underflowTotal,

		listLength,
	)
}

// IncPushFront increments the front-push counter.
func IncPushFront() {
	pushFrontTotal.Inc()
}

// IncPushBack increments the back-push counter.
func IncPushBack() {
	pushBackTotal.Inc()
}

// IncPopFront increments the front-pop counter.
func IncPopFront() {
	popFrontTotal.Inc()
}

// IncPopBack increments the back-pop counter.
func IncPopBack() {
	popBackTotal.Inc()
}

// IncUnderflow increments the underflow counter.
func IncUnderflow() {
	underflowTotal.Inc()
}

// SetListLength sets the list length gauge.
func SetListLength(n int) {
	listLength.Set(float64(n))
}

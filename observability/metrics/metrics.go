// Package metrics exposes Prometheus counters for the audit pipeline.
package metrics

import (
	"github.com/code19m/errx"
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "queuebook"

// Outcome labels of the audit counters.
const (
	OutcomeEnqueued      = "enqueued"
	OutcomeEnqueueFailed = "enqueue_failed"
	OutcomePublished     = "published"
	OutcomePublishFailed = "publish_failed"
	OutcomePersisted     = "persisted"
	OutcomeDropped       = "dropped"
	OutcomeDeadLettered  = "dead_lettered"
)

// Audit counts audit and error records by pipeline stage outcome.
type Audit struct {
	records *prometheus.CounterVec
}

// NewAudit creates the counters and registers them with reg. A nil reg skips registration.
func NewAudit(reg prometheus.Registerer) (*Audit, error) {
	records := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "audit",
		Name:      "records_total",
		Help:      "Audit pipeline records by collection and outcome.",
	}, []string{"collection", "outcome"})

	if reg != nil {
		if err := reg.Register(records); err != nil {
			return nil, errx.Wrap(err)
		}
	}

	return &Audit{records: records}, nil
}

// NewNopAudit returns counters that are never registered.
func NewNopAudit() *Audit {
	a, _ := NewAudit(nil) //nolint:errcheck // nil registerer cannot fail
	return a
}

// Inc increments the counter of collection and outcome.
func (a *Audit) Inc(collection, outcome string) {
	if a == nil {
		return
	}
	a.records.WithLabelValues(collection, outcome).Inc()
}

// Collector returns the underlying collector, mainly for tests.
func (a *Audit) Collector() prometheus.Collector {
	return a.records
}

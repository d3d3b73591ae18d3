// Package metrics records the handful of table-level signals the spec
// permits off the hot path: current size and growth counts per variant.
// Nothing here is consulted by Insert/Delete/Get/Contains themselves; it is
// observed only, matching the "no logs on the hot path" rule in spec.md §7.
package metrics

import "github.com/prometheus/client_golang/prometheus"

// Recorder wraps the prometheus vectors every table variant reports into.
// The zero value records nothing (it is what Noop returns); construct one
// with New to record.
type Recorder struct {
	size   *prometheus.GaugeVec
	growth *prometheus.CounterVec
}

// New creates a Recorder and registers its vectors with reg. Passing nil
// uses prometheus.DefaultRegisterer.
func New(reg prometheus.Registerer) *Recorder {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	r := &Recorder{
		size: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "condict",
			Name:      "table_size",
			Help:      "Current number of entries in a dictionary table instance.",
		}, []string{"variant"}),
		growth: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "condict",
			Name:      "table_growth_total",
			Help:      "Number of times a dictionary table instance has doubled its bucket array.",
		}, []string{"variant"}),
	}
	reg.MustRegister(r.size, r.growth)
	return r
}

// Noop returns a Recorder that records nothing and touches no registry;
// it is the default for tables constructed without a WithMetrics option.
func Noop() *Recorder {
	return &Recorder{}
}

// SetSize reports the current entry count for a variant ("coarse", "fine",
// "lockfree").
func (r *Recorder) SetSize(variant string, size int) {
	if r == nil || r.size == nil {
		return
	}
	r.size.WithLabelValues(variant).Set(float64(size))
}

// IncGrowth records that a variant's bucket array just doubled.
func (r *Recorder) IncGrowth(variant string) {
	if r == nil || r.growth == nil {
		return
	}
	r.growth.WithLabelValues(variant).Inc()
}

// Package metrics exposes animation throughput counters in the Prometheus text format.
package metrics

import (
	"io"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
)

// DefaultRegistry holds every animation metric.
var DefaultRegistry = prometheus.NewRegistry()

func init() {
	DefaultRegistry.MustRegister(
		UpdatesTotal, UpdateDuration,
		CrossFadeCommitsTotal, Animators,
	)
}

// UpdatesTotal counts animator updates per scene.
var UpdatesTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "oxy_anim_updates_total",
		Help: "Animator updates performed",
	},
	[]string{"scene"},
)

// UpdateDuration observes the wall time of one scene update, all animators included.
var UpdateDuration = prometheus.NewHistogramVec(
	prometheus.HistogramOpts{
		Name:    "oxy_anim_update_duration_seconds",
		Help:    "Scene update duration in seconds",
		Buckets: []float64{0.0001, 0.00025, 0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05},
	},
	[]string{"scene"},
)

// CrossFadeCommitsTotal counts cross-fades that completed and promoted their destination state.
var CrossFadeCommitsTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "oxy_anim_crossfade_commits_total",
		Help: "Cross-fades committed",
	},
	[]string{"scene"},
)

// Animators reports the number of animators registered per scene.
var Animators = prometheus.NewGaugeVec(
	prometheus.GaugeOpts{
		Name: "oxy_anim_animators",
		Help: "Animators registered in a scene",
	},
	[]string{"scene"},
)

// WritePrometheus writes every metric in DefaultRegistry to w in the Prometheus text format.
//
// Parameters:
//   - w: the destination writer
//
// Returns:
//   - error: error if gathering or encoding fails
func WritePrometheus(w io.Writer) error {
	families, err := DefaultRegistry.Gather()
	if err != nil {
		return err
	}
	enc := expfmt.NewEncoder(w, expfmt.FmtText)
	for _, mf := range families {
		if err := enc.Encode(mf); err != nil {
			return err
		}
	}
	return nil
}

package observability

import (
	"time"

	"github.com/aretw0/absm/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
)

// Collector records machine activity as Prometheus metrics.
type Collector struct {
	stateChanges      *prometheus.CounterVec
	transitions       *prometheus.CounterVec
	activeTransitions *prometheus.GaugeVec
	frames            prometheus.Counter
	frameDuration     prometheus.Histogram
}

// NewCollector creates the metrics and registers them with reg.
// A nil reg leaves registration to the caller.
func NewCollector(reg prometheus.Registerer) (*Collector, error) {
	c := &Collector{
		stateChanges: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "absm_state_changes_total",
				Help: "Total number of completed transitions, by destination state",
			},
			[]string{"layer", "state"},
		),
		transitions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "absm_transitions_started_total",
				Help: "Total number of transitions started",
			},
			[]string{"layer", "transition"},
		),
		activeTransitions: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "absm_transition_active",
				Help: "Whether a layer is currently transitioning (1) or settled (0)",
			},
			[]string{"layer"},
		),
		frames: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "absm_frames_total",
			Help: "Total number of evaluated frames",
		}),
		frameDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "absm_frame_duration_seconds",
			Help:    "Wall time spent evaluating a frame",
			Buckets: prometheus.ExponentialBuckets(0.00001, 4, 10),
		}),
	}

	if reg != nil {
		for _, m := range c.collectors() {
			if err := reg.Register(m); err != nil {
				return nil, err
			}
		}
	}
	return c, nil
}

func (c *Collector) collectors() []prometheus.Collector {
	return []prometheus.Collector{c.stateChanges, c.transitions, c.activeTransitions, c.frames, c.frameDuration}
}

// Describe implements prometheus.Collector.
func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	for _, m := range c.collectors() {
		m.Describe(ch)
	}
}

// Collect implements prometheus.Collector.
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	for _, m := range c.collectors() {
		m.Collect(ch)
	}
}

// Hooks returns lifecycle hooks that feed the collector.
func (c *Collector) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnActiveStateChanged: func(e *domain.StateEvent) {
			c.stateChanges.WithLabelValues(e.Layer, e.State).Inc()
		},
		OnTransitionChanged: func(e *domain.TransitionEvent) {
			if e.Transition == "" {
				c.activeTransitions.WithLabelValues(e.Layer).Set(0)
				return
			}
			c.transitions.WithLabelValues(e.Layer, e.Transition).Inc()
			c.activeTransitions.WithLabelValues(e.Layer).Set(1)
		},
	}
}

// ObserveFrame records one evaluated frame that took d.
func (c *Collector) ObserveFrame(d time.Duration) {
	c.frames.Inc()
	c.frameDuration.Observe(d.Seconds())
}

package metrics

import (
	"fmt"

	promclient "github.com/prometheus/client_golang/prometheus"
)

// Metrics exports fan-out counters to Prometheus.
type Metrics struct {
	signalsEmitted    *promclient.CounterVec
	subscribersActive promclient.Gauge
}

// New registers the signal and subscriber collectors plus a gauge that
// tracks the classroom count via classrooms. A nil registerer falls back to
// the default one.
func New(namespace string, reg promclient.Registerer, classrooms func() float64) (*Metrics, error) {
	if namespace == "" {
		namespace = "handraise"
	}
	if reg == nil {
		reg = promclient.DefaultRegisterer
	}

	m := &Metrics{
		signalsEmitted: promclient.NewCounterVec(promclient.CounterOpts{
			Namespace: namespace,
			Name:      "signals_emitted_total",
			Help:      "Count of signals emitted, per classroom.",
		}, []string{"classroom"}),
		subscribersActive: promclient.NewGauge(promclient.GaugeOpts{
			Namespace: namespace,
			Name:      "subscribers_active",
			Help:      "Number of observer streams currently connected.",
		}),
	}

	if err := reg.Register(m.signalsEmitted); err != nil {
		if are, ok := err.(promclient.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(*promclient.CounterVec); ok {
				m.signalsEmitted = existing
			} else {
				return nil, fmt.Errorf("register signals counter: %w", err)
			}
		} else {
			return nil, fmt.Errorf("register signals counter: %w", err)
		}
	}
	if err := reg.Register(m.subscribersActive); err != nil {
		if are, ok := err.(promclient.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(promclient.Gauge); ok {
				m.subscribersActive = existing
			} else {
				return nil, fmt.Errorf("register subscribers gauge: %w", err)
			}
		} else {
			return nil, fmt.Errorf("register subscribers gauge: %w", err)
		}
	}
	if classrooms != nil {
		gauge := promclient.NewGaugeFunc(promclient.GaugeOpts{
			Namespace: namespace,
			Name:      "classrooms_total",
			Help:      "Number of registered classrooms.",
		}, classrooms)
		if err := reg.Register(gauge); err != nil {
			if _, ok := err.(promclient.AlreadyRegisteredError); !ok {
				return nil, fmt.Errorf("register classrooms gauge: %w", err)
			}
		}
	}

	return m, nil
}

// SignalEmitted records one emitted signal for a classroom.
func (m *Metrics) SignalEmitted(classroomID string) {
	if m == nil {
		return
	}
	m.signalsEmitted.WithLabelValues(classroomID).Inc()
}

// ObserverConnected records an observer stream opening.
func (m *Metrics) ObserverConnected() {
	if m == nil {
		return
	}
	m.subscribersActive.Inc()
}

// ObserverDisconnected records an observer stream closing.
func (m *Metrics) ObserverDisconnected() {
	if m == nil {
		return
	}
	m.subscribersActive.Dec()
}

// SPDX-License-Identifier: MIT

package telemetry

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"

	"github.com/katalvlaran/dynprog/induction"
)

// ErrRegistrationFailed is returned when a collector cannot be registered.
var ErrRegistrationFailed = errors.New("telemetry: metric registration failed")

// DefaultNamespace prefixes every metric name.
const DefaultNamespace = "dynprog"

// Metrics holds the solver collectors. One Metrics may serve many solvers;
// each gets its own labelled Observer.
type Metrics struct {
	stages      *prometheus.CounterVec
	evaluations *prometheus.CounterVec
	states      *prometheus.CounterVec
	duration    *prometheus.HistogramVec
}

// NewMetrics creates the collectors under namespace ("" means
// DefaultNamespace) and registers them on reg. Collectors already present
// on reg are reused, so two Metrics on one registry share series.
//
// Errors: ErrRegistrationFailed.
func NewMetrics(reg prometheus.Registerer, namespace string) (*Metrics, error) {
	if namespace == "" {
		namespace = DefaultNamespace
	}
	m := &Metrics{
		stages: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "induction",
			Name:      "stages_total",
			Help:      "Backward-induction stages by solver and result.",
		}, []string{"solver", "result"}),
		evaluations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "induction",
			Name:      "action_evaluations_total",
			Help:      "Action-value evaluations by solver.",
		}, []string{"solver"}),
		states: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "induction",
			Name:      "states_total",
			Help:      "States visited by solver.",
		}, []string{"solver"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "induction",
			Name:      "stage_duration_seconds",
			Help:      "Wall time per finished stage.",
			Buckets:   []float64{0.00001, 0.0001, 0.001, 0.01, 0.1, 1, 10},
		}, []string{"solver"}),
	}

	var err error
	if m.stages, err = register(reg, m.stages); err != nil {
		return nil, err
	}
	if m.evaluations, err = register(reg, m.evaluations); err != nil {
		return nil, err
	}
	if m.states, err = register(reg, m.states); err != nil {
		return nil, err
	}
	if m.duration, err = register(reg, m.duration); err != nil {
		return nil, err
	}

	return m, nil
}

// register adds c to reg, returning the existing collector when an
// identical one is already registered.
func register[C prometheus.Collector](reg prometheus.Registerer, c C) (C, error) {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(C); ok {
				return existing, nil
			}
		}
		return c, fmt.Errorf("%w: %v", ErrRegistrationFailed, err)
	}

	return c, nil
}

// Observer returns an induction.Observer that records under solver.
func (m *Metrics) Observer(solver string) induction.Observer {
	return &observer{
		ok:          m.stages.WithLabelValues(solver, "ok"),
		failed:      m.stages.WithLabelValues(solver, "error"),
		evaluations: m.evaluations.WithLabelValues(solver),
		states:      m.states.WithLabelValues(solver),
		duration:    m.duration.WithLabelValues(solver),
	}
}

type observer struct {
	ok, failed  prometheus.Counter
	evaluations prometheus.Counter
	states      prometheus.Counter
	duration    prometheus.Observer
}

func (o *observer) StageStarted(_ int, states int) { o.states.Add(float64(states)) }

func (o *observer) StageFinished(_ int, evaluations int, elapsed time.Duration) {
	o.ok.Inc()
	o.evaluations.Add(float64(evaluations))
	o.duration.Observe(elapsed.Seconds())
}

func (o *observer) StageFailed(int, error) { o.failed.Inc() }

// WriteText writes every family gathered from g in the Prometheus text format.
func WriteText(w io.Writer, g prometheus.Gatherer) error {
	mfs, err := g.Gather()
	if err != nil {
		return err
	}
	for _, mf := range mfs {
		if _, err = expfmt.MetricFamilyToText(w, mf); err != nil {
			return err
		}
	}

	return nil
}

// SPDX-License-Identifier: MIT

package induction

import (
	"context"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

// TracerName is the instrumentation scope used for stage spans.
const TracerName = "github.com/katalvlaran/dynprog/induction"

// Observer receives stage lifecycle events. Calls come from the goroutine
// driving the induction, never from workers, and in stage order.
type Observer interface {
	// StageStarted fires after X(t) was drained.
	StageStarted(t, states int)
	// StageFinished fires once the stage is complete and immutable.
	// evaluations counts action-value calls made for the stage.
	StageFinished(t, evaluations int, elapsed time.Duration)
	// StageFailed fires when stage t aborts; no stage t is emitted.
	StageFailed(t int, err error)
}

// NopObserver ignores every event.
type NopObserver struct{}

func (NopObserver) StageStarted(int, int)                 {}
func (NopObserver) StageFinished(int, int, time.Duration) {}
func (NopObserver) StageFailed(int, error)                {}

// Options configures a backward-induction run.
type Options struct {
	// Ctx allows cancellation between and within stages.
	Ctx context.Context

	// Workers bounds the per-stage fork-join width. 1 evaluates inline.
	Workers int

	// Logger receives Debug stage summaries.
	Logger *slog.Logger

	// Tracer starts one span per stage.
	Tracer trace.Tracer

	// Observer receives stage lifecycle events.
	Observer Observer
}

// Option mutates Options.
type Option func(*Options)

// DefaultOptions returns:
//   - context.Background()
//   - Workers = 1
//   - a discarding logger
//   - a noop tracer
//   - NopObserver
func DefaultOptions() Options {
	return Options{
		Ctx:      context.Background(),
		Workers:  1,
		Logger:   slog.New(slog.DiscardHandler),
		Tracer:   noop.NewTracerProvider().Tracer(TracerName),
		Observer: NopObserver{},
	}
}

// WithWorkers sets the number of states evaluated concurrently per stage.
// Panics if n < 1.
func WithWorkers(n int) Option {
	if n < 1 {
		panic("induction: WithWorkers requires n >= 1")
	}

	return func(o *Options) { o.Workers = n }
}

// WithContext sets a cancellation context. nil is ignored.
func WithContext(ctx context.Context) Option {
	return func(o *Options) {
		if ctx != nil {
			o.Ctx = ctx
		}
	}
}

// WithLogger sets the logger. nil is ignored.
func WithLogger(l *slog.Logger) Option {
	return func(o *Options) {
		if l != nil {
			o.Logger = l
		}
	}
}

// WithTracer sets the tracer. nil is ignored.
func WithTracer(tr trace.Tracer) Option {
	return func(o *Options) {
		if tr != nil {
			o.Tracer = tr
		}
	}
}

// WithObserver sets the lifecycle observer. nil is ignored.
func WithObserver(obs Observer) Option {
	return func(o *Options) {
		if obs != nil {
			o.Observer = obs
		}
	}
}

// Apply folds opts over DefaultOptions.
func Apply(opts ...Option) Options {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	return o
}

// ABOUTME: Functional options for Heap construction
// ABOUTME: Logger, metrics sink and pre-pass toggle

package gc

import "log/slog"

// Option configures a Heap.
type Option func(*options)

type options struct {
	logger  *slog.Logger
	metrics Metrics
	prepass bool
}

func defaultOptions() options {
	return options{
		logger:  slog.New(slog.DiscardHandler),
		prepass: true,
	}
}

// WithLogger sets the logger used for collection events. A nil logger
// keeps the default, which discards everything.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithMetrics sets the metrics sink. Nil disables metrics.
func WithMetrics(m Metrics) Option {
	return func(o *options) {
		o.metrics = m
	}
}

// WithPrepass toggles the pruning pass that drops unrooted objects which
// were never aliased before marking. It is enabled by default.
func WithPrepass(enabled bool) Option {
	return func(o *options) {
		o.prepass = enabled
	}
}

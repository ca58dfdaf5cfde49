package autodiff

import (
	"log/slog"

	"github.com/born-ml/gradtrace/internal/tensor"
)

// DefaultEpsilon is the guard added to Div denominators and Log arguments.
const DefaultEpsilon = 1e-7

// Option configures a Graph.
type Option func(*graphOptions)

type graphOptions struct {
	eps             float64
	dtype           tensor.DataType
	logger          *slog.Logger
	onDomainWarning []func(DomainWarning)
}

func defaultOptions() *graphOptions {
	return &graphOptions{
		eps:    DefaultEpsilon,
		dtype:  tensor.Float64,
		logger: slog.New(slog.DiscardHandler),
	}
}

// WithEpsilon sets the guard used by every domain-sensitive operation.
// Zero disables guarding.
func WithEpsilon(eps float64) Option {
	return func(o *graphOptions) {
		o.eps = eps
	}
}

// WithDType sets the element type of every node in the graph.
func WithDType(dtype tensor.DataType) Option {
	return func(o *graphOptions) {
		o.dtype = dtype
	}
}

// WithLogger sets the structured logger. By default nothing is logged.
func WithLogger(logger *slog.Logger) Option {
	return func(o *graphOptions) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithDomainWarningHandler registers a callback invoked for every DomainWarning.
// Handlers run synchronously on the goroutine that built the offending node.
func WithDomainWarningHandler(fn func(DomainWarning)) Option {
	return func(o *graphOptions) {
		if fn != nil {
			o.onDomainWarning = append(o.onDomainWarning, fn)
		}
	}
}

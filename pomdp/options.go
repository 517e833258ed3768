package pomdp

import (
	"fmt"
	"io"
	"log/slog"
	"math"
	"runtime"
)

// Defaults applied by DefaultOptions.
const (
	// DefaultEpsilon is the witness margin: a candidate must beat every
	// accepted vector by more than this at some belief to be kept.
	DefaultEpsilon = 1e-9

	// DefaultLPTolerance is the simplex reduced-cost tolerance.
	DefaultLPTolerance = 1e-10
)

// Option configures Prune, Expand and the solvers via functional arguments.
// An invalid Option is recorded internally and surfaced as
// ErrOptionViolation by the call that receives it.
type Option func(*Options)

// Options holds the solver knobs.
type Options struct {
	// Epsilon is the strict margin a witness must exceed (δ > Epsilon).
	Epsilon float64

	// LPTolerance is passed to the simplex backend.
	LPTolerance float64

	// Workers bounds the goroutines used by expansion and the pointwise
	// pre-filter. 1 runs everything on the calling goroutine's schedule.
	Workers int

	// Logger receives debug records; it never receives anything above Debug
	// level from this package.
	Logger *slog.Logger

	// MaxCandidates, if > 0, rejects expansions that would produce more
	// candidates with ErrTooManyCandidates. 0 disables the limit.
	MaxCandidates int

	// StrictValidation runs model.Validate before solving.
	StrictValidation bool

	// PointwiseFilter drops candidates pointwise-dominated by another
	// candidate before the linear-program sweep.
	PointwiseFilter bool

	err error
}

// DefaultOptions returns Options with:
//   - Epsilon = DefaultEpsilon, LPTolerance = DefaultLPTolerance;
//   - Workers = runtime.GOMAXPROCS(0);
//   - a logger that discards everything;
//   - no candidate limit, no stochastic validation, no pointwise filter.
func DefaultOptions() Options {
	return Options{
		Epsilon:     DefaultEpsilon,
		LPTolerance: DefaultLPTolerance,
		Workers:     runtime.GOMAXPROCS(0),
		Logger:      slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.Level(math.MaxInt)})),
	}
}

// WithEpsilon sets the witness margin.
//
//	eps >= 0: used as-is (0 still rejects exact ties)
//	eps < 0 or NaN/Inf: ErrOptionViolation
func WithEpsilon(eps float64) Option {
	return func(o *Options) {
		if eps < 0 || math.IsNaN(eps) || math.IsInf(eps, 0) {
			o.err = fmt.Errorf("%w: epsilon must be finite and non-negative (%v)", ErrOptionViolation, eps)
			return
		}
		o.Epsilon = eps
	}
}

// WithLPTolerance sets the simplex tolerance; it must be positive and finite.
func WithLPTolerance(tol float64) Option {
	return func(o *Options) {
		if !(tol > 0) || math.IsInf(tol, 0) {
			o.err = fmt.Errorf("%w: LP tolerance must be positive (%v)", ErrOptionViolation, tol)
			return
		}
		o.LPTolerance = tol
	}
}

// WithWorkers bounds parallelism.
//
//	n > 0: at most n goroutines
//	n == 0: runtime.GOMAXPROCS(0)
//	n < 0: ErrOptionViolation
func WithWorkers(n int) Option {
	return func(o *Options) {
		switch {
		case n < 0:
			o.err = fmt.Errorf("%w: workers cannot be negative (%d)", ErrOptionViolation, n)
		case n == 0:
			o.Workers = runtime.GOMAXPROCS(0)
		default:
			o.Workers = n
		}
	}
}

// WithLogger sets the debug logger. A nil logger keeps the default.
func WithLogger(l *slog.Logger) Option {
	return func(o *Options) {
		if l != nil {
			o.Logger = l
		}
	}
}

// WithMaxCandidates caps the size of a single expansion or enumeration.
//
//	n > 0: cap at n
//	n == 0: explicit no cap
//	n < 0: ErrOptionViolation
func WithMaxCandidates(n int) Option {
	return func(o *Options) {
		if n < 0 {
			o.err = fmt.Errorf("%w: MaxCandidates cannot be negative (%d)", ErrOptionViolation, n)
			return
		}
		o.MaxCandidates = n
	}
}

// WithStrictValidation makes the solvers reject models whose transition
// rows or observation columns are not probability distributions.
func WithStrictValidation() Option {
	return func(o *Options) { o.StrictValidation = true }
}

// WithPointwiseFilter enables the pointwise-dominance pre-filter in Prune.
func WithPointwiseFilter() Option {
	return func(o *Options) { o.PointwiseFilter = true }
}

// resolve applies opts over DefaultOptions and reports the last recorded
// violation, if any.
func resolve(opts []Option) (Options, error) {
	o := DefaultOptions()
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	if o.err != nil {
		return o, o.err
	}

	return o, nil
}

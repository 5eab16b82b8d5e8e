// Package timing reads a host's navigation timing record and reshapes it
// into named page-load metrics.
package timing

import (
	"os"

	"go.uber.org/zap"
)

// Options controls the output of All.
type Options struct {
	// Simple restricts output to derived metrics, dropping raw record
	// fields and the absolute first-paint timestamp.
	Simple bool `json:"simple"`
}

// Reader derives metrics from the performance facility of an Environment.
type Reader struct {
	env      Environment
	bindings []string
	console  Console
	logger   *zap.Logger
}

type Option func(*Reader)

func WithLogger(logger *zap.Logger) Option {
	return func(r *Reader) {
		r.logger = logger
	}
}

func WithConsole(c Console) Option {
	return func(r *Reader) {
		r.console = c
	}
}

// WithBindings replaces the ordered list of bindings probed for a facility.
func WithBindings(names ...string) Option {
	return func(r *Reader) {
		r.bindings = names
	}
}

func New(env Environment, opts ...Option) *Reader {
	r := &Reader{
		env:      env,
		bindings: DefaultBindings,
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.console == nil {
		r.console = NewTextConsole(os.Stdout)
	}
	return r
}

// performance returns the first facility the environment publishes.
func (r *Reader) performance() (Performance, bool) {
	if r.env == nil {
		return nil, false
	}
	for _, name := range r.bindings {
		if p, ok := r.env.Performance(name); ok {
			r.logger.Debug("performance facility found", zap.String("binding", name))
			return p, true
		}
	}
	r.logger.Debug("performance facility unavailable", zap.Strings("bindings", r.bindings))
	return nil, false
}

// All returns every metric the facility supports. The boolean is false when
// the environment publishes no performance facility at all.
func (r *Reader) All(opts Options) (Metrics, bool) {
	perf, ok := r.performance()
	if !ok {
		return nil, false
	}

	m := Metrics{}
	rec := perf.Timing()
	if rec == nil {
		return m, true
	}

	if !opts.Simple {
		for k, v := range rec {
			if IsNumeric(v) {
				m[k] = Float(v)
			}
		}
	}

	// A host may publish firstPaint itself on the record.
	if _, ok := m[FirstPaint]; !ok {
		r.firstPaint(m, rec, opts)
	}

	m.derive(rec)
	return m, true
}

// firstPaint records the time to first paint from the first vendor signal
// available. Firefox exposes no usable signal and is not detected.
func (r *Reader) firstPaint(m Metrics, rec Record, opts Options) {
	var paint float64
	if lt, ok := r.env.LoadTimes(); ok {
		paint = lt.FirstPaintTime * 1000
		r.logger.Debug("first paint from load times")
	} else if ms, ok := number(rec["msFirstPaint"]); ok {
		paint = ms
		r.logger.Debug("first paint from msFirstPaint")
	} else {
		return
	}

	m[FirstPaintTime] = paint - rec.field("navigationStart")
	if !opts.Simple {
		m[FirstPaint] = paint
	}
}

// Time returns the curated summary of a full All call.
func (r *Reader) Time() Summary {
	m, ok := r.All(Options{})
	if !ok {
		m = Metrics{}
	}
	return summarize(m)
}

// ResourcesTime returns the entries recorded by the facility at call time.
func (r *Reader) ResourcesTime() []Entry {
	perf, ok := r.performance()
	if !ok {
		return []Entry{}
	}
	lister, ok := perf.(EntryLister)
	if !ok {
		return []Entry{}
	}
	entries := lister.Entries()
	out := make([]Entry, len(entries))
	copy(out, entries)
	return out
}

package main

// Option configures an Evaluator at construction (spec.md's entry shim is
// out of scope, but the interpreter still needs a way to wire in optional
// diagnostics such as trace logging -- adapted from the teacher's
// VMOption/options.go functional-options pattern).
type Option interface{ apply(ev *Evaluator) }

// Options flattens and applies a list of Options, the same way the
// teacher's VMOptions does: nested Options values are spliced in rather
// than nested, and nil/no-op entries are dropped.
func Options(opts ...Option) Option {
	var res options
	for _, opt := range opts {
		switch impl := opt.(type) {
		case nil, noption:
		case options:
			res = append(res, impl...)
		default:
			res = append(res, opt)
		}
	}
	switch len(res) {
	case 0:
		return noption{}
	case 1:
		return res[0]
	default:
		return res
	}
}

type noption struct{}

func (noption) apply(*Evaluator) {}

type options []Option

func (opts options) apply(ev *Evaluator) {
	for _, opt := range opts {
		if opt != nil {
			opt.apply(ev)
		}
	}
}

type logfOption func(mess string, args ...interface{})

func (f logfOption) apply(ev *Evaluator) { ev.logf = f }

// WithLogf wires a printf-style trace hook, mirroring the teacher's
// WithLogf/vm.logfn; Run calls it once, with "run", as it starts.
func WithLogf(logf func(mess string, args ...interface{})) Option { return logfOption(logf) }

package forth

import (
	"io"

	"github.com/jcorbin/gofourth/internal/flushio"
)

// VMOption configures a VM under construction.
type VMOption interface{ apply(vm *VM) }

var defaults = []VMOption{
	WithSink(func(string) {}),
}

func (vm *VM) apply(opts ...VMOption) {
	for _, opt := range defaults {
		opt.apply(vm)
	}
	for _, opt := range opts {
		if opt != nil {
			opt.apply(vm)
		}
	}
}

// WithOutput directs all interpreter output at the given writer; it is
// flushed at the end of every Interpret call.
func WithOutput(w io.Writer) VMOption { return outputOption{w} }

// WithSink directs all interpreter output at a text callback.
func WithSink(fn func(string)) VMOption { return sinkOption(fn) }

// WithLogf enables execution trace logging through the given printf-style
// function.
func WithLogf(logfn func(mess string, args ...interface{})) VMOption {
	return logfnOption(logfn)
}

type outputOption struct{ io.Writer }
type sinkOption func(string)
type logfnOption func(mess string, args ...interface{})

func (o outputOption) apply(vm *VM) {
	wf := flushio.NewWriteFlusher(o.Writer)
	vm.out = wf
	vm.sink = func(s string) {
		if _, err := io.WriteString(wf, s); err != nil {
			vm.logf("output write error: %v", err)
		}
	}
}

func (o sinkOption) apply(vm *VM) {
	vm.out = nil
	vm.sink = o
}

func (o logfnOption) apply(vm *VM) {
	vm.logfn = o
}

package forth

import (
	"strconv"

	"github.com/jcorbin/gofourth/internal/flushio"
)

// VM is one interpreter instance: a memory image plus its process-side
// registers and the primitive table. Instances are independent; a single
// instance must not be reentered from one of its own primitives.
type VM struct {
	mem []byte

	ds int // dictionary-space pointer; HERE
	s  int // data-stack pointer
	r  int // return-stack pointer
	ip int // threaded-code instruction pointer; 0 at rest

	prims  []primDef
	xtType float64 // the TYPE token, compiled by ."

	sink  func(string)
	out   flushio.WriteFlusher
	logfn func(mess string, args ...interface{})

	running bool
}

// New builds a VM with the built-in dictionary installed, applying default
// options then the given ones.
func New(opts ...VMOption) *VM {
	vm := &VM{
		mem: make([]byte, memorySize),
		ds:  dspStartAddr,
		s:   dataStackAddr,
		r:   returnStackAddr,
	}
	vm.registerBuiltins()
	vm.apply(opts...)
	return vm
}

// Interpret submits one line of source, at most 254 characters; longer
// input is truncated. The line is echoed, then interpreted to completion.
// Errors are reported through the write sink; Interpret always returns
// normally and user definitions survive any abort.
func (vm *VM) Interpret(text string) {
	if vm.running {
		panic("forth: Interpret reentered")
	}
	vm.running = true
	defer func() { vm.running = false }()

	if len(text) > inputBufferSize-2 {
		text = text[:inputBufferSize-2]
	}
	for i := 0; i < inputBufferSize; i++ {
		c := byte(' ')
		if i < len(text) {
			c = text[i]
		}
		vm.mem[inputBufferAddr+i] = c
	}
	vm.store(sourceCountAddr, float64(len(text)+1))
	vm.store(toInAddr, 0)

	vm.logf("interpret %q", text)
	vm.write(text)
	vm.write("\n")
	vm.interpretLine()
	vm.flush()
}

// Pop removes and returns the top data-stack cell.
func (vm *VM) Pop() (float64, error) {
	if vm.depth() == 0 {
		return 0, StackUnderflow
	}
	return vm.pop(), nil
}

func (vm *VM) write(s string) {
	vm.sink(s)
}

func (vm *VM) flush() {
	if vm.out != nil {
		if err := vm.out.Flush(); err != nil {
			vm.logf("output flush error: %v", err)
		}
	}
}

func (vm *VM) logf(mess string, args ...interface{}) {
	if vm.logfn != nil {
		vm.logfn(mess, args...)
	}
}

// formatCell renders a cell the way the terminal words print numbers:
// shortest decimal form, no exponent.
func formatCell(val float64) string {
	return strconv.FormatFloat(val, 'f', -1, 64)
}

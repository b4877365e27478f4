package forth

import (
	"errors"

	"github.com/jcorbin/gofourth/internal/panicerr"
)

// interpretLine drives parse -> find -> (execute | compile | literal) until
// the input is exhausted. A clean line ends with " ok"; a trap aborts, then
// echoes the offending token and the trap message.
func (vm *VM) interpretLine() {
	for {
		addr, n := vm.parseName()
		if n == 0 {
			vm.write(" ok\n")
			return
		}
		if err := vm.catch(func() { vm.dispatch(addr, n) }); err != nil {
			vm.abort()
			vm.write(vm.parsedWord())
			vm.write(" ")
			vm.write(err.Error())
			vm.write("\n")
			return
		}
	}
}

// dispatch handles one parsed token: a found word executes (interpreting,
// or immediate) or is compiled; anything else must be a number, pushed or
// compiled as a literal by state.
func (vm *VM) dispatch(addr, n int) {
	caddr := vm.toUppercase(addr, n, podAddr)
	xt, flag := vm.find(caddr)
	compiling := vm.compiling()
	switch {
	case flag != 0 && (!compiling || flag > 0):
		vm.execute(xt)
	case flag != 0:
		vm.compileXT(xt)
	default:
		val, rem := vm.toNumber(addr, n)
		if rem != 0 {
			vm.fail(UnknownWord)
		}
		if compiling {
			vm.compileLiteral(val)
		} else {
			vm.push(val)
		}
	}
}

func (vm *VM) compiling() bool {
	return vm.fetch(stateAddr) != 0
}

// catch converts any panic out of f into an error, unwrapping trap values
// raised through fail.
func (vm *VM) catch(f func()) error {
	err := panicerr.Catch("interpret", f)
	if err == nil {
		return nil
	}
	if cause := errors.Unwrap(err); cause != nil {
		return cause
	}
	return err
}

// abort empties the data stack and quits. Definitions and HERE survive, so
// user state persists across aborts.
func (vm *VM) abort() {
	vm.s = dataStackAddr
	vm.quit()
}

// quit empties the return stack, clears the input line, and enters
// interpret state.
func (vm *VM) quit() {
	vm.r = returnStackAddr
	vm.ip = 0
	for i := 0; i < inputBufferSize; i++ {
		vm.mem[inputBufferAddr+i] = 0
	}
	vm.store(sourceCountAddr, 0)
	vm.store(toInAddr, 0)
	vm.store(stateAddr, 0)
}

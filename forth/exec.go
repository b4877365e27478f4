package forth

// The seven internal runtimes occupy the first runtime ids. Their slots in
// the primitive table double as the dispatch targets for every compiled
// word: variables, constants, values, colon definitions, and the chain and
// literal cells that thread a colon body together.
const (
	ridVariable = nativeXTAddr + iota
	ridConstant
	ridValue
	ridNest
	ridUnNest
	ridNext
	ridCell
)

// execute dispatches one execution token, then drives the instruction
// pointer until the thread unwinds back to the top level. Nesting pushes
// the caller's IP on the return stack; the outermost nest pushes zero, so
// the final unNest lands the loop back at rest.
func (vm *VM) execute(xt float64) {
	vm.exec1(xt)
	for vm.ip != 0 {
		next := vm.fetch(vm.ip)
		vm.ip += cellSize
		vm.exec1(next)
	}
}

// exec1 decodes (PFA, RID) and invokes the native action for RID with the
// PFA as its argument. It does not drive the thread.
func (vm *VM) exec1(xt float64) {
	pfa, rid := decodeXT(xt)
	i := rid - nativeXTAddr
	if i < 0 || i >= len(vm.prims) {
		vm.fail(NotExecutable)
	}
	p := vm.prims[i]
	if vm.logfn != nil {
		vm.logf("exec %v @%v -- s:%v r:%v", p.name, pfa, vm.dataStack(), vm.returnStack())
	}
	p.fn(vm, pfa)
}

// variableRTS pushes the parameter-field address itself.
func (vm *VM) variableRTS(pfa int) {
	vm.push(float64(pfa))
}

// constantRTS pushes the cell stored at the parameter field.
func (vm *VM) constantRTS(pfa int) {
	vm.push(vm.fetch(pfa))
}

// valueRTS reads like a constant; TO rewrites the cell in place.
func (vm *VM) valueRTS(pfa int) {
	vm.push(vm.fetch(pfa))
}

// nestRTS enters a colon definition: the caller's IP goes to the return
// stack and the thread continues at the first compiled token.
func (vm *VM) nestRTS(pfa int) {
	vm.rPush(float64(vm.ip))
	vm.ip = pfa
}

// unNestRTS leaves a colon definition, restoring the caller's IP.
func (vm *VM) unNestRTS(pfa int) {
	vm.ip = int(vm.rPop())
}

// nextRTS continues the thread at the given address. Compiled as the
// trailing cell of a body in progress, and as the jump over inline string
// data.
func (vm *VM) nextRTS(pfa int) {
	vm.ip = pfa
}

// cellRTS pushes the literal stored at the given address and resumes the
// thread one cell past it.
func (vm *VM) cellRTS(pfa int) {
	vm.push(vm.fetch(pfa))
	vm.ip = pfa + cellSize
}

// compileXT appends an execution token to the definition in progress,
// then writes a trailing chain cell one slot ahead so the open body stays
// threaded; the next compile overwrites the trailer.
func (vm *VM) compileXT(xt float64) {
	vm.alignHere()
	vm.checkRoom(2 * cellSize)
	vm.store(vm.ds, xt)
	vm.ds += cellSize
	vm.store(vm.ds, encodeXT(vm.ds, ridNext))
}

// compileLiteral appends a literal: a cellRTS token pointing one cell past
// itself, followed by the value.
func (vm *VM) compileLiteral(val float64) {
	vm.alignHere()
	vm.checkRoom(3 * cellSize)
	vm.store(vm.ds, encodeXT(vm.ds+cellSize, ridCell))
	vm.store(vm.ds+cellSize, val)
	vm.ds += 2 * cellSize
	vm.store(vm.ds, encodeXT(vm.ds, ridNext))
}

// compileString embeds text in the body behind a chain cell that jumps over
// it, then compiles (addr len) literals for the embedded bytes.
func (vm *VM) compileString(s string) {
	vm.alignHere()
	vm.checkRoom(cellSize + len(s) + cellSize)
	jump := vm.ds
	vm.ds += cellSize
	saddr := vm.ds
	for i := 0; i < len(s); i++ {
		vm.cStore(vm.ds, s[i])
		vm.ds++
	}
	vm.alignHere()
	vm.store(jump, encodeXT(vm.ds, ridNext))
	vm.compileLiteral(float64(saddr))
	vm.compileLiteral(float64(len(s)))
}

// checkRoom traps once dictionary space cannot hold n more bytes.
func (vm *VM) checkRoom(n int) {
	if vm.ds+n > memorySize {
		vm.fail(OutOfMemory)
	}
}

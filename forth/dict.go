package forth

// The dictionary is a singly-linked chain of definition headers in
// dictionary space, newest first, rooted at the latest-definition cell.
// An execution token packs a parameter-field address and a runtime id into
// one cell: XT = 100000*PFA + RID. The multiplier keeps the RID range clear
// of the packed PFA for any image address.

func encodeXT(pfa, rid int) float64 {
	return float64(pfa*xtScale + rid)
}

func decodeXT(xt float64) (pfa, rid int) {
	n := int(xt)
	return n / xtScale, n % xtScale
}

func (vm *VM) latest() int {
	return int(vm.fetch(currentDefAddr))
}

func (vm *VM) setLatest(nfa int) {
	vm.store(currentDefAddr, float64(nfa))
}

func (vm *VM) alignHere() {
	vm.ds = aligned(vm.ds)
}

// reserveHeader aligns HERE and lays down a 48-byte header shell: zeroed
// name field, flags, and a link to the previous dictionary head. The name
// and XT fields are the caller's to fill. Returns the name-field address.
func (vm *VM) reserveHeader(flags byte) int {
	vm.alignHere()
	nfa := vm.ds
	if nfa+headerSize > memorySize {
		vm.fail(OutOfMemory)
	}
	for i := 0; i < flagsOffset; i++ {
		vm.cStore(nfa+i, 0)
	}
	vm.cStore(nfa+flagsOffset, flags)
	vm.store(nfa+linkOffset, vm.fetch(currentDefAddr))
	vm.ds = nfa + headerSize
	return nfa
}

// setName writes a counted name into a header, truncated to the 30-byte
// name field. Built-in names are stored verbatim at registration time; user
// names are uppercase-folded by CREATE before they get here.
func (vm *VM) setName(nfa int, name string) {
	if len(name) > maxNameLength {
		name = name[:maxNameLength]
	}
	vm.cStore(nfa, byte(len(name)))
	for i := 0; i < len(name); i++ {
		vm.cStore(nfa+1+i, name[i])
	}
}

func (vm *VM) name(nfa int) string {
	return vm.memString(nfa+1, int(vm.cFetch(nfa)))
}

// registerBuiltins installs the built-in primitives in declaration order.
// Entry i gets runtime id nativeXTAddr+i; the first seven entries are the
// internal runtimes, nameless and Hidden so they are never found by name.
func (vm *VM) registerBuiltins() {
	vm.prims = builtins()
	for i, p := range vm.prims {
		nfa := vm.reserveHeader(p.flag)
		vm.setName(nfa, p.name)
		xt := encodeXT(nfa+headerSize, nativeXTAddr+i)
		vm.store(nfa+xtOffset, xt)
		vm.setLatest(nfa)
		if p.name == "TYPE" {
			vm.xtType = xt
		}
	}
}

// find walks the dictionary chain for the counted string at caddr. Callers
// fold the query to uppercase first. Hidden entries are skipped; the most
// recent match wins. On a hit it returns the word's XT and +1 for an
// immediate word, -1 otherwise; on a miss, the original address and 0.
func (vm *VM) find(caddr int) (xt float64, flag int) {
	n := int(vm.cFetch(caddr))
next:
	for nfa := vm.latest(); nfa != 0; nfa = int(vm.fetch(nfa + linkOffset)) {
		flags := vm.cFetch(nfa + flagsOffset)
		if flags&flagHidden != 0 || int(vm.cFetch(nfa)) != n {
			continue
		}
		for i := 0; i < n; i++ {
			if vm.cFetch(nfa+1+i) != vm.cFetch(caddr+1+i) {
				continue next
			}
		}
		if flags&flagImmediate != 0 {
			return vm.fetch(nfa + xtOffset), 1
		}
		return vm.fetch(nfa + xtOffset), -1
	}
	return float64(caddr), 0
}

// createWord parses a name, folds it to uppercase, and builds a fresh
// header whose XT runs variableRTS over an empty parameter field. The
// defining words rewrite the XT afterwards as needed.
func (vm *VM) createWord() int {
	addr, n := vm.parseName()
	if n == 0 {
		vm.fail(EmptyName)
	}
	if n > maxNameLength {
		n = maxNameLength
	}
	nfa := vm.reserveHeader(0)
	vm.toUppercase(addr, n, nfa)
	vm.store(nfa+xtOffset, encodeXT(nfa+headerSize, ridVariable))
	vm.setLatest(nfa)
	return nfa
}

// tickWord parses a name and looks it up, trapping on a miss.
func (vm *VM) tickWord() float64 {
	addr, n := vm.parseName()
	if n == 0 {
		vm.fail(EmptyName)
	}
	caddr := vm.toUppercase(addr, n, podAddr)
	xt, flag := vm.find(caddr)
	if flag == 0 {
		vm.fail(UnknownWord)
	}
	return xt
}

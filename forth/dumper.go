package forth

import (
	"fmt"
	"io"
)

// vmDumper renders interpreter state for debugging and failing tests: the
// registers, both stacks, and a walk of the dictionary chain.
type vmDumper struct {
	vm  *VM
	out io.Writer
}

func (dump vmDumper) dump() {
	vm := dump.vm
	fmt.Fprintf(dump.out, "# VM Dump\n")
	fmt.Fprintf(dump.out, "  here: %v\n", vm.ds)
	fmt.Fprintf(dump.out, "  state: %v\n", vm.fetch(stateAddr))
	fmt.Fprintf(dump.out, "  latest: %v\n", vm.latest())
	fmt.Fprintf(dump.out, "  stack: %v\n", vm.dataStack())
	fmt.Fprintf(dump.out, "  rstack: %v\n", vm.returnStack())
	dump.dumpWords()
}

func (dump vmDumper) dumpWords() {
	vm := dump.vm
	for nfa := vm.latest(); nfa != 0; nfa = int(vm.fetch(nfa + linkOffset)) {
		flags := vm.cFetch(nfa + flagsOffset)
		if flags&flagHidden != 0 && vm.cFetch(nfa) == 0 {
			// nameless internal runtimes
			continue
		}
		pfa, rid := decodeXT(vm.fetch(nfa + xtOffset))
		fmt.Fprintf(dump.out, "  word @%v %q pfa=%v rid=%v flags=%02x\n",
			nfa, vm.name(nfa), pfa, rid, flags)
	}
}

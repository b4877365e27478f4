package forth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestXT_encoding(t *testing.T) {
	for _, tc := range []struct{ pfa, rid int }{
		{0, nativeXTAddr},
		{dspStartAddr, nativeXTAddr},
		{dspStartAddr + 48, ridNest},
		{memorySize - cellSize, dspStartAddr - 1},
	} {
		pfa, rid := decodeXT(encodeXT(tc.pfa, tc.rid))
		assert.Equal(t, tc.pfa, pfa, "pfa survives packing")
		assert.Equal(t, tc.rid, rid, "rid survives packing")
	}
}

// counted writes a counted string into scratch and returns its address.
func counted(vm *VM, s string) int {
	const addr = podAddr + 400
	vm.cStore(addr, byte(len(s)))
	for i := 0; i < len(s); i++ {
		vm.cStore(addr+1+i, s[i])
	}
	return addr
}

func TestDict_find(t *testing.T) {
	vm := New()

	xt, flag := vm.find(counted(vm, "DUP"))
	assert.Equal(t, -1, flag, "DUP is not immediate")
	_, rid := decodeXT(xt)
	assert.Equal(t, "DUP", vm.prims[rid-nativeXTAddr].name)

	_, flag = vm.find(counted(vm, ";"))
	assert.Equal(t, 1, flag, "; is immediate")

	caddr := counted(vm, "NOPE")
	xt, flag = vm.find(caddr)
	assert.Equal(t, 0, flag)
	assert.Equal(t, float64(caddr), xt, "miss returns the query address")
}

func TestDict_runtimesAreHidden(t *testing.T) {
	vm := New()
	hidden := 0
	for nfa := vm.latest(); nfa != 0; nfa = int(vm.fetch(nfa + linkOffset)) {
		if vm.cFetch(nfa+flagsOffset)&flagHidden != 0 {
			hidden++
			assert.Equal(t, byte(0), vm.cFetch(nfa), "runtime headers are nameless")
		}
	}
	assert.Equal(t, 7, hidden, "exactly the seven runtimes are hidden")

	_, flag := vm.find(counted(vm, ""))
	assert.Equal(t, 0, flag, "hidden entries are never found")
}

func TestDict_newestWins(t *testing.T) {
	vm := New()
	vm.Interpret(": foo 1 ;")
	first := vm.latest()
	vm.Interpret(": foo 2 ;")
	second := vm.latest()
	assert.NotEqual(t, first, second)

	xt, flag := vm.find(counted(vm, "FOO"))
	require.Equal(t, -1, flag)
	pfa, _ := decodeXT(xt)
	assert.Equal(t, second+headerSize, pfa, "the most recent definition wins")
}

func TestDict_createHeaderLayout(t *testing.T) {
	vm := New()
	prev := vm.latest()
	vm.Interpret("CREATE greeting")
	nfa := vm.latest()

	assert.Equal(t, byte(8), vm.cFetch(nfa), "counted name length")
	assert.Equal(t, "GREETING", vm.name(nfa), "name stored uppercase")
	assert.Equal(t, byte(0), vm.cFetch(nfa+flagsOffset), "no flags")
	assert.Equal(t, float64(prev), vm.fetch(nfa+linkOffset), "link to previous head")

	pfa, rid := decodeXT(vm.fetch(nfa + xtOffset))
	assert.Equal(t, nfa+headerSize, pfa)
	assert.Equal(t, ridVariable, rid)
	assert.Equal(t, nfa+headerSize, vm.ds, "parameter field starts empty")
}

func TestDict_longNamesTruncate(t *testing.T) {
	vm := New()
	vm.Interpret("CREATE abcdefghijklmnopqrstuvwxyz0123456789")
	nfa := vm.latest()
	assert.Equal(t, byte(maxNameLength), vm.cFetch(nfa))
	assert.Equal(t, "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123", vm.name(nfa))
}

func TestExec_colonBodyLayout(t *testing.T) {
	vm := New()
	vm.Interpret(": f 42 ;")
	nfa := vm.latest()
	pfa := nfa + headerSize

	_, rid := decodeXT(vm.fetch(nfa + xtOffset))
	assert.Equal(t, ridNest, rid, "colon words nest")

	assert.Equal(t, encodeXT(pfa+cellSize, ridCell), vm.fetch(pfa), "literal cell token")
	assert.Equal(t, 42.0, vm.fetch(pfa+cellSize), "literal value")
	assert.Equal(t, encodeXT(pfa+2*cellSize, ridUnNest), vm.fetch(pfa+2*cellSize), "unNest seals the body")
	assert.Equal(t, encodeXT(pfa+3*cellSize, ridNext), vm.fetch(pfa+3*cellSize), "trailing chain cell")
	assert.Equal(t, pfa+3*cellSize, vm.ds, "HERE rests on the trailer")
}

func TestExec_compiledWordChains(t *testing.T) {
	vm := New()
	vm.Interpret(": sq DUP * ;")
	nfa := vm.latest()
	pfa := nfa + headerSize

	dupXT, _ := vm.find(counted(vm, "DUP"))
	mulXT, _ := vm.find(counted(vm, "*"))
	assert.Equal(t, dupXT, vm.fetch(pfa))
	assert.Equal(t, mulXT, vm.fetch(pfa+cellSize))
	_, rid := decodeXT(vm.fetch(pfa + 2*cellSize))
	assert.Equal(t, ridUnNest, rid)
}

func TestExec_abortPreservesDictionary(t *testing.T) {
	vm := New()
	vm.Interpret(": sq DUP * ;")
	here, head := vm.ds, vm.latest()

	vm.push(1)
	vm.rPush(2)
	vm.abort()

	assert.Equal(t, 0, vm.depth(), "abort clears the data stack")
	assert.Equal(t, 0, vm.rDepth(), "abort clears the return stack")
	assert.Equal(t, here, vm.ds, "HERE unchanged")
	assert.Equal(t, head, vm.latest(), "dictionary head unchanged")
	assert.False(t, vm.compiling(), "abort leaves compile state")
}

func TestExec_notExecutable(t *testing.T) {
	vm := New()
	assert.Equal(t, NotExecutable, trapValue(t, func() { vm.execute(5) }))
	assert.Equal(t, NotExecutable, trapValue(t, func() { vm.execute(encodeXT(podAddr, 42)) }))
}

func TestExec_runtimes(t *testing.T) {
	vm := New()

	vm.variableRTS(podAddr)
	assert.Equal(t, float64(podAddr), vm.pop(), "variableRTS pushes the PFA")

	vm.store(podAddr, 42)
	vm.constantRTS(podAddr)
	assert.Equal(t, 42.0, vm.pop(), "constantRTS pushes the cell at PFA")

	vm.valueRTS(podAddr)
	assert.Equal(t, 42.0, vm.pop(), "valueRTS reads like a constant")

	vm.ip = 0
	vm.nestRTS(podAddr)
	assert.Equal(t, podAddr, vm.ip, "nest continues at the body")
	assert.Equal(t, []float64{0}, vm.returnStack(), "nest saves the caller IP")
	vm.unNestRTS(0)
	assert.Equal(t, 0, vm.ip, "unNest restores the caller IP")
	assert.Equal(t, 0, vm.rDepth())

	vm.store(podAddr+cellSize, 7)
	vm.cellRTS(podAddr + cellSize)
	assert.Equal(t, 7.0, vm.pop(), "cellRTS pushes the literal")
	assert.Equal(t, podAddr+2*cellSize, vm.ip, "cellRTS resumes past the literal")
	vm.ip = 0
}

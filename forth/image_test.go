package forth

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestImage_cellRoundTrip(t *testing.T) {
	vm := New()
	for _, val := range []float64{0, 1, -1, 42, 3.5, -1e15, 1 << 52} {
		vm.store(podAddr, val)
		assert.Equal(t, val, vm.fetch(podAddr), "cell %v must round-trip", val)
	}
}

func TestImage_charRoundTrip(t *testing.T) {
	vm := New()
	vm.cStore(podAddr, 'A')
	vm.cStore(podAddr+1, 0xff)
	assert.Equal(t, byte('A'), vm.cFetch(podAddr))
	assert.Equal(t, byte(0xff), vm.cFetch(podAddr+1))
}

func TestImage_alignment(t *testing.T) {
	vm := New()
	assert.Equal(t, alignmentError(73), trapValue(t, func() { vm.fetch(73) }))
	assert.Equal(t, alignmentError(73), trapValue(t, func() { vm.store(73, 1) }))
	assert.NoError(t, trapValue(t, func() { vm.store(72, 0) }))
}

func TestImage_bounds(t *testing.T) {
	vm := New()
	assert.Equal(t, addressError(-8), trapValue(t, func() { vm.fetch(-8) }))
	assert.Equal(t, addressError(memorySize), trapValue(t, func() { vm.fetch(memorySize) }))
	assert.Equal(t, addressError(memorySize), trapValue(t, func() { vm.cFetch(memorySize) }))
}

func TestImage_latestCellGuard(t *testing.T) {
	vm := New()
	prev := vm.fetch(currentDefAddr)

	assert.Equal(t, latestError(5), trapValue(t, func() { vm.store(currentDefAddr, 5) }))
	assert.Equal(t, prev, vm.fetch(currentDefAddr), "guarded store must not land")

	assert.NoError(t, trapValue(t, func() { vm.store(currentDefAddr, 0) }))
	assert.NoError(t, trapValue(t, func() { vm.store(currentDefAddr, prev) }))
}

func TestImage_layoutInvariants(t *testing.T) {
	vm := New()
	assert.True(t, vm.ds > dspStartAddr && vm.ds < memorySize, "HERE inside dictionary space")
	assert.Equal(t, 0, vm.ds%cellSize, "HERE cell-aligned after registration")
	assert.Equal(t, 0.0, vm.fetch(stateAddr), "boots interpreting")

	// the dictionary chain terminates at zero
	seen := 0
	for nfa := vm.latest(); nfa != 0; nfa = int(vm.fetch(nfa + linkOffset)) {
		seen++
		assert.True(t, nfa >= dspStartAddr && nfa < memorySize, "header inside dictionary space")
	}
	assert.Equal(t, len(vm.prims), seen, "one header per primitive")
}

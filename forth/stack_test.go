package forth

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStack_pushPopPick(t *testing.T) {
	vm := New()
	vm.push(1)
	vm.push(2)
	vm.push(3)
	assert.Equal(t, 3, vm.depth())
	assert.Equal(t, 3.0, vm.pick(0))
	assert.Equal(t, 1.0, vm.pick(2))
	assert.Equal(t, []float64{1, 2, 3}, vm.dataStack())
	assert.Equal(t, 3.0, vm.pop())
	assert.Equal(t, 2, vm.depth())
}

func TestStack_underflow(t *testing.T) {
	vm := New()
	assert.Equal(t, StackUnderflow, trapValue(t, func() { vm.pop() }))
	vm.push(1)
	assert.Equal(t, StackUnderflow, trapValue(t, func() { vm.pick(1) }))
	assert.NoError(t, trapValue(t, func() { vm.pick(0) }))
}

func TestStack_returnStack(t *testing.T) {
	vm := New()
	vm.rPush(7)
	vm.rPush(8)
	assert.Equal(t, 2, vm.rDepth())
	assert.Equal(t, 8.0, vm.rPick(0))
	assert.Equal(t, 8.0, vm.rPop())
	assert.Equal(t, 7.0, vm.rPop())
	assert.Equal(t, StackUnderflow, trapValue(t, func() { vm.rPop() }))
}

func TestStack_regionsAreDistinct(t *testing.T) {
	vm := New()
	vm.push(1)
	vm.rPush(2)
	assert.Equal(t, []float64{1}, vm.dataStack())
	assert.Equal(t, []float64{2}, vm.returnStack())
}

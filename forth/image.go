package forth

import (
	"encoding/binary"
	"math"
)

// The memory image is one contiguous byte buffer. Cells are 64-bit floats
// stored little-endian at 8-aligned offsets; character accesses may land on
// any byte. Fixed regions, low to high:
//
//	72      STATE (0 interpret, non-zero compile)
//	80      >IN, the input-buffer cursor
//	88      input-buffer character count
//	96      name-field address of the latest definition
//	120     input buffer, 256 bytes
//	376     data stack, 32 cells
//	632     return stack, 1024 cells
//	8824    POD scratch, 90 cells
//	9544    parsed-word buffer, 32 bytes
//	9800    base runtime id for native actions
//	10000   dictionary space; HERE starts here and grows upward
const (
	memorySize = 64000

	stateAddr       = 72
	toInAddr        = 80
	sourceCountAddr = 88
	currentDefAddr  = 96

	inputBufferAddr = 120
	inputBufferSize = 256

	dataStackAddr    = 376
	dataStackCells   = 32
	returnStackAddr  = 632
	returnStackCells = 1024

	podAddr       = 8824
	podStringAddr = podAddr + 128
	parseWordAddr = 9544
	parseWordSize = 32

	nativeXTAddr = 9800
	dspStartAddr = 10000

	cellSize = 8
	xtScale  = 100000
)

// Definition header fields, relative to the name-field address. The counted
// name occupies the first 31 bytes; the parameter field begins at +48.
const (
	maxNameLength = 30
	flagsOffset   = 31
	linkOffset    = 32
	xtOffset      = 40
	headerSize    = 48
)

// Header flag bits.
const (
	flagImmediate = 1 << 0
	flagHidden    = 1 << 1
)

func aligned(addr int) int {
	return (addr + cellSize - 1) &^ (cellSize - 1)
}

func (vm *VM) checkCell(addr int) {
	if addr < 0 || addr > memorySize-cellSize {
		vm.fail(addressError(addr))
	}
	if addr%cellSize != 0 {
		vm.fail(alignmentError(addr))
	}
}

func (vm *VM) fetch(addr int) float64 {
	vm.checkCell(addr)
	return math.Float64frombits(binary.LittleEndian.Uint64(vm.mem[addr:]))
}

// store writes one cell. The latest-definition cell only accepts zero or a
// dictionary-space address, so a stray store cannot sever the word chain.
func (vm *VM) store(addr int, val float64) {
	vm.checkCell(addr)
	if addr == currentDefAddr && val != 0 && (val < dspStartAddr || val > memorySize) {
		vm.fail(latestError(val))
	}
	binary.LittleEndian.PutUint64(vm.mem[addr:], math.Float64bits(val))
}

func (vm *VM) cFetch(addr int) byte {
	if addr < 0 || addr >= memorySize {
		vm.fail(addressError(addr))
	}
	return vm.mem[addr]
}

func (vm *VM) cStore(addr int, c byte) {
	if addr < 0 || addr >= memorySize {
		vm.fail(addressError(addr))
	}
	vm.mem[addr] = c
}

// memString copies length bytes out of the image.
func (vm *VM) memString(addr, length int) string {
	b := make([]byte, length)
	for i := range b {
		b[i] = vm.cFetch(addr + i)
	}
	return string(b)
}

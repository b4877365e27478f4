package forth

// Parsing works over the in-image input buffer: SOURCE exposes (address,
// count) and >IN is the cursor. Addresses returned by the parsing routines
// are absolute image offsets into the buffer.

func (vm *VM) source() (addr, count int) {
	return inputBufferAddr, int(vm.fetch(sourceCountAddr))
}

func (vm *VM) toIn() int {
	return int(vm.fetch(toInAddr))
}

func (vm *VM) setToIn(i int) {
	vm.store(toInAddr, float64(i))
}

// parse reads from >IN until the delimiter or the end of the buffer and
// advances >IN past the delimiter.
func (vm *VM) parse(delim byte) (addr, length int) {
	src, count := vm.source()
	i := vm.toIn()
	start := i
	for i < count && vm.cFetch(src+i) != delim {
		i++
	}
	length = i - start
	if i < count {
		i++
	}
	vm.setToIn(i)
	return src + start, length
}

// parseName skips leading spaces, parses to the next space, and leaves a
// counted copy of the raw token in the parsed-word buffer for diagnostics.
func (vm *VM) parseName() (addr, length int) {
	src, count := vm.source()
	i := vm.toIn()
	for i < count && vm.cFetch(src+i) == ' ' {
		i++
	}
	vm.setToIn(i)
	addr, length = vm.parse(' ')

	// keep the previous token for diagnostics when the line runs dry
	if length > 0 {
		n := length
		if n > parseWordSize-1 {
			n = parseWordSize - 1
		}
		vm.cStore(parseWordAddr, byte(n))
		for i := 0; i < n; i++ {
			vm.cStore(parseWordAddr+1+i, vm.cFetch(addr+i))
		}
	}
	return addr, length
}

// parsedWord reads back the counted token parseName left behind.
func (vm *VM) parsedWord() string {
	return vm.memString(parseWordAddr+1, int(vm.cFetch(parseWordAddr)))
}

// parseWord is the legacy WORD parser: skip leading delimiters, parse to
// the delimiter, and leave a counted string in POD. Returns the POD address.
func (vm *VM) parseWord(delim byte) int {
	src, count := vm.source()
	i := vm.toIn()
	for i < count && vm.cFetch(src+i) == delim {
		i++
	}
	vm.setToIn(i)
	addr, length := vm.parse(delim)
	if length > 255 {
		length = 255
	}
	vm.cStore(podAddr, byte(length))
	for i := 0; i < length; i++ {
		vm.cStore(podAddr+1+i, vm.cFetch(addr+i))
	}
	return podAddr
}

// toUppercase copies length characters from src to dst+1, folding a-z to
// A-Z, and stores the count at dst, producing a counted string. Returns dst.
func (vm *VM) toUppercase(src, length, dst int) int {
	vm.cStore(dst, byte(length))
	for i := 0; i < length; i++ {
		c := vm.cFetch(src + i)
		if c >= 'a' && c <= 'z' {
			c -= 'a' - 'A'
		}
		vm.cStore(dst+1+i, c)
	}
	return dst
}

// toNumber parses a signed decimal integer from the image. It consumes an
// optional leading sign and then digits, returning the accumulated value
// and the count of unconsumed characters; the caller decides whether a
// non-zero remainder is an error.
func (vm *VM) toNumber(addr, length int) (val float64, rem int) {
	i := 0
	neg := false
	if i < length {
		switch vm.cFetch(addr + i) {
		case '-':
			neg = true
			i++
		case '+':
			i++
		}
	}
	for ; i < length; i++ {
		c := vm.cFetch(addr + i)
		if c < '0' || c > '9' {
			break
		}
		val = val*10 + float64(c-'0')
	}
	if neg {
		val = -val
	}
	return val, length - i
}

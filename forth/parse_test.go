package forth

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
)

// setInput primes the input buffer the way Interpret does, without running
// the outer loop.
func setInput(vm *VM, text string) {
	for i := 0; i < inputBufferSize; i++ {
		c := byte(' ')
		if i < len(text) {
			c = text[i]
		}
		vm.mem[inputBufferAddr+i] = c
	}
	vm.store(sourceCountAddr, float64(len(text)+1))
	vm.store(toInAddr, 0)
}

func TestParse_name(t *testing.T) {
	vm := New()
	setInput(vm, "  DUP  42")

	addr, n := vm.parseName()
	assert.Equal(t, 3, n)
	assert.Equal(t, "DUP", vm.memString(addr, n))
	assert.Equal(t, "DUP", vm.parsedWord())

	addr, n = vm.parseName()
	assert.Equal(t, "42", vm.memString(addr, n))
	assert.Equal(t, "42", vm.parsedWord())

	_, n = vm.parseName()
	assert.Equal(t, 0, n, "exhausted input parses empty")
	assert.Equal(t, "42", vm.parsedWord(), "empty parse keeps the last token")
}

func TestParse_delimited(t *testing.T) {
	vm := New()
	setInput(vm, "hello) there")

	addr, n := vm.parse(')')
	assert.Equal(t, "hello", vm.memString(addr, n))

	addr, n = vm.parseName()
	assert.Equal(t, "there", vm.memString(addr, n))
}

func TestParse_word(t *testing.T) {
	vm := New()
	setInput(vm, "   token rest")

	pod := vm.parseWord(' ')
	assert.Equal(t, podAddr, pod)
	assert.Equal(t, byte(5), vm.cFetch(pod))
	assert.Equal(t, "token", vm.memString(pod+1, 5))
}

func TestParse_uppercaseIdempotent(t *testing.T) {
	vm := New()
	const src = podAddr + 300
	text := "Hello-World_42z"
	for i := 0; i < len(text); i++ {
		vm.cStore(src+i, text[i])
	}

	dst := vm.toUppercase(src, len(text), podAddr)
	once := vm.memString(dst, len(text)+1)
	dst = vm.toUppercase(dst+1, len(text), podAddr)
	twice := vm.memString(dst, len(text)+1)

	assert.Equal(t, once, twice, ">UPPERCASE applied twice is idempotent")
	assert.Equal(t, "HELLO-WORLD_42Z", vm.memString(dst+1, len(text)))
}

func TestParse_number(t *testing.T) {
	vm := New()
	const src = podAddr + 300

	parse := func(s string) (float64, int) {
		for i := 0; i < len(s); i++ {
			vm.cStore(src+i, s[i])
		}
		return vm.toNumber(src, len(s))
	}

	for _, n := range []int64{0, 1, -1, 42, 1000000, -987654321, 1 << 52} {
		val, rem := parse(strconv.FormatInt(n, 10))
		assert.Equal(t, 0, rem, "%v must fully consume", n)
		assert.Equal(t, float64(n), val, "%v must round-trip", n)
	}

	val, rem := parse("+42")
	assert.Equal(t, 0, rem)
	assert.Equal(t, 42.0, val)

	_, rem = parse("12x4")
	assert.Equal(t, 2, rem, "junk leaves a remainder")

	_, rem = parse("wat")
	assert.Equal(t, 3, rem, "non-number is all remainder")
}

package forth

import "math"

type primDef struct {
	name string
	flag byte
	fn   func(*VM, int)
}

// builtins lists every native word in declaration order; the insertion
// index becomes the word's runtime id offset. The seven internal runtimes
// come first and keep their fixed id assignments.
func builtins() []primDef {
	return []primDef{
		{"", flagHidden, (*VM).variableRTS},
		{"", flagHidden, (*VM).constantRTS},
		{"", flagHidden, (*VM).valueRTS},
		{"", flagHidden, (*VM).nestRTS},
		{"", flagHidden, (*VM).unNestRTS},
		{"", flagHidden, (*VM).nextRTS},
		{"", flagHidden, (*VM).cellRTS},

		{"DUP", 0, (*VM).dup},
		{"?DUP", 0, (*VM).qDup},
		{"DROP", 0, (*VM).drop},
		{"SWAP", 0, (*VM).swap},
		{"OVER", 0, (*VM).over},
		{"ROT", 0, (*VM).rot},
		{"-ROT", 0, (*VM).minusRot},
		{"NIP", 0, (*VM).nip},
		{"TUCK", 0, (*VM).tuck},
		{"PICK", 0, (*VM).pickPrim},
		{"DEPTH", 0, (*VM).depthPrim},
		{"2DUP", 0, (*VM).twoDup},
		{"2DROP", 0, (*VM).twoDrop},
		{"2SWAP", 0, (*VM).twoSwap},
		{"2OVER", 0, (*VM).twoOver},

		{">R", 0, (*VM).toR},
		{"R>", 0, (*VM).rFrom},
		{"R@", 0, (*VM).rFetch},

		{"+", 0, (*VM).add},
		{"-", 0, (*VM).sub},
		{"*", 0, (*VM).mul},
		{"/", 0, (*VM).div},
		{"MOD", 0, (*VM).mod},
		{"NEGATE", 0, (*VM).negate},
		{"ABS", 0, (*VM).abs},
		{"MIN", 0, (*VM).min},
		{"MAX", 0, (*VM).max},
		{"1+", 0, (*VM).onePlus},
		{"1-", 0, (*VM).oneMinus},
		{"2*", 0, (*VM).twoTimes},
		{"2/", 0, (*VM).twoDiv},

		{"=", 0, (*VM).eq},
		{"<>", 0, (*VM).ne},
		{"<", 0, (*VM).lt},
		{">", 0, (*VM).gt},
		{"<=", 0, (*VM).le},
		{">=", 0, (*VM).ge},
		{"0=", 0, (*VM).zeroEq},
		{"0<", 0, (*VM).zeroLt},
		{"0>", 0, (*VM).zeroGt},

		{"AND", 0, (*VM).and},
		{"OR", 0, (*VM).or},
		{"XOR", 0, (*VM).xor},
		{"INVERT", 0, (*VM).invert},
		{"TRUE", 0, (*VM).truePrim},
		{"FALSE", 0, (*VM).falsePrim},

		{"@", 0, (*VM).fetchPrim},
		{"!", 0, (*VM).storePrim},
		{"+!", 0, (*VM).plusStore},
		{"C@", 0, (*VM).cFetchPrim},
		{"C!", 0, (*VM).cStorePrim},
		{",", 0, (*VM).comma},
		{"C,", 0, (*VM).cComma},
		{"ALLOT", 0, (*VM).allot},
		{"ALIGN", 0, (*VM).alignPrim},
		{"ALIGNED", 0, (*VM).alignedPrim},
		{"HERE", 0, (*VM).herePrim},
		{"CELLS", 0, (*VM).cells},
		{"CELL+", 0, (*VM).cellPlus},
		{"CHAR+", 0, (*VM).charPlus},
		{"CHARS", 0, (*VM).chars},
		{"COUNT", 0, (*VM).count},

		{"EMIT", 0, (*VM).emit},
		{"TYPE", 0, (*VM).typePrim},
		{"CR", 0, (*VM).cr},
		{"SPACE", 0, (*VM).space},
		{"SPACES", 0, (*VM).spaces},
		{"BL", 0, (*VM).blPrim},
		{".", 0, (*VM).dot},
		{".S", 0, (*VM).dotS},

		{`S"`, flagImmediate, (*VM).sQuote},
		{`."`, flagImmediate, (*VM).dotQuote},
		{"(", flagImmediate, (*VM).paren},
		{`\`, flagImmediate, (*VM).backslash},

		{"WORD", 0, (*VM).wordPrim},
		{"PARSE", 0, (*VM).parsePrim},
		{"PARSE-NAME", 0, (*VM).parseNamePrim},
		{"CHAR", 0, (*VM).charPrim},
		{"[CHAR]", flagImmediate, (*VM).bracketChar},
		{"SOURCE", 0, (*VM).sourcePrim},
		{">IN", 0, (*VM).toInPrim},
		{">NUMBER", 0, (*VM).toNumberPrim},
		{">UPPERCASE", 0, (*VM).toUppercasePrim},

		{"CREATE", 0, (*VM).createPrim},
		{"VARIABLE", 0, (*VM).variablePrim},
		{"CONSTANT", 0, (*VM).constantPrim},
		{"VALUE", 0, (*VM).valuePrim},
		{"TO", 0, (*VM).toPrim},
		{":", 0, (*VM).colon},
		{";", flagImmediate, (*VM).semicolon},
		{"IMMEDIATE", 0, (*VM).immediatePrim},
		{"'", 0, (*VM).tick},
		{"[']", flagImmediate, (*VM).bracketTick},
		{"EXECUTE", 0, (*VM).executePrim},
		{">BODY", 0, (*VM).toBody},
		{"STATE", 0, (*VM).statePrim},
		{"[", flagImmediate, (*VM).lBracket},
		{"]", 0, (*VM).rBracket},

		{"ABORT", 0, (*VM).abortPrim},
		{"QUIT", 0, (*VM).quitPrim},
		{"WORDS", 0, (*VM).wordsPrim},
	}
}

//// Stack operations

// DUP ( a -- a a )
func (vm *VM) dup(_ int) { vm.push(vm.pick(0)) }

// ?DUP ( a -- a a | 0 )
func (vm *VM) qDup(_ int) {
	if vm.pick(0) != 0 {
		vm.push(vm.pick(0))
	}
}

// DROP ( a -- )
func (vm *VM) drop(_ int) { vm.pop() }

// SWAP ( a b -- b a )
func (vm *VM) swap(_ int) {
	b, a := vm.pop(), vm.pop()
	vm.push(b)
	vm.push(a)
}

// OVER ( a b -- a b a )
func (vm *VM) over(_ int) { vm.push(vm.pick(1)) }

// ROT ( a b c -- b c a )
func (vm *VM) rot(_ int) {
	c, b, a := vm.pop(), vm.pop(), vm.pop()
	vm.push(b)
	vm.push(c)
	vm.push(a)
}

// -ROT ( a b c -- c a b )
func (vm *VM) minusRot(_ int) {
	c, b, a := vm.pop(), vm.pop(), vm.pop()
	vm.push(c)
	vm.push(a)
	vm.push(b)
}

// NIP ( a b -- b )
func (vm *VM) nip(_ int) {
	b := vm.pop()
	vm.pop()
	vm.push(b)
}

// TUCK ( a b -- b a b )
func (vm *VM) tuck(_ int) {
	b, a := vm.pop(), vm.pop()
	vm.push(b)
	vm.push(a)
	vm.push(b)
}

// PICK ( i -- x ) copy up the i-th cell below the top
func (vm *VM) pickPrim(_ int) {
	i := int(vm.pop())
	vm.push(vm.pick(i))
}

// DEPTH ( -- n )
func (vm *VM) depthPrim(_ int) { vm.push(float64(vm.depth())) }

// 2DUP ( a b -- a b a b )
func (vm *VM) twoDup(_ int) {
	vm.push(vm.pick(1))
	vm.push(vm.pick(1))
}

// 2DROP ( a b -- )
func (vm *VM) twoDrop(_ int) {
	vm.pop()
	vm.pop()
}

// 2SWAP ( a b c d -- c d a b )
func (vm *VM) twoSwap(_ int) {
	d, c, b, a := vm.pop(), vm.pop(), vm.pop(), vm.pop()
	vm.push(c)
	vm.push(d)
	vm.push(a)
	vm.push(b)
}

// 2OVER ( a b c d -- a b c d a b )
func (vm *VM) twoOver(_ int) {
	vm.push(vm.pick(3))
	vm.push(vm.pick(3))
}

//// Return-stack operations

// >R ( a -- ) ( R: -- a )
func (vm *VM) toR(_ int) { vm.rPush(vm.pop()) }

// R> ( -- a ) ( R: a -- )
func (vm *VM) rFrom(_ int) { vm.push(vm.rPop()) }

// R@ ( -- a ) ( R: a -- a )
func (vm *VM) rFetch(_ int) { vm.push(vm.rPick(0)) }

//// Arithmetic

// + ( a b -- a+b )
func (vm *VM) add(_ int) {
	b, a := vm.pop(), vm.pop()
	vm.push(a + b)
}

// - ( a b -- a-b )
func (vm *VM) sub(_ int) {
	b, a := vm.pop(), vm.pop()
	vm.push(a - b)
}

// * ( a b -- a*b )
func (vm *VM) mul(_ int) {
	b, a := vm.pop(), vm.pop()
	vm.push(a * b)
}

// / ( a b -- a/b ) cells are doubles; division is exact where the inputs are
func (vm *VM) div(_ int) {
	b, a := vm.pop(), vm.pop()
	vm.push(a / b)
}

// MOD ( a b -- a%b ) remainder keeps the dividend's sign
func (vm *VM) mod(_ int) {
	b, a := vm.pop(), vm.pop()
	vm.push(math.Mod(a, b))
}

// NEGATE ( a -- -a )
func (vm *VM) negate(_ int) { vm.push(-vm.pop()) }

// ABS ( a -- |a| )
func (vm *VM) abs(_ int) { vm.push(math.Abs(vm.pop())) }

// MIN ( a b -- min )
func (vm *VM) min(_ int) {
	b, a := vm.pop(), vm.pop()
	vm.push(math.Min(a, b))
}

// MAX ( a b -- max )
func (vm *VM) max(_ int) {
	b, a := vm.pop(), vm.pop()
	vm.push(math.Max(a, b))
}

// 1+ ( a -- a+1 )
func (vm *VM) onePlus(_ int) { vm.push(vm.pop() + 1) }

// 1- ( a -- a-1 )
func (vm *VM) oneMinus(_ int) { vm.push(vm.pop() - 1) }

// 2* ( a -- a*2 )
func (vm *VM) twoTimes(_ int) { vm.push(vm.pop() * 2) }

// 2/ ( a -- a/2 )
func (vm *VM) twoDiv(_ int) { vm.push(vm.pop() / 2) }

//// Comparison; truth is -1, falsehood 0

func boolCell(b bool) float64 {
	if b {
		return -1
	}
	return 0
}

// = ( a b -- flag )
func (vm *VM) eq(_ int) {
	b, a := vm.pop(), vm.pop()
	vm.push(boolCell(a == b))
}

// <> ( a b -- flag )
func (vm *VM) ne(_ int) {
	b, a := vm.pop(), vm.pop()
	vm.push(boolCell(a != b))
}

// < ( a b -- flag )
func (vm *VM) lt(_ int) {
	b, a := vm.pop(), vm.pop()
	vm.push(boolCell(a < b))
}

// > ( a b -- flag )
func (vm *VM) gt(_ int) {
	b, a := vm.pop(), vm.pop()
	vm.push(boolCell(a > b))
}

// <= ( a b -- flag )
func (vm *VM) le(_ int) {
	b, a := vm.pop(), vm.pop()
	vm.push(boolCell(a <= b))
}

// >= ( a b -- flag )
func (vm *VM) ge(_ int) {
	b, a := vm.pop(), vm.pop()
	vm.push(boolCell(a >= b))
}

// 0= ( a -- flag )
func (vm *VM) zeroEq(_ int) { vm.push(boolCell(vm.pop() == 0)) }

// 0< ( a -- flag )
func (vm *VM) zeroLt(_ int) { vm.push(boolCell(vm.pop() < 0)) }

// 0> ( a -- flag )
func (vm *VM) zeroGt(_ int) { vm.push(boolCell(vm.pop() > 0)) }

//// Logic; bitwise over the integer value of each cell

// AND ( a b -- a&b )
func (vm *VM) and(_ int) {
	b, a := vm.pop(), vm.pop()
	vm.push(float64(int64(a) & int64(b)))
}

// OR ( a b -- a|b )
func (vm *VM) or(_ int) {
	b, a := vm.pop(), vm.pop()
	vm.push(float64(int64(a) | int64(b)))
}

// XOR ( a b -- a^b )
func (vm *VM) xor(_ int) {
	b, a := vm.pop(), vm.pop()
	vm.push(float64(int64(a) ^ int64(b)))
}

// INVERT ( a -- ^a )
func (vm *VM) invert(_ int) { vm.push(float64(^int64(vm.pop()))) }

// TRUE ( -- -1 )
func (vm *VM) truePrim(_ int) { vm.push(-1) }

// FALSE ( -- 0 )
func (vm *VM) falsePrim(_ int) { vm.push(0) }

//// Memory

// @ ( addr -- x )
func (vm *VM) fetchPrim(_ int) { vm.push(vm.fetch(int(vm.pop()))) }

// ! ( x addr -- )
func (vm *VM) storePrim(_ int) {
	addr := int(vm.pop())
	vm.store(addr, vm.pop())
}

// +! ( x addr -- )
func (vm *VM) plusStore(_ int) {
	addr := int(vm.pop())
	vm.store(addr, vm.fetch(addr)+vm.pop())
}

// C@ ( addr -- c )
func (vm *VM) cFetchPrim(_ int) { vm.push(float64(vm.cFetch(int(vm.pop())))) }

// C! ( c addr -- )
func (vm *VM) cStorePrim(_ int) {
	addr := int(vm.pop())
	vm.cStore(addr, byte(int(vm.pop())))
}

// , ( x -- ) append one cell to the dictionary
func (vm *VM) comma(_ int) {
	vm.alignHere()
	vm.checkRoom(cellSize)
	vm.store(vm.ds, vm.pop())
	vm.ds += cellSize
}

// C, ( c -- ) append one character to the dictionary
func (vm *VM) cComma(_ int) {
	vm.checkRoom(1)
	vm.cStore(vm.ds, byte(int(vm.pop())))
	vm.ds++
}

// ALLOT ( n -- ) reserve n bytes of dictionary space
func (vm *VM) allot(_ int) {
	n := int(vm.pop())
	if vm.ds+n < dspStartAddr {
		vm.fail(OutOfMemory)
	}
	vm.checkRoom(n)
	vm.ds += n
}

// ALIGN ( -- )
func (vm *VM) alignPrim(_ int) { vm.alignHere() }

// ALIGNED ( addr -- a-addr )
func (vm *VM) alignedPrim(_ int) { vm.push(float64(aligned(int(vm.pop())))) }

// HERE ( -- addr )
func (vm *VM) herePrim(_ int) { vm.push(float64(vm.ds)) }

// CELLS ( n -- n*8 )
func (vm *VM) cells(_ int) { vm.push(vm.pop() * cellSize) }

// CELL+ ( addr -- addr+8 )
func (vm *VM) cellPlus(_ int) { vm.push(vm.pop() + cellSize) }

// CHAR+ ( addr -- addr+1 )
func (vm *VM) charPlus(_ int) { vm.push(vm.pop() + 1) }

// CHARS ( n -- n )
func (vm *VM) chars(_ int) {}

// COUNT ( addr -- addr+1 len ) unpack a counted string
func (vm *VM) count(_ int) {
	addr := int(vm.pop())
	vm.push(float64(addr + 1))
	vm.push(float64(vm.cFetch(addr)))
}

//// Output

// EMIT ( c -- ) bytes outside the printable range render as ?
func (vm *VM) emit(_ int) {
	c := int(vm.pop())
	if c < 32 || c > 126 {
		vm.write("?")
		return
	}
	vm.write(string(byte(c)))
}

// TYPE ( addr len -- )
func (vm *VM) typePrim(_ int) {
	n := int(vm.pop())
	addr := int(vm.pop())
	vm.write(vm.memString(addr, n))
}

// CR ( -- )
func (vm *VM) cr(_ int) { vm.write("\n") }

// SPACE ( -- )
func (vm *VM) space(_ int) { vm.write(" ") }

// SPACES ( n -- )
func (vm *VM) spaces(_ int) {
	for n := int(vm.pop()); n > 0; n-- {
		vm.write(" ")
	}
}

// BL ( -- 32 )
func (vm *VM) blPrim(_ int) { vm.push(' ') }

// . ( x -- ) print the cell in decimal, then a space
func (vm *VM) dot(_ int) {
	vm.write(formatCell(vm.pop()))
	vm.write(" ")
}

// .S ( -- ) print the stack bottom-to-top
func (vm *VM) dotS(_ int) {
	for i := vm.depth() - 1; i >= 0; i-- {
		vm.write(formatCell(vm.pick(i)))
		vm.write(" ")
	}
	vm.write("<top")
}

//// Strings and comments

// S" ( -- addr len ) parse to the closing quote; compiling, embed the text
// in the body and compile the pair of literals
func (vm *VM) sQuote(_ int) {
	addr, n := vm.parse('"')
	s := vm.memString(addr, n)
	if vm.compiling() {
		vm.compileString(s)
		return
	}
	for i := 0; i < len(s); i++ {
		vm.cStore(podStringAddr+i, s[i])
	}
	vm.push(float64(podStringAddr))
	vm.push(float64(len(s)))
}

// ." ( -- ) type the parsed text; compiling, embed it and compile TYPE
func (vm *VM) dotQuote(_ int) {
	addr, n := vm.parse('"')
	s := vm.memString(addr, n)
	if vm.compiling() {
		vm.compileString(s)
		vm.compileXT(vm.xtType)
		return
	}
	vm.write(s)
}

// ( ( -- ) skip to the closing paren
func (vm *VM) paren(_ int) {
	vm.parse(')')
}

// \ ( -- ) discard the rest of the line
func (vm *VM) backslash(_ int) {
	_, count := vm.source()
	vm.setToIn(count)
}

//// Parsing words

// WORD ( delim -- addr ) legacy parser; counted string in POD
func (vm *VM) wordPrim(_ int) {
	delim := byte(int(vm.pop()))
	vm.push(float64(vm.parseWord(delim)))
}

// PARSE ( delim -- addr len )
func (vm *VM) parsePrim(_ int) {
	delim := byte(int(vm.pop()))
	addr, n := vm.parse(delim)
	vm.push(float64(addr))
	vm.push(float64(n))
}

// PARSE-NAME ( -- addr len )
func (vm *VM) parseNamePrim(_ int) {
	addr, n := vm.parseName()
	vm.push(float64(addr))
	vm.push(float64(n))
}

// CHAR ( -- c ) first character of the next token
func (vm *VM) charPrim(_ int) {
	addr, n := vm.parseName()
	if n == 0 {
		vm.fail(EmptyName)
	}
	vm.push(float64(vm.cFetch(addr)))
}

// [CHAR] ( -- c ) immediate CHAR; compiles the character as a literal
func (vm *VM) bracketChar(_ int) {
	addr, n := vm.parseName()
	if n == 0 {
		vm.fail(EmptyName)
	}
	c := float64(vm.cFetch(addr))
	if vm.compiling() {
		vm.compileLiteral(c)
		return
	}
	vm.push(c)
}

// SOURCE ( -- addr count )
func (vm *VM) sourcePrim(_ int) {
	addr, count := vm.source()
	vm.push(float64(addr))
	vm.push(float64(count))
}

// >IN ( -- addr )
func (vm *VM) toInPrim(_ int) { vm.push(toInAddr) }

// >NUMBER ( addr len -- n rem )
func (vm *VM) toNumberPrim(_ int) {
	n := int(vm.pop())
	addr := int(vm.pop())
	val, rem := vm.toNumber(addr, n)
	vm.push(val)
	vm.push(float64(rem))
}

// >UPPERCASE ( src len dst -- dst )
func (vm *VM) toUppercasePrim(_ int) {
	dst := int(vm.pop())
	n := int(vm.pop())
	src := int(vm.pop())
	vm.push(float64(vm.toUppercase(src, n, dst)))
}

//// Defining words

// CREATE ( -- ) header with an empty parameter field; the new word pushes
// its parameter-field address
func (vm *VM) createPrim(_ int) {
	vm.createWord()
}

// VARIABLE ( -- ) CREATE plus one reserved zero cell
func (vm *VM) variablePrim(_ int) {
	vm.createWord()
	vm.alignHere()
	vm.checkRoom(cellSize)
	vm.store(vm.ds, 0)
	vm.ds += cellSize
}

// CONSTANT ( x -- ) the new word pushes x
func (vm *VM) constantPrim(_ int) {
	nfa := vm.createWord()
	vm.store(nfa+xtOffset, encodeXT(nfa+headerSize, ridConstant))
	vm.alignHere()
	vm.checkRoom(cellSize)
	vm.store(vm.ds, vm.pop())
	vm.ds += cellSize
}

// VALUE ( x -- ) like CONSTANT, but TO can rewrite it
func (vm *VM) valuePrim(_ int) {
	nfa := vm.createWord()
	vm.store(nfa+xtOffset, encodeXT(nfa+headerSize, ridValue))
	vm.alignHere()
	vm.checkRoom(cellSize)
	vm.store(vm.ds, vm.pop())
	vm.ds += cellSize
}

// TO ( x -- ) store into the parameter field of the named word
func (vm *VM) toPrim(_ int) {
	pfa, _ := decodeXT(vm.tickWord())
	vm.store(pfa, vm.pop())
}

// : ( -- ) begin a colon definition, hidden until ;
func (vm *VM) colon(_ int) {
	nfa := vm.createWord()
	vm.cStore(nfa+flagsOffset, vm.cFetch(nfa+flagsOffset)|flagHidden)
	vm.store(nfa+xtOffset, encodeXT(nfa+headerSize, ridNest))
	vm.store(stateAddr, -1)
}

// ; ( -- ) seal the body with unNest, reveal the word, leave compile state
func (vm *VM) semicolon(_ int) {
	if nfa := vm.latest(); nfa != 0 {
		vm.cStore(nfa+flagsOffset, vm.cFetch(nfa+flagsOffset)&^flagHidden)
	}
	vm.alignHere()
	vm.compileXT(encodeXT(vm.ds, ridUnNest))
	vm.store(stateAddr, 0)
}

// IMMEDIATE ( -- ) mark the latest definition immediate
func (vm *VM) immediatePrim(_ int) {
	if nfa := vm.latest(); nfa != 0 {
		vm.cStore(nfa+flagsOffset, vm.cFetch(nfa+flagsOffset)|flagImmediate)
	}
}

// ' ( -- xt )
func (vm *VM) tick(_ int) { vm.push(vm.tickWord()) }

// ['] ( -- xt ) immediate '; compiles the token as a literal
func (vm *VM) bracketTick(_ int) {
	xt := vm.tickWord()
	if vm.compiling() {
		vm.compileLiteral(xt)
		return
	}
	vm.push(xt)
}

// EXECUTE ( xt -- )
func (vm *VM) executePrim(_ int) { vm.exec1(vm.pop()) }

// >BODY ( xt -- pfa )
func (vm *VM) toBody(_ int) {
	pfa, _ := decodeXT(vm.pop())
	vm.push(float64(pfa))
}

// STATE ( -- addr )
func (vm *VM) statePrim(_ int) { vm.push(stateAddr) }

// [ ( -- ) enter interpret state; immediate
func (vm *VM) lBracket(_ int) { vm.store(stateAddr, 0) }

// ] ( -- ) enter compile state
func (vm *VM) rBracket(_ int) { vm.store(stateAddr, -1) }

//// System

// ABORT ( ... -- ) clear both stacks and the input line
func (vm *VM) abortPrim(_ int) { vm.abort() }

// QUIT ( -- ) clear the return stack and the input line
func (vm *VM) quitPrim(_ int) { vm.quit() }

// WORDS ( -- ) list visible definitions, newest first
func (vm *VM) wordsPrim(_ int) {
	for nfa := vm.latest(); nfa != 0; nfa = int(vm.fetch(nfa + linkOffset)) {
		if vm.cFetch(nfa+flagsOffset)&flagHidden != 0 {
			continue
		}
		vm.write(vm.name(nfa))
		vm.write(" ")
	}
	vm.write("\n")
}

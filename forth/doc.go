// Package forth implements the core of a Forth-83/94 style interpreter: a
// stack-based virtual machine that reads free-form source text, parses
// space-delimited tokens, and either executes them immediately or compiles
// them into a linked dictionary of user definitions.
//
// All durable state lives in a single 64000-byte memory image, addressable
// both as characters and as 8-aligned 64-bit float cells. The image holds the
// interpreter registers, the terminal input buffer, the data and return
// stacks, a scratch area, and the growing dictionary. Each dictionary entry
// is a 48-byte header (counted uppercase name, flags, link, execution token)
// followed by its parameter field.
//
// An execution token packs a parameter-field address and a runtime id into
// one numeric cell, XT = 100000*PFA + RID. EXECUTE decodes the pair,
// dispatches the native action selected by the RID, and then drives an
// explicit instruction-pointer loop so colon definitions thread through
// their compiled token cells without consuming host stack.
//
// The embedding host sees two operations: Interpret, which submits one line
// of source and always returns, and Pop, which removes the top data-stack
// cell. All text output flows through an injected write sink; see the
// VMOption constructors.
//
//	vm := forth.New(forth.WithOutput(os.Stdout))
//	vm.Interpret(": sq DUP * ;")
//	vm.Interpret("6 sq")
//	v, err := vm.Pop() // 36
package forth

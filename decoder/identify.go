package decoder

import "golang.org/x/arch/x86/x86asm"

// Identify returns the leading instruction of code in 16-bit Intel syntax,
// e.g. "add byte ptr [bx+si], al", or "" when the bytes do not decode. It
// covers the whole x86 instruction set and is used to describe bytes this
// package does not decode.
func Identify(code []byte) string {
	if len(code) == 0 {
		return ""
	}
	inst, err := x86asm.Decode(code, 16)
	// a dangling prefix or opcode byte decodes to a pseudo-instruction
	// with no Op
	if err != nil || inst.Op == 0 {
		return ""
	}
	return x86asm.IntelSyntax(inst, 0, noSymbols)
}

func noSymbols(uint64) (string, uint64) { return "", 0 }

package decoder

// Width is the operand size selected by an instruction's W bit.
type Width byte

const (
	Byte Width = 0
	Word Width = 1
)

func (w Width) String() string {
	if w == Word {
		return "word"
	}
	return "byte"
}

// Reg packs a 3-bit register code with its width: bit 3 marks a valid
// register and bit 4 carries W, so the zero value is NoReg.
type Reg byte

const (
	NoReg Reg = 0b000

	// W = 0
	AL Reg = 0b1000
	CL Reg = 0b1001
	DL Reg = 0b1010
	BL Reg = 0b1011
	AH Reg = 0b1100
	CH Reg = 0b1101
	DH Reg = 0b1110
	BH Reg = 0b1111

	// W = 1
	AX Reg = 0b11000
	CX Reg = 0b11001
	DX Reg = 0b11010
	BX Reg = 0b11011
	SP Reg = 0b11100
	BP Reg = 0b11101
	SI Reg = 0b11110
	DI Reg = 0b11111
)

func register(code byte, w Width) Reg {
	return Reg((byte(w)&1)<<4 | 1<<3 | code&0b111)
}

// Code returns the 3-bit register code.
func (r Reg) Code() byte { return byte(r) & 0b111 }

// Width returns the register's operand size.
func (r Reg) Width() Width { return Width(byte(r) >> 4 & 1) }

func (r Reg) String() string {
	if r == NoReg {
		return "INVALID REG"
	}
	return regNames[r.Width()][r.Code()]
}

var regNames = [2][8]string{
	Byte: {"al", "cl", "dl", "bl", "ah", "ch", "dh", "bh"},
	Word: {"ax", "cx", "dx", "bx", "sp", "bp", "si", "di"},
}

// effectiveAddr maps an r/m code to the base registers of its address
// expression. r/m 110 with mod 00 is a direct address and never reaches
// this table.
var effectiveAddr = [8][2]Reg{
	0b000: {BX, SI},
	0b001: {BX, DI},
	0b010: {BP, SI},
	0b011: {BP, DI},
	0b100: {SI, NoReg},
	0b101: {DI, NoReg},
	0b110: {BP, NoReg},
	0b111: {BX, NoReg},
}

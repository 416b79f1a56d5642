package decoder

// OperandKind says how an Operand is addressed.
type OperandKind byte

const (
	OperandNone OperandKind = iota
	OperandRegister
	OperandMemory
	OperandDirect
	OperandImmediate
)

// Operand is one side of an instruction. Which fields are meaningful
// depends on Kind:
//
//	OperandRegister   Reg1
//	OperandMemory     Reg1, Reg2 (may be NoReg), Disp when HasDisp
//	OperandDirect     Addr
//	OperandImmediate  Imm, Width
type Operand struct {
	Kind OperandKind

	Reg1 Reg
	Reg2 Reg

	Disp    int16
	HasDisp bool

	Addr uint16

	Imm   int16
	Width Width
}

func registerOperand(code byte, w Width) Operand {
	return Operand{Kind: OperandRegister, Reg1: register(code, w), Width: w}
}

func accumulator(w Width) Operand {
	return registerOperand(0b000, w)
}

func directOperand(addr uint16, w Width) Operand {
	return Operand{Kind: OperandDirect, Addr: addr, Width: w}
}

func immediateOperand(imm int16, w Width) Operand {
	return Operand{Kind: OperandImmediate, Imm: imm, Width: w}
}

// IsMemory reports whether the operand addresses memory.
func (o Operand) IsMemory() bool {
	return o.Kind == OperandMemory || o.Kind == OperandDirect
}

// modRM resolves the mod and r/m fields into an operand, reading any
// displacement or direct address that follows.
func (d *Decoder) modRM(mod, rm byte, w Width) (Operand, error) {
	switch mod {
	case 0b00: // Memory mode, no displacement *
		if rm == 0b110 { // * direct address
			addr, err := d.addr16()
			if err != nil {
				return Operand{}, err
			}
			return directOperand(addr, w), nil
		}
		return memoryOperand(rm, w), nil
	case 0b01, 0b10: // Memory mode, 8- or 16-bit displacement
		disp, err := d.disp(mod)
		if err != nil {
			return Operand{}, err
		}
		o := memoryOperand(rm, w)
		o.Disp, o.HasDisp = disp, true
		return o, nil
	default: // Register mode (no displacement)
		return registerOperand(rm, w), nil
	}
}

func memoryOperand(rm byte, w Width) Operand {
	ea := effectiveAddr[rm&0b111]
	return Operand{Kind: OperandMemory, Reg1: ea[0], Reg2: ea[1], Width: w}
}

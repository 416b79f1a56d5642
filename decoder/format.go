package decoder

import (
	"fmt"
	"strconv"
	"strings"
)

func (o Operand) String() string {
	switch o.Kind {
	case OperandRegister:
		return o.Reg1.String()
	case OperandMemory:
		return "[" + o.address() + "]"
	case OperandDirect:
		return "[" + strconv.Itoa(int(o.Addr)) + "]"
	case OperandImmediate:
		return strconv.Itoa(int(o.Imm))
	}
	return ""
}

// address renders a base-register expression with its displacement. The
// sign goes between base and magnitude, so -5 renders as "bp - 5".
func (o Operand) address() string {
	var sb strings.Builder
	sb.WriteString(o.Reg1.String())
	if o.Reg2 != NoReg {
		sb.WriteString(" + ")
		sb.WriteString(o.Reg2.String())
	}
	if o.HasDisp {
		disp := int(o.Disp)
		if disp < 0 {
			sb.WriteString(" - ")
			disp = -disp
		} else {
			sb.WriteString(" + ")
		}
		sb.WriteString(strconv.Itoa(disp))
	}
	return sb.String()
}

func (i Instruction) String() string {
	switch i.Name {
	case Placeholder:
		return fmt.Sprintf("%s 0x%02x", i.Name, uint8(i.Operand1.Imm))
	}
	src := i.Operand2.String()
	if i.SizeQualified {
		src = i.Operand2.Width.String() + " " + src
	}
	return fmt.Sprintf("%s %s, %s", i.Name, i.Operand1, src)
}

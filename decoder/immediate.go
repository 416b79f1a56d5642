package decoder

import (
	"errors"
	"io"
)

// next reads a follow-on byte of the current instruction. Running out of
// input here is a truncated instruction, never a silent stop.
func (d *Decoder) next() (byte, error) {
	b, err := d.read()
	if errors.Is(err, io.EOF) {
		return 0, ErrTruncatedInstruction
	}
	return b, err
}

// imm8 reads one byte and sign-extends it to 16 bits.
func (d *Decoder) imm8() (int16, error) {
	b, err := d.next()
	if err != nil {
		return 0, err
	}
	return int16(int8(b)), nil
}

// word reads two bytes, low byte first.
func (d *Decoder) word() (uint16, error) {
	lo, err := d.next()
	if err != nil {
		return 0, err
	}
	hi, err := d.next()
	if err != nil {
		return 0, err
	}
	return uint16(lo) | uint16(hi)<<8, nil
}

// imm16 reads a little-endian word and reinterprets its bits as signed.
func (d *Decoder) imm16() (int16, error) {
	v, err := d.word()
	return int16(v), err
}

// addr16 reads an absolute 16-bit address.
func (d *Decoder) addr16() (uint16, error) {
	return d.word()
}

// data reads an immediate operand of the given width.
func (d *Decoder) data(w Width) (int16, error) {
	if w == Word {
		return d.imm16()
	}
	return d.imm8()
}

// disp reads the displacement selected by mod: one sign-extended byte for
// 01, a word for 10.
func (d *Decoder) disp(mod byte) (int16, error) {
	if mod == 0b01 {
		return d.imm8()
	}
	return d.imm16()
}

// Package decoder turns 8086 machine code into MOV assembly text.
//
// A Decoder pulls bytes from an io.ByteReader one instruction at a time.
// Every call to Next either returns one Instruction, returns io.EOF at a
// clean end of input, or returns a *DecodeError describing the bytes it
// could not decode. Decode wraps Next in a loop and applies a Policy to
// decode errors.
package decoder

import (
	"errors"
	"fmt"
	"io"

	"github.com/sirupsen/logrus"
)

// Placeholder is the mnemonic of records standing in for undecodable bytes.
const Placeholder = "db"

// Instruction is one decoded instruction. Operand1 is the destination and
// Operand2 the source.
type Instruction struct {
	Name   string
	Offset int
	Raw    []byte

	W Width

	Operand1 Operand
	Operand2 Operand

	// SizeQualified renders the source with a byte/word prefix. It is set
	// for immediates stored to memory, where no register fixes the size.
	SizeQualified bool
}

// Config controls a Decoder. The zero value stops at the first decode error
// and logs nothing.
type Config struct {
	Policy Policy
	Logger logrus.FieldLogger
}

// Decoder decodes one instruction at a time from a byte source.
type Decoder struct {
	src io.ByteReader
	cfg Config
	log logrus.FieldLogger

	// offset of the next byte to read
	di int
	// bytes read for the instruction in progress
	raw []byte
}

// New returns a Decoder reading from src.
func New(src io.ByteReader, cfg Config) *Decoder {
	log := cfg.Logger
	if log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		log = l
	}
	return &Decoder{src: src, cfg: cfg, log: log}
}

// NewBytes returns a Decoder over an in-memory program.
func NewBytes(data []byte, cfg Config) *Decoder {
	return New(NewCursor(data), cfg)
}

// Offset is the number of bytes consumed so far.
func (d *Decoder) Offset() int { return d.di }

// read pulls one byte from the source and records it against the current
// instruction.
func (d *Decoder) read() (byte, error) {
	b, err := d.src.ReadByte()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return 0, io.EOF
		}
		return 0, fmt.Errorf("read byte at offset %d: %w", d.di, err)
	}
	d.raw = append(d.raw, b)
	d.di++
	return b, nil
}

// Next decodes the next instruction. It returns io.EOF when the source is
// exhausted between instructions and a *DecodeError when the instruction
// starting at the current offset cannot be decoded. After a *DecodeError
// the Decoder is positioned after the bytes it consumed and Next may be
// called again.
func (d *Decoder) Next() (Instruction, error) {
	start := d.di
	d.raw = nil

	b, err := d.read()
	if err != nil {
		return Instruction{}, err
	}

	encs := encoder.Match(b)
	if len(encs) == 0 {
		return Instruction{}, d.fail(start, ErrUnrecognizedOpcode)
	}

	in, err := d.decode(encs[0], b)
	if err != nil {
		if errors.Is(err, ErrTruncatedInstruction) {
			return Instruction{}, d.fail(start, err)
		}
		return Instruction{}, err
	}
	in.Offset = start
	in.Raw = d.raw

	d.log.WithFields(logrus.Fields{
		"offset": start,
		"bytes":  fmt.Sprintf("% x", in.Raw),
	}).Debugf("decoded %s", in)
	return in, nil
}

func (d *Decoder) fail(start int, err error) error {
	return &DecodeError{Offset: start, Raw: d.raw, Err: err}
}

// decode reads the rest of an instruction whose leading byte b matched enc.
func (d *Decoder) decode(enc Encoding, b byte) (Instruction, error) {
	var f fields
	f.extract(b, enc.Bytes[0])
	for _, parts := range enc.fieldBytes() {
		nb, err := d.next()
		if err != nil {
			return Instruction{}, err
		}
		f.extract(nb, parts)
	}

	w := Width(f.get("W"))
	in := Instruction{Name: enc.Name, W: w}

	hasMod := f.has("MOD")
	hasReg := f.has("REG")

	var rmOp, regOp, extra Operand
	if hasMod {
		o, err := d.modRM(f.get("MOD"), f.get("RM"), w)
		if err != nil {
			return Instruction{}, err
		}
		rmOp = o
	}
	if hasReg {
		regOp = registerOperand(f.get("REG"), w)
	}
	if enc.has("ADDRLO") {
		addr, err := d.addr16()
		if err != nil {
			return Instruction{}, err
		}
		extra = directOperand(addr, w)
	}
	if enc.has("DATA") {
		imm, err := d.data(w)
		if err != nil {
			return Instruction{}, err
		}
		extra = immediateOperand(imm, w)
	}

	switch {
	case hasMod && hasReg:
		in.Operand1, in.Operand2 = rmOp, regOp
		if f.get("D") == 1 {
			in.Operand1, in.Operand2 = in.Operand2, in.Operand1
		}
	case hasMod:
		in.Operand1, in.Operand2 = rmOp, extra
		in.SizeQualified = rmOp.IsMemory()
	case hasReg:
		in.Operand1, in.Operand2 = regOp, extra
	case f.has("ACCDST"):
		in.Operand1, in.Operand2 = accumulator(w), extra
	case f.has("ACCSRC"):
		in.Operand1, in.Operand2 = extra, accumulator(w)
	default:
		return Instruction{}, fmt.Errorf("encoding %q has no operand layout", enc.Orig)
	}
	return in, nil
}

// Decode decodes instructions until the source is exhausted, passing each to
// emit in order. Decode errors are handled according to the configured
// Policy; errors from the source or from emit end decoding.
func (d *Decoder) Decode(emit func(Instruction) error) error {
	for {
		in, err := d.Next()
		if errors.Is(err, io.EOF) {
			return nil
		}
		var de *DecodeError
		if errors.As(err, &de) {
			if err := d.handle(de, emit); err != nil {
				return err
			}
			continue
		}
		if err != nil {
			return err
		}
		if err := emit(in); err != nil {
			return err
		}
	}
}

func (d *Decoder) handle(de *DecodeError, emit func(Instruction) error) error {
	switch d.cfg.Policy {
	case PolicySkip:
		diag := logrus.Fields{
			"offset": de.Offset,
			"bytes":  fmt.Sprintf("% x", de.Raw),
		}
		if c, ok := d.src.(*Cursor); ok {
			if name := Identify(c.From(de.Offset)); name != "" {
				diag["x86"] = name
			}
		}
		d.log.WithFields(diag).Warnf("skipping: %v", de.Err)
		return nil
	case PolicyPlaceholder:
		for i, b := range de.Raw {
			if err := emit(placeholder(de.Offset+i, b)); err != nil {
				return err
			}
		}
		return nil
	default:
		return de
	}
}

func placeholder(offset int, b byte) Instruction {
	return Instruction{
		Name:     Placeholder,
		Offset:   offset,
		Raw:      []byte{b},
		Operand1: immediateOperand(int16(b), Byte),
	}
}

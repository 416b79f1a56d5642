package decoder

import (
	"fmt"
	"sort"
	"strings"

	_ "embed"
)

var (
	//go:embed mov_encodings.txt
	movEncodings string

	encoder = mustEncoder(movEncodings)
)

var sizes = map[string]int{
	"D":   1,
	"W":   1,
	"MOD": 2,
	"REG": 3,
	"RM":  3,
	// opcode extension carried in the reg field; MOV ignores it
	"EXT":    3,
	"DATA":   8,
	"ADDRLO": 8,
	"ADDRHI": 8,
	// implicit accumulator operand, no bits of its own
	"ACCDST": 0,
	"ACCSRC": 0,
}

// payload tokens stand for whole bytes read after the bit-field bytes.
var payload = map[string]bool{
	"DATA":   true,
	"ADDRLO": true,
	"ADDRHI": true,
}

func sizeOf(val string) int {
	if size, ok := sizes[val]; ok {
		return size
	}
	return len(val)
}

func nameOf(val string) string {
	if _, ok := sizes[val]; ok {
		return val
	}
	return "const_" + val
}

func isConst(val string) bool {
	if _, ok := sizes[val]; ok {
		return false
	}
	return strings.Trim(val, "01") == ""
}

// Encoder holds a parsed encoding table.
type Encoder struct {
	rawEncoding string

	encodings []Encoding
}

// Encoding is one parsed line of the encoding table.
type Encoding struct {
	Orig string

	Name   string
	Opcode Opcode

	Bytes [][]Part
}

// Part is a bit field of one encoded byte, counted from the high bit.
type Part struct {
	Name  string
	Start int
	Len   int

	IsConst bool
	Const   byte
}

// Opcode is the constant leading bits of an encoding.
type Opcode struct {
	Opcode byte
	Len    int
}

func (o Opcode) String() string {
	return fmt.Sprintf("%d: %0*b", o.Len, o.Len, o.Opcode)
}

// NewEncoder parses an encoding table. Blank lines and lines starting with
// '#' are ignored. Every byte of an encoding must describe exactly 8 bits.
func NewEncoder(instructionEncodings string) (Encoder, error) {
	e := Encoder{rawEncoding: instructionEncodings}
	for i, line := range strings.Split(instructionEncodings, "\n") {
		line = strings.TrimSpace(line)
		if len(line) == 0 || line[0] == '#' {
			continue
		}
		enc := Encoding{Orig: line}

		tokens := strings.Fields(line)
		if len(tokens) < 2 {
			return Encoder{}, fmt.Errorf("line %d (%s): no encoded bytes", i+1, line)
		}
		enc.Name = tokens[0]
		for _, tok := range tokens[1:] {
			var parts []Part
			total := 8

			pi := 0
			for _, p := range strings.Split(tok, "_") {
				if p == "" {
					return Encoder{}, fmt.Errorf("line %d (%s): empty field in %q", i+1, line, tok)
				}
				if _, ok := sizes[p]; !ok && !isConst(p) {
					return Encoder{}, fmt.Errorf("line %d (%s): unknown field %q", i+1, line, p)
				}
				if enc.Opcode.Len == 0 {
					if !isConst(p) {
						return Encoder{}, fmt.Errorf("line %d (%s): encoding must start with an opcode", i+1, line)
					}
					enc.Opcode.Opcode = convert(p)
					enc.Opcode.Len = len(p)
				}
				size := sizeOf(p)

				part := Part{
					Name:  nameOf(p),
					Start: pi,
					Len:   size,
				}
				if isConst(p) {
					part.IsConst = true
					part.Const = convert(p)
				}
				parts = append(parts, part)

				total -= size
				pi += size
			}
			if total != 0 {
				return Encoder{}, fmt.Errorf("line %d (%s): part %q doesn't equal 8 bits", i+1, line, tok)
			}
			enc.Bytes = append(enc.Bytes, parts)
		}
		e.encodings = append(e.encodings, enc)
	}
	if len(e.encodings) == 0 {
		return Encoder{}, fmt.Errorf("no encodings found")
	}
	return e, nil
}

func mustEncoder(text string) Encoder {
	e, err := NewEncoder(text)
	if err != nil {
		panic(fmt.Sprintf("decoder: invalid encoding table: %v", err))
	}
	return e
}

// Match returns the encodings whose leading-byte constants all match b,
// longest opcode first. Ties keep table order.
func (e Encoder) Match(b byte) []Encoding {
	var found []Encoding
	for _, enc := range e.encodings {
		if enc.matches(b) {
			found = append(found, enc)
		}
	}
	sort.SliceStable(found, func(i, j int) bool {
		return found[i].Opcode.Len > found[j].Opcode.Len
	})
	return found
}

func (enc Encoding) matches(b byte) bool {
	for _, p := range enc.Bytes[0] {
		if p.IsConst && field(b, p) != p.Const {
			return false
		}
	}
	return true
}

// Encodings returns the parsed table in file order.
func (e Encoder) Encodings() []Encoding {
	return append([]Encoding(nil), e.encodings...)
}

// fieldBytes returns the bytes after the leading one that carry bit fields,
// i.e. the ModRM byte when there is one.
func (enc Encoding) fieldBytes() [][]Part {
	var out [][]Part
	for _, parts := range enc.Bytes[1:] {
		if len(parts) == 1 && payload[parts[0].Name] {
			continue
		}
		out = append(out, parts)
	}
	return out
}

// has reports whether any byte of the encoding carries the named token.
func (enc Encoding) has(name string) bool {
	for _, parts := range enc.Bytes {
		for _, p := range parts {
			if p.Name == name {
				return true
			}
		}
	}
	return false
}

func convert(v string) byte {
	b := byte(0)
	for i, c := range v {
		if c == '1' {
			b |= 1 << (len(v) - 1 - i)
		}
	}
	return b
}

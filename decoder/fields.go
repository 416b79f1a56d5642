package decoder

// mask returns a byte with the low length bits set.
func mask(length int) byte {
	if length <= 0 {
		return 0
	}
	m := byte(1)
	for i := 1; i < length; i++ {
		m = m << 1
		m |= 1
	}
	return m
}

// field extracts the bits a part describes. Parts count their start from
// the most significant bit.
func field(b byte, p Part) byte {
	if p.Len == 0 {
		return 0
	}
	return (b >> (8 - (p.Start + p.Len))) & mask(p.Len)
}

// fields holds the named values read out of one or more encoded bytes.
type fields struct {
	values map[string]byte
}

func (f *fields) set(name string, v byte) {
	if f.values == nil {
		f.values = make(map[string]byte)
	}
	f.values[name] = v
}

func (f fields) has(name string) bool {
	_, ok := f.values[name]
	return ok
}

func (f fields) get(name string) byte {
	return f.values[name]
}

// extract reads every named part of b into f. Constant parts are skipped:
// they were already checked when the encoding was matched.
func (f *fields) extract(b byte, parts []Part) {
	for _, p := range parts {
		if p.IsConst {
			continue
		}
		f.set(p.Name, field(b, p))
	}
}

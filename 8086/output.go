package main

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/vishen/perfaware/decoder"
)

type printer interface {
	print(in decoder.Instruction) error
}

func newPrinter(format string, debug bool, w io.Writer) (printer, error) {
	switch format {
	case "text":
		return textPrinter{w: w, debug: debug}, nil
	case "json":
		return jsonPrinter{enc: json.NewEncoder(w)}, nil
	}
	return nil, fmt.Errorf("unknown output format %q", format)
}

type textPrinter struct {
	w     io.Writer
	debug bool
}

func (p textPrinter) print(in decoder.Instruction) error {
	var sb strings.Builder
	sb.WriteString(in.String())
	if p.debug {
		sb.WriteString(" (")
		for _, b := range in.Raw {
			fmt.Fprintf(&sb, " %08b", b)
		}
		sb.WriteString(" )")
	}
	sb.WriteByte('\n')
	_, err := io.WriteString(p.w, sb.String())
	return err
}

type record struct {
	Offset int    `json:"offset"`
	Bytes  string `json:"bytes"`
	Text   string `json:"text"`
}

type jsonPrinter struct {
	enc *json.Encoder
}

func (p jsonPrinter) print(in decoder.Instruction) error {
	return p.enc.Encode(record{
		Offset: in.Offset,
		Bytes:  hex.EncodeToString(in.Raw),
		Text:   in.String(),
	})
}

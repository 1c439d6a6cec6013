package decode

import (
	"bytes"
	"encoding/binary"

	"github.com/shaderkit/spirvtext/spirv"
	"github.com/shaderkit/spirvtext/xerr"
)

// Decoder reads a word-aligned SPIR-V byte buffer and yields Instructions
// in stream order. A Decoder is single-use and holds no state beyond its
// cursor into buf; it never mutates buf.
type Decoder struct {
	words []uint32
	pos   int // word index of the next instruction header
}

// New validates the module header and returns a Decoder positioned at the
// first instruction. It fails with a Malformed xerr.Error if the magic
// number doesn't match (even after a byte swap), or if the buffer is too
// short to hold a header.
func New(buf []byte) (*Decoder, Header, error) {
	if len(buf)%4 != 0 {
		return nil, Header{}, xerr.Malformedf("buffer length %d is not word-aligned", len(buf))
	}
	if len(buf) < spirv.HeaderWords*4 {
		return nil, Header{}, xerr.Malformedf("buffer too short for a SPIR-V header: %d bytes", len(buf))
	}

	words := make([]uint32, len(buf)/4)
	for i := range words {
		words[i] = binary.LittleEndian.Uint32(buf[i*4 : i*4+4])
	}

	if words[0] != spirv.MagicNumber {
		swapped := make([]uint32, len(words))
		for i, w := range words {
			swapped[i] = byteSwap32(w)
		}
		if swapped[0] != spirv.MagicNumber {
			return nil, Header{}, xerr.Malformedf("bad magic number: 0x%08x", words[0])
		}
		words = swapped
	}

	header := Header{
		Magic:     words[0],
		Version:   words[1],
		Generator: words[2],
		Bound:     words[3],
		Schema:    words[4],
	}

	return &Decoder{words: words, pos: spirv.HeaderWords}, header, nil
}

func byteSwap32(w uint32) uint32 {
	return (w>>24)&0xff | (w>>8)&0xff00 | (w<<8)&0xff0000 | (w << 24)
}

// Next decodes the instruction at the current cursor and advances past it.
// It returns (Instruction{}, false, nil) once the stream is exhausted.
func (d *Decoder) Next() (Instruction, bool, error) {
	if d.pos >= len(d.words) {
		return Instruction{}, false, nil
	}

	header := d.words[d.pos]
	opcode := spirv.OpCode(header & 0xffff)
	wordCount := int(header >> 16)

	if wordCount == 0 {
		return Instruction{}, false, xerr.Malformedf("zero-length instruction at word %d", d.pos)
	}
	if d.pos+wordCount > len(d.words) {
		return Instruction{}, false, xerr.Malformedf(
			"instruction at word %d declares length %d, exceeding the buffer", d.pos, wordCount)
	}

	operands := append([]uint32(nil), d.words[d.pos+1:d.pos+wordCount]...)

	inst := Instruction{
		Opcode:   opcode,
		Operands: operands,
		String:   extractString(opcode, operands),
		Length:   wordCount,
	}
	d.pos += wordCount
	return inst, true, nil
}

// DecodeAll materializes the full instruction vector from buf. Most callers
// want this rather than driving Next() themselves, since the Translator
// Base walks the vector in a single forward pass with no lookahead need
// beyond "has this id been defined yet".
func DecodeAll(buf []byte) ([]Instruction, Header, error) {
	dec, header, err := New(buf)
	if err != nil {
		return nil, Header{}, err
	}

	var out []Instruction
	for {
		inst, ok, err := dec.Next()
		if err != nil {
			return nil, Header{}, err
		}
		if !ok {
			break
		}
		out = append(out, inst)
	}
	return out, header, nil
}

// extractString pulls the inline UTF-8 payload (if any) out of an
// instruction's operand words. The leading prefix word count in
// stringOpcodes skips the fixed non-string fields that precede the string
// (e.g. OpMemberName's target id and member-index literal); any words that
// follow the string are ignored. Opcodes missing from stringOpcodes, such
// as OpEntryPoint, get no string at all.
func extractString(op spirv.OpCode, operands []uint32) string {
	prefix, ok := stringOpcodes[op]
	if !ok || prefix > len(operands) {
		return ""
	}
	str, _ := decodeNulString(operands[prefix:])
	return str
}

// decodeNulString decodes a NUL-terminated, word-packed UTF-8 string
// starting at the front of words, per the SPIR-V literal-string encoding
// (four bytes per word, little-endian within the word, terminated by a NUL
// byte and padded with zero bytes to the next word boundary). It returns
// the decoded string and the number of words it occupied.
func decodeNulString(words []uint32) (string, int) {
	var buf bytes.Buffer
	for i, w := range words {
		b := [4]byte{byte(w), byte(w >> 8), byte(w >> 16), byte(w >> 24)}
		nul := bytes.IndexByte(b[:], 0)
		if nul >= 0 {
			buf.Write(b[:nul])
			return buf.String(), i + 1
		}
		buf.Write(b[:])
	}
	return buf.String(), len(words)
}

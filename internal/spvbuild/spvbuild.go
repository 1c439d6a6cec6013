// Package spvbuild assembles small SPIR-V binary modules in memory. It
// exists for tests: the repository has no SPIR-V producer of its own, so
// scenario modules are built op by op and handed to the decoder as the
// byte buffer the pipeline contract starts from.
package spvbuild

import (
	"encoding/binary"
	"math"

	"github.com/shaderkit/spirvtext/spirv"
)

// Builder accumulates instructions and allocates result ids.
type Builder struct {
	words  []uint32
	nextID uint32
}

// New returns an empty Builder. Ids are handed out from 1.
func New() *Builder {
	return &Builder{nextID: 1}
}

// ID allocates a fresh result id.
func (b *Builder) ID() uint32 {
	id := b.nextID
	b.nextID++
	return id
}

// Op appends one instruction.
func (b *Builder) Op(op spirv.OpCode, operands ...uint32) {
	b.words = append(b.words, uint32(len(operands)+1)<<16|uint32(op))
	b.words = append(b.words, operands...)
}

// OpStr appends an instruction whose trailing operands are a literal
// string, packed four bytes per word and NUL-terminated.
func (b *Builder) OpStr(op spirv.OpCode, prefix []uint32, s string) {
	str := StringWords(s)
	b.words = append(b.words, uint32(1+len(prefix)+len(str))<<16|uint32(op))
	b.words = append(b.words, prefix...)
	b.words = append(b.words, str...)
}

// Name appends an OpName for id.
func (b *Builder) Name(id uint32, name string) {
	b.OpStr(spirv.OpName, []uint32{id}, name)
}

// Bytes assembles the module: header (with the bound derived from the ids
// handed out) followed by the accumulated instructions, little-endian.
func (b *Builder) Bytes() []byte {
	header := []uint32{spirv.MagicNumber, 0x00010300, 0, b.nextID, 0}
	out := make([]byte, 0, (len(header)+len(b.words))*4)
	for _, w := range append(header, b.words...) {
		out = binary.LittleEndian.AppendUint32(out, w)
	}
	return out
}

// StringWords packs a literal string the way SPIR-V encodes it: four
// bytes per word, little-endian within the word, NUL-terminated and
// zero-padded to the word boundary.
func StringWords(s string) []uint32 {
	bytes := append([]byte(s), 0)
	for len(bytes)%4 != 0 {
		bytes = append(bytes, 0)
	}
	words := make([]uint32, len(bytes)/4)
	for i := range words {
		words[i] = binary.LittleEndian.Uint32(bytes[i*4 : i*4+4])
	}
	return words
}

// Float returns the IEEE-754 bit pattern word for a float32 literal.
func Float(f float32) uint32 {
	return math.Float32bits(f)
}

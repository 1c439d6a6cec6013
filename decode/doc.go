// Package decode turns a SPIR-V binary module into a flat, ordered sequence
// of Instruction values.
//
// It performs no semantic interpretation: opcode dispatch, symbol-table
// construction and code generation are the job of the symtab and backend
// packages built on top of it. Decoding is a single forward pass over the
// word stream with no backtracking, matching the data flow described for
// the translation pipeline as a whole.
package decode

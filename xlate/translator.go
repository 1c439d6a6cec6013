package xlate

import (
	"errors"
	"fmt"

	"github.com/shaderkit/spirvtext/decode"
	"github.com/shaderkit/spirvtext/symtab"
	"github.com/shaderkit/spirvtext/target"
	"github.com/shaderkit/spirvtext/xerr"
)

// Backend is the capability set a concrete emitter implements. EmitOp
// handles the rendering-relevant effect of one instruction, after
// Translator.Run has already applied its symbol-table effect; Finalize
// assembles whatever per-function or accumulated text EmitOp produced into
// the backend's final output.
type Backend interface {
	EmitOp(tr *Translator, inst decode.Instruction) error
	Finalize(tr *Translator) ([]byte, error)
}

// Translator is the generic forward-walking driver shared by every
// backend: it owns the symbol table, hands each instruction to the table
// and then to the backend, and applies the fatality/recovery policy for
// errors the backend reports.
type Translator struct {
	Header  decode.Header
	Table   *symtab.Table
	Backend Backend

	// Strict disables UnsupportedOpcode recovery: any unsupported opcode
	// aborts the translation instead of being marked and skipped.
	Strict bool

	// Diagnostics accumulates one entry per recovered error, in
	// instruction order, for callers (the CLI) to log.
	Diagnostics []string
}

// New builds a Translator ready to Run over a decoded instruction stream.
func New(header decode.Header, tgt target.Target, stage target.Stage, backend Backend, strict bool) *Translator {
	return &Translator{
		Header:  header,
		Table:   symtab.New(header.Bound, tgt, stage),
		Backend: backend,
		Strict:  strict,
	}
}

// Run walks instructions once, in order: each is applied to the symbol
// table and then handed to the backend. An UnsupportedOpcode error from
// the backend is recovered (a comment marker is left in the current
// function's text and the walk continues) unless Strict is set; every
// other error kind is always fatal.
func (tr *Translator) Run(instructions []decode.Instruction) error {
	for _, inst := range instructions {
		if err := tr.Table.Apply(inst); err != nil {
			return fmt.Errorf("applying op %d: %w", inst.Opcode, err)
		}
		if err := tr.Backend.EmitOp(tr, inst); err != nil {
			if tr.recoverable(err) {
				tr.recover(inst, err)
				continue
			}
			return fmt.Errorf("emitting op %d: %w", inst.Opcode, err)
		}
	}
	return nil
}

func (tr *Translator) recoverable(err error) bool {
	if tr.Strict {
		return false
	}
	var xe *xerr.Error
	if errors.As(err, &xe) {
		return xe.Kind == xerr.UnsupportedOpcode
	}
	return false
}

// recover records a marker for a recovered error: appended to the current
// function's body text if one is open, otherwise kept only in
// Diagnostics.
func (tr *Translator) recover(inst decode.Instruction, err error) {
	msg := fmt.Sprintf("op %d (%%%d): %v", inst.Opcode, firstResultID(inst), err)
	tr.Diagnostics = append(tr.Diagnostics, msg)
	if fn := tr.Table.Current; fn != nil {
		fn.Text = append(fn.Text, []byte("// unsupported: "+msg+"\n")...)
	}
}

// firstResultID best-efforts the id an instruction's error refers to: most
// value-producing ops carry their result id as the second operand word.
func firstResultID(inst decode.Instruction) uint32 {
	return inst.Operand(1)
}

// Finalize delegates to the backend.
func (tr *Translator) Finalize() ([]byte, error) {
	return tr.Backend.Finalize(tr)
}

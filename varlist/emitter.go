package varlist

import (
	"github.com/shaderkit/spirvtext/decode"
	"github.com/shaderkit/spirvtext/xlate"
)

// Emitter is a no-op Backend: the manifest is read entirely off the
// symbol table that Translator.Run already populates, so EmitOp has
// nothing to do and Finalize is where the manifest is actually rendered.
type Emitter struct{}

func (Emitter) EmitOp(tr *xlate.Translator, inst decode.Instruction) error { return nil }

func (Emitter) Finalize(tr *xlate.Translator) ([]byte, error) {
	return RenderCode(tr.Table, tr.Table.Stage), nil
}

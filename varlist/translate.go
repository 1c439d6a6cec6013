package varlist

import (
	"github.com/shaderkit/spirvtext/decode"
	"github.com/shaderkit/spirvtext/target"
	"github.com/shaderkit/spirvtext/xlate"
)

// Translate decodes buf and renders its interface variable manifest in
// the outputCode form.
func Translate(buf []byte, tgt target.Target, stage target.Stage) ([]byte, *xlate.Translator, error) {
	instructions, header, err := decode.DecodeAll(buf)
	if err != nil {
		return nil, nil, err
	}
	tr := xlate.New(header, tgt, stage, Emitter{}, false)
	if err := tr.Run(instructions); err != nil {
		return nil, tr, err
	}
	out, err := tr.Finalize()
	return out, tr, err
}

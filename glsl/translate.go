// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package glsl

import (
	"github.com/shaderkit/spirvtext/decode"
	"github.com/shaderkit/spirvtext/target"
	"github.com/shaderkit/spirvtext/xlate"
)

// Translate decodes and renders a SPIR-V binary module as GLSL-family
// source for the given target and stage. Strict disables UnsupportedOpcode
// recovery.
func Translate(buf []byte, tgt target.Target, stage target.Stage, strict bool) ([]byte, *xlate.Translator, error) {
	instructions, header, err := decode.DecodeAll(buf)
	if err != nil {
		return nil, nil, err
	}
	emitter := New()
	emitter.instructions = instructions
	tr := xlate.New(header, tgt, stage, emitter, strict)
	tr.Table.Sanitize = SanitizeName
	if err := tr.Run(instructions); err != nil {
		return nil, tr, err
	}
	out, err := tr.Finalize()
	return out, tr, err
}

// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package glsl

import (
	"fmt"
	"sort"
	"strings"

	"github.com/shaderkit/spirvtext/cstyle"
	"github.com/shaderkit/spirvtext/decode"
	"github.com/shaderkit/spirvtext/spirv"
	"github.com/shaderkit/spirvtext/symtab"
	"github.com/shaderkit/spirvtext/target"
	"github.com/shaderkit/spirvtext/xlate"
)

// Emitter is the GLSL-family Backend: it embeds cstyle.Emitter for
// statement/expression rendering and overrides only OpLabel, where the
// one-time file prologue is produced before the first function's body.
type Emitter struct {
	cstyle.Emitter

	// instructions is the full decoded stream, set by Translate before
	// Run starts. It is consulted exactly once, while writing the module
	// prologue, to forward-declare helper functions whose bodies haven't
	// been walked yet (every type and global name they reference has
	// already been installed by that point, since SPIR-V's logical layout
	// places all types/constants/globals before any function).
	instructions []decode.Instruction

	prologue      []byte
	wrotePrologue bool
}

// New returns a ready-to-use GLSL Emitter.
func New() *Emitter {
	return &Emitter{}
}

// EmitOp special-cases OpLabel to emit the prologue before the first
// function's body, and otherwise defers to the embedded cstyle.Emitter.
func (e *Emitter) EmitOp(tr *xlate.Translator, inst decode.Instruction) error {
	if inst.Opcode == spirv.OpLabel {
		fn := tr.Table.Current
		if fn != nil && !fn.FirstLabelSeen {
			e.writePrologue(tr)
			fn.Text = append(fn.Text, e.functionSignature(tr, fn)...)
		}
	}
	return e.Emitter.EmitOp(tr, inst)
}

// Finalize assembles the prologue and every function's body into the
// final GLSL source. patch_main is never emitted as its own function;
// instead its body is spliced into main under the invocation-zero guard.
func (e *Emitter) Finalize(tr *xlate.Translator) ([]byte, error) {
	var out []byte
	out = append(out, e.prologue...)

	functions := tr.Table.Functions
	var patchFn *symtab.Function
	for _, fn := range functions {
		if fn.Name == "patch_main" {
			patchFn = fn
		}
	}
	var mainFn *symtab.Function
	for _, fn := range functions {
		if fn.Name != "patch_main" {
			mainFn = fn
			break
		}
	}

	for _, fn := range functions {
		if fn.Name == "patch_main" {
			continue
		}
		body := append(append([]byte{}, fn.Text...), '}', '\n')
		if fn == mainFn && patchFn != nil && len(patchFn.Text) > 0 {
			body = splicePatchMain(body, append(append([]byte{}, patchFn.Text...), '}', '\n'))
		}
		out = append(out, body...)
		out = append(out, '\n')
	}
	return out, nil
}

// writePrologue renders the one-time module prologue, in its fixed order:
// version directive, Android external-image extension, struct definitions,
// the krafix_FragColor redirection for forward-compatible desktop fragment
// profiles, the ES precision qualifier, global interface declarations, and
// forward declarations of the helper functions.
func (e *Emitter) writePrologue(tr *xlate.Translator) {
	if e.wrotePrologue {
		return
	}
	e.wrotePrologue = true
	tbl := tr.Table
	tgt := tbl.Target

	var buf []byte
	buf = append(buf, fmt.Sprintf("#version %d%s\n", effectiveVersion(tgt, tbl.Stage), versionSuffix(tgt))...)
	if tbl.NeedsExternalImageExtension {
		buf = append(buf, "#extension GL_OES_EGL_image_external : require\n"...)
	}

	buf = append(buf, e.structDecls(tbl)...)

	if tbl.Stage == target.StageFragment && !tgt.ES && tgt.Version >= 300 {
		buf = append(buf, fmt.Sprintf("out vec4 %s;\n", fragColorName)...)
	}
	if tgt.ES {
		buf = append(buf, "precision mediump float;\n"...)
	}

	buf = append(buf, e.globalDecls(tr)...)
	buf = append(buf, '\n')
	buf = append(buf, e.forwardDecls(tr)...)
	e.prologue = buf
}

// effectiveVersion is the version directive's number: the target's, except
// that stages other than vertex and fragment always use 400: geometry and
// tessellation shaders need at least that.
func effectiveVersion(tgt target.Target, stage target.Stage) int {
	if stage != target.StageVertex && stage != target.StageFragment {
		return 400
	}
	return tgt.Version
}

// versionSuffix appends " es" for the ES dialects that spell it in the
// version directive; ES 100 predates the suffix.
func versionSuffix(tgt target.Target) string {
	if tgt.ES && tgt.Version >= 300 {
		return " es"
	}
	return ""
}

// forwardDecls scans the decoded stream for every function other than the
// entry point and patch_main and emits "ret name(params);" lines, so
// helpers can call each other regardless of their order in the module. All
// the types and names they reference were installed before the first
// function body began.
func (e *Emitter) forwardDecls(tr *xlate.Translator) []byte {
	tbl := tr.Table
	var buf []byte
	first := true
	var fnID uint32
	var returnType uint32
	var params []string

	flush := func() {
		if fnID == 0 {
			return
		}
		if first {
			first = false
			fnID = 0
			return
		}
		name := tbl.NameOrSynth(fnID)
		if name != "main" && name != "patch_main" {
			ret := "void"
			if rt := tbl.Types[returnType]; rt != nil {
				ret = rt.Name
			}
			buf = append(buf, fmt.Sprintf("%s %s(%s);\n", ret, name, strings.Join(params, ", "))...)
		}
		fnID = 0
	}

	for _, inst := range e.instructions {
		switch inst.Opcode {
		case spirv.OpFunction:
			returnType, fnID = inst.Operand(0), inst.Operand(1)
			params = params[:0]
		case spirv.OpFunctionParameter:
			ptName := ""
			if pt := tbl.Types[inst.Operand(0)]; pt != nil {
				ptName = pt.Name
			}
			params = append(params, fmt.Sprintf("%s %s", ptName, tbl.NameOrSynth(inst.Operand(1))))
		case spirv.OpFunctionEnd:
			flush()
		}
	}
	if len(buf) > 0 {
		buf = append(buf, '\n')
	}
	return buf
}

func (e *Emitter) structDecls(tbl *symtab.Table) []byte {
	var buf []byte
	ids := make([]uint32, 0, len(tbl.Types))
	for id := range tbl.Types {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	for _, id := range ids {
		t := tbl.Types[id]
		if len(t.Members) == 0 || t.IsPointer || glPrefixed(t.Name) {
			continue
		}
		buf = append(buf, fmt.Sprintf("struct %s {\n", t.Name)...)
		for _, m := range t.Members {
			buf = append(buf, fmt.Sprintf("\t%s %s;\n", m.Type.Name, m.Name)...)
		}
		buf = append(buf, "};\n\n"...)
	}
	return buf
}

func (e *Emitter) globalDecls(tr *xlate.Translator) []byte {
	tbl := tr.Table
	var buf []byte
	ids := make([]uint32, 0, len(tbl.Variables))
	for id := range tbl.Variables {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	for _, id := range ids {
		v := tbl.Variables[id]
		if v.Builtin {
			e.resolveBuiltinRef(tr, id, v)
			continue
		}
		typ := tbl.Types[v.Type]
		if typ == nil || glPrefixed(typ.Name) {
			continue
		}
		name := tbl.NameOrSynth(id)

		// Fragment outputs are never declared by name: they reroute to the
		// krafix_FragColor redirection already declared above (forward-
		// compatible desktop profiles) or to the gl_FragColor builtin.
		if v.Storage == spirv.StorageClassOutput && tbl.Stage == target.StageFragment {
			if !tbl.Target.ES && tbl.Target.Version >= 300 {
				tbl.SetRef(id, fragColorName)
			} else {
				tbl.SetRef(id, "gl_FragColor")
			}
			continue
		}

		qual := storageQualifier(v.Storage, tbl.Stage, tbl.Target)
		layout := layoutPrefix(tbl, id)
		arraySuffix := ""
		if typ.IsArray && typ.Length > 0 {
			arraySuffix = fmt.Sprintf("[%d]", typ.Length)
		}
		buf = append(buf, fmt.Sprintf("%s%s %s %s%s;\n", layout, qual, typ.Name, name, arraySuffix)...)
	}
	return buf
}

const fragColorName = "krafix_FragColor"

// glPrefixed reports whether a type name carries the reserved gl_ prefix,
// either as declared or as SanitizeName escapes it ("_gl_...").
func glPrefixed(name string) bool {
	return strings.HasPrefix(name, "gl_") || strings.HasPrefix(name, "_gl_")
}

func layoutPrefix(tbl *symtab.Table, id uint32) string {
	dec, ok := tbl.Decorations[id]
	if !ok {
		return ""
	}
	if dec.Location != nil {
		return fmt.Sprintf("layout(location = %d) ", *dec.Location)
	}
	if dec.Binding != nil {
		return fmt.Sprintf("layout(binding = %d) ", *dec.Binding)
	}
	return ""
}

// storageQualifier picks the GLSL storage qualifier keyword for a
// variable's SPIR-V storage class, gated by stage and the 300 boundary
// between attribute/varying and in/out.
func storageQualifier(storage spirv.StorageClass, stage target.Stage, tgt target.Target) string {
	vertexOrFragment := stage == target.StageVertex || stage == target.StageFragment
	switch storage {
	case spirv.StorageClassInput:
		if vertexOrFragment && tgt.Version < 300 {
			if stage == target.StageVertex {
				return "attribute"
			}
			return "varying"
		}
		return "in"
	case spirv.StorageClassOutput:
		if vertexOrFragment && tgt.Version < 300 {
			return "varying"
		}
		return "out"
	case spirv.StorageClassUniformConstant, spirv.StorageClassUniform:
		return "uniform"
	default:
		return ""
	}
}

var builtinNames = map[spirv.BuiltIn]string{
	spirv.BuiltInPosition:       "gl_Position",
	spirv.BuiltInPointSize:      "gl_PointSize",
	spirv.BuiltInFragCoord:      "gl_FragCoord",
	spirv.BuiltInFragDepth:      "gl_FragDepth",
	spirv.BuiltInVertexID:       "gl_VertexID",
	spirv.BuiltInInstanceID:     "gl_InstanceID",
	spirv.BuiltInVertexIndex:    "gl_VertexID",
	spirv.BuiltInInstanceIndex:  "gl_InstanceID",
	spirv.BuiltInFrontFacing:    "gl_FrontFacing",
	spirv.BuiltInPointCoord:     "gl_PointCoord",
	spirv.BuiltInPrimitiveID:    "gl_PrimitiveID",
	spirv.BuiltInInvocationID:   "gl_InvocationID",
	spirv.BuiltInLayer:          "gl_Layer",
	spirv.BuiltInTessLevelOuter: "gl_TessLevelOuter",
	spirv.BuiltInTessLevelInner: "gl_TessLevelInner",
	spirv.BuiltInTessCoord:      "gl_TessCoord",
	spirv.BuiltInPatchVertices:  "gl_PatchVerticesIn",
}

// resolveBuiltinRef pins a builtin-decorated variable's reference to the
// dialect's builtin name. The fallback is the raw OpName, unsanitized: a
// gl_-prefixed debug name on a builtin is the builtin, not a user
// identifier to escape.
func (e *Emitter) resolveBuiltinRef(tr *xlate.Translator, id uint32, v *symtab.Variable) {
	if dec := tr.Table.Decorations[id]; dec != nil && dec.BuiltIn != nil {
		if name, ok := builtinNames[*dec.BuiltIn]; ok {
			tr.Table.SetRef(id, name)
			return
		}
	}
	if name, ok := tr.Table.Names[id]; ok && name != "" {
		tr.Table.SetRef(id, name)
		return
	}
	tr.Table.SetRef(id, tr.Table.NameOrSynth(id))
}

// functionSignature renders a function's opening signature line and
// brace. The first-decoded function is treated as the shader's entry
// point and is always named "main", matching SPIR-V producers that emit
// exactly one entry function per module; helper functions keep their
// OpName. patch_main gets the gl_InvocationID guard instead of a
// signature; Finalize splices its body into main and this text never
// reaches the output on its own.
func (e *Emitter) functionSignature(tr *xlate.Translator, fn *symtab.Function) []byte {
	if fn.Name == "patch_main" {
		return []byte("if (gl_InvocationID == 0)\n{\n")
	}
	name := fn.Name
	if len(tr.Table.Functions) > 0 && tr.Table.Functions[0] == fn {
		name = "main"
	}
	returnType := "void"
	if rt := tr.Table.Types[fn.ReturnType]; rt != nil {
		returnType = rt.Name
	}
	params := make([]string, 0, len(fn.Parameters))
	for _, p := range fn.Parameters {
		pt := tr.Table.Types[p.Type]
		ptName := ""
		if pt != nil {
			ptName = pt.Name
		}
		params = append(params, fmt.Sprintf("%s %s", ptName, tr.Table.NameOrSynth(p.ID)))
	}
	sig := fmt.Sprintf("%s %s(", returnType, name)
	for i, p := range params {
		if i > 0 {
			sig += ", "
		}
		sig += p
	}
	sig += ")\n{\n"
	return []byte(sig)
}
